package browser

import (
	"fmt"
	"net/http"
	"os/exec"
	"time"
)

// process is the slice of a spawned OS process the Browser needs.
// *os.Process satisfies it.
type process interface {
	Kill() error
}

// probeEndpoint checks whether a debugging endpoint is serving. Success is
// an HTTP 200; anything else, including transport errors, means no usable
// instance is listening.
func probeEndpoint(url string, timeout time.Duration) error {
	client := &http.Client{Timeout: timeout}

	resp, err := client.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}

	return nil
}

// spawnProcess starts a browser executable detached from the caller's
// streams. Stdout and stderr stay unset so the child inherits the null
// device rather than writing into the host process's output.
func spawnProcess(path string, args []string) (process, error) {
	cmd := exec.Command(path, args...)

	if err := cmd.Start(); err != nil {
		return nil, err
	}

	// Reap the child when it eventually exits so it doesn't linger as a
	// zombie under this process.
	go func() {
		_ = cmd.Wait()
	}()

	return cmd.Process, nil
}
