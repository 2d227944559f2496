package browser

import (
	"fmt"
	"io"

	"github.com/playwright-community/playwright-go"
)

// Instance is the slice of a live browser handle this package depends on.
// playwright.Browser satisfies it; tests substitute fakes.
type Instance interface {
	// NewContext creates an isolated browsing context on the instance
	NewContext(options ...playwright.BrowserNewContextOptions) (playwright.BrowserContext, error)

	// Close disconnects from the instance, terminating it if this handle
	// launched it
	Close(options ...playwright.BrowserCloseOptions) error

	// IsConnected reports whether the handle is still attached
	IsConnected() bool
}

// driver is the slice of the automation library used to obtain instances.
// It exists so the acquisition logic can be exercised without a real browser.
type driver interface {
	// Launch starts a fresh browser process with the given options
	Launch(opts playwright.BrowserTypeLaunchOptions) (Instance, error)

	// Connect attaches to a running instance over WebSocket
	Connect(wsEndpoint string) (Instance, error)

	// ConnectOverCDP attaches to a running instance over CDP
	ConnectOverCDP(endpointURL string) (Instance, error)

	// Stop shuts the driver runtime down
	Stop() error
}

// playwrightDriver backs driver with a running Playwright installation.
type playwrightDriver struct {
	pw *playwright.Playwright
}

// newPlaywrightDriver installs (if needed) and starts the Playwright driver.
// Driver output is discarded so it cannot interfere with the host process's
// streams.
func newPlaywrightDriver() (driver, error) {
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return nil, fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	return &playwrightDriver{pw: pw}, nil
}

func (d *playwrightDriver) Launch(opts playwright.BrowserTypeLaunchOptions) (Instance, error) {
	return d.pw.Chromium.Launch(opts)
}

func (d *playwrightDriver) Connect(wsEndpoint string) (Instance, error) {
	return d.pw.Chromium.Connect(wsEndpoint)
}

func (d *playwrightDriver) ConnectOverCDP(endpointURL string) (Instance, error) {
	return d.pw.Chromium.ConnectOverCDP(endpointURL)
}

func (d *playwrightDriver) Stop() error {
	return d.pw.Stop()
}
