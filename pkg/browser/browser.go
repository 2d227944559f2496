package browser

import (
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"

	"github.com/ProphetDiceBot/browser-use/pkg/logging"
)

const (
	// probeTimeout bounds a single readiness probe against the debug port
	probeTimeout = 2 * time.Second

	// readyAttempts is how many times a freshly started instance is probed
	// before attaching anyway
	readyAttempts = 10

	// readyInterval is the pause between readiness probes
	readyInterval = time.Second
)

// Browser is a factory and lifecycle manager for a single browser instance.
// It picks a connection strategy from its Config, holds at most one live
// instance at a time, and spawns isolated browsing contexts from it.
//
// Acquire and Close may be called from multiple goroutines; calls are
// serialized internally. Use one Browser per logical session.
type Browser struct {
	mu       sync.Mutex
	config   Config
	log      *logging.Logger
	driver   driver
	handle   Instance
	proc     process
	contexts map[string]*Context

	// acquisition seams, replaced in tests
	newDriver    func() (driver, error)
	probe        func(url string, timeout time.Duration) error
	spawn        func(path string, args []string) (process, error)
	pollInterval time.Duration
}

// New creates a Browser for the given configuration. No browser process is
// started until GetBrowser or NewContext is called.
func New(cfg Config) *Browser {
	cfg.applyDefaults()

	// Fallback logger on error still works; nothing more to do here.
	log, _ := logging.NewLogger("browser")

	b := &Browser{
		config:       cfg,
		log:          log,
		contexts:     make(map[string]*Context),
		newDriver:    newPlaywrightDriver,
		probe:        probeEndpoint,
		spawn:        spawnProcess,
		pollInterval: readyInterval,
	}

	// Last-resort safety net. Explicit Close is the contract; if this ever
	// fires the caller leaked the Browser.
	runtime.SetFinalizer(b, (*Browser).finalize)

	return b
}

// Config returns a copy of the configuration the Browser was created with.
func (b *Browser) Config() Config {
	return b.config
}

// GetBrowser returns the live instance, acquiring one on first use. Repeated
// calls while an instance is live return the same handle without side
// effects. The context bounds the acquisition, including readiness polling
// in the reuse-or-launch path; on cancellation the Browser is left
// unacquired and a later call may retry.
func (b *Browser) GetBrowser(ctx context.Context) (Instance, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.handle != nil {
		return b.handle, nil
	}

	return b.setupBrowser(ctx)
}

// setupBrowser selects the connection strategy and performs the acquisition.
// Caller holds b.mu.
func (b *Browser) setupBrowser(ctx context.Context) (Instance, error) {
	if b.driver == nil {
		d, err := b.newDriver()
		if err != nil {
			b.log.Errorf("failed to start automation driver: %v", err)
			return nil, err
		}
		b.driver = d
	}

	var (
		handle Instance
		err    error
	)

	switch {
	case b.config.CDPURL != "":
		handle, err = b.setupCDP()
	case b.config.WSSURL != "":
		handle, err = b.setupWSS()
	case b.config.ExecutablePath != "":
		handle, err = b.setupLocalInstance(ctx)
	default:
		handle, err = b.setupStandard()
	}

	if err != nil {
		b.log.Errorf("failed to initialize browser instance: %v", err)
		return nil, err
	}

	b.handle = handle
	return handle, nil
}

// setupCDP attaches to a remote instance over CDP.
func (b *Browser) setupCDP() (Instance, error) {
	if b.config.CDPURL == "" {
		return nil, &ConfigError{Field: "cdp_url"}
	}

	b.log.Infof("connecting to remote browser via CDP %s", b.config.CDPURL)

	handle, err := b.driver.ConnectOverCDP(b.config.CDPURL)
	if err != nil {
		return nil, &ConnectError{Endpoint: b.config.CDPURL, Err: err}
	}

	return handle, nil
}

// setupWSS attaches to a remote instance over WebSocket.
func (b *Browser) setupWSS() (Instance, error) {
	if b.config.WSSURL == "" {
		return nil, &ConfigError{Field: "wss_url"}
	}

	b.log.Infof("connecting to remote browser via WSS %s", b.config.WSSURL)

	handle, err := b.driver.Connect(b.config.WSSURL)
	if err != nil {
		return nil, &ConnectError{Endpoint: b.config.WSSURL, Err: err}
	}

	return handle, nil
}

// setupLocalInstance reuses an instance already listening on the debug port,
// or starts one from the configured executable and waits for it to come up.
func (b *Browser) setupLocalInstance(ctx context.Context) (Instance, error) {
	if b.config.ExecutablePath == "" {
		return nil, &ConfigError{Field: "executable_path"}
	}

	// An instance may already be serving the debug port.
	if err := b.probe(b.config.versionURL(), probeTimeout); err == nil {
		b.log.Infof("reusing existing browser instance on %s", b.config.debugEndpoint())
		return b.attachLocal()
	}

	b.log.Debugf("no running instance on %s, starting %s", b.config.debugEndpoint(), b.config.ExecutablePath)

	proc, err := b.spawn(b.config.ExecutablePath, b.config.remoteDebuggingArgs())
	if err != nil {
		return nil, fmt.Errorf("failed to start browser process %s: %w", b.config.ExecutablePath, err)
	}
	b.proc = proc

	if err := b.waitForReady(ctx); err != nil {
		// Cancelled mid-poll: take the spawned process down so a retry
		// starts from a clean slate.
		if killErr := proc.Kill(); killErr != nil {
			b.log.Debugf("failed to kill browser process after cancellation: %v", killErr)
		}
		b.proc = nil
		return nil, err
	}

	handle, err := b.attachLocal()
	if err != nil {
		name := filepath.Base(b.config.ExecutablePath)
		return nil, fmt.Errorf("%w: close all running instances of %s and try again (%v)",
			ErrLaunchConflict, name, err)
	}

	return handle, nil
}

// waitForReady polls the debug port until it answers or the attempts are
// exhausted. Exhaustion is not an error: the follow-up attach decides
// whether the instance is actually usable. Only context cancellation aborts.
func (b *Browser) waitForReady(ctx context.Context) error {
	url := b.config.versionURL()

	for attempt := 1; attempt <= readyAttempts; attempt++ {
		if err := b.probe(url, probeTimeout); err == nil {
			b.log.Debugf("instance ready after %d probe attempts", attempt)
			return nil
		}

		select {
		case <-ctx.Done():
			b.log.Warnf("readiness polling cancelled: %v", ctx.Err())
			return ctx.Err()
		case <-time.After(b.pollInterval):
		}
	}

	b.log.Warnf("instance not ready after %d probe attempts, attaching anyway", readyAttempts)
	return nil
}

// attachLocal connects to the instance behind the local debug port.
func (b *Browser) attachLocal() (Instance, error) {
	handle, err := b.driver.ConnectOverCDP(b.config.debugEndpoint())
	if err != nil {
		return nil, &ConnectError{Endpoint: b.config.debugEndpoint(), Err: err}
	}
	return handle, nil
}

// setupStandard launches a fresh instance with the generated argument list.
// A single attempt, no retry.
func (b *Browser) setupStandard() (Instance, error) {
	opts := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.config.Headless),
		Args:     b.config.launchArgs(),
	}

	if b.config.Proxy != nil && b.config.Proxy.Server != "" {
		proxy := &playwright.Proxy{Server: b.config.Proxy.Server}
		if b.config.Proxy.Bypass != "" {
			proxy.Bypass = playwright.String(b.config.Proxy.Bypass)
		}
		if b.config.Proxy.Username != "" {
			proxy.Username = playwright.String(b.config.Proxy.Username)
		}
		if b.config.Proxy.Password != "" {
			proxy.Password = playwright.String(b.config.Proxy.Password)
		}
		opts.Proxy = proxy
	}

	b.log.Infof("launching browser instance (headless=%t)", b.config.Headless)

	handle, err := b.driver.Launch(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	return handle, nil
}

// Close tears the instance down. When KeepAlive is set the underlying
// process is left running and only local references are cleared. Close never
// fails: teardown errors are logged and swallowed, and the Browser always
// ends up released. Safe to call repeatedly.
func (b *Browser) Close() {
	runtime.SetFinalizer(b, nil)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.closeLocked()
}

// closeLocked is Close without the locking. Caller holds b.mu.
func (b *Browser) closeLocked() {
	if b.config.KeepAlive {
		// Stopping the driver here would tear down the instance that
		// keep_alive promises to preserve, so all references are dropped
		// as-is.
		if b.handle != nil {
			b.log.Debugf("keep_alive set, leaving browser instance running")
		}
		b.contexts = make(map[string]*Context)
		b.handle = nil
		b.proc = nil
		b.driver = nil
		return
	}

	for id, c := range b.contexts {
		if c.raw != nil {
			if err := c.raw.Close(); err != nil {
				b.log.Warnf("failed to close dangling context %s: %v", id, err)
			} else {
				b.log.Warnf("closed dangling context %s during browser teardown", id)
			}
		}
		delete(b.contexts, id)
	}

	if b.handle != nil {
		if err := b.handle.Close(); err != nil {
			b.log.Warnf("failed to close browser instance cleanly: %v", err)
		}
		b.handle = nil
	}

	if b.proc != nil {
		if err := b.proc.Kill(); err != nil {
			b.log.Debugf("failed to kill spawned browser process: %v", err)
		}
		b.proc = nil
	}

	if b.driver != nil {
		if err := b.driver.Stop(); err != nil {
			b.log.Warnf("failed to stop automation driver: %v", err)
		}
		b.driver = nil
	}
}

// finalize is the GC safety net for leaked Browsers.
func (b *Browser) finalize() {
	b.mu.Lock()
	leaked := b.handle != nil || b.driver != nil
	b.mu.Unlock()

	if !leaked {
		return
	}

	b.log.Warnf("browser was never closed explicitly, releasing in finalizer")
	b.Close()
}
