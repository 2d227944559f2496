// Package browser acquires and manages a single browser instance for
// automation workloads.
//
// The package is a thin factory over the Playwright driver: it decides how to
// obtain an instance, holds exactly one live handle per Browser, and spawns
// isolated browsing contexts from it. It implements no protocol and touches
// no pages — everything past the handle belongs to the automation library.
//
// # Connection strategies
//
// A Browser picks its strategy from the Config, first match wins:
//
//  1. CDPURL set: attach to a remote instance over CDP
//  2. WSSURL set: attach to a remote instance over WebSocket
//  3. ExecutablePath set: reuse-or-launch — probe the local debug port for a
//     running instance and attach to it, or start the executable with remote
//     debugging enabled, wait for it to come up, and attach
//  4. otherwise: launch a fresh instance with a generated argument list
//
// Reuse-or-launch is the only path with retry behavior: the readiness probe
// runs once per second for up to ten attempts after a spawn. The attach
// itself is never retried; a failed attach after exhausting the probes
// surfaces as ErrLaunchConflict with remediation guidance.
//
// # Lifecycle
//
//	b := browser.New(browser.Config{Headless: true})
//	defer b.Close()
//
//	bctx, err := b.NewContext(ctx)
//	if err != nil {
//	    return err
//	}
//	defer bctx.Close()
//
// Close is idempotent, never fails, and terminates the instance unless
// KeepAlive is set. A finalizer backstops leaked Browsers, logging when it
// has to step in; don't rely on it.
package browser
