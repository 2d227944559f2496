package browser

import "fmt"

// defaultArgs are applied to every fresh launch. They suppress automation
// detection, first-run prompts, and the various backgrounding behaviors that
// make pages throttle or unload while unattended.
var defaultArgs = []string{
	"--no-sandbox",
	"--disable-blink-features=AutomationControlled",
	"--disable-infobars",
	"--disable-background-timer-throttling",
	"--disable-popup-blocking",
	"--disable-backgrounding-occluded-windows",
	"--disable-renderer-backgrounding",
	"--disable-window-activation",
	"--disable-focus-on-load",
	"--no-first-run",
	"--no-default-browser-check",
	"--no-startup-window",
	"--window-position=0,0",
}

// insecureArgs relax same-origin policy and site isolation. Appended only
// when Config.DisableSecurity is set.
var insecureArgs = []string{
	"--disable-web-security",
	"--disable-site-isolation-trials",
	"--disable-features=IsolateOrigins,site-per-process",
}

// securityArgs returns the security-relaxation arguments selected by the
// configuration, or nil when security stays enabled.
func (c Config) securityArgs() []string {
	if !c.DisableSecurity {
		return nil
	}
	return insecureArgs
}

// launchArgs assembles the full argument list for a fresh standard launch:
// baseline args, then security relaxation, then caller extras, then proxy
// and headless flags.
func (c Config) launchArgs() []string {
	args := make([]string, 0, len(defaultArgs)+len(insecureArgs)+len(c.ExtraArgs)+2)
	args = append(args, defaultArgs...)
	args = append(args, c.securityArgs()...)
	args = append(args, c.ExtraArgs...)

	if c.Proxy != nil && c.Proxy.Server != "" {
		args = append(args, fmt.Sprintf("--proxy-server=%s", c.Proxy.Server))
	}
	if c.Headless {
		args = append(args, "--headless")
	}

	return args
}

// remoteDebuggingArgs assembles the argument list used when starting an
// instance from a fixed executable for later attachment.
func (c Config) remoteDebuggingArgs() []string {
	args := make([]string, 0, len(c.ExtraArgs)+1)
	args = append(args, fmt.Sprintf("--remote-debugging-port=%d", c.DebugPort))
	args = append(args, c.ExtraArgs...)
	return args
}
