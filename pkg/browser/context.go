package browser

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"
)

// Context is an isolated browsing session scoped to one instance. Many
// Contexts can share one instance; each has its own cookies, storage, and
// cache. Close a Context when done with it — contexts still open when the
// owning Browser closes are force-closed with a warning.
type Context struct {
	id    string
	raw   playwright.BrowserContext
	owner *Browser
}

// NewContext spawns a browsing context from the live instance, acquiring one
// first if needed. With no arguments the Config's DefaultContext settings
// apply; pass a ContextConfig to override them for this context.
func (b *Browser) NewContext(ctx context.Context, cfgs ...ContextConfig) (*Context, error) {
	handle, err := b.GetBrowser(ctx)
	if err != nil {
		return nil, err
	}

	cfg := b.config.DefaultContext
	if len(cfgs) > 0 {
		cfg = cfgs[0]
	}

	opts := playwright.BrowserNewContextOptions{}
	if cfg.ViewportWidth > 0 && cfg.ViewportHeight > 0 {
		opts.Viewport = &playwright.Size{
			Width:  cfg.ViewportWidth,
			Height: cfg.ViewportHeight,
		}
	}
	if cfg.UserAgent != "" {
		opts.UserAgent = playwright.String(cfg.UserAgent)
	}
	if cfg.Locale != "" {
		opts.Locale = playwright.String(cfg.Locale)
	}
	if cfg.IgnoreHTTPSErrors {
		opts.IgnoreHttpsErrors = playwright.Bool(true)
	}

	raw, err := handle.NewContext(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create browsing context: %w", err)
	}

	c := &Context{
		id:    uuid.New().String(),
		raw:   raw,
		owner: b,
	}

	b.mu.Lock()
	b.contexts[c.id] = c
	b.mu.Unlock()

	b.log.Debugf("created browsing context %s", c.id)
	return c, nil
}

// ID returns the context's unique identifier.
func (c *Context) ID() string {
	return c.id
}

// Raw exposes the underlying automation-library context for page work.
func (c *Context) Raw() playwright.BrowserContext {
	return c.raw
}

// Close detaches the context from its owner and releases it.
func (c *Context) Close() error {
	c.owner.mu.Lock()
	delete(c.owner.contexts, c.id)
	c.owner.mu.Unlock()

	if c.raw == nil {
		return nil
	}

	if err := c.raw.Close(); err != nil {
		return fmt.Errorf("failed to close browsing context %s: %w", c.id, err)
	}

	return nil
}
