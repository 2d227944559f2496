package browser

import (
	"context"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Integration coverage against a real browser. Run without -short.

func TestAcquire_RealBrowser(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	b := New(Config{Headless: true})
	defer b.Close()

	handle, err := b.GetBrowser(context.Background())
	require.NoError(t, err)
	assert.True(t, handle.IsConnected())

	// Same handle on repeat acquisition
	again, err := b.GetBrowser(context.Background())
	require.NoError(t, err)
	assert.Equal(t, handle, again)
}

func TestNewContext_RealBrowser(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	b := New(Config{
		Headless:       true,
		DefaultContext: ContextConfig{ViewportWidth: 1280, ViewportHeight: 720},
	})
	defer b.Close()

	bctx, err := b.NewContext(context.Background())
	require.NoError(t, err)

	page, err := bctx.Raw().NewPage()
	require.NoError(t, err)

	_, err = page.Goto("about:blank", playwright.PageGotoOptions{})
	require.NoError(t, err)

	require.NoError(t, bctx.Close())
}
