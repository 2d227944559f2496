package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContext_AcquiresOnFirstUse(t *testing.T) {
	b, fd := newTestBrowser(t, Config{})
	defer b.Close()

	bctx, err := b.NewContext(context.Background())
	require.NoError(t, err)
	require.NotNil(t, bctx)

	assert.Equal(t, 1, fd.launches)
	assert.Equal(t, 1, fd.instance.newContexts)
	assert.NotEmpty(t, bctx.ID())
}

func TestNewContext_ManyPerInstance(t *testing.T) {
	b, fd := newTestBrowser(t, Config{})
	defer b.Close()

	first, err := b.NewContext(context.Background())
	require.NoError(t, err)
	second, err := b.NewContext(context.Background())
	require.NoError(t, err)

	// One instance serves all contexts
	assert.Equal(t, 1, fd.launches)
	assert.Equal(t, 2, fd.instance.newContexts)
	assert.NotEqual(t, first.ID(), second.ID())
	assert.Len(t, b.contexts, 2)
}

func TestNewContext_Error(t *testing.T) {
	b, fd := newTestBrowser(t, Config{})
	fd.instance.contextErr = errors.New("out of memory")
	defer b.Close()

	_, err := b.NewContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create browsing context")
	assert.Empty(t, b.contexts)
}

func TestNewContext_PropagatesAcquireFailure(t *testing.T) {
	b, fd := newTestBrowser(t, Config{CDPURL: "http://remote:9222"})
	fd.cdpErr = errors.New("unreachable")

	_, err := b.NewContext(context.Background())
	var connErr *ConnectError
	assert.ErrorAs(t, err, &connErr)
}

func TestContextClose_DetachesFromOwner(t *testing.T) {
	b, _ := newTestBrowser(t, Config{})
	defer b.Close()

	bctx, err := b.NewContext(context.Background())
	require.NoError(t, err)
	require.Len(t, b.contexts, 1)

	require.NoError(t, bctx.Close())
	assert.Empty(t, b.contexts)

	// Closing again is harmless
	require.NoError(t, bctx.Close())
}

func TestBrowserClose_ForceClosesDanglingContexts(t *testing.T) {
	b, _ := newTestBrowser(t, Config{})

	_, err := b.NewContext(context.Background())
	require.NoError(t, err)
	_, err = b.NewContext(context.Background())
	require.NoError(t, err)
	require.Len(t, b.contexts, 2)

	b.Close()
	assert.Empty(t, b.contexts)
}

func TestNewContext_UsesDefaultContextConfig(t *testing.T) {
	cfg := Config{
		DefaultContext: ContextConfig{ViewportWidth: 1280, ViewportHeight: 720},
	}
	b, fd := newTestBrowser(t, cfg)
	b.probe = func(url string, timeout time.Duration) error {
		return errors.New("connection refused")
	}
	defer b.Close()

	_, err := b.NewContext(context.Background())
	require.NoError(t, err)
	require.Len(t, fd.instance.contextOpts, 1)

	opts := fd.instance.contextOpts[0]
	require.NotNil(t, opts.Viewport)
	assert.Equal(t, 1280, opts.Viewport.Width)
	assert.Equal(t, 720, opts.Viewport.Height)

	// An explicit ContextConfig overrides the default
	_, err = b.NewContext(context.Background(), ContextConfig{UserAgent: "browseruse-test"})
	require.NoError(t, err)
	require.Len(t, fd.instance.contextOpts, 2)

	opts = fd.instance.contextOpts[1]
	assert.Nil(t, opts.Viewport)
	require.NotNil(t, opts.UserAgent)
	assert.Equal(t, "browseruse-test", *opts.UserAgent)
}
