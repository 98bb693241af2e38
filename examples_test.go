package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoadExampleFiles keeps the shipped sample files honest.
func TestLoadExampleFiles(t *testing.T) {
	cfg, err := NewLoader().
		WithLogger(testLogger()).
		WithDefinitions(filepath.Join("examples", "config-defs.conf")).
		WithAcceptUndefinedKeywords(true).
		Load(filepath.Join("examples", "config.conf"))
	require.NoError(t, err)

	assert.Equal(t, []string{"section1", "some-arrays", "hosts"}, cfg.Sections())

	// the included file re-sets a scalar, last occurrence wins
	v, err := cfg.Values("section1", "keyword1")
	require.NoError(t, err)
	assert.Equal(t, "overridden by the include", v.Scalar())

	v, err = cfg.Values("some-arrays", "some-colours")
	require.NoError(t, err)
	assert.Equal(t, []string{"blue", "yellow", "red", "orange", "purple"}, v.Array())

	v, err = cfg.Values("some-arrays", "empty-ok")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "c"}, v.Array())

	v, err = cfg.Values("hosts", "web-servers")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, v.Array())

	v, err = cfg.Values("hosts", "options")
	require.NoError(t, err)
	h := v.Hash()
	assert.Equal(t, []string{"retries", "timeout"}, h.Keys())
	timeout, _ := h.Get("timeout")
	assert.Equal(t, "30s", timeout)

	v, err = cfg.Values("section1", "quoted")
	require.NoError(t, err)
	assert.Equal(t, "keeps trailing whitespace   ", v.Scalar())
}
