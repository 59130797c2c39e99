package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/historygrab/internal/storage/storagetest"
)

func TestSources_ListsPlatformStores(t *testing.T) {
	e := newEnv(t)
	path := e.chrome(t)

	cmd := &SourcesCommand{globals: &GlobalFlags{Config: e.config}}
	require.NoError(t, cmd.executeWith(e.deps()))

	out := e.stdout.String()
	assert.Contains(t, out, "chrome")
	assert.Contains(t, out, "firefox")
	assert.Contains(t, out, path)
	assert.Contains(t, out, "yes")
	assert.Contains(t, out, "no")
	assert.NotContains(t, out, "safari")
}

func TestSources_ConfigOverride(t *testing.T) {
	e := newEnv(t)
	custom := filepath.Join(t.TempDir(), "History")
	storagetest.Chrome(t, custom)
	e.writeConfig(t, "browsers:\n  paths:\n    chrome: "+custom+"\n")

	cmd := &SourcesCommand{globals: &GlobalFlags{Config: e.config, Browser: []string{"chrome"}}}
	require.NoError(t, cmd.executeWith(e.deps()))

	assert.Contains(t, e.stdout.String(), custom)
	assert.NotContains(t, e.stdout.String(), "firefox")
}
