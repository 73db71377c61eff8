package cmd

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawhil/sitecfg/internal/testutil"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestNewRootCmd(t *testing.T) {
	root := NewRootCmd()

	assert.Equal(t, "sitecfg", root.Use)
	assert.True(t, root.SilenceUsage)
	assert.True(t, root.SilenceErrors)

	for _, name := range []string{"vet", "show", "diff", "init", "config", "version"} {
		sub, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"config", "site", "output", "verbose", "timestamps"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestRoot_SiteFromToolConfig(t *testing.T) {
	home := testutil.IsolateEnv(t)

	sitePath, err := filepath.Abs(filepath.Join("testdata", "drafts.yaml"))
	require.NoError(t, err)

	testutil.WriteToolConfig(t, home, "site: "+sitePath+"\n")

	stdout, _, err := execute(t, "vet")
	require.NoError(t, err)
	assert.Contains(t, stdout, "drafts.yaml")
}

func TestRoot_SiteEnvBeatsConfig(t *testing.T) {
	home := testutil.IsolateEnv(t)

	testutil.WriteToolConfig(t, home, "site: does-not-exist.yaml\n")
	t.Setenv("SITECFG_SITE", filepath.Join("testdata", "site.yaml"))

	stdout, _, err := execute(t, "vet")
	require.NoError(t, err)
	assert.Contains(t, stdout, "site.yaml")
}

func TestRoot_SiteFlag(t *testing.T) {
	testutil.IsolateEnv(t)

	stdout, _, err := execute(t, "vet", "--site", filepath.Join("testdata", "react.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "react.yaml")
}

func TestRoot_VerboseLogsResolution(t *testing.T) {
	testutil.IsolateEnv(t)

	_, stderr, err := execute(t, "vet", "-v", filepath.Join("testdata", "site.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "config value resolved")
	assert.Contains(t, stderr, "site config loaded")
}

func TestRoot_BrokenToolConfigIsIgnored(t *testing.T) {
	home := testutil.IsolateEnv(t)

	testutil.WriteToolConfig(t, home, "site: [\n")

	_, stderr, err := execute(t, "vet", filepath.Join("testdata", "site.yaml"))
	require.NoError(t, err)
	assert.Contains(t, stderr, "ignoring tool config")
}
