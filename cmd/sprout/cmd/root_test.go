package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sprout-ui/sprout/pkg/errors"
)

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "sprout", cmd.Use)
	assert.Contains(t, cmd.Long, "signals")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	for _, name := range []string{"demo", "config", "version"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			assert.Equal(t, name, sub.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verbose := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verbose)
	assert.Equal(t, "v", verbose.Shorthand)

	format := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, format)
	assert.Equal(t, "text", format.DefValue)

	_, _, err := execute(t, "version", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "sprout version "+Version+" (built "+BuildTime+")\n", out)

	out, _, err = execute(t, "version", "--format", "json")
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, Version, got["version"])
}

func TestDemoCommand_Modes(t *testing.T) {
	want := "0 true  [Hello Breaking True Button]\n" +
		"1 false [Hello NotTrue OnlyFalse]\n" +
		"2 true  [Hello Breaking True Button]\n" +
		"3 false [Hello NotTrue OnlyFalse]\n"

	for _, mode := range []string{"embedded", "host"} {
		t.Run(mode, func(t *testing.T) {
			out, _, err := execute(t, "demo", "--config", t.TempDir(), "--mode", mode, "--toggles", "3")
			require.NoError(t, err)
			assert.Equal(t, want, out)
		})
	}
}

func TestDemoCommand_JSON(t *testing.T) {
	out, _, err := execute(t, "demo", "--config", t.TempDir(), "--toggles", "1", "--format", "json")
	require.NoError(t, err)

	var steps []DemoStep
	require.NoError(t, json.Unmarshal([]byte(out), &steps))
	require.Len(t, steps, 2)
	assert.Equal(t, []string{"Hello", "Breaking", "True", "Button"}, steps[0].Children)
	assert.False(t, steps[1].Flag)
	assert.Equal(t, []string{"Hello", "NotTrue", "OnlyFalse"}, steps[1].Children)
}

func TestDemoCommand_ModeFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sprout.yaml"),
		[]byte("executor: {mode: host, queue_capacity: 32}\nlog: {level: debug}\n"), 0o644))

	out, errOut, err := execute(t, "demo", "--config", dir, "--toggles", "0")
	require.NoError(t, err)
	assert.Equal(t, "0 true  [Hello Breaking True Button]\n", out)
	assert.Contains(t, errOut, "mode=host")
}

func TestDemoCommand_Errors(t *testing.T) {
	_, _, err := execute(t, "demo", "--config", t.TempDir(), "--mode", "threaded")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sprout.yaml"), []byte("executor: {mode: threaded}\n"), 0o644))
	_, _, err = execute(t, "demo", "--config", dir)
	require.Error(t, err)
	assert.Equal(t, errors.KindConfig, errors.KindOf(err))
	assert.Contains(t, err.Error(), "executor.mode")

	_, _, err = execute(t, "demo", "--config", t.TempDir(), "--toggles", "-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--toggles")
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "go.mod"), []byte("module example.com/counter\n"), 0o644))

	out, _, err := execute(t, "config", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "module: example.com/counter")
	assert.Contains(t, out, "name: counter")
	assert.Contains(t, out, "mode: embedded")

	out, _, err = execute(t, "config", dir, "--format", "json")
	require.NoError(t, err)
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, dir, got["root"])
	assert.Equal(t, "example.com/counter", got["module"])
}
