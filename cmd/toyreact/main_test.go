package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/toyreact/internal/errors"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config", t.TempDir()}, args...))
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRenderHello(t *testing.T) {
	out, logs, err := run(t, "render", "hello")
	require.NoError(t, err)

	assert.Equal(t, "<div><h1>Toy React</h1><div>lalal</div>"+
		"<div>son, your mother is calling you home for dinner</div></div>\n", out)
	assert.Contains(t, logs, "msg=rendered")
}

func TestRenderClicks(t *testing.T) {
	out, _, err := run(t, "render", "counter", "--click", "button:1", "--click", "button:1", "--click", "button:0")
	require.NoError(t, err)

	assert.Contains(t, out, `<span class="count">1</span>`)
}

func TestRenderPrettyAndIDs(t *testing.T) {
	out, _, err := run(t, "render", "counter", "--pretty", "--node-ids")
	require.NoError(t, err)

	assert.Contains(t, out, "\n  <button data-node=")
}

func TestRenderTree(t *testing.T) {
	out, _, err := run(t, "render", "tictactoe", "--click", "button:4", "--tree")
	require.NoError(t, err)

	assert.Contains(t, out, `"X"`)
	assert.Contains(t, out, `"Next player: O"`)
	assert.Contains(t, out, "@click")
}

func TestRenderMinify(t *testing.T) {
	out, _, err := run(t, "render", "counter", "--minify")
	require.NoError(t, err)

	assert.Contains(t, out, "counter")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code string
	}{
		{"unknown demo", []string{"render", "pong"}, "E401"},
		{"malformed click", []string{"render", "counter", "--click", "button"}, "E403"},
		{"negative index", []string{"render", "counter", "--click", "button:-1"}, "E403"},
		{"missing element", []string{"render", "counter", "--click", "table:0"}, "E404"},
		{"no listener", []string{"render", "counter", "--click", "span:0"}, "E404"},
		{"bad log level", []string{"--log-level", "loud", "render"}, "E303"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			assert.True(t, errors.HasCode(err, tt.code), "err = %v", err)
		})
	}
}

func TestRenderUsesConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "toyreact.yaml"),
		[]byte("render:\n  pretty: true\nlog:\n  level: warn\n"), 0o644))

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--config", dir, "render", "counter"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "\n  <button>")
	assert.Empty(t, errOut.String(), "info logs are below the configured level")
}

func TestVersion(t *testing.T) {
	out, _, err := run(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)

	out, _, err = run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Version:    dev")
}
