// Package main provides tests for the leapsoql CLI.
package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapsoql/internal/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := cli.NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "LeapSOQL")
}

func TestHelpCommand(t *testing.T) {
	out, _, err := execute(t, "", "--help")
	require.NoError(t, err)
	for _, name := range []string{"format", "check", "tokens", "bind", "repl", "version"} {
		assert.Contains(t, out, name)
	}
}

func TestFormatCommand(t *testing.T) {
	out, _, err := execute(t, "select id, name from account where name = 'Acme' limit 5", "format")
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name FROM account WHERE name = 'Acme' LIMIT 5\n", out)
}

func TestFormatCommand_PrettyJSON(t *testing.T) {
	out, _, err := execute(t, "SELECT Id FROM Account", "format", "--style", "pretty", "-o", "json")
	require.NoError(t, err)

	var got map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "pretty", got["style"])
	assert.Equal(t, "SELECT\n  Id\nFROM Account", got["soql"])
}

func TestFormatCommand_ParseError(t *testing.T) {
	_, errOut, err := execute(t, "SELECT Id FROM", "format")
	require.Error(t, err)
	assert.Contains(t, errOut, "<stdin>")
	assert.Contains(t, errOut, "line 1, column 15")
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.soql", "SELECT Id FROM Account;\n")
	writeFile(t, dir, "bad.soql", "SELECT Id Account")

	out, _, err := execute(t, "", "check", dir, "-o", "json")
	require.Error(t, err)

	var report struct {
		Valid   int `json:"valid"`
		Invalid int `json:"invalid"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 1, report.Valid)
	assert.Equal(t, 1, report.Invalid)
}

func TestBindCommand(t *testing.T) {
	dir := t.TempDir()
	params := writeFile(t, dir, "params.yaml", "name: Acme\nsince: 2024-01-31\n")

	out, _, err := execute(t,
		"SELECT Id FROM Account WHERE Name = :name AND CreatedDate > :since",
		"bind", "--params", params)
	require.NoError(t, err)
	assert.Equal(t, "SELECT Id FROM Account WHERE Name = 'Acme' AND CreatedDate > 2024-01-31\n", out)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, dir, "leapsoql.yaml", "style: pretty\nindent: 4\n")

	out, _, err := execute(t, "SELECT Id, Name FROM Account", "format", "--config", cfg)
	require.NoError(t, err)
	assert.Equal(t, "SELECT\n    Id,\n    Name\nFROM Account\n", out)
}

func TestInvalidConfig(t *testing.T) {
	_, _, err := execute(t, "SELECT Id FROM Account", "format", "--style", "fancy")
	assert.ErrorContains(t, err, "invalid configuration")
}
