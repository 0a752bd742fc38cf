package commands

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		name  string
		cmd   func() *cobra.Command
		use   string
		flags []string
	}{
		{"format", NewFormatCommand, "format [file|-]", nil},
		{"check", NewCheckCommand, "check [path...]", []string{"watch", "workers", "extensions"}},
		{"tokens", NewTokensCommand, "tokens [file|-]", nil},
		{"bind", NewBindCommand, "bind [file|-]", []string{"params", "set", "arg", "list", "strict-params"}},
		{"repl", NewREPLCommand, "repl", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := tt.cmd()
			assert.Equal(t, tt.use, cmd.Use)
			assert.NotEmpty(t, cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, cmd.Long, "Long should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}
