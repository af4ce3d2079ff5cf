package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	t.Setenv("COPPERMINT_TEST_DIR", "/srv/data")

	tests := []struct {
		name string
		path string
		want string
	}{
		{name: "empty", path: "", want: ""},
		{name: "absolute untouched", path: "/var/lib/ledger.db", want: "/var/lib/ledger.db"},
		{name: "tilde prefix", path: "~/ledger.db", want: filepath.Join(home, "ledger.db")},
		{name: "bare tilde", path: "~", want: home},
		{name: "env var", path: "$COPPERMINT_TEST_DIR/ledger.db", want: "/srv/data/ledger.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandPath(tt.path))
		})
	}
}

func TestDefaultDatabasePath_ExpandsToHome(t *testing.T) {
	expanded := ExpandPath(DefaultDatabasePath)
	assert.NotContains(t, expanded, "$HOME")
}
