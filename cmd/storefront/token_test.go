package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/murkotick/storefront-service/internal/pkg/auth"
)

func TestTokenCommand(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "cli-secret")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"token", "root", "--email", "root@example.com", "--admin"})
	require.NoError(t, root.Execute())

	id, err := auth.NewVerifier("cli-secret", nil).Verify(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "root", id.UID)
	assert.Equal(t, "root@example.com", id.Email)
	assert.True(t, id.IsAdmin())
}

func TestTokenCommandNeedsSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"token", "u1"})
	assert.Error(t, root.Execute())
}

func TestExportRejectsUnknownCollection(t *testing.T) {
	t.Chdir(t.TempDir())

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"export", "orders"})
	assert.Error(t, root.Execute())
}
