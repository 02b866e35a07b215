package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Put(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "http://localhost:8080/")
	require.NoError(t, err)

	url, err := s.Put(context.Background(), "uploads/1700000000000-a_b.txt", "text/plain", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/1700000000000-a_b.txt", url)

	b, err := os.ReadFile(filepath.Join(dir, "1700000000000-a_b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))
}

func TestLocalStore_PutStaysInsideDir(t *testing.T) {
	dir := t.TempDir()
	s, err := NewLocalStore(dir, "")
	require.NoError(t, err)

	url, err := s.Put(context.Background(), "uploads/../../escape.txt", "text/plain", strings.NewReader("x"))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.txt", url)
	_, err = os.Stat(filepath.Join(dir, "escape.txt"))
	assert.NoError(t, err)
}
