package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_AppendAndReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "events.log")

	f, err := NewFile(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, f.WriteBatch([][]byte{[]byte("first\n")}))

	// Simulate rotation: move the file away, then reopen.
	rotated := path + ".1"
	require.NoError(t, os.Rename(path, rotated))
	require.NoError(t, f.Reopen())

	require.NoError(t, f.WriteBatch([][]byte{[]byte("second\n")}))

	old, err := os.ReadFile(rotated)
	require.NoError(t, err)
	assert.Equal(t, "first\n", string(old))

	fresh, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(fresh))
}

func TestSet_Build(t *testing.T) {
	console := NewConsole()
	set := Set{Console: console}

	assert.NotNil(t, set.Build(false))

	// Build is only assembling; quiet must not lose the other sinks.
	f, err := NewFile(filepath.Join(t.TempDir(), "events.log"))
	require.NoError(t, err)
	defer f.Close()
	set.File = f

	quietFan := set.Build(true)
	require.NoError(t, quietFan.WriteBatch([][]byte{[]byte("line\n")}))

	content, err := os.ReadFile(f.path)
	require.NoError(t, err)
	assert.Equal(t, "line\n", string(content))
}
