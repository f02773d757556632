package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFilePath(t *testing.T) {
	t.Run("rejects empty paths", func(t *testing.T) {
		_, err := ValidateFilePath("  ")
		assert.ErrorIs(t, err, ErrEmptyPath)
	})

	t.Run("rejects shell metacharacters", func(t *testing.T) {
		for _, p := range []string{"data.db; rm -rf /", "$(whoami).db", "a|b.db", "x\n.db"} {
			_, err := ValidateFilePath(p)
			assert.ErrorIs(t, err, ErrForbiddenChars, p)
		}
	})

	t.Run("cleans a missing file path", func(t *testing.T) {
		dir := t.TempDir()
		got, err := ValidateFilePath(filepath.Join(dir, "sub", "..", "data.db"))
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "data.db"), got)
	})

	t.Run("makes relative paths absolute", func(t *testing.T) {
		got, err := ValidateFilePath("data.db")
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
	})

	t.Run("resolves symlinks", func(t *testing.T) {
		dir, err := filepath.EvalSymlinks(t.TempDir())
		require.NoError(t, err)
		target := filepath.Join(dir, "real.db")
		require.NoError(t, os.WriteFile(target, nil, 0o600))
		link := filepath.Join(dir, "link.db")
		require.NoError(t, os.Symlink(target, link))

		got, err := ValidateFilePath(link)
		require.NoError(t, err)
		assert.Equal(t, target, got)
	})
}
