package filex

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEnsureParentDir_CreatesNestedDirectories(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "keys", "prod", "ed25519_private.pem")

	require.NoError(t, EnsureParentDir(path))

	fi, err := os.Stat(filepath.Join(tmp, "keys", "prod"))
	require.NoError(t, err)
	require.True(t, fi.IsDir())

	// idempotent
	require.NoError(t, EnsureParentDir(path))
}

func TestEnsureParentDir_FailsIfFileWithSameNameExists(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "keys"), []byte("x"), 0o600))

	err := EnsureParentDir(filepath.Join(tmp, "keys", "k.pem"))
	require.Error(t, err)
}

func TestExists(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "f")

	ok, err := Exists(path)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	ok, err = Exists(path)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestWriteFileAtomic_WritesWithPermissions(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "sub", "secret.pem")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o600))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o600))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(b))

	if runtime.GOOS != "windows" {
		fi, err := os.Stat(path)
		require.NoError(t, err)
		require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files must not be left behind")
}
