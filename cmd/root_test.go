package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file is silent", func(t *testing.T) {
		var buf bytes.Buffer
		loadDotEnv(&buf, filepath.Join(dir, "missing.env"))
		assert.Empty(t, buf.String())
	})

	t.Run("malformed file warns on the writer", func(t *testing.T) {
		path := filepath.Join(dir, "bad.env")
		require.NoError(t, os.WriteFile(path, []byte("NOT VALID\n"), 0o600))

		var buf bytes.Buffer
		loadDotEnv(&buf, path)
		assert.Contains(t, buf.String(), "Warning: cannot load .env file")
	})

	t.Run("valid file sets variables", func(t *testing.T) {
		const key = "RECORDLENS_DOTENV_CHECK"
		require.NoError(t, os.Unsetenv(key))
		t.Cleanup(func() { _ = os.Unsetenv(key) })
		path := filepath.Join(dir, "good.env")
		require.NoError(t, os.WriteFile(path, []byte(key+"=json\n"), 0o600))

		var buf bytes.Buffer
		loadDotEnv(&buf, path)
		assert.Empty(t, buf.String())
		assert.Equal(t, "json", os.Getenv(key))
	})
}
