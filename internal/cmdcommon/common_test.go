package cmdcommon

import (
	"bytes"
	"strings"
	"testing"

	"github.com/isseis/go-symbol-hasher/internal/terminal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigPath(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/env/config.toml")
		path, explicit := ConfigPath("/flag/config.toml")
		assert.Equal(t, "/flag/config.toml", path)
		assert.True(t, explicit)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/env/config.toml")
		path, explicit := ConfigPath("")
		assert.Equal(t, "/env/config.toml", path)
		assert.True(t, explicit)
	})

	t.Run("default", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "")
		path, explicit := ConfigPath("")
		assert.Equal(t, DefaultConfigPath, path)
		assert.False(t, explicit)
	})
}

func TestResolveHashPhrase(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		phrase, err := ResolveHashPhrase("s3cret", strings.NewReader(""), &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, []byte("s3cret"), phrase)
	})

	t.Run("stdin", func(t *testing.T) {
		phrase, err := ResolveHashPhrase(HashPhraseFromStdin, strings.NewReader("from-pipe\n"), &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, []byte("from-pipe"), phrase)
	})

	t.Run("stdin empty", func(t *testing.T) {
		_, err := ResolveHashPhrase(HashPhraseFromStdin, strings.NewReader(""), &bytes.Buffer{})
		assert.ErrorIs(t, err, terminal.ErrEmptyPassphrase)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(HashPhraseEnvVar, "from-env")
		phrase, err := ResolveHashPhrase(HashPhraseFromEnv, strings.NewReader(""), &bytes.Buffer{})
		require.NoError(t, err)
		assert.Equal(t, []byte("from-env"), phrase)
	})

	t.Run("environment unset", func(t *testing.T) {
		t.Setenv(HashPhraseEnvVar, "")
		_, err := ResolveHashPhrase(HashPhraseFromEnv, strings.NewReader(""), &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrHashPhraseEnvUnset)
	})
}
