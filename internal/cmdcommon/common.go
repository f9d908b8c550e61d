// Package cmdcommon provides common functionality for command-line tools.
package cmdcommon

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/isseis/go-symbol-hasher/internal/terminal"
)

// Build-time variables (set via ldflags)
var (
	DefaultConfigPath = "/usr/local/etc/symhash/config.toml" // fallback default
)

// Environment variables consulted by the tools
const (
	ConfigPathEnvVar = "SYMHASH_CONFIG"
	HashPhraseEnvVar = "SYMHASH_HASHPHRASE"
)

// Hash phrase argument forms that do not carry the phrase itself
const (
	HashPhraseFromStdin = "-"
	HashPhraseFromEnv   = "env:"
)

const hashPhrasePrompt = "Hash phrase: "

// ErrHashPhraseEnvUnset is returned when env: is requested but the variable is empty
var ErrHashPhraseEnvUnset = errors.New("hash phrase environment variable is not set")

// ConfigPath picks the config file location. An explicit flag value wins,
// then the environment variable, then DefaultConfigPath. The boolean
// reports whether the location was chosen explicitly, in which case a
// missing file is an error.
func ConfigPath(flagValue string) (string, bool) {
	if flagValue != "" {
		return flagValue, true
	}
	if env := os.Getenv(ConfigPathEnvVar); env != "" {
		return env, true
	}
	return DefaultConfigPath, false
}

// ResolveHashPhrase turns the hash phrase argument into key bytes. "-" reads
// the phrase from stdin (without echo on a terminal), "env:" reads
// $SYMHASH_HASHPHRASE, and anything else is the phrase itself.
func ResolveHashPhrase(arg string, stdin io.Reader, promptOut io.Writer) ([]byte, error) {
	switch arg {
	case HashPhraseFromStdin:
		phrase, err := terminal.ReadPassphrase(stdin, promptOut, hashPhrasePrompt)
		if err != nil {
			return nil, err
		}
		return phrase, nil
	case HashPhraseFromEnv:
		value := os.Getenv(HashPhraseEnvVar)
		if value == "" {
			return nil, fmt.Errorf("%w: %s", ErrHashPhraseEnvUnset, HashPhraseEnvVar)
		}
		return []byte(value), nil
	default:
		return []byte(arg), nil
	}
}
