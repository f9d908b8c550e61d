package terminal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupCleanEnv clears every CI variable, then sets only the given ones.
func setupCleanEnv(t *testing.T, envVars map[string]string) {
	t.Helper()
	for _, v := range ciEnvVars {
		if value, specified := envVars[v]; specified {
			t.Setenv(v, value)
		} else {
			t.Setenv(v, "")
		}
	}
}

func TestIsCIEnvironment(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		want    bool
	}{
		{name: "no CI variables", envVars: map[string]string{}, want: false},
		{name: "CI=true", envVars: map[string]string{"CI": "true"}, want: true},
		{name: "CI=1", envVars: map[string]string{"CI": "1"}, want: true},
		{name: "CI=false", envVars: map[string]string{"CI": "false"}, want: false},
		{name: "CI=0", envVars: map[string]string{"CI": "0"}, want: false},
		{name: "CI=No", envVars: map[string]string{"CI": "No"}, want: false},
		{name: "GITHUB_ACTIONS", envVars: map[string]string{"GITHUB_ACTIONS": "true"}, want: true},
		{name: "JENKINS_URL", envVars: map[string]string{"JENKINS_URL": "http://jenkins.example.com"}, want: true},
		{name: "BUILD_NUMBER", envVars: map[string]string{"BUILD_NUMBER": "123"}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupCleanEnv(t, tt.envVars)
			assert.Equal(t, tt.want, IsCIEnvironment())
		})
	}
}

func TestTerminalFD_NonTerminals(t *testing.T) {
	_, ok := TerminalFD(strings.NewReader("x"))
	assert.False(t, ok, "non-file reader is never a terminal")

	f, err := os.Create(filepath.Join(t.TempDir(), "plain"))
	require.NoError(t, err)
	defer f.Close()

	_, ok = TerminalFD(f)
	assert.False(t, ok, "regular file is not a terminal")
	assert.False(t, IsInteractive(f))
}
