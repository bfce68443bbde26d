package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_OneSidedCredentialsDropped(t *testing.T) {
	c := Config{Username: "monitor"}
	c.Normalize()
	assert.Empty(t, c.Username)
	assert.Empty(t, c.Password)

	c = Config{Password: "secret"}
	c.Normalize()
	assert.Empty(t, c.Username)
	assert.Empty(t, c.Password)

	c = Config{Username: "monitor", Password: "secret"}
	c.Normalize()
	assert.Equal(t, "monitor", c.Username)
	assert.Equal(t, "secret", c.Password)
}

func TestNormalize_TimeoutDefault(t *testing.T) {
	c := Config{}
	c.Normalize()
	assert.Equal(t, DefaultTimeout, c.Timeout)

	c = Config{Timeout: 3 * time.Second}
	c.Normalize()
	assert.Equal(t, 3*time.Second, c.Timeout)
}

func TestMissingRequired(t *testing.T) {
	c := Config{}
	assert.Equal(t, []string{"-U/--url", "-O/--object", "-o/--operation"}, c.MissingRequired())

	c = Config{URL: "http://h:8778/jolokia", Operation: "health"}
	assert.Equal(t, []string{"-O/--object"}, c.MissingRequired())

	c = Config{URL: "http://h:8778/jolokia", Object: "a:b=c", Operation: "health"}
	assert.Empty(t, c.MissingRequired())
}

func TestMerge_FillsOnlyEmptyFields(t *testing.T) {
	c := Config{URL: "http://flag:8778/jolokia"}
	c.Merge(Config{
		URL:       "http://file:8778/jolokia",
		Object:    "org.example:type=Health",
		Operation: "health",
		Timeout:   5 * time.Second,
	})
	assert.Equal(t, "http://flag:8778/jolokia", c.URL, "flag value must win")
	assert.Equal(t, "org.example:type=Health", c.Object)
	assert.Equal(t, "health", c.Operation)
	assert.Equal(t, 5*time.Second, c.Timeout)
}

func TestApplyEnv_CredentialFallback(t *testing.T) {
	t.Setenv(EnvUsername, "env-user")
	t.Setenv(EnvPassword, "env-pass")

	c := Config{}
	c.ApplyEnv()
	assert.Equal(t, "env-user", c.Username)
	assert.Equal(t, "env-pass", c.Password)

	c = Config{Username: "flag-user", Password: "flag-pass"}
	c.ApplyEnv()
	assert.Equal(t, "flag-user", c.Username, "flag value must win over environment")
	assert.Equal(t, "flag-pass", c.Password)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "check-jmx.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
url: http://app-host:8778/jolokia
object: org.example:type=Health
operation: health
username: monitor
timeout_ms: 7000
`), 0o600))

	c, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "http://app-host:8778/jolokia", c.URL)
	assert.Equal(t, "org.example:type=Health", c.Object)
	assert.Equal(t, "health", c.Operation)
	assert.Equal(t, "monitor", c.Username)
	assert.Equal(t, 7*time.Second, c.Timeout)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: [unclosed"), 0o600))
	_, err := LoadFile(path)
	assert.Error(t, err)
}
