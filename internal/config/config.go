// Package config holds the probe configuration record and its merge rules:
// command-line flags win over environment variables, which win over the
// optional YAML defaults file.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables consulted for credentials, so passwords can stay
// off the command line of a monitoring host.
const (
	EnvUsername = "CHECK_JMX_USERNAME"
	EnvPassword = "CHECK_JMX_PASSWORD"
)

// DefaultTimeout bounds connect and invoke when neither flag nor defaults
// file say otherwise.
const DefaultTimeout = 10 * time.Second

// Config is everything one probe run needs.
type Config struct {
	URL       string
	Object    string
	Operation string
	Username  string
	Password  string
	Timeout   time.Duration
	Verbose   bool
}

// fileConfig is the YAML shape of the defaults file.
type fileConfig struct {
	URL       string `yaml:"url"`
	Object    string `yaml:"object"`
	Operation string `yaml:"operation"`
	Username  string `yaml:"username"`
	Password  string `yaml:"password"`
	TimeoutMS int    `yaml:"timeout_ms"`
}

// LoadFile reads a YAML defaults file.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return Config{
		URL:       fc.URL,
		Object:    fc.Object,
		Operation: fc.Operation,
		Username:  fc.Username,
		Password:  fc.Password,
		Timeout:   time.Duration(fc.TimeoutMS) * time.Millisecond,
	}, nil
}

// ApplyEnv fills missing credentials from the environment. A .env file in
// the working directory is honored when present.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()
	if c.Username == "" {
		c.Username = os.Getenv(EnvUsername)
	}
	if c.Password == "" {
		c.Password = os.Getenv(EnvPassword)
	}
}

// Merge fills every still-empty field from the defaults file.
func (c *Config) Merge(defaults Config) {
	if c.URL == "" {
		c.URL = defaults.URL
	}
	if c.Object == "" {
		c.Object = defaults.Object
	}
	if c.Operation == "" {
		c.Operation = defaults.Operation
	}
	if c.Username == "" {
		c.Username = defaults.Username
	}
	if c.Password == "" {
		c.Password = defaults.Password
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
}

// Normalize applies the credential invariant (both-or-neither) and the
// timeout default.
func (c *Config) Normalize() {
	if c.Username == "" || c.Password == "" {
		c.Username, c.Password = "", ""
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// MissingRequired lists the required settings that are still unset, in
// flag-name form for the usage message.
func (c *Config) MissingRequired() []string {
	var missing []string
	if c.URL == "" {
		missing = append(missing, "-U/--url")
	}
	if c.Object == "" {
		missing = append(missing, "-O/--object")
	}
	if c.Operation == "" {
		missing = append(missing, "-o/--operation")
	}
	return missing
}
