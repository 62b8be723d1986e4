// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() builds a Config with defaults; Load layers file and env on top.
// - Validate reports every problem at once, wrapping ErrInvalidConfig.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Store drivers accepted by StoreDriver.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// StoreDriver is one of memory, sqlite, postgres.
	StoreDriver string `koanf:"store_driver"`

	// StoreDSN is a file path for sqlite or a connection string for postgres.
	StoreDSN string `koanf:"store_dsn"`

	// TaxonomyFile points at a combined YAML taxonomy. SkillsFile and
	// BranchesFile are the split alternative; both must be set together.
	TaxonomyFile string `koanf:"taxonomy_file"`
	SkillsFile   string `koanf:"skills_file"`
	BranchesFile string `koanf:"branches_file"`

	// CollegesURL serves {"allCollege":[{"name":...}]}. Empty disables the lookup.
	CollegesURL string `koanf:"colleges_url"`

	// CollegesTimeoutMS bounds the college fetch. 0 means no timeout.
	CollegesTimeoutMS int `koanf:"colleges_timeout_ms"`

	// AllowReassign enables the explicit reassign operation.
	AllowReassign bool `koanf:"allow_reassign"`

	// MaxSuggestions caps ranked suggestions. 0 means all.
	MaxSuggestions int `koanf:"max_suggestions"`

	// MaxResumeBytes caps résumé uploads.
	MaxResumeBytes int64 `koanf:"max_resume_bytes"`

	// IntakeRatePerSec and IntakeBurst limit intake writes. A rate of 0
	// disables limiting.
	IntakeRatePerSec float64 `koanf:"intake_rate_per_sec"`
	IntakeBurst      int     `koanf:"intake_burst"`

	// AMQPURL enables broker notifications; empty logs them instead.
	AMQPURL      string `koanf:"amqp_url"`
	AMQPExchange string `koanf:"amqp_exchange"`

	// Archive settings for an S3-compatible bucket. Empty bucket disables it.
	ArchiveBucket    string `koanf:"archive_bucket"`
	ArchiveEndpoint  string `koanf:"archive_endpoint"`
	ArchiveRegion    string `koanf:"archive_region"`
	ArchiveAccessKey string `koanf:"archive_access_key"`
	ArchiveSecretKey string `koanf:"archive_secret_key"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		StoreDriver:      DriverSQLite,
		StoreDSN:         "data/hrms.db",
		AllowReassign:    true,
		MaxResumeBytes:   5 << 20,
		IntakeRatePerSec: 5,
		IntakeBurst:      10,
		AMQPExchange:     "hrms.interns",
		ArchiveRegion:    "auto",
	}
}

// CollegesTimeout returns the college fetch timeout; zero means none.
func (c *Config) CollegesTimeout() time.Duration {
	return time.Duration(c.CollegesTimeoutMS) * time.Millisecond
}

// Validate checks the configuration and reports every problem found.
func (c *Config) Validate() error {
	var problems []error
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if strings.TrimSpace(c.Addr) == "" {
		add("addr must not be empty")
	}
	switch strings.ToLower(c.StoreDriver) {
	case DriverMemory, DriverSQLite:
	case DriverPostgres:
		if strings.TrimSpace(c.StoreDSN) == "" {
			add("store_dsn is required for postgres")
		}
	default:
		add("unknown store_driver %q", c.StoreDriver)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		add("unknown log_format %q", c.LogFormat)
	}
	if (c.SkillsFile == "") != (c.BranchesFile == "") {
		add("skills_file and branches_file must be set together")
	}
	if c.CollegesTimeoutMS < 0 {
		add("colleges_timeout_ms must not be negative")
	}
	if c.MaxSuggestions < 0 {
		add("max_suggestions must not be negative")
	}
	if c.MaxResumeBytes <= 0 {
		add("max_resume_bytes must be positive")
	}
	if c.IntakeRatePerSec < 0 {
		add("intake_rate_per_sec must not be negative")
	}
	if c.IntakeBurst < 0 {
		add("intake_burst must not be negative")
	}
	if c.ArchiveBucket != "" && (c.ArchiveAccessKey == "") != (c.ArchiveSecretKey == "") {
		add("archive_access_key and archive_secret_key must be set together")
	}
	return errors.Join(problems...)
}
