package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// SMTPConfig holds the outgoing mail server settings. The password is
// not part of the file; it lives in the system keyring (or the
// MAILPOST_SMTP_PASSWORD environment variable).
type SMTPConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`

	// From is the envelope/header sender. Defaults to Username.
	From string `mapstructure:"from" yaml:"from"`

	// Security selects the transport: "tls", "starttls", or "plain".
	Security string `mapstructure:"security" yaml:"security"`
}

// Config is the top-level application configuration.
type Config struct {
	// PostsDir is where draft files live. Empty means the current
	// working directory.
	PostsDir string `mapstructure:"posts_dir" yaml:"posts_dir"`

	// Recipient is the address posts are submitted to.
	Recipient string `mapstructure:"recipient" yaml:"recipient"`

	// Categories are known category names, offered for completion when
	// initializing a post. Free-form values are still accepted.
	Categories []string `mapstructure:"categories" yaml:"categories"`

	// DefaultTags is the comma-separated tag list preset on new posts.
	DefaultTags string `mapstructure:"default_tags" yaml:"default_tags"`

	// CategoryIsTag also appends the chosen category to the tag list.
	CategoryIsTag bool `mapstructure:"category_is_tag" yaml:"category_is_tag"`

	// Converter selects content conversion: empty disables it,
	// "builtin" uses the in-process Markdown renderer, anything else is
	// run as an external command with the content on stdin.
	Converter string `mapstructure:"converter" yaml:"converter"`

	// CutoffMarker separates convertible content from the directive
	// block when a converter is configured.
	CutoffMarker string `mapstructure:"cutoff_marker" yaml:"cutoff_marker"`

	// Mailer selects the transport: "smtp" sends, "mbox" appends to a
	// local mbox file instead.
	Mailer string `mapstructure:"mailer" yaml:"mailer"`

	// MboxPath is the target of the mbox mailer. Empty means
	// outbox.mbox in the data directory.
	MboxPath string `mapstructure:"mbox_path" yaml:"mbox_path"`

	SMTP SMTPConfig `mapstructure:"smtp" yaml:"smtp"`
}

// ConverterMode classifies the Converter setting.
type ConverterMode int

const (
	ConverterDisabled ConverterMode = iota
	ConverterBuiltin
	ConverterCommand
)

// Mailer values.
const (
	MailerSMTP = "smtp"
	MailerMbox = "mbox"
)

// SMTP security values.
const (
	SecurityTLS      = "tls"
	SecurityStartTLS = "starttls"
	SecurityPlain    = "plain"
)

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/mailpost/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "mailpost", "config.yaml")
}

// DefaultDataDir returns the directory holding the draft index database
// and the default mbox outbox.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "mailpost")
}

// defaultConfig returns a sensible default configuration.
func defaultConfig() *Config {
	return &Config{
		Categories:   []string{"general"},
		CutoffMarker: "<!--end-of-post-->",
		Mailer:       MailerSMTP,
		SMTP: SMTPConfig{
			Port:     "587",
			Security: SecurityStartTLS,
		},
	}
}

// Load reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("categories", []string{"general"})
	v.SetDefault("cutoff_marker", "<!--end-of-post-->")
	v.SetDefault("mailer", MailerSMTP)
	v.SetDefault("smtp.port", "587")
	v.SetDefault("smtp.security", SecurityStartTLS)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the given configuration to a YAML file at path, creating
// parent directories if needed.
func Save(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("posts_dir", cfg.PostsDir)
	v.Set("recipient", cfg.Recipient)
	v.Set("categories", cfg.Categories)
	v.Set("default_tags", cfg.DefaultTags)
	v.Set("category_is_tag", cfg.CategoryIsTag)
	v.Set("converter", cfg.Converter)
	v.Set("cutoff_marker", cfg.CutoffMarker)
	v.Set("mailer", cfg.Mailer)
	v.Set("mbox_path", cfg.MboxPath)
	v.Set("smtp", cfg.SMTP)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}

// ConverterMode classifies the converter setting.
func (c *Config) ConverterMode() ConverterMode {
	switch strings.TrimSpace(c.Converter) {
	case "":
		return ConverterDisabled
	case "builtin":
		return ConverterBuiltin
	default:
		return ConverterCommand
	}
}

// ConverterCommandLine splits the converter value into a command name
// and its arguments. Only meaningful in ConverterCommand mode.
func (c *Config) ConverterCommandLine() (string, []string) {
	fields := strings.Fields(c.Converter)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// ConverterEnabled reports whether any conversion step runs on send.
func (c *Config) ConverterEnabled() bool {
	return c.ConverterMode() != ConverterDisabled
}

// ResolvePostsDir returns the directory for draft files: the configured
// one (with ~ expanded) or the current working directory when unset.
func (c *Config) ResolvePostsDir() (string, error) {
	if c.PostsDir == "" {
		dir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
		return dir, nil
	}

	if strings.HasPrefix(c.PostsDir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding posts_dir: %w", err)
		}
		return filepath.Join(home, c.PostsDir[2:]), nil
	}

	return c.PostsDir, nil
}

// SMTPFrom returns the sender address: the explicit From or, when
// unset, the SMTP username.
func (c *Config) SMTPFrom() string {
	if c.SMTP.From != "" {
		return c.SMTP.From
	}
	return c.SMTP.Username
}

// ResolveMboxPath returns the mbox outbox target, defaulting to
// outbox.mbox in the data directory.
func (c *Config) ResolveMboxPath() string {
	if c.MboxPath != "" {
		return c.MboxPath
	}
	return filepath.Join(DefaultDataDir(), "outbox.mbox")
}
