package app

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/devtasks/internal/gotasks"
	"github.com/agentstation/devtasks/pkg/constants"
	"github.com/agentstation/devtasks/pkg/errors"
	"github.com/agentstation/devtasks/pkg/licenses"
)

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// License manifest
	LicensesFile     string
	LicensesExclude  []string
	WWHRDBinary      string
	BootstrapOrigin  string
	BootstrapLicense string

	// Go tasks
	Dir             string
	BuildTags       []string
	CycloLimit      int
	GolangCIConfig  string
	LintWhitelist   []string
	MisspellIgnored []string
	GenerateTargets []string
	BootstrapFile   string
	VendorPrune     []string

	// Logging configuration
	LogLevel    string // --log-level flag
	EnvLogLevel string // LOG_LEVEL environment variable
	LogFormat   string
	LogOutput   string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (handled by cobra)
//  2. DEVTASKS_* environment variables
//  3. .env files
//  4. Config file (.devtasks.yaml in the working or home directory)
//  5. Defaults
//
// An empty configFile searches the standard locations.
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(constants.ConfigName)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !stderrors.As(err, &notFound) {
			return nil, errors.NewConfigError("config", err.Error(), err)
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color") || os.Getenv("NO_COLOR") != "",
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		LicensesFile:     v.GetString("licenses.file"),
		LicensesExclude:  getStringSlice(v, "licenses.exclude"),
		WWHRDBinary:      v.GetString("licenses.wwhrd"),
		BootstrapOrigin:  v.GetString("licenses.bootstrap_entry.origin"),
		BootstrapLicense: v.GetString("licenses.bootstrap_entry.license"),

		Dir:             v.GetString("dir"),
		BuildTags:       getStringSlice(v, "build_tags"),
		CycloLimit:      v.GetInt("cyclo.limit"),
		GolangCIConfig:  v.GetString("golangci.config"),
		LintWhitelist:   getStringSlice(v, "lint.whitelist"),
		MisspellIgnored: getStringSlice(v, "misspell.ignored"),
		GenerateTargets: getStringSlice(v, "generate.targets"),
		BootstrapFile:   v.GetString("deps.bootstrap_file"),
		VendorPrune:     getStringSlice(v, "deps.prune"),

		EnvLogLevel: os.Getenv("LOG_LEVEL"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "auto"),
		LogOutput:   getEnvOrDefault("LOG_OUTPUT", "stderr"),
	}

	if config.CycloLimit <= 0 {
		return nil, errors.NewConfigError("cyclo.limit", "must be positive", nil)
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("licenses.file", constants.LicenseFile)
	v.SetDefault("licenses.bootstrap_entry.origin", constants.WWHRDModule)
	v.SetDefault("licenses.bootstrap_entry.license", constants.WWHRDLicense)
	v.SetDefault("cyclo.limit", constants.DefaultCycloLimit)
	v.SetDefault("golangci.config", constants.DefaultGolangCIConfig)
	v.SetDefault("deps.bootstrap_file", constants.DefaultBootstrapFile)
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// TaskSettings returns the Go task settings.
func (c *Config) TaskSettings() gotasks.Settings {
	return gotasks.Settings{
		Dir:             c.Dir,
		BuildTags:       c.BuildTags,
		CycloLimit:      c.CycloLimit,
		GolangCIConfig:  c.GolangCIConfig,
		LintWhitelist:   c.LintWhitelist,
		MisspellIgnored: c.MisspellIgnored,
		GenerateTargets: c.GenerateTargets,
		BootstrapFile:   c.BootstrapFile,
		VendorPrune:     c.VendorPrune,
	}
}

// BootstrapEntry returns the license entry injected for the discovery tool.
func (c *Config) BootstrapEntry() licenses.Entry {
	return licenses.NewEntry(c.BootstrapOrigin, c.BootstrapLicense)
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		_ = godotenv.Load(envFile)
	}
}

// getStringSlice reads a list that may come from YAML or from a comma
// separated environment variable.
func getStringSlice(v *viper.Viper, key string) []string {
	var out []string
	for _, item := range v.GetStringSlice(key) {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
