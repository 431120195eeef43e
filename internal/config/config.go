package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/carbonplan/internal/company"
	"github.com/rshade/carbonplan/internal/scenario"
)

// Supported LLM providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

const (
	defaultAPIKeyEnv       = "OPENAI_API_KEY"
	defaultModel           = "gpt-4.1"
	defaultTemperature     = 0.2
	defaultTimeoutSeconds  = 120
	defaultMaxRetries      = 2
	defaultCacheTTLSeconds = 3600
	defaultSessionTTL      = 1800
	defaultServerAddress   = "127.0.0.1:8501"
	configFileName         = "config.yaml"
)

// ErrInvalidConfig wraps every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the effective carbonplan configuration.
type Config struct {
	Output   OutputConfig   `yaml:"output"   json:"output"`
	Logging  LoggingConfig  `yaml:"logging"  json:"logging"`
	Scenario ScenarioConfig `yaml:"scenario" json:"scenario"`
	LLM      LLMConfig      `yaml:"llm"      json:"llm"`
	Cache    CacheConfig    `yaml:"cache"    json:"cache"`
	Server   ServerConfig   `yaml:"server"   json:"server"`

	configPath string
}

// OutputConfig controls CLI rendering.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format" json:"default_format"`
	Precision     int    `yaml:"precision"      json:"precision"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `yaml:"level"          json:"level"`
	Format string `yaml:"format"         json:"format"`
	File   string `yaml:"file,omitempty" json:"file,omitempty"`
}

// ScenarioConfig holds the values pre-filled in the CLI flags and forms.
type ScenarioConfig struct {
	BaselineYear         int     `yaml:"baseline_year"          json:"baseline_year"`
	GrowthRatePercent    float64 `yaml:"growth_rate_percent"    json:"growth_rate_percent"`
	ReductionRatePercent float64 `yaml:"reduction_rate_percent" json:"reduction_rate_percent"`
	HorizonYears         int     `yaml:"horizon_years"          json:"horizon_years"`
}

// LLMConfig selects and tunes the roadmap provider. The key itself is never
// stored; APIKeyEnv names the environment variable that holds it.
type LLMConfig struct {
	Provider       string  `yaml:"provider"           json:"provider"`
	Model          string  `yaml:"model"              json:"model"`
	BaseURL        string  `yaml:"base_url,omitempty" json:"base_url,omitempty"`
	APIKeyEnv      string  `yaml:"api_key_env"        json:"api_key_env"`
	Temperature    float64 `yaml:"temperature"        json:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds"    json:"timeout_seconds"`
	MaxRetries     int     `yaml:"max_retries"        json:"max_retries"`
}

// geminiAPIKeyEnv is used for Gemini when api_key_env was left at the OpenAI default.
const geminiAPIKeyEnv = "GEMINI_API_KEY"

// KeyEnvName returns the environment variable holding the provider key.
func (c LLMConfig) KeyEnvName() string {
	if c.Provider == ProviderGemini && c.APIKeyEnv == defaultAPIKeyEnv {
		return geminiAPIKeyEnv
	}
	return c.APIKeyEnv
}

// APIKey reads the key from the configured environment variable.
func (c LLMConfig) APIKey() string {
	return strings.TrimSpace(os.Getenv(c.KeyEnvName()))
}

// CacheConfig controls the roadmap response cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"             json:"enabled"`
	Directory  string `yaml:"directory,omitempty" json:"directory,omitempty"`
	TTLSeconds int    `yaml:"ttl_seconds"         json:"ttl_seconds"`
}

// ServerConfig controls the web form.
type ServerConfig struct {
	Address           string `yaml:"address"             json:"address"`
	SessionTTLSeconds int    `yaml:"session_ttl_seconds" json:"session_ttl_seconds"`
}

// Defaults returns the built-in configuration without reading any file or
// environment variable.
func Defaults() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFormat: string(scenario.OutputTable),
			Precision:     2,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Scenario: ScenarioConfig{
			BaselineYear:         company.BaselineYears[0],
			GrowthRatePercent:    0,
			ReductionRatePercent: 50,
			HorizonYears:         5,
		},
		LLM: LLMConfig{
			Provider:       ProviderOpenAI,
			Model:          defaultModel,
			APIKeyEnv:      defaultAPIKeyEnv,
			Temperature:    defaultTemperature,
			TimeoutSeconds: defaultTimeoutSeconds,
			MaxRetries:     defaultMaxRetries,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: defaultCacheTTLSeconds,
		},
		Server: ServerConfig{
			Address:           defaultServerAddress,
			SessionTTLSeconds: defaultSessionTTL,
		},
	}
}

// New returns the defaults overlaid with $CARBONPLAN_HOME/config.yaml, when
// present, and then with CARBONPLAN_* environment variables. A config file
// that fails to parse is ignored.
func New() *Config {
	cfg := Defaults()

	if dir, err := GetConfigDir(); err == nil {
		cfg.configPath = filepath.Join(dir, configFileName)
		cfg.Cache.Directory = filepath.Join(dir, cacheSubdir)
		_ = cfg.Load()
	}

	cfg.ApplyEnvOverrides()
	return cfg
}

// Load reads the config file on top of the current values. Sections that
// are partially specified keep their remaining fields.
func (c *Config) Load() error {
	data, err := os.ReadFile(c.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", c.configPath, err)
	}
	if err = yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config file %s: %w", c.configPath, err)
	}
	return nil
}

// LoadFrom sets the config path and loads it.
func (c *Config) LoadFrom(path string) error {
	c.configPath = path
	return c.Load()
}

// Save writes the config as YAML to its path, creating the directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := c.ToYAML()
	if err != nil {
		return err
	}
	if err = os.WriteFile(c.configPath, data, 0600); err != nil {
		return fmt.Errorf("writing config file %s: %w", c.configPath, err)
	}
	return nil
}

// Path returns the file backing this config.
func (c *Config) Path() string {
	return c.configPath
}

// SetPath changes the file backing this config.
func (c *Config) SetPath(path string) {
	c.configPath = path
}

// ToYAML marshals the config.
func (c *Config) ToYAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshalling config: %w", err)
	}
	return data, nil
}

// ApplyEnvOverrides applies CARBONPLAN_* variables on top of the current
// values. Unparseable booleans are ignored.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("CARBONPLAN_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("CARBONPLAN_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("CARBONPLAN_LLM_PROVIDER"); v != "" {
		c.LLM.Provider = strings.ToLower(v)
	}
	if v := os.Getenv("CARBONPLAN_LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("CARBONPLAN_CACHE_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = enabled
		}
	}
	if v := os.Getenv("CARBONPLAN_SERVER_ADDRESS"); v != "" {
		c.Server.Address = v
	}
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
	}

	if _, err := scenario.ParseOutputFormat(c.Output.DefaultFormat); err != nil {
		fail("output.default_format %q", c.Output.DefaultFormat)
	}
	if c.Output.Precision < 0 || c.Output.Precision > 6 {
		fail("output.precision %d (want 0..6)", c.Output.Precision)
	}

	switch c.Logging.Format {
	case "console", "json":
	default:
		fail("logging.format %q (want console or json)", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "trace", "debug", "info", "warn", "error":
	default:
		fail("logging.level %q", c.Logging.Level)
	}

	defaults := scenario.Input{
		GrowthRatePercent:    c.Scenario.GrowthRatePercent,
		ReductionRatePercent: c.Scenario.ReductionRatePercent,
		HorizonYears:         c.Scenario.HorizonYears,
	}
	if err := defaults.Validate(); err != nil {
		fail("scenario: %v", err)
	}
	if c.Scenario.BaselineYear < company.BaselineYears[0] ||
		c.Scenario.BaselineYear > company.BaselineYears[len(company.BaselineYears)-1] {
		fail("scenario.baseline_year %d", c.Scenario.BaselineYear)
	}

	switch c.LLM.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		fail("llm.provider %q (want openai or gemini)", c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		fail("llm.model is empty")
	}
	if c.LLM.APIKeyEnv == "" {
		fail("llm.api_key_env is empty")
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		fail("llm.temperature %g (want 0..2)", c.LLM.Temperature)
	}
	if c.LLM.TimeoutSeconds <= 0 {
		fail("llm.timeout_seconds %d", c.LLM.TimeoutSeconds)
	}
	if c.LLM.MaxRetries < 0 {
		fail("llm.max_retries %d", c.LLM.MaxRetries)
	}

	if c.Cache.TTLSeconds < 0 {
		fail("cache.ttl_seconds %d", c.Cache.TTLSeconds)
	}

	if c.Server.Address == "" {
		fail("server.address is empty")
	}
	if c.Server.SessionTTLSeconds <= 0 {
		fail("server.session_ttl_seconds %d", c.Server.SessionTTLSeconds)
	}

	return errors.Join(errs...)
}
