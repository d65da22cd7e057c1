package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the public Petstore deployment the suite was written against.
const DefaultBaseURL = "http://5.181.109.28:9090/api/v3"

// Config drives one contract run. Precedence: defaults, YAML file, environment, flags.
type Config struct {
	BaseURL         string        `yaml:"baseUrl"`
	Features        []string      `yaml:"features"`
	Scenarios       []string      `yaml:"scenarios"`
	RequestTimeout  time.Duration `yaml:"requestTimeout"`
	LogFormat       string        `yaml:"logFormat"`
	LogLevel        string        `yaml:"logLevel"`
	TraceExporter   string        `yaml:"traceExporter"`
	FixtureCleanup  bool          `yaml:"fixtureCleanup"`
	ValidateOpenAPI bool          `yaml:"validateOpenAPI"`
	// Twin boots the in-process Petstore replica and targets it instead of BaseURL.
	Twin bool `yaml:"twin"`
}

// DefaultConfig returns the settings used when nothing else is configured.
func DefaultConfig() Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		RequestTimeout:  30 * time.Second,
		LogFormat:       "text",
		LogLevel:        "info",
		TraceExporter:   "none",
		FixtureCleanup:  true,
		ValidateOpenAPI: true,
	}
}

// LoadConfig reads .env, then the YAML file at path (or CONTRACT_CONFIG), then
// environment variables. An empty path with no CONTRACT_CONFIG skips the file.
func LoadConfig(path string) (Config, error) {
	loadEnvFile()

	cfg := DefaultConfig()
	if path == "" {
		path = strings.TrimSpace(os.Getenv("CONTRACT_CONFIG"))
	}
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.BaseURL = envDefault("PETSTORE_BASE_URL", cfg.BaseURL)
	cfg.Features = listWithDefault("CONTRACT_FEATURES", cfg.Features)
	cfg.Scenarios = listWithDefault("CONTRACT_SCENARIOS", cfg.Scenarios)
	cfg.RequestTimeout = getDurationWithDefault("REQUEST_TIMEOUT", cfg.RequestTimeout)
	cfg.LogFormat = envDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.LogLevel = envDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.TraceExporter = envDefault("OTEL_TRACES_EXPORTER", cfg.TraceExporter)
	cfg.FixtureCleanup = getBoolWithDefault("FIXTURE_CLEANUP", cfg.FixtureCleanup)
	cfg.ValidateOpenAPI = getBoolWithDefault("VALIDATE_OPENAPI", cfg.ValidateOpenAPI)
	cfg.Twin = getBoolWithDefault("CONTRACT_TWIN", cfg.Twin)

	return cfg, nil
}

// Validate reports settings that would make the run meaningless.
func (c Config) Validate() error {
	var errs []error
	if !c.Twin && strings.TrimSpace(c.BaseURL) == "" {
		errs = append(errs, errors.New("base URL is required unless the twin is enabled"))
	}
	if c.RequestTimeout <= 0 {
		errs = append(errs, fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout))
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("log format must be json or text, got %q", c.LogFormat))
	}
	return errors.Join(errs...)
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

// loadEnvFile loads ENV_FILE or ./.env when present. Variables already set win.
func loadEnvFile() {
	path := envDefault("ENV_FILE", ".env")
	if _, err := os.Stat(path); err != nil {
		return
	}
	if err := godotenv.Load(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", path, err)
	}
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getDurationWithDefault(key string, defaultValue time.Duration) time.Duration {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

func getBoolWithDefault(key string, defaultValue bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

func listWithDefault(key string, defaultValue []string) []string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
