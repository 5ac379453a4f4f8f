package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"PharmaNewsAgent/internal/domain"
)

const (
	configPathEnv       = "PHARMA_NEWS_CONFIG"
	databaseDSNEnv      = "DATABASE_DSN"
	backendAPIKeyEnv    = "SUMMARIZER_API_KEY"
	linkedinTokenEnv    = "LINKEDIN_ACCESS_TOKEN"
	facebookTokenEnv    = "FACEBOOK_ACCESS_TOKEN"
	twitterTokenEnv     = "TWITTER_ACCESS_TOKEN"
	storageDriverSQLite = "sqlite"
	storageDriverPG     = "postgres"
)

// Config holds all settings required across the application.
type Config struct {
	Logging    LoggingConfig             `yaml:"logging"`
	DataDir    string                    `yaml:"dataDir"`
	Feeds      []FeedConfig              `yaml:"feeds"`
	Pipeline   PipelineConfig            `yaml:"pipeline"`
	Summarizer SummarizerConfig          `yaml:"summarizer"`
	Backend    BackendConfig             `yaml:"backend"`
	Scheduler  SchedulerConfig           `yaml:"scheduler"`
	Storage    StorageConfig             `yaml:"storage"`
	Social     map[string]PlatformConfig `yaml:"social"`
}

// LoggingConfig controls log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// FeedConfig describes one syndication feed endpoint.
type FeedConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// PipelineConfig bounds one pipeline cycle.
type PipelineConfig struct {
	MaxArticlesPerCycle int      `yaml:"maxArticlesPerCycle"`
	Platforms           []string `yaml:"platforms"`
	FetchFullContent    bool     `yaml:"fetchFullContent"`
	PostToSocial        bool     `yaml:"postToSocial"`
}

// SummarizerConfig bounds summarizer input and output.
type SummarizerConfig struct {
	MaxInputChars   int `yaml:"maxInputChars"`
	MaxSummaryChars int `yaml:"maxSummaryChars"`
	Retries         int `yaml:"retries"`
}

// BackendConfig defines how to contact the summarization model service.
type BackendConfig struct {
	Endpoint       string `yaml:"endpoint"`
	Model          string `yaml:"model"`
	APIKey         string `yaml:"apiKey"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Timeout resolves the configured backend timeout.
func (b BackendConfig) Timeout() time.Duration {
	if b.TimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// SchedulerConfig defines when continuous mode runs cycles. The expression is a
// cron spec; "@every 24h" style intervals are accepted.
type SchedulerConfig struct {
	CronExpression string `yaml:"cronExpression"`
}

// StorageConfig selects the processing-record store.
type StorageConfig struct {
	Driver string `yaml:"driver"` // sqlite or postgres
	Path   string `yaml:"path"`   // sqlite file path
	DSN    string `yaml:"dsn"`    // postgres connection string
}

// PlatformConfig carries the recognized credential keys for one platform.
// Which keys are required depends on the platform; unknown platform names are
// rejected at load time, not at publish time.
type PlatformConfig struct {
	Endpoint     string `yaml:"endpoint"`
	AccessToken  string `yaml:"accessToken"`
	APIKey       string `yaml:"apiKey"`
	APISecret    string `yaml:"apiSecret"`
	AccessSecret string `yaml:"accessSecret"`
	PageID       string `yaml:"pageId"`
	AuthorURN    string `yaml:"authorUrn"`
}

// Load reads YAML configuration (path argument, or PHARMA_NEWS_CONFIG when
// empty), applies environment overrides, and validates the result. A .env file
// in the working directory is honored if present.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(databaseDSNEnv); v != "" {
		c.Storage.DSN = v
	}
	if v := os.Getenv(backendAPIKeyEnv); v != "" {
		c.Backend.APIKey = v
	}

	for name, env := range map[string]string{
		string(domain.PlatformLinkedIn): linkedinTokenEnv,
		string(domain.PlatformFacebook): facebookTokenEnv,
		string(domain.PlatformTwitter):  twitterTokenEnv,
	} {
		v := os.Getenv(env)
		if v == "" {
			continue
		}
		pc := c.Social[name]
		pc.AccessToken = v
		if c.Social == nil {
			c.Social = map[string]PlatformConfig{}
		}
		c.Social[name] = pc
	}
}

// Validate rejects configurations that would only fail later at publish or
// persist time: unknown platform names, unknown storage drivers, feeds without
// URLs, and platform entries missing their required credentials.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case storageDriverSQLite, storageDriverPG:
	default:
		return fmt.Errorf("storage: unknown driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == storageDriverPG && c.Storage.DSN == "" {
		return fmt.Errorf("storage: postgres driver requires a dsn")
	}

	for i, feed := range c.Feeds {
		if feed.URL == "" {
			return fmt.Errorf("feeds[%d]: url is required", i)
		}
	}

	for _, name := range c.Pipeline.Platforms {
		if !domain.IsKnownPlatform(name) {
			return fmt.Errorf("pipeline: unknown platform %q", name)
		}
	}

	for name, pc := range c.Social {
		if !domain.IsKnownPlatform(name) {
			return fmt.Errorf("social: unknown platform %q", name)
		}
		if err := validateCredentials(domain.Platform(name), pc); err != nil {
			return fmt.Errorf("social: %s: %w", name, err)
		}
	}

	return nil
}

func validateCredentials(platform domain.Platform, pc PlatformConfig) error {
	switch platform {
	case domain.PlatformLinkedIn:
		if pc.AccessToken == "" {
			return fmt.Errorf("accessToken is required")
		}
	case domain.PlatformFacebook:
		if pc.AccessToken == "" || pc.PageID == "" {
			return fmt.Errorf("accessToken and pageId are required")
		}
	case domain.PlatformTwitter:
		if pc.APIKey == "" || pc.APISecret == "" || pc.AccessToken == "" || pc.AccessSecret == "" {
			return fmt.Errorf("apiKey, apiSecret, accessToken and accessSecret are required")
		}
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		DataDir: "data",
		Feeds: []FeedConfig{
			{Name: "FiercePharma", URL: "https://www.fiercepharma.com/rss/xml"},
			{Name: "BioPharma Dive", URL: "https://www.biopharmadive.com/feeds/news/"},
			{Name: "Pharmaceutical Technology", URL: "https://www.pharmaceutical-technology.com/feed/"},
			{Name: "Drug Discovery Trends", URL: "https://www.drugdiscoverytrends.com/feed/"},
			{Name: "PharmTech", URL: "https://www.pharmtech.com/feed"},
		},
		Pipeline: PipelineConfig{
			MaxArticlesPerCycle: 10,
			Platforms: []string{
				string(domain.PlatformLinkedIn),
				string(domain.PlatformFacebook),
				string(domain.PlatformTwitter),
			},
			FetchFullContent: true,
		},
		Summarizer: SummarizerConfig{
			MaxInputChars:   4000,
			MaxSummaryChars: 600,
			Retries:         2,
		},
		Backend: BackendConfig{
			Endpoint:       "http://localhost:8080/summarize",
			Model:          "facebook/bart-large-cnn",
			TimeoutSeconds: 30,
		},
		Scheduler: SchedulerConfig{CronExpression: "@every 24h"},
		Storage:   StorageConfig{Driver: storageDriverSQLite, Path: "data/pharmanews.db"},
	}
}
