package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	App      App      `mapstructure:"app"`
	PubMed   PubMed   `mapstructure:"pubmed"`
	Analysis Analysis `mapstructure:"analysis"`
	Output   Output   `mapstructure:"output"`
	Server   Server   `mapstructure:"server"`
}

// App holds general application configuration.
type App struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// PubMed holds NCBI E-utilities client configuration.
type PubMed struct {
	BaseURL       string        `mapstructure:"base_url"`
	Email         string        `mapstructure:"email"`
	APIKey        string        `mapstructure:"api_key"`
	MaxResults    int           `mapstructure:"max_results"`
	DaysBack      int           `mapstructure:"days_back"`
	Timeout       string        `mapstructure:"timeout"`
	RetryAttempts int           `mapstructure:"retry_attempts"`
	SearchPause   string        `mapstructure:"search_pause"`
	Queries       []SearchQuery `mapstructure:"queries"`
}

// SearchQuery defines one search category issued against PubMed.
type SearchQuery struct {
	ID            string   `mapstructure:"id"`
	Name          string   `mapstructure:"name"`
	NameLocalized string   `mapstructure:"name_localized"`
	Query         string   `mapstructure:"query"`
	Topics        []string `mapstructure:"topics"`
}

// Analysis holds the read-only data the analysis engine is parameterized
// with. It is passed into each component at construction and never mutated.
type Analysis struct {
	HighImpactJournals []string           `mapstructure:"high_impact_journals"`
	Taxonomy           []TaxonomyCategory `mapstructure:"taxonomy"`
}

// TaxonomyCategory is one ordered group of trend keywords. Slice order is
// significant: it fixes keyword first-seen order for tie breaking.
type TaxonomyCategory struct {
	Name     string   `mapstructure:"name"`
	Keywords []string `mapstructure:"keywords"`
}

// Output holds data directory and document file names.
type Output struct {
	Directory    string `mapstructure:"directory"`
	ArticlesFile string `mapstructure:"articles_file"`
	TrendsFile   string `mapstructure:"trends_file"`
	SummaryFile  string `mapstructure:"summary_file"`
}

// Server holds dashboard server configuration.
type Server struct {
	Addr string `mapstructure:"addr"`
}

// Load reads configuration from .env, environment variables, and an optional
// yaml config file, then fills in the built-in defaults for anything the
// file left unset.
func Load(configFile string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Printf("Warning: Error loading .env file: %v\n", err)
		}
	}

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
		v.SetConfigName(".nephscope")
		v.SetConfigType("yaml")
	}

	setDefaults(v)

	if err := v.BindEnv("pubmed.api_key", "NCBI_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}
	if err := v.BindEnv("pubmed.email", "NCBI_EMAIL"); err != nil {
		return nil, fmt.Errorf("error binding environment: %w", err)
	}
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	postProcess(config)
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.debug", false)
	v.SetDefault("app.log_level", "info")

	v.SetDefault("pubmed.base_url", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils")
	v.SetDefault("pubmed.email", "researcher@example.com")
	v.SetDefault("pubmed.max_results", 50)
	v.SetDefault("pubmed.days_back", 7)
	v.SetDefault("pubmed.timeout", "30s")
	v.SetDefault("pubmed.retry_attempts", 3)
	v.SetDefault("pubmed.search_pause", "500ms")

	v.SetDefault("output.directory", "data")
	v.SetDefault("output.articles_file", "articles.json")
	v.SetDefault("output.trends_file", "trends.json")
	v.SetDefault("output.summary_file", "weekly_summary.json")

	v.SetDefault("server.addr", ":8080")
}

// postProcess fills the structured defaults viper cannot express as flat
// keys. A config file that sets its own queries, journals, or taxonomy
// replaces the built-in lists wholesale.
func postProcess(config *Config) {
	if len(config.PubMed.Queries) == 0 {
		config.PubMed.Queries = DefaultSearchQueries()
	}
	if len(config.Analysis.HighImpactJournals) == 0 {
		config.Analysis.HighImpactJournals = DefaultHighImpactJournals()
	}
	if len(config.Analysis.Taxonomy) == 0 {
		config.Analysis.Taxonomy = DefaultTaxonomy()
	}
}
