package config

import (
	"fmt"
	"os"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"BrentWatch/pkg/util"
)

var validate = validator.New()

type Config struct {
	Environment string `yaml:"environment" validate:"required"`
	Logging     struct {
		Level      string `yaml:"level" default:"info"`
		Format     string `yaml:"format" default:"console" validate:"oneof=console json"`
		Output     string `yaml:"output" default:"stdout"`
		TimeFormat string `yaml:"time_format"`
	} `yaml:"logging"`
	Metrics struct {
		Enabled bool `yaml:"enabled" default:"true"`
	} `yaml:"metrics"`
	Data struct {
		PricesPath      string `yaml:"prices_path" validate:"required"`
		EventsPath      string `yaml:"events_path"`
		PriceDateFormat string `yaml:"price_date_format" default:"02-Jan-06"`
		EventDateFormat string `yaml:"event_date_format" default:"2006-01-02"`
		OutputPath      string `yaml:"output_path" default:"results/analysis.json"`
	} `yaml:"data"`
	Analysis struct {
		Chains        int           `yaml:"chains" default:"4" validate:"min=2"`
		Draws         int           `yaml:"draws" default:"3000" validate:"min=100"`
		BurnIn        int           `yaml:"burn_in" default:"1000" validate:"min=0"`
		Seed          uint64        `yaml:"seed" default:"42"`
		ChainTimeout  time.Duration `yaml:"chain_timeout"`
		MinSeriesLen  int           `yaml:"min_series_len" default:"10" validate:"min=3"`
		GapPolicy     string        `yaml:"gap_policy" default:"none" validate:"oneof=none ffill-calendar"`
		HDIMass       float64       `yaml:"hdi_mass" default:"0.95" validate:"gt=0,lt=1"`
		Significance  float64       `yaml:"significance_threshold" default:"0.95" validate:"gt=0.5,lte=1"`
		RHatThreshold float64       `yaml:"rhat_threshold" default:"1.05" validate:"gt=1"`
		ESSFloor      float64       `yaml:"ess_floor" default:"100" validate:"gt=0"`
		ImpactWindow  int           `yaml:"impact_window" default:"30" validate:"min=0"`
		NearestEvents int           `yaml:"nearest_events" default:"5" validate:"min=0"`
	} `yaml:"analysis"`
}

// Load reads and parses a YAML configuration file, fills defaults and
// validates the result.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables. The seed override is explicit because changing the seed
// changes the answer.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("PRICES_PATH"); v != "" {
		c.Data.PricesPath = v
	}
	if v := os.Getenv("EVENTS_PATH"); v != "" {
		c.Data.EventsPath = v
	}
	if v := os.Getenv("OUTPUT_PATH"); v != "" {
		c.Data.OutputPath = v
	}
	c.Analysis.Chains = util.ParseIntDefault(os.Getenv("CHAINS"), c.Analysis.Chains)
	c.Analysis.Draws = util.ParseIntDefault(os.Getenv("DRAWS"), c.Analysis.Draws)
	c.Analysis.HDIMass = util.ParseFloatDefault(os.Getenv("HDI_MASS"), c.Analysis.HDIMass)

	if v := os.Getenv("MASTER_SEED"); v != "" {
		var seed uint64
		if _, err := fmt.Sscanf(v, "%d", &seed); err != nil {
			return nil, fmt.Errorf("parse MASTER_SEED: %w", err)
		}
		c.Analysis.Seed = seed
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config after env overrides: %w", err)
	}
	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config fields: %w", err)
	}
	return nil
}
