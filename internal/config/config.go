package config

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Config holds the configuration for the shoppinglist command.
type Config struct {
	LogMode     string `yaml:"log_mode"`
	DatabaseURL string `yaml:"database_url"`
	OwnerID     string `yaml:"owner_id"`
	Language    string `yaml:"language"`
	Plan        Plan   `yaml:"plan"`
}

// Plan declares the ingredients and recipes to create and what to put on the
// shopping list. Entities refer to each other by name.
type Plan struct {
	Ingredients []string     `yaml:"ingredients"`
	Recipes     []RecipeSpec `yaml:"recipes"`
	Meals       []MealSpec   `yaml:"meals"`
	Extras      []EntrySpec  `yaml:"extras"`
}

type RecipeSpec struct {
	Name        string      `yaml:"name"`
	Ingredients []EntrySpec `yaml:"ingredients"`
}

// EntrySpec is an amount of a named ingredient. Amounts are decimal strings.
type EntrySpec struct {
	Ingredient string `yaml:"ingredient"`
	Amount     string `yaml:"amount"`
}

// MealSpec expands a named recipe into the shopping list.
type MealSpec struct {
	Recipe     string `yaml:"recipe"`
	Multiplier string `yaml:"multiplier"`
}

func Default() Config {
	return Config{
		LogMode:  "development",
		OwnerID:  "default",
		Language: "en",
	}
}

// Load reads the YAML file at path, if any, and applies environment overrides
// on top of it.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("os.ReadFile: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("yaml.Unmarshal: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("LOG_MODE"); v != "" {
		cfg.LogMode = v
	}
	if v := os.Getenv("SHOPPINGLIST_DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("SHOPPINGLIST_OWNER_ID"); v != "" {
		cfg.OwnerID = v
	}
	if v := os.Getenv("SHOPPINGLIST_LANGUAGE"); v != "" {
		cfg.Language = v
	}
}

func (c Config) Validate() error {
	var errs []error

	if c.OwnerID == "" {
		errs = append(errs, errors.New("ownerID is empty"))
	}

	if _, err := c.LanguageTag(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (c Config) LanguageTag() (language.Tag, error) {
	tag, err := language.Parse(c.Language)
	if err != nil {
		return language.Und, fmt.Errorf("language[%s] is not valid: %w", c.Language, err)
	}
	return tag, nil
}
