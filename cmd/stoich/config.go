package main

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// config holds the settings for the command. Flags override values loaded
// from the config file and the environment.
type config struct {
	Prec     uint     `mapstructure:"prec" validate:"gt=0,lte=4096"`
	Digits   int      `mapstructure:"digits" validate:"gte=-1,lte=30"`
	LogLevel string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Weights  []weight `mapstructure:"weights" validate:"dive"`
}

// weight overrides the standard atomic weight of one element. Overrides are a
// list rather than a map because viper lowercases map keys, and element
// symbols are case sensitive.
type weight struct {
	Symbol string  `mapstructure:"symbol" validate:"required,element"`
	Weight float64 `mapstructure:"weight" validate:"gt=0"`
}

var elementRE = regexp.MustCompile(`^[A-Z][a-z]?$`)

func newValidator() *validator.Validate {
	v := validator.New()
	err := v.RegisterValidation("element", func(fl validator.FieldLevel) bool {
		return elementRE.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(err)
	}
	return v
}

// loadConfig reads configuration from defaults, a YAML file if path is not
// empty, and STOICH_ environment variables, in increasing order of precedence.
// Each set function then applies in order, and the result is validated.
func loadConfig(path string, set ...func(*config)) (*config, error) {
	v := viper.New()
	v.SetDefault("prec", 64)
	v.SetDefault("digits", 2)
	v.SetDefault("log_level", "warn")

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("STOICH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	for _, f := range set {
		f(&cfg)
	}
	if err := newValidator().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// overrides collects the weight overrides into a map.
func (c *config) overrides() map[string]float64 {
	m := make(map[string]float64, len(c.Weights))
	for _, w := range c.Weights {
		m[w.Symbol] = w.Weight
	}
	return m
}
