// Package config loads plantio settings. Sources are layered: built-in
// defaults, then the YAML file, then the environment (a .env file in the
// working directory is read first), and the result is validated.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

const (
	// EnvPrefix prefixes every environment variable, e.g. PLANTIO_SERVER_ADDR.
	EnvPrefix = "PLANTIO"
	// DefaultFile is read when no config path is given and it exists.
	DefaultFile = "plantio.yaml"
)

// Config is the complete plantio configuration. Environment keys are the
// prefixed field path only, e.g. PLANTIO_DATA_PATH; bare names like PATH are
// never consulted.
type Config struct {
	Data     DataConfig   `yaml:"data"`
	Server   ServerConfig `yaml:"server"`
	Report   ReportConfig `yaml:"report"`
	Log      LogConfig    `yaml:"log"`
	Projects []Project    `yaml:"projects" ignored:"true" validate:"dive"`
}

// DataConfig locates the tracking spreadsheet.
type DataConfig struct {
	Path  string `yaml:"path" validate:"required"`
	Sheet string `yaml:"sheet"`
}

// ServerConfig configures the dashboard.
type ServerConfig struct {
	Addr            string          `yaml:"addr" validate:"required"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" split_words:"true" validate:"gt=0"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" split_words:"true" validate:"gt=0"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" split_words:"true" validate:"gt=0"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" split_words:"true"`
}

// RateLimitConfig is a token bucket shared by the API and chart routes.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled"`
	RPS     float64 `yaml:"rps" validate:"gt=0"`
	Burst   int     `yaml:"burst" validate:"gte=1"`
}

// ReportConfig configures chart output. Width and Height are in inches.
type ReportConfig struct {
	Output   string  `yaml:"output" validate:"required"`
	ImageDir string  `yaml:"image_dir" split_words:"true"`
	Format   string  `yaml:"format" validate:"oneof=png svg pdf jpg jpeg eps tex"`
	Width    float64 `yaml:"width" validate:"gt=0"`
	Height   float64 `yaml:"height" validate:"gt=0"`
	Workers  int     `yaml:"workers" validate:"min=1,max=64"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
}

// Project is one project page of the report.
type Project struct {
	Division string `yaml:"division" validate:"required"`
	Name     string `yaml:"name" validate:"required"`
	// Title heads the page; Name is used when empty.
	Title string `yaml:"title"`
}

// Heading is the page title of p.
func (p Project) Heading() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Data: DataConfig{Path: "plantio.xlsx"},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       RateLimitConfig{Enabled: true, RPS: 20, Burst: 40},
		},
		Report: ReportConfig{
			Output:  "report.pdf",
			Format:  "png",
			Width:   11,
			Height:  8.5,
			Workers: 4,
		},
		Log: LogConfig{Level: "info"},
		Projects: []Project{
			{Division: "ASSETco", Name: "Rio do Vento Expansão"},
			{Division: "ASSETco", Name: "Rio do Vento"},
			{Division: "ASSETco", Name: "UMARI"},
			{Division: "DEVco", Name: "Torre Anemométrica"},
		},
	}
}

// Load builds the configuration from path (or DefaultFile when path is empty
// and the file exists), .env and the environment.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their YAML names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field constraint and reports all violations at once.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid config: %w", err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s: failed %q", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag())
		if p := fe.Param(); p != "" {
			msgs[i] += " (" + p + ")"
		}
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// Write dumps c as YAML.
func (c *Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

// Usage prints the environment variables Load honours.
func Usage(w io.Writer) error {
	return envconfig.Usagef(EnvPrefix, Default(), w, envconfig.DefaultTableFormat)
}
