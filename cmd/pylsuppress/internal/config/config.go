package config

import (
	"bytes"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"
)

const FileName = ".pylsuppress.yml"

const (
	// DefaultSection is the header of the pylint section listing disabled messages.
	DefaultSection = "[MESSAGES CONTROL]"
	// DefaultOutput is where the rewritten pylint config goes unless overridden.
	DefaultOutput = ".pylintrc"
)

// ErrNotFound is returned by a Finder when no config file exists up to the root.
var ErrNotFound = errors.New("config file not found")

type InnerConfig struct {
	Version string            `yaml:"version" validate:"required,oneof=1"`
	Section string            `yaml:"section,omitempty" validate:"omitempty,startswith=["`
	Output  string            `yaml:"output,omitempty"`
	Keep    []string          `yaml:"keep,omitempty" validate:"dive,required"`
	Env     map[string]string `yaml:"env,omitempty" validate:"dive,keys,required,endkeys"`
}

func Default() InnerConfig {
	return InnerConfig{
		Version: "1",
		Section: DefaultSection,
		Output:  DefaultOutput,
	}
}

// EnvKeys returns the names of the configured environment variables in order.
func (c InnerConfig) EnvKeys() []string {
	if len(c.Env) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(c.Env))
}

func (c InnerConfig) withDefaults() InnerConfig {
	def := Default()
	if c.Section == "" {
		c.Section = def.Section
	}
	if c.Output == "" {
		c.Output = def.Output
	}
	return c
}

type Loader interface {
	Load(path string) (InnerConfig, error)
}

type Writer interface {
	Write(w io.Writer, cfg InnerConfig) error
}

type Finder interface {
	Find(startDir string) (cfg InnerConfig, projectDir string, err error)
}

type yamlLoader struct {
	validate *validator.Validate
}

func NewLoader() Loader {
	return &yamlLoader{
		validate: validator.New(),
	}
}

func (l *yamlLoader) Load(path string) (InnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return InnerConfig{}, errors.Wrap(err, "failed to read config file")
	}

	dec := yaml.NewDecoder(
		bytes.NewReader(data),
		yaml.Validator(l.validate),
		yaml.Strict(),
	)

	var cfg InnerConfig
	if err := dec.Decode(&cfg); err != nil {
		return InnerConfig{}, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	return cfg.withDefaults(), nil
}

type yamlWriter struct{}

func NewWriter() Writer {
	return &yamlWriter{}
}

func (w *yamlWriter) Write(wr io.Writer, cfg InnerConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if _, err := wr.Write(data); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	return nil
}

type finder struct {
	loader Loader
}

func NewFinder(loader Loader) Finder {
	return &finder{loader: loader}
}

func (f *finder) Find(startDir string) (InnerConfig, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, FileName)
		if _, err := os.Stat(configPath); err == nil {
			cfg, err := f.loader.Load(configPath)
			if err != nil {
				return InnerConfig{}, "", err
			}
			return cfg, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return InnerConfig{}, "", errors.Wrapf(ErrNotFound,
				"%s (searched from %s to root)", FileName, startDir,
			)
		}
		dir = parent
	}
}

// WriteToFile writes cfg to FileName in dir. An existing file is left alone.
func WriteToFile(dir string, cfg InnerConfig, w Writer) error {
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}
	defer f.Close()

	return w.Write(f, cfg)
}
