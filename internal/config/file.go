package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"weathercheck/internal/flags"
	"weathercheck/internal/weather"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// File is the on-disk YAML form of Config. Unset keys leave the current value
// untouched. The API key has no file form.
type File struct {
	BaseURL string `yaml:"base_url"`

	Rules []string `yaml:"rules"`
	Run   []string `yaml:"run"`
	Skip  []string `yaml:"skip"`

	ConsoleFormat string   `yaml:"console_format"`
	Color         string   `yaml:"color"`
	Report        string   `yaml:"report"`
	Out           string   `yaml:"out"`
	OutFormat     string   `yaml:"out_format"`
	Emit          []string `yaml:"emit"`
	NoConsole     *bool    `yaml:"no_console"`

	Timeout   string `yaml:"timeout"`
	RateLimit *int   `yaml:"rate_limit"`
	Dedupe    *bool  `yaml:"dedupe"`
	Preflight *bool  `yaml:"preflight"`
}

// LoadFile reads a YAML config file. Unknown keys are an error.
func LoadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	defer f.Close()

	var out File
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return &out, nil
		}
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return &out, nil
}

// ApplyFile copies values from f into c. isSet reports whether a flag was
// given explicitly; explicit flags win over the file.
func (c *Config) ApplyFile(f *File, isSet func(name string) bool) error {
	if f == nil {
		return nil
	}
	if isSet == nil {
		isSet = func(string) bool { return false }
	}

	setString := func(name string, dst *string, v string) {
		if v != "" && !isSet(name) {
			*dst = v
		}
	}
	setBool := func(name string, dst *bool, v *bool) {
		if v != nil && !isSet(name) {
			*dst = *v
		}
	}
	setList := func(name string, dst *[]string, v []string) {
		if len(v) > 0 && !isSet(name) {
			*dst = append([]string(nil), v...)
		}
	}

	setString(flags.FlagBaseURL, &c.Target.BaseURL, f.BaseURL)
	if len(f.Rules) > 0 && !isSet(flags.FlagRules) {
		c.Rules.Selector = strings.Join(f.Rules, ",")
	}
	setList(flags.FlagRun, &c.Rules.Run, f.Run)
	setList(flags.FlagSkip, &c.Rules.Skip, f.Skip)

	setString(flags.FlagConsoleFormat, &c.Output.ConsoleFormat, f.ConsoleFormat)
	setString(flags.FlagColor, &c.Output.Color, f.Color)
	setString(flags.FlagReport, &c.Output.Report, f.Report)
	setString(flags.FlagOut, &c.Output.Out, f.Out)
	setString(flags.FlagOutFormat, &c.Output.OutFormat, f.OutFormat)
	setList(flags.FlagEmit, &c.Output.Emit, f.Emit)
	setBool(flags.FlagNoConsole, &c.Output.NoConsole, f.NoConsole)

	if f.Timeout != "" && !isSet(flags.FlagTimeout) {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return fmt.Errorf("config file: invalid timeout %q: %w", f.Timeout, err)
		}
		c.Runtime.Timeout = d
	}
	if f.RateLimit != nil && !isSet(flags.FlagRateLimit) {
		c.Runtime.RateLimit = *f.RateLimit
	}
	setBool(flags.FlagDedupe, &c.Runtime.Dedupe, f.Dedupe)
	setBool(flags.FlagPreflight, &c.Runtime.Preflight, f.Preflight)
	return nil
}

// ApplyEnv reads the base URL override from the environment. An explicit
// --base-url wins.
func (c *Config) ApplyEnv(lookup func(string) (string, bool), isSet func(name string) bool) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if isSet != nil && isSet(flags.FlagBaseURL) {
		return
	}
	if v, ok := lookup(weather.EnvBaseURL); ok && strings.TrimSpace(v) != "" {
		c.Target.BaseURL = strings.TrimSpace(v)
	}
}

// LoadDotEnv loads path into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("env file %s: %w", path, err)
	}
	return nil
}
