package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Registry defines command line flags and reads their values back from
// koanf, so a config file can provide values for flags that were not set.
type Registry struct {
	k  *koanf.Koanf
	fs *pflag.FlagSet
}

func NewRegistry(k *koanf.Koanf, fs *pflag.FlagSet) *Registry {
	return &Registry{
		k:  k,
		fs: fs,
	}
}

// LoadFile merges a YAML config file into k. An empty name is a no-op.
func LoadFile(k *koanf.Koanf, fileName string) error {
	if len(fileName) == 0 {
		return nil
	}
	if err := k.Load(file.Provider(fileName), yaml.Parser()); err != nil {
		return fmt.Errorf("loading config %s: %w", fileName, err)
	}
	return nil
}

// LoadFlags merges parsed flags into k. Flags left at their defaults do not
// override values that already came from a config file.
func LoadFlags(k *koanf.Koanf, fs *pflag.FlagSet) error {
	return k.Load(posflag.Provider(fs, ".", k), nil)
}

// ReadFields reads color rules from the "colors" section.
func ReadFields(k *koanf.Koanf) (Fields, error) {
	fields := make(Fields)
	if !k.Exists("colors") {
		return fields, nil
	}

	var colors map[string]Colors
	if err := k.Unmarshal("colors", &colors); err != nil {
		return nil, fmt.Errorf("invalid colors config: %w", err)
	}
	for name, c := range colors {
		fields[name] = Field{Colors: c}
	}
	return fields, nil
}

func (r *Registry) Bool(name string, defaultValue bool, help string) func() bool {
	return defineParam(
		name,
		defaultValue,
		help,
		r.fs.Bool,
		r.k.Bool,
	)
}

func (r *Registry) StringP(name, shorthand, defaultValue, help string) func() string {
	return defineParamP(
		name,
		shorthand,
		defaultValue,
		help,
		r.fs.StringP,
		r.k.String,
	)
}

func (r *Registry) String(name, defaultValue, help string) func() string {
	return defineParam(
		name,
		defaultValue,
		help,
		r.fs.String,
		r.k.String,
	)
}

func (r *Registry) StringsP(name, shorthand string, defaultValue []string, help string) func() []string {
	return defineParamP(
		name,
		shorthand,
		defaultValue,
		help,
		r.fs.StringSliceP,
		r.k.Strings,
	)
}

func (r *Registry) Strings(name string, defaultValue []string, help string) func() []string {
	return defineParam(
		name,
		defaultValue,
		help,
		r.fs.StringSlice,
		r.k.Strings,
	)
}

func defineParam[T any](
	name string,
	defaultValue T,
	help string,
	implFlag func(name string, defaultValue T, help string) *T,
	implConf func(name string) T) func() T {
	implFlag(
		name,
		defaultValue,
		help)
	return func() T {
		return implConf(name)
	}
}

func defineParamP[T any](
	name, shorthand string,
	defaultValue T,
	help string,
	implFlag func(name, shorthand string, defaultValue T, help string) *T,
	implConf func(name string) T) func() T {
	implFlag(
		name,
		shorthand,
		defaultValue,
		help)
	return func() T {
		return implConf(name)
	}
}
