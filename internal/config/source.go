package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// Source yields a freshly parsed Dictionary on every call, so models can
// re-read their options without being rebuilt.
type Source interface {
	Dictionary() (Dictionary, error)
}

// FileSource parses a YAML (.yaml, .yml) or TOML (.toml) file from disk.
type FileSource struct {
	Path string
}

func (s FileSource) Dictionary() (Dictionary, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return Dictionary{}, err
	}
	m := map[string]any{}
	switch strings.ToLower(filepath.Ext(s.Path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &m)
	case ".toml":
		_, err = toml.Decode(string(data), &m)
	default:
		return Dictionary{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, s.Path)
	}
	if err != nil {
		return Dictionary{}, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	return NewDictionary(filepath.Base(s.Path), m), nil
}

// ViperSource re-reads the viper configuration file (when one is set) and
// exposes its settings, optionally restricted to the Key subtree.
type ViperSource struct {
	V   *viper.Viper
	Key string
}

func (s ViperSource) Dictionary() (Dictionary, error) {
	if s.V.ConfigFileUsed() != "" {
		if err := s.V.ReadInConfig(); err != nil {
			return Dictionary{}, err
		}
	}
	name := "viper"
	if f := s.V.ConfigFileUsed(); f != "" {
		name = filepath.Base(f)
	}
	d := NewDictionary(name, s.V.AllSettings())
	if s.Key == "" {
		return d, nil
	}
	return d.Subdict(s.Key)
}

// StaticSource always returns the same in-memory dictionary.
type StaticSource struct {
	Dict Dictionary
}

func Static(name string, m map[string]any) StaticSource {
	return StaticSource{Dict: NewDictionary(name, m)}
}

func (s StaticSource) Dictionary() (Dictionary, error) {
	return s.Dict, nil
}
