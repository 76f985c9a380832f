package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/pubtree/pkg/errors"
	"github.com/arthur-debert/pubtree/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "PUBTREE_"

// ProjectFiles are the names of a project settings file, in lookup order.
var ProjectFiles = []string{".pubtree.toml", ".pubtree.yaml"}

// Default returns the embedded default settings.
func Default() *Settings {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		panic("config: embedded defaults are invalid: " + err.Error())
	}
	s, err := unmarshal(k)
	if err != nil {
		panic("config: embedded defaults are invalid: " + err.Error())
	}
	return s
}

// Load builds the settings for the project in inputDir. overrides uses
// dotted keys such as "paths.output"; nil means no overrides.
func Load(inputDir string, overrides map[string]interface{}) (*Settings, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to load defaults")
	}

	// 2. Project settings file, the first one found
	for _, name := range ProjectFiles {
		path := filepath.Join(inputDir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		var parser koanf.Parser = toml.Parser()
		if filepath.Ext(name) == ".yaml" {
			parser = yaml.Parser()
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrSettingsLoad, "failed to load settings from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("loaded project settings")
		break
	}

	// 3. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to load environment settings")
	}

	// 4. Command-line overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to apply overrides")
		}
	}

	s, err := unmarshal(k)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "failed to read settings")
	}
	if err := s.validate(); err != nil {
		return nil, errors.Wrap(err, errors.ErrSettingsLoad, "invalid settings")
	}
	return s, nil
}

func unmarshal(k *koanf.Koanf) (*Settings, error) {
	var s Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &s,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &s, unmarshalConf); err != nil {
		return nil, err
	}
	return &s, nil
}
