package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/omarchy-fork/omacustom/pkg/errors"
	"github.com/omarchy-fork/omacustom/pkg/logging"
)

// EnvPrefix marks environment variables read as configuration
const EnvPrefix = "OMACUSTOM_"

// userFiles are looked up in the config directory, first match wins
var userFiles = []string{"config.toml", "config.yaml", "config.yml"}

// LoadOptions selects the optional layers on top of the defaults
type LoadOptions struct {
	// Dir is searched for a user config file. Ignored when File is set.
	Dir string
	// File is an explicit user config file
	File string
	// Overrides are applied last, keyed by dotted path (e.g. "terminal")
	Overrides map[string]interface{}
}

// Load builds the effective configuration: embedded defaults, then the
// user file, then OMACUSTOM_ environment variables, then Overrides.
func Load(opts LoadOptions) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. User file
	path := opts.File
	if path == "" {
		path = findUserFile(opts.Dir)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded user configuration")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load env vars")
	}

	// 4. Flags
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps OMACUSTOM_WAYBAR__MODULE__FORMAT_EN to waybar.module.format_en
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

func findUserFile(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range userFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

// Validate checks the values the patchers cannot work without
func (c *Config) Validate() error {
	invalid := func(key, msg string) error {
		return errors.Newf(errors.ErrInvalidInput, "%s: %s", key, msg).WithDetail("key", key)
	}

	if strings.TrimSpace(c.Terminal) == "" {
		return invalid("terminal", "must not be empty")
	}
	if !strings.HasPrefix(c.Backup.Suffix, ".") || len(c.Backup.Suffix) < 2 {
		return invalid("backup.suffix", "must start with a dot, e.g. .original")
	}
	for _, p := range c.Packages {
		if p.Action != ActionInstall && p.Action != ActionRemove {
			return invalid("packages", "unknown action "+p.Action+" for "+p.Name)
		}
	}
	if c.Waybar.Enabled && c.Waybar.Module.Name == "" {
		return invalid("waybar.module.name", "must not be empty")
	}
	if c.Toshy.Enabled && (c.Toshy.SliceStart == "" || c.Toshy.SliceEnd == "") {
		return invalid("toshy", "slice_start and slice_end must be set")
	}
	return nil
}
