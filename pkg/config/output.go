package config

import (
	"github.com/omarchy-fork/omacustom/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by Marshal
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// Marshal renders the configuration in format
func (c *Config) Marshal(format string) ([]byte, error) {
	switch format {
	case FormatTOML, "":
		out, err := toml.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode TOML")
		}
		return out, nil
	case FormatYAML, "yml":
		out, err := yaml.Marshal(c)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode YAML")
		}
		return out, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %q, use toml or yaml", format)
	}
}
