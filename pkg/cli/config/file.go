package config

import (
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/prpulse/pkg/domain/model"
	"gopkg.in/yaml.v3"
)

// LoadConfigFromFile loads the palette and selection defaults from a YAML
// file. Missing palette entries fall back to the default colors.
func LoadConfigFromFile(path string) (*model.Config, error) {
	if path == "" {
		return nil, goerr.New("configuration file path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "configuration file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read configuration file",
			goerr.V("path", path))
	}

	var config model.Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(err, "failed to parse YAML configuration",
			goerr.V("path", path),
			goerr.T(model.ErrTagInvalidConfig))
	}
	config.Palette = config.Palette.WithDefaults()

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid configuration",
			goerr.V("path", path),
			goerr.T(model.ErrTagInvalidConfig))
	}

	return &config, nil
}
