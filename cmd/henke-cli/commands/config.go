package commands

import (
	"errors"
	"henke-client/internal/components/telemetry"
	"henke-client/internal/henke"
	"henke-client/pkg/configutil"
	"os"
)

const configName = "henke.json5"

type Config struct {
	BaseUrl           string               `json:"base_url"`
	TimeoutSeconds    int                  `json:"timeout_seconds"`
	RequestsPerSecond float64              `json:"requests_per_second"`
	Otlp              telemetry.OtlpConfig `json:"otlp"`
}

var defaultConfig = Config{
	BaseUrl:           henke.DefaultBaseUrl,
	TimeoutSeconds:    30,
	RequestsPerSecond: 2,
}

// loadConfig reads the config at path, or searches for henke.json5 when path is
// empty. A missing config is not an error, the defaults apply.
func loadConfig(path string) (Config, error) {
	var cfg Config
	var err error
	if path != "" {
		cfg, err = configutil.ReadConfig[Config](path)
	} else {
		cfg, err = configutil.ReadRecursively[Config](configName)
		if errors.Is(err, os.ErrNotExist) {
			err = nil
		}
	}
	if err != nil {
		return Config{}, err
	}
	return configutil.WithDefaults(cfg, defaultConfig)
}
