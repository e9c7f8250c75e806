package config

import (
	"lending/core"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("LENDING")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultOracle(config)
	return nil
}

func defaultOracle(cfg *core.Config) {
	if cfg.PriceOracle.MaxAgeSeconds <= 0 {
		cfg.PriceOracle.MaxAgeSeconds = 60
	}

	if cfg.PriceOracle.MaxConfidenceBps <= 0 {
		// 2%
		cfg.PriceOracle.MaxConfidenceBps = 200
	}
}
