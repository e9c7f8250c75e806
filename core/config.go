package core

import (
	"github.com/asaskevich/govalidator"
	"github.com/fox-one/pkg/store/db"
)

// Config lending config
type Config struct {
	App         App         `json:"app"`
	DB          db.Config   `json:"db"`
	PriceOracle PriceOracle `json:"price_oracle"`
	Admins      []string    `json:"admins"`
}

// IsAdmin check if the user is admin
func (c *Config) IsAdmin(userID string) bool {
	return govalidator.IsIn(userID, c.Admins...)
}

// App app config
type App struct {
	Location string `json:"location"`
	// reject repayments over the outstanding debt instead of clamping
	StrictRepay bool `json:"strict_repay"`
}

// PriceOracle price oracle config
type PriceOracle struct {
	EndPoint string `json:"end_point"`
	// max quote age in seconds before a read is rejected as stale
	MaxAgeSeconds int64 `json:"max_age_seconds"`
	// max confidence/price ratio in basis points
	MaxConfidenceBps int64 `json:"max_confidence_bps"`
	// signer threshold for record verification, 0 disables it
	Threshold int `json:"threshold"`
}
