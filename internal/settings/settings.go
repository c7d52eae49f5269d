// Package settings serves user-facing threshold and notification settings.
// The current store is static defaults; persistence is an external concern.
package settings

import (
	"context"
)

// Thresholds are the display thresholds shown to users alongside their
// factor breakdown.
type Thresholds struct {
	SleepMinHours  float64 `json:"sleep_min_hours"`
	WorkMaxHours   float64 `json:"work_max_hours"`
	ScreenMaxHours float64 `json:"screen_max_hours"`
}

// Notifications are the notification preferences.
type Notifications struct {
	Enabled        bool `json:"enabled"`
	DailySummary   bool `json:"daily_summary"`
	HighRiskAlerts bool `json:"high_risk_alerts"`
}

// Settings bundles everything the settings endpoint returns.
type Settings struct {
	Thresholds    Thresholds    `json:"thresholds"`
	Notifications Notifications `json:"notifications"`
}

// Store provides read access to settings.
type Store interface {
	Get(ctx context.Context) (Settings, error)
}

// staticStore serves fixed defaults.
type staticStore struct {
	defaults Settings
}

// NewStaticStore creates a store returning the built-in defaults.
func NewStaticStore() Store {
	return &staticStore{
		defaults: Settings{
			Thresholds: Thresholds{
				SleepMinHours:  7,
				WorkMaxHours:   8,
				ScreenMaxHours: 6,
			},
			Notifications: Notifications{
				Enabled:        true,
				DailySummary:   true,
				HighRiskAlerts: true,
			},
		},
	}
}

func (s *staticStore) Get(_ context.Context) (Settings, error) {
	return s.defaults, nil
}
