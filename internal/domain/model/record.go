// Package model contains domain models passed between layers.
package model

// MetricsRecord represents one day of behavioral and physiological metrics
// submitted by a client. Required fields are pointers so that an absent field
// can be told apart from a present zero.
type MetricsRecord struct {
	SleepHours  *float64 // hours of sleep, required
	WorkHours   *float64 // hours worked, required
	ScreenHours *float64 // hours of screen time, required
	HeartRate   *float64 // resting heart rate in bpm, optional
	Steps       *float64 // step count, optional
}
