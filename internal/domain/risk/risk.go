// Package risk computes deterministic burnout risk assessments from daily
// behavioral and physiological metrics.
package risk

import (
	"context"
	"math"

	"github.com/emberwatch/emberwatch/internal/domain/model"
)

// Scoring policy constants.
const (
	baseScore         = 0.30 // every subject carries nonzero baseline risk
	maxScore          = 1.0
	elevatedHeartRate = 90   // bpm above which the heart-rate bonus applies
	lowActivitySteps  = 3000 // steps below which the activity bonus applies
	optionalBonus     = 0.05
	scorePrecision    = 1000 // presentation rounding to 3 decimal digits
)

// Factor breakdown thresholds. Deliberately coarser than the scoring bands:
// the breakdown is a user-facing summary, not a restatement of the bands.
const (
	sleepAdequateMin = 6.0
	workNormalMax    = 9.0
	screenNormalMax  = 6.0
)

// Category is an ordinal risk tier derived from the score.
type Category string

// Risk categories, lowest to highest.
const (
	CategoryLow         Category = "Low"
	CategoryLowModerate Category = "Low-Moderate"
	CategoryModerate    Category = "Moderate"
	CategoryHigh        Category = "High"
)

// Urgency is the caller-facing severity label, in strict 1:1 correspondence
// with Category.
type Urgency string

// Urgency levels.
const (
	UrgencyNone     Urgency = "none"
	UrgencyLow      Urgency = "low"
	UrgencyModerate Urgency = "moderate"
	UrgencyUrgent   Urgency = "urgent"
)

// Factor judgment labels.
const (
	SleepInsufficient = "insufficient"
	SleepAdequate     = "adequate"
	WorkExcessive     = "excessive"
	WorkNormal        = "normal"
	ScreenHigh        = "high"
	ScreenNormal      = "normal"
)

// Factors holds the independent per-metric judgments shown alongside the score.
type Factors struct {
	Sleep  string `json:"sleep"`
	Work   string `json:"work"`
	Screen string `json:"screen"`
}

// Assessment is the result of one risk computation. It has no identity beyond
// the call that produced it.
type Assessment struct {
	Score       float64  `json:"score"`
	Category    Category `json:"category"`
	Description string   `json:"description"`
	Urgency     Urgency  `json:"urgency"`
	Factors     Factors  `json:"factors"`
}

// Assessor computes a burnout risk assessment from a metrics record.
type Assessor interface {
	// Assess validates rec and computes the assessment. The returned error,
	// if any, is a *ValidationError.
	Assess(ctx context.Context, rec model.MetricsRecord) (Assessment, error)
}

// band pairs a predicate with its additive score contribution. Bands are
// scanned top to bottom; the first match wins within a ladder.
type band struct {
	applies      func(hours float64) bool
	contribution float64
}

var sleepBands = []band{
	{func(h float64) bool { return h < 4 }, 0.30},
	{func(h float64) bool { return h < 6 }, 0.20},
	{func(h float64) bool { return h < 7 }, 0.10},
}

var workBands = []band{
	{func(h float64) bool { return h > 12 }, 0.30},
	{func(h float64) bool { return h > 10 }, 0.20},
	{func(h float64) bool { return h > 8 }, 0.10},
}

var screenBands = []band{
	{func(h float64) bool { return h > 10 }, 0.20},
	{func(h float64) bool { return h > 8 }, 0.15},
	{func(h float64) bool { return h > 6 }, 0.10},
}

func ladderContribution(bands []band, hours float64) float64 {
	for _, b := range bands {
		if b.applies(hours) {
			return b.contribution
		}
	}
	return 0
}

// classification maps a score floor to its category, urgency and description.
// Rows are ordered highest band first; boundaries are inclusive on the lower end.
type classification struct {
	floor       float64
	category    Category
	urgency     Urgency
	description string
}

var classifications = []classification{
	{0.80, CategoryHigh, UrgencyUrgent,
		"High burnout risk detected. Your current patterns need immediate attention. Consider taking time off and consulting a professional."},
	{0.60, CategoryModerate, UrgencyModerate,
		"Moderate burnout risk. Your routine is showing warning signs. Adjusting your sleep, work, or screen habits now can prevent escalation."},
	{0.40, CategoryLowModerate, UrgencyLow,
		"Low-moderate burnout risk. Most of your habits look sustainable, but stay aware of the patterns trending in the wrong direction."},
	{0.0, CategoryLow, UrgencyNone,
		"Low burnout risk. Your daily patterns look healthy. Keep up the good habits."},
}

func classify(score float64) classification {
	for _, c := range classifications {
		if score >= c.floor {
			return c
		}
	}
	// Unreachable: the last row has floor 0 and scores are non-negative.
	return classifications[len(classifications)-1]
}

// Engine implements Assessor. The zero value is usable; New is provided for
// symmetry with the other domain packages.
type Engine struct{}

// New creates a new risk engine.
func New() *Engine {
	return &Engine{}
}

// Assess validates rec and computes the weighted risk assessment.
// It is a pure function of its input and is safe for concurrent use.
func (e *Engine) Assess(_ context.Context, rec model.MetricsRecord) (Assessment, error) {
	if err := Validate(rec); err != nil {
		return Assessment{}, err
	}

	sleep := *rec.SleepHours
	work := *rec.WorkHours
	screen := *rec.ScreenHours

	score := baseScore
	score += ladderContribution(sleepBands, sleep)
	score += ladderContribution(workBands, work)
	score += ladderContribution(screenBands, screen)

	// Optional signals are informative only: out-of-range values simply fail
	// to trigger their bonus.
	if rec.HeartRate != nil && *rec.HeartRate > elevatedHeartRate {
		score += optionalBonus
	}
	if rec.Steps != nil && *rec.Steps < lowActivitySteps {
		score += optionalBonus
	}

	if score > maxScore {
		score = maxScore
	}
	score = roundScore(score)

	c := classify(score)

	return Assessment{
		Score:       score,
		Category:    c.category,
		Description: c.description,
		Urgency:     c.urgency,
		Factors: Factors{
			Sleep:  sleepFactor(sleep),
			Work:   workFactor(work),
			Screen: screenFactor(screen),
		},
	}, nil
}

func sleepFactor(hours float64) string {
	if hours < sleepAdequateMin {
		return SleepInsufficient
	}
	return SleepAdequate
}

func workFactor(hours float64) string {
	if hours > workNormalMax {
		return WorkExcessive
	}
	return WorkNormal
}

func screenFactor(hours float64) string {
	if hours > screenNormalMax {
		return ScreenHigh
	}
	return ScreenNormal
}

// roundScore rounds to 3 decimal digits for presentation.
func roundScore(score float64) float64 {
	return math.Round(score*scorePrecision) / scorePrecision
}
