package risk

import (
	"fmt"

	"github.com/emberwatch/emberwatch/internal/domain/model"
)

// maxHours bounds all required hour fields to a single day.
const maxHours = 24.0

// Reason enumerates the validation failure kinds.
type Reason string

// Validation failure reasons.
const (
	ReasonMissingField   Reason = "missing_field"
	ReasonOutOfRange     Reason = "out_of_range"
	ReasonExceedsMaximum Reason = "exceeds_maximum"
)

// ValidationError reports the first failing check on an input record. It
// carries the field name and, for range violations, the received value so the
// transport layer can produce a client-facing error.
type ValidationError struct {
	Field  string
	Reason Reason
	Value  float64
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonMissingField:
		return fmt.Sprintf("%s is required", e.Field)
	case ReasonOutOfRange:
		return fmt.Sprintf("%s must be non-negative, got %g", e.Field, e.Value)
	case ReasonExceedsMaximum:
		return fmt.Sprintf("%s must not exceed %g hours, got %g", e.Field, maxHours, e.Value)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

// requiredField pairs a field name with an accessor so the checks below can
// scan the three required metrics in a fixed order.
type requiredField struct {
	name  string
	value func(model.MetricsRecord) *float64
}

var requiredFields = []requiredField{
	{"sleep", func(r model.MetricsRecord) *float64 { return r.SleepHours }},
	{"work", func(r model.MetricsRecord) *float64 { return r.WorkHours }},
	{"screen", func(r model.MetricsRecord) *float64 { return r.ScreenHours }},
}

// Validate checks rec against the input invariants. Checks run in phases:
// missing fields first, then negativity, then the daily maximum. The first
// failing check determines the reported error; simultaneous violations are
// not accumulated. Optional fields are never range-validated.
func Validate(rec model.MetricsRecord) error {
	for _, f := range requiredFields {
		if f.value(rec) == nil {
			return &ValidationError{Field: f.name, Reason: ReasonMissingField}
		}
	}
	for _, f := range requiredFields {
		if v := *f.value(rec); v < 0 {
			return &ValidationError{Field: f.name, Reason: ReasonOutOfRange, Value: v}
		}
	}
	for _, f := range requiredFields {
		if v := *f.value(rec); v > maxHours {
			return &ValidationError{Field: f.name, Reason: ReasonExceedsMaximum, Value: v}
		}
	}
	return nil
}
