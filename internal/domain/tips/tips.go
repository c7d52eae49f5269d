// Package tips builds wellness tip prompts and provides the evidence-based
// fallback catalog used when no upstream model is available.
package tips

import (
	"fmt"
	"strings"

	"github.com/emberwatch/emberwatch/internal/domain/model"
	"github.com/emberwatch/emberwatch/internal/domain/risk"
)

// TipCount is the number of tips every response carries.
const TipCount = 3

// minTipLength filters out fragments left over from list-marker stripping.
const minTipLength = 10

// Prompt status thresholds. These feed the model prompt only and are
// independent of the scoring policy.
const (
	promptSleepAdequateMin = 7.0
	promptWorkNormalMax    = 8.0
	promptScreenNormalMax  = 6.0
	promptElevatedHR       = 80.0
	promptGoodStepsMin     = 5000.0
)

// SystemPrompt primes the model before the user prompt.
const SystemPrompt = "You are a mental health and wellness expert. Provide specific, actionable advice."

// Result is the outcome of one tip generation request.
type Result struct {
	Tips       []string
	Model      string
	RiskLevel  risk.Category
	Confidence float64
	Cached     bool
}

// BuildPrompt renders the model prompt for a metrics record and its assessment.
func BuildPrompt(rec model.MetricsRecord, a risk.Assessment) string {
	sleep := *rec.SleepHours
	work := *rec.WorkHours
	screen := *rec.ScreenHours

	sleepStatus := "adequate"
	if sleep < promptSleepAdequateMin {
		sleepStatus = "insufficient"
	}
	workStatus := "normal"
	if work > promptWorkNormalMax {
		workStatus = "excessive"
	}
	screenStatus := "moderate"
	if screen > promptScreenNormalMax {
		screenStatus = "high"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are a mental health and wellness expert AI assistant. Based on the following user data, provide 3 specific, actionable wellness recommendations to help prevent burnout.

USER DATA:
- Sleep: %g hours (%s)
- Work: %g hours (%s)
- Screen time: %g hours (%s)
- Burnout risk score: %g/1.0 (%s risk)`,
		sleep, sleepStatus, work, workStatus, screen, screenStatus, a.Score, a.Category)

	if rec.HeartRate != nil {
		hrStatus := "normal"
		if *rec.HeartRate > promptElevatedHR {
			hrStatus = "elevated"
		}
		fmt.Fprintf(&b, "\n- Heart rate: %g bpm (%s)", *rec.HeartRate, hrStatus)
	}
	if rec.Steps != nil {
		activityStatus := "good"
		if *rec.Steps < promptGoodStepsMin {
			activityStatus = "low"
		}
		fmt.Fprintf(&b, "\n- Daily steps: %g (%s activity level)", *rec.Steps, activityStatus)
	}

	b.WriteString(categoryInstructions(a.Category))
	return b.String()
}

func categoryInstructions(category risk.Category) string {
	switch category {
	case risk.CategoryHigh:
		return `

URGENCY: This user has HIGH burnout risk. Focus on immediate, practical interventions.

Please provide 3 specific recommendations that:
1. Address the most critical risk factors (sleep/work/screen time)
2. Can be implemented immediately (today/tomorrow)
3. Are realistic and not overwhelming
4. Include specific time frames or measurements

Format each tip as a complete sentence starting with an action verb.`
	case risk.CategoryModerate:
		return `

This user has MODERATE burnout risk. Focus on preventive measures and lifestyle adjustments.

Please provide 3 specific recommendations that:
1. Help prevent escalation to high risk
2. Address the concerning patterns in their data
3. Are sustainable long-term changes
4. Include specific, measurable goals

Format each tip as a complete sentence starting with an action verb.`
	default:
		return `

This user has LOW burnout risk. Focus on maintaining good habits and optimization.

Please provide 3 specific recommendations that:
1. Help maintain their current healthy patterns
2. Optimize their existing routines
3. Build resilience for future stress
4. Are enhancement-focused rather than corrective

Format each tip as a complete sentence starting with an action verb.`
	}
}

// Fallback returns the evidence-based tip set for a risk category.
func Fallback(category risk.Category) []string {
	switch category {
	case risk.CategoryHigh:
		return []string{
			"Prioritize getting 7-8 hours of sleep tonight by setting a firm bedtime and avoiding screens 1 hour before.",
			"Take a 15-minute break every 2 hours during work to reduce stress and prevent mental fatigue.",
			"Limit recreational screen time to 2 hours today to give your mind time to rest and recover.",
		}
	case risk.CategoryModerate:
		return []string{
			"Establish a consistent sleep schedule by going to bed and waking up at the same time each day.",
			"Set boundaries around work hours by defining a clear end time and sticking to it.",
			"Practice the 20-20-20 rule: every 20 minutes, look at something 20 feet away for 20 seconds.",
		}
	default:
		return []string{
			"Continue your healthy sleep routine and consider adding a brief meditation before bed to enhance sleep quality.",
			"Maintain your work-life balance by scheduling regular breaks and leisure activities throughout the week.",
			"Use your current stability to build resilience through regular exercise or stress-management techniques.",
		}
	}
}

// genericTips pad short responses up to TipCount.
var genericTips = []string{
	"Take deep breaths and practice mindfulness for 5 minutes to reduce stress.",
	"Stay hydrated by drinking water regularly throughout the day.",
	"Connect with a friend or family member for social support.",
}

// Pad ensures exactly TipCount tips, topping up from the generic set and
// truncating any excess.
func Pad(list []string) []string {
	for i := 0; len(list) < TipCount && i < len(genericTips); i++ {
		list = append(list, genericTips[i])
	}
	if len(list) > TipCount {
		list = list[:TipCount]
	}
	return list
}

// ParseCompletion splits a chat completion into individual tips, stripping
// list markers and dropping fragments too short to be advice.
func ParseCompletion(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || isAllDigits(line) {
			continue
		}
		line = strings.TrimSpace(strings.TrimLeft(line, "0123456789.-* "))
		if len(line) > minTipLength {
			out = append(out, line)
		}
		if len(out) == TipCount {
			break
		}
	}
	return out
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
