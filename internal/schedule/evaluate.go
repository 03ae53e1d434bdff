package schedule

import (
	"fmt"
	"math"

	"pluvio/internal/domain"
)

// Significant-change thresholds for proactive re-planning. Below these the
// evaluator proposes nothing; conservatism here is a design goal, not an
// optimization.
const (
	precipProbJumpPts   = 30
	tempSwingF          = 10.0
	newRainInches       = 0.25
	dryDayInches        = 0.1
	stormProbPct        = 70
	stormClearedProbPct = 30
	highTempF           = 85.0
)

type ShiftReasonCode string

const (
	ShiftPrecipJump    ShiftReasonCode = "PRECIP_PROB_JUMP"
	ShiftTempSwing     ShiftReasonCode = "TEMP_SWING"
	ShiftNewRain       ShiftReasonCode = "NEW_RAIN_FORECAST"
	ShiftStormVanished ShiftReasonCode = "STORM_VANISHED_HOT"
)

type ShiftReason struct {
	Code    ShiftReasonCode
	Date    string
	Message string
}

// ShiftAssessment is the result of comparing the plan's assumed forecast
// against the latest one.
type ShiftAssessment struct {
	Significant bool
	Reasons     []ShiftReason
}

// EvaluateForecastShift compares day-by-day, matching on date. Days present
// in only one forecast are ignored; the plan rolls daily, so edges are
// expected to differ.
func EvaluateForecastShift(assumed, latest []domain.ForecastDay) ShiftAssessment {
	byDate := make(map[string]domain.ForecastDay, len(assumed))
	for _, d := range assumed {
		byDate[d.Date] = d
	}

	var out ShiftAssessment
	for _, now := range latest {
		was, ok := byDate[now.Date]
		if !ok {
			continue
		}

		if now.PrecipProbability-was.PrecipProbability >= precipProbJumpPts {
			out.Reasons = append(out.Reasons, ShiftReason{
				Code: ShiftPrecipJump,
				Date: now.Date,
				Message: fmt.Sprintf("rain probability for %s jumped %d%% -> %d%%",
					now.Date, was.PrecipProbability, now.PrecipProbability),
			})
		}

		if math.Abs(now.HighF-was.HighF) > tempSwingF {
			out.Reasons = append(out.Reasons, ShiftReason{
				Code: ShiftTempSwing,
				Date: now.Date,
				Message: fmt.Sprintf("forecast high for %s swung %.0fF -> %.0fF",
					now.Date, was.HighF, now.HighF),
			})
		}

		if was.PrecipInches < dryDayInches && now.PrecipInches > newRainInches {
			out.Reasons = append(out.Reasons, ShiftReason{
				Code: ShiftNewRain,
				Date: now.Date,
				Message: fmt.Sprintf("previously dry %s now forecast %.2fin rain",
					now.Date, now.PrecipInches),
			})
		}

		if was.PrecipProbability >= stormProbPct &&
			now.PrecipProbability < stormClearedProbPct &&
			now.HighF >= highTempF {
			out.Reasons = append(out.Reasons, ShiftReason{
				Code: ShiftStormVanished,
				Date: now.Date,
				Message: fmt.Sprintf("storm forecast for %s did not materialize and highs reach %.0fF",
					now.Date, now.HighF),
			})
		}
	}

	out.Significant = len(out.Reasons) > 0
	return out
}
