package intent

// Kind enumerates all commands the classifier can produce.
type Kind string

const (
	KindStartZone      Kind = "start_zone"
	KindStopZone       Kind = "stop_zone"
	KindSetRainDelay   Kind = "set_rain_delay"
	KindClearRainDelay Kind = "clear_rain_delay"
	KindCreateSchedule Kind = "create_schedule"
	KindGetStatus      Kind = "get_status"
	KindUnknown        Kind = "unknown"
)

// Parameter keys used in ParsedIntent.Parameters.
const (
	ParamZone     = "zone"
	ParamTarget   = "target"   // "ALL" for stop-all
	ParamDuration = "duration" // seconds
	ParamHours    = "hours"    // rain delay
	ParamTime     = "time"     // "HH:MM"
	ParamDays     = "days"     // []int, 0=Sunday..6=Saturday
)

// TargetAll marks a stop command addressed to every zone.
const TargetAll = "ALL"

// DefaultStartSeconds is the run time assumed when a start command carries
// no duration.
const DefaultStartSeconds = 600

// MaxStartSeconds bounds a single manual run.
const MaxStartSeconds = 3600

// Rain delay bounds in hours.
const (
	MinRainDelayHours = 1
	MaxRainDelayHours = 168
)

// ParsedIntent is the structured result of classifying one user message.
// Classification is deterministic pattern matching, not statistical; the
// confirmation-gating policy stays independent of generation nondeterminism.
type ParsedIntent struct {
	Kind                 Kind           `json:"kind"`
	Parameters           map[string]any `json:"parameters"`
	Confidence           float64        `json:"confidence"`
	RequiresConfirmation bool           `json:"requires_confirmation"`
	ValidationErrors     []string       `json:"validation_errors,omitempty"`
}

// Executable reports whether the intent may reach the actuation layer.
func (p *ParsedIntent) Executable() bool {
	return p.Kind != KindUnknown && len(p.ValidationErrors) == 0
}

// Zone returns the zone parameter, or 0 if absent.
func (p *ParsedIntent) Zone() int {
	if v, ok := p.Parameters[ParamZone].(int); ok {
		return v
	}
	return 0
}

// DurationSeconds returns the duration parameter, or 0 if absent.
func (p *ParsedIntent) DurationSeconds() int {
	if v, ok := p.Parameters[ParamDuration].(int); ok {
		return v
	}
	return 0
}

// IsStopAll reports whether this is a stop addressed to all zones.
func (p *ParsedIntent) IsStopAll() bool {
	t, _ := p.Parameters[ParamTarget].(string)
	return p.Kind == KindStopZone && t == TargetAll
}
