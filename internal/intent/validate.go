package intent

import (
	"fmt"
	"regexp"

	"pluvio/internal/domain"
)

var timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// validate enforces parameter ranges after extraction. Failures populate
// ValidationErrors; a command with validation errors is never executable.
func (c *Classifier) validate(p *ParsedIntent) {
	switch p.Kind {
	case KindStartZone:
		c.validateZone(p, true)
		if d := p.DurationSeconds(); d > MaxStartSeconds {
			p.addError(fmt.Sprintf("duration %ds exceeds the %ds maximum", d, MaxStartSeconds))
		} else if d <= 0 {
			p.addError("duration must be positive")
		}

	case KindStopZone:
		if !p.IsStopAll() {
			c.validateZone(p, true)
		}

	case KindSetRainDelay:
		h, _ := p.Parameters[ParamHours].(int)
		if h < MinRainDelayHours || h > MaxRainDelayHours {
			p.addError(fmt.Sprintf("rain delay must be between %d and %d hours, got %d",
				MinRainDelayHours, MaxRainDelayHours, h))
		}

	case KindCreateSchedule:
		c.validateZone(p, true)
		t, ok := p.Parameters[ParamTime].(string)
		if !ok || !timePattern.MatchString(t) {
			p.addError("schedule time must be a 24-hour HH:MM clock time")
		}
		if d := p.DurationSeconds(); d > MaxStartSeconds {
			p.addError(fmt.Sprintf("duration %ds exceeds the %ds maximum", d, MaxStartSeconds))
		}
	}
}

func (c *Classifier) validateZone(p *ParsedIntent, required bool) {
	z, ok := p.Parameters[ParamZone].(int)
	if !ok {
		if required {
			p.addError(fmt.Sprintf("zone is required and must be between %d and %d",
				domain.MinZoneID, domain.MaxZoneID))
		}
		return
	}
	if !domain.ValidZoneID(z) {
		p.addError(fmt.Sprintf("zone %d is out of range %d-%d", z, domain.MinZoneID, domain.MaxZoneID))
	}
}

func (p *ParsedIntent) addError(msg string) {
	p.ValidationErrors = append(p.ValidationErrors, msg)
}

// requiresConfirmation implements the gating policy: long manual runs, broad
// stops, and schedule creation always wait for explicit confirmation.
func requiresConfirmation(p *ParsedIntent) bool {
	switch p.Kind {
	case KindStartZone:
		return p.DurationSeconds() > DefaultStartSeconds
	case KindStopZone:
		return p.IsStopAll()
	case KindCreateSchedule:
		return true
	}
	return false
}
