package intent

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// recognizer pairs a matcher with a parameter extractor. Recognizers are
// evaluated in table order; the first match wins.
type recognizer struct {
	kind       Kind
	pattern    *regexp.Regexp
	confidence float64
	extract    func(text string) map[string]any
}

var (
	zonePattern     = regexp.MustCompile(`\bzones?\s*#?\s*(\d+)\b`)
	minutesPattern  = regexp.MustCompile(`\b(\d+)\s*(?:minutes?|mins?)\b`)
	secondsPattern  = regexp.MustCompile(`\b(\d+)\s*(?:seconds?|secs?)\b`)
	hoursPattern    = regexp.MustCompile(`\b(\d+)\s*(?:hours?|hrs?)\b`)
	daysNumPattern  = regexp.MustCompile(`\b(\d+)\s*days?\b`)
	clockPattern    = regexp.MustCompile(`\b(\d{1,2}):(\d{2})\s*(am|pm)?\b`)
	bareHourPattern = regexp.MustCompile(`\bat\s+(\d{1,2})\s*(am|pm)\b`)
	allPattern      = regexp.MustCompile(`\b(?:all(?:\s+(?:the\s+)?zones?)?|everything|every\s+zone)\b`)
)

// dayTokens maps day-of-week words and aliases to day numbers (0=Sunday).
var dayTokens = map[string][]int{
	"sunday": {0}, "sun": {0},
	"monday": {1}, "mon": {1},
	"tuesday": {2}, "tue": {2}, "tues": {2},
	"wednesday": {3}, "wed": {3},
	"thursday": {4}, "thu": {4}, "thurs": {4},
	"friday": {5}, "fri": {5},
	"saturday": {6}, "sat": {6},
	"weekday": {1, 2, 3, 4, 5}, "weekdays": {1, 2, 3, 4, 5},
	"weekend": {0, 6}, "weekends": {0, 6},
	"day": {0, 1, 2, 3, 4, 5, 6}, "daily": {0, 1, 2, 3, 4, 5, 6},
}

// recognizers is the fixed priority order. Clearing a rain delay must come
// before setting one ("cancel the rain delay" contains "rain delay"), and
// schedule creation before zone start ("water zone 2 every monday" contains
// a start phrase).
var recognizers = []recognizer{
	{
		kind:       KindClearRainDelay,
		pattern:    regexp.MustCompile(`\b(?:clear|cancel|remove|end|stop)\b.*\brain\s*delay\b`),
		confidence: 0.95,
		extract:    func(string) map[string]any { return map[string]any{} },
	},
	{
		kind:       KindSetRainDelay,
		pattern:    regexp.MustCompile(`\brain\s*delay\b|\b(?:pause|delay|suspend)\b.*\b(?:water|irrigat|sprinkl|system)`),
		confidence: 0.9,
		extract:    extractRainDelay,
	},
	{
		kind:       KindCreateSchedule,
		pattern:    regexp.MustCompile(`\b(?:schedule|every|daily|each|weekdays?|weekends?)\b`),
		confidence: 0.85,
		extract:    extractSchedule,
	},
	{
		kind:       KindStopZone,
		pattern:    regexp.MustCompile(`\b(?:stop|turn\s+off|shut\s+off|halt)\b`),
		confidence: 0.9,
		extract:    extractStop,
	},
	{
		kind:       KindStartZone,
		pattern:    regexp.MustCompile(`\b(?:run|start|turn\s+on|water)\b.*\bzone\b`),
		confidence: 0.9,
		extract:    extractStart,
	},
	{
		kind:       KindGetStatus,
		pattern:    regexp.MustCompile(`\bstatus\b|what'?s\s+running|currently\s+running|\bis\s+anything\s+running\b`),
		confidence: 0.9,
		extract:    func(string) map[string]any { return map[string]any{} },
	},
}

// Classifier maps free text to a typed command. Pure computation, never
// suspends.
type Classifier struct{}

func NewClassifier() *Classifier { return &Classifier{} }

// Parse tests the input against each recognizer in priority order. No match
// yields KindUnknown with confidence 0.
func (c *Classifier) Parse(text string) ParsedIntent {
	lower := strings.ToLower(strings.TrimSpace(text))
	for _, r := range recognizers {
		if !r.pattern.MatchString(lower) {
			continue
		}
		p := ParsedIntent{
			Kind:       r.kind,
			Parameters: r.extract(lower),
			Confidence: r.confidence,
		}
		c.validate(&p)
		p.RequiresConfirmation = requiresConfirmation(&p)
		return p
	}
	return ParsedIntent{Kind: KindUnknown, Parameters: map[string]any{}}
}

func extractZone(text string) (int, bool) {
	m := zonePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	z, err := strconv.Atoi(m[1])
	return z, err == nil
}

// extractDuration returns seconds from "N minutes" or "N seconds" phrasing.
func extractDuration(text string) (int, bool) {
	if m := minutesPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n * 60, true
	}
	if m := secondsPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		return n, true
	}
	return 0, false
}

func extractStart(text string) map[string]any {
	params := map[string]any{}
	if z, ok := extractZone(text); ok {
		params[ParamZone] = z
	}
	if d, ok := extractDuration(text); ok {
		params[ParamDuration] = d
	} else {
		params[ParamDuration] = DefaultStartSeconds
	}
	return params
}

func extractStop(text string) map[string]any {
	params := map[string]any{}
	if z, ok := extractZone(text); ok {
		params[ParamZone] = z
		return params
	}
	// "stop watering" with no zone means everything; the confirmation gate
	// keeps the broad interpretation safe.
	params[ParamTarget] = TargetAll
	return params
}

func extractRainDelay(text string) map[string]any {
	params := map[string]any{}
	if m := hoursPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		params[ParamHours] = n
	} else if m := daysNumPattern.FindStringSubmatch(text); m != nil {
		n, _ := strconv.Atoi(m[1])
		params[ParamHours] = n * 24
	} else {
		params[ParamHours] = 24
	}
	return params
}

func extractSchedule(text string) map[string]any {
	params := map[string]any{}
	if z, ok := extractZone(text); ok {
		params[ParamZone] = z
	}
	if d, ok := extractDuration(text); ok {
		params[ParamDuration] = d
	} else {
		params[ParamDuration] = DefaultStartSeconds
	}
	if t, ok := extractClockTime(text); ok {
		params[ParamTime] = t
	}
	days := extractDays(text)
	if len(days) == 0 {
		// No day tokens means the user said something like "schedule zone 2
		// at 6:00"; treat it as daily.
		days = dayTokens["daily"]
	}
	params[ParamDays] = days
	return params
}

func extractClockTime(text string) (string, bool) {
	if m := clockPattern.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		hour = applyMeridiem(hour, m[3])
		return fmt.Sprintf("%02d:%02d", hour, minute), true
	}
	if m := bareHourPattern.FindStringSubmatch(text); m != nil {
		hour, _ := strconv.Atoi(m[1])
		hour = applyMeridiem(hour, m[2])
		return fmt.Sprintf("%02d:00", hour), true
	}
	return "", false
}

func applyMeridiem(hour int, meridiem string) int {
	switch meridiem {
	case "pm":
		if hour < 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	return hour
}

func extractDays(text string) []int {
	seen := map[int]bool{}
	var days []int
	for _, word := range strings.FieldsFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z')
	}) {
		for _, d := range dayTokens[word] {
			if !seen[d] {
				seen[d] = true
				days = append(days, d)
			}
		}
	}
	sort.Ints(days)
	return days
}
