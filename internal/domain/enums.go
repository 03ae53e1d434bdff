package domain

type PreferenceTier string

const (
	TierConserve PreferenceTier = "conserve"
	TierStandard PreferenceTier = "standard"
	TierLush     PreferenceTier = "lush"
)

// ValidPreferenceTiers is the canonical set of accepted tier strings.
var ValidPreferenceTiers = map[string]bool{
	"conserve": true, "standard": true, "lush": true,
}

type WaterNeed string

const (
	NeedLow      WaterNeed = "low"
	NeedStandard WaterNeed = "standard"
	NeedHigh     WaterNeed = "high"
)

type PlantingType string

const (
	PlantingLawn       PlantingType = "lawn"
	PlantingGarden     PlantingType = "garden"
	PlantingShrubs     PlantingType = "shrubs"
	PlantingFoundation PlantingType = "foundation"
)

type SystemStatus string

const (
	SystemEnabled  SystemStatus = "enabled"
	SystemDisabled SystemStatus = "disabled"
)

// ActionSource tags who or what triggered an actuation call.
type ActionSource string

const (
	SourceManual    ActionSource = "MANUAL"
	SourceAICommand ActionSource = "AI_COMMAND"
	SourceScheduled ActionSource = "SCHEDULED"
	SourceProactive ActionSource = "PROACTIVE"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)
