package domain

// Zone describes one physical irrigation zone as presented to plan synthesis.
type Zone struct {
	ID       int
	Name     string
	Planting PlantingType
	Need     WaterNeed
	// FlowGPM is the zone's measured flow rate, used to estimate per-event
	// water usage in gallons.
	FlowGPM float64
}

// MinZoneID and MaxZoneID bound the addressable zone range of the controller.
const (
	MinZoneID = 1
	MaxZoneID = 4
)

// ValidZoneID reports whether id addresses a real zone.
func ValidZoneID(id int) bool {
	return id >= MinZoneID && id <= MaxZoneID
}

// DefaultZones is the stock 4-zone layout used until per-install zone
// configuration exists.
func DefaultZones() []Zone {
	return []Zone{
		{ID: 1, Name: "Front Lawn", Planting: PlantingLawn, Need: NeedHigh, FlowGPM: 12},
		{ID: 2, Name: "Back Lawn", Planting: PlantingLawn, Need: NeedStandard, FlowGPM: 10},
		{ID: 3, Name: "Garden Beds", Planting: PlantingGarden, Need: NeedStandard, FlowGPM: 4},
		{ID: 4, Name: "Foundation", Planting: PlantingFoundation, Need: NeedLow, FlowGPM: 3},
	}
}
