package domain

// Category partitions items into the four schedulable kinds. The set is
// closed: engine behavior switches exhaustively on it instead of comparing
// ad hoc strings.
type Category string

const (
	CategoryActivity      Category = "activity"
	CategoryTransport     Category = "transport"
	CategoryAccommodation Category = "accommodation"
	CategoryFree          Category = "free"
)

// ValidCategories is the canonical set of accepted category strings.
var ValidCategories = map[string]bool{
	"activity": true, "transport": true, "accommodation": true, "free": true,
}

// RoutedStop reports whether items of this category participate in
// route/transport estimation between stops. Free blocks and logistics
// (transport legs, lodging) are never routing endpoints.
func (c Category) RoutedStop() bool {
	switch c {
	case CategoryActivity:
		return true
	case CategoryTransport, CategoryAccommodation, CategoryFree:
		return false
	default:
		return false
	}
}

type TransportMode string

const (
	TransportModeWalk    TransportMode = "walk"
	TransportModeCar     TransportMode = "car"
	TransportModeTransit TransportMode = "transit"
	TransportModeFlight  TransportMode = "flight"
	TransportModeBike    TransportMode = "bike"
	TransportModeManual  TransportMode = "manual"
)

// ValidTransportModes is the canonical set of accepted mode strings.
var ValidTransportModes = map[string]bool{
	"walk": true, "car": true, "transit": true,
	"flight": true, "bike": true, "manual": true,
}
