package report

// Condition values recorded for a property. Matching elsewhere in this
// package is exact and case-sensitive.
const (
	ConditionGood         = "Good"
	ConditionNeedsFixing  = "Needs Fixing"
	ConditionNotAvailable = "Not Available"
)

// OfficeProperty is one entry of the fixed inspection catalog.
type OfficeProperty struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// OfficeProperties is the catalog of inspectable office properties.
var OfficeProperties = []OfficeProperty{
	{ID: "electrical-outlets-switches", Name: "Electrical Outlets & Switches"},
	{ID: "network-data-ports", Name: "Network & Data Ports"},
	{ID: "cctv-cameras-tv-printers", Name: "CCTV Cameras, TV, Printers"},
	{ID: "signage-logo-wall", Name: "Signage / Logo Wall"},
	{ID: "aircon", Name: "Aircon"},
	{ID: "aircon-tambol", Name: "Aircon Tambol"},
	{ID: "tables", Name: "Tables"},
	{ID: "chairs", Name: "Chairs"},
	{ID: "cabinets", Name: "Cabinets"},
	{ID: "light-fixtures", Name: "Light Fixtures"},
	{ID: "blinds-curtains", Name: "Blinds / Curtains"},
	{ID: "walls-ceiling", Name: "Walls & Ceiling"},
	{ID: "carpet", Name: "Carpet"},
	{ID: "door", Name: "Door"},
	{ID: "reception-counter", Name: "Reception Counter"},
	{ID: "glass-panels-windows", Name: "Glass Panels & Windows"},
	{ID: "flooring-tiles-vinyl", Name: "Flooring (Tiles / Vinyl)"},
	{ID: "pest-control-signs", Name: "Pest Control Signs"},
}

// Branches lists the offices a check-up can be filed for.
var Branches = []string{
	"Head Office",
	"Branch A",
	"Branch B",
	"Warehouse",
	"Others",
}

func KnownCondition(s string) bool {
	return s == ConditionGood || s == ConditionNeedsFixing || s == ConditionNotAvailable
}

func KnownBranch(name string) bool {
	for _, b := range Branches {
		if b == name {
			return true
		}
	}
	return false
}

func KnownProperty(id string) bool {
	for _, p := range OfficeProperties {
		if p.ID == id {
			return true
		}
	}
	return false
}
