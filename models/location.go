package models

type LocationType string

const (
	LocationMain     LocationType = "hauptlager"
	LocationBranch   LocationType = "nebenlager"
	LocationVehicle  LocationType = "firmenfahrzeug"
	LocationSite     LocationType = "baustelle"
	LocationWorkshop LocationType = "werkstatt"
	LocationOther    LocationType = "sonstiges"
)

func (t LocationType) Valid() bool {
	switch t {
	case LocationMain, LocationBranch, LocationVehicle, LocationSite, LocationWorkshop, LocationOther:
		return true
	}
	return false
}

func (t LocationType) Label() string {
	switch t {
	case LocationMain:
		return "Hauptlager"
	case LocationBranch:
		return "Nebenlager"
	case LocationVehicle:
		return "Firmenfahrzeug"
	case LocationSite:
		return "Baustelle"
	case LocationWorkshop:
		return "Werkstatt"
	case LocationOther:
		return "Sonstiges"
	}
	return string(t)
}

type LocationFields struct {
	Name        string       `json:"bezeichnung,omitempty"`
	Description string       `json:"beschreibung,omitempty"`
	Type        LocationType `json:"lagerort_typ,omitempty"`
}
