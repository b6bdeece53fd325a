package entities

import "time"

var (
	SoilTypes    = []string{"Loamy", "Clay", "Sandy", "Silt", "Peaty", "Chalky", "Other"}
	LandStatuses = []string{"Active", "Planning", "Harvested", "Fallow", "Irrigated", "Other"}
)

type Land struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Name     string  `json:"name"`
	Area     float64 `json:"area"` // acres, > 0
	Crop     string  `gorm:"index" json:"crop"`
	SoilType string  `json:"soilType"`              // Loamy|Clay|Sandy|Silt|Peaty|Chalky|Other
	Status   string  `gorm:"index" json:"status"`   // Active|Planning|Harvested|Fallow|Irrigated|Other

	// [lat, lon]; lat in [-90,90], lon in [-180,180]
	Coordinates []float64 `gorm:"serializer:json" json:"coordinates"`

	FarmerID uint  `gorm:"index" json:"farmerId"`
	Farmer   *User `gorm:"foreignKey:FarmerID" json:"farmer,omitempty"`

	LastUpdated time.Time `gorm:"index" json:"lastUpdated"`

	Description    string `json:"description,omitempty"`
	IrrigationType string `json:"irrigationType,omitempty"` // None|Drip|Sprinkler|Flood|Center Pivot|Other
	FertilizerUsed string `json:"fertilizerUsed,omitempty"`
	PesticideUsed  string `json:"pesticideUsed,omitempty"`

	ExpectedYield *float64   `json:"expectedYield,omitempty"`
	ActualYield   *float64   `json:"actualYield,omitempty"`
	PlantingDate  *time.Time `json:"plantingDate,omitempty"`
	HarvestDate   *time.Time `json:"harvestDate,omitempty"`

	// Environmental readings
	SoilPh       *float64 `json:"soilPh,omitempty"`       // 0-14
	SoilMoisture *float64 `json:"soilMoisture,omitempty"` // percent
	Temperature  *float64 `json:"temperature,omitempty"`
	Rainfall     *float64 `json:"rainfall,omitempty"`

	// Financials
	Investment *float64 `json:"investment,omitempty"`
	Revenue    *float64 `json:"revenue,omitempty"`

	Tags []string `gorm:"serializer:json" json:"tags,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ValidCoordinates reports whether c is a [lat, lon] pair in range.
func ValidCoordinates(c []float64) bool {
	return len(c) == 2 &&
		c[0] >= -90 && c[0] <= 90 &&
		c[1] >= -180 && c[1] <= 180
}

func ValidSoilType(s string) bool {
	for _, v := range SoilTypes {
		if v == s {
			return true
		}
	}
	return false
}

func ValidLandStatus(s string) bool {
	for _, v := range LandStatuses {
		if v == s {
			return true
		}
	}
	return false
}
