package entities

import "time"

type Subsidy struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	Eligibility         string    `json:"eligibility"`
	ApplicationDeadline time.Time `json:"applicationDeadline"`
	SourceURL           string    `json:"sourceUrl,omitempty"` // set when imported from a government page
	CreatedAt           time.Time `json:"createdAt"`
}

type SubsidyApplication struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	SubsidyID       uint           `gorm:"index" json:"subsidyId"`
	Subsidy         *Subsidy       `gorm:"foreignKey:SubsidyID" json:"subsidy,omitempty"`
	FarmerID        uint           `gorm:"index" json:"farmerId"`
	ApplicationData map[string]any `gorm:"serializer:json" json:"applicationData,omitempty"`
	Status          string         `json:"status"` // pending|approved|rejected
	CreatedAt       time.Time      `json:"createdAt"`
}
