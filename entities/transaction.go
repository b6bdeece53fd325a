package entities

import "time"

type Transaction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	FarmerID    uint      `gorm:"index" json:"farmerId"`
	Type        string    `json:"type"` // income|expense
	Amount      float64   `json:"amount"`
	Date        time.Time `gorm:"index" json:"date"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
