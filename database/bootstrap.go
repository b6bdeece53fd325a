// database/bootstrap.go
package database

import (
	"log"
	"time"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"greenlands/entities"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.User{},
		&entities.Land{},
		&entities.Subsidy{},
		&entities.SubsidyApplication{},
		&entities.Message{},
		&entities.SupportRequest{},
		&entities.Notification{},
		&entities.Announcement{},
		&entities.Transaction{},
	)
}

// SeedSubsidies inserts the starter subsidy catalog on an empty table.
func SeedSubsidies(db *gorm.DB) error {
	var n int64
	if err := db.Model(&entities.Subsidy{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	now := time.Now()
	subsidies := []entities.Subsidy{
		{
			Name:                "Organic Farming Support",
			Description:         "Financial support for farmers adopting organic practices.",
			Eligibility:         "All registered farmers practicing organic farming.",
			ApplicationDeadline: now.AddDate(0, 0, 30),
		},
		{
			Name:                "Irrigation Equipment Grant",
			Description:         "Grant for purchasing modern irrigation equipment.",
			Eligibility:         "Farmers with less than 10 acres of land.",
			ApplicationDeadline: now.AddDate(0, 0, 60),
		},
		{
			Name:                "Drought Relief Fund",
			Description:         "Relief fund for farmers affected by drought.",
			Eligibility:         "Farmers in drought-declared regions.",
			ApplicationDeadline: now.AddDate(0, 0, 15),
		},
	}
	if err := db.Create(&subsidies).Error; err != nil {
		return err
	}
	log.Printf("[seed] inserted %d subsidies", len(subsidies))
	return nil
}

// SeedAnnouncements keeps a small active announcement feed on an empty table.
func SeedAnnouncements(db *gorm.DB) error {
	var n int64
	if err := db.Model(&entities.Announcement{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}
	now := time.Now()
	anns := []entities.Announcement{
		{
			Title:     "New Subsidy Program Launch",
			Content:   "A new agricultural subsidy program has been launched. Check the government portal for details.",
			Type:      "info",
			Priority:  "high",
			ExpiresAt: now.AddDate(0, 1, 0),
		},
		{
			Title:     "System Maintenance Notice",
			Content:   "The platform will be under maintenance this weekend from 2-4 AM. Please plan accordingly.",
			Type:      "warning",
			Priority:  "medium",
			ExpiresAt: now.AddDate(0, 0, 7),
		},
	}
	if err := db.Create(&anns).Error; err != nil {
		return err
	}
	log.Printf("[seed] inserted %d announcements", len(anns))
	return nil
}
