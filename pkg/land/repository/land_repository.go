package repository

import "greenlands/entities"

type LandRepository interface {
	Create(l *entities.Land) error
	Save(l *entities.Land) error
	Delete(id uint) error
	// FindByID and the list methods preload the owning farmer.
	FindByID(id uint) (*entities.Land, error)
	All() ([]entities.Land, error)
	ByFarmer(farmerID uint) ([]entities.Land, error)
}
