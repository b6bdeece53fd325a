package repository

import "greenlands/entities"

type SubsidyRepository interface {
	// All lists the catalog by application deadline ascending.
	All() ([]entities.Subsidy, error)
	FindByID(id uint) (*entities.Subsidy, error)
	Create(s *entities.Subsidy) error
	CreateApplication(a *entities.SubsidyApplication) error
}
