package repository

import "greenlands/entities"

// UserRepository is the identity store shared by the auth, farmer,
// government, and communication features.
type UserRepository interface {
	Create(u *entities.User) error
	Save(u *entities.User) error
	FindByID(id uint) (*entities.User, error)
	FindByEmail(email string) (*entities.User, error)
	TouchLastLogin(id uint) error

	ActiveByRole(role string) ([]entities.User, error)
	ActiveByRoleAndID(role string, id uint) (*entities.User, error)
	FarmersByLocation(location string) ([]entities.User, error)
	OfficialsByDepartment(department string) ([]entities.User, error)
	Contacts(excludeID uint) ([]entities.User, error)
}
