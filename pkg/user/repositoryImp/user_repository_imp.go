package repositoryImp

import (
	"strings"
	"time"

	"gorm.io/gorm"

	"greenlands/entities"
	"greenlands/pkg/user/repository"
)

type userRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.UserRepository { return &userRepo{db} }

func (r *userRepo) Create(u *entities.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return r.db.Create(u).Error
}

func (r *userRepo) Save(u *entities.User) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	return r.db.Save(u).Error
}

func (r *userRepo) FindByID(id uint) (*entities.User, error) {
	var u entities.User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FindByEmail(email string) (*entities.User, error) {
	var u entities.User
	if err := r.db.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) TouchLastLogin(id uint) error {
	return r.db.Model(&entities.User{}).Where("id = ?", id).
		Update("last_login", time.Now()).Error
}

func (r *userRepo) ActiveByRole(role string) ([]entities.User, error) {
	var out []entities.User
	err := r.db.Where("role = ? AND is_active = ?", role, true).
		Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *userRepo) ActiveByRoleAndID(role string, id uint) (*entities.User, error) {
	var u entities.User
	if err := r.db.Where("id = ? AND role = ? AND is_active = ?", id, role, true).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) FarmersByLocation(location string) ([]entities.User, error) {
	var out []entities.User
	err := r.db.Where("role = ? AND is_active = ? AND location LIKE ?",
		"farmer", true, "%"+location+"%").
		Order("name ASC").Find(&out).Error
	return out, err
}

func (r *userRepo) OfficialsByDepartment(department string) ([]entities.User, error) {
	var out []entities.User
	err := r.db.Where("role = ? AND is_active = ? AND department LIKE ?",
		"government", true, "%"+department+"%").
		Order("name ASC").Find(&out).Error
	return out, err
}

func (r *userRepo) Contacts(excludeID uint) ([]entities.User, error) {
	var out []entities.User
	err := r.db.Where("id <> ? AND is_active = ?", excludeID, true).
		Order("name ASC").Find(&out).Error
	return out, err
}
