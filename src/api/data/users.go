package data

import (
	"errors"

	"github.com/verity-app/verity-backend/src/api/types"
	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(user *types.User) error {
	return r.db.Create(user).Error
}

// FindByEmail returns (nil, nil) when no user matches.
func (r *UserRepository) FindByEmail(email string) (*types.User, error) {
	var user types.User
	if err := r.db.First(&user, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindByID returns (nil, nil) when no user matches.
func (r *UserRepository) FindByID(id uint64) (*types.User, error) {
	var user types.User
	if err := r.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
