package repository

import (
	"context"

	"gorm.io/gorm"

	"cms/internal/model"
)

// RoleRepository defines role reference data operations.
type RoleRepository interface {
	FindByName(ctx context.Context, name string) (*model.Role, error)
	SeedDefaults(ctx context.Context) error
}

type roleRepository struct {
	db *gorm.DB
}

// NewRoleRepository builds a GORM-backed repository.
func NewRoleRepository(db *gorm.DB) RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) FindByName(ctx context.Context, name string) (*model.Role, error) {
	var role model.Role
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

// SeedDefaults inserts the fixed role set if missing. Safe to run on every start.
func (r *roleRepository) SeedDefaults(ctx context.Context) error {
	for _, name := range []string{model.RoleSuperAdmin, model.RoleAuthor} {
		role := model.Role{Name: name}
		if err := r.db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}
	return nil
}
