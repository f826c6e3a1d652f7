package service

import (
	"user-admin/database"
	"user-admin/database/model"
)

// RoleService reads the role catalog. The catalog is reference data
// seeded at migration time; nothing here ever writes to it.
type RoleService struct{}

func (s *RoleService) GetAll() ([]model.Role, error) {
	db := database.GetDB()

	var roles []model.Role
	if err := db.Order("id ASC").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

// Resolve maps role ids to catalog entries. Ids with no match are
// silently dropped; when nothing remains (empty input included) the
// default ROLE_USER is substituted so no user ever ends up role-less.
func (s *RoleService) Resolve(roleIds []int) ([]model.Role, error) {
	db := database.GetDB()

	var roles []model.Role
	if len(roleIds) > 0 {
		if err := db.Where("id IN ?", roleIds).Find(&roles).Error; err != nil {
			return nil, err
		}
	}
	if len(roles) > 0 {
		return roles, nil
	}

	def := &model.Role{}
	err := db.Where("name = ?", model.RoleUser).First(def).Error
	if database.IsNotFound(err) {
		return nil, ErrDefaultRoleMissing
	} else if err != nil {
		return nil, err
	}
	return []model.Role{*def}, nil
}
