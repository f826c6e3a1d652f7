package service

import (
	"strings"

	"user-admin/database"
	"user-admin/database/model"
	"user-admin/util/common"
	"user-admin/util/crypto"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserAdminService implements CRUD on the user-with-roles aggregate.
// Every write goes through role resolution, so the at-least-one-role
// invariant holds after any create or update.
type UserAdminService struct {
	DB *gorm.DB

	roleService RoleService
}

func NewUserAdminService() *UserAdminService {
	return &UserAdminService{DB: database.GetDB()}
}

func (s *UserAdminService) ListUsers() ([]model.User, error) {
	var users []model.User
	if err := s.DB.Preload("Roles").Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserAdminService) GetUser(id int) (*model.User, error) {
	user := &model.User{}
	err := s.DB.Preload("Roles").First(user, id).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserAdminService) CreateUser(username string, rawPassword string, roleIds []int) (*model.User, error) {
	if username == "" || rawPassword == "" {
		return nil, common.NewError("username and password required")
	}

	hash, err := crypto.HashPassword(rawPassword)
	if err != nil {
		return nil, err
	}

	roles, err := s.roleService.Resolve(roleIds)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: username,
		Password: hash,
		Roles:    roles,
	}
	if err := s.DB.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateUser always overwrites the username and replaces the whole role
// set; the password is rehashed only when a non-blank one is submitted.
func (s *UserAdminService) UpdateUser(id int, username string, rawPassword string, roleIds []int) (*model.User, error) {
	if username == "" {
		return nil, common.NewError("username required")
	}

	user := &model.User{}
	err := s.DB.Preload("Roles").First(user, id).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	user.Username = username

	if strings.TrimSpace(rawPassword) != "" {
		hash, err := crypto.HashPassword(rawPassword)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	roles, err := s.roleService.Resolve(roleIds)
	if err != nil {
		return nil, err
	}

	if err := s.DB.Omit("Roles").Save(user).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(user).Association("Roles").Replace(roles); err != nil {
		return nil, err
	}
	user.Roles = roles
	return user, nil
}

// DeleteUser removes a user and its role associations. Deleting an
// unknown id is a no-op.
func (s *UserAdminService) DeleteUser(id int) error {
	return s.DB.Select(clause.Associations).Delete(&model.User{Id: id}).Error
}
