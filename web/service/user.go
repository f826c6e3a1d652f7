package service

import (
	"user-admin/database"
	"user-admin/database/model"
	"user-admin/logger"
	"user-admin/util/crypto"

	"github.com/xlzd/gotp"
)

// dummyHash is compared against when the username is unknown, so the
// unknown-user and wrong-password paths cost the same and respond the
// same. Hash of an unused throwaway string.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// UserService authenticates submitted credentials against the store.
type UserService struct {
	settingService SettingService
}

// CheckUser verifies a (username, password) pair and, when two-factor is
// enabled, the submitted TOTP code. Every failure is reported as
// ErrInvalidCredentials.
func (s *UserService) CheckUser(username string, password string, twoFactorCode string) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Model(model.User{}).
		Preload("Roles").
		Where("username = ?", username).
		First(user).
		Error
	if database.IsNotFound(err) {
		crypto.CheckPasswordHash(dummyHash, password)
		return nil, ErrInvalidCredentials
	} else if err != nil {
		logger.Warning("check user err:", err)
		return nil, ErrInvalidCredentials
	}

	if !crypto.CheckPasswordHash(user.Password, password) {
		return nil, ErrInvalidCredentials
	}

	twoFactorEnable, err := s.settingService.GetTwoFactorEnable()
	if err != nil {
		logger.Warning("check two factor err:", err)
		return nil, ErrInvalidCredentials
	}

	if twoFactorEnable {
		twoFactorToken, err := s.settingService.GetTwoFactorToken()
		if err != nil {
			logger.Warning("check two factor token err:", err)
			return nil, ErrInvalidCredentials
		}

		if gotp.NewDefaultTOTP(twoFactorToken).Now() != twoFactorCode {
			return nil, ErrInvalidCredentials
		}
	}

	return user, nil
}

// GetUser loads the full aggregate for an authenticated principal.
func (s *UserService) GetUser(id int) (*model.User, error) {
	db := database.GetDB()

	user := &model.User{}
	err := db.Preload("Roles").First(user, id).Error
	if database.IsNotFound(err) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword rehashes and overwrites a user's password. Used by the
// CLI to recover a lost admin account.
func (s *UserService) ResetPassword(username string, newPassword string) error {
	db := database.GetDB()

	user := &model.User{}
	err := db.Where("username = ?", username).First(user).Error
	if database.IsNotFound(err) {
		return ErrUserNotFound
	} else if err != nil {
		return err
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hash
	return db.Save(user).Error
}
