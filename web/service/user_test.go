package service

import (
	"testing"

	"user-admin/database/model"

	"github.com/stretchr/testify/assert"
)

func TestCheckUser(t *testing.T) {
	setup(t)
	defer teardown()

	svc := NewUserAdminService()
	userService := UserService{}

	_, err := svc.CreateUser("bob", "secret", nil)
	assert.NoError(t, err)

	user, err := userService.CheckUser("bob", "secret", "")
	assert.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
	assert.NotEmpty(t, user.Roles)

	// wrong password and unknown username report the same error
	_, err = userService.CheckUser("bob", "wrong", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = userService.CheckUser("nobody", "secret", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCheckUserAuthorities(t *testing.T) {
	setup(t)
	defer teardown()

	userService := UserService{}

	// the bootstrap admin holds ROLE_ADMIN
	user, err := userService.CheckUser("admin", "admin", "")
	assert.NoError(t, err)
	assert.True(t, user.HasRole(model.RoleAdmin))
	assert.Contains(t, user.RoleNames(), model.RoleAdmin)
}

func TestResetPassword(t *testing.T) {
	setup(t)
	defer teardown()

	svc := NewUserAdminService()
	userService := UserService{}

	_, err := svc.CreateUser("bob", "secret", nil)
	assert.NoError(t, err)

	assert.NoError(t, userService.ResetPassword("bob", "changed"))

	_, err = userService.CheckUser("bob", "secret", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = userService.CheckUser("bob", "changed", "")
	assert.NoError(t, err)

	assert.ErrorIs(t, userService.ResetPassword("nobody", "changed"), ErrUserNotFound)
}

func TestCheckUserTwoFactor(t *testing.T) {
	setup(t)
	defer teardown()

	settingService := SettingService{}
	userService := UserService{}

	assert.NoError(t, settingService.SetTwoFactorToken("JBSWY3DPEHPK3PXP"))
	assert.NoError(t, settingService.SetTwoFactorEnable(true))

	// valid credentials without the code are rejected
	_, err := userService.CheckUser("admin", "admin", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	assert.NoError(t, settingService.SetTwoFactorEnable(false))
	_, err = userService.CheckUser("admin", "admin", "")
	assert.NoError(t, err)
}
