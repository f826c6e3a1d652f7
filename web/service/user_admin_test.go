package service

import (
	"os"
	"testing"

	"user-admin/database"
	"user-admin/database/model"
	"user-admin/util/crypto"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func setup(t *testing.T) {
	t.Setenv("UAP_BCRYPT_COST", "4")
	os.Remove("test.db")
	if err := database.InitDB("test.db"); err != nil {
		t.Fatal(err)
	}
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

func roleIdByName(t *testing.T, name string) int {
	var role model.Role
	err := database.GetDB().Where("name = ?", name).First(&role).Error
	assert.NoError(t, err)
	return role.Id
}

func TestCreateUserDefaultRole(t *testing.T) {
	setup(t)
	defer teardown()

	svc := NewUserAdminService()

	user, err := svc.CreateUser("bob", "secret", nil)
	assert.NoError(t, err)
	assert.NotZero(t, user.Id)
	assert.Len(t, user.Roles, 1)
	assert.Equal(t, model.RoleUser, user.Roles[0].Name)

	// unknown ids are dropped; nothing left means the fallback applies
	user, err = svc.CreateUser("carol", "secret", []int{9999})
	assert.NoError(t, err)
	assert.Len(t, user.Roles, 1)
	assert.Equal(t, model.RoleUser, user.Roles[0].Name)
}

func TestCreateUserExplicitRoles(t *testing.T) {
	setup(t)
	defer teardown()

	svc := NewUserAdminService()
	userRoleId := roleIdByName(t, model.RoleUser)
	adminRoleId := roleIdByName(t, model.RoleAdmin)

	user, err := svc.CreateUser("bob", "secret", []int{userRoleId, adminRoleId})
	assert.NoError(t, err)
	assert.Len(t, user.Roles, 2)
	assert.True(t, user.HasRole(model.RoleUser))
	assert.True(t, user.HasRole(model.RoleAdmin))

	// the unknown id is dropped, the known one survives
	user, err = svc.CreateUser("carol", "secret", []int{adminRoleId, 9999})
	assert.NoError(t, err)
	assert.Len(t, user.Roles, 1)
	assert.Equal(t, model.RoleAdmin, user.Roles[0].Name)
}

func TestCreateUserValidation(t *testing.T) {
	setup(t)
	defer teardown()

	svc := NewUserAdminService()

	_, err := svc.CreateUser("", "secret", nil)
	assert.Error(t, err)
	_, err = svc.CreateUser("bob", "", nil)
	assert.Error(t, err)
}

func TestGetUserNotFound(t *testing.T) {
	setup(t)
	defer teardown()

	svc := NewUserAdminService()

	_, err := svc.GetUser(9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestListUsers(t *testing.T) {
	setup(t)
	defer teardown()

	svc := NewUserAdminService()

	// the bootstrap admin is seeded at migration time
	users, err := svc.ListUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 1)

	_, err = svc.CreateUser("bob", "secret", nil)
	assert.NoError(t, err)
	_, err = svc.CreateUser("carol", "secret", nil)
	assert.NoError(t, err)

	users, err = svc.ListUsers()
	assert.NoError(t, err)
	assert.Len(t, users, 3)
	for _, u := range users {
		assert.NotEmpty(t, u.Roles)
	}
}

func TestUpdateUserPasswordRules(t *testing.T) {
	setup(t)
	defer teardown()

	svc := NewUserAdminService()

	created, err := svc.CreateUser("bob", "original", nil)
	assert.NoError(t, err)
	originalHash := created.Password

	// blank password leaves the stored hash untouched
	updated, err := svc.UpdateUser(created.Id, "bob", "", nil)
	assert.NoError(t, err)
	assert.Equal(t, originalHash, updated.Password)
	assert.True(t, crypto.CheckPasswordHash(updated.Password, "original"))

	// whitespace counts as blank too
	updated, err = svc.UpdateUser(created.Id, "bob", "   ", nil)
	assert.NoError(t, err)
	assert.Equal(t, originalHash, updated.Password)

	// a real password is rehashed and invalidates the old plaintext
	updated, err = svc.UpdateUser(created.Id, "bob", "newpass", nil)
	assert.NoError(t, err)
	assert.NotEqual(t, originalHash, updated.Password)
	assert.True(t, crypto.CheckPasswordHash(updated.Password, "newpass"))
	assert.False(t, crypto.CheckPasswordHash(updated.Password, "original"))
}

func TestUpdateUserRoleReplacement(t *testing.T) {
	setup(t)
	defer teardown()

	svc := NewUserAdminService()
	adminRoleId := roleIdByName(t, model.RoleAdmin)

	created, err := svc.CreateUser("bob", "secret", nil)
	assert.NoError(t, err)

	updated, err := svc.UpdateUser(created.Id, "bob", "", []int{adminRoleId})
	assert.NoError(t, err)
	assert.Len(t, updated.Roles, 1)
	assert.Equal(t, model.RoleAdmin, updated.Roles[0].Name)

	// empty ids never strip the last role; the default comes back
	updated, err = svc.UpdateUser(created.Id, "bob", "", nil)
	assert.NoError(t, err)
	assert.Len(t, updated.Roles, 1)
	assert.Equal(t, model.RoleUser, updated.Roles[0].Name)

	// reload from the store to make sure the replacement persisted
	reloaded, err := svc.GetUser(created.Id)
	assert.NoError(t, err)
	assert.Len(t, reloaded.Roles, 1)
	assert.Equal(t, model.RoleUser, reloaded.Roles[0].Name)
}

func TestUpdateUserNotFound(t *testing.T) {
	setup(t)
	defer teardown()

	svc := NewUserAdminService()

	_, err := svc.UpdateUser(9999, "ghost", "pw", nil)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUser(t *testing.T) {
	setup(t)
	defer teardown()

	svc := NewUserAdminService()

	created, err := svc.CreateUser("bob", "secret", nil)
	assert.NoError(t, err)

	assert.NoError(t, svc.DeleteUser(created.Id))
	_, err = svc.GetUser(created.Id)
	assert.ErrorIs(t, err, ErrUserNotFound)

	// deleting an unknown id is a no-op
	assert.NoError(t, svc.DeleteUser(created.Id))
	assert.NoError(t, svc.DeleteUser(9999))
}

func TestDefaultRoleMissing(t *testing.T) {
	setup(t)
	defer teardown()

	svc := NewUserAdminService()

	err := database.GetDB().Where("name = ?", model.RoleUser).Delete(&model.Role{}).Error
	assert.NoError(t, err)

	_, err = svc.CreateUser("bob", "secret", nil)
	assert.ErrorIs(t, err, ErrDefaultRoleMissing)
}

// The full aggregate lifecycle: create with the default role, rename,
// swap roles without touching the password, and log in with the original
// plaintext afterwards.
func TestUserLifecycle(t *testing.T) {
	setup(t)
	defer teardown()

	svc := NewUserAdminService()
	userService := UserService{}
	adminRoleId := roleIdByName(t, model.RoleAdmin)

	alice, err := svc.CreateUser("alice", "pw123", nil)
	assert.NoError(t, err)
	assert.Len(t, alice.Roles, 1)
	assert.Equal(t, model.RoleUser, alice.Roles[0].Name)

	updated, err := svc.UpdateUser(alice.Id, "alice2", "", []int{adminRoleId})
	assert.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Len(t, updated.Roles, 1)
	assert.Equal(t, model.RoleAdmin, updated.Roles[0].Name)

	user, err := userService.CheckUser("alice2", "pw123", "")
	assert.NoError(t, err)
	assert.Equal(t, alice.Id, user.Id)
}

func TestPasswordStoredHashed(t *testing.T) {
	setup(t)
	defer teardown()

	svc := NewUserAdminService()

	user, err := svc.CreateUser("bob", "secret", nil)
	assert.NoError(t, err)
	assert.NotEqual(t, "secret", user.Password)

	cost, err := bcrypt.Cost([]byte(user.Password))
	assert.NoError(t, err)
	assert.GreaterOrEqual(t, cost, bcrypt.MinCost)
}
