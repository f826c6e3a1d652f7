// Package model defines the persisted entities of the user-admin panel.
package model

const (
	// RolePrefix is the canonical prefix every role name carries.
	RolePrefix = "ROLE_"

	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User is the user-with-roles aggregate. The password column only ever
// holds a bcrypt hash; plaintext never reaches the database.
type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" gorm:"not null"`
	Roles    []Role `json:"roles" gorm:"many2many:user_roles"`
}

// HasRole reports whether the user currently holds the named role.
func (u *User) HasRole(name string) bool {
	for i := range u.Roles {
		if u.Roles[i].Name == name {
			return true
		}
	}
	return false
}

// RoleNames returns the names of the user's roles, in association order.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for i := range u.Roles {
		names = append(names, u.Roles[i].Name)
	}
	return names
}

// Role is immutable reference data seeded at migration time.
type Role struct {
	Id   int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"uniqueIndex;not null"`
}

// Setting is a key/value row backing runtime-tunable panel settings.
type Setting struct {
	Id    int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Key   string `json:"key" gorm:"uniqueIndex;not null"`
	Value string `json:"value"`
}
