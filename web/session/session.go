// Package session stores the authenticated principal in the cookie
// session and answers authorization queries about it.
package session

import (
	"encoding/gob"

	"user-admin/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const principalKey = "PRINCIPAL"

// Principal is the authenticated identity materialized at login. It
// carries the role names granted at that moment; role changes take
// effect on the next login.
type Principal struct {
	Id          int
	Username    string
	Authorities []string
}

// HasAuthority reports whether the principal holds the named role.
func (p *Principal) HasAuthority(name string) bool {
	for _, a := range p.Authorities {
		if a == name {
			return true
		}
	}
	return false
}

func init() {
	gob.Register(Principal{})
}

// Establish materializes a principal from the user's current role set and
// saves it into the session.
func Establish(c *gin.Context, user *model.User) error {
	s := sessions.Default(c)
	s.Set(principalKey, Principal{
		Id:          user.Id,
		Username:    user.Username,
		Authorities: user.RoleNames(),
	})
	return s.Save()
}

// SetMaxAge adjusts the session cookie lifetime, in seconds.
func SetMaxAge(c *gin.Context, maxAge int) error {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
	return s.Save()
}

// CurrentPrincipal returns the authenticated principal, or nil when the
// request carries no valid session.
func CurrentPrincipal(c *gin.Context) *Principal {
	s := sessions.Default(c)
	if obj := s.Get(principalKey); obj != nil {
		if p, ok := obj.(Principal); ok {
			return &p
		}
	}
	return nil
}

// IsAuthenticated reports whether the request carries a principal.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentPrincipal(c) != nil
}

// Invalidate clears the session and expires its cookie.
func Invalidate(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	return s.Save()
}
