// Package middleware contains the gin middleware of the panel, most
// notably the path-based authorization policy.
package middleware

import (
	"net/http"
	"sort"
	"strings"

	"user-admin/database/model"
	"user-admin/logger"
	"user-admin/web/entity"
	"user-admin/web/session"

	"github.com/gin-gonic/gin"
)

// Decision is the outcome of evaluating the policy for one request.
type Decision int

const (
	Allow Decision = iota
	// RedirectLogin means no authenticated session was present.
	RedirectLogin
	// Deny means the session lacks the required role.
	Deny
)

// Rule guards one path prefix. Public rules need no session; a rule with
// no roles admits any authenticated principal.
type Rule struct {
	Prefix string
	Public bool
	Roles  []string
}

// Policy is an immutable rule table, built once at startup and evaluated
// per request. The longest matching prefix wins.
type Policy struct {
	rules []Rule
}

// NewPolicy builds a policy from the given rules, ordered so that the
// most specific prefix is consulted first.
func NewPolicy(rules []Rule) *Policy {
	ordered := make([]Rule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Prefix) > len(ordered[j].Prefix)
	})
	return &Policy{rules: ordered}
}

// DefaultPolicy returns the rule table of the panel: login, registration,
// the error page and the users info pages are public, the admin API needs
// ROLE_ADMIN, the user API needs ROLE_USER or ROLE_ADMIN, logout is
// always reachable, and everything else needs some authenticated session.
func DefaultPolicy() *Policy {
	return NewPolicy([]Rule{
		{Prefix: "/auth/login", Public: true},
		{Prefix: "/auth/register", Public: true},
		{Prefix: "/auth/logout", Public: true},
		{Prefix: "/error", Public: true},
		{Prefix: "/users", Public: true},
		{Prefix: "/api/admin", Roles: []string{model.RoleAdmin}},
		{Prefix: "/api/user", Roles: []string{model.RoleUser, model.RoleAdmin}},
		{Prefix: "/"},
	})
}

// Decide evaluates the table for a path and the authorities of the
// current session. A nil authorities slice means no session.
func (p *Policy) Decide(path string, authorities []string) Decision {
	for _, rule := range p.rules {
		if !strings.HasPrefix(path, rule.Prefix) {
			continue
		}
		if rule.Public {
			return Allow
		}
		if authorities == nil {
			return RedirectLogin
		}
		if len(rule.Roles) == 0 {
			return Allow
		}
		for _, required := range rule.Roles {
			for _, granted := range authorities {
				if granted == required {
					return Allow
				}
			}
		}
		return Deny
	}
	// No rule matched; require a session, same as the catch-all rule.
	if authorities == nil {
		return RedirectLogin
	}
	return Allow
}

// Authorize evaluates the policy against the session of each request.
// Denied API and AJAX requests get JSON; everything else is redirected to
// the login page.
func Authorize(policy *Policy, basePath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := strings.TrimPrefix(c.Request.URL.Path, strings.TrimSuffix(basePath, "/"))
		if path == "" {
			path = "/"
		}

		var authorities []string
		principal := session.CurrentPrincipal(c)
		if principal != nil {
			authorities = principal.Authorities
			if authorities == nil {
				authorities = []string{}
			}
		}

		switch policy.Decide(path, authorities) {
		case Allow:
			c.Next()
		case RedirectLogin:
			if wantsJSON(c, path) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, entity.Msg{
					Success: false,
					Msg:     "authentication required",
				})
				return
			}
			c.Redirect(http.StatusTemporaryRedirect, basePath+"auth/login")
			c.Abort()
		case Deny:
			if principal != nil {
				logger.Warningf("access denied for %s on %s", principal.Username, path)
			}
			c.AbortWithStatusJSON(http.StatusForbidden, entity.Msg{
				Success: false,
				Msg:     "access denied",
			})
		}
	}
}

func wantsJSON(c *gin.Context, path string) bool {
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/panel/api/") {
		return true
	}
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
