package controller

import (
	"errors"
	"net/http"

	"user-admin/web/service"
	"user-admin/web/session"

	"github.com/gin-gonic/gin"
)

// UserController serves the authenticated principal's own record under
// /api/user. The policy admits ROLE_USER and ROLE_ADMIN sessions.
type UserController struct {
	userService service.UserService
}

func NewUserController(g *gin.RouterGroup) *UserController {
	a := &UserController{}
	a.initRouter(g)
	return a
}

func (a *UserController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/user")

	g.GET("", a.me)
	g.GET("/", a.me)
}

func (a *UserController) me(c *gin.Context) {
	principal := session.CurrentPrincipal(c)
	if principal == nil {
		pureJsonMsg(c, http.StatusUnauthorized, false, "authentication required")
		return
	}

	user, err := a.userService.GetUser(principal.Id)
	if err != nil {
		// The account was deleted while the session was still live.
		if errors.Is(err, service.ErrUserNotFound) {
			pureJsonMsg(c, http.StatusNotFound, false, err.Error())
			return
		}
		jsonMsg(c, "get user", err)
		return
	}
	jsonObj(c, user, nil)
}
