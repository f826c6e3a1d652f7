package controller

import (
	"errors"
	"net/http"
	"strconv"

	"user-admin/web/service"

	"github.com/gin-gonic/gin"
)

// UserForm is the write shape of the admin API. RoleIds referencing
// unknown roles are dropped during resolution; an empty set falls back
// to the default role.
type UserForm struct {
	Username string `json:"username"`
	Password string `json:"password"`
	RoleIds  []int  `json:"roleIds"`
}

// UserAdminController exposes CRUD on the user aggregate under
// /api/admin. The authorization policy admits only ROLE_ADMIN sessions
// here, so the handlers do no role checks of their own.
type UserAdminController struct {
	svc         *service.UserAdminService
	roleService service.RoleService
}

func NewUserAdminController(g *gin.RouterGroup) *UserAdminController {
	a := &UserAdminController{svc: service.NewUserAdminService()}
	a.initRouter(g)
	return a
}

func (a *UserAdminController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/admin")

	g.GET("/users", a.list)
	g.GET("/users/:id", a.get)
	g.POST("/users", a.create)
	g.PATCH("/users/:id", a.update)
	g.DELETE("/users/:id", a.delete)
	g.GET("/roles", a.roles)
}

func (a *UserAdminController) list(c *gin.Context) {
	users, err := a.svc.ListUsers()
	jsonObj(c, users, err)
}

func (a *UserAdminController) get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, "get user", err)
		return
	}
	user, err := a.svc.GetUser(id)
	if err != nil {
		a.serviceError(c, "get user", err)
		return
	}
	jsonObj(c, user, nil)
}

func (a *UserAdminController) create(c *gin.Context) {
	var form UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonMsg(c, "create user", err)
		return
	}
	user, err := a.svc.CreateUser(form.Username, form.Password, form.RoleIds)
	if err != nil {
		a.serviceError(c, "create user", err)
		return
	}
	jsonObjStatus(c, http.StatusCreated, user, nil)
}

func (a *UserAdminController) update(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, "update user", err)
		return
	}
	var form UserForm
	if err := c.ShouldBindJSON(&form); err != nil {
		jsonMsg(c, "update user", err)
		return
	}
	user, err := a.svc.UpdateUser(id, form.Username, form.Password, form.RoleIds)
	if err != nil {
		a.serviceError(c, "update user", err)
		return
	}
	jsonObj(c, user, nil)
}

func (a *UserAdminController) delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		jsonMsg(c, "delete user", err)
		return
	}
	jsonMsg(c, "delete user", a.svc.DeleteUser(id))
}

func (a *UserAdminController) roles(c *gin.Context) {
	roles, err := a.roleService.GetAll()
	jsonObj(c, roles, err)
}

// serviceError maps service errors onto status codes: unknown ids are
// 404, a broken role catalog is 500, everything else is a 400 envelope.
func (a *UserAdminController) serviceError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		pureJsonMsg(c, http.StatusNotFound, false, err.Error())
	case errors.Is(err, service.ErrDefaultRoleMissing):
		pureJsonMsg(c, http.StatusInternalServerError, false, err.Error())
	default:
		jsonMsg(c, msg, err)
	}
}
