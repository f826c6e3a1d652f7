package controller

import (
	"net/http"
	"text/template"

	"user-admin/logger"
	"user-admin/web/service"
	"user-admin/web/session"

	"github.com/gin-gonic/gin"
)

// LoginForm represents the login request body.
type LoginForm struct {
	Username      string `json:"username" form:"username"`
	Password      string `json:"password" form:"password"`
	TwoFactorCode string `json:"twoFactorCode" form:"twoFactorCode"`
}

// RegisterForm represents the self-registration request body.
type RegisterForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

// IndexController handles the login flow and the public pages.
type IndexController struct {
	settingService   service.SettingService
	userService      service.UserService
	userAdminService *service.UserAdminService
}

// NewIndexController creates the controller and registers its routes.
func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{userAdminService: service.NewUserAdminService()}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/error", a.errorPage)
	g.GET("/users/", a.usersInfo)

	auth := g.Group("/auth")
	auth.GET("/login", a.loginPage)
	auth.POST("/login", a.login)
	auth.GET("/register", a.registerPage)
	auth.POST("/register", a.register)
	auth.GET("/logout", a.logout)
}

// index redirects authenticated sessions to the panel landing route and
// everyone else to the login page.
func (a *IndexController) index(c *gin.Context) {
	if session.IsAuthenticated(c) {
		c.Redirect(http.StatusTemporaryRedirect, "panel/")
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, "auth/login")
}

func (a *IndexController) loginPage(c *gin.Context) {
	if session.IsAuthenticated(c) {
		c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"panel/")
		return
	}
	html(c, "login.html", "Login", nil)
}

// login verifies credentials, establishes the session and reports the
// landing route. Unknown usernames and wrong passwords produce the same
// response.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "invalid form data")
		return
	}
	if form.Username == "" || form.Password == "" {
		pureJsonMsg(c, http.StatusOK, false, "username and password required")
		return
	}

	user, err := a.userService.CheckUser(form.Username, form.Password, form.TwoFactorCode)
	safeUser := template.HTMLEscapeString(form.Username)

	if err != nil {
		logger.Warningf("failed login attempt for \"%s\", IP: \"%s\"", safeUser, getRemoteIp(c))
		pureJsonMsg(c, http.StatusOK, false, "invalid username or password")
		return
	}

	sessionMaxAge, err := a.settingService.GetSessionMaxAge()
	if err != nil {
		logger.Warning("unable to get session max age:", err)
	}
	if sessionMaxAge > 0 {
		if err := session.SetMaxAge(c, sessionMaxAge*60); err != nil {
			logger.Warning("unable to set session max age:", err)
		}
	}

	if err := session.Establish(c, user); err != nil {
		logger.Warning("unable to save session:", err)
		pureJsonMsg(c, http.StatusOK, false, "login failed")
		return
	}

	service.SessionOpened()
	logger.Infof("%s logged in successfully, IP: %s", safeUser, getRemoteIp(c))
	jsonObj(c, gin.H{"landing": c.GetString("base_path") + "panel/"}, nil)
}

func (a *IndexController) registerPage(c *gin.Context) {
	html(c, "register.html", "Register", nil)
}

// register creates an account carrying the default role. No session is
// established; the new user proceeds through the normal login flow.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm

	if err := c.ShouldBind(&form); err != nil {
		pureJsonMsg(c, http.StatusOK, false, "invalid form data")
		return
	}

	user, err := a.userAdminService.CreateUser(form.Username, form.Password, nil)
	if err != nil {
		logger.Warning("registration failed:", err)
		pureJsonMsg(c, http.StatusOK, false, "registration failed")
		return
	}

	logger.Infof("%s registered, IP: %s", template.HTMLEscapeString(user.Username), getRemoteIp(c))
	jsonMsg(c, "registered", nil)
}

// logout clears the session. Always permitted by the policy.
func (a *IndexController) logout(c *gin.Context) {
	if principal := session.CurrentPrincipal(c); principal != nil {
		logger.Infof("%s logged out", principal.Username)
		service.SessionClosed()
	}
	if err := session.Invalidate(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.Redirect(http.StatusTemporaryRedirect, c.GetString("base_path")+"auth/login")
}

func (a *IndexController) errorPage(c *gin.Context) {
	html(c, "error.html", "Error", nil)
}

// usersInfo is the public informational page describing the panel roles.
func (a *IndexController) usersInfo(c *gin.Context) {
	html(c, "users.html", "Users", nil)
}
