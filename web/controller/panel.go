package controller

import (
	"strconv"

	"user-admin/web/service"

	"github.com/gin-gonic/gin"
)

// PanelController serves the panel landing page and its status API. The
// policy's catch-all rule already requires an authenticated session for
// everything under /panel.
type PanelController struct {
	serverService service.ServerService
}

func NewPanelController(g *gin.RouterGroup) *PanelController {
	a := &PanelController{}
	a.initRouter(g)
	return a
}

func (a *PanelController) initRouter(g *gin.RouterGroup) {
	g = g.Group("/panel")

	g.GET("/", a.index)
	g.GET("/api/server/status", a.status)
	g.GET("/api/server/logs", a.logs)
}

func (a *PanelController) index(c *gin.Context) {
	html(c, "index.html", "Panel", nil)
}

func (a *PanelController) status(c *gin.Context) {
	jsonObj(c, a.serverService.GetStatus(), nil)
}

func (a *PanelController) logs(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "50"))
	if err != nil || count < 1 {
		count = 50
	}
	level := c.DefaultQuery("level", "INFO")
	jsonObj(c, a.serverService.GetLogs(count, level), nil)
}
