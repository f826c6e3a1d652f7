package controller

import (
	"net"
	"net/http"
	"strings"

	"user-admin/config"
	"user-admin/logger"
	"user-admin/web/entity"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real client IP from proxy headers or the
// remote address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

func jsonMsg(c *gin.Context, msg string, err error) {
	jsonMsgObj(c, http.StatusOK, msg, nil, err)
}

func jsonObj(c *gin.Context, obj any, err error) {
	jsonMsgObj(c, http.StatusOK, "", obj, err)
}

func jsonObjStatus(c *gin.Context, statusCode int, obj any, err error) {
	jsonMsgObj(c, statusCode, "", obj, err)
}

func jsonMsgObj(c *gin.Context, statusCode int, msg string, obj any, err error) {
	m := entity.Msg{
		Obj: obj,
	}
	if err == nil {
		m.Success = true
		if msg != "" {
			m.Msg = msg
		}
	} else {
		statusCode = http.StatusBadRequest
		m.Success = false
		m.Msg = strings.TrimSpace(msg + " " + err.Error())
		logger.Warning(msg+" failed: ", err)
	}
	c.JSON(statusCode, m)
}

// pureJsonMsg sends an envelope with an explicit status code.
func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// html renders a template with the shared context values filled in.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = title
	data["base_path"] = c.GetString("base_path")
	c.HTML(http.StatusOK, name, getContext(data))
}

func getContext(h gin.H) gin.H {
	a := gin.H{
		"cur_ver": config.GetVersion(),
	}
	for key, value := range h {
		a[key] = value
	}
	return a
}
