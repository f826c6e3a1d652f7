// Package web provides the web server of the user-admin panel: routing,
// session handling, the authorization policy, and background jobs.
package web

import (
	"context"
	"crypto/tls"
	"embed"
	"html/template"
	"io"
	"net"
	"net/http"
	"strconv"

	"user-admin/config"
	"user-admin/logger"
	"user-admin/web/controller"
	"user-admin/web/job"
	"user-admin/web/middleware"
	"user-admin/web/service"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed html/*
var htmlFS embed.FS

// Server is the web server of the panel with its controllers and
// scheduled jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index *controller.IndexController
	panel *controller.PanelController
	user  *controller.UserController
	admin *controller.UserAdminController

	settingService service.SettingService

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

// NewServer creates a new web server instance with a cancellable context.
func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

func (s *Server) getHtmlTemplate() (*template.Template, error) {
	return template.New("").ParseFS(htmlFS, "html/*.html")
}

// initRouter initializes gin, registers the session store, the
// authorization policy, templates and controllers, and returns the
// configured engine.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())

	basePath, err := s.settingService.GetBasePath()
	if err != nil {
		return nil, err
	}
	engine.Use(func(c *gin.Context) {
		c.Set("base_path", basePath)
	})

	secret, err := s.settingService.GetSecret()
	if err != nil {
		return nil, err
	}

	maxAge, err := s.settingService.GetSessionMaxAge()
	if err != nil {
		return nil, err
	}

	store := cookie.NewStore(secret)
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge * 60,
		HttpOnly: true,
	})
	engine.Use(sessions.Sessions(config.GetName(), store))

	// gzip, excluding the API path to avoid double-compressing JSON
	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{basePath + "api/"}),
	))

	// The rule table is built once here and injected; handlers never
	// consult roles themselves.
	engine.Use(middleware.Authorize(middleware.DefaultPolicy(), basePath))

	tpl, err := s.getHtmlTemplate()
	if err != nil {
		return nil, err
	}
	engine.SetHTMLTemplate(tpl)

	g := engine.Group(basePath)
	s.index = controller.NewIndexController(g)
	s.panel = controller.NewPanelController(g)

	api := engine.Group(basePath + "api")
	s.user = controller.NewUserController(api)
	s.admin = controller.NewUserAdminController(api)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewClearLogsJob())
	s.cron.AddJob("@every 10m", job.NewCheckpointJob())
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	loc, err := s.settingService.GetTimeLocation()
	if err != nil {
		return err
	}
	s.cron = cron.New(cron.WithLocation(loc))
	s.cron.Start()
	s.startTask()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	certFile, err := s.settingService.GetCertFile()
	if err != nil {
		return err
	}
	keyFile, err := s.settingService.GetKeyFile()
	if err != nil {
		return err
	}
	listen, err := s.settingService.GetListen()
	if err != nil {
		return err
	}
	port, err := s.settingService.GetPort()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(listen, strconv.Itoa(port))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}

	if certFile != "" || keyFile != "" {
		cert, err := tls.LoadX509KeyPair(certFile, keyFile)
		if err != nil {
			listener.Close()
			return err
		}
		c := &tls.Config{
			Certificates: []tls.Certificate{cert},
			MinVersion:   tls.VersionTLS12,
		}
		listener = tls.NewListener(listener, c)
		logger.Info("web server running HTTPS on", listener.Addr())
	} else {
		logger.Info("web server running HTTP on", listener.Addr())
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler: engine,
	}

	go func() {
		s.httpServer.Serve(listener)
	}()

	return nil
}

// Stop gracefully shuts down the web server and its jobs.
func (s *Server) Stop() error {
	s.cancel()

	if s.cron != nil {
		s.cron.Stop()
	}

	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		if e := s.listener.Close(); err == nil {
			err = e
		}
	}
	return err
}

// GetCtx returns the server's context.
func (s *Server) GetCtx() context.Context {
	return s.ctx
}
