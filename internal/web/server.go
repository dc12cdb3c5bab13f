// Package web serves the public check-in form and the admin console as
// server-rendered pages on top of the visitor API.
package web

import (
	"context"
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
	"visitor-cli/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type Dependencies struct {
	Logger   *log.Logger
	Settings config.Settings
	Sessions sessions.Store
	// Now defaults to time.Now.
	Now func() time.Time
}

type Server struct {
	httpServer *http.Server
	engine     *gin.Engine
	logger     *log.Logger
	settings   config.Settings
	sessions   sessions.Store
	now        func() time.Time
}

func NewServer(d Dependencies) *Server {
	if d.Now == nil {
		d.Now = time.Now
	}

	s := &Server{
		logger:   d.Logger,
		settings: d.Settings,
		sessions: d.Sessions,
		now:      d.Now,
	}

	engine := gin.New()
	engine.Use(gin.LoggerWithConfig(gin.LoggerConfig{Output: d.Logger.Writer()}))
	engine.Use(gin.RecoveryWithWriter(d.Logger.Writer()))
	engine.SetHTMLTemplate(template.Must(
		template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html"),
	))

	static, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	engine.StaticFS("/static", http.FS(static))

	s.engine = engine
	s.routes()

	s.httpServer = &http.Server{
		Addr:              d.Settings.Listen,
		Handler:           engine,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) routes() {
	r := s.engine

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", s.handleCheckinForm)
	r.POST("/checkin", s.handleCheckinSubmit)
	r.GET("/login", s.handleLoginForm)
	r.POST("/login", s.handleLoginSubmit)
	r.POST("/logout", s.handleLogout)

	admin := r.Group("/admin", s.requireAuth())
	admin.GET("", s.handleDashboard)
	admin.GET("/visitors", s.handleVisitors)
	admin.GET("/visitors/export", s.handleExport)
	admin.GET("/visitors/:id", s.handleVisitorDetail)
	admin.POST("/visitors/:id/delete", s.handleDelete)
}

func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
