package api

import (
	"github.com/gin-gonic/gin"
	"github.com/yourname/cadence/internal"
	"github.com/yourname/cadence/internal/auth"
	"github.com/yourname/cadence/internal/config"
	"github.com/yourname/cadence/internal/service"
	"github.com/yourname/cadence/internal/storage"
)

// Server bundles the dependencies the handlers need.
type Server struct {
	logger internal.Logger
	cfg    *config.Config
	calc   *service.Calculator
	repos  storage.Repositories
}

func NewServer(logger internal.Logger, cfg *config.Config, repos storage.Repositories) *Server {
	return &Server{
		logger: logger,
		cfg:    cfg,
		calc:   service.NewCalculator(logger),
		repos:  repos,
	}
}

func (s *Server) Logger() internal.Logger                { return s.logger }
func (s *Server) Config() *config.Config                 { return s.cfg }
func (s *Server) Calculator() *service.Calculator        { return s.calc }
func (s *Server) EventRepo() storage.EventRepository     { return s.repos.Events }
func (s *Server) SettingRepo() storage.SettingRepository { return s.repos.Settings }

var _ App = (*Server)(nil)

// NewRouter builds the gin engine with all routes behind auth.
func NewRouter(app App, provider auth.Provider, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(auth.AuthMiddleware(provider, cfg))

	r.POST("/events", PostEvent(app))
	r.GET("/events", GetEvents(app))
	r.GET("/summary/today", GetTodaySummary(app))
	r.GET("/modules/:module_type/state", GetModuleState(app))
	r.GET("/reports/weekly", GetWeeklyReport(app))
	r.PUT("/settings", PutSetting(app))
	r.GET("/settings", GetSettings(app))

	return r
}
