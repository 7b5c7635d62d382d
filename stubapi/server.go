// Package stubapi is a development double of the external ERP backend: just
// enough of its REST surface for the client SDK and CLI to run against
// locally. It honors the same authorization and tenant-scope headers the real
// backend expects and reports errors as {"message": ...} bodies.
package stubapi

import (
	"context"
	"net/http"
	"net/mail"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/shulehub/shule/core"
	emailsvc "github.com/shulehub/shule/services/email"
)

type (
	Options struct {
		Addr           string
		Secret         []byte
		Email          core.EmailService
		DisableReqLogs bool
		Debug          bool
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
		db   *memDB
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	if opts.Email == nil {
		opts.Email = emailsvc.NewConsoleService("Shule Stub", mail.Address{Name: "Shule", Address: "noreply@shule.app"})
	}
	s := &server{
		opts: opts,
		app:  echo.New(),
		db:   seedDB(),
	}
	s.setup()
	return s
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	if !s.opts.Debug {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = appHTTPErrorHandler
	s.app.Debug = s.opts.Debug
	s.app.HideBanner = true

	s.app.GET("/", home)

	api := s.app.Group("/api")
	jwt := middleware.JWTWithConfig(s.jwtConfig())

	registerAuthAPI(api, jwt, s)
	registerSchoolAPI(api, jwt, s)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Addr))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Shule stub ERP backend")
}
