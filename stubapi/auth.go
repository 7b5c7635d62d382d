package stubapi

import (
	"fmt"
	"net/http"
	"net/mail"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/shulehub/shule/api"
	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/session"
)

const (
	tokenLifetime   = 8 * time.Hour
	contextTokenKey = "userToken"
)

// Claims is the token payload the stub issues; the client only ever inspects
// the standard exp claim.
type Claims struct {
	jwt.StandardClaims
	Email string `json:"email,omitempty"`
	Role  string `json:"role,omitempty"`
	Slug  string `json:"slug,omitempty"`
}

func (s *server) jwtConfig() middleware.JWTConfig {
	return middleware.JWTConfig{
		SigningKey:    s.opts.Secret,
		SigningMethod: middleware.AlgorithmHS256,
		ContextKey:    contextTokenKey,
		Claims:        new(Claims),
	}
}

func (s *server) generateToken(usr session.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    "shule-stub",
			Subject:   usr.ID,
			ExpiresAt: now.Add(tokenLifetime).Unix(),
			IssuedAt:  now.Unix(),
		},
		Email: usr.Email,
		Role:  usr.Role,
		Slug:  usr.SchoolSlug,
	}
	token := jwt.NewWithClaims(jwt.GetSigningMethod(middleware.AlgorithmHS256), claims)
	return token.SignedString(s.opts.Secret)
}

// contextAccount resolves the JWT subject back to the seeded account.
func (s *server) contextAccount(ctx echo.Context) (*account, error) {
	token, ok := ctx.Get(contextTokenKey).(*jwt.Token)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "user not authenticated")
	}
	acc := s.db.findUser(claims.Email)
	if acc == nil {
		return nil, errHTTPNotFound
	}
	return acc, nil
}

func registerAuthAPI(g *echo.Group, jwt echo.MiddlewareFunc, s *server) {
	ag := g.Group("/auth")

	ag.POST("/login", s.login)
	ag.POST("/forgot-password", s.forgotPassword)
	ag.POST("/reset-password", s.resetPassword)

	authed := ag.Group("", jwt)
	authed.GET("/profile", s.profile)
	authed.POST("/change-password", s.changePassword)
}

func (s *server) login(ctx echo.Context) error {
	data := new(api.Credentials)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := core.Validate.Struct(data); err != nil {
		return err
	}

	acc := s.db.findUser(data.Email)
	if acc == nil {
		return errAuthenticationFailed
	}
	if err := bcryptCompare(acc.passwordHash, data.Password); err != nil {
		return errAuthenticationFailed
	}
	if acc.disabled {
		return errAccountDeactivated
	}

	token, err := s.generateToken(acc.User)
	if err != nil {
		return err
	}

	usr := acc.User
	usr.Token = token
	return ctx.JSON(http.StatusOK, usr)
}

// forgotPassword emails a reset link. It answers 204 no matter what so that
// the endpoint cannot be used to probe which addresses have accounts.
func (s *server) forgotPassword(ctx echo.Context) error {
	data := new(api.ForgotPassword)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := core.Validate.Struct(data); err != nil {
		return err
	}

	if acc := s.db.findUser(data.Email); acc != nil {
		token, err := s.makeResetToken(acc)
		if err != nil {
			return err
		}
		s.opts.Email.SendMessages(&core.EmailMessage{
			To:      []mail.Address{{Name: acc.Name, Address: acc.Email}},
			Subject: "Password reset",
			TextContent: fmt.Sprintf(
				"Hi %s,\n\nVisit /login/reset/%s/%s to choose a new password. The link is valid for %d days.",
				acc.Name, encodeUID(acc), token, int(resetTokenTimeout/(24*time.Hour)),
			),
		})
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *server) resetPassword(ctx echo.Context) error {
	data := new(api.ResetPassword)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := core.Validate.Struct(data); err != nil {
		return err
	}

	id, err := decodeUID(data.UID)
	if err != nil {
		return errInvalidResetLink
	}
	acc := s.db.findUserByID(id)
	if acc == nil {
		return errInvalidResetLink
	}
	if err := s.verifyResetToken(acc, data.Token); err != nil {
		return errInvalidResetLink
	}

	s.db.mu.Lock()
	acc.passwordHash = hash(data.NewPassword)
	s.db.mu.Unlock()
	return ctx.NoContent(http.StatusNoContent)
}

func (s *server) profile(ctx echo.Context) error {
	acc, err := s.contextAccount(ctx)
	if err != nil {
		return err
	}
	usr := acc.User
	usr.Token = "" // the profile endpoint never echoes credentials back
	return ctx.JSON(http.StatusOK, usr)
}

func (s *server) changePassword(ctx echo.Context) error {
	data := new(api.ChangePassword)
	if err := ctx.Bind(data); err != nil {
		return err
	}
	if err := core.Validate.Struct(data); err != nil {
		return err
	}

	acc, err := s.contextAccount(ctx)
	if err != nil {
		return err
	}
	if err := bcryptCompare(acc.passwordHash, data.CurrentPassword); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "current password is incorrect")
	}

	s.db.mu.Lock()
	acc.passwordHash = hash(data.NewPassword)
	s.db.mu.Unlock()
	return ctx.NoContent(http.StatusNoContent)
}
