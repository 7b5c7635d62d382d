package api

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/shulehub/shule/core"
	"github.com/shulehub/shule/core/session"
	"github.com/shulehub/shule/rest"
)

type (
	AuthService struct {
		client *rest.Client
	}

	Credentials struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	// ChangePassword carries the change-password form; the new password is
	// checked against the password policy before it ever leaves the client.
	ChangePassword struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required"`
		PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=NewPassword"`
	}

	ForgotPassword struct {
		Email string `json:"email" validate:"required,email"`
	}

	// ResetPassword completes the emailed reset flow; uid and token come from
	// the reset link.
	ResetPassword struct {
		UID             string `json:"uid" validate:"required"`
		Token           string `json:"token" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required"`
		PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=NewPassword"`
	}
)

var _ session.LoginService = (*AuthService)(nil)

func init() {
	core.Validate.RegisterStructValidation(changePasswordValidation, ChangePassword{})
	core.Validate.RegisterStructValidation(resetPasswordValidation, ResetPassword{})
}

func changePasswordValidation(sl validator.StructLevel) {
	cp := sl.Current().Interface().(ChangePassword)
	if cp.NewPassword != "" {
		core.ValidatePassword(sl, cp.NewPassword)
	}
}

func resetPasswordValidation(sl validator.StructLevel) {
	rp := sl.Current().Interface().(ResetPassword)
	if rp.NewPassword != "" {
		core.ValidatePassword(sl, rp.NewPassword)
	}
}

func NewAuthService(client *rest.Client) *AuthService {
	return &AuthService{client: client}
}

// Login exchanges credentials for the full user record, token included.
// Validation failures and bad credentials are reported as error values.
func (s *AuthService) Login(ctx context.Context, email, password string) (session.User, error) {
	creds := Credentials{
		Email:    core.CleanString(email, true /* lower */),
		Password: password,
	}
	if err := core.Validate.Struct(creds); err != nil {
		return session.User{}, core.NewValidationError(err, core.TranslateValidationErrors(err)...)
	}

	var usr session.User
	if err := s.client.Post(ctx, "/api/auth/login", creds, &usr); err != nil {
		return session.User{}, err
	}
	return usr, nil
}

func (s *AuthService) ChangePassword(ctx context.Context, data ChangePassword) error {
	if err := core.Validate.Struct(data); err != nil {
		return core.NewValidationError(err, core.TranslateValidationErrors(err)...)
	}
	return s.client.Post(ctx, "/api/auth/change-password", data, nil)
}

// ForgotPassword asks the backend to email a reset link. The backend answers
// 204 whether or not the address is known, so nothing leaks about accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	data := ForgotPassword{Email: core.CleanString(email, true /* lower */)}
	if err := core.Validate.Struct(data); err != nil {
		return core.NewValidationError(err, core.TranslateValidationErrors(err)...)
	}
	return s.client.Post(ctx, "/api/auth/forgot-password", data, nil)
}

func (s *AuthService) ResetPassword(ctx context.Context, data ResetPassword) error {
	if err := core.Validate.Struct(data); err != nil {
		return core.NewValidationError(err, core.TranslateValidationErrors(err)...)
	}
	return s.client.Post(ctx, "/api/auth/reset-password", data, nil)
}

// Profile fetches the authenticated user's record, without the token.
func (s *AuthService) Profile(ctx context.Context) (session.User, error) {
	var usr session.User
	if err := s.client.Get(ctx, "/api/auth/profile", nil, &usr); err != nil {
		return session.User{}, err
	}
	return usr, nil
}
