package stubapi

import (
	"testing"
	"time"
)

func TestMakeVerifyResetToken(t *testing.T) {
	s := &server{opts: &Options{Secret: []byte("secret")}}
	acc := &account{passwordHash: hash("pwd")}
	acc.ID = "u-42"
	acc.Name = "T"
	acc.Email = "t@test.test"

	validToken, err := s.makeResetToken(acc)
	if err != nil {
		t.Fatal(err)
	}

	// generate an expired token
	dayLate := resetTokenTimeout + (24 * time.Hour)
	nowFunc = func() time.Time { return time.Now().Add(-dayLate) }
	expiredToken, err := s.makeResetToken(acc)
	if err != nil {
		t.Fatal(err)
	}
	nowFunc = time.Now // reset

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "no token", wantErr: errInvalidResetToken},
		{name: "invalid parts len", token: "lmaooolol", wantErr: errInvalidResetToken},
		{name: "invalid base32", token: "hahaha-sigsig-sig", wantErr: errInvalidResetToken},
		{name: "invalid timestamp", token: "NRXWY-sigsig-sig", wantErr: errInvalidResetToken},
		{name: "invalid token", token: "HE4TS-sigsig-sig", wantErr: errInvalidResetToken},
		{name: "expired token", token: expiredToken, wantErr: errResetTokenExpired},
		{name: "valid token", token: validToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.verifyResetToken(acc, tt.token); err != tt.wantErr {
				t.Errorf("verifyResetToken() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	t.Run("password change invalidates token", func(t *testing.T) {
		acc.passwordHash = hash("new-pwd")
		if err := s.verifyResetToken(acc, validToken); err != errInvalidResetToken {
			t.Errorf("verifyResetToken() error = %v, wantErr %v", err, errInvalidResetToken)
		}
	})
}
