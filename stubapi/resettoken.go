package stubapi

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base32"
	"encoding/base64"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	resetSalt = []byte("shule.stubapi.resettoken")
	nowFunc   = time.Now // mockable

	// errors
	errInvalidResetToken = errors.New("invalid token")
	errResetTokenExpired = errors.New("token expired")
)

const resetTokenTimeout = 3 * 24 * time.Hour

// encodeUID base64 encodes an account ID for use in reset links.
func encodeUID(acc *account) string {
	return base64.RawURLEncoding.EncodeToString([]byte(acc.ID))
}

// decodeUID base64 decodes a UID back to an account ID.
func decodeUID(uid string) (string, error) {
	idBytes, err := base64.RawURLEncoding.DecodeString(uid)
	if err != nil {
		return "", err
	}
	return string(idBytes), nil
}

// makeResetToken generates a password reset token for an account. The token
// embeds its issue day and is signed over the current password hash, so it
// stops verifying as soon as the password changes.
func (s *server) makeResetToken(acc *account) (string, error) {
	return s.makeResetTokenWithTimestamp(acc, numDaysSince2001(nowFunc()))
}

// verifyResetToken checks that a password reset token for an account is valid.
func (s *server) verifyResetToken(acc *account, token string) error {
	if token == "" {
		return errInvalidResetToken
	}

	parts := strings.SplitN(token, "-", 2)
	if len(parts) < 2 {
		return errInvalidResetToken
	}
	tsB32 := parts[0]

	data, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(tsB32)
	if err != nil {
		return errInvalidResetToken
	}
	ts, err := strconv.Atoi(string(data))
	if err != nil {
		return errInvalidResetToken
	}

	// check that token has not been tampered with
	newToken, err := s.makeResetTokenWithTimestamp(acc, ts)
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(newToken), []byte(token)) == 0 {
		return errInvalidResetToken
	}

	// check that the timestamp is within limit
	if (numDaysSince2001(nowFunc()) - ts) > int(resetTokenTimeout/(24*time.Hour)) {
		return errResetTokenExpired
	}
	return nil
}

func (s *server) makeResetTokenWithTimestamp(acc *account, ts int) (string, error) {
	tsB32 := base32.StdEncoding.WithPadding(base32.NoPadding).EncodeToString([]byte(strconv.Itoa(ts)))
	sig, err := s.signResetValue(resetHashValue(acc, ts))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s", tsB32, sig), nil
}

func numDaysSince2001(t time.Time) int {
	ref := time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(math.Ceil(t.Sub(ref).Hours() / 24))
}

func (s *server) signResetValue(val []byte) (string, error) {
	key := sha256.Sum256(append(resetSalt, s.opts.Secret...))
	h := hmac.New(sha256.New, key[:])
	if _, err := h.Write(val); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil)), nil
}

func resetHashValue(acc *account, ts int) []byte {
	var val bytes.Buffer
	val.WriteString(acc.ID)
	val.Write(acc.passwordHash)
	val.WriteString(strconv.Itoa(ts))
	return val.Bytes()
}
