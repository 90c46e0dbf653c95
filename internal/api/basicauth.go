package api

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/ignite/newsletter/internal/config"
)

var (
	errMissingAuthHeader = errors.New("missing Authorization header")
	errNotBasicScheme    = errors.New("authorization scheme is not Basic")
	errBadBase64         = errors.New("credentials are not valid base64")
	errBadEncoding       = errors.New("decoded credentials are not valid UTF-8")
	errNoColon           = errors.New("decoded credentials lack a username:password separator")
	errBadCredentials    = errors.New("invalid username or password")
)

type credentials struct {
	username string
	password string
}

// parseBasicAuth extracts Basic credentials from the request without
// judging whether they are correct.
func parseBasicAuth(r *http.Request) (credentials, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return credentials{}, errMissingAuthHeader
	}
	encoded, ok := strings.CutPrefix(header, "Basic ")
	if !ok {
		return credentials{}, errNotBasicScheme
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return credentials{}, errBadBase64
	}
	if !utf8.Valid(decoded) {
		return credentials{}, errBadEncoding
	}
	username, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return credentials{}, errNoColon
	}
	return credentials{username: username, password: password}, nil
}

// verifyCredentials compares against the configured publisher account.
// Hashing first keeps the comparison constant-time regardless of length.
func verifyCredentials(got credentials, want config.PublishConfig) error {
	gotUser := sha256.Sum256([]byte(got.username))
	wantUser := sha256.Sum256([]byte(want.Username))
	gotPass := sha256.Sum256([]byte(got.password))
	wantPass := sha256.Sum256([]byte(want.Password))

	userOK := subtle.ConstantTimeCompare(gotUser[:], wantUser[:])
	passOK := subtle.ConstantTimeCompare(gotPass[:], wantPass[:])
	if userOK&passOK != 1 {
		return errBadCredentials
	}
	return nil
}
