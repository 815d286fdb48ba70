package authService

import (
	"ShopAssist/internal/api/auth"
	contextPkg "ShopAssist/pkg/context"
	jwtPkg "ShopAssist/pkg/jwt"
	"crypto/subtle"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

const accessTokenTTL = 12 * time.Hour

// Login authenticates the single configured admin account. Credentials come
// from ADMIN_USERNAME and ADMIN_PASSWORD_HASH so no user table is needed for
// mapping and guideline administration.
func (s *authService) Login(c context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	adminUsername := os.Getenv("ADMIN_USERNAME")
	adminPasswordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminUsername == "" || adminPasswordHash == "" {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Error("Admin credentials are not configured")
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if subtle.ConstantTimeCompare([]byte(req.Username), []byte(adminUsername)) != 1 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"username":   req.Username,
		}).Warn("Login attempt with unknown username")
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	if err := s.bcrypt.ComparePassword(adminPasswordHash, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"username":   req.Username,
		}).Warn("Login attempt with wrong password")
		return auth.LoginResponse{}, auth.ErrInvalidCredentials
	}

	token, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"username": adminUsername,
		"role":     "admin",
	}, accessTokenTTL)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to sign access token")
		return auth.LoginResponse{}, auth.ErrSignToken
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"username":   adminUsername,
	}).Info("Admin logged in")

	return auth.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}
