package authService

import (
	"ShopAssist/internal/api/auth"
	"ShopAssist/pkg/bcrypt"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type IAuthService interface {
	Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error)
}

type authService struct {
	log    *logrus.Logger
	bcrypt bcrypt.IBcrypt
}

func NewAuthService(log *logrus.Logger, bcrypt bcrypt.IBcrypt) IAuthService {
	return &authService{
		log:    log,
		bcrypt: bcrypt,
	}
}
