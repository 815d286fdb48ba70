package auth

import "ShopAssist/pkg/response"

var (
	ErrInvalidCredentials = response.NewError(401, "invalid username or password")
	ErrSignToken          = response.NewError(500, "failed to sign access token")
)
