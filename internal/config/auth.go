package config

import (
	"os"
	"sync"
)

type AuthConfig struct {
	ProviderURL     string // hosted auth provider base URL, must serve /userinfo
	SuperAdminEmail string // optional bootstrap seed, see UserUsecase.EnsureSuperAdmin
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		authConfig = &AuthConfig{
			ProviderURL:     os.Getenv("AUTH_PROVIDER_URL"),
			SuperAdminEmail: os.Getenv("SUPERADMIN_EMAIL"),
		}
	})
	return authConfig
}
