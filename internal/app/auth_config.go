package app

import (
	iauth "github.com/quillchat/quill/internal/auth"
)

// JWTServiceConfig converts the auth settings into the token service configuration.
func (c AuthConfig) JWTServiceConfig() iauth.JWTConfig {
	return iauth.JWTConfig{
		Secret:          c.JWT.Secret,
		Issuer:          c.JWT.Issuer,
		SessionTokenTTL: c.JWT.SessionTTL,
		InviteTokenTTL:  c.JWT.InviteTTL,
	}
}
