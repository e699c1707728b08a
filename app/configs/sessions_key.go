package configs

import (
	"encoding/base64"
	"fmt"
	"os"

	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

type SessionKeys struct {
	AuthKey []byte
	EncKey  []byte
}

// LoadSessionKeys decodes APP_AUTH_KEY and APP_ENC_KEY. Outside production a
// missing pair is replaced by random keys, which invalidates carts on restart.
func LoadSessionKeys(env ENV) (*SessionKeys, error) {
	if env.AppAuthKey == "" || env.AppEncKey == "" {
		if env.IsProduction() {
			return nil, fmt.Errorf("APP_AUTH_KEY and APP_ENC_KEY must be set in production")
		}
		zap.S().Warnf("LoadSessionKeys: session keys not configured, generating ephemeral keys")
		return &SessionKeys{
			AuthKey: securecookie.GenerateRandomKey(64),
			EncKey:  securecookie.GenerateRandomKey(32),
		}, nil
	}

	authKey, err := base64.URLEncoding.DecodeString(env.AppAuthKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_AUTH_KEY from Base64: %w", err)
	}
	encKey, err := base64.URLEncoding.DecodeString(env.AppEncKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode APP_ENC_KEY from Base64: %w", err)
	}

	if len(encKey) != 16 && len(encKey) != 24 && len(encKey) != 32 {
		return nil, fmt.Errorf("APP_ENC_KEY has invalid length %d after decoding, must be 16, 24, or 32 bytes", len(encKey))
	}

	return &SessionKeys{AuthKey: authKey, EncKey: encKey}, nil
}

// GenerateSessionKeys writes a fresh key pair to path in .env format.
func GenerateSessionKeys(path string) (authKeyBase64, encKeyBase64 string, err error) {
	authKey := securecookie.GenerateRandomKey(64)
	if authKey == nil {
		return "", "", fmt.Errorf("could not generate authentication key")
	}
	encKey := securecookie.GenerateRandomKey(32)
	if encKey == nil {
		return "", "", fmt.Errorf("could not generate encryption key")
	}

	authKeyBase64 = base64.URLEncoding.EncodeToString(authKey)
	encKeyBase64 = base64.URLEncoding.EncodeToString(encKey)

	file, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to create file %s: %w", path, err)
	}
	defer file.Close()

	if _, err := fmt.Fprintf(file, "APP_AUTH_KEY=%s\nAPP_ENC_KEY=%s\n", authKeyBase64, encKeyBase64); err != nil {
		return "", "", fmt.Errorf("failed to write keys to file %s: %w", path, err)
	}
	return authKeyBase64, encKeyBase64, nil
}
