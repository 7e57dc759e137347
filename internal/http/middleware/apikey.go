package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingAPIKey is returned when the request carries no credential.
	ErrMissingAPIKey = fiber.NewError(fiber.StatusUnauthorized, "missing or malformed API key")
	// ErrInvalidAPIKey is returned when the credential does not match.
	ErrInvalidAPIKey = fiber.NewError(fiber.StatusForbidden, "invalid API key")

	errKeyMismatch = errors.New("api key mismatch")
)

// APIKeyConfig configures the API key guard.
type APIKeyConfig struct {
	// Key is the expected secret, either plaintext or a bcrypt hash.
	Key string
	// KeyLookup is a keyauth lookup such as "header:X-API-Key" or "query:api_key".
	KeyLookup string
	// PublicPaths bypass the guard; each entry matches itself and everything below it.
	PublicPaths []string
}

// APIKey rejects requests without the configured key: 401 when it is absent and
// 403 when it does not match. Rejections are returned to the ErrorHandler.
func APIKey(cfg APIKeyConfig) fiber.Handler {
	match := keyMatcher(cfg.Key)
	return keyauth.New(keyauth.Config{
		KeyLookup: cfg.KeyLookup,
		Next: func(c *fiber.Ctx) bool {
			return isPublicPath(c.Path(), cfg.PublicPaths)
		},
		Validator: func(_ *fiber.Ctx, key string) (bool, error) {
			if !match(key) {
				return false, errKeyMismatch
			}
			return true, nil
		},
		ErrorHandler: func(_ *fiber.Ctx, err error) error {
			if errors.Is(err, keyauth.ErrMissingOrMalformedAPIKey) {
				return ErrMissingAPIKey
			}
			return ErrInvalidAPIKey
		},
	})
}

func keyMatcher(secret string) func(string) bool {
	if isBcryptHash(secret) {
		hash := []byte(secret)
		return func(key string) bool {
			return bcrypt.CompareHashAndPassword(hash, []byte(key)) == nil
		}
	}
	want := sha256.Sum256([]byte(secret))
	return func(key string) bool {
		got := sha256.Sum256([]byte(key))
		return subtle.ConstantTimeCompare(want[:], got[:]) == 1
	}
}

func isBcryptHash(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func isPublicPath(path string, public []string) bool {
	for _, p := range public {
		if path == p || strings.HasPrefix(path, strings.TrimSuffix(p, "/")+"/") {
			return true
		}
	}
	return false
}
