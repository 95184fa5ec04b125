package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"net/http"
	"os"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/ndewijer/Author-Ledger-Backend/internal/api/response"
)

const (
	apiKeyEnv       = "INTERNAL_API_KEY"
	apiKeyHeader    = "X-API-Key"
	timeTokenHeader = "X-Time-Token"

	// timeTokenTTL is how long a generated time token is accepted.
	timeTokenTTL = 5 * time.Minute
)

// APIKeyMiddleware guards mutating endpoints. A request must carry the internal API key in
// X-API-Key and, in X-Time-Token, a fernet token sealed with a key derived from it.
// The key is read from INTERNAL_API_KEY on every request.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := os.Getenv(apiKeyEnv)
		if apiKey == "" {
			response.RespondError(w, http.StatusInternalServerError, "server misconfigured", "Authentication not loaded")
			return
		}

		provided := r.Header.Get(apiKeyHeader)
		if provided == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		token := r.Header.Get(timeTokenHeader)
		if token == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}

		key := deriveKey(apiKey)
		if fernet.VerifyAndDecrypt([]byte(token), timeTokenTTL, []*fernet.Key{&key}) == nil {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GenerateTimeToken seals the current time into a fernet token accepted by APIKeyMiddleware
// for the next five minutes. It returns an empty string if sealing fails.
func GenerateTimeToken(apiKey string) string {
	key := deriveKey(apiKey)
	payload := []byte(time.Now().UTC().Format(time.RFC3339))

	token, err := fernet.EncryptAndSign(payload, &key)
	if err != nil {
		return ""
	}
	return string(token)
}

// deriveKey turns an API key of any length into a 32-byte fernet key.
func deriveKey(apiKey string) fernet.Key {
	return fernet.Key(sha256.Sum256([]byte(apiKey)))
}

