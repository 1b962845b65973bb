package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/timenest/timenest-api/internal/api/handlers"
)

const (
	// HeaderUserID заголовок с ID пользователя (только без секрета, для разработки)
	HeaderUserID = "X-User-ID"

	msgUnauthorized = "требуется авторизация"
	msgInvalidToken = "недействительный токен"
)

type userIDKey struct{}

// WithUserID кладет ID пользователя в контекст
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserID достает ID авторизованного пользователя из контекста
func GetUserID(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok && userID != ""
}

// Auth проверяет Authorization: Bearer <jwt> (HMAC, claim sub = ID пользователя)
// Без секрета принимается заголовок X-User-ID
type Auth struct {
	secret []byte
	logger Logger
}

// NewAuth создает middleware авторизации
func NewAuth(secret string, logger Logger) *Auth {
	return &Auth{secret: []byte(secret), logger: logger}
}

// Middleware оборачивает защищенные маршруты
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := a.authenticate(r)
		if err != nil {
			a.logger.Warn("%s %s - Unauthorized: %v", r.Method, r.URL.Path, err)
			if errors.Is(err, errNoCredentials) {
				handlers.RespondUnauthorized(w, msgUnauthorized)
			} else {
				handlers.RespondUnauthorized(w, msgInvalidToken)
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

var errNoCredentials = errors.New("no credentials")

func (a *Auth) authenticate(r *http.Request) (string, error) {
	if len(a.secret) == 0 {
		userID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if userID == "" {
			return "", errNoCredentials
		}
		return userID, nil
	}

	header := r.Header.Get("Authorization")
	raw, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return "", errNoCredentials
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(strings.TrimSpace(raw), claims, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{
		jwt.SigningMethodHS256.Alg(),
		jwt.SigningMethodHS384.Alg(),
		jwt.SigningMethodHS512.Alg(),
	}))
	if err != nil {
		return "", err
	}

	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}
