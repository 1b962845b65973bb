package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/timenest/timenest-api/internal/api/handlers"
)

// ErrPanic паника в обработчике запроса
var ErrPanic = errors.New("panic in http handler")

// Recover перехватывает панику обработчика и отвечает 500
func Recover(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if re := recover(); re != nil {
					err := fmt.Errorf("%v: %w", re, ErrPanic)
					logger.Error("%s %s - %v\n%s", r.Method, r.URL.Path, err, debug.Stack())
					handlers.RespondInternalError(w)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
