package middleware

import (
	"fmt"
	"net/http"

	"github.com/sicurlav/vdtcheck/internal/logging"
)

func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logging.LogError("middleware", "Recovery", fmt.Errorf("panic: %v", rec))
				http.Error(w, `{"error":"internal server error"}`, http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
