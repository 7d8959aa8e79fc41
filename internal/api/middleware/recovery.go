package middleware

import (
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"

	"github.com/recipe-app/api/internal/api/types"
	appErr "github.com/recipe-app/api/pkg/errors"
	"github.com/recipe-app/api/pkg/logger"
)

// Recovery logs panics and answers 500 in the API error envelope.
func Recovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.L().Error("panic recovered",
					zap.String("id", GetRequestID(r.Context())),
					zap.Any("panic", rec),
					zap.ByteString("stack", debug.Stack()),
				)
				types.WriteErrorStr(w, http.StatusInternalServerError, string(appErr.CodeInternal), "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
