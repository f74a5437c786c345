package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	relaymodel "github.com/zhouzirui/captain-jack/backend/internal/model/relay"
	"github.com/zhouzirui/captain-jack/backend/pkg/utils"
)

// Recoverer 捕获 panic，记录堆栈，并以 500 {"detail": ...} 响应。
// http.ErrAbortHandler 照常向上抛出。
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			logrus.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"stack":      string(debug.Stack()),
			}).Errorf("panic recovered: %v", rec)

			utils.RespondJSON(w, http.StatusInternalServerError, relaymodel.ErrorResponse{Detail: fmt.Sprint(rec)})
		}()

		next.ServeHTTP(w, r)
	})
}
