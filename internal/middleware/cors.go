package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

var standardMethods = []string{
	http.MethodGet, http.MethodHead, http.MethodPost, http.MethodPut,
	http.MethodPatch, http.MethodDelete, http.MethodConnect,
	http.MethodOptions, http.MethodTrace,
}

func corsOptions(methods []string) cors.Options {
	return cors.Options{
		AllowOriginFunc:  func(_ *http.Request, _ string) bool { return true },
		AllowedMethods:   methods,
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           600,
	}
}

// CORS 允许任意来源、方法与请求头，并允许携带凭证。
// 携带凭证时浏览器不接受 "*"，因此回显请求的 Origin。
// go-chi/cors 只接受固定的方法列表，非标准方法按请求单独放行。
func CORS(next http.Handler) http.Handler {
	standard := cors.Handler(corsOptions(standardMethods))(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method := r.Method
		if r.Method == http.MethodOptions {
			if requested := r.Header.Get("Access-Control-Request-Method"); requested != "" {
				method = requested
			}
		}
		method = strings.ToUpper(method)

		if isStandardMethod(method) {
			standard.ServeHTTP(w, r)
			return
		}

		methods := append(append([]string(nil), standardMethods...), method)
		cors.Handler(corsOptions(methods))(next).ServeHTTP(w, r)
	})
}

func isStandardMethod(method string) bool {
	for _, m := range standardMethods {
		if m == method {
			return true
		}
	}
	return false
}
