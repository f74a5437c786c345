package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/zhouzirui/captain-jack/backend/internal/handler/relay"
	"github.com/zhouzirui/captain-jack/backend/internal/handler/scenario"
	middlewarePkg "github.com/zhouzirui/captain-jack/backend/internal/middleware"
	scenarioModel "github.com/zhouzirui/captain-jack/backend/internal/model/scenario"
)

// NewRouter wires HTTP routes to core services. replier may be nil when the
// completion provider could not be configured.
func NewRouter(scenarios scenarioModel.Store, replier relay.Replier, strictErrors bool) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.Logger)
	r.Use(middlewarePkg.Recoverer)
	r.Use(middlewarePkg.CORS)

	relay.New(replier, strictErrors).RegisterRoutes(r)
	scenario.New(scenarios).RegisterRoutes(r)

	return r
}
