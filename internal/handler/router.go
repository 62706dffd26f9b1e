package handler

import (
	_ "embed"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/carelane/carelane/backend/internal/handler/chat"
	facilityHandler "github.com/carelane/carelane/backend/internal/handler/facility"
	middlewarePkg "github.com/carelane/carelane/backend/internal/middleware"
	chatService "github.com/carelane/carelane/backend/internal/service/chat"
	facilityService "github.com/carelane/carelane/backend/internal/service/facility"
	"github.com/carelane/carelane/backend/internal/service/session"
)

//go:embed index.html
var indexPage []byte

// NewRouter wires HTTP routes to core services.
func NewRouter(store *session.Store, chatSvc *chatService.Service, facilitySvc *facilityService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(indexPage)
	})

	chatHandler.New(store, chatSvc).RegisterRoutes(r)
	facilityHandler.New(facilitySvc).RegisterRoutes(r)

	return r
}
