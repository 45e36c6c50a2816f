package bootstrap

import (
	"AfrilanceWeb/internal/config"
	"AfrilanceWeb/internal/controller"
	"AfrilanceWeb/internal/helper"
	"AfrilanceWeb/internal/metrics"
	"AfrilanceWeb/internal/middleware"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/swaggo/swag"

	_ "AfrilanceWeb/docs"
)

type Route struct {
	cfg                 *config.AppConfig
	chi                 *chi.Mux
	sessionMiddleware   *middleware.SessionMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
	sessionController   *controller.SessionController
	messagingController *controller.MessagingController
	adminController     *controller.AdminController
	wsController        *controller.WebSocketController
}

func NewRoute(
	cfg *config.AppConfig,
	chi *chi.Mux,
	sessionMiddleware *middleware.SessionMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	sessionController *controller.SessionController,
	messagingController *controller.MessagingController,
	adminController *controller.AdminController,
	wsController *controller.WebSocketController,
) *Route {
	return &Route{
		cfg:                 cfg,
		chi:                 chi,
		sessionMiddleware:   sessionMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
		sessionController:   sessionController,
		messagingController: messagingController,
		adminController:     adminController,
		wsController:        wsController,
	}
}

func (route *Route) Register() {
	route.chi.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Welcome to Afrilance"))
	})

	route.chi.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		helper.WriteSuccess(w, map[string]string{"status": "ok"})
	})

	route.chi.Handle("/metrics", metrics.Handler())

	route.chi.Get("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		doc, err := swag.ReadDoc()
		if err != nil {
			helper.WriteError(w, helper.NewInternalServerError(""))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(doc))
	})

	route.chi.With(route.sessionMiddleware.RequireSession).Get("/ws", route.wsController.ServeWS)

	authLimit := route.rateLimitMiddleware.Limit("auth", route.cfg.AdminLoginRateLimit, route.cfg.AdminLoginWindow())

	route.chi.Route("/api", func(r chi.Router) {
		r.With(authLimit).Post("/session", route.sessionController.Create)
		r.With(authLimit).Post("/admin/login", route.adminController.Login)
		r.With(authLimit).Post("/admin/registration-requests", route.adminController.RegistrationRequest)

		r.Group(func(r chi.Router) {
			r.Use(route.sessionMiddleware.RequireSession)

			r.Get("/session", route.sessionController.Get)
			r.Delete("/session", route.sessionController.Delete)

			r.Route("/messaging", func(r chi.Router) {
				r.Get("/state", route.messagingController.GetState)
				r.Post("/conversations/refresh", route.messagingController.RefreshConversations)
				r.Post("/conversations/start", route.messagingController.StartConversation)
				r.Post("/conversations/{conversationID}/select", route.messagingController.SelectConversation)
				r.Post("/search", route.messagingController.Search)
				r.Put("/draft", route.messagingController.UpdateDraft)
				r.Post("/send", route.messagingController.Send)
				r.Post("/keypress", route.messagingController.KeyPress)
			})
		})

		r.With(route.sessionMiddleware.RequireAdmin).Get("/admin/me", route.adminController.Me)
	})
}
