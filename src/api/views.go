package api

import (
	"net/http"
	"time"

	"advisor/src/api/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type Server struct {
	Router         *chi.Mux
	Handler        *handlers.Handler
	allowedOrigins []string
}

func NewServer(handler *handlers.Handler, allowedOrigins []string) *Server {
	server := &Server{
		Router:         chi.NewRouter(),
		Handler:        handler,
		allowedOrigins: allowedOrigins,
	}
	server.InitRoutes()
	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.RealIP)
	s.Router.Use(s.Handler.RequestLogger)
	s.Router.Use(middleware.Recoverer)
	s.Router.Use(middleware.StripSlashes)
	s.Router.Use(cors.New(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/auth", func(r chi.Router) {
		r.Post("/signup", s.Handler.Signup)
		r.Post("/login", s.Handler.Login)
		r.Post("/token/refresh", s.Handler.RefreshToken)
	})

	s.Router.With(s.Handler.Authenticate).Get("/api/users", s.Handler.GetAllUsers)

	s.Router.Route("/api/transactions", func(r chi.Router) {
		r.Use(s.Handler.Authenticate)
		r.Post("/upload", s.Handler.UploadTransactions)
		r.Get("/view", s.Handler.GetTransactions)
		r.Get("/summary", s.Handler.GetSummary)
		r.Get("/template", s.Handler.GetTemplate)
	})
}

func NewHTTPServer(server *Server, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 35 * time.Second,
		Handler:      server,
	}
	return httpServer
}
