package routes

import (
	"context"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/AnshRaj112/journal-backend/internal/handlers"
	"github.com/AnshRaj112/journal-backend/internal/middleware"
)

// Deps is everything the router needs to serve requests.
type Deps struct {
	Log            zerolog.Logger
	Accounts       handlers.Accounts
	Tokens         TokenService
	Journal        handlers.JournalStore
	Contacts       handlers.ContactStore
	DBNow          func(ctx context.Context) (time.Time, error)
	Registry       *prometheus.Registry
	AllowedOrigins []string
	Production     bool
}

// TokenService issues and verifies bearer tokens.
type TokenService interface {
	handlers.TokenIssuer
	middleware.TokenVerifier
}

func SetupRoutes(d Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(d.Log)...)
	r.Use(middleware.NewMetrics(d.Registry).Handler)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CORS(d.AllowedOrigins))
	if d.Production {
		r.Use(middleware.SecurityHeaders)
	}

	auth := handlers.NewAuthHandler(d.Accounts, d.Tokens)
	journal := handlers.NewJournalHandler(d.Journal)
	contacts := handlers.NewContactHandler(d.Contacts)
	authn := middleware.Authenticator(d.Tokens)

	r.Get("/health", handlers.Health(d.DBNow))
	r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{Registry: d.Registry}))

	// Auth routes
	r.Post("/auth/register", auth.Register)
	r.Post("/auth/login", auth.Login)

	r.With(authn).Get("/me", auth.Me)

	// Journal routes
	r.Group(func(r chi.Router) {
		r.Use(authn)
		r.Post("/journal/entry", journal.CreateEntry)
		r.Get("/journal/user/{id}", journal.ListByUser)
	})

	// Contact routes
	r.Group(func(r chi.Router) {
		r.Use(authn)
		r.Post("/contacts/add", contacts.Add)
		r.Get("/contacts/user/{id}", contacts.ListByUser)
	})

	return r
}
