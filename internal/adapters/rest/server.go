package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	core_port "listing-feed-service/internal/core/port"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(
	port string,
	listingHandler *ListingHandler,
	messagingHandler *MessagingHandler,
	draftHandler *DraftHandler,
	baseLogger core_port.LoggerPort,
) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RealIP, LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID", "X-User-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(AuthContextMiddleware)

	r.Route("/api/v1", func(r chi.Router) {
		// public listing surface
		r.Get("/home-feed", listingHandler.GetHomeFeed)
		r.Get("/listings", listingHandler.FindListings)
		r.Get("/listings/{listingID}", listingHandler.GetListingDetails)
		r.Get("/filters/options", listingHandler.GetFilterOptions)
		r.Get("/agents", listingHandler.GetAgents)
		r.Post("/mortgage/schedule", listingHandler.BuildMortgageSchedule)

		// authenticated surface
		r.Group(func(r chi.Router) {
			r.Use(RequireUser)

			r.Get("/conversations", messagingHandler.GetConversations)
			r.Get("/conversations/{conversationID}/messages", messagingHandler.GetMessages)
			r.Post("/conversations/{conversationID}/messages", messagingHandler.SendMessage)

			r.Get("/pending-messages", messagingHandler.ListPendingMessages)
			r.Post("/pending-messages/{messageID}/accept", messagingHandler.AcceptPendingMessage)
			r.Post("/pending-messages/{messageID}/ignore", messagingHandler.IgnorePendingMessage)

			r.Get("/drafts/{draftID}", draftHandler.GetDraft)
			r.Put("/drafts/{draftID}", draftHandler.SaveDraft)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
