package rest

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"stakehub/internal/config"
	"stakehub/internal/metrics"
	"stakehub/internal/service"
	"stakehub/internal/transport/rest/handler"
	"stakehub/internal/transport/rest/middleware"
	"stakehub/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	HTTP                config.HTTPConfig
	AuthService         *service.AuthService
	StakeholderService  *service.StakeholderService
	EngagementService   *service.EngagementService
	RelationshipService *service.RelationshipService
	InsightService      *service.InsightService
	DashboardService    *service.DashboardService
	WSHub               *ws.Hub
	Log                 *zap.Logger
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()
	log := c.Log.Named("http")

	// Initialize handlers
	authHandler := handler.NewAuthHandler(c.AuthService)
	stakeholderHandler := handler.NewStakeholderHandler(c.StakeholderService, c.RelationshipService, log)
	engagementHandler := handler.NewEngagementHandler(c.EngagementService, log)
	relationshipHandler := handler.NewRelationshipHandler(c.RelationshipService, log)
	aiHandler := handler.NewAIHandler(c.EngagementService, c.InsightService, log)
	dashboardHandler := handler.NewDashboardHandler(c.DashboardService, log)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.HTTP.AllowedOrigins, c.Log)

	// Initialize middleware
	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware(c.HTTP.AllowedOrigins))
	r.Use(metrics.Middleware)

	// API v1 routes
	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/auth/login", authHandler.Login).Methods("POST", "OPTIONS")

	// WebSocket route (token in query param)
	v1.HandleFunc("/ws/activity", wsHandler.ActivityWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Owner routes (require owner auth)
	owner := v1.NewRoute().Subrouter()
	owner.Use(authMW.RequireOwner)

	owner.HandleFunc("/dashboard", dashboardHandler.Get).Methods("GET", "OPTIONS")

	// static segments before {id}
	owner.HandleFunc("/stakeholders/options", stakeholderHandler.Options).Methods("GET", "OPTIONS")
	owner.HandleFunc("/stakeholders/priority", stakeholderHandler.Priority).Methods("GET", "OPTIONS")
	owner.HandleFunc("/stakeholders", stakeholderHandler.List).Methods("GET", "OPTIONS")
	owner.HandleFunc("/stakeholders", stakeholderHandler.Create).Methods("POST", "OPTIONS")
	owner.HandleFunc("/stakeholders/{id}", stakeholderHandler.Get).Methods("GET", "OPTIONS")
	owner.HandleFunc("/stakeholders/{id}", stakeholderHandler.Update).Methods("PUT", "OPTIONS")
	owner.HandleFunc("/stakeholders/{id}", stakeholderHandler.Delete).Methods("DELETE", "OPTIONS")
	owner.HandleFunc("/stakeholders/{id}/relationships", stakeholderHandler.Relationships).Methods("GET", "OPTIONS")

	owner.HandleFunc("/engagements", engagementHandler.List).Methods("GET", "OPTIONS")
	owner.HandleFunc("/engagements", engagementHandler.Create).Methods("POST", "OPTIONS")
	owner.HandleFunc("/engagements/{id}", engagementHandler.Get).Methods("GET", "OPTIONS")
	owner.HandleFunc("/engagements/{id}", engagementHandler.Update).Methods("PUT", "OPTIONS")

	owner.HandleFunc("/relationships", relationshipHandler.Create).Methods("POST", "OPTIONS")
	owner.HandleFunc("/relationships/{id}", relationshipHandler.Delete).Methods("DELETE", "OPTIONS")

	// Assistant routes
	owner.HandleFunc("/ai/engagements/{id}/summary", aiHandler.EngagementSummary).Methods("POST", "OPTIONS")
	owner.HandleFunc("/ai/draft-communication", aiHandler.DraftCommunication).Methods("POST", "OPTIONS")
	owner.HandleFunc("/ai/meeting-summary", aiHandler.MeetingSummary).Methods("POST", "OPTIONS")
	owner.HandleFunc("/ai/stakeholders/{id}/strategy", aiHandler.Strategy).Methods("POST", "OPTIONS")
	owner.HandleFunc("/ai/sentiment", aiHandler.Sentiment).Methods("POST", "OPTIONS")
	owner.HandleFunc("/ai/action-items", aiHandler.ActionItems).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
