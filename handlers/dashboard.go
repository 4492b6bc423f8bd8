package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"slackhub/appctx"
	"slackhub/middleware"
	"slackhub/models/api"
	"slackhub/services"
)

// DashboardHTTPHandler serves the user/organization endpoints the dashboard
// frontend needs around the integration lifecycle
type DashboardHTTPHandler struct {
	organizationsService services.OrganizationsService
}

func NewDashboardHTTPHandler(organizationsService services.OrganizationsService) *DashboardHTTPHandler {
	return &DashboardHTTPHandler{organizationsService: organizationsService}
}

type SecretKeyResponse struct {
	SecretKey   string `json:"secret_key"`
	GeneratedAt string `json:"generated_at"`
}

func (h *DashboardHTTPHandler) HandleUserAuthenticate(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔐 User authentication request received from %s", r.RemoteAddr)

	user, ok := appctx.GetUser(r.Context())
	if !ok {
		log.Printf("❌ User not found in context")
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	log.Printf("✅ User data retrieved from context: %s", user.ID)
	h.writeJSONResponse(w, http.StatusOK, api.DomainUserToAPIUser(user))
}

func (h *DashboardHTTPHandler) HandleGetOrganization(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Get organization request received from %s", r.RemoteAddr)

	org, ok := appctx.GetOrganization(r.Context())
	if !ok {
		log.Printf("❌ Organization not found in context")
		http.Error(w, "organization not found", http.StatusNotFound)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, org)
}

func (h *DashboardHTTPHandler) HandleGenerateSecretKey(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔑 Generate organization secret key request received from %s", r.RemoteAddr)

	org, ok := appctx.GetOrganization(r.Context())
	if !ok {
		log.Printf("❌ Organization not found in context")
		http.Error(w, "organization not found", http.StatusNotFound)
		return
	}

	secretKey, err := h.organizationsService.GenerateSecretKey(r.Context(), org.ID)
	if err != nil {
		log.Printf("❌ Failed to generate organization secret key: %v", err)
		http.Error(w, "failed to generate secret key", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Organization secret key generated successfully")
	h.writeJSONResponse(w, http.StatusOK, SecretKeyResponse{
		SecretKey:   secretKey,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *DashboardHTTPHandler) SetupEndpoints(
	router *mux.Router,
	authMiddleware *middleware.ClerkAuthMiddleware,
	rateLimiter *middleware.RateLimitMiddleware,
) {
	log.Printf("🚀 Registering dashboard endpoints")

	router.HandleFunc("/users/authenticate",
		rateLimiter.WithReadLimit(authMiddleware.WithAuth(h.HandleUserAuthenticate))).Methods("POST")
	log.Printf("✅ POST /users/authenticate endpoint registered")

	router.HandleFunc("/organizations",
		rateLimiter.WithReadLimit(authMiddleware.WithAuth(h.HandleGetOrganization))).Methods("GET")
	log.Printf("✅ GET /organizations endpoint registered")

	router.HandleFunc("/organizations/secret_key",
		rateLimiter.WithWriteLimit(authMiddleware.WithAuth(h.HandleGenerateSecretKey))).Methods("POST")
	log.Printf("✅ POST /organizations/secret_key endpoint registered")

	log.Printf("✅ All dashboard endpoints registered successfully")
}

func (h *DashboardHTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
