package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"slackhub/appctx"
	"slackhub/core"
	"slackhub/middleware"
	"slackhub/models"
	"slackhub/models/api"
	"slackhub/services"
)

// SlackIntegrationsHTTPHandler exposes the Slack integration lifecycle over
// HTTP: OAuth install/reinstall initiation, the provider callback, and
// org-scoped CRUD
type SlackIntegrationsHTTPHandler struct {
	slackIntegrationsService services.SlackIntegrationsService
	auditLogsService         services.AuditLogsService
	alerts                   *middleware.ErrorAlertMiddleware
	siteURL                  string
}

func NewSlackIntegrationsHTTPHandler(
	slackIntegrationsService services.SlackIntegrationsService,
	auditLogsService services.AuditLogsService,
	alerts *middleware.ErrorAlertMiddleware,
	siteURL string,
) *SlackIntegrationsHTTPHandler {
	return &SlackIntegrationsHTTPHandler{
		slackIntegrationsService: slackIntegrationsService,
		auditLogsService:         auditLogsService,
		alerts:                   alerts,
		siteURL:                  siteURL,
	}
}

// SlackIntegrationUpdateRequest is the PATCH body; absent fields stay unchanged
type SlackIntegrationUpdateRequest struct {
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (h *SlackIntegrationsHTTPHandler) HandleInstallSlackIntegration(w http.ResponseWriter, r *http.Request) {
	log.Printf("➕ Slack install URL request received from %s", r.RemoteAddr)

	actor, ok := appctx.GetActor(r.Context())
	if !ok {
		log.Printf("❌ Actor not found in context")
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	slug := r.URL.Query().Get("slug")
	description := r.URL.Query().Get("description")
	if slug == "" {
		log.Printf("❌ Missing slug in install request")
		http.Error(w, "slug is required", http.StatusBadRequest)
		return
	}

	url, err := h.slackIntegrationsService.GetInstallURL(r.Context(), actor, slug, description)
	if err != nil {
		log.Printf("❌ Failed to build install URL: %v", err)
		http.Error(w, "failed to build install URL", http.StatusInternalServerError)
		return
	}

	// The attempt is recorded before the outcome is known; the flow may never
	// come back through the callback.
	_, err = h.auditLogsService.CreateAuditLog(
		r.Context(),
		actor.OrganizationID,
		actor.Type,
		actor.ID,
		models.AuditEventInstallAttempted,
		map[string]string{"slug": slug, "description": description},
	)
	if err != nil {
		log.Printf("❌ Failed to record install attempt: %v", err)
		http.Error(w, "failed to record install attempt", http.StatusInternalServerError)
		return
	}

	h.writeTextResponse(w, url)
}

func (h *SlackIntegrationsHTTPHandler) HandleReinstallSlackIntegration(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔄 Slack reinstall URL request received from %s", r.RemoteAddr)

	actor, ok := appctx.GetActor(r.Context())
	if !ok {
		log.Printf("❌ Actor not found in context")
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	integrationID := r.URL.Query().Get("slackIntegrationId")
	if !core.IsValidULID(integrationID) {
		log.Printf("❌ Missing or invalid slackIntegrationId in reinstall request")
		http.Error(w, "slackIntegrationId must be a valid ULID", http.StatusBadRequest)
		return
	}

	url, err := h.slackIntegrationsService.GetReinstallURL(r.Context(), actor, integrationID)
	if err != nil {
		log.Printf("❌ Failed to build reinstall URL: %v", err)
		if core.IsNotFoundError(err) {
			http.Error(w, "integration not found", http.StatusNotFound)
		} else {
			http.Error(w, "failed to build reinstall URL", http.StatusInternalServerError)
		}
		return
	}

	_, err = h.auditLogsService.CreateAuditLog(
		r.Context(),
		actor.OrganizationID,
		actor.Type,
		actor.ID,
		models.AuditEventReinstallAttempted,
		map[string]string{"id": integrationID},
	)
	if err != nil {
		log.Printf("❌ Failed to record reinstall attempt: %v", err)
		http.Error(w, "failed to record reinstall attempt", http.StatusInternalServerError)
		return
	}

	h.writeTextResponse(w, url)
}

// HandleOAuthRedirect terminates the OAuth flow. It never surfaces an error to
// the browser: every failure collapses into a redirect to the site root, while
// success lands on the organization's integration settings.
func (h *SlackIntegrationsHTTPHandler) HandleOAuthRedirect(w http.ResponseWriter, r *http.Request) {
	log.Printf("🔀 Slack OAuth redirect received from %s", r.RemoteAddr)

	organizationID, err := h.slackIntegrationsService.CompleteOAuthFlow(r.Context(), r)
	if err != nil {
		log.Printf("❌ OAuth flow failed: %v", err)
		h.alerts.AlertOnError(err, "slack oauth redirect")
		http.Redirect(w, r, h.siteURL, http.StatusFound)
		return
	}

	log.Printf("✅ OAuth flow completed for organization: %s", organizationID)
	successURL := fmt.Sprintf("%s/org/%s/settings?selectedTab=workflow-integrations", h.siteURL, organizationID)
	http.Redirect(w, r, successURL, http.StatusFound)
}

func (h *SlackIntegrationsHTTPHandler) HandleListSlackIntegrations(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 List Slack integrations request received from %s", r.RemoteAddr)

	actor, ok := appctx.GetActor(r.Context())
	if !ok {
		log.Printf("❌ Actor not found in context")
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	integrations, err := h.slackIntegrationsService.GetSlackIntegrationsByOrganizationID(
		r.Context(),
		actor.OrganizationID,
	)
	if err != nil {
		log.Printf("❌ Failed to get Slack integrations: %v", err)
		http.Error(w, "failed to get slack integrations", http.StatusInternalServerError)
		return
	}

	apiIntegrations := api.DomainSlackIntegrationsToAPISlackIntegrations(integrations)

	h.writeJSONResponse(w, http.StatusOK, apiIntegrations)
}

func (h *SlackIntegrationsHTTPHandler) HandleGetSlackIntegration(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 Get Slack integration request received from %s", r.RemoteAddr)

	actor, ok := appctx.GetActor(r.Context())
	if !ok {
		log.Printf("❌ Actor not found in context")
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	integrationID, ok := vars["id"]
	if !ok || !core.IsValidULID(integrationID) {
		log.Printf("❌ Missing or invalid integration ID in URL path")
		http.Error(w, "integration ID must be a valid ULID", http.StatusBadRequest)
		return
	}

	integrationOpt, err := h.slackIntegrationsService.GetSlackIntegrationByID(
		r.Context(),
		actor.OrganizationID,
		integrationID,
	)
	if err != nil {
		log.Printf("❌ Failed to get Slack integration: %v", err)
		http.Error(w, "failed to get slack integration", http.StatusInternalServerError)
		return
	}
	if !integrationOpt.IsPresent() {
		http.Error(w, "integration not found", http.StatusNotFound)
		return
	}
	integration := integrationOpt.MustGet()

	_, err = h.auditLogsService.CreateAuditLog(
		r.Context(),
		actor.OrganizationID,
		actor.Type,
		actor.ID,
		models.AuditEventRetrieved,
		map[string]string{"id": integration.ID},
	)
	if err != nil {
		log.Printf("❌ Failed to record integration retrieval: %v", err)
		http.Error(w, "failed to record integration retrieval", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, api.DomainSlackIntegrationToAPISlackIntegration(integration))
}

func (h *SlackIntegrationsHTTPHandler) HandleUpdateSlackIntegration(w http.ResponseWriter, r *http.Request) {
	log.Printf("✏️ Update Slack integration request received from %s", r.RemoteAddr)

	actor, ok := appctx.GetActor(r.Context())
	if !ok {
		log.Printf("❌ Actor not found in context")
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	integrationID, ok := vars["id"]
	if !ok || !core.IsValidULID(integrationID) {
		log.Printf("❌ Missing or invalid integration ID in URL path")
		http.Error(w, "integration ID must be a valid ULID", http.StatusBadRequest)
		return
	}

	var req SlackIntegrationUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Failed to parse request body: %v", err)
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Slug != nil && *req.Slug == "" {
		log.Printf("❌ Empty slug in update request")
		http.Error(w, "slug cannot be empty", http.StatusBadRequest)
		return
	}

	integrationOpt, err := h.slackIntegrationsService.UpdateSlackIntegration(
		r.Context(),
		actor.OrganizationID,
		integrationID,
		models.SlackIntegrationUpdate{Slug: req.Slug, Description: req.Description},
	)
	if err != nil {
		log.Printf("❌ Failed to update Slack integration: %v", err)
		http.Error(w, "failed to update slack integration", http.StatusInternalServerError)
		return
	}
	if !integrationOpt.IsPresent() {
		http.Error(w, "integration not found", http.StatusNotFound)
		return
	}
	integration := integrationOpt.MustGet()

	auditMetadata := map[string]string{"id": integration.ID, "slug": integration.Slug}
	if integration.Description != nil {
		auditMetadata["description"] = *integration.Description
	}
	_, err = h.auditLogsService.CreateAuditLog(
		r.Context(),
		actor.OrganizationID,
		actor.Type,
		actor.ID,
		models.AuditEventUpdated,
		auditMetadata,
	)
	if err != nil {
		log.Printf("❌ Failed to record integration update: %v", err)
		http.Error(w, "failed to record integration update", http.StatusInternalServerError)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, api.DomainSlackIntegrationToAPISlackIntegration(integration))
}

func (h *SlackIntegrationsHTTPHandler) HandleDeleteSlackIntegration(w http.ResponseWriter, r *http.Request) {
	log.Printf("🗑️ Delete Slack integration request received from %s", r.RemoteAddr)

	actor, ok := appctx.GetActor(r.Context())
	if !ok {
		log.Printf("❌ Actor not found in context")
		http.Error(w, "authentication required", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	integrationID, ok := vars["id"]
	if !ok || !core.IsValidULID(integrationID) {
		log.Printf("❌ Missing or invalid integration ID in URL path")
		http.Error(w, "integration ID must be a valid ULID", http.StatusBadRequest)
		return
	}

	integrationOpt, err := h.slackIntegrationsService.DeleteSlackIntegration(
		r.Context(),
		actor.OrganizationID,
		integrationID,
	)
	if err != nil {
		log.Printf("❌ Failed to delete Slack integration: %v", err)
		http.Error(w, "failed to delete slack integration", http.StatusInternalServerError)
		return
	}
	if !integrationOpt.IsPresent() {
		http.Error(w, "integration not found", http.StatusNotFound)
		return
	}
	integration := integrationOpt.MustGet()

	_, err = h.auditLogsService.CreateAuditLog(
		r.Context(),
		actor.OrganizationID,
		actor.Type,
		actor.ID,
		models.AuditEventDeleted,
		map[string]string{"id": integration.ID},
	)
	if err != nil {
		log.Printf("❌ Failed to record integration deletion: %v", err)
		http.Error(w, "failed to record integration deletion", http.StatusInternalServerError)
		return
	}

	log.Printf("✅ Slack integration deleted successfully: %s", integrationID)
	h.writeJSONResponse(w, http.StatusOK, api.DomainSlackIntegrationToAPISlackIntegration(integration))
}

func (h *SlackIntegrationsHTTPHandler) SetupEndpoints(
	router *mux.Router,
	authMiddleware *middleware.ClerkAuthMiddleware,
	rateLimiter *middleware.RateLimitMiddleware,
) {
	log.Printf("🚀 Registering Slack integration endpoints")

	router.HandleFunc("/slack/install",
		rateLimiter.WithReadLimit(authMiddleware.WithAuth(h.HandleInstallSlackIntegration))).Methods("GET")
	log.Printf("✅ GET /slack/install endpoint registered")

	router.HandleFunc("/slack/reinstall",
		rateLimiter.WithReadLimit(authMiddleware.WithAuth(h.HandleReinstallSlackIntegration))).Methods("GET")
	log.Printf("✅ GET /slack/reinstall endpoint registered")

	// The callback authenticates via the state token instead of the middleware
	router.HandleFunc("/slack/oauth_redirect",
		rateLimiter.WithReadLimit(h.HandleOAuthRedirect)).Methods("GET")
	log.Printf("✅ GET /slack/oauth_redirect endpoint registered")

	router.HandleFunc("/slack/integrations",
		rateLimiter.WithReadLimit(authMiddleware.WithAuth(h.HandleListSlackIntegrations))).Methods("GET")
	log.Printf("✅ GET /slack/integrations endpoint registered")

	router.HandleFunc("/slack/integrations/{id}",
		rateLimiter.WithReadLimit(authMiddleware.WithAuth(h.HandleGetSlackIntegration))).Methods("GET")
	log.Printf("✅ GET /slack/integrations/{id} endpoint registered")

	router.HandleFunc("/slack/integrations/{id}",
		rateLimiter.WithWriteLimit(authMiddleware.WithAuth(h.HandleUpdateSlackIntegration))).Methods("PATCH")
	log.Printf("✅ PATCH /slack/integrations/{id} endpoint registered")

	router.HandleFunc("/slack/integrations/{id}",
		rateLimiter.WithWriteLimit(authMiddleware.WithAuth(h.HandleDeleteSlackIntegration))).Methods("DELETE")
	log.Printf("✅ DELETE /slack/integrations/{id} endpoint registered")

	log.Printf("✅ All Slack integration endpoints registered successfully")
}

func (h *SlackIntegrationsHTTPHandler) writeTextResponse(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(body)); err != nil {
		log.Printf("❌ Failed to write text response: %v", err)
	}
}

func (h *SlackIntegrationsHTTPHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
