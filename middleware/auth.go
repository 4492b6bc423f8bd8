package middleware

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/clerk/clerk-sdk-go/v2"
	"github.com/clerk/clerk-sdk-go/v2/jwks"
	"github.com/clerk/clerk-sdk-go/v2/jwt"

	"slackhub/appctx"
	"slackhub/core"
	"slackhub/models"
	"slackhub/services"
)

// ClerkAuthMiddleware resolves the actor behind each request. Two auth modes
// are accepted: a Clerk-issued JWT (dashboard users) and an organization
// secret key (machine identities).
type ClerkAuthMiddleware struct {
	usersService         services.UsersService
	organizationsService services.OrganizationsService
	clerkJWKS            *jwks.Client
}

// NewClerkAuthMiddleware creates a new authentication middleware instance
func NewClerkAuthMiddleware(
	usersService services.UsersService,
	organizationsService services.OrganizationsService,
	clerkSecretKey string,
) *ClerkAuthMiddleware {
	config := &clerk.ClientConfig{
		BackendConfig: clerk.BackendConfig{
			Key: clerk.String(clerkSecretKey),
		},
	}
	jwksClient := jwks.NewClient(config)

	return &ClerkAuthMiddleware{
		usersService:         usersService,
		organizationsService: organizationsService,
		clerkJWKS:            jwksClient,
	}
}

// WithAuth wraps an HTTP handler with actor authentication
func (m *ClerkAuthMiddleware) WithAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("🔐 Authentication middleware processing request from %s", r.RemoteAddr)

		// Check if we're in testing mode
		if os.Getenv("TESTING_MODE") == "true" {
			log.Printf("🧪 Testing mode enabled - skipping credential validation")
			m.serveAsTestActor(next, w, r)
			return
		}

		if apiKey := r.Header.Get("X-API-Key"); apiKey != "" {
			m.serveWithSecretKey(next, w, r, apiKey)
			return
		}

		m.serveWithClerkJWT(next, w, r)
	}
}

func (m *ClerkAuthMiddleware) serveWithSecretKey(
	next http.HandlerFunc,
	w http.ResponseWriter,
	r *http.Request,
	apiKey string,
) {
	organizationOpt, err := m.organizationsService.GetOrganizationBySecretKey(r.Context(), apiKey)
	if err != nil {
		log.Printf("❌ Failed to look up organization by secret key: %v", err)
		m.writeErrorResponse(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !organizationOpt.IsPresent() {
		log.Printf("❌ Invalid organization secret key")
		m.writeErrorResponse(w, "invalid api key", http.StatusUnauthorized)
		return
	}
	organization := organizationOpt.MustGet()

	actor := &models.Actor{
		Type:           models.ActorTypeIdentity,
		ID:             string(organization.ID),
		AuthMethod:     models.AuthMethodAccessToken,
		OrganizationID: organization.ID,
	}

	log.Printf("✅ Machine identity authenticated for organization: %s", organization.ID)
	ctx := appctx.SetActor(r.Context(), actor)
	ctx = appctx.SetOrganization(ctx, organization)

	next(w, r.WithContext(ctx))
}

func (m *ClerkAuthMiddleware) serveWithClerkJWT(next http.HandlerFunc, w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		log.Printf("❌ Missing Authorization header")
		m.writeErrorResponse(w, "missing authorization header", http.StatusUnauthorized)
		return
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Printf("❌ Invalid Authorization header format")
		m.writeErrorResponse(w, "invalid authorization header format", http.StatusUnauthorized)
		return
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		log.Printf("❌ Empty bearer token")
		m.writeErrorResponse(w, "empty bearer token", http.StatusUnauthorized)
		return
	}

	claims, err := jwt.Verify(r.Context(), &jwt.VerifyParams{
		Token:      token,
		JWKSClient: m.clerkJWKS,
	})
	if err != nil {
		log.Printf("❌ JWT verification failed: %v", err)
		m.writeErrorResponse(w, "invalid token", http.StatusUnauthorized)
		return
	}

	log.Printf("✅ JWT token verified successfully for subject: %s", claims.Subject)
	user, err := m.usersService.GetOrCreateUser(r.Context(), "clerk", claims.Subject, "")
	if err != nil {
		log.Printf("❌ Failed to get or create user: %v", err)
		m.writeErrorResponse(w, "internal server error", http.StatusInternalServerError)
		return
	}

	organizationOpt, err := m.organizationsService.GetOrganizationByID(r.Context(), user.OrganizationID)
	if err != nil {
		log.Printf("❌ Failed to get organization for user: %v", err)
		m.writeErrorResponse(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if !organizationOpt.IsPresent() {
		log.Printf("❌ Organization not found for user: %s", user.ID)
		m.writeErrorResponse(w, "internal server error", http.StatusInternalServerError)
		return
	}
	organization := organizationOpt.MustGet()

	actor := &models.Actor{
		Type:           models.ActorTypeUser,
		ID:             user.ID,
		AuthMethod:     models.AuthMethodJWT,
		OrganizationID: organization.ID,
	}

	log.Printf("✅ User authenticated successfully: %s", user.ID)
	ctx := appctx.SetActor(r.Context(), actor)
	ctx = appctx.SetUser(ctx, user)
	ctx = appctx.SetOrganization(ctx, organization)

	next(w, r.WithContext(ctx))
}

func (m *ClerkAuthMiddleware) serveAsTestActor(next http.HandlerFunc, w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	organization := &models.Organization{
		ID:        models.OrgID(core.NewID("org")),
		CreatedAt: now,
		UpdatedAt: now,
	}
	testUser := &models.User{
		ID:             core.NewID("u"),
		AuthProvider:   "test",
		AuthProviderID: "test-user-123",
		OrganizationID: organization.ID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	actor := &models.Actor{
		Type:           models.ActorTypeUser,
		ID:             testUser.ID,
		AuthMethod:     models.AuthMethodJWT,
		OrganizationID: organization.ID,
	}

	log.Printf("✅ Test actor created: %s", actor.ID)
	ctx := appctx.SetActor(r.Context(), actor)
	ctx = appctx.SetUser(ctx, testUser)
	ctx = appctx.SetOrganization(ctx, organization)

	next(w, r.WithContext(ctx))
}

// writeErrorResponse writes a standardized error response
func (m *ClerkAuthMiddleware) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	errorResponse := map[string]string{"error": message}
	if err := json.NewEncoder(w).Encode(errorResponse); err != nil {
		log.Printf("❌ Failed to encode error response: %v", err)
	}
}
