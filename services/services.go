package services

import (
	"context"
	"net/http"

	"github.com/samber/mo"

	"slackhub/models"
)

// TransactionManager defines the interface for running functions inside a
// database transaction
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(context.Context) error) error
}

// UsersService defines the interface for user-related operations
type UsersService interface {
	GetOrCreateUser(ctx context.Context, authProvider, authProviderID, email string) (*models.User, error)
}

// OrganizationsService defines the interface for organization-related operations
type OrganizationsService interface {
	CreateOrganization(ctx context.Context) (*models.Organization, error)
	GetOrganizationByID(ctx context.Context, id models.OrgID) (mo.Option[*models.Organization], error)
	GetOrganizationBySecretKey(ctx context.Context, secretKey string) (mo.Option[*models.Organization], error)
	GenerateSecretKey(ctx context.Context, organizationID models.OrgID) (string, error)
}

// AuditLogsService defines the interface for recording audit events
type AuditLogsService interface {
	CreateAuditLog(
		ctx context.Context,
		organizationID models.OrgID,
		actorType models.ActorType,
		actorID string,
		eventType models.AuditEventType,
		metadata any,
	) (*models.AuditLog, error)
}

// SlackIntegrationsService defines the interface for the Slack integration
// lifecycle: OAuth install/reinstall URL generation, callback completion, and
// org-scoped CRUD
type SlackIntegrationsService interface {
	GetInstallURL(ctx context.Context, actor *models.Actor, slug, description string) (string, error)
	GetReinstallURL(ctx context.Context, actor *models.Actor, integrationID string) (string, error)
	CompleteOAuthFlow(ctx context.Context, r *http.Request) (models.OrgID, error)
	GetSlackIntegrationsByOrganizationID(
		ctx context.Context,
		organizationID models.OrgID,
	) ([]*models.SlackIntegration, error)
	GetSlackIntegrationByID(
		ctx context.Context,
		organizationID models.OrgID,
		id string,
	) (mo.Option[*models.SlackIntegration], error)
	UpdateSlackIntegration(
		ctx context.Context,
		organizationID models.OrgID,
		id string,
		update models.SlackIntegrationUpdate,
	) (mo.Option[*models.SlackIntegration], error)
	DeleteSlackIntegration(
		ctx context.Context,
		organizationID models.OrgID,
		id string,
	) (mo.Option[*models.SlackIntegration], error)
}
