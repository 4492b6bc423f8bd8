package slackintegrations

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/samber/mo"

	"slackhub/clients"
	"slackhub/core"
	"slackhub/models"
	"slackhub/oauthstate"
	"slackhub/services"
)

// SlackIntegrationsRepository defines the interface for Slack integration repository operations
type SlackIntegrationsRepository interface {
	CreateSlackIntegration(ctx context.Context, integration *models.SlackIntegration) error
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
	UpdateSlackIntegrationWorkspace(
		ctx context.Context,
		organizationID models.OrgID,
		id string,
		teamID, teamName, botToken string,
	) (mo.Option[*models.SlackIntegration], error)
	DeleteSlackIntegrationByID(
		ctx context.Context,
		organizationID models.OrgID,
		id string,
	) (mo.Option[*models.SlackIntegration], error)
}

// installationMetadata is the shape of the installer's JSON-encoded metadata.
// The orgId field is the one hard requirement; the rest steers persistence.
type installationMetadata struct {
	OrgID              string               `json:"orgId"`
	ActorType          string               `json:"actorType"`
	ActorID            string               `json:"actorId"`
	Operation          oauthstate.Operation `json:"operation"`
	Slug               string               `json:"slug"`
	Description        string               `json:"description"`
	SlackIntegrationID string               `json:"slackIntegrationId"`
}

type SlackIntegrationsService struct {
	slackIntegrationsRepo SlackIntegrationsRepository
	installer             clients.SlackInstaller
	auditLogsService      services.AuditLogsService
	txManager             services.TransactionManager
}

func NewSlackIntegrationsService(
	repo SlackIntegrationsRepository,
	installer clients.SlackInstaller,
	auditLogsService services.AuditLogsService,
	txManager services.TransactionManager,
) *SlackIntegrationsService {
	return &SlackIntegrationsService{
		slackIntegrationsRepo: repo,
		installer:             installer,
		auditLogsService:      auditLogsService,
		txManager:             txManager,
	}
}

// GetInstallURL returns the Slack authorization URL for a fresh install. The
// actor's organization and the requested slug/description travel inside the
// signed state token, so the callback needs no session to recover them.
func (s *SlackIntegrationsService) GetInstallURL(
	ctx context.Context,
	actor *models.Actor,
	slug, description string,
) (string, error) {
	log.Printf("📋 Starting to build install URL for organization: %s", actor.OrganizationID)
	if slug == "" {
		return "", fmt.Errorf("slug cannot be empty")
	}

	url, err := s.installer.BuildInstallURL(oauthstate.NewInstallClaims(actor, slug, description))
	if err != nil {
		return "", fmt.Errorf("failed to build install URL: %w", err)
	}

	log.Printf("📋 Completed successfully - built install URL for slug: %s", slug)
	return url, nil
}

// GetReinstallURL returns a new authorization URL that, on success, refreshes
// the tokens of an existing integration instead of creating a new record
func (s *SlackIntegrationsService) GetReinstallURL(
	ctx context.Context,
	actor *models.Actor,
	integrationID string,
) (string, error) {
	log.Printf("📋 Starting to build reinstall URL for integration: %s", integrationID)
	if !core.IsValidULID(integrationID) {
		return "", fmt.Errorf("integration ID must be a valid ULID")
	}

	integrationOpt, err := s.slackIntegrationsRepo.GetSlackIntegrationByID(ctx, actor.OrganizationID, integrationID)
	if err != nil {
		return "", fmt.Errorf("failed to get slack integration by ID: %w", err)
	}
	if !integrationOpt.IsPresent() {
		return "", core.ErrNotFound
	}

	url, err := s.installer.BuildInstallURL(oauthstate.NewReinstallClaims(actor, integrationID))
	if err != nil {
		return "", fmt.Errorf("failed to build reinstall URL: %w", err)
	}

	log.Printf("📋 Completed successfully - built reinstall URL for integration: %s", integrationID)
	return url, nil
}

// CompleteOAuthFlow terminates one install or reinstall attempt from the
// provider's raw callback request. It returns the owning organization's ID for
// the success redirect; any error means the whole attempt failed and nothing
// was persisted.
func (s *SlackIntegrationsService) CompleteOAuthFlow(
	ctx context.Context,
	r *http.Request,
) (models.OrgID, error) {
	log.Printf("📋 Starting to complete OAuth flow")

	result := s.installer.HandleCallback(r)
	installation, err := result.Get()
	if err != nil {
		return "", fmt.Errorf("oauth callback failed: %w", err)
	}

	var metadata installationMetadata
	if err := json.Unmarshal([]byte(installation.Metadata), &metadata); err != nil {
		return "", fmt.Errorf("failed to parse installation metadata: %w", err)
	}
	if metadata.OrgID == "" {
		return "", fmt.Errorf("installation metadata is missing orgId")
	}
	organizationID := models.OrgID(metadata.OrgID)

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		switch metadata.Operation {
		case oauthstate.OperationInstall:
			return s.finishInstall(txCtx, organizationID, &metadata, installation)
		case oauthstate.OperationReinstall:
			return s.finishReinstall(txCtx, organizationID, &metadata, installation)
		default:
			return fmt.Errorf("installation metadata carries an unknown operation: %q", metadata.Operation)
		}
	})
	if err != nil {
		return "", err
	}

	log.Printf("📋 Completed successfully - finished OAuth flow for organization: %s", organizationID)
	return organizationID, nil
}

func (s *SlackIntegrationsService) finishInstall(
	ctx context.Context,
	organizationID models.OrgID,
	metadata *installationMetadata,
	installation *clients.SlackInstallation,
) error {
	if metadata.Slug == "" {
		return fmt.Errorf("install metadata is missing the slug")
	}

	integration := &models.SlackIntegration{
		ID:             core.NewID("si"),
		OrganizationID: organizationID,
		Slug:           metadata.Slug,
		SlackTeamID:    &installation.TeamID,
		SlackTeamName:  &installation.TeamName,
		SlackBotToken:  &installation.AccessToken,
	}
	if metadata.Description != "" {
		integration.Description = &metadata.Description
	}

	if err := s.slackIntegrationsRepo.CreateSlackIntegration(ctx, integration); err != nil {
		return fmt.Errorf("failed to create slack integration in database: %w", err)
	}

	_, err := s.auditLogsService.CreateAuditLog(
		ctx,
		organizationID,
		models.ActorType(metadata.ActorType),
		metadata.ActorID,
		models.AuditEventInstallCompleted,
		map[string]string{"id": integration.ID, "slug": integration.Slug, "teamName": installation.TeamName},
	)
	if err != nil {
		return fmt.Errorf("failed to record install completion: %w", err)
	}

	return nil
}

func (s *SlackIntegrationsService) finishReinstall(
	ctx context.Context,
	organizationID models.OrgID,
	metadata *installationMetadata,
	installation *clients.SlackInstallation,
) error {
	integrationOpt, err := s.slackIntegrationsRepo.UpdateSlackIntegrationWorkspace(
		ctx,
		organizationID,
		metadata.SlackIntegrationID,
		installation.TeamID,
		installation.TeamName,
		installation.AccessToken,
	)
	if err != nil {
		return fmt.Errorf("failed to update slack integration workspace: %w", err)
	}
	if !integrationOpt.IsPresent() {
		return core.ErrNotFound
	}
	integration := integrationOpt.MustGet()

	_, err = s.auditLogsService.CreateAuditLog(
		ctx,
		organizationID,
		models.ActorType(metadata.ActorType),
		metadata.ActorID,
		models.AuditEventReinstallCompleted,
		map[string]string{"id": integration.ID, "teamName": installation.TeamName},
	)
	if err != nil {
		return fmt.Errorf("failed to record reinstall completion: %w", err)
	}

	return nil
}

func (s *SlackIntegrationsService) GetSlackIntegrationsByOrganizationID(
	ctx context.Context,
	organizationID models.OrgID,
) ([]*models.SlackIntegration, error) {
	log.Printf("📋 Starting to get Slack integrations for organization: %s", organizationID)
	if !core.IsValidULID(string(organizationID)) {
		return nil, fmt.Errorf("organization ID must be a valid ULID")
	}

	integrations, err := s.slackIntegrationsRepo.GetSlackIntegrationsByOrganizationID(ctx, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get slack integrations for organization: %w", err)
	}

	log.Printf("📋 Completed successfully - found %d Slack integrations for organization: %s",
		len(integrations), organizationID)
	return integrations, nil
}

func (s *SlackIntegrationsService) GetSlackIntegrationByID(
	ctx context.Context,
	organizationID models.OrgID,
	id string,
) (mo.Option[*models.SlackIntegration], error) {
	log.Printf("📋 Starting to get Slack integration by ID: %s", id)
	if !core.IsValidULID(id) {
		return mo.None[*models.SlackIntegration](), fmt.Errorf("integration ID must be a valid ULID")
	}

	integrationOpt, err := s.slackIntegrationsRepo.GetSlackIntegrationByID(ctx, organizationID, id)
	if err != nil {
		return mo.None[*models.SlackIntegration](), fmt.Errorf("failed to get slack integration by ID: %w", err)
	}

	if !integrationOpt.IsPresent() {
		log.Printf("📋 Completed successfully - slack integration not found")
		return mo.None[*models.SlackIntegration](), nil
	}

	log.Printf("📋 Completed successfully - found slack integration: %s", id)
	return integrationOpt, nil
}

func (s *SlackIntegrationsService) UpdateSlackIntegration(
	ctx context.Context,
	organizationID models.OrgID,
	id string,
	update models.SlackIntegrationUpdate,
) (mo.Option[*models.SlackIntegration], error) {
	log.Printf("📋 Starting to update Slack integration: %s", id)
	if !core.IsValidULID(id) {
		return mo.None[*models.SlackIntegration](), fmt.Errorf("integration ID must be a valid ULID")
	}
	if update.Slug != nil && *update.Slug == "" {
		return mo.None[*models.SlackIntegration](), fmt.Errorf("slug cannot be empty")
	}

	integrationOpt, err := s.slackIntegrationsRepo.UpdateSlackIntegration(ctx, organizationID, id, update)
	if err != nil {
		return mo.None[*models.SlackIntegration](), fmt.Errorf("failed to update slack integration: %w", err)
	}

	if !integrationOpt.IsPresent() {
		log.Printf("📋 Completed successfully - slack integration not found")
		return mo.None[*models.SlackIntegration](), nil
	}

	log.Printf("📋 Completed successfully - updated slack integration: %s", id)
	return integrationOpt, nil
}

func (s *SlackIntegrationsService) DeleteSlackIntegration(
	ctx context.Context,
	organizationID models.OrgID,
	id string,
) (mo.Option[*models.SlackIntegration], error) {
	log.Printf("📋 Starting to delete Slack integration: %s", id)
	if !core.IsValidULID(id) {
		return mo.None[*models.SlackIntegration](), fmt.Errorf("integration ID must be a valid ULID")
	}

	integrationOpt, err := s.slackIntegrationsRepo.DeleteSlackIntegrationByID(ctx, organizationID, id)
	if err != nil {
		return mo.None[*models.SlackIntegration](), fmt.Errorf("failed to delete slack integration: %w", err)
	}

	if !integrationOpt.IsPresent() {
		log.Printf("📋 Completed successfully - slack integration not found")
		return mo.None[*models.SlackIntegration](), nil
	}

	log.Printf("📋 Completed successfully - deleted slack integration: %s", id)
	return integrationOpt, nil
}
