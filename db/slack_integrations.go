package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"

	// necessary import to wire up the postgres driver
	_ "github.com/lib/pq"

	"slackhub/core"
	dbtx "slackhub/db/tx"
	"slackhub/models"
)

type PostgresSlackIntegrationsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for slack_integrations table
var slackIntegrationsColumns = []string{
	"id",
	"organization_id",
	"slug",
	"description",
	"slack_team_id",
	"slack_team_name",
	"slack_bot_token",
	"created_at",
	"updated_at",
}

func NewPostgresSlackIntegrationsRepository(db *sqlx.DB, schema string) *PostgresSlackIntegrationsRepository {
	return &PostgresSlackIntegrationsRepository{db: db, schema: schema}
}

func (r *PostgresSlackIntegrationsRepository) CreateSlackIntegration(
	ctx context.Context,
	integration *models.SlackIntegration,
) error {
	db := dbtx.GetTransactional(ctx, r.db)

	insertColumns := []string{
		"id",
		"organization_id",
		"slug",
		"description",
		"slack_team_id",
		"slack_team_name",
		"slack_bot_token",
		"created_at",
		"updated_at",
	}
	columnsStr := strings.Join(insertColumns, ", ")
	returningStr := strings.Join(slackIntegrationsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.slack_integrations (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING %s`, r.schema, columnsStr, returningStr)

	err := db.QueryRowxContext(
		ctx,
		query,
		integration.ID,
		integration.OrganizationID,
		integration.Slug,
		integration.Description,
		integration.SlackTeamID,
		integration.SlackTeamName,
		integration.SlackBotToken,
	).StructScan(integration)
	if err != nil {
		return fmt.Errorf("failed to create slack integration: %w", err)
	}

	return nil
}

func (r *PostgresSlackIntegrationsRepository) GetSlackIntegrationsByOrganizationID(
	ctx context.Context,
	organizationID models.OrgID,
) ([]*models.SlackIntegration, error) {
	db := dbtx.GetTransactional(ctx, r.db)

	columnsStr := strings.Join(slackIntegrationsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.slack_integrations
		WHERE organization_id = $1
		ORDER BY created_at DESC`, columnsStr, r.schema)

	integrations := []*models.SlackIntegration{}
	err := db.SelectContext(ctx, &integrations, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get slack integrations by organization ID: %w", err)
	}

	return integrations, nil
}

func (r *PostgresSlackIntegrationsRepository) GetSlackIntegrationByID(
	ctx context.Context,
	organizationID models.OrgID,
	id string,
) (mo.Option[*models.SlackIntegration], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	if !core.IsValidULID(id) {
		return mo.None[*models.SlackIntegration](), fmt.Errorf("integration ID must be a valid ULID")
	}

	columnsStr := strings.Join(slackIntegrationsColumns, ", ")
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s.slack_integrations
		WHERE id = $1 AND organization_id = $2`, columnsStr, r.schema)

	integration := &models.SlackIntegration{}
	err := db.QueryRowxContext(ctx, query, id, organizationID).StructScan(integration)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.SlackIntegration](), nil
		}
		return mo.None[*models.SlackIntegration](), fmt.Errorf("failed to get slack integration by ID: %w", err)
	}

	return mo.Some(integration), nil
}

func (r *PostgresSlackIntegrationsRepository) UpdateSlackIntegration(
	ctx context.Context,
	organizationID models.OrgID,
	id string,
	update models.SlackIntegrationUpdate,
) (mo.Option[*models.SlackIntegration], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	if !core.IsValidULID(id) {
		return mo.None[*models.SlackIntegration](), fmt.Errorf("integration ID must be a valid ULID")
	}

	returningStr := strings.Join(slackIntegrationsColumns, ", ")
	query := fmt.Sprintf(`
		UPDATE %s.slack_integrations
		SET slug = COALESCE($1, slug), description = COALESCE($2, description), updated_at = NOW()
		WHERE id = $3 AND organization_id = $4
		RETURNING %s`, r.schema, returningStr)

	integration := &models.SlackIntegration{}
	err := db.QueryRowxContext(ctx, query, update.Slug, update.Description, id, organizationID).
		StructScan(integration)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.SlackIntegration](), nil
		}
		return mo.None[*models.SlackIntegration](), fmt.Errorf("failed to update slack integration: %w", err)
	}

	return mo.Some(integration), nil
}

// UpdateSlackIntegrationWorkspace refreshes the Slack-provided fields after a
// completed reinstall flow. Slug and description are left untouched.
func (r *PostgresSlackIntegrationsRepository) UpdateSlackIntegrationWorkspace(
	ctx context.Context,
	organizationID models.OrgID,
	id string,
	teamID, teamName, botToken string,
) (mo.Option[*models.SlackIntegration], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	if !core.IsValidULID(id) {
		return mo.None[*models.SlackIntegration](), fmt.Errorf("integration ID must be a valid ULID")
	}

	returningStr := strings.Join(slackIntegrationsColumns, ", ")
	query := fmt.Sprintf(`
		UPDATE %s.slack_integrations
		SET slack_team_id = $1, slack_team_name = $2, slack_bot_token = $3, updated_at = NOW()
		WHERE id = $4 AND organization_id = $5
		RETURNING %s`, r.schema, returningStr)

	integration := &models.SlackIntegration{}
	err := db.QueryRowxContext(ctx, query, teamID, teamName, botToken, id, organizationID).
		StructScan(integration)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.SlackIntegration](), nil
		}
		return mo.None[*models.SlackIntegration](), fmt.Errorf(
			"failed to update slack integration workspace: %w", err)
	}

	return mo.Some(integration), nil
}

func (r *PostgresSlackIntegrationsRepository) DeleteSlackIntegrationByID(
	ctx context.Context,
	organizationID models.OrgID,
	id string,
) (mo.Option[*models.SlackIntegration], error) {
	db := dbtx.GetTransactional(ctx, r.db)

	if !core.IsValidULID(id) {
		return mo.None[*models.SlackIntegration](), fmt.Errorf("integration ID must be a valid ULID")
	}

	returningStr := strings.Join(slackIntegrationsColumns, ", ")
	query := fmt.Sprintf(`
		DELETE FROM %s.slack_integrations
		WHERE id = $1 AND organization_id = $2
		RETURNING %s`, r.schema, returningStr)

	integration := &models.SlackIntegration{}
	err := db.QueryRowxContext(ctx, query, id, organizationID).StructScan(integration)
	if err != nil {
		if strings.Contains(err.Error(), "no rows") {
			return mo.None[*models.SlackIntegration](), nil
		}
		return mo.None[*models.SlackIntegration](), fmt.Errorf("failed to delete slack integration: %w", err)
	}

	return mo.Some(integration), nil
}
