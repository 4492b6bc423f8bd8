package slackintegrations

import (
	"context"
	"net/http"

	"github.com/samber/mo"
	"github.com/stretchr/testify/mock"

	"slackhub/models"
)

// MockSlackIntegrationsService is a mock implementation of the
// services.SlackIntegrationsService interface
type MockSlackIntegrationsService struct {
	mock.Mock
}

func (m *MockSlackIntegrationsService) GetInstallURL(
	ctx context.Context,
	actor *models.Actor,
	slug, description string,
) (string, error) {
	args := m.Called(ctx, actor, slug, description)
	return args.String(0), args.Error(1)
}

func (m *MockSlackIntegrationsService) GetReinstallURL(
	ctx context.Context,
	actor *models.Actor,
	integrationID string,
) (string, error) {
	args := m.Called(ctx, actor, integrationID)
	return args.String(0), args.Error(1)
}

func (m *MockSlackIntegrationsService) CompleteOAuthFlow(
	ctx context.Context,
	r *http.Request,
) (models.OrgID, error) {
	args := m.Called(ctx, r)
	return args.Get(0).(models.OrgID), args.Error(1)
}

func (m *MockSlackIntegrationsService) GetSlackIntegrationsByOrganizationID(
	ctx context.Context,
	organizationID models.OrgID,
) ([]*models.SlackIntegration, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SlackIntegration), args.Error(1)
}

func (m *MockSlackIntegrationsService) GetSlackIntegrationByID(
	ctx context.Context,
	organizationID models.OrgID,
	id string,
) (mo.Option[*models.SlackIntegration], error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return mo.None[*models.SlackIntegration](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.SlackIntegration]), args.Error(1)
}

func (m *MockSlackIntegrationsService) UpdateSlackIntegration(
	ctx context.Context,
	organizationID models.OrgID,
	id string,
	update models.SlackIntegrationUpdate,
) (mo.Option[*models.SlackIntegration], error) {
	args := m.Called(ctx, organizationID, id, update)
	if args.Get(0) == nil {
		return mo.None[*models.SlackIntegration](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.SlackIntegration]), args.Error(1)
}

func (m *MockSlackIntegrationsService) DeleteSlackIntegration(
	ctx context.Context,
	organizationID models.OrgID,
	id string,
) (mo.Option[*models.SlackIntegration], error) {
	args := m.Called(ctx, organizationID, id)
	if args.Get(0) == nil {
		return mo.None[*models.SlackIntegration](), args.Error(1)
	}
	return args.Get(0).(mo.Option[*models.SlackIntegration]), args.Error(1)
}
