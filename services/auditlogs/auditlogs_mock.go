package auditlogs

import (
	"context"

	"github.com/stretchr/testify/mock"

	"slackhub/models"
)

// MockAuditLogsService is a mock implementation of the services.AuditLogsService interface
type MockAuditLogsService struct {
	mock.Mock
}

func (m *MockAuditLogsService) CreateAuditLog(
	ctx context.Context,
	organizationID models.OrgID,
	actorType models.ActorType,
	actorID string,
	eventType models.AuditEventType,
	metadata any,
) (*models.AuditLog, error) {
	args := m.Called(ctx, organizationID, actorType, actorID, eventType, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuditLog), args.Error(1)
}
