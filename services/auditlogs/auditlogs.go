package auditlogs

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"slackhub/core"
	"slackhub/db"
	"slackhub/models"
)

type AuditLogsService struct {
	auditLogsRepo *db.PostgresAuditLogsRepository
}

func NewAuditLogsService(repo *db.PostgresAuditLogsRepository) *AuditLogsService {
	return &AuditLogsService{auditLogsRepo: repo}
}

// CreateAuditLog appends one immutable audit record. The metadata value is
// JSON-encoded into the record.
func (s *AuditLogsService) CreateAuditLog(
	ctx context.Context,
	organizationID models.OrgID,
	actorType models.ActorType,
	actorID string,
	eventType models.AuditEventType,
	metadata any,
) (*models.AuditLog, error) {
	log.Printf("📋 Starting to create audit log %s for organization: %s", eventType, organizationID)

	if organizationID == "" {
		return nil, fmt.Errorf("organization ID cannot be empty")
	}
	if eventType == "" {
		return nil, fmt.Errorf("event type cannot be empty")
	}

	encodedMetadata, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit log metadata: %w", err)
	}

	auditLog := &models.AuditLog{
		ID:             core.NewID("audit"),
		OrganizationID: organizationID,
		ActorType:      actorType,
		ActorID:        actorID,
		EventType:      eventType,
		Metadata:       encodedMetadata,
	}
	if err := s.auditLogsRepo.CreateAuditLog(ctx, auditLog); err != nil {
		return nil, fmt.Errorf("failed to create audit log: %w", err)
	}

	log.Printf("📋 Completed successfully - created audit log with ID: %s", auditLog.ID)
	return auditLog, nil
}
