package models

import (
	"encoding/json"
	"time"
)

// AuditEventType enumerates the recorded audit events
type AuditEventType string

const (
	AuditEventInstallAttempted   AuditEventType = "slack_integration_install_attempted"
	AuditEventInstallCompleted   AuditEventType = "slack_integration_install_completed"
	AuditEventReinstallAttempted AuditEventType = "slack_integration_reinstall_attempted"
	AuditEventReinstallCompleted AuditEventType = "slack_integration_reinstall_completed"
	AuditEventRetrieved          AuditEventType = "slack_integration_retrieved"
	AuditEventUpdated            AuditEventType = "slack_integration_updated"
	AuditEventDeleted            AuditEventType = "slack_integration_deleted"
)

// AuditLog is an immutable record of an attempted or completed operation
type AuditLog struct {
	ID             string          `db:"id"              json:"id"`
	OrganizationID OrgID           `db:"organization_id" json:"organization_id"`
	ActorType      ActorType       `db:"actor_type"      json:"actor_type"`
	ActorID        string          `db:"actor_id"        json:"actor_id"`
	EventType      AuditEventType  `db:"event_type"      json:"event_type"`
	Metadata       json.RawMessage `db:"metadata"        json:"metadata"`
	CreatedAt      time.Time       `db:"created_at"      json:"created_at"`
}
