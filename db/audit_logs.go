package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	// necessary import to wire up the postgres driver
	_ "github.com/lib/pq"

	dbtx "slackhub/db/tx"
	"slackhub/models"
)

type PostgresAuditLogsRepository struct {
	db     *sqlx.DB
	schema string
}

// Column names for audit_logs table
var auditLogsColumns = []string{
	"id",
	"organization_id",
	"actor_type",
	"actor_id",
	"event_type",
	"metadata",
	"created_at",
}

func NewPostgresAuditLogsRepository(db *sqlx.DB, schema string) *PostgresAuditLogsRepository {
	return &PostgresAuditLogsRepository{db: db, schema: schema}
}

func (r *PostgresAuditLogsRepository) CreateAuditLog(ctx context.Context, auditLog *models.AuditLog) error {
	db := dbtx.GetTransactional(ctx, r.db)

	insertColumns := []string{
		"id",
		"organization_id",
		"actor_type",
		"actor_id",
		"event_type",
		"metadata",
		"created_at",
	}
	columnsStr := strings.Join(insertColumns, ", ")
	returningStr := strings.Join(auditLogsColumns, ", ")

	query := fmt.Sprintf(`
		INSERT INTO %s.audit_logs (%s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING %s`, r.schema, columnsStr, returningStr)

	err := db.QueryRowxContext(
		ctx,
		query,
		auditLog.ID,
		auditLog.OrganizationID,
		auditLog.ActorType,
		auditLog.ActorID,
		auditLog.EventType,
		auditLog.Metadata,
	).StructScan(auditLog)
	if err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}

	return nil
}
