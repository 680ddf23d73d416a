package pgsql

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	portssvc "github.com/renteq/rentalcrm/internal/core/ports/services"
	"github.com/renteq/rentalcrm/internal/middleware"
)

type PgxAuditRepository struct {
	BaseRepository
}

// NewPgxAuditRepository creates the append-only audit log writer.
func NewPgxAuditRepository(pool *pgxpool.Pool) portssvc.AuditRecorder {
	return &PgxAuditRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAuditRepository implements portssvc.AuditRecorder
var _ portssvc.AuditRecorder = (*PgxAuditRepository)(nil)

// Record appends one audit entry. Entries are never updated or deleted.
func (r *PgxAuditRepository) Record(ctx context.Context, entityType, entityID, action string, metadata map[string]string) error {
	var meta []byte
	if len(metadata) > 0 {
		var err error
		meta, err = json.Marshal(metadata)
		if err != nil {
			return mapPgError(err, "failed to encode audit metadata for "+entityID)
		}
	}

	actor := ""
	if userID, ok := middleware.GetUserIDFromStdContext(ctx); ok {
		actor = userID
	}

	query := `
		INSERT INTO audit_log (entry_id, entity_type, entity_id, action, metadata, actor, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query, uuid.NewString(), entityType, entityID, action, meta, actor, time.Now())
	if err != nil {
		return mapPgError(err, "failed to insert audit entry for "+entityType+" "+entityID)
	}
	return nil
}
