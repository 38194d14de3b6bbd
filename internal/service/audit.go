package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

// logBusinessEvent writes one structured audit line for a state-changing
// operation (travel_created, event_deleted, ...). Each line carries a unique
// event id so downstream log consumers can correlate related records.
func logBusinessEvent(ctx context.Context, action, entity string, entityID int64, args ...any) {
	base := []any{
		"event_id", uuid.NewString(),
		"entity", entity,
		"entity_id", entityID,
	}
	slog.InfoContext(ctx, action, append(base, args...)...)
}
