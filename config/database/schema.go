package database

import (
	"context"

	"quicknote/pkg/apperr"
	"quicknote/pkg/logger"
)

// EnsureSchema creates the notes table when it is missing. It is safe to run
// on every startup and does nothing for an unconfigured pool.
func EnsureSchema(ctx context.Context, p *Pool) error {
	if !p.Configured() {
		return nil
	}
	if _, err := p.db.ExecContext(ctx, p.dialect.CreateNotesTable); err != nil {
		return apperr.Store(apperr.OpSchema, err)
	}
	logger.Sugar.Debug("notes table is ready")
	return nil
}
