package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uptrace/bun"
)

type queryLogHook struct {
	verbose bool
}

var _ bun.QueryHook = (*queryLogHook)(nil)

func (h *queryLogHook) BeforeQuery(ctx context.Context, _ *bun.QueryEvent) context.Context {
	return ctx
}

func (h *queryLogHook) AfterQuery(_ context.Context, event *bun.QueryEvent) {
	elapsed := time.Since(event.StartTime)

	if event.Err != nil && !errors.Is(event.Err, sql.ErrNoRows) {
		log.Error().
			Err(event.Err).
			Str("operation", event.Operation()).
			Dur("elapsed", elapsed).
			Str("query", event.Query).
			Msg("store query failed")
		return
	}

	if !h.verbose {
		return
	}
	log.Debug().
		Str("operation", event.Operation()).
		Dur("elapsed", elapsed).
		Str("query", event.Query).
		Msg("store query")
}
