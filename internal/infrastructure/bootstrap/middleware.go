package bootstrap

import (
	"context"

	"github.com/andrescamacho/hive-go/internal/application/common"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/domain/world"
)

// TickStamper is a logger whose entries carry the current tick
type TickStamper interface {
	SetTick(tick shared.Tick)
}

// TickStampMiddleware stamps the host's current tick on the logger before
// every request, so entries logged while handling it carry the right tick.
func TickStampMiddleware(host world.Host, stamper TickStamper) common.Middleware {
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		stamper.SetTick(host.Snapshot().Time())
		return next(ctx, request)
	}
}
