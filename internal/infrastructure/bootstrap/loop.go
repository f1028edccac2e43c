package bootstrap

import (
	"context"
	"errors"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/hive-go/internal/application/common"
)

// LoopConfig paces a tick loop
type LoopConfig struct {
	Interval time.Duration
	MaxTicks int           // 0 runs until ctx is cancelled
	Timeout  time.Duration // upper bound for one tick, also the grace period on shutdown
}

// RunLoop runs ticks at most once per interval until MaxTicks ticks ran or
// ctx is cancelled. A tick already in flight when ctx is cancelled is allowed
// to finish. A failed tick is logged and the loop carries on. It returns the
// number of ticks that completed.
func (a *App) RunLoop(ctx context.Context, cfg LoopConfig) int {
	logger := a.TickLogger
	limiter := rate.NewLimiter(rate.Every(cfg.Interval), 1)
	completed := 0

	for cfg.MaxTicks == 0 || completed < cfg.MaxTicks {
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		tickCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Timeout)
		result, err := a.RunTick(tickCtx)
		cancel()

		if err != nil {
			level := common.LevelError
			if errors.Is(err, context.DeadlineExceeded) {
				level = common.LevelWarning
			}
			logger.Log(level, "Tick failed", map[string]interface{}{"error": err.Error()})
			continue
		}
		completed++

		logger.Log(common.LevelDebug, "Tick committed", map[string]interface{}{
			"spawn_orders": len(result.Report.SpawnOrders),
			"tasks":        result.Report.Tasks.Stepped,
			"fresh":        result.Fresh,
		})
	}

	return completed
}
