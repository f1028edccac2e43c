package metrics

import (
	"context"
	"reflect"
	"strings"

	"github.com/andrescamacho/hive-go/internal/application/common"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
)

// PrometheusMiddleware records duration and outcome of every mediator request.
// Request names drop the package prefix: "*colony.RunTickCommand" becomes "RunTickCommand".
func PrometheusMiddleware(collector *RequestMetricsCollector, clock shared.Clock) common.Middleware {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
		if collector == nil {
			return next(ctx, request)
		}

		start := clock.Now()
		response, err := next(ctx, request)
		collector.Observe(requestName(request), clock.Now().Sub(start).Seconds(), err != nil)

		return response, err
	}
}

func requestName(request common.Request) string {
	if request == nil {
		return "UnknownRequest"
	}

	fullName := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	parts := strings.Split(fullName, ".")
	return parts[len(parts)-1]
}
