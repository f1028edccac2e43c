package bootstrap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hive-go/internal/adapters/sim"
	"github.com/andrescamacho/hive-go/internal/application/common"
	"github.com/andrescamacho/hive-go/internal/domain/shared"
	"github.com/andrescamacho/hive-go/internal/infrastructure/bootstrap"
)

type stamper struct{ ticks []shared.Tick }

func (s *stamper) SetTick(tick shared.Tick) { s.ticks = append(s.ticks, tick) }

func TestTickStampMiddleware_StampsCurrentTick(t *testing.T) {
	scenario, err := sim.DefaultScenario()
	require.NoError(t, err)
	host, err := sim.NewHost(scenario)
	require.NoError(t, err)
	s := &stamper{}
	middleware := bootstrap.TickStampMiddleware(host, s)
	next := func(ctx context.Context, request common.Request) (common.Response, error) { return "ok", nil }

	_, err = middleware(context.Background(), struct{}{}, next)
	require.NoError(t, err)
	require.NoError(t, host.Commit(context.Background()))
	response, err := middleware(context.Background(), struct{}{}, next)

	require.NoError(t, err)
	assert.Equal(t, "ok", response)
	assert.Equal(t, []shared.Tick{1, 2}, s.ticks)
}
