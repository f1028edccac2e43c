package common_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/hive-go/internal/application/common"
)

type pingCommand struct{ Value string }

type pingHandler struct{}

func (h *pingHandler) Handle(_ context.Context, request common.Request) (common.Response, error) {
	return "pong:" + request.(*pingCommand).Value, nil
}

func TestMediator_DispatchesByRequestType(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingCommand](m, &pingHandler{}))

	resp, err := m.Send(context.Background(), &pingCommand{Value: "a"})

	require.NoError(t, err)
	assert.Equal(t, "pong:a", resp)
}

func TestMediator_RejectsDuplicateAndUnknown(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingCommand](m, &pingHandler{}))

	assert.Error(t, common.RegisterHandler[*pingCommand](m, &pingHandler{}))
	_, err := m.Send(context.Background(), "not registered")
	assert.Error(t, err)
	_, err = m.Send(context.Background(), nil)
	assert.Error(t, err)
}

func TestMediator_MiddlewareRunsInRegistrationOrder(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingCommand](m, &pingHandler{}))
	var trace []string
	for _, name := range []string{"outer", "inner"} {
		name := name
		m.RegisterMiddleware(func(ctx context.Context, request common.Request, next common.HandlerFunc) (common.Response, error) {
			trace = append(trace, name+":before")
			resp, err := next(ctx, request)
			trace = append(trace, name+":after")
			return resp, err
		})
	}

	_, err := m.Send(context.Background(), &pingCommand{})

	require.NoError(t, err)
	assert.Equal(t, []string{"outer:before", "inner:before", "inner:after", "outer:after"}, trace)
}

func TestMediator_MiddlewareCanShortCircuit(t *testing.T) {
	m := common.NewMediator()
	require.NoError(t, common.RegisterHandler[*pingCommand](m, &pingHandler{}))
	denied := errors.New("denied")
	m.RegisterMiddleware(func(context.Context, common.Request, common.HandlerFunc) (common.Response, error) {
		return nil, denied
	})

	_, err := m.Send(context.Background(), &pingCommand{})

	assert.ErrorIs(t, err, denied)
}

type recordingLogger struct{ levels []string }

func (l *recordingLogger) Log(level, _ string, _ map[string]interface{}) {
	l.levels = append(l.levels, level)
}

func TestLoggerFromContext(t *testing.T) {
	logger := &recordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)

	common.LoggerFromContext(ctx).Log(common.LevelInfo, "hello", nil)
	common.LoggerFromContext(context.Background()).Log(common.LevelInfo, "dropped", nil)

	assert.Equal(t, []string{common.LevelInfo}, logger.levels)
}
