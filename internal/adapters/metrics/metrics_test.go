package metrics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appGame "github.com/andrescamacho/mekanik-go/internal/application/game"
	"github.com/andrescamacho/mekanik-go/internal/application/mediator"
	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	domainGame "github.com/andrescamacho/mekanik-go/internal/domain/game"
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
	"github.com/andrescamacho/mekanik-go/test/helpers"
)

type installCommand struct{}

func TestExtractCommandName(t *testing.T) {
	assert.Equal(t, "installCommand", extractCommandName(&installCommand{}))
	assert.Equal(t, "installCommand", extractCommandName(installCommand{}))
	assert.Equal(t, "UnknownCommand", extractCommandName(nil))
}

func TestPrometheusMiddleware_RecordsOutcome(t *testing.T) {
	collector := NewCommandMetricsCollector()
	middleware := PrometheusMiddleware(collector)

	ok := func(ctx context.Context, r mediator.Request) (mediator.Response, error) { return "done", nil }
	fail := func(ctx context.Context, r mediator.Request) (mediator.Response, error) { return nil, errors.New("boom") }

	resp, err := middleware(context.Background(), &installCommand{}, ok)
	require.NoError(t, err)
	assert.Equal(t, "done", resp)
	_, err = middleware(context.Background(), &installCommand{}, ok)
	require.NoError(t, err)
	_, err = middleware(context.Background(), &installCommand{}, fail)
	require.Error(t, err)

	assert.Equal(t, 2.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("installCommand", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("installCommand", "error")))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	middleware := PrometheusMiddleware(nil)

	resp, err := middleware(context.Background(), &installCommand{}, func(ctx context.Context, r mediator.Request) (mediator.Response, error) {
		return 42, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 42, resp)
}

func TestRegister(t *testing.T) {
	Registry = nil
	assert.False(t, IsEnabled())
	require.NoError(t, NewCommandMetricsCollector().Register())

	InitRegistry()
	defer func() { Registry = nil }()
	assert.True(t, IsEnabled())
	require.NoError(t, NewCommandMetricsCollector().Register())
	require.NoError(t, NewShipMetricsCollector().Register())

	// same metric names a second time
	assert.Error(t, NewCommandMetricsCollector().Register())
}

func installCore(t *testing.T, state domainGame.State) domainGame.State {
	t.Helper()
	updated, err := domainGame.InstallComponent(state, component.CategoryEngine, ship.Slot1, "core")
	require.NoError(t, err)
	return updated
}

func TestShipMetricsCollector_Update(t *testing.T) {
	collector := NewShipMetricsCollector()
	state := installCore(t, helpers.NewTestGame(t))

	collector.Update(state)

	assert.Equal(t, state.Ship.Performance.Speed, testutil.ToFloat64(collector.shipPerformance.WithLabelValues("speed")))
	assert.Equal(t, 100.0, testutil.ToFloat64(collector.componentDurability.WithLabelValues("engine", "slot1", "Basic Fusion Reactor")))
	assert.Equal(t, 1, testutil.CollectAndCount(collector.componentDurability))
	assert.Equal(t, 200.0, testutil.ToFloat64(collector.credits))
	assert.Equal(t, float64(len(state.Inventory)), testutil.ToFloat64(collector.inventorySize))

	// removal drops the per-slot series
	removed, err := domainGame.RemoveComponent(state, component.CategoryEngine, ship.Slot1)
	require.NoError(t, err)
	collector.Update(removed)
	assert.Equal(t, 0, testutil.CollectAndCount(collector.componentDurability))
	assert.Equal(t, 0.0, testutil.ToFloat64(collector.shipPerformance.WithLabelValues("speed")))
}

func TestShipMetricsCollector_FollowsStore(t *testing.T) {
	store := appGame.NewStore(helpers.NewTestGame(t))
	collector := NewShipMetricsCollector()

	collector.Start(context.Background(), store)
	assert.Equal(t, 1, store.SubscriberCount())

	_, err := store.Dispatch(context.Background(), func(s domainGame.State) (domainGame.State, error) {
		return domainGame.AddCredits(s, 50), nil
	})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(collector.credits) == 250
	}, time.Second, 10*time.Millisecond)

	collector.Stop()
	assert.Equal(t, 0, store.SubscriberCount())
}
