package metrics

import (
	"context"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/mekanik-go/internal/domain/game"
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
)

// StateSource is the subset of the game store the collector watches
type StateSource interface {
	Snapshot() game.State
	Subscribe() <-chan game.State
	Unsubscribe(ch <-chan game.State)
}

// ShipMetricsCollector mirrors the live ship into gauges. It is driven by
// store notifications rather than polling, so gauges change with every
// committed mutation.
type ShipMetricsCollector struct {
	shipPerformance     *prometheus.GaugeVec
	modulePerformance   *prometheus.GaugeVec
	statusFlags         *prometheus.GaugeVec
	componentDurability *prometheus.GaugeVec
	credits             prometheus.Gauge
	playerExperience    prometheus.Gauge
	gameTime            prometheus.Gauge
	inventorySize       prometheus.Gauge

	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewShipMetricsCollector creates a new ship metrics collector
func NewShipMetricsCollector() *ShipMetricsCollector {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      name,
			Help:      help,
		})
	}

	return &ShipMetricsCollector{
		shipPerformance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ship_performance",
				Help:      "Ship-wide performance figures",
			},
			[]string{"metric"},
		),
		modulePerformance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "module_performance",
				Help:      "Per-module efficiency, stability, output and heat",
			},
			[]string{"module", "figure"},
		),
		statusFlags: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ship_status",
				Help:      "Hazard flags, 1 when active",
			},
			[]string{"flag"},
		),
		componentDurability: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "component_durability",
				Help:      "Durability of each installed component",
			},
			[]string{"module", "slot", "component"},
		),
		credits:          gauge("credits", "Current credit balance"),
		playerExperience: gauge("player_experience", "Player experience points"),
		gameTime:         gauge("time_seconds", "Elapsed game time"),
		inventorySize:    gauge("inventory_components", "Components waiting in the inventory"),
	}
}

// Register registers all ship metrics with the Prometheus registry
func (c *ShipMetricsCollector) Register() error {
	return register(
		c.shipPerformance,
		c.modulePerformance,
		c.statusFlags,
		c.componentDurability,
		c.credits,
		c.playerExperience,
		c.gameTime,
		c.inventorySize,
	)
}

// Start records the current snapshot and then follows the store until ctx
// is cancelled or Stop is called
func (c *ShipMetricsCollector) Start(ctx context.Context, source StateSource) {
	ctx, c.cancelFunc = context.WithCancel(ctx)
	updates := source.Subscribe()
	c.Update(source.Snapshot())

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		defer source.Unsubscribe(updates)

		for {
			select {
			case <-ctx.Done():
				return
			case state, ok := <-updates:
				if !ok {
					return
				}
				c.Update(state)
			}
		}
	}()
}

// Stop gracefully stops the metrics collection
func (c *ShipMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

// Update sets every gauge from a state
func (c *ShipMetricsCollector) Update(state game.State) {
	for _, metric := range ship.Metrics {
		v, _ := state.Ship.Performance.Value(metric)
		c.shipPerformance.WithLabelValues(string(metric)).Set(v)
	}

	// Reset per-slot gauges so removed components disappear
	c.componentDurability.Reset()
	for _, m := range state.Ship.Modules.All() {
		module := string(m.Category)
		p := m.Performance
		c.modulePerformance.WithLabelValues(module, "efficiency").Set(p.Efficiency)
		c.modulePerformance.WithLabelValues(module, "stability").Set(p.Stability)
		c.modulePerformance.WithLabelValues(module, "output").Set(p.Output)
		c.modulePerformance.WithLabelValues(module, "heat").Set(p.Heat)

		for slot, comp := range m.Components {
			if comp == nil {
				continue
			}
			c.componentDurability.WithLabelValues(module, string(slot), comp.Name).Set(comp.Properties.Durability)
		}
	}

	status := state.Ship.Status
	flags := map[string]bool{
		"overheating":                 status.Overheating,
		"powerFluctuations":           status.PowerFluctuations,
		"powerSurge":                  status.PowerSurge,
		"shieldHarmonicsDestabilized": status.ShieldHarmonicsDestabilized,
		"coolantLeak":                 status.CoolantLeak,
	}
	for flag, active := range flags {
		v := 0.0
		if active {
			v = 1
		}
		c.statusFlags.WithLabelValues(flag).Set(v)
	}

	c.credits.Set(float64(state.Credits))
	c.playerExperience.Set(float64(state.Player.Experience))
	c.gameTime.Set(state.GameTime)
	c.inventorySize.Set(float64(len(state.Inventory)))
}
