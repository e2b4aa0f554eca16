package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/mekanik-go/internal/application/common"
	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	"github.com/andrescamacho/mekanik-go/internal/domain/game"
	"github.com/andrescamacho/mekanik-go/internal/domain/mission"
	"github.com/andrescamacho/mekanik-go/internal/domain/performance"
	"github.com/andrescamacho/mekanik-go/internal/domain/player"
	"github.com/andrescamacho/mekanik-go/internal/domain/shared"
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
)

//go:embed starter.yaml
var starterYAML []byte

// Catalog is the content a new game starts from: the player and ship names,
// starting credits, the parts in the inventory and the mission list.
// Entries carry no IDs; every new game stamps fresh ones.
type Catalog struct {
	Player     PlayerEntry      `yaml:"player"`
	Ship       ShipEntry        `yaml:"ship"`
	Credits    int              `yaml:"credits"`
	Components []ComponentEntry `yaml:"components"`
	Missions   []MissionEntry   `yaml:"missions"`
}

type PlayerEntry struct {
	Name string `yaml:"name"`
}

type ShipEntry struct {
	Name string `yaml:"name"`
}

type ComponentEntry struct {
	Name              string          `yaml:"name"`
	Type              string          `yaml:"type"`
	Subtype           string          `yaml:"subtype"`
	Rarity            string          `yaml:"rarity"`
	Sprite            string          `yaml:"sprite"`
	Description       string          `yaml:"description"`
	Properties        PropertiesEntry `yaml:"properties"`
	Compatibility     []string        `yaml:"compatibility"`
	RequiredTechLevel int             `yaml:"requiredTechLevel"`
	Effects           []EffectEntry   `yaml:"effects"`
	Materials         []MaterialEntry `yaml:"materials"`
}

type PropertiesEntry struct {
	PowerRating       float64 `yaml:"powerRating"`
	EnergyConsumption float64 `yaml:"energyConsumption"`
	HeatGeneration    float64 `yaml:"heatGeneration"`
	Durability        float64 `yaml:"durability"`
	Mass              float64 `yaml:"mass"`
	SizeClass         string  `yaml:"sizeClass"`
}

type EffectEntry struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Kind        string  `yaml:"kind"`
	Magnitude   float64 `yaml:"magnitude"`
}

type MaterialEntry struct {
	Name     string `yaml:"name"`
	Quantity int    `yaml:"quantity"`
}

type MissionEntry struct {
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Difficulty  int              `yaml:"difficulty"`
	TimeLimit   *float64         `yaml:"timeLimit"`
	Objectives  []ObjectiveEntry `yaml:"objectives"`
	Rewards     RewardEntry      `yaml:"rewards"`
}

type ObjectiveEntry struct {
	Description         string             `yaml:"description"`
	RequiredPerformance map[string]float64 `yaml:"requiredPerformance"`
}

type RewardEntry struct {
	Credits    int              `yaml:"credits"`
	Experience int              `yaml:"experience"`
	Components []ComponentEntry `yaml:"components"`
}

// Default returns the built-in starter catalog
func Default() (*Catalog, error) {
	return Parse(starterYAML)
}

// Load reads a catalog from path, falling back to the built-in one when path is empty
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and checks a YAML catalog
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if _, err := c.Build(newSequentialIDs()); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return &c, nil
}

// IDGenerator hands out identifiers for new game entities
type IDGenerator func() string

// Build turns the catalog into a fresh game state
func (c *Catalog) Build(nextID IDGenerator) (game.State, error) {
	p, err := player.NewPlayer(nextID(), c.Player.Name)
	if err != nil {
		return game.State{}, err
	}
	s, err := ship.NewShip(nextID(), c.Ship.Name, nextID(), nextID(), nextID())
	if err != nil {
		return game.State{}, err
	}

	inventory := make(ship.Inventory, 0, len(c.Components))
	for _, entry := range c.Components {
		comp, err := entry.build(nextID)
		if err != nil {
			return game.State{}, err
		}
		inventory = inventory.Add(comp)
	}

	missions := make([]mission.Mission, 0, len(c.Missions))
	for _, entry := range c.Missions {
		m, err := entry.build(nextID)
		if err != nil {
			return game.State{}, err
		}
		missions = append(missions, m)
	}

	return game.New(p, s, inventory, missions, c.Credits)
}

func (e ComponentEntry) build(nextID IDGenerator) (component.Component, error) {
	subtype := component.Subtype(e.Subtype)
	category, err := component.ParseCategory(e.Type)
	if err != nil {
		return component.Component{}, fmt.Errorf("component %q: %w", e.Name, err)
	}

	if d := e.Properties.Durability; d < component.MinDurability || d > component.MaxDurability {
		return component.Component{}, fmt.Errorf("component %q: %w", e.Name,
			shared.NewValidationError("durability", fmt.Sprintf("%.1f is outside [0, 100]", d)))
	}

	effects := make([]component.Effect, 0, len(e.Effects))
	for _, fx := range e.Effects {
		effects = append(effects, component.Effect{
			ID:          fx.ID,
			Name:        fx.Name,
			Description: fx.Description,
			Kind:        component.EffectKind(fx.Kind),
			Magnitude:   fx.Magnitude,
		})
	}
	materials := make([]component.Material, 0, len(e.Materials))
	for _, m := range e.Materials {
		materials = append(materials, component.Material{ID: nextID(), Name: m.Name, Quantity: m.Quantity})
	}

	c := component.Component{
		ID:       nextID(),
		Name:     e.Name,
		Category: category,
		Subtype:  subtype,
		Rarity:   component.Rarity(e.Rarity),
		Properties: component.Properties{
			PowerRating:       e.Properties.PowerRating,
			EnergyConsumption: e.Properties.EnergyConsumption,
			HeatGeneration:    e.Properties.HeatGeneration,
			Mass:              e.Properties.Mass,
			SizeClass:         component.SizeClass(e.Properties.SizeClass),
		},
		Secondary: component.SecondaryProperties{
			Compatibility:     e.Compatibility,
			SpecialEffects:    effects,
			RequiredTechLevel: e.RequiredTechLevel,
			Materials:         materials,
		},
		Sprite:      e.Sprite,
		Description: e.Description,
	}.WithDurability(e.Properties.Durability)

	if err := c.Validate(); err != nil {
		return component.Component{}, fmt.Errorf("component %q: %w", e.Name, err)
	}
	return c, nil
}

func (e MissionEntry) build(nextID IDGenerator) (mission.Mission, error) {
	objectives := make([]mission.Objective, 0, len(e.Objectives))
	for _, o := range e.Objectives {
		objective := mission.Objective{ID: nextID(), Description: o.Description}
		if len(o.RequiredPerformance) > 0 {
			reqs := performance.Requirements{}
			for name, threshold := range o.RequiredPerformance {
				metric := ship.Metric(name)
				if _, ok := (ship.ShipPerformance{}).Value(metric); !ok {
					return mission.Mission{}, fmt.Errorf("mission %q: unknown metric %q", e.Name, name)
				}
				reqs[metric] = threshold
			}
			objective.RequiredPerformance = reqs
		}
		objectives = append(objectives, objective)
	}

	var rewardComponents []component.Component
	for _, entry := range e.Rewards.Components {
		c, err := entry.build(nextID)
		if err != nil {
			return mission.Mission{}, fmt.Errorf("mission %q reward: %w", e.Name, err)
		}
		rewardComponents = append(rewardComponents, c)
	}

	m := mission.Mission{
		ID:          nextID(),
		Name:        e.Name,
		Description: e.Description,
		Difficulty:  e.Difficulty,
		TimeLimit:   e.TimeLimit,
		Objectives:  objectives,
		Rewards: mission.Reward{
			Credits:    e.Rewards.Credits,
			Experience: e.Rewards.Experience,
			Components: rewardComponents,
		},
		Status: mission.StatusAvailable,
	}
	if err := m.Validate(); err != nil {
		return mission.Mission{}, err
	}
	return m, nil
}

// Factory builds new games from a catalog with random UUIDs
type Factory struct {
	catalog *Catalog
	nextID  IDGenerator
}

func NewFactory(c *Catalog) *Factory {
	return &Factory{catalog: c, nextID: uuid.NewString}
}

func (f *Factory) NewGame(ctx context.Context) (game.State, error) {
	state, err := f.catalog.Build(f.nextID)
	if err != nil {
		return game.State{}, err
	}
	common.LoggerFromContext(ctx).Log("DEBUG", "Built new game from catalog", map[string]interface{}{
		"components": len(state.Inventory),
		"missions":   len(state.Missions),
	})
	return state, nil
}

// newSequentialIDs is used to dry-run a catalog; any unique IDs will do
func newSequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}
