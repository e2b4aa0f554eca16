package ship

// EngineMetrics are the engine-only fields of a module performance record
type EngineMetrics struct {
	Thrust          float64 `json:"thrust"`
	Maneuverability float64 `json:"maneuverability"`
}

// ShieldMetrics are the shield-only fields of a module performance record
type ShieldMetrics struct {
	Strength     float64 `json:"strength"`
	RechargeRate float64 `json:"rechargeRate"`
}

// PowerMetrics are the power-only fields of a module performance record
type PowerMetrics struct {
	EnergyStorage float64 `json:"energyStorage"`
	Distribution  float64 `json:"distribution"`
}

// ModulePerformance is the aggregate output of one module.
//
// At most one of Engine, Shield and Power is set, matching the module's
// category. All three are nil when the module has nothing installed.
type ModulePerformance struct {
	Efficiency float64 `json:"efficiency"`
	Stability  float64 `json:"stability"`
	Output     float64 `json:"output"`
	Heat       float64 `json:"heat"`

	Engine *EngineMetrics `json:"engine,omitempty"`
	Shield *ShieldMetrics `json:"shield,omitempty"`
	Power  *PowerMetrics  `json:"power,omitempty"`
}

// HasCategoryMetrics reports whether any category-specific block is present
func (p ModulePerformance) HasCategoryMetrics() bool {
	return p.Engine != nil || p.Shield != nil || p.Power != nil
}

// Thrust returns the engine thrust, or 0 when absent
func (p ModulePerformance) Thrust() float64 {
	if p.Engine == nil {
		return 0
	}
	return p.Engine.Thrust
}

// Maneuverability returns the engine maneuverability, or 0 when absent
func (p ModulePerformance) Maneuverability() float64 {
	if p.Engine == nil {
		return 0
	}
	return p.Engine.Maneuverability
}

// Strength returns the shield strength, or 0 when absent
func (p ModulePerformance) Strength() float64 {
	if p.Shield == nil {
		return 0
	}
	return p.Shield.Strength
}

// Metric names a ship-wide performance figure
type Metric string

const (
	MetricSpeed           Metric = "speed"
	MetricManeuverability Metric = "maneuverability"
	MetricShieldStrength  Metric = "shieldStrength"
	MetricPowerOutput     Metric = "powerOutput"
	MetricHeatManagement  Metric = "heatManagement"
	MetricFuelEfficiency  Metric = "fuelEfficiency"
)

// Metrics lists every ship metric in display order
var Metrics = []Metric{
	MetricSpeed,
	MetricManeuverability,
	MetricShieldStrength,
	MetricPowerOutput,
	MetricHeatManagement,
	MetricFuelEfficiency,
}

// ShipPerformance is the ship-wide performance record. Every field is >= 0.
type ShipPerformance struct {
	Speed           float64 `json:"speed"`
	Maneuverability float64 `json:"maneuverability"`
	ShieldStrength  float64 `json:"shieldStrength"`
	PowerOutput     float64 `json:"powerOutput"`
	HeatManagement  float64 `json:"heatManagement"`
	FuelEfficiency  float64 `json:"fuelEfficiency"`
}

// Value returns the named metric; ok is false for an unknown name
func (p ShipPerformance) Value(m Metric) (value float64, ok bool) {
	switch m {
	case MetricSpeed:
		return p.Speed, true
	case MetricManeuverability:
		return p.Maneuverability, true
	case MetricShieldStrength:
		return p.ShieldStrength, true
	case MetricPowerOutput:
		return p.PowerOutput, true
	case MetricHeatManagement:
		return p.HeatManagement, true
	case MetricFuelEfficiency:
		return p.FuelEfficiency, true
	}
	return 0, false
}

// Map applies fn to every metric and returns the resulting record
func (p ShipPerformance) Map(fn func(Metric, float64) float64) ShipPerformance {
	return ShipPerformance{
		Speed:           fn(MetricSpeed, p.Speed),
		Maneuverability: fn(MetricManeuverability, p.Maneuverability),
		ShieldStrength:  fn(MetricShieldStrength, p.ShieldStrength),
		PowerOutput:     fn(MetricPowerOutput, p.PowerOutput),
		HeatManagement:  fn(MetricHeatManagement, p.HeatManagement),
		FuelEfficiency:  fn(MetricFuelEfficiency, p.FuelEfficiency),
	}
}

// StatusFlags are the hazard flags derived from ship performance
type StatusFlags struct {
	Overheating                 bool `json:"overheating"`
	PowerFluctuations           bool `json:"powerFluctuations"`
	ShieldHarmonicsDestabilized bool `json:"shieldHarmonicsDestabilized"`
	CoolantLeak                 bool `json:"coolantLeak"`
	PowerSurge                  bool `json:"powerSurge"`
}

// Active returns the names of the raised flags
func (s StatusFlags) Active() []string {
	var active []string
	if s.Overheating {
		active = append(active, "overheating")
	}
	if s.PowerFluctuations {
		active = append(active, "powerFluctuations")
	}
	if s.ShieldHarmonicsDestabilized {
		active = append(active, "shieldHarmonicsDestabilized")
	}
	if s.CoolantLeak {
		active = append(active, "coolantLeak")
	}
	if s.PowerSurge {
		active = append(active, "powerSurge")
	}
	return active
}
