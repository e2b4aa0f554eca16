package cli

import (
	"fmt"
	"strings"

	"github.com/andrescamacho/mekanik-go/internal/domain/component"
	"github.com/andrescamacho/mekanik-go/internal/domain/mission"
	"github.com/andrescamacho/mekanik-go/internal/domain/ship"
)

// TreeFormatter renders a ship as a module/slot tree
type TreeFormatter struct {
	useColors bool
}

// NewTreeFormatter creates a new tree formatter
func NewTreeFormatter(useColors bool) *TreeFormatter {
	return &TreeFormatter{useColors: useColors}
}

// FormatShip renders the ship, its modules and every slot
func (f *TreeFormatter) FormatShip(s ship.Ship) string {
	var builder strings.Builder
	builder.WriteString(s.Name + "\n")

	modules := s.Modules.All()
	for i, m := range modules {
		lastModule := i == len(modules)-1
		f.formatModule(&builder, m, lastModule)
	}
	return builder.String()
}

func (f *TreeFormatter) formatModule(builder *strings.Builder, m ship.Module, isLast bool) {
	branch, childPrefix := "├── ", "│   "
	if isLast {
		branch, childPrefix = "└── ", "    "
	}

	p := m.Performance
	fmt.Fprintf(builder, "%s%s [eff %.1f | stab %.1f | out %.1f | heat %.1f]\n",
		branch, strings.ToUpper(string(m.Category)), p.Efficiency, p.Stability, p.Output, p.Heat)

	for i, slot := range ship.Slots {
		slotBranch := "├── "
		if i == len(ship.Slots)-1 {
			slotBranch = "└── "
		}
		comp, ok := m.ComponentAt(slot)
		if !ok {
			fmt.Fprintf(builder, "%s%s%s: (empty)\n", childPrefix, slotBranch, slot)
			continue
		}
		fmt.Fprintf(builder, "%s%s%s: %s %s%s%s (%.0f%%) [%s]\n",
			childPrefix, slotBranch, slot,
			f.getConditionIcon(comp.Condition()),
			f.getConditionColor(comp.Condition()), comp.Name, f.colorReset(),
			comp.Properties.Durability, comp.ID)
	}
}

// getConditionIcon returns a visual indicator for component condition
func (f *TreeFormatter) getConditionIcon(c component.Condition) string {
	switch c {
	case component.ConditionPristine:
		return "[+]"
	case component.ConditionDamaged:
		return "[~]"
	default:
		return "[!]"
	}
}

// getConditionColor returns ANSI color code for a condition
func (f *TreeFormatter) getConditionColor(c component.Condition) string {
	if !f.useColors {
		return ""
	}

	switch c {
	case component.ConditionPristine:
		return "\033[32m" // Green
	case component.ConditionDamaged:
		return "\033[33m" // Yellow
	default:
		return "\033[31m" // Red
	}
}

// colorReset returns ANSI reset code
func (f *TreeFormatter) colorReset() string {
	if !f.useColors {
		return ""
	}
	return "\033[0m"
}

// FormatPerformanceSummary creates a compact summary of ship-wide figures and raised flags
func (f *TreeFormatter) FormatPerformanceSummary(s ship.Ship) string {
	parts := make([]string, 0, len(ship.Metrics))
	for _, metric := range ship.Metrics {
		v, _ := s.Performance.Value(metric)
		parts = append(parts, fmt.Sprintf("%s=%.1f", metric, v))
	}
	summary := strings.Join(parts, " ")

	if active := s.Status.Active(); len(active) > 0 {
		summary += "\nWarnings: " + strings.Join(active, ", ")
	}
	return summary
}

// FormatMission renders a mission with its objective checklist
func (f *TreeFormatter) FormatMission(m mission.Mission) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%s [%s] (%s)\n", m.Name, m.Status, m.ID)
	if m.Description != "" {
		fmt.Fprintf(&builder, "  %s\n", m.Description)
	}
	for _, o := range m.Objectives {
		status := "[ ]"
		if o.Completed {
			status = "[✓]"
		}
		fmt.Fprintf(&builder, "  %s %s\n", status, o.Description)
	}
	fmt.Fprintf(&builder, "  Rewards: %d credits, %d xp", m.Rewards.Credits, m.Rewards.Experience)
	for _, c := range m.Rewards.Components {
		fmt.Fprintf(&builder, ", %s", c.Name)
	}
	builder.WriteString("\n")
	return builder.String()
}
