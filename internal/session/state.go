package session

import "github.com/Simplici0/printprofit/internal/pricing"

// Theme selects one of the two presentation variants.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme returns the theme named s, or light for anything else.
func ParseTheme(s string) Theme {
	if Theme(s) == ThemeDark {
		return ThemeDark
	}
	return ThemeLight
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

// State is everything one interactive session remembers: the selected theme,
// the last entered input and the last computed report.
type State struct {
	ID     string
	Theme  Theme
	Input  pricing.JobCostInput
	Report *pricing.CostReport
}

// Calculated stores in and its report, replacing any earlier result.
func (s State) Calculated(in pricing.JobCostInput, report pricing.CostReport) State {
	s.Input = in
	s.Report = &report
	return s
}

// Reset overwrites the input with defaults and forgets the last report.
func (s State) Reset(defaults pricing.JobCostInput) State {
	s.Input = defaults
	s.Report = nil
	return s
}

// ToggleTheme switches the theme and forgets the last report.
func (s State) ToggleTheme() State {
	s.Theme = s.Theme.Toggle()
	s.Report = nil
	return s
}
