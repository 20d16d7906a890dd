package main

import "github.com/Simplici0/printprofit/internal/session"

// themeCopy holds the wording that differs between the two page variants.
type themeCopy struct {
	Title              string
	Subtitle           string
	ToggleIcon         string
	ToggleLabel        string
	FormHeading        string
	OperationalHeading string
	CalculateLabel     string
	ResetLabel         string
	EmptyMessage       string
	Footer             string
}

var themeCopies = map[session.Theme]themeCopy{
	session.ThemeLight: {
		Title:              "✨ 3D Print Profit Calculator ✨",
		Subtitle:           "Smart pricing for smart printing",
		ToggleIcon:         "🌙",
		ToggleLabel:        "Dark",
		FormHeading:        "⚙️ CONFIGURE YOUR PRINT JOB",
		OperationalHeading: "Operational Costs",
		CalculateLabel:     "Calculate Profitability 🎯",
		ResetLabel:         "Reset Fields 🧼",
		EmptyMessage:       "ℹ️ Configure your print job parameters above and hit 'Calculate Profitability' to see the detailed analysis.",
		Footer:             "Engineered for makers ✨",
	},
	session.ThemeDark: {
		Title:              "🖨️ 3D Print Profit Calculator",
		Subtitle:           "Know your margins before you hit print",
		ToggleIcon:         "☀️",
		ToggleLabel:        "Light",
		FormHeading:        "⚙️ PRINT JOB SETUP",
		OperationalHeading: "Labor & Overheads",
		CalculateLabel:     "Calculate 🎯",
		ResetLabel:         "Reset 🧼",
		EmptyMessage:       "ℹ️ Fill in the job above and press 'Calculate' to see your profitability.",
		Footer:             "Engineered for makers 🌙",
	},
}

func copyFor(theme session.Theme) themeCopy {
	if c, ok := themeCopies[theme]; ok {
		return c
	}
	return themeCopies[session.ThemeLight]
}
