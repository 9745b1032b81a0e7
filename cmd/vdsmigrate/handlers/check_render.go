package handlers

import "github.com/charmbracelet/lipgloss"

var (
	checkColorGreen = lipgloss.Color("#22c55e")
	checkColorRed   = lipgloss.Color("#ef4444")
	checkColorBlue  = lipgloss.Color("#3b82f6")
	checkColorDim   = lipgloss.Color("#6b7280")
	checkColorWhite = lipgloss.Color("#f9fafb")
)

var (
	checkTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(checkColorWhite)

	checkSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(checkColorBlue)

	checkDimStyle = lipgloss.NewStyle().
			Foreground(checkColorDim)

	checkOKStyle = lipgloss.NewStyle().
			Foreground(checkColorGreen)

	checkFailStyle = lipgloss.NewStyle().
			Foreground(checkColorRed)
)

const (
	checkMark = "[OK]"
	crossMark = "[!!]"
)
