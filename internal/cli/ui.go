package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/reposcout/reposcout/pkg/scout"
)

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleScoreHigh = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	styleScoreMid  = lipgloss.NewStyle().Foreground(colorYellow)
	styleScoreLow  = lipgloss.NewStyle().Foreground(colorDim)
	styleName      = lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
	styleStars     = lipgloss.NewStyle().Foreground(colorYellow)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconStar    = "★"
)

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// printDetail prints an indented detail line.
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println("  " + StyleDim.Render(msg))
}

// scoreStyle picks a style band for a match score.
func scoreStyle(score int) lipgloss.Style {
	switch {
	case score >= scout.InspectThreshold:
		return styleScoreHigh
	case score >= scout.BaselineScore:
		return styleScoreMid
	default:
		return styleScoreLow
	}
}

// renderRanking formats the ranked candidate list for terminal output.
func renderRanking(requirement string, candidates []scout.Candidate) string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Candidates for: "+requirement) + "\n\n")
	for i, c := range candidates {
		rank := StyleDim.Render(fmt.Sprintf("%2d.", i+1))
		score := scoreStyle(c.MatchScore).Render(strconv.Itoa(c.MatchScore))
		stars := styleStars.Render(iconStar + " " + formatStars(c.Stars))
		b.WriteString(fmt.Sprintf("%s %s  %s  %s\n", rank, styleName.Render(c.Name), score, stars))
		b.WriteString("    " + StyleDim.Render(c.SourceURL) + "\n")
		b.WriteString("    " + StyleValue.Render(c.Description) + "\n")
		if c.Rationale != "" {
			b.WriteString("    " + StyleDim.Render(c.Rationale) + "\n")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// formatStars renders a star count compactly (3500 becomes "3.5k").
func formatStars(n int) string {
	if n >= 1000 {
		return strconv.FormatFloat(float64(n)/1000, 'f', 1, 64) + "k"
	}
	return strconv.Itoa(n)
}
