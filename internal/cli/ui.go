package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/familytree/pkg/family"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings, favourites
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands, male
	colorPink   = lipgloss.Color("211") // Pink - female
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleDim     = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	styleWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand  = lipgloss.NewStyle().Foreground(colorBlue)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess  = "✓"
	iconError    = "✗"
	iconWarning  = "!"
	iconInfo     = "›"
	iconArrow    = "→"
	iconFavorite = "★"
	iconCached   = "cached"
	iconFresh    = "fresh"
)

// out is where command output goes. Tests swap it for a buffer.
var out io.Writer = os.Stdout

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(out, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(out, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(out, styleIconWarning.Render(iconWarning)+" "+styleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(out, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+styleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output file.
func printFile(path string) {
	fmt.Fprintln(out, "  "+styleDim.Render(iconArrow)+" "+styleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(16)
	fmt.Fprintln(out, keyStyle.Render(key)+" "+styleValue.Render(value))
}

// printStats prints tree size and cache status on a single line.
func printStats(people, relationships int, cached bool) {
	status, statusStyle := iconFresh, styleComputed
	if cached {
		status, statusStyle = iconCached, styleCached
	}
	sep := styleDim.Render(" · ")
	fmt.Fprintln(out, "  "+
		styleDim.Render(fmt.Sprintf("%d people", people))+sep+
		styleDim.Render(fmt.Sprintf("%d relationships", relationships))+sep+
		statusStyle.Render(status))
}

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Fprintln(out, styleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() {
	fmt.Fprintln(out)
}

// =============================================================================
// Tables
// =============================================================================

// peopleRows formats people as table rows: id, name, lifespan, gender and a
// favourite marker.
func peopleRows(people []family.Person) [][]string {
	rows := make([][]string, len(people))
	for i, p := range people {
		name := p.Name
		if p.MaidenName != "" {
			name += " (née " + p.MaidenName + ")"
		}
		fav := ""
		if p.IsFavorite {
			fav = iconFavorite
		}
		gender := string(p.Gender)
		if gender == "" {
			gender = "—"
		}
		rows[i] = []string{strconv.FormatInt(p.ID, 10), name, p.Lifespan(), gender, fav}
	}
	return rows
}

// genderStyle colours a person's name by gender.
func genderStyle(g family.Gender) lipgloss.Style {
	switch g {
	case family.GenderMale:
		return lipgloss.NewStyle().Foreground(colorBlue)
	case family.GenderFemale:
		return lipgloss.NewStyle().Foreground(colorPink)
	}
	return lipgloss.NewStyle().Foreground(colorWhite)
}

// printPeopleTable prints people as a bordered table.
func printPeopleTable(people []family.Person) {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("ID", "Name", "Lifespan", "Gender", "").
		Rows(peopleRows(people)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case col == 0:
				return styleNumber
			case col == 1:
				return genderStyle(people[row].Gender)
			case col == 4:
				return styleWarning
			}
			return styleDim
		})
	fmt.Fprintln(out, t.Render())
}
