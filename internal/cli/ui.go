package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/trustpane/pkg/geom"
	"github.com/matzehuels/trustpane/pkg/gfx"
	"github.com/matzehuels/trustpane/pkg/layout"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for failed checks.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
)

// roleStyles colors each canvas role in tables and the screen map.
var roleStyles = map[layout.Role]lipgloss.Style{
	roleStatus:            lipgloss.NewStyle().Foreground(colorBlue),
	layout.RoleContent:    lipgloss.NewStyle().Foreground(colorWhite),
	layout.RoleInput:      lipgloss.NewStyle().Foreground(colorCyan),
	layout.RolePredictive: lipgloss.NewStyle().Foreground(colorGreen),
	layout.RoleMenu:       lipgloss.NewStyle().Foreground(colorYellow),
}

// roleGlyphs fills screen map cells.
var roleGlyphs = map[layout.Role]rune{
	roleStatus:            '=',
	layout.RoleContent:    '.',
	layout.RoleInput:      '#',
	layout.RolePredictive: '~',
	layout.RoleMenu:       'M',
}

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printWarning(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printFile prints an output file line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printStats prints a dim summary line ending in the cache status.
func printStats(w io.Writer, parts []string, cached bool) {
	status, style := iconFresh, styleComputed
	if cached {
		status, style = iconCached, styleCached
	}
	line := "  "
	for _, p := range parts {
		line += StyleDim.Render(p) + StyleDim.Render(" · ")
	}
	fmt.Fprintln(w, line+style.Render(status))
}

func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Geometry Output
// =============================================================================

// regionTable renders canvases as a bordered table.
func regionTable(regions []layout.Region) string {
	rows := make([][]string, len(regions))
	for i, r := range regions {
		rows[i] = []string{
			string(r.Role),
			r.ID.Short(),
			fmt.Sprint(r.Trust),
			r.Rect.String(),
			r.Clip.String(),
			fmt.Sprintf("%dx%d", r.Clip.Width(), r.Clip.Height()),
		}
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Role", "ID", "Trust", "Rect", "Clip", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if col == 0 {
				return roleStyles[regions[row].Role]
			}
			if col == 2 {
				return StyleNumber
			}
			return lipgloss.NewStyle()
		}).
		Render()
}

// screenMap draws regions onto a cols x rows character grid scaled from the
// screen. Each cell takes the role of the last region containing its center;
// cells outside every region stay blank.
func screenMap(m gfx.Metrics, regions []layout.Region, cols, rows int, color bool) string {
	if cols <= 0 || rows <= 0 {
		return ""
	}
	var b strings.Builder
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			center := geom.Pt((2*c+1)*m.Width/(2*cols), (2*r+1)*m.Height/(2*rows))
			cell := " "
			for _, reg := range regions {
				if reg.Clip.ContainsPoint(center) {
					cell = string(roleGlyphs[reg.Role])
					if color {
						cell = roleStyles[reg.Role].Render(cell)
					}
				}
			}
			b.WriteString(cell)
		}
		if r < rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
