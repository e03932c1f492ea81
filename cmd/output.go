package cmd

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/odysseus-imc/capexdb/pkg/risk"
)

var (
	colorLow      = lipgloss.Color("#10B981")
	colorModerate = lipgloss.Color("#3B82F6")
	colorHigh     = lipgloss.Color("#F59E0B")
	colorExtreme  = lipgloss.Color("#EF4444")
	colorMuted    = lipgloss.Color("#6B7280")
	colorPrimary  = lipgloss.Color("#7C3AED")

	headerStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
)

// renderTable lays out rows under a header row.
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

func printTable(title string, headers []string, rows [][]string) {
	if title != "" {
		fmt.Println(titleStyle.Render(title))
	}
	if len(rows) == 0 {
		fmt.Println(mutedStyle.Render("  (none)"))
		return
	}
	fmt.Println(renderTable(headers, rows))
}

// riskStyle colors a rating by severity.
func riskStyle(r risk.Rating) lipgloss.Style {
	s := lipgloss.NewStyle().Bold(true)
	switch r {
	case risk.Low:
		return s.Foreground(colorLow)
	case risk.Moderate:
		return s.Foreground(colorModerate)
	case risk.High:
		return s.Foreground(colorHigh)
	case risk.Extreme:
		return s.Foreground(colorExtreme)
	default:
		return s.Foreground(colorMuted)
	}
}

func formatRisk(r risk.Rating) string {
	return riskStyle(r).Render(string(r))
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatMoney(f float64) string {
	return humanize.CommafWithDigits(f, 2)
}

func formatRank(rank *int) string {
	if rank == nil {
		return "-"
	}
	return strconv.Itoa(*rank)
}

func formatUint(u uint) string {
	return strconv.FormatUint(uint64(u), 10)
}
