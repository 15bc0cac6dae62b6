package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by --output
const (
	outputTable = "table"
	outputJSON  = "json"
	outputYAML  = "yaml"
)

func validOutputs() []string {
	return []string{outputTable, outputJSON, outputYAML}
}

func checkOutput(format string) error {
	if !slices.Contains(validOutputs(), format) {
		return fmt.Errorf("invalid output format %q: must be one of: %s",
			format, strings.Join(validOutputs(), ", "))
	}
	return nil
}

// writeStructured encodes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported structured format %q", format)
	}
}

// writeTable renders rows under a bold header with padded columns. Styling
// is dropped automatically when w is not a terminal.
func writeTable(w io.Writer, header []string, rows [][]string) error {
	r := lipgloss.NewRenderer(w)
	headStyle := r.NewStyle().Bold(true).PaddingRight(2)
	cellStyle := r.NewStyle().PaddingRight(2)

	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], lipgloss.Width(cell))
		}
	}

	line := func(style lipgloss.Style, cells []string) string {
		rendered := make([]string, len(cells))
		for i, cell := range cells {
			s := style
			if i < len(cells)-1 {
				s = s.Width(widths[i] + 2)
			} else {
				s = s.UnsetPaddingRight()
			}
			rendered[i] = s.Render(cell)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}

	var sb strings.Builder
	sb.WriteString(line(headStyle, header))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(line(cellStyle, row))
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}
