package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/naveenspark/catalyst/pkg/domain"
)

const (
	formatTable = "table"
	formatText  = "text"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

func checkFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("unknown output format %q (want %s)", format, strings.Join(allowed, ", "))
}

func writeSummaries(w io.Writer, format string, programs []domain.ProgramSummary) error {
	switch format {
	case formatJSON:
		return writeJSON(w, domain.ProgramList{Data: programs})
	case formatYAML:
		return writeYAML(w, programs)
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "DURATION", "FUNDING", "COHORT").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, p := range programs {
		duration, funding, cohort := p.Stats()
		t.Row(p.ID, p.Title, duration, funding, cohort)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

// writeDetails prints details in argument order. JSON and YAML emit a single
// object for one id and a list otherwise.
func writeDetails(w io.Writer, format string, details []*domain.ProgramDetail) error {
	var v any = details
	if len(details) == 1 {
		v = details[0]
	}
	switch format {
	case formatJSON:
		return writeJSON(w, v)
	case formatYAML:
		return writeYAML(w, v)
	}

	for i, p := range details {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, detailText(p)); err != nil {
			return err
		}
	}
	return nil
}

// detailText is the plain-text form of the detail screen.
func detailText(p *domain.ProgramDetail) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", domain.OrPlaceholder(p.Title), p.ID)
	if p.Subtitle != "" {
		fmt.Fprintf(&b, "%s\n", p.Subtitle)
	}
	fmt.Fprintf(&b, "\n%s\n\n", domain.OrPlaceholder(p.Description))
	if p.Overview != "" {
		fmt.Fprintf(&b, "%s\n\n", p.Overview)
	}

	duration, funding, cohort := p.Stats()
	fmt.Fprintf(&b, "Duration:      %s\nFunding:       %s\nCohort:        %s\n", duration, funding, cohort)
	for _, f := range p.Features {
		fmt.Fprintf(&b, "  * %s\n", f)
	}

	if len(p.Curriculum) > 0 {
		b.WriteString("\nCurriculum:\n")
		for _, c := range p.Curriculum {
			fmt.Fprintf(&b, "  %-12s %s", c.Week, c.Title)
			if c.Description != "" {
				fmt.Fprintf(&b, ": %s", c.Description)
			}
			b.WriteString("\n")
		}
	}
	if len(p.Mentors) > 0 {
		b.WriteString("\nMentors:\n")
		for _, m := range p.Mentors {
			b.WriteString("  * " + m.Name)
			if m.Role != "" {
				b.WriteString(", " + m.Role)
			}
			if m.Expertise != "" {
				b.WriteString(" (" + m.Expertise + ")")
			}
			b.WriteString("\n")
		}
	}
	if len(p.Outcomes) > 0 {
		b.WriteString("\nOutcomes:\n")
		for _, o := range p.Outcomes {
			fmt.Fprintf(&b, "  * %s\n", o)
		}
	}

	w := p.Widget
	fmt.Fprintf(&b, "\n[%s]\n", w.PanelTitle())
	fmt.Fprintf(&b, "%s\n", w.PanelDescription())
	fmt.Fprintf(&b, "Applications:  %s\n", w.ApplicationTimeText())
	fmt.Fprintf(&b, "Next event:    %s\n", w.NextEventText())
	if w.HasPrimaryAction() {
		fmt.Fprintf(&b, "%s: %s\n", w.PrimaryLabel(), w.PrimaryLink())
	}
	if w.HasCallAction() {
		fmt.Fprintf(&b, "%s: %s\n", domain.CallLabel, w.ScheduleLink())
	}
	return b.String()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
