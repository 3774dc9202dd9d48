// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/tyler/people-match/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintNormalizedProfile outputs the query profile after company keyword
// normalization, showing the keywords derived for each experience entry.
func (p *Printer) PrintNormalizedProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if profile.FullName != "" {
		sb.WriteString(fmt.Sprintf("Name: %s\n", profile.FullName))
	}
	if len(profile.Experience) == 0 {
		sb.WriteString("No experience entries\n")
	}

	for i, exp := range profile.Experience {
		company := exp.Company
		if company == "" {
			company = "(unnamed)"
		}
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, company))
		if len(exp.Keywords) > 0 {
			keywords := strings.Join(exp.Keywords, ", ")
			if len(keywords) > 40 {
				keywords = keywords[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("   keywords: %s\n", keywords))
		} else {
			sb.WriteString("   keywords: (none)\n")
		}
	}

	p.printBox("NORMALIZED PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs the top ranked matches with hybrid scores.
func (p *Printer) PrintMatches(matches []types.MatchView) {
	if len(matches) == 0 {
		p.printBox("MATCHES", "No matches found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total matches: %d\n\n", len(matches)))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		match := matches[i]
		name := match.FullName
		if name == "" {
			name = match.UserID
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, name))
		sb.WriteString(fmt.Sprintf("    Score: %.4f\n", match.HybridScore))
		if match.CompanyID != "" {
			sb.WriteString(fmt.Sprintf("    Company: %s\n", match.CompanyID))
		}
		if len(match.Skills) > 0 {
			skills := strings.Join(match.Skills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skills))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more matches", len(matches)-maxItemsToShow))
	}

	p.printBox("TOP MATCHES", sb.String())
}
