package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/a3tai/mcp-seo-headings/internal/headings"
	"github.com/a3tai/mcp-seo-headings/internal/service"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

var (
	h2Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00a32a"))

	h3Style = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#ffb900"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	reasonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true).
			PaddingLeft(4)

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00")).
			Bold(true)
)

func parseOutputFormat(name string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(name)); f {
	case "", outputText:
		return outputText, nil
	case outputJSON, outputYAML, "yml":
		if f == "yml" {
			return outputYAML, nil
		}
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (must be text, json or yaml)", name)
	}
}

// render writes v as JSON or YAML, or calls text for the text format
func render(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	default:
		text(w)
		return nil
	}
}

func levelStyle(level int) lipgloss.Style {
	if level == 2 {
		return h2Style
	}
	return h3Style
}

func renderDocumentHeader(w io.Writer, result *service.AnalyzeFileResult) {
	fmt.Fprintln(w, labelStyle.Render("Document:"), result.Path)
	fmt.Fprintln(w, labelStyle.Render("Format:  "), result.Format)
	if result.Title != "" {
		fmt.Fprintln(w, labelStyle.Render("Title:   "), result.Title)
	}
	if result.Keyword != "" {
		fmt.Fprintln(w, labelStyle.Render("Keyword: "), result.Keyword)
	}
	fmt.Fprintln(w)
}

func renderSuggestions(w io.Writer, result *service.SuggestionsResult) {
	if result.Disabled {
		fmt.Fprintln(w, disabledStyle.Render("Heading suggestions are disabled for this document"))
		return
	}

	if len(result.Suggestions) == 0 {
		fmt.Fprintf(w, "No heading suggestions (%d blocks, %d analyzed)\n", result.BlockCount, result.EligibleCount)
		return
	}

	fmt.Fprintf(w, "%d suggestion(s) in %d blocks, %d analyzed\n\n", len(result.Suggestions), result.BlockCount, result.EligibleCount)
	for _, s := range result.Suggestions {
		renderSuggestion(w, s)
	}
}

func renderSuggestion(w io.Writer, s headings.Suggestion) {
	badge := levelStyle(s.SuggestedLevel).Render(fmt.Sprintf("H%d", s.SuggestedLevel))
	fmt.Fprintf(w, "%s  #%d  %d%%  %s\n", badge, s.BlockIndex, s.Confidence, s.TextContent)
	for _, r := range s.Reasons {
		fmt.Fprintln(w, reasonStyle.Render(r))
	}
}
