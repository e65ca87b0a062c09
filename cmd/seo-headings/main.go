package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/a3tai/mcp-seo-headings/internal/config"
	"github.com/a3tai/mcp-seo-headings/internal/headings"
	"github.com/a3tai/mcp-seo-headings/internal/service"
	"github.com/a3tai/mcp-seo-headings/internal/source"
)

var version = "dev" // This will be set by build flags

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "seo-headings",
		Usage:   "suggest H2/H3 headings for post drafts",
		Version: version,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "verbose", Usage: "log debug output to stderr"},
		},
		Commands: []*cli.Command{
			{
				Name:      "suggest",
				Usage:     "analyze a document and list heading suggestions",
				ArgsUsage: "FILE|-",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "post title (defaults to the document's)"},
					&cli.StringFlag{Name: "keyword", Aliases: []string{"k"}, Usage: "focus keyword"},
					&cli.BoolFlag{Name: "headings", Usage: "also revisit existing headings"},
					&cli.StringFlag{Name: "input-format", Usage: "format of content read from stdin (auto-detected when empty)"},
					&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: outputText, Usage: "output format: text, json or yaml"},
					&cli.Int64Flag{Name: "maxfilesize", Value: config.DefaultMaxFileSize, Usage: "maximum document size in bytes"},
				},
				Action: suggestAction,
			},
			{
				Name:      "transform",
				Usage:     "convert paragraph markup into heading markup",
				ArgsUsage: "[MARKUP|-]",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "level", Aliases: []string{"l"}, Value: 2, Usage: "heading level (2 or 3)"},
					&cli.BoolFlag{Name: "paragraph", Usage: "convert a heading back into a paragraph"},
				},
				Action: transformAction,
			},
			{
				Name:      "keywords",
				Usage:     "print the keywords extracted from a title",
				ArgsUsage: "TITLE...",
				Action:    keywordsAction,
			},
			{
				Name:   "formats",
				Usage:  "list supported document formats",
				Action: formatsAction,
			},
		},
	}
}

func newLogger(c *cli.Context) zerolog.Logger {
	level := zerolog.WarnLevel
	if c.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: c.App.ErrWriter}).Level(level).With().Timestamp().Logger()
}

func suggestAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return errors.New("suggest needs exactly one FILE argument (or - for stdin)")
	}

	output, err := parseOutputFormat(c.String("format"))
	if err != nil {
		return err
	}

	eligibility := headings.EligibilityParagraphs
	if c.Bool("headings") {
		eligibility = headings.EligibilityParagraphsAndHeadings
	}

	arg := c.Args().First()
	if arg == "-" {
		return suggestStdin(c, output, eligibility)
	}

	path, err := filepath.Abs(arg)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	svc, err := service.NewService(c.Int64("maxfilesize"), filepath.Dir(path),
		service.WithEligibility(eligibility),
		service.WithLogger(newLogger(c)),
	)
	if err != nil {
		return err
	}

	result, err := svc.AnalyzeFile(service.AnalyzeFileRequest{
		Path:    path,
		Title:   c.String("title"),
		Keyword: c.String("keyword"),
	})
	if err != nil {
		return err
	}

	return render(c.App.Writer, output, result, func(w io.Writer) {
		renderDocumentHeader(w, result)
		renderSuggestions(w, &result.SuggestionsResult)
	})
}

func suggestStdin(c *cli.Context, output, eligibility string) error {
	content, err := io.ReadAll(c.App.Reader)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	svc, err := service.NewService(c.Int64("maxfilesize"), wd,
		service.WithEligibility(eligibility),
		service.WithLogger(newLogger(c)),
	)
	if err != nil {
		return err
	}

	result, err := svc.GetSuggestions(service.SuggestionsRequest{
		Content: string(content),
		Format:  c.String("input-format"),
		Title:   c.String("title"),
		Keyword: c.String("keyword"),
	})
	if err != nil {
		return err
	}

	return render(c.App.Writer, output, result, func(w io.Writer) {
		renderSuggestions(w, result)
	})
}

func transformAction(c *cli.Context) error {
	markup := strings.Join(c.Args().Slice(), " ")
	if markup == "" || markup == "-" {
		data, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		markup = string(data)
	}

	if strings.TrimSpace(markup) == "" {
		return errors.New("transform needs MARKUP as argument or on stdin")
	}

	if c.Bool("paragraph") {
		fmt.Fprintln(c.App.Writer, headings.TransformToParagraph(markup))
		return nil
	}

	out, err := headings.TransformToHeading(markup, c.Int("level"))
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, out)
	return nil
}

func keywordsAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("keywords needs a TITLE")
	}

	for _, kw := range headings.ExtractKeywords(strings.Join(c.Args().Slice(), " ")) {
		fmt.Fprintln(c.App.Writer, kw)
	}
	return nil
}

func formatsAction(c *cli.Context) error {
	for _, f := range source.Formats() {
		fmt.Fprintf(c.App.Writer, "%-10s %-22s %s\n", f.Name, strings.Join(f.Extensions, " "), f.Description)
	}
	return nil
}
