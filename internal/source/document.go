package source

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/a3tai/mcp-seo-headings/internal/headings"
)

var (
	// ErrUnsupportedFormat is returned for formats no parser handles
	ErrUnsupportedFormat = errors.New("unsupported document format")
	// ErrFileTooLarge is returned when a document exceeds the size limit
	ErrFileTooLarge = errors.New("file too large")
	// ErrNotDocument is returned when a file cannot be read as a document
	ErrNotDocument = errors.New("not a document")
)

// Format names a document representation
type Format string

const (
	FormatAuto      Format = ""
	FormatGutenberg Format = "gutenberg"
	FormatHTML      Format = "html"
	FormatMarkdown  Format = "markdown"
	FormatPDF       Format = "pdf"
	FormatDocument  Format = "document"
)

// FormatInfo describes a supported format
type FormatInfo struct {
	Name        Format   `json:"name"`
	Extensions  []string `json:"extensions"`
	Description string   `json:"description"`
}

var formats = []FormatInfo{
	{FormatGutenberg, []string{".txt", ".wp"}, "Serialized block-editor content (<!-- wp:paragraph --> delimiters)"},
	{FormatHTML, []string{".html", ".htm"}, "HTML fragment or page; top-level <p> and <h1>-<h6> elements"},
	{FormatMarkdown, []string{".md", ".markdown"}, "Markdown document; top-level paragraphs and headings"},
	{FormatPDF, []string{".pdf"}, "PDF draft; each text line is treated as a paragraph"},
	{FormatDocument, []string{".yaml", ".yml", ".json"}, "Document envelope with title, keyword and content or blocks"},
}

// Formats returns the supported formats with their file extensions
func Formats() []FormatInfo {
	out := make([]FormatInfo, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat validates a format name. The empty string means auto-detect.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case "md":
		return FormatMarkdown, nil
	case "blocks", "wp":
		return FormatGutenberg, nil
	case "yaml", "json":
		return FormatDocument, nil
	case FormatAuto:
		return FormatAuto, nil
	}
	for _, info := range formats {
		if info.Name == f {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

// FormatForPath picks a format from a file extension. Unknown extensions
// map to FormatAuto.
func FormatForPath(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	for _, info := range formats {
		for _, e := range info.Extensions {
			if ext == e {
				return info.Name
			}
		}
	}
	return FormatAuto
}

// IsSupportedFile reports whether path has a known document extension
func IsSupportedFile(path string) bool {
	return FormatForPath(path) != FormatAuto
}

// Detect guesses the format of in-memory content
func Detect(content string) Format {
	trimmed := strings.TrimSpace(content)
	switch {
	case strings.Contains(trimmed, "<!-- wp:"):
		return FormatGutenberg
	case strings.HasPrefix(trimmed, "<"):
		return FormatHTML
	default:
		return FormatMarkdown
	}
}

// Parse converts in-memory content into blocks
func Parse(content string, format Format) ([]headings.Block, error) {
	if format == FormatAuto {
		format = Detect(content)
	}

	switch format {
	case FormatGutenberg:
		return ParseBlocks(content), nil
	case FormatHTML:
		return ParseHTML(content)
	case FormatMarkdown:
		return ParseMarkdown([]byte(content))
	default:
		return nil, fmt.Errorf("%w: %q cannot be parsed from text", ErrUnsupportedFormat, format)
	}
}

// Document is a parsed document ready for analysis
type Document struct {
	Title   string           `yaml:"title" json:"title"`
	Keyword string           `yaml:"keyword" json:"keyword"`
	Enabled *bool            `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Format  Format           `yaml:"format,omitempty" json:"format,omitempty"`
	Content string           `yaml:"content,omitempty" json:"content,omitempty"`
	Blocks  []headings.Block `yaml:"blocks,omitempty" json:"blocks,omitempty"`
}

// LoadDocument reads a document file. Envelope files (.yaml, .yml, .json)
// may embed content in any text format or list blocks directly; other files
// are parsed according to their extension. When no title is given the text
// of the first level-1 heading is used.
func LoadDocument(path string, maxFileSize int64) (*Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrNotDocument, path)
	}
	if maxFileSize > 0 && info.Size() > maxFileSize {
		return nil, fmt.Errorf("%w: %d bytes (max: %d bytes)", ErrFileTooLarge, info.Size(), maxFileSize)
	}

	format := FormatForPath(path)
	doc := &Document{Format: format}

	switch format {
	case FormatPDF:
		blocks, err := ReadPDF(path, maxFileSize)
		if err != nil {
			return nil, err
		}
		doc.Blocks = blocks

	case FormatDocument:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		doc.Format = FormatAuto
		if err := yaml.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("%w: invalid document envelope: %v", ErrNotDocument, err)
		}
		if doc.Format, err = ParseFormat(string(doc.Format)); err != nil {
			return nil, err
		}
		for i := range doc.Blocks {
			doc.Blocks[i].Kind = headings.ParseBlockKind(string(doc.Blocks[i].Kind))
		}
		if len(doc.Blocks) == 0 && strings.TrimSpace(doc.Content) != "" {
			if doc.Format == FormatAuto {
				doc.Format = Detect(doc.Content)
			}
			if doc.Blocks, err = Parse(doc.Content, doc.Format); err != nil {
				return nil, err
			}
		}

	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read file: %w", err)
		}
		doc.Content = string(data)
		if format == FormatGutenberg || format == FormatAuto {
			// exported post content does not always keep its block delimiters
			doc.Format = Detect(doc.Content)
		}
		if doc.Blocks, err = Parse(doc.Content, doc.Format); err != nil {
			return nil, err
		}
	}

	if doc.Blocks == nil {
		doc.Blocks = make([]headings.Block, 0)
	}
	if doc.Title == "" {
		doc.Title = TitleFromBlocks(doc.Blocks)
	}

	return doc, nil
}

// TitleFromBlocks returns the text of the first level-1 heading, if any
func TitleFromBlocks(blocks []headings.Block) string {
	for _, b := range blocks {
		if b.Kind == headings.KindHeading && b.Level == 1 {
			return headings.ExtractText(b)
		}
	}
	return ""
}
