package source

import (
	"fmt"
	"html"
	"os"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/a3tai/mcp-seo-headings/internal/headings"
)

// ReadPDF extracts the text of a PDF draft and returns every non-empty
// line as a paragraph block. PDFs carry no reliable block structure, so
// short lines are exactly the candidates the engine looks for.
func ReadPDF(path string, maxFileSize int64) ([]headings.Block, error) {
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

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, conf); err != nil {
		return nil, fmt.Errorf("%w: invalid PDF: %v", ErrNotDocument, err)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	blocks := make([]headings.Block, 0)
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}

		blocks = append(blocks, linesToParagraphs(content)...)
	}

	return blocks, nil
}

func linesToParagraphs(content string) []headings.Block {
	var blocks []headings.Block
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		blocks = append(blocks, headings.Block{
			Kind:   headings.KindParagraph,
			Markup: "<p>" + html.EscapeString(line) + "</p>",
		})
	}
	return blocks
}
