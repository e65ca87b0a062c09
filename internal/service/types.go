package service

import (
	"github.com/a3tai/mcp-seo-headings/internal/headings"
	"github.com/a3tai/mcp-seo-headings/internal/source"
)

// FileInfo represents a document file in the documents directory
type FileInfo struct {
	Path         string        `json:"path" yaml:"path"`
	Name         string        `json:"name" yaml:"name"`
	Format       source.Format `json:"format" yaml:"format"`
	Size         int64         `json:"size" yaml:"size"`
	ModifiedTime string        `json:"modified_time" yaml:"modified_time"`
}

// Request Types

// SuggestionsRequest asks for heading suggestions on in-memory content.
// Blocks, when given, take precedence over Content.
type SuggestionsRequest struct {
	Content     string           `json:"content"`
	Format      string           `json:"format"`
	Blocks      []headings.Block `json:"blocks"`
	Title       string           `json:"title"`
	Keyword     string           `json:"keyword"`
	Eligibility string           `json:"eligibility"`
	Enabled     *bool            `json:"enabled,omitempty"`
}

// AnalyzeFileRequest asks for heading suggestions on a document file.
// Non-empty Title and Keyword override the values stored in the file.
type AnalyzeFileRequest struct {
	Path        string `json:"path"`
	Title       string `json:"title"`
	Keyword     string `json:"keyword"`
	Eligibility string `json:"eligibility"`
}

// TransformRequest asks for the replacement markup of a block
type TransformRequest struct {
	Markup      string `json:"markup"`
	Level       int    `json:"level"`
	ToParagraph bool   `json:"to_paragraph"`
}

// ListDocumentsRequest lists document files, optionally filtered by name
type ListDocumentsRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// ServerInfoRequest has no parameters
type ServerInfoRequest struct{}

// Response Types

// SuggestionsResult holds the suggestions for one document
type SuggestionsResult struct {
	Suggestions   []headings.Suggestion `json:"suggestions" yaml:"suggestions"`
	TitleKeywords []headings.Keyword    `json:"title_keywords" yaml:"title_keywords"`
	BlockCount    int                   `json:"block_count" yaml:"block_count"`
	EligibleCount int                   `json:"eligible_count" yaml:"eligible_count"`
	Disabled      bool                  `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// AnalyzeFileResult is a SuggestionsResult with the document it came from
type AnalyzeFileResult struct {
	SuggestionsResult `yaml:",inline"`

	Path    string        `json:"path" yaml:"path"`
	Format  source.Format `json:"format" yaml:"format"`
	Title   string        `json:"title" yaml:"title"`
	Keyword string        `json:"keyword,omitempty" yaml:"keyword,omitempty"`
}

// TransformResult holds the replacement markup for a block
type TransformResult struct {
	Markup string `json:"markup" yaml:"markup"`
	Level  int    `json:"level,omitempty" yaml:"level,omitempty"`
}

// ListDocumentsResult lists the document files that were found
type ListDocumentsResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}

// ServerInfoResult describes the server and how to use it
type ServerInfoResult struct {
	ServerName        string              `json:"server_name"`
	Version           string              `json:"version"`
	DocumentDirectory string              `json:"document_directory"`
	MaxFileSize       int64               `json:"max_file_size"`
	Eligibility       string              `json:"eligibility"`
	AvailableTools    []ToolInfo          `json:"available_tools"`
	SupportedFormats  []source.FormatInfo `json:"supported_formats"`
	DirectoryContents []FileInfo          `json:"directory_contents"`
	UsageGuidance     string              `json:"usage_guidance"`
}

// ToolInfo represents information about an available tool
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}
