package service

import (
	"fmt"
	"time"

	"github.com/a3tai/mcp-seo-headings/internal/descriptions"
	"github.com/a3tai/mcp-seo-headings/internal/source"
)

const (
	serverInfoFileLimit = 100
	serverInfoScanLimit = 5 * time.Second
)

// ServerInfo returns server information and usage guidance
func (s *Service) ServerInfo(_ ServerInfoRequest, serverName, version string) (*ServerInfoResult, error) {
	directory := s.pathValidator.Root()

	// Directory contents are a convenience; a slow or broken scan must not
	// fail the request
	contents := make([]FileInfo, 0)
	resultChan := make(chan []FileInfo, 1)

	go func() {
		files, err := s.findDocuments(directory, "", serverInfoFileLimit)
		if err != nil {
			files = nil
		}
		resultChan <- files
	}()

	select {
	case files := <-resultChan:
		if files != nil {
			contents = files
		}
	case <-time.After(serverInfoScanLimit):
	}

	tools := make([]ToolInfo, 0, len(descriptions.ToolDescriptions))
	for _, name := range descriptions.GetAllToolNames() {
		tools = append(tools, ToolInfo{Name: name, Description: descriptions.GetToolDescription(name)})
	}

	usageGuidance := `SEO Headings MCP Server Usage Guide:

1. FIND DOCUMENTS:
   - Use 'seo_list_documents' to find drafts in the documents directory

2. ANALYZE:
   - Use 'seo_analyze_file' for stored drafts
   - Use 'seo_get_suggestions' for pasted content (block markup, HTML or Markdown)
   - Always pass the post title; words from it raise confidence and promote suggestions to H2

3. APPLY:
   - Use 'seo_transform_block' with level 2 or 3 to get the replacement heading markup
   - Set to_paragraph to revert a heading

IMPORTANT NOTES:
- Only paragraphs between 8 and 80 characters are suggested
- block_index counts analyzed blocks only
- Files up to ` + fmt.Sprintf("%d", s.maxFileSize/(1024*1024)) + `MB are accepted`

	return &ServerInfoResult{
		ServerName:        serverName,
		Version:           version,
		DocumentDirectory: directory,
		MaxFileSize:       s.maxFileSize,
		Eligibility:       s.eligibility,
		AvailableTools:    tools,
		SupportedFormats:  source.Formats(),
		DirectoryContents: contents,
		UsageGuidance:     usageGuidance,
	}, nil
}
