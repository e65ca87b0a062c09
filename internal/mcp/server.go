package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/a3tai/mcp-seo-headings/internal/config"
	"github.com/a3tai/mcp-seo-headings/internal/descriptions"
	"github.com/a3tai/mcp-seo-headings/internal/headings"
	"github.com/a3tai/mcp-seo-headings/internal/service"
)

const shutdownTimeout = 5 * time.Second

// Server represents the MCP server instance
type Server struct {
	config    *config.Config
	service   *service.Service
	mcpServer *server.MCPServer
	logger    zerolog.Logger
}

// NewServer creates a new MCP server instance
func NewServer(cfg *config.Config, svc *service.Service, logger zerolog.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if svc == nil {
		return nil, fmt.Errorf("service cannot be nil")
	}

	mcpServer := server.NewMCPServer(
		cfg.ServerName,
		cfg.Version,
		server.WithToolCapabilities(false), // We don't support dynamic tool capabilities
	)

	s := &Server{
		config:    cfg,
		service:   svc,
		mcpServer: mcpServer,
		logger:    logger,
	}

	s.registerTools()

	return s, nil
}

// registerTools registers all available MCP tools
func (s *Server) registerTools() {
	getSuggestionsTool := mcp.NewTool(
		"seo_get_suggestions",
		mcp.WithDescription(descriptions.GetToolDescription("seo_get_suggestions")),
		mcp.WithString("content",
			mcp.Description("Post content: block-editor markup, HTML or Markdown"),
		),
		mcp.WithString("format",
			mcp.Description("Content format (auto-detected when empty)"),
			mcp.Enum("gutenberg", "html", "markdown"),
		),
		mcp.WithArray("blocks",
			mcp.Description("Pre-parsed blocks: objects with kind, markup and optional level. Used instead of content."),
			mcp.Items(map[string]any{
				"type": "object",
				"properties": map[string]any{
					"kind":   map[string]any{"type": "string"},
					"markup": map[string]any{"type": "string"},
					"level":  map[string]any{"type": "number"},
				},
			}),
		),
		mcp.WithString("title",
			mcp.Description("Post title; its words are matched against candidate text"),
		),
		mcp.WithString("keyword",
			mcp.Description("Optional focus keyword"),
		),
		mcp.WithString("eligibility",
			mcp.Description("Blocks to analyze (defaults to the server setting)"),
			mcp.Enum(headings.EligibilityParagraphs, headings.EligibilityParagraphsAndHeadings),
		),
		mcp.WithBoolean("enabled",
			mcp.Description("Per-post switch; false returns no suggestions"),
		),
	)
	s.mcpServer.AddTool(getSuggestionsTool, s.handleGetSuggestions)

	analyzeFileTool := mcp.NewTool(
		"seo_analyze_file",
		mcp.WithDescription(descriptions.GetToolDescription("seo_analyze_file")),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path of the document, absolute or relative to the documents directory"),
		),
		mcp.WithString("title",
			mcp.Description("Overrides the title stored in the document"),
		),
		mcp.WithString("keyword",
			mcp.Description("Overrides the focus keyword stored in the document"),
		),
		mcp.WithString("eligibility",
			mcp.Description("Blocks to analyze (defaults to the server setting)"),
			mcp.Enum(headings.EligibilityParagraphs, headings.EligibilityParagraphsAndHeadings),
		),
	)
	s.mcpServer.AddTool(analyzeFileTool, s.handleAnalyzeFile)

	transformBlockTool := mcp.NewTool(
		"seo_transform_block",
		mcp.WithDescription(descriptions.GetToolDescription("seo_transform_block")),
		mcp.WithString("markup",
			mcp.Required(),
			mcp.Description("Markup of the block to convert"),
		),
		mcp.WithNumber("level",
			mcp.Description("Heading level, 2 or 3 (default 2)"),
		),
		mcp.WithBoolean("to_paragraph",
			mcp.Description("Convert a heading back into a paragraph instead"),
		),
	)
	s.mcpServer.AddTool(transformBlockTool, s.handleTransformBlock)

	extractKeywordsTool := mcp.NewTool(
		"seo_extract_keywords",
		mcp.WithDescription(descriptions.GetToolDescription("seo_extract_keywords")),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Post title"),
		),
	)
	s.mcpServer.AddTool(extractKeywordsTool, s.handleExtractKeywords)

	listDocumentsTool := mcp.NewTool(
		"seo_list_documents",
		mcp.WithDescription(descriptions.GetToolDescription("seo_list_documents")),
		mcp.WithString("directory",
			mcp.Description("Directory to list (uses the documents directory if empty)"),
		),
		mcp.WithString("query",
			mcp.Description("Optional case-insensitive file name filter"),
		),
	)
	s.mcpServer.AddTool(listDocumentsTool, s.handleListDocuments)

	serverInfoTool := mcp.NewTool(
		"seo_server_info",
		mcp.WithDescription(descriptions.GetToolDescription("seo_server_info")),
	)
	s.mcpServer.AddTool(serverInfoTool, s.handleServerInfo)
}

// Handler functions
func (s *Server) handleGetSuggestions(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "seo_get_suggestions"
	s.logger.Debug().Str("tool", tool).Msg("tool called")

	args := request.GetArguments()
	req := service.SuggestionsRequest{
		Content:     request.GetString("content", ""),
		Format:      request.GetString("format", ""),
		Title:       request.GetString("title", ""),
		Keyword:     request.GetString("keyword", ""),
		Eligibility: request.GetString("eligibility", ""),
	}

	if enabled, ok := args["enabled"].(bool); ok {
		req.Enabled = &enabled
	}

	if raw, ok := args["blocks"]; ok && raw != nil {
		blocks, err := decodeBlocks(raw)
		if err != nil {
			return s.toolError(tool, err), nil
		}
		req.Blocks = blocks
	}

	if strings.TrimSpace(req.Content) == "" && len(req.Blocks) == 0 && req.Enabled == nil {
		return s.toolError(tool, errors.New("either content or blocks is required")), nil
	}

	result, err := s.service.GetSuggestions(req)
	if err != nil {
		return s.toolError(tool, err), nil
	}

	return withJSON(formatSuggestionsResult(result), result), nil
}

func (s *Server) handleAnalyzeFile(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "seo_analyze_file"
	s.logger.Debug().Str("tool", tool).Msg("tool called")

	path, err := request.RequireString("path")
	if err != nil {
		return s.toolError(tool, err), nil
	}

	result, err := s.service.AnalyzeFile(service.AnalyzeFileRequest{
		Path:        path,
		Title:       request.GetString("title", ""),
		Keyword:     request.GetString("keyword", ""),
		Eligibility: request.GetString("eligibility", ""),
	})
	if err != nil {
		return s.toolError(tool, err), nil
	}

	text := fmt.Sprintf("Document: %s\n", result.Path)
	text += fmt.Sprintf("Format: %s\n", result.Format)
	if result.Title != "" {
		text += fmt.Sprintf("Title: %s\n", result.Title)
	}
	if result.Keyword != "" {
		text += fmt.Sprintf("Focus keyword: %s\n", result.Keyword)
	}
	text += "\n" + formatSuggestionsResult(&result.SuggestionsResult)

	return withJSON(text, result), nil
}

func (s *Server) handleTransformBlock(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "seo_transform_block"
	s.logger.Debug().Str("tool", tool).Msg("tool called")

	markup, err := request.RequireString("markup")
	if err != nil {
		return s.toolError(tool, err), nil
	}

	result, err := s.service.TransformBlock(service.TransformRequest{
		Markup:      markup,
		Level:       request.GetInt("level", 2),
		ToParagraph: request.GetBool("to_paragraph", false),
	})
	if err != nil {
		return s.toolError(tool, err), nil
	}

	return mcp.NewToolResultText(result.Markup), nil
}

func (s *Server) handleExtractKeywords(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "seo_extract_keywords"
	s.logger.Debug().Str("tool", tool).Msg("tool called")

	title, err := request.RequireString("title")
	if err != nil {
		return s.toolError(tool, err), nil
	}

	keywords := s.service.ExtractKeywords(title)
	if len(keywords) == 0 {
		return withJSON("No keywords found in title", keywords), nil
	}

	words := make([]string, len(keywords))
	for i, kw := range keywords {
		words[i] = string(kw)
	}
	text := fmt.Sprintf("Keywords (%d): %s", len(words), strings.Join(words, ", "))

	return withJSON(text, keywords), nil
}

func (s *Server) handleListDocuments(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "seo_list_documents"
	s.logger.Debug().Str("tool", tool).Msg("tool called")

	result, err := s.service.ListDocuments(service.ListDocumentsRequest{
		Directory: request.GetString("directory", ""),
		Query:     request.GetString("query", ""),
	})
	if err != nil {
		return s.toolError(tool, err), nil
	}

	if result.TotalCount == 0 {
		text := fmt.Sprintf("No documents found in directory: %s", result.Directory)
		if result.SearchQuery != "" {
			text += fmt.Sprintf(" (searched for: %s)", result.SearchQuery)
		}
		return mcp.NewToolResultText(text), nil
	}

	return mcp.NewToolResultText(formatListDocumentsResult(result)), nil
}

func (s *Server) handleServerInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	const tool = "seo_server_info"
	s.logger.Debug().Str("tool", tool).Msg("tool called")

	result, err := s.service.ServerInfo(service.ServerInfoRequest{}, s.config.ServerName, s.config.Version)
	if err != nil {
		return s.toolError(tool, err), nil
	}

	return mcp.NewToolResultText(formatServerInfoResult(result)), nil
}

// toolError logs a failed call and turns err into a tool error result
func (s *Server) toolError(tool string, err error) *mcp.CallToolResult {
	s.logger.Warn().Err(err).Str("tool", tool).Msg("tool call failed")
	return mcp.NewToolResultError(err.Error())
}

func decodeBlocks(raw any) ([]headings.Block, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid blocks: %w", err)
	}
	var blocks []headings.Block
	if err := json.Unmarshal(data, &blocks); err != nil {
		return nil, fmt.Errorf("invalid blocks: %w", err)
	}
	return blocks, nil
}

// withJSON returns text followed by the JSON encoding of v as a second
// content item
func withJSON(text string, v any) *mcp.CallToolResult {
	result := mcp.NewToolResultText(text)
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return result
	}
	result.Content = append(result.Content, mcp.NewTextContent(string(data)))
	return result
}

// Formatting functions
func formatSuggestionsResult(result *service.SuggestionsResult) string {
	if result.Disabled {
		return "Heading suggestions are disabled for this document"
	}

	text := fmt.Sprintf("Found %d heading suggestion(s) in %d block(s), %d analyzed\n",
		len(result.Suggestions), result.BlockCount, result.EligibleCount)

	if len(result.TitleKeywords) > 0 {
		words := make([]string, len(result.TitleKeywords))
		for i, kw := range result.TitleKeywords {
			words[i] = string(kw)
		}
		text += fmt.Sprintf("Title keywords: %s\n", strings.Join(words, ", "))
	}

	for i, sg := range result.Suggestions {
		text += fmt.Sprintf("\n%d. Block %d -> H%d (confidence %d%%)\n", i+1, sg.BlockIndex, sg.SuggestedLevel, sg.Confidence)
		if sg.CurrentLevel > 0 {
			text += fmt.Sprintf("   Currently: H%d\n", sg.CurrentLevel)
		}
		text += fmt.Sprintf("   Text: %s\n", sg.TextContent)
		for _, reason := range sg.Reasons {
			text += fmt.Sprintf("   - %s\n", reason)
		}
	}

	return text
}

func formatListDocumentsResult(result *service.ListDocumentsResult) string {
	text := fmt.Sprintf("Found %d document(s) in directory: %s\n", result.TotalCount, result.Directory)
	if result.SearchQuery != "" {
		text += fmt.Sprintf("Search query: %s\n", result.SearchQuery)
	}
	text += "\nFiles:\n"

	for i, file := range result.Files {
		text += fmt.Sprintf("%d. %s\n", i+1, file.Name)
		text += fmt.Sprintf("   Path: %s\n", file.Path)
		text += fmt.Sprintf("   Format: %s\n", file.Format)
		text += fmt.Sprintf("   Size: %d bytes\n", file.Size)
		text += fmt.Sprintf("   Modified: %s\n", file.ModifiedTime)
		if i < len(result.Files)-1 {
			text += "\n"
		}
	}

	return text
}

func formatServerInfoResult(result *service.ServerInfoResult) string {
	text := fmt.Sprintf("📋 %s v%s - Server Information\n", result.ServerName, result.Version)
	text += fmt.Sprintf("📁 Document Directory: %s\n", result.DocumentDirectory)
	text += fmt.Sprintf("📏 Max File Size: %d MB\n", result.MaxFileSize/(1024*1024))
	text += fmt.Sprintf("🔎 Analyzed Blocks: %s\n\n", result.Eligibility)

	if len(result.DirectoryContents) > 0 {
		text += fmt.Sprintf("📂 Directory Contents (%d documents found):\n", len(result.DirectoryContents))
		for i, file := range result.DirectoryContents {
			if i >= 10 { // Limit to first 10 files for readability
				text += fmt.Sprintf("   ... and %d more files\n", len(result.DirectoryContents)-10)
				break
			}
			text += fmt.Sprintf("   %d. %s (%s, %d bytes)\n", i+1, file.Name, file.Format, file.Size)
		}
		text += "\n"
	} else {
		text += "📂 Directory Contents: No documents found\n\n"
	}

	text += "🛠️  Available Tools:\n"
	for _, tool := range result.AvailableTools {
		text += fmt.Sprintf("\n• %s\n", tool.Name)
		text += fmt.Sprintf("  %s\n", tool.Description)
	}

	text += "\n📄 Supported Formats:\n"
	for _, format := range result.SupportedFormats {
		text += fmt.Sprintf("  • %s (%s): %s\n", format.Name, strings.Join(format.Extensions, ", "), format.Description)
	}

	text += "\n" + result.UsageGuidance

	return text
}

// Run starts the MCP server in the configured mode and blocks until ctx is
// cancelled or the transport fails
func (s *Server) Run(ctx context.Context) error {
	if s.config.IsServerMode() {
		return s.runServerMode(ctx)
	}
	return s.runStdioMode(ctx)
}

// runStdioMode serves MCP over standard input and output
func (s *Server) runStdioMode(ctx context.Context) error {
	s.logger.Info().
		Str("mode", config.ModeStdio).
		Str("dir", s.config.DocumentDirectory).
		Msg("starting MCP server")

	stdio := server.NewStdioServer(s.mcpServer)
	stdio.SetErrorLogger(log.New(s.logger, "", 0))

	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("failed to serve stdio: %w", err)
	}
	return nil
}

// runServerMode serves MCP over HTTP with server-sent events
func (s *Server) runServerMode(ctx context.Context) error {
	addr := s.config.Address()
	httpServer := &http.Server{
		Addr:              addr,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sse := server.NewSSEServer(s.mcpServer,
		server.WithBaseURL("http://"+addr),
		server.WithHTTPServer(httpServer),
	)

	s.logger.Info().
		Str("mode", config.ModeServer).
		Str("addr", addr).
		Str("dir", s.config.DocumentDirectory).
		Msg("starting MCP server")

	errChan := make(chan error, 1)
	go func() {
		errChan <- sse.Start(addr)
	}()

	select {
	case err := <-errChan:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve HTTP: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := sse.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}
	s.logger.Info().Msg("MCP server stopped")

	return nil
}
