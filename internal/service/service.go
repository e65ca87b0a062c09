package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/a3tai/mcp-seo-headings/internal/headings"
	"github.com/a3tai/mcp-seo-headings/internal/security"
	"github.com/a3tai/mcp-seo-headings/internal/source"
)

// ErrEmptyMarkup is returned when a transform is requested for empty markup
var ErrEmptyMarkup = errors.New("markup cannot be empty")

// Service handles heading analysis requests for both the MCP tools and the CLI
type Service struct {
	maxFileSize   int64
	eligibility   string
	engine        *headings.Engine
	logger        zerolog.Logger
	pathValidator *security.PathValidator
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the logger used by the service and its engines
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithEligibility sets the default eligibility name used when a request
// does not name one
func WithEligibility(name string) Option {
	return func(s *Service) {
		s.eligibility = name
	}
}

// NewService creates a service that reads documents from documentDirectory
func NewService(maxFileSize int64, documentDirectory string, opts ...Option) (*Service, error) {
	pathValidator, err := security.NewPathValidator(documentDirectory)
	if err != nil {
		return nil, fmt.Errorf("failed to create path validator: %w", err)
	}

	s := &Service{
		maxFileSize:   maxFileSize,
		eligibility:   headings.EligibilityParagraphs,
		logger:        zerolog.Nop(),
		pathValidator: pathValidator,
	}
	for _, opt := range opts {
		opt(s)
	}

	eligible, err := headings.ParseEligibility(s.eligibility)
	if err != nil {
		return nil, err
	}
	s.engine = headings.New(headings.WithEligibility(eligible), headings.WithLogger(s.logger))

	return s, nil
}

// engineFor returns the engine for a request's eligibility override
func (s *Service) engineFor(eligibility string) (*headings.Engine, error) {
	if strings.TrimSpace(eligibility) == "" {
		return s.engine, nil
	}
	eligible, err := headings.ParseEligibility(eligibility)
	if err != nil {
		return nil, err
	}
	return headings.New(headings.WithEligibility(eligible), headings.WithLogger(s.logger)), nil
}

// GetSuggestions analyzes in-memory content or blocks
func (s *Service) GetSuggestions(req SuggestionsRequest) (*SuggestionsResult, error) {
	if req.Enabled != nil && !*req.Enabled {
		return disabledResult(), nil
	}

	engine, err := s.engineFor(req.Eligibility)
	if err != nil {
		return nil, err
	}

	blocks := normalizeBlocks(req.Blocks)
	if len(blocks) == 0 {
		format, err := source.ParseFormat(req.Format)
		if err != nil {
			return nil, err
		}
		if blocks, err = source.Parse(req.Content, format); err != nil {
			return nil, err
		}
	}

	return analyze(engine, blocks, req.Title, req.Keyword), nil
}

// AnalyzeFile loads a document from the documents directory and analyzes it
func (s *Service) AnalyzeFile(req AnalyzeFileRequest) (*AnalyzeFileResult, error) {
	path, err := s.pathValidator.Resolve(req.Path)
	if err != nil {
		return nil, fmt.Errorf("security validation failed: %w", err)
	}

	engine, err := s.engineFor(req.Eligibility)
	if err != nil {
		return nil, err
	}

	doc, err := source.LoadDocument(path, s.maxFileSize)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Title) != "" {
		doc.Title = req.Title
	}
	if strings.TrimSpace(req.Keyword) != "" {
		doc.Keyword = req.Keyword
	}

	result := &AnalyzeFileResult{
		Path:    path,
		Format:  doc.Format,
		Title:   doc.Title,
		Keyword: doc.Keyword,
	}

	if doc.Enabled != nil && !*doc.Enabled {
		result.SuggestionsResult = *disabledResult()
		result.BlockCount = len(doc.Blocks)
	} else {
		result.SuggestionsResult = *analyze(engine, doc.Blocks, doc.Title, doc.Keyword)
	}

	s.logger.Debug().
		Str("path", path).
		Str("format", string(doc.Format)).
		Int("suggestions", len(result.Suggestions)).
		Bool("disabled", result.Disabled).
		Msg("document analyzed")

	return result, nil
}

// TransformBlock returns the replacement markup for a block
func (s *Service) TransformBlock(req TransformRequest) (*TransformResult, error) {
	if strings.TrimSpace(req.Markup) == "" {
		return nil, ErrEmptyMarkup
	}

	if req.ToParagraph {
		return &TransformResult{Markup: headings.TransformToParagraph(req.Markup)}, nil
	}

	markup, err := headings.TransformToHeading(req.Markup, req.Level)
	if err != nil {
		return nil, err
	}

	return &TransformResult{Markup: markup, Level: req.Level}, nil
}

// ExtractKeywords returns the keywords derived from a title
func (s *Service) ExtractKeywords(title string) []headings.Keyword {
	return headings.ExtractKeywords(title)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}

// GetDocumentDirectory returns the directory documents are read from
func (s *Service) GetDocumentDirectory() string {
	return s.pathValidator.Root()
}

func analyze(engine *headings.Engine, blocks []headings.Block, title, keyword string) *SuggestionsResult {
	eligible := 0
	for _, b := range blocks {
		if engine.Eligible(b.Kind) {
			eligible++
		}
	}

	return &SuggestionsResult{
		Suggestions:   engine.Analyze(blocks, title, keyword),
		TitleKeywords: headings.ExtractKeywords(title),
		BlockCount:    len(blocks),
		EligibleCount: eligible,
	}
}

func disabledResult() *SuggestionsResult {
	return &SuggestionsResult{
		Suggestions:   make([]headings.Suggestion, 0),
		TitleKeywords: make([]headings.Keyword, 0),
		Disabled:      true,
	}
}

// normalizeBlocks maps editor block names such as "core/paragraph" onto
// block kinds without touching the caller's slice
func normalizeBlocks(blocks []headings.Block) []headings.Block {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]headings.Block, len(blocks))
	for i, b := range blocks {
		b.Kind = headings.ParseBlockKind(string(b.Kind))
		out[i] = b
	}
	return out
}
