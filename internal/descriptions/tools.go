package descriptions

import "sort"

// Tool descriptions with practical examples and use cases

const (
	SEOGetSuggestionsDescription = `Suggest which paragraphs of a post should become H2 or H3 headings.

**When to use:** You have post content (block-editor markup, HTML or Markdown) and want to improve its heading structure for search engines.

**Why it's useful:** Short paragraphs that read like titles are found and scored. Those containing the focus keyword or words from the post title are proposed as H2, the rest as H3.

**Examples:**
• Review a draft: "Which lines of this recipe post should be headings? Title: Pizza Napoletana"
• Focus keyword check: "Suggest headings for this article using the keyword 'forno a legna'"

**Common workflows:**
1. Editorial review: seo_get_suggestions → pick high-confidence items → seo_transform_block
2. Audit: seo_list_documents → seo_analyze_file for each draft

**Best practices:** Pass the post title so title words can be matched. block_index counts only analyzed blocks, not every block in the post.`

	SEOAnalyzeFileDescription = `Analyze a document file from the documents directory and suggest headings.

**When to use:** Drafts are stored as files (.txt/.wp block markup, .html, .md, .pdf, or .yaml/.json envelopes) and you want suggestions without pasting content.

**Why it's useful:** Envelope files carry the title, focus keyword and enable flag alongside the content, so a whole editorial queue can be reviewed in one pass.

**Examples:**
• "Analyze drafts/pizza.yaml"
• "Check headings in exports/guide.md with the keyword 'lievito madre'"

**Best practices:** Use seo_list_documents first to find files. Title and keyword arguments override the values stored in the file.`

	SEOTransformBlockDescription = `Convert a paragraph's markup into heading markup, or a heading back into a paragraph.

**When to use:** After accepting a suggestion, produce the replacement markup for the block.

**Why it's useful:** Keeps inline formatting and links. Generated headings carry the wp-block-heading and auto-seo-generated classes so they can be found later.

**Examples:**
• "Turn <p>La cottura nel forno</p> into an H2"
• "Revert <h3 class=\"wp-block-heading\">Ingredienti</h3> to a paragraph"

**Best practices:** Only levels 2 and 3 are accepted.`

	SEOExtractKeywordsDescription = `Extract the keywords the analyzer derives from a post title.

**When to use:** To see which title words will count as matches before running an analysis.

**Examples:**
• "Which keywords come from 'Come preparare la pizza napoletana in casa'?"

**Best practices:** Italian stopwords and words shorter than three characters are dropped.`

	SEOListDocumentsDescription = `List analyzable document files in the documents directory.

**When to use:** To discover drafts before calling seo_analyze_file.

**Examples:**
• "List all documents"
• "Find documents whose name contains 'pizza'"

**Best practices:** The query is a case-insensitive substring match on the file name.`

	SEOServerInfoDescription = `Get server information, supported formats and usage guidance.

**When to use:** At the start of a session to learn what this server can do and where it reads documents from.`
)

// ToolDescriptions maps tool names to their descriptions
var ToolDescriptions = map[string]string{
	"seo_get_suggestions":  SEOGetSuggestionsDescription,
	"seo_analyze_file":     SEOAnalyzeFileDescription,
	"seo_transform_block":  SEOTransformBlockDescription,
	"seo_extract_keywords": SEOExtractKeywordsDescription,
	"seo_list_documents":   SEOListDocumentsDescription,
	"seo_server_info":      SEOServerInfoDescription,
}

// GetToolDescription returns the description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns the names of all described tools in sorted order
func GetAllToolNames() []string {
	names := make([]string, 0, len(ToolDescriptions))
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
