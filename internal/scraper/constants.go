package scraper

// Content extraction
const (
	// DefaultContentThreshold is the trimmed text length a candidate must exceed.
	DefaultContentThreshold = 100

	BodySelector = "body"
)

// ContentSelectors lists main-content candidates, highest priority first.
var ContentSelectors = []string{
	"main",
	`[role="main"]`,
	".main-content",
	".content",
	".post-content",
	".entry-content",
	".article-content",
	"#main",
	"#content",
	".container .content",
	"article",
}

// Noise categories, in the order they are applied and reported.
const (
	CategoryStructural  = "structural"
	CategoryNavigation  = "navigation"
	CategoryChrome      = "chrome"
	CategoryAdvertising = "advertising"
	CategorySocial      = "social"
	CategoryDiscussion  = "discussion"
	CategoryWayfinding  = "wayfinding"
	CategoryHidden      = "hidden"
)

// Conversion
const (
	HeadingStyleATX  = "atx"
	BulletListMarker = "-"
	CodeBlockFence   = "```"

	// DegradedText is the human-readable body used when conversion fails.
	DegradedText = "Error: could not convert the content to Markdown"
)

// Text processing constants
const (
	DoubleNewline = "\n\n"
	SingleNewline = "\n"
)

// Fetch
const (
	DefaultMaxRedirects = 5
	AcceptHeader        = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	AcceptLanguage      = "en-US,en;q=0.9"
)
