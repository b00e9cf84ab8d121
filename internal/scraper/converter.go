package scraper

import (
	"fmt"
	"regexp"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/microcosm-cc/bluemonday"
)

// codeLanguage matches the class that carries a fenced block's language.
var codeLanguage = regexp.MustCompile(`^language-[\w+-]+$`)

// ConversionStatus tells real content apart from a failed conversion.
type ConversionStatus string

const (
	StatusConverted ConversionStatus = "converted"
	StatusDegraded  ConversionStatus = "degraded"
)

// Conversion is the outcome of converting one region to Markdown.
// Text is only meaningful when Status is StatusConverted.
type Conversion struct {
	Status ConversionStatus
	Text   string
	Reason string
}

// Converted reports whether the conversion produced real content.
func (c Conversion) Converted() bool {
	return c.Status == StatusConverted
}

// ConversionOptions fixes the Markdown dialect.
type ConversionOptions struct {
	HeadingStyle     string
	BulletListMarker string
	CodeBlockFence   string
}

// DefaultConversionOptions returns ATX headings, "-" bullets and fenced code.
func DefaultConversionOptions() ConversionOptions {
	return ConversionOptions{
		HeadingStyle:     HeadingStyleATX,
		BulletListMarker: BulletListMarker,
		CodeBlockFence:   CodeBlockFence,
	}
}

// MarkdownConverter turns serialized markup into Markdown.
type MarkdownConverter struct {
	options ConversionOptions
	policy  *bluemonday.Policy
	convert func(html string) (string, error)
}

// NewMarkdownConverter creates a converter. When scrub is true the markup is
// passed through a bluemonday UGC policy first, which drops forms, frames
// and event handlers but keeps the document structure and code languages.
func NewMarkdownConverter(opts ConversionOptions, scrub bool) *MarkdownConverter {
	mc := &MarkdownConverter{options: opts}
	if scrub {
		mc.policy = bluemonday.UGCPolicy()
		mc.policy.AllowAttrs("class").Matching(codeLanguage).OnElements("code")
	}
	mc.convert = mc.convertString
	return mc
}

// Options returns the conversion options.
func (mc *MarkdownConverter) Options() ConversionOptions {
	return mc.options
}

// Convert converts html to Markdown. Failures inside the conversion engine,
// including panics, are returned as a degraded Conversion, never as content.
func (mc *MarkdownConverter) Convert(html string) (result Conversion) {
	defer func() {
		if r := recover(); r != nil {
			result = Conversion{Status: StatusDegraded, Reason: fmt.Sprintf("converter panic: %v", r)}
		}
	}()

	if mc.policy != nil {
		html = mc.policy.Sanitize(html)
	}

	text, err := mc.convert(html)
	if err != nil {
		return Conversion{Status: StatusDegraded, Reason: err.Error()}
	}
	return Conversion{Status: StatusConverted, Text: text}
}

func (mc *MarkdownConverter) convertString(html string) (string, error) {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(mc.commonmarkOptions()...),
			table.NewTablePlugin(),
		),
	)
	return conv.ConvertString(html)
}

func (mc *MarkdownConverter) commonmarkOptions() []commonmark.OptionFunc {
	opts := []commonmark.OptionFunc{
		commonmark.WithBulletListMarker(mc.options.BulletListMarker),
		commonmark.WithCodeBlockFence(mc.options.CodeBlockFence),
	}
	if mc.options.HeadingStyle == HeadingStyleATX {
		opts = append(opts, commonmark.WithHeadingStyle(commonmark.HeadingStyleATX))
	} else {
		opts = append(opts, commonmark.WithHeadingStyle(commonmark.HeadingStyleSetext))
	}
	return opts
}
