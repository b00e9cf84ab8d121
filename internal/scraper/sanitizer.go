package scraper

import (
	"github.com/rs/zerolog/log"
)

// RemovalRule identifies noise nodes by CSS selector.
type RemovalRule struct {
	Category string
	Selector string
}

// RuleResult records how many nodes one rule removed.
type RuleResult struct {
	Rule    RemovalRule
	Removed int
}

// SanitizeReport lists removals in rule order.
type SanitizeReport struct {
	Rules []RuleResult
}

// Removed returns the total number of removed nodes.
func (r SanitizeReport) Removed() int {
	total := 0
	for _, rr := range r.Rules {
		total += rr.Removed
	}
	return total
}

// DefaultRemovalRules returns the noise rules. Class and id selectors match
// whole tokens; the [attr*=...] selectors match substrings and are case
// sensitive.
func DefaultRemovalRules() []RemovalRule {
	return []RemovalRule{
		{CategoryStructural, "script, style, noscript"},

		{CategoryNavigation, "nav, header, footer, aside"},
		{CategoryNavigation, `[role="navigation"], [role="banner"], [role="contentinfo"]`},

		{CategoryChrome, ".menu, .navbar, .nav, .sidebar, .widget"},
		{CategoryChrome, "#menu, #navbar, #nav, #sidebar, #header, #footer"},

		{CategoryAdvertising, ".ad, .ads, .advertisement, .promo, .banner"},
		{CategoryAdvertising, "#ads, #advertisement, #promo"},
		{CategoryAdvertising, `[class*="ad-"], [id*="ad-"], [class*="ads-"], [id*="ads-"]`},

		{CategorySocial, ".social, .share, .sharing"},
		{CategorySocial, `[class*="social-"], [class*="share-"]`},

		{CategoryDiscussion, ".comments, .comment-form, #comments"},

		{CategoryWayfinding, ".breadcrumb, .pagination, .pager"},

		{CategoryHidden, `[style*="display:none"], [style*="display: none"]`},
		{CategoryHidden, `[style*="visibility:hidden"], [style*="visibility: hidden"]`},
	}
}

// Sanitizer deletes noise subtrees from a document.
type Sanitizer struct {
	rules []RemovalRule
}

// NewSanitizer creates a sanitizer with the given rules, or the default
// rules when none are given.
func NewSanitizer(rules ...RemovalRule) *Sanitizer {
	if len(rules) == 0 {
		rules = DefaultRemovalRules()
	}
	return &Sanitizer{rules: rules}
}

// Rules returns a copy of the configured rules.
func (s *Sanitizer) Rules() []RemovalRule {
	return append([]RemovalRule(nil), s.rules...)
}

// Sanitize removes every node matching any rule, in place, and returns the
// same tree. Applying it twice is a no-op the second time.
func (s *Sanitizer) Sanitize(tree Tree) (Tree, SanitizeReport) {
	report := SanitizeReport{Rules: make([]RuleResult, 0, len(s.rules))}

	for _, rule := range s.rules {
		removed := tree.Remove(rule.Selector)
		report.Rules = append(report.Rules, RuleResult{Rule: rule, Removed: removed})
		if removed > 0 {
			log.Debug().
				Str("category", rule.Category).
				Str("selector", rule.Selector).
				Int("removed", removed).
				Msg("removed noise")
		}
	}

	return tree, report
}
