package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, html string) Tree {
	t.Helper()
	tree, err := ParseDocument(html)
	require.NoError(t, err)
	return tree
}

func bodyHTML(t *testing.T, tree Tree) string {
	t.Helper()
	html, err := tree.Body().HTML()
	require.NoError(t, err)
	return html
}

const noisyPage = `<html><head><style>p{}</style><script>var x;</script></head><body>
<header>Site header</header>
<nav>Top nav</nav>
<div role="navigation">role nav</div>
<div role="banner">role banner</div>
<ul class="menu"><li>Home</li></ul>
<div id="sidebar">Sidebar</div>
<div class="widget">Widget</div>
<div class="ad">Buy</div>
<div id="promo">Promo</div>
<div class="top-ad-slot">Slot</div>
<div id="ads-right">Right</div>
<div class="share">Share</div>
<div class="social-links">Links</div>
<section class="comments">Comments</section>
<form class="comment-form"></form>
<ol class="breadcrumb"><li>Home</li></ol>
<div class="pagination">1 2 3</div>
<span style="display:none">hidden one</span>
<span style="display: none">hidden two</span>
<span style="color: red; visibility: hidden">hidden three</span>
<noscript>enable js</noscript>
<main>
  <p id="keep">The article body stays.</p>
  <div class="menu-item">token mismatch stays</div>
  <div class="AD-slot">case mismatch stays</div>
  <div style="display:block">visible stays</div>
</main>
<aside>Related</aside>
<footer>Footer</footer>
<div role="contentinfo">Legal</div>
</body></html>`

func TestSanitizer_RemovesEveryCategory(t *testing.T) {
	tree := mustParse(t, noisyPage)

	got, report := NewSanitizer().Sanitize(tree)
	require.Same(t, tree, got)

	gone := []string{
		"script", "style", "noscript",
		"header", "nav", "footer", "aside",
		`[role="navigation"]`, `[role="banner"]`, `[role="contentinfo"]`,
		".menu", "#sidebar", ".widget",
		".ad", "#promo", ".top-ad-slot", "#ads-right",
		".share", ".social-links",
		".comments", ".comment-form",
		".breadcrumb", ".pagination",
		"span",
	}
	for _, sel := range gone {
		assert.Empty(t, got.Query(sel), "expected %s to be removed", sel)
	}

	kept := []string{"#keep", ".menu-item", ".AD-slot", `[style="display:block"]`, "main"}
	for _, sel := range kept {
		assert.Len(t, got.Query(sel), 1, "expected %s to be kept", sel)
	}

	assert.Greater(t, report.Removed(), 20)
	assert.Len(t, report.Rules, len(DefaultRemovalRules()))
}

func TestSanitizer_ReportFollowsRuleOrder(t *testing.T) {
	tree := mustParse(t, `<html><body><script></script><nav></nav><nav></nav><div class="pager"></div></body></html>`)

	_, report := NewSanitizer().Sanitize(tree)

	rules := DefaultRemovalRules()
	require.Len(t, report.Rules, len(rules))
	for i, rr := range report.Rules {
		assert.Equal(t, rules[i], rr.Rule)
	}
	assert.Equal(t, 1, report.Rules[0].Removed)
	assert.Equal(t, 2, report.Rules[1].Removed)
	assert.Equal(t, 4, report.Removed())
}

func TestSanitizer_Idempotent(t *testing.T) {
	tree := mustParse(t, noisyPage)
	s := NewSanitizer()

	s.Sanitize(tree)
	once := bodyHTML(t, tree)

	_, second := s.Sanitize(tree)
	assert.Equal(t, 0, second.Removed())
	assert.Equal(t, once, bodyHTML(t, tree))
}

func TestSanitizer_RuleOrderIndependent(t *testing.T) {
	rules := DefaultRemovalRules()
	reversed := make([]RemovalRule, len(rules))
	for i, r := range rules {
		reversed[len(rules)-1-i] = r
	}

	forward := mustParse(t, noisyPage)
	NewSanitizer(rules...).Sanitize(forward)

	backward := mustParse(t, noisyPage)
	NewSanitizer(reversed...).Sanitize(backward)

	assert.Equal(t, bodyHTML(t, forward), bodyHTML(t, backward))
}

func TestSanitizer_NestedNoise(t *testing.T) {
	tree := mustParse(t, `<html><body><div class="sidebar"><div class="widget">w</div></div><p>text</p></body></html>`)

	_, report := NewSanitizer().Sanitize(tree)

	assert.Empty(t, tree.Query(".widget"))
	assert.Len(t, tree.Query("p"), 1)
	assert.Equal(t, 2, report.Removed())
}

func TestNewSanitizer_DefaultsAndCopy(t *testing.T) {
	s := NewSanitizer()
	rules := s.Rules()
	require.NotEmpty(t, rules)

	rules[0].Selector = "p"
	assert.Equal(t, "script, style, noscript", s.Rules()[0].Selector)

	custom := NewSanitizer(RemovalRule{Category: "custom", Selector: ".x"})
	assert.Len(t, custom.Rules(), 1)
}
