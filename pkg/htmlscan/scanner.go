// Package htmlscan enforces the markup policy inside the chaos region.
//
// The scanner is a single forward pass over start-tag events produced by the
// permissive tokenizer from golang.org/x/net/html. It reports policy
// violations only; tag soup is tolerated and well-formedness is never
// judged here.
package htmlscan

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/chaos-board/chaosgate/pkg/core"
)

// RequiredRel is the rel token set every external link must carry.
var RequiredRel = []string{"nofollow", "noopener", "noreferrer"}

// Scan walks regionHTML and accumulates every policy violation.
// It never stops at the first problem.
func Scan(regionHTML string) []core.Violation {
	var out []core.Violation

	z := html.NewTokenizer(strings.NewReader(regionHTML))
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or an unrecoverable input error; either way the
			// stream is done.
			return out
		case html.StartTagToken, html.SelfClosingTagToken:
			out = append(out, scanTag(z.Token())...)
		}
	}
}

// scanTag applies every rule to a single start tag. The rules are
// independent; one tag can produce several violations.
func scanTag(tok html.Token) []core.Violation {
	var out []core.Violation

	// First-occurrence order for iteration, last value wins on duplicates.
	attrs := make(map[string]string, len(tok.Attr))
	order := make([]string, 0, len(tok.Attr))
	for _, a := range tok.Attr {
		key := strings.ToLower(a.Key)
		if _, seen := attrs[key]; !seen {
			order = append(order, key)
		}
		attrs[key] = a.Val
	}

	// No inline event handlers, on any tag.
	for _, key := range order {
		if strings.HasPrefix(key, "on") {
			out = append(out, core.Violation{
				Kind:    core.KindHTML,
				Message: fmt.Sprintf("Inline event handler attribute not allowed: %s[%s]", tok.Data, key),
			})
		}
	}

	switch tok.Data {
	case "a":
		out = append(out, scanAnchor(attrs)...)
	case "img":
		out = append(out, scanImage(attrs)...)
	}

	return out
}

func scanAnchor(attrs map[string]string) []core.Violation {
	var out []core.Violation

	href := attrs["href"]
	hrefNorm := strings.ToLower(strings.TrimSpace(href))

	if href != "" {
		if strings.HasPrefix(hrefNorm, "javascript:") {
			out = append(out, core.Violation{
				Kind:    core.KindHTML,
				Message: "Links must not use javascript: URLs",
			})
		}
		if !strings.HasPrefix(hrefNorm, "http://") && !strings.HasPrefix(hrefNorm, "https://") && !strings.HasPrefix(hrefNorm, "#") {
			out = append(out, core.Violation{
				Kind:    core.KindHTML,
				Message: fmt.Sprintf("Links must be http(s) or fragment only: href=%s", href),
			})
		}
	}

	// External links must open in a new tab and carry the full rel set.
	if strings.HasPrefix(hrefNorm, "http://") || strings.HasPrefix(hrefNorm, "https://") {
		if attrs["target"] != "_blank" {
			out = append(out, core.Violation{
				Kind:    core.KindHTML,
				Message: `External links must include target="_blank"`,
			})
		}
		present := make(map[string]bool)
		for _, tok := range strings.Fields(strings.ToLower(attrs["rel"])) {
			present[tok] = true
		}
		for _, req := range RequiredRel {
			if !present[req] {
				out = append(out, core.Violation{
					Kind:    core.KindHTML,
					Message: `External links must include rel="nofollow noopener noreferrer"`,
				})
				break
			}
		}
	}

	return out
}

func scanImage(attrs map[string]string) []core.Violation {
	var out []core.Violation

	if src := attrs["src"]; src != "" && !strings.HasPrefix(strings.ToLower(strings.TrimSpace(src)), "https://") {
		out = append(out, core.Violation{
			Kind:    core.KindHTML,
			Message: "Images must use https:// sources",
		})
	}
	if attrs["alt"] == "" {
		out = append(out, core.Violation{
			Kind:    core.KindHTML,
			Message: "Images must include non-empty alt attribute",
		})
	}

	return out
}
