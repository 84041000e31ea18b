// Package cssscope enforces the .chaos-region namespace over the board
// stylesheet.
//
// This is a lexical approximation of CSS structure, not a parser. It strips
// comments and string contents, isolates the selector list in front of each
// rule block, and classifies selector tokens. That is all the scoping policy
// needs; it must not grow into a grammar.
package cssscope

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/chaos-board/chaosgate/pkg/core"
)

// Prefix is the namespace every selector must start with.
const Prefix = ".chaos-region"

var (
	blockComment = regexp.MustCompile(`(?s)/\*.*?\*/`)
	singleQuoted = regexp.MustCompile(`'([^'\\]|\\.)*'`)
	doubleQuoted = regexp.MustCompile(`"([^"\\]|\\.)*"`)
	combinators  = regexp.MustCompile(`\s+|>\s*|\+\s*|~\s*`)
	leadingIdent = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*`)
)

// bareTokens are rejected wherever they appear in a selector chain.
var bareTokens = map[string]bool{"*": true, "html": true, "body": true}

// Check scans css and reports every selector that escapes the namespace.
func Check(css string) []core.Violation {
	css = blockComment.ReplaceAllString(css, "")

	// Blank out string literals so selector-like text inside values
	// (content: "h1 { ... }") is never misread as structure. Escaped quote
	// characters stay inside their literal.
	css = singleQuoted.ReplaceAllString(css, "''")
	css = doubleQuoted.ReplaceAllString(css, `""`)

	var out []core.Violation

	chunks := strings.Split(css, "{")
	for _, chunk := range chunks[:len(chunks)-1] {
		// Everything after the chunk's last '}' is the selector list that
		// owns the next '{'; earlier text belongs to prior rule bodies.
		parts := strings.Split(chunk, "}")
		selectorList := strings.TrimSpace(parts[len(parts)-1])
		if selectorList == "" {
			continue
		}
		// At-rules such as @media: their nested selectors show up as their
		// own chunks in later iterations.
		if strings.HasPrefix(selectorList, "@") {
			continue
		}

		for _, sel := range strings.Split(selectorList, ",") {
			sel = strings.TrimSpace(sel)
			if sel == "" {
				continue
			}
			out = append(out, checkSelector(sel)...)
		}
	}

	return out
}

// checkSelector reports at most one violation per selector: either the
// missing namespace prefix or the first bare element token found.
func checkSelector(sel string) []core.Violation {
	if !strings.HasPrefix(sel, Prefix) {
		return []core.Violation{{
			Kind:    core.KindCSS,
			Message: fmt.Sprintf("All selectors must start with %s: %s", Prefix, sel),
		}}
	}

	for _, tok := range combinators.Split(sel, -1) {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		if bareTokens[tok] {
			return []core.Violation{bareElement(sel)}
		}
		// A token opening with a raw identifier is a tag-name selector
		// unless it is qualified as class/id/pseudo/attribute, or is the
		// namespace class itself.
		if ident := leadingIdent.FindString(tok); ident != "" && !strings.ContainsAny(tok[:1], ".#:[") {
			if ident != "chaos-region" {
				return []core.Violation{bareElement(sel)}
			}
		}
	}

	return nil
}

func bareElement(sel string) core.Violation {
	return core.Violation{
		Kind:    core.KindCSS,
		Message: fmt.Sprintf("Bare element selector not allowed in chaos.css: %s", sel),
	}
}
