// Package gate orchestrates the chaos-board pull request checks.
package gate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/chaos-board/chaosgate/pkg/core"
	"github.com/chaos-board/chaosgate/pkg/cssscope"
	"github.com/chaos-board/chaosgate/pkg/htmlscan"
	"github.com/chaos-board/chaosgate/pkg/region"
)

// The only two files a chaos-board pull request may touch.
const (
	HTMLTarget = "chaos-board/index.html"
	CSSTarget  = "chaos-board/assets/chaos.css"
)

// AllowedChangedFiles is the change-set allow-list. Matching is verbatim on
// relative path strings.
var AllowedChangedFiles = map[string]bool{
	HTMLTarget: true,
	CSSTarget:  true,
}

// Validator runs the full rule set over one change set.
type Validator struct {
	src    core.Source
	logger *slog.Logger
}

// NewValidator builds a validator over the given source. The logger may be
// nil.
func NewValidator(src core.Source, logger *slog.Logger) *Validator {
	return &Validator{src: src, logger: logger}
}

// Validate inspects the change set against baseRef and returns every
// violation found, in discovery order: allow-list first, then HTML, then
// CSS. A non-nil error means an environment failure (the change set or a
// file could not be read), never a failed check.
func (v *Validator) Validate(ctx context.Context, baseRef string) (core.Result, error) {
	var violations []core.Violation

	files, err := v.src.ChangedFiles(ctx, baseRef)
	if err != nil {
		return core.Result{}, fmt.Errorf("listing changed files against %s: %w", baseRef, err)
	}
	if v.logger != nil {
		v.logger.Debug("change set resolved", "base", baseRef, "files", files)
	}

	violations = append(violations, checkAllowList(files)...)

	if contains(files, HTMLTarget) {
		vs, err := v.checkHTML(ctx, baseRef)
		if err != nil {
			return core.Result{}, err
		}
		violations = append(violations, vs...)
	}

	if contains(files, CSSTarget) {
		css, err := v.src.FileContent(ctx, core.Current, CSSTarget)
		if err != nil {
			return core.Result{}, fmt.Errorf("reading %s: %w", CSSTarget, err)
		}
		violations = append(violations, cssscope.Check(css)...)
	}

	return core.Result{OK: len(violations) == 0, Violations: violations}, nil
}

// checkAllowList reports paths outside the allow-list. It emits two
// messages for the one condition (the allowed set, then the offenders);
// downstream tooling matches on both, so the pair is part of the contract.
func checkAllowList(files []string) []core.Violation {
	var illegal []string
	for _, f := range files {
		if !AllowedChangedFiles[f] {
			illegal = append(illegal, f)
		}
	}
	if len(illegal) == 0 {
		return nil
	}

	allowed := make([]string, 0, len(AllowedChangedFiles))
	for f := range AllowedChangedFiles {
		allowed = append(allowed, f)
	}
	sort.Strings(allowed)

	return []core.Violation{
		{Kind: core.KindAllowList, Message: "Only these files may change: " + strings.Join(allowed, ", ")},
		{Kind: core.KindIllegalFiles, Message: "Illegal changed files: " + strings.Join(illegal, ", ")},
	}
}

// checkHTML verifies that the board document changed only inside the marker
// pair and that the edited region obeys the markup policy.
func (v *Validator) checkHTML(ctx context.Context, baseRef string) ([]core.Violation, error) {
	baseDoc, err := v.src.FileContent(ctx, core.Base(baseRef), HTMLTarget)
	if err != nil {
		return nil, fmt.Errorf("reading %s at %s: %w", HTMLTarget, baseRef, err)
	}
	headDoc, err := v.src.FileContent(ctx, core.Current, HTMLTarget)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", HTMLTarget, err)
	}

	baseSplit, baseErr := region.Cut(baseDoc)
	headSplit, headErr := region.Cut(headDoc)
	if baseErr != nil || headErr != nil {
		// One violation, then skip the remaining HTML checks; the run
		// still continues so independent findings are not lost.
		cause := baseErr
		if cause == nil {
			cause = headErr
		}
		return []core.Violation{{Kind: core.KindMalformedRegion, Message: cause.Error()}}, nil
	}

	var out []core.Violation
	if baseSplit.Before != headSplit.Before || baseSplit.After != headSplit.After {
		out = append(out, core.Violation{
			Kind:    core.KindOutsideRegion,
			Message: "index.html may only change content between CHAOS_START/CHAOS_END markers",
		})
	}

	// The scanner runs regardless of the boundary outcome.
	out = append(out, htmlscan.Scan(headSplit.Region)...)
	return out, nil
}

func contains(files []string, path string) bool {
	for _, f := range files {
		if f == path {
			return true
		}
	}
	return false
}
