// Package chaosgate is the Composition Root for the chaosgate tool.
//
// It connects the rule engine (Domain Layer) with the git-backed source
// adapter (Infrastructure Layer).
//
// Philosophy:
//
// chaosgate is a pull-request gatekeeper for the chaos board, a static web
// page anyone may edit through PRs. A change is accepted only when it is
// confined to the two board files and the content inside them follows the
// board's structural and safety rules:
//
//   - Only chaos-board/index.html and chaos-board/assets/chaos.css may change.
//   - index.html may change only between the CHAOS_START/CHAOS_END markers;
//     the rest of the document must stay byte-identical to the base branch.
//   - Markup inside the region must not carry inline event handlers,
//     javascript: links, unguarded external links, or images lacking an
//     https source or alt text.
//   - Every chaos.css selector must live under the .chaos-region namespace
//     with no bare element selectors.
//
// The engine accumulates every violation in one pass rather than stopping
// at the first, so a contributor gets the complete feedback per run.
//
// Usage:
//
//	result, err := chaosgate.Check(ctx, ".", "main",
//		chaosgate.WithLogger(logger),
//	)
//	if err != nil {
//		// environment failure, not a failed check
//	}
//	for _, v := range result.Violations {
//		fmt.Println(v)
//	}
package chaosgate
