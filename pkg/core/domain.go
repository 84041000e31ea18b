// Violation is the central value of the domain.
package core

// Kind classifies a violation. The human-readable message is the contract;
// the kind exists so tests and tooling can match on the cause without
// parsing message text.
type Kind string

const (
	KindAllowList       Kind = "ALLOW_LIST"
	KindIllegalFiles    Kind = "ILLEGAL_FILES"
	KindMalformedRegion Kind = "MALFORMED_REGION"
	KindOutsideRegion   Kind = "OUTSIDE_REGION"
	KindHTML            Kind = "HTML"
	KindCSS             Kind = "CSS"
)

// Violation describes one broken rule. Violations are never deduplicated;
// every distinct cause produces its own entry.
type Violation struct {
	Kind    Kind
	Message string
}

func (v Violation) String() string {
	return v.Message
}

// Result is the terminal artifact of one validation run.
// OK holds exactly when Violations is empty.
type Result struct {
	OK         bool
	Violations []Violation
}
