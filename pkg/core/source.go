package core

import "context"

// Revision selects which version of a file a Source reads.
type Revision struct {
	ref string
}

// Current is the working-tree revision.
var Current = Revision{}

// Base returns the revision pointing at the tip of the given base branch.
func Base(ref string) Revision {
	return Revision{ref: ref}
}

// Ref returns the symbolic ref and whether this revision names a committed
// base rather than the working tree.
func (r Revision) Ref() (string, bool) {
	return r.ref, r.ref != ""
}

// Source supplies the change set and file contents the validator inspects.
// Production wires a git-backed implementation; tests inject in-memory
// fixtures.
type Source interface {
	// ChangedFiles lists the paths that differ between the merge-base of the
	// current tip and baseRef. Paths are relative and reported once each.
	ChangedFiles(ctx context.Context, baseRef string) ([]string, error)

	// FileContent returns the content of path at rev exactly as stored, with
	// no line-ending normalization. Byte-exact comparison of the document
	// outside the chaos region depends on this.
	FileContent(ctx context.Context, rev Revision, path string) (string, error)
}
