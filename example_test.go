package chaosgate_test

import (
	"context"
	"fmt"

	chaosgate "github.com/chaos-board/chaosgate"
	"github.com/chaos-board/chaosgate/pkg/core"
)

// fixtureSource serves a change set from memory, the seam used to validate
// without a real git repository behind the tool.
type fixtureSource struct {
	files   []string
	base    map[string]string
	current map[string]string
}

func (f *fixtureSource) ChangedFiles(ctx context.Context, baseRef string) ([]string, error) {
	return f.files, nil
}

func (f *fixtureSource) FileContent(ctx context.Context, rev core.Revision, path string) (string, error) {
	if _, isBase := rev.Ref(); isBase {
		return f.base[path], nil
	}
	return f.current[path], nil
}

func ExampleCheck() {
	doc := "<html><body><!-- CHAOS_START -->%s<!-- CHAOS_END --></body></html>"
	src := &fixtureSource{
		files:   []string{"chaos-board/index.html"},
		base:    map[string]string{"chaos-board/index.html": fmt.Sprintf(doc, "<p>old</p>")},
		current: map[string]string{"chaos-board/index.html": fmt.Sprintf(doc, `<a href="javascript:boom()">x</a>`)},
	}

	result, err := chaosgate.Check(context.Background(), ".", "main", chaosgate.WithSource(src))
	if err != nil {
		panic(err)
	}

	fmt.Println("ok:", result.OK)
	for _, v := range result.Violations {
		fmt.Println("-", v)
	}
	// Output:
	// ok: false
	// - Links must not use javascript: URLs
	// - Links must be http(s) or fragment only: href=javascript:boom()
}
