package gate_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaos-board/chaosgate/pkg/core"
	"github.com/chaos-board/chaosgate/pkg/gate"
	"github.com/chaos-board/chaosgate/pkg/region"
)

// fakeSource implements core.Source from fixed in-memory fixtures.
type fakeSource struct {
	files    []string
	base     map[string]string
	current  map[string]string
	filesErr error
}

func (f *fakeSource) ChangedFiles(ctx context.Context, baseRef string) ([]string, error) {
	if f.filesErr != nil {
		return nil, f.filesErr
	}
	return f.files, nil
}

func (f *fakeSource) FileContent(ctx context.Context, rev core.Revision, path string) (string, error) {
	contents := f.current
	if _, isBase := rev.Ref(); isBase {
		contents = f.base
	}
	c, ok := contents[path]
	if !ok {
		return "", fmt.Errorf("%w: no such path %s", core.ErrFetch, path)
	}
	return c, nil
}

func boardHTML(regionContent string) string {
	return "<html><body>\n" + region.StartMarker + regionContent + region.EndMarker + "\n</body></html>\n"
}

func messages(vs []core.Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Message
	}
	return out
}

func TestValidate_CleanChangeSet(t *testing.T) {
	src := &fakeSource{
		files: []string{gate.HTMLTarget, gate.CSSTarget},
		base: map[string]string{
			gate.HTMLTarget: boardHTML("\n<p>old</p>\n"),
		},
		current: map[string]string{
			gate.HTMLTarget: boardHTML("\n<p>new</p>\n"),
			gate.CSSTarget:  ".chaos-region .card { color: red; }\n",
		},
	}

	res, err := gate.NewValidator(src, nil).Validate(context.Background(), "main")
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Empty(t, res.Violations)
}

func TestValidate_EmptyChangeSet(t *testing.T) {
	res, err := gate.NewValidator(&fakeSource{}, nil).Validate(context.Background(), "main")
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestValidate_IllegalFiles(t *testing.T) {
	src := &fakeSource{
		files: []string{"README.md", "chaos-board/evil.js"},
	}

	res, err := gate.NewValidator(src, nil).Validate(context.Background(), "main")
	require.NoError(t, err)
	assert.False(t, res.OK)

	// Two messages for the one condition, in this order; the pair is part
	// of the output contract.
	require.Equal(t, []string{
		"Only these files may change: chaos-board/assets/chaos.css, chaos-board/index.html",
		"Illegal changed files: README.md, chaos-board/evil.js",
	}, messages(res.Violations))
	assert.Equal(t, core.KindAllowList, res.Violations[0].Kind)
	assert.Equal(t, core.KindIllegalFiles, res.Violations[1].Kind)
}

func TestValidate_RegionFidelity(t *testing.T) {
	t.Run("Interior Edit Passes", func(t *testing.T) {
		src := &fakeSource{
			files:   []string{gate.HTMLTarget},
			base:    map[string]string{gate.HTMLTarget: boardHTML("\n<p>a</p>\n")},
			current: map[string]string{gate.HTMLTarget: boardHTML("\n<p>b</p>\n<p>c</p>\n")},
		}
		res, err := gate.NewValidator(src, nil).Validate(context.Background(), "main")
		require.NoError(t, err)
		assert.True(t, res.OK)
	})

	t.Run("One Character Outside Fails", func(t *testing.T) {
		src := &fakeSource{
			files:   []string{gate.HTMLTarget},
			base:    map[string]string{gate.HTMLTarget: boardHTML("\n<p>a</p>\n")},
			current: map[string]string{gate.HTMLTarget: boardHTML("\n<p>a</p>\n") + " "},
		}
		res, err := gate.NewValidator(src, nil).Validate(context.Background(), "main")
		require.NoError(t, err)
		require.Len(t, res.Violations, 1)
		assert.Equal(t, core.KindOutsideRegion, res.Violations[0].Kind)
		assert.Equal(t, "index.html may only change content between CHAOS_START/CHAOS_END markers", res.Violations[0].Message)
	})

	t.Run("Scanner Runs Despite Boundary Breach", func(t *testing.T) {
		src := &fakeSource{
			files:   []string{gate.HTMLTarget},
			base:    map[string]string{gate.HTMLTarget: boardHTML("\n")},
			current: map[string]string{gate.HTMLTarget: "<!-- edited -->" + boardHTML("\n<a href=\"javascript:x\">a</a>\n")},
		}
		res, err := gate.NewValidator(src, nil).Validate(context.Background(), "main")
		require.NoError(t, err)
		require.Len(t, res.Violations, 3)
		assert.Equal(t, core.KindOutsideRegion, res.Violations[0].Kind)
		assert.Equal(t, "Links must not use javascript: URLs", res.Violations[1].Message)
	})
}

func TestValidate_MalformedRegion(t *testing.T) {
	src := &fakeSource{
		files: []string{gate.HTMLTarget, gate.CSSTarget},
		base:  map[string]string{gate.HTMLTarget: boardHTML("\n")},
		current: map[string]string{
			gate.HTMLTarget: "<html><body>no markers</body></html>",
			gate.CSSTarget:  "h1 { color: red; }",
		},
	}

	res, err := gate.NewValidator(src, nil).Validate(context.Background(), "main")
	require.NoError(t, err)

	// The malformed region is one violation, not a fatal error, and the
	// independent CSS findings still land in the same run.
	require.Equal(t, []string{
		"Missing or misordered chaos markers",
		"All selectors must start with .chaos-region: h1",
	}, messages(res.Violations))
	assert.Equal(t, core.KindMalformedRegion, res.Violations[0].Kind)
	assert.Equal(t, core.KindCSS, res.Violations[1].Kind)
}

func TestValidate_CSSOnly(t *testing.T) {
	src := &fakeSource{
		files:   []string{gate.CSSTarget},
		current: map[string]string{gate.CSSTarget: ".chaos-region div { color: blue; }"},
	}

	res, err := gate.NewValidator(src, nil).Validate(context.Background(), "main")
	require.NoError(t, err)
	require.Len(t, res.Violations, 1)
	assert.Equal(t, "Bare element selector not allowed in chaos.css: .chaos-region div", res.Violations[0].Message)
}

func TestValidate_DiscoveryOrder(t *testing.T) {
	src := &fakeSource{
		files: []string{"rogue.txt", gate.HTMLTarget, gate.CSSTarget},
		base:  map[string]string{gate.HTMLTarget: boardHTML("\n")},
		current: map[string]string{
			gate.HTMLTarget: boardHTML("\n<img src=\"http://x\" alt=\"d\">\n"),
			gate.CSSTarget:  "body { margin: 0; }",
		},
	}

	res, err := gate.NewValidator(src, nil).Validate(context.Background(), "main")
	require.NoError(t, err)

	// Allow-list first, then HTML, then CSS.
	require.Equal(t, []core.Kind{
		core.KindAllowList,
		core.KindIllegalFiles,
		core.KindHTML,
		core.KindCSS,
	}, kinds(res.Violations))
}

func TestValidate_FetchFailureIsFatal(t *testing.T) {
	t.Run("Changed Files", func(t *testing.T) {
		src := &fakeSource{filesErr: fmt.Errorf("%w: no remote", core.ErrFetch)}
		_, err := gate.NewValidator(src, nil).Validate(context.Background(), "main")
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrFetch))
	})

	t.Run("Missing File At Revision", func(t *testing.T) {
		src := &fakeSource{
			files:   []string{gate.HTMLTarget},
			base:    map[string]string{},
			current: map[string]string{gate.HTMLTarget: boardHTML("\n")},
		}
		_, err := gate.NewValidator(src, nil).Validate(context.Background(), "main")
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrFetch))
	})
}

func kinds(vs []core.Violation) []core.Kind {
	out := make([]core.Kind, len(vs))
	for i, v := range vs {
		out[i] = v.Kind
	}
	return out
}
