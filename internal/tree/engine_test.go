package tree

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/badjano/favtree/internal/model"
)

// el builds an element with the given id, depth and name
func el(id, depth int, name string) *model.Element {
	return &model.Element{ID: id, Depth: depth, Name: name}
}

// fruitSequence is the sequence used by most tests:
//
//	Root(0) -> Fruit(1) -> Apple(2), Banana(3)
//	        -> Veg(4)
func fruitSequence() []*model.Element {
	return []*model.Element{
		el(0, -1, "Root"),
		el(1, 0, "Fruit"),
		el(2, 1, "Apple"),
		el(3, 1, "Banana"),
		el(4, 0, "Veg"),
	}
}

func names(elements []*model.Element) []string {
	result := make([]string, len(elements))
	for i, e := range elements {
		result[i] = e.Name
	}
	return result
}

func depths(elements []*model.Element) []int {
	result := make([]int, len(elements))
	for i, e := range elements {
		result[i] = e.Depth
	}
	return result
}

func TestSequenceToTree(t *testing.T) {
	flat := fruitSequence()

	root, err := SequenceToTree(flat)
	require.NoError(t, err)
	require.Same(t, flat[0], root)

	require.Len(t, root.Children, 2)
	assert.Equal(t, []string{"Fruit", "Veg"}, names(root.Children))

	fruit := root.Children[0]
	assert.Equal(t, []string{"Apple", "Banana"}, names(fruit.Children))
	for _, child := range fruit.Children {
		assert.Same(t, fruit, child.Parent)
		assert.Equal(t, 1, child.Depth)
	}
	assert.Same(t, root, fruit.Parent)
	assert.Nil(t, root.Parent)
	assert.False(t, root.Children[1].HasChildren())
}

func TestSequenceToTreeRoundTrip(t *testing.T) {
	flat := fruitSequence()
	root, err := SequenceToTree(flat)
	require.NoError(t, err)

	result := TreeToSequence(root)
	require.Len(t, result, len(flat))
	for i := range flat {
		assert.Same(t, flat[i], result[i], "index %d", i)
	}
	assert.Equal(t, []int{-1, 0, 1, 1, 0}, depths(result))
}

func TestSequenceToTreeRejectsMalformedInput(t *testing.T) {
	tests := []struct {
		name  string
		flat  []*model.Element
		index int
	}{
		{
			name:  "empty sequence",
			flat:  nil,
			index: -1,
		},
		{
			name:  "root with depth 0",
			flat:  []*model.Element{el(0, 0, "Root")},
			index: 0,
		},
		{
			name:  "first child skips depth 0",
			flat:  []*model.Element{el(0, -1, "Root"), el(1, 1, "A")},
			index: 1,
		},
		{
			name:  "depth jumps by two",
			flat:  []*model.Element{el(0, -1, "Root"), el(1, 0, "A"), el(2, 2, "B")},
			index: 2,
		},
		{
			name:  "nil root",
			flat:  []*model.Element{nil, el(1, 0, "A")},
			index: 0,
		},
		{
			name:  "nil element after the root",
			flat:  []*model.Element{el(0, -1, "Root"), el(1, 0, "A"), nil},
			index: 2,
		},
		{
			name:  "second negative depth",
			flat:  []*model.Element{el(0, -1, "Root"), el(1, 0, "A"), el(2, -1, "B")},
			index: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root, err := SequenceToTree(tt.flat)
			require.Error(t, err)
			assert.Nil(t, root)
			assert.True(t, errors.Is(err, ErrInvalidStructure), "got %v", err)

			var structErr *StructureError
			require.True(t, errors.As(err, &structErr))
			assert.Equal(t, tt.index, structErr.Index)
		})
	}
}

func TestSequenceToTreeDiscardsStaleLinks(t *testing.T) {
	flat := fruitSequence()
	stale := el(99, 0, "Stale")
	flat[2].Parent = stale
	flat[2].Children = []*model.Element{stale}
	flat[4].Children = []*model.Element{flat[3]}

	root, err := SequenceToTree(flat)
	require.NoError(t, err)

	assert.Same(t, flat[1], flat[2].Parent)
	assert.Empty(t, flat[2].Children)
	assert.Empty(t, flat[4].Children)
	assert.Len(t, TreeToSequence(root), 5)
}

func TestSequenceToTreeSingleRoot(t *testing.T) {
	root, err := SequenceToTree([]*model.Element{el(7, -1, "Root")})
	require.NoError(t, err)
	assert.False(t, root.HasChildren())
	assert.Len(t, TreeToSequence(root), 1)
}

func TestTreeToSequenceNil(t *testing.T) {
	assert.Empty(t, TreeToSequence(nil))
}

func TestRepairDepths(t *testing.T) {
	root, err := SequenceToTree(fruitSequence())
	require.NoError(t, err)

	fruit := root.Children[0]
	fruit.Depth = 5
	RepairDepths(fruit)

	assert.Equal(t, 5, fruit.Depth)
	assert.Equal(t, 6, fruit.Children[0].Depth)
	assert.Equal(t, 6, fruit.Children[1].Depth)
	assert.Equal(t, 0, root.Children[1].Depth, "siblings are untouched")

	RepairDepths(nil)
}

func TestAncestorsOf(t *testing.T) {
	flat := fruitSequence()
	_, err := SequenceToTree(flat)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 0}, AncestorsOf(flat[2]))
	assert.Equal(t, []int{0}, AncestorsOf(flat[4]))
	assert.Empty(t, AncestorsOf(flat[0]))
	assert.Empty(t, AncestorsOf(nil))
}

func TestIDsWithChildrenBelow(t *testing.T) {
	flat := []*model.Element{
		el(0, -1, "Root"),
		el(1, 0, "A"),
		el(2, 1, "A1"),
		el(3, 2, "A1a"),
		el(4, 1, "A2"),
		el(5, 0, "B"),
	}
	root, err := SequenceToTree(flat)
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2}, IDsWithChildrenBelow(root))
	assert.Equal(t, []int{1, 2}, IDsWithChildrenBelow(flat[1]))
	assert.Empty(t, IDsWithChildrenBelow(flat[5]))
	assert.Empty(t, IDsWithChildrenBelow(nil))
}

func TestCommonRoots(t *testing.T) {
	flat := []*model.Element{
		el(0, -1, "Root"),
		el(1, 0, "A"),
		el(2, 1, "A1"),
		el(3, 2, "A1a"),
		el(4, 0, "B"),
		el(5, 1, "B1"),
	}
	_, err := SequenceToTree(flat)
	require.NoError(t, err)

	tests := []struct {
		name     string
		input    []*model.Element
		expected []*model.Element
	}{
		{"single element", []*model.Element{flat[3]}, []*model.Element{flat[3]}},
		{"grandchild covered by ancestor", []*model.Element{flat[3], flat[1]}, []*model.Element{flat[1]}},
		{"disjoint subtrees", []*model.Element{flat[2], flat[5]}, []*model.Element{flat[2], flat[5]}},
		{"duplicates collapse", []*model.Element{flat[4], flat[4], flat[5]}, []*model.Element{flat[4]}},
		{"nil entries ignored", []*model.Element{nil, flat[2]}, []*model.Element{flat[2]}},
		{"empty input", nil, []*model.Element{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CommonRoots(tt.input))
		})
	}
}

func TestIsDescendantOf(t *testing.T) {
	flat := fruitSequence()
	_, err := SequenceToTree(flat)
	require.NoError(t, err)

	assert.True(t, IsDescendantOf(flat[2], flat[1]))
	assert.True(t, IsDescendantOf(flat[2], flat[0]))
	assert.False(t, IsDescendantOf(flat[1], flat[2]))
	assert.False(t, IsDescendantOf(flat[1], flat[1]))
	assert.False(t, IsDescendantOf(flat[4], flat[1]))
}

// drawSequence draws a valid depth-encoded sequence with unique ids
func drawSequence(t *rapid.T) []*model.Element {
	n := rapid.IntRange(1, 40).Draw(t, "n")
	flat := []*model.Element{el(0, -1, "Root")}
	for i := 1; i < n; i++ {
		maxDepth := flat[i-1].Depth + 1
		depth := 0
		if i > 1 {
			depth = rapid.IntRange(0, maxDepth).Draw(t, "depth")
		}
		flat = append(flat, el(i, depth, rapid.StringMatching(`[a-z]{1,6}`).Draw(t, "name")))
	}
	return flat
}

func TestPropertySequenceRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		flat := drawSequence(t)
		wantDepths := depths(flat)

		root, err := SequenceToTree(flat)
		if err != nil {
			t.Fatalf("valid sequence rejected: %v\n%s", err, spew.Sdump(wantDepths))
		}

		result := TreeToSequence(root)
		if len(result) != len(flat) {
			t.Fatalf("got %d elements, want %d", len(result), len(flat))
		}
		for i := range flat {
			if result[i] != flat[i] || result[i].Depth != wantDepths[i] {
				t.Fatalf("index %d differs: got %s want %s", i, spew.Sdump(result[i].ID, result[i].Depth), spew.Sdump(flat[i].ID, wantDepths[i]))
			}
		}
	})
}

func TestPropertyTreeRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		root, err := SequenceToTree(drawSequence(t))
		if err != nil {
			t.Fatalf("valid sequence rejected: %v", err)
		}

		// Rebuild from detached copies and compare structure node by node
		var copies []*model.Element
		for _, e := range TreeToSequence(root) {
			copies = append(copies, e.Clone())
		}
		rebuilt, err := SequenceToTree(copies)
		if err != nil {
			t.Fatalf("flattened tree rejected: %v", err)
		}
		assertSameShape(t, root, rebuilt)
	})
}

func assertSameShape(t *rapid.T, want, got *model.Element) {
	if want.ID != got.ID || want.Name != got.Name || want.Depth != got.Depth {
		t.Fatalf("node mismatch: want %d/%q/%d got %d/%q/%d", want.ID, want.Name, want.Depth, got.ID, got.Name, got.Depth)
	}
	if len(want.Children) != len(got.Children) {
		t.Fatalf("node %d: want %d children, got %d", want.ID, len(want.Children), len(got.Children))
	}
	for i := range want.Children {
		assertSameShape(t, want.Children[i], got.Children[i])
	}
}
