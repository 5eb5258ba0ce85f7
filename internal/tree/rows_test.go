package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibleRows(t *testing.T) {
	tests := []struct {
		name      string
		collapsed map[int]bool
		expected  []string
		depths    []int
	}{
		{
			name:     "everything expanded",
			expected: []string{"Fruit", "Apple", "Banana", "Veg"},
			depths:   []int{0, 1, 1, 0},
		},
		{
			name:      "collapsed parent hides children",
			collapsed: map[int]bool{1: true},
			expected:  []string{"Fruit", "Veg"},
			depths:    []int{0, 0},
		},
		{
			name:      "collapsing a leaf changes nothing",
			collapsed: map[int]bool{4: true},
			expected:  []string{"Fruit", "Apple", "Banana", "Veg"},
			depths:    []int{0, 1, 1, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _ := newFruitModel(t)
			rows := m.VisibleRows(func(id int) bool { return !tt.collapsed[id] })

			assert.Equal(t, tt.expected, rowNames(rows))
			got := make([]int, len(rows))
			for i, r := range rows {
				got[i] = r.Depth
			}
			assert.Equal(t, tt.depths, got)
		})
	}
}

func TestVisibleRowsMarksCollapsed(t *testing.T) {
	m, _ := newFruitModel(t)

	rows := m.VisibleRows(func(id int) bool { return id != 1 })
	require.Len(t, rows, 2)
	assert.True(t, rows[0].Collapsed)
	assert.False(t, rows[1].Collapsed, "leaf rows are never collapsed")

	rows = m.VisibleRows(nil)
	assert.False(t, rows[0].Collapsed)
}

func TestRows(t *testing.T) {
	m, _ := newFruitModel(t)

	rows, err := m.Rows("", nil)
	require.NoError(t, err)
	assert.Len(t, rows, 4)

	rows, err = m.Rows("an", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Banana"}, rowNames(rows))

	empty, err := New(nil)
	require.NoError(t, err)
	assert.Empty(t, empty.VisibleRows(nil))
}
