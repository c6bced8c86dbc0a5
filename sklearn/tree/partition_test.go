package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition(t *testing.T) {
	frame, y := randomFrame(t, 200, 7)
	d, _ := trainingSet(t, frame, y)

	for f := range d.values {
		for _, threshold := range []float64{-100, 0, 1, 2.5, 5, 100} {
			left, right := d.partition(f, threshold)

			require.Equal(t, d.len(), left.len()+right.len())
			for _, r := range left.rows {
				assert.LessOrEqual(t, d.values[f][r], threshold)
			}
			for _, r := range right.rows {
				assert.Greater(t, d.values[f][r], threshold)
			}

			// Stable: merging by the original order gives back the input.
			merged := make([]int, 0, d.len())
			i, j := 0, 0
			for i < left.len() || j < right.len() {
				if j == right.len() || (i < left.len() && left.rows[i] < right.rows[j]) {
					merged = append(merged, left.rows[i])
					i++
				} else {
					merged = append(merged, right.rows[j])
					j++
				}
			}
			assert.Equal(t, d.rows, merged)
			assertSorted(t, left.rows)
			assertSorted(t, right.rows)
		}
	}
}

func TestPartition_LabelsFollowRows(t *testing.T) {
	d, _ := trainingSet(t, stepFrame(t), stepLabels())

	left, right := d.partition(0, 5)
	assert.Equal(t, []float64{1, 1, 1, 1, 1}, left.labelValues())
	assert.Equal(t, []float64{-1, -1, -1, -1, -1}, right.labelValues())

	// Nested partitions keep the alignment.
	ll, lr := left.partition(0, 2)
	assert.Equal(t, []int{0, 1}, ll.rows)
	assert.Equal(t, []int{2, 3, 4}, lr.rows)
	assert.Len(t, ll.labelValues(), 2)
}

func TestPartition_WithoutLabels(t *testing.T) {
	d, _ := trainingSet(t, stepFrame(t), nil)
	left, _ := d.partition(0, 5)
	assert.Nil(t, left.labelValues())
}

func assertSorted(t *testing.T, rows []int) {
	t.Helper()
	for i := 1; i < len(rows); i++ {
		assert.Less(t, rows[i-1], rows[i])
	}
}
