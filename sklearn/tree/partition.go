package tree

// partition splits the view on feature: rows with value <= threshold go
// left, the rest go right. Both sides keep the input row order.
func (d *dataset) partition(feature int, threshold float64) (left, right *dataset) {
	values := d.values[feature]
	leftRows := make([]int, 0, len(d.rows))
	rightRows := make([]int, 0, len(d.rows))
	for _, r := range d.rows {
		if values[r] <= threshold {
			leftRows = append(leftRows, r)
		} else {
			rightRows = append(rightRows, r)
		}
	}
	return d.subset(leftRows), d.subset(rightRows)
}
