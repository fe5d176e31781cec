package transform

import (
	"context"
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ExtractSubframe extracts a contiguous rectangular region of non-empty
// cells from a raw frame, such as the actual table inside an Excel sheet
// surrounded by junk headers and footers. Fit locates the region; Transform
// slices it out. This transform filters rows and columns by design.
type ExtractSubframe struct {
	// Region selects which contiguous region to extract, counted in
	// scan order from the top-left, starting at 1. Zero selects the region
	// with the largest bounding box.
	Region int
	// Header promotes the first row of the region to column names.
	Header bool

	top, left, bottom, right int
	fitted                   bool
}

type region struct {
	top, left, bottom, right int
}

func (r region) area() int {
	return (r.bottom - r.top + 1) * (r.right - r.left + 1)
}

// Fit seeks contiguous regions of non-empty cells and remembers the bounding
// box of the selected one.
func (t *ExtractSubframe) Fit(_ context.Context, x dataframe.DataFrame) error {
	grid := dataRows(x)
	regions := findRegions(grid)
	if len(regions) == 0 {
		return fmt.Errorf("frame contains no non-empty region")
	}

	selected := 0
	if t.Region > 0 {
		if t.Region > len(regions) {
			return fmt.Errorf("region %d requested but only %d found", t.Region, len(regions))
		}
		selected = t.Region - 1
	} else {
		for i, r := range regions {
			if r.area() > regions[selected].area() {
				selected = i
			}
		}
	}

	r := regions[selected]
	t.top, t.left, t.bottom, t.right = r.top, r.left, r.bottom, r.right
	t.fitted = true
	return nil
}

// Transform slices the fitted region out of x.
func (t *ExtractSubframe) Transform(_ context.Context, x dataframe.DataFrame) (dataframe.DataFrame, error) {
	if !t.fitted {
		return dataframe.DataFrame{}, fmt.Errorf("subframe extractor is not fitted")
	}

	grid := dataRows(x)
	var records [][]string
	for i := t.top; i <= t.bottom && i < len(grid); i++ {
		row := make([]string, 0, t.right-t.left+1)
		for j := t.left; j <= t.right; j++ {
			if j < len(grid[i]) {
				row = append(row, grid[i][j])
			} else {
				row = append(row, "")
			}
		}
		records = append(records, row)
	}

	y := dataframe.LoadRecords(
		records,
		dataframe.HasHeader(t.Header),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	return y, y.Err
}

// dataRows returns the data cells of a frame as a string grid, without the
// column-name row gota prepends to Records.
func dataRows(x dataframe.DataFrame) [][]string {
	records := x.Records()
	if len(records) == 0 {
		return nil
	}
	return records[1:]
}

func empty(cell string) bool {
	return cell == "" || cell == "NaN"
}

// findRegions labels 4-connected components of non-empty cells and returns
// their bounding boxes in scan order.
func findRegions(grid [][]string) []region {
	height := len(grid)
	seen := make([][]bool, height)
	for i := range seen {
		seen[i] = make([]bool, len(grid[i]))
	}

	var regions []region
	for i := 0; i < height; i++ {
		for j := 0; j < len(grid[i]); j++ {
			if seen[i][j] || empty(grid[i][j]) {
				continue
			}
			regions = append(regions, flood(grid, seen, i, j))
		}
	}
	return regions
}

func flood(grid [][]string, seen [][]bool, i, j int) region {
	r := region{top: i, left: j, bottom: i, right: j}
	queue := [][2]int{{i, j}}
	seen[i][j] = true

	for len(queue) > 0 {
		cell := queue[0]
		queue = queue[1:]
		y, x := cell[0], cell[1]

		if y < r.top {
			r.top = y
		}
		if y > r.bottom {
			r.bottom = y
		}
		if x < r.left {
			r.left = x
		}
		if x > r.right {
			r.right = x
		}

		for _, next := range [][2]int{{y - 1, x}, {y + 1, x}, {y, x - 1}, {y, x + 1}} {
			ny, nx := next[0], next[1]
			if ny < 0 || ny >= len(grid) || nx < 0 || nx >= len(grid[ny]) {
				continue
			}
			if seen[ny][nx] || empty(grid[ny][nx]) {
				continue
			}
			seen[ny][nx] = true
			queue = append(queue, next)
		}
	}
	return r
}
