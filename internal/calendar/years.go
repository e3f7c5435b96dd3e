package calendar

// YearRange is an inclusive span of years offered for selection.
type YearRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// NewYearRange returns the span from past years before current to future
// years after it. Negative offsets are treated as zero.
func NewYearRange(current, past, future int) YearRange {
	return YearRange{Start: current - max(past, 0), End: current + max(future, 0)}
}

// Contains reports whether year falls inside r.
func (r YearRange) Contains(year int) bool {
	return year >= r.Start && year <= r.End
}

// Years lists every year in r in ascending order.
func (r YearRange) Years() []int {
	if r.End < r.Start {
		return nil
	}
	years := make([]int, 0, r.End-r.Start+1)
	for y := r.Start; y <= r.End; y++ {
		years = append(years, y)
	}
	return years
}
