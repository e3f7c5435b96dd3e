package calendar

import "testing"

func TestNewYearRange(t *testing.T) {
	r := NewYearRange(2026, 200, 100)
	if r.Start != 1826 || r.End != 2126 {
		t.Errorf("NewYearRange(2026, 200, 100) = %+v, want {1826 2126}", r)
	}
	if got := len(r.Years()); got != 301 {
		t.Errorf("len(Years()) = %d, want 301", got)
	}

	neg := NewYearRange(1448, -5, -5)
	if neg.Start != 1448 || neg.End != 1448 {
		t.Errorf("negative offsets = %+v, want {1448 1448}", neg)
	}
}

func TestYearRange_Contains(t *testing.T) {
	r := YearRange{Start: 1900, End: 2100}

	tests := []struct {
		year int
		want bool
	}{
		{1899, false},
		{1900, true},
		{2024, true},
		{2100, true},
		{2101, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.year); got != tt.want {
			t.Errorf("Contains(%d) = %v, want %v", tt.year, got, tt.want)
		}
	}
}

func TestYearRange_Years(t *testing.T) {
	years := YearRange{Start: 1445, End: 1447}.Years()
	if len(years) != 3 || years[0] != 1445 || years[2] != 1447 {
		t.Errorf("Years() = %v, want [1445 1446 1447]", years)
	}

	if got := (YearRange{Start: 5, End: 1}).Years(); got != nil {
		t.Errorf("inverted range Years() = %v, want nil", got)
	}
}
