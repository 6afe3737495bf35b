package engine

import "testing"

func TestFilters(t *testing.T) {
	tests := []struct {
		name    string
		run     []string
		skip    []string
		allowed []string
		denied  []string
	}{
		{
			name:    "no filters",
			allowed: []string{"valid_coordinates", "city_by_name"},
		},
		{
			name:    "run only",
			run:     []string{"^(max|min)_"},
			allowed: []string{"max_latitude", "min_longitude"},
			denied:  []string{"valid_coordinates"},
		},
		{
			name:    "skip only",
			skip:    []string{"api_key"},
			allowed: []string{"valid_coordinates"},
			denied:  []string{"missing_api_key", "invalid_api_key"},
		},
		{
			name:    "skip wins over run",
			run:     []string{"coordinates"},
			skip:    []string{"^invalid_"},
			allowed: []string{"valid_coordinates"},
			denied:  []string{"invalid_coordinates", "city_by_name"},
		},
		{
			name:    "repeated run patterns",
			run:     []string{"^city_", "^wind_"},
			allowed: []string{"city_by_name", "wind_speed_boundaries"},
			denied:  []string{"temperature_extremes"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := NewFilters(tt.run, tt.skip)
			if err != nil {
				t.Fatalf("NewFilters: %v", err)
			}
			for _, id := range tt.allowed {
				if !f.Allows(id) {
					t.Errorf("expected %s to be allowed", id)
				}
			}
			for _, id := range tt.denied {
				if f.Allows(id) {
					t.Errorf("expected %s to be filtered out", id)
				}
			}
		})
	}
}

func TestNewFilters_InvalidRegex(t *testing.T) {
	if _, err := NewFilters([]string{"("}, nil); err == nil {
		t.Fatalf("expected error")
	}
}

func TestDescribeFilters(t *testing.T) {
	f, _ := NewFilters([]string{"a", "b"}, []string{"c"})
	want := `skip any not matching "a" or "b"; skip any matching "c"`
	if got := describeFilters(f); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if !f.IsDefined() {
		t.Fatalf("expected filters to be defined")
	}
	if (Filters{}).IsDefined() {
		t.Fatalf("zero filters should not be defined")
	}
}
