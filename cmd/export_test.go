package cmd

import (
	"testing"
	"time"

	"github.com/dq-aem-sibaram/dq-timesheet/internal/grid"
)

func TestCSVEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Dev", "Dev"},
		{"", ""},
		{"Sprint, phase 2", `"Sprint, phase 2"`},
		{`say "hi"`, `"say ""hi"""`},
		{"line\nbreak", "\"line\nbreak\""},
	}
	for _, tt := range tests {
		if got := csvEscape(tt.in); got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveDate(t *testing.T) {
	g := grid.New(time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC))

	tests := []struct {
		arg     string
		want    string
		wantErr bool
	}{
		{"2024-06-05", "2024-06-05", false},
		{"wed", "2024-06-05", false},
		{"Wednesday", "2024-06-05", false},
		{"fri", "2024-06-07", false},
		{"2024-06-10", "", true}, // next week
		{"someday", "", true},
	}
	for _, tt := range tests {
		got, err := resolveDate(g, tt.arg)
		if tt.wantErr {
			if err == nil {
				t.Errorf("resolveDate(%q) succeeded, want error", tt.arg)
			}
			continue
		}
		if err != nil {
			t.Errorf("resolveDate(%q): %v", tt.arg, err)
			continue
		}
		if got != tt.want {
			t.Errorf("resolveDate(%q) = %s, want %s", tt.arg, got, tt.want)
		}
	}
}
