package panel

import (
	"reflect"
	"testing"
)

func TestParsePanelLines(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  RawPanels
	}{
		{
			"two panels",
			"personal: name=\"Alice\", hp=\"10\"\nworld: weather=\"rain\"",
			RawPanels{
				"personal": {"name": "Alice", "hp": "10"},
				"world":    {"weather": "rain"},
			},
		},
		{
			"split at first colon only",
			`note: time="12:30", place="dock"`,
			RawPanels{
				"note": {"time": "12:30", "place": "dock"},
			},
		},
		{
			"fullwidth colon",
			"角色：name=\"Alice\"",
			RawPanels{
				"角色": {"name": "Alice"},
			},
		},
		{
			"line with zero tokenized fields dropped",
			"personal: name=\"Alice\"\nbroken: no fields here\nalso no colon",
			RawPanels{
				"personal": {"name": "Alice"},
			},
		},
		{
			"same panel on two lines merges",
			"personal: name=\"Alice\"\npersonal: hp=\"10\"",
			RawPanels{
				"personal": {"name": "Alice", "hp": "10"},
			},
		},
		{
			"blank lines skipped",
			"\n\npersonal: name=\"Alice\"\n\n",
			RawPanels{
				"personal": {"name": "Alice"},
			},
		},
		{
			"empty label dropped",
			`: name="Alice"`,
			RawPanels{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePanelLines(tt.block)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParsePanelLines() = %v, want %v", got, tt.want)
			}
		})
	}
}
