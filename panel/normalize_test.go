package panel

import (
	"reflect"
	"testing"
)

func TestNormalize_MergeSplitting(t *testing.T) {
	schema := testSchema()

	tests := []struct {
		name   string
		fields FieldMap
		want   FieldMap
	}{
		{
			"comma merged values split positionally",
			FieldMap{"name": "Alice, Bob", "hp": "10, 8"},
			FieldMap{
				"entity0.name": "Alice", "entity1.name": "Bob",
				"entity0.hp": "10", "entity1.hp": "8",
			},
		},
		{
			"shorter field repeats its value",
			FieldMap{"name": "Alice, Bob", "mood": "calm"},
			FieldMap{
				"entity0.name": "Alice", "entity1.name": "Bob",
				"entity0.mood": "calm", "entity1.mood": "calm",
			},
		},
		{
			"shorter field repeats its last segment",
			FieldMap{"name": "Alice, Bob, Carol", "hp": "10, 8"},
			FieldMap{
				"entity0.name": "Alice", "entity1.name": "Bob", "entity2.name": "Carol",
				"entity0.hp": "10", "entity1.hp": "8", "entity2.hp": "8",
			},
		},
		{
			"no separators means single entity",
			FieldMap{"name": "Alice", "hp": "10"},
			FieldMap{"entity0.name": "Alice", "entity0.hp": "10"},
		},
		{
			"east asian enumeration comma",
			FieldMap{"name": "张三、李四"},
			FieldMap{"entity0.name": "张三", "entity1.name": "李四"},
		},
		{
			"connective word",
			FieldMap{"name": "Alice and Bob"},
			FieldMap{"entity0.name": "Alice", "entity1.name": "Bob"},
		},
		{
			"slash separator",
			FieldMap{"name": "Alice/Bob"},
			FieldMap{"entity0.name": "Alice", "entity1.name": "Bob"},
		},
		{
			"prefixed fields kept and bare fields default to entity 0",
			FieldMap{"entity1.name": "Bob", "hp": "10"},
			FieldMap{"entity1.name": "Bob", "entity0.hp": "10"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(ParsedPanelSet{"roster": tt.fields}, schema)
			want := ParsedPanelSet{"roster": tt.want}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("Normalize() = %v, want %v", got, want)
			}
		})
	}
}

func TestNormalize_SingleEntityPanelUntouched(t *testing.T) {
	schema := testSchema()
	// The personal panel is not multi-entity: merged-looking values pass
	// through without entity prefixes.
	got := Normalize(ParsedPanelSet{"personal": {"name": "Alice, Bob"}}, schema)
	want := ParsedPanelSet{"personal": {"name": "Alice, Bob"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestNormalize_TrimAndDrop(t *testing.T) {
	schema := testSchema()

	got := Normalize(ParsedPanelSet{
		"world":    {"weather": "  rain  ", "time": "   "},
		"personal": {"name": ""},
	}, schema)
	want := ParsedPanelSet{
		"world": {"weather": "rain"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize() = %v, want %v", got, want)
	}
}

func TestSplitEntityValue(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  []string
	}{
		{"plain", "Alice", []string{"Alice"}},
		{"comma", "a, b, c", []string{"a", "b", "c"}},
		{"fullwidth comma", "a，b", []string{"a", "b"}},
		{"semicolons", "a; b；c", []string{"a", "b", "c"}},
		{"mixed separators", "a, b/c", []string{"a", "b", "c"}},
		{"empty segments dropped", "a, , b", []string{"a", "b"}},
		{"only separators falls back to the raw value", ", ,", []string{", ,"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitEntityValue(tt.value)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitEntityValue(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}
