package panel

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// looksJSONObject reports whether a block is plausibly one JSON object
// keyed by panel labels. Some generators ignore the attribute syntax and
// emit the region as JSON; it carries the same data, so it is accepted.
func looksJSONObject(block string) bool {
	block = strings.TrimSpace(block)
	return strings.HasPrefix(block, "{") && strings.HasSuffix(block, "}") &&
		strings.Contains(block, ":")
}

// ParseJSONBlock parses a JSON-object block into raw panels. If plain
// unmarshaling fails, the block is run through jsonrepair and retried;
// models truncate objects and confuse quote styles often enough that the
// repair path earns its keep.
func ParseJSONBlock(block string) (RawPanels, error) {
	var outer map[string]any
	if err := json.Unmarshal([]byte(block), &outer); err != nil {
		repaired, repairErr := jsonrepair.JSONRepair(block)
		if repairErr != nil {
			return nil, fmt.Errorf("parse json block: %w (repair also failed: %v)", err, repairErr)
		}
		if err := json.Unmarshal([]byte(repaired), &outer); err != nil {
			return nil, fmt.Errorf("parse repaired json block: %w", err)
		}
	}

	raw := make(RawPanels)
	for label, v := range outer {
		obj, ok := v.(map[string]any)
		if !ok {
			// A scalar at panel level has nowhere to go; skip the fragment.
			continue
		}
		fields := flattenObject(obj)
		if len(fields) > 0 {
			raw[label] = fields
		}
	}
	return raw, nil
}

// flattenObject stringifies one panel object. Nested objects flatten one
// level into child.key; arrays join with ", " so the normalizer's
// merge-splitting sees them the same way it sees comma-merged strings.
func flattenObject(obj map[string]any) FieldMap {
	fields := make(FieldMap, len(obj))
	for key, v := range obj {
		switch val := v.(type) {
		case map[string]any:
			for childKey, childVal := range val {
				if s, ok := stringifyScalar(childVal); ok {
					fields[key+"."+childKey] = s
				}
			}
		case []any:
			parts := make([]string, 0, len(val))
			for _, item := range val {
				if s, ok := stringifyScalar(item); ok {
					parts = append(parts, s)
				}
			}
			if len(parts) > 0 {
				fields[key] = strings.Join(parts, ", ")
			}
		default:
			if s, ok := stringifyScalar(v); ok {
				fields[key] = s
			}
		}
	}
	return fields
}

func stringifyScalar(v any) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, true
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	case nil:
		return "", false
	default:
		return "", false
	}
}
