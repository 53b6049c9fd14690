package panel

import "strings"

// RawPanels is panel-parser output before schema validation: labels are
// still the model's spelling and fields are untrusted.
type RawPanels map[string]FieldMap

// ParsePanelLines splits an attribute-style block into per-panel lines.
// Each non-empty line with a colon is split at the first colon into
// (panel label, remainder); the remainder is tokenized into fields. A
// line whose remainder yields no fields is dropped, as is a line with no
// colon at all (local recovery for stray fragments).
func ParsePanelLines(block string) RawPanels {
	raw := make(RawPanels)

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		label, remainder, ok := splitAtColon(line)
		if !ok {
			continue
		}
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}

		pairs := TokenizeFields(remainder)
		if len(pairs) == 0 {
			continue
		}

		fields := raw[label]
		if fields == nil {
			fields = make(FieldMap, len(pairs))
			raw[label] = fields
		}
		for _, p := range pairs {
			fields[p.Key] = p.Value
		}
	}

	return raw
}

// splitAtColon splits at the first ASCII or fullwidth colon.
func splitAtColon(line string) (label, remainder string, ok bool) {
	ascii := strings.Index(line, ":")
	wide := strings.Index(line, "：")
	switch {
	case ascii < 0 && wide < 0:
		return "", "", false
	case ascii < 0 || (wide >= 0 && wide < ascii):
		return line[:wide], line[wide+len("："):], true
	default:
		return line[:ascii], line[ascii+1:], true
	}
}
