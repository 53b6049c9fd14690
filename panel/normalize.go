package panel

import (
	"regexp"
	"strconv"
	"strings"
)

// entityPrefixRe matches an entity-indexed field key: entityN.fieldName.
var entityPrefixRe = regexp.MustCompile(`^entity(\d+)\.(.+)$`)

// entitySeparators split a comma-merged multi-entity value. Covers ASCII
// and East-Asian enumeration punctuation plus connective words.
var entitySeparators = []string{",", "，", "、", ";", "；", "/", " and ", "和", "与"}

// Normalize cleans a validated panel set in place semantics-wise but
// returns a fresh set: keys and values are trimmed, fields whose value is
// empty after trimming are dropped, and panels that model indexed
// sub-entities get their fields rewritten under entityN. prefixes.
//
// For a multi-entity panel with no entity prefix on any field, each value
// is inspected for separators. If at least one field splits into more
// than one segment, N is the maximum segment count across the panel's
// fields and every field is expanded to entity0..entityN-1, aligning
// positionally; a field with fewer segments repeats its last segment
// across the remaining indices rather than leaving gaps. Otherwise all
// fields belong to entity 0.
func Normalize(set ParsedPanelSet, schema *Schema) ParsedPanelSet {
	out := make(ParsedPanelSet, len(set))

	for id, fields := range set {
		cleaned := make(FieldMap, len(fields))
		for key, value := range fields {
			key = strings.TrimSpace(key)
			value = strings.TrimSpace(value)
			if key == "" || value == "" {
				continue
			}
			cleaned[key] = value
		}
		if len(cleaned) == 0 {
			continue
		}

		if schema.Panels[id].MultiEntity {
			cleaned = normalizeEntities(cleaned)
		}
		out[id] = cleaned
	}

	return out
}

// normalizeEntities rewrites a multi-entity panel's fields under entityN.
// prefixes. Fields that already carry a prefix are kept; the rest default
// to entity 0 — unless no field is prefixed at all, in which case the
// merge-splitting heuristic runs over the whole panel.
func normalizeEntities(fields FieldMap) FieldMap {
	anyPrefixed := false
	for key := range fields {
		if entityPrefixRe.MatchString(key) {
			anyPrefixed = true
			break
		}
	}

	if anyPrefixed {
		out := make(FieldMap, len(fields))
		for key, value := range fields {
			if entityPrefixRe.MatchString(key) {
				out[key] = value
			} else {
				out["entity0."+key] = value
			}
		}
		return out
	}

	// No prefixes anywhere: detect comma-merged values.
	segments := make(map[string][]string, len(fields))
	maxCount := 1
	for key, value := range fields {
		segs := SplitEntityValue(value)
		segments[key] = segs
		if len(segs) > maxCount {
			maxCount = len(segs)
		}
	}

	out := make(FieldMap, len(fields)*maxCount)
	if maxCount == 1 {
		for key, value := range fields {
			out["entity0."+key] = value
		}
		return out
	}

	for key, segs := range segments {
		for i := 0; i < maxCount; i++ {
			// Shorter fields repeat their last segment across the
			// remaining indices. Best effort: when segment counts
			// genuinely differ per field this can misattribute, but
			// a gap would be worse for the consumer.
			seg := segs[len(segs)-1]
			if i < len(segs) {
				seg = segs[i]
			}
			out["entity"+strconv.Itoa(i)+"."+key] = seg
		}
	}
	return out
}

// SplitEntityValue splits a merged value into its non-empty trimmed
// segments. A value with no separator comes back as a single segment.
func SplitEntityValue(value string) []string {
	parts := []string{value}
	for _, sep := range entitySeparators {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(p, sep)...)
		}
		parts = next
	}

	segs := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			segs = append(segs, p)
		}
	}
	if len(segs) == 0 {
		return []string{strings.TrimSpace(value)}
	}
	return segs
}
