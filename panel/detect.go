package panel

import (
	"regexp"
	"strings"
)

// Format classifies a candidate block.
type Format uint8

const (
	FormatRejected Format = iota
	FormatOperationCommands
	FormatCommentWrapped
	FormatJSONObject
	FormatPlainAttributes
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatOperationCommands:
		return "operation_commands"
	case FormatCommentWrapped:
		return "comment_wrapped"
	case FormatJSONObject:
		return "json_object"
	case FormatPlainAttributes:
		return "plain_attributes"
	default:
		return "rejected"
	}
}

const (
	commentOpen  = "<!--"
	commentClose = "-->"
)

// directiveLineRe matches one operation command line.
var directiveLineRe = regexp.MustCompile(`(?i)^(add|update|delete)\s+(\w+)\(\s*(\d+)\s*(?:\{(.*)\})?\s*\)$`)

// attributeLineRe matches a panel label, a colon (ASCII or fullwidth), and
// at least one key="..." assignment on the remainder.
var attributeLineRe = regexp.MustCompile(`(?m)^\s*[^\s:：][^:：\n]*[:：].*=\s*"`)

// detectRule pairs a predicate with the format it classifies. Rules are
// evaluated in priority order; the first match wins.
type detectRule struct {
	name   string
	match  func(string) bool
	format Format
}

var detectRules = []detectRule{
	{"operation commands", hasDirectiveLine, FormatOperationCommands},
	{"comment wrapped", hasCommentSegment, FormatCommentWrapped},
	{"json object", looksJSONObject, FormatJSONObject},
	{"plain attributes", hasAttributeLine, FormatPlainAttributes},
}

// DetectFormat classifies a raw block. Blocks matching no rule, or
// matching the attribute rule while reading as narrative prose, are
// rejected; the engine maps that to a no-block outcome rather than an
// error.
func DetectFormat(block string) Format {
	for _, rule := range detectRules {
		if !rule.match(block) {
			continue
		}
		if rule.format == FormatPlainAttributes && looksNarrative(block) {
			return FormatRejected
		}
		return rule.format
	}
	return FormatRejected
}

func hasDirectiveLine(block string) bool {
	for _, line := range strings.Split(block, "\n") {
		if directiveLineRe.MatchString(strings.TrimSpace(line)) {
			return true
		}
	}
	return false
}

func hasCommentSegment(block string) bool {
	openIdx := strings.Index(block, commentOpen)
	if openIdx < 0 {
		return false
	}
	return strings.Contains(block[openIdx+len(commentOpen):], commentClose)
}

func hasAttributeLine(block string) bool {
	return attributeLineRe.MatchString(block)
}

// CommentSegments returns the contents of every <!-- ... --> pair in
// source order. Each segment is classified independently by the engine
// and all that validate are merged.
func CommentSegments(block string) []string {
	var segments []string
	rest := block
	for {
		openIdx := strings.Index(rest, commentOpen)
		if openIdx < 0 {
			break
		}
		rest = rest[openIdx+len(commentOpen):]
		closeIdx := strings.Index(rest, commentClose)
		if closeIdx < 0 {
			// Truncated final segment: keep what is there.
			if seg := strings.TrimSpace(rest); seg != "" {
				segments = append(segments, seg)
			}
			break
		}
		if seg := strings.TrimSpace(rest[:closeIdx]); seg != "" {
			segments = append(segments, seg)
		}
		rest = rest[closeIdx+len(commentClose):]
	}
	return segments
}

// narrativeMarkers are affect words and descriptive connectives that mark
// ordinary prose. A block that trips the attribute pattern on a stray
// quote but reads like narration must not be treated as malformed data.
var narrativeMarkers = []string{
	" suddenly ", " gently ", " whisper", " smiled", " frowned", " sighed",
	" gazed", " her eyes", " his eyes", " felt ", " seemed to ",
	"突然", "轻声", "微笑", "皱眉", "叹了口气", "眼神", "心中", "仿佛",
}

// looksNarrative reports whether a block is probably prose. It counts
// narrative markers and the share of lines that carry an attribute
// pattern; marker-heavy text with few data lines is narration.
func looksNarrative(block string) bool {
	markers := 0
	lower := strings.ToLower(block)
	for _, m := range narrativeMarkers {
		if strings.Contains(lower, m) {
			markers++
		}
	}
	if markers == 0 {
		return false
	}

	lines := strings.Split(block, "\n")
	attrLines := 0
	total := 0
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		total++
		if attributeLineRe.MatchString(line) {
			attrLines++
		}
	}
	if total == 0 {
		return true
	}
	// Mostly data lines: trust the data even if values mention feelings.
	return attrLines*3 < total
}
