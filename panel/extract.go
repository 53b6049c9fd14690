package panel

import "strings"

// DefaultTag is the tag name delimiting the panel-data region.
const DefaultTag = "infobar"

// minPartialBlock is the minimum trimmed length for a block captured with
// only one of its two tags present. Shorter remainders are almost always
// a stray mention of the tag inside prose, not truncated data.
const minPartialBlock = 20

// ExtractRegion locates the tag-delimited substring of a message.
//
// Both tags present: the trimmed text between them. Only the opening tag:
// the remainder of the message, accepted when plausibly long (the model
// was cut off before closing). Only the closing tag: the prefix, same
// rule. Neither: not found, which is the normal no-data case.
func ExtractRegion(text, tag string) (string, bool) {
	openTag := "<" + tag + ">"
	closeTag := "</" + tag + ">"

	openIdx := strings.Index(text, openTag)
	if openIdx >= 0 {
		rest := text[openIdx+len(openTag):]
		closeIdx := strings.Index(rest, closeTag)
		if closeIdx >= 0 {
			return strings.TrimSpace(rest[:closeIdx]), true
		}
		block := strings.TrimSpace(rest)
		if len(block) >= minPartialBlock {
			return block, true
		}
		return "", false
	}

	closeIdx := strings.Index(text, closeTag)
	if closeIdx >= 0 {
		block := strings.TrimSpace(text[:closeIdx])
		if len(block) >= minPartialBlock {
			return block, true
		}
	}

	return "", false
}
