package panel

import (
	"strconv"
	"strings"
)

// ParseDirectives reads every operation-command line of a block.
//
// A matching line has the shape
//
//	add|update|delete <panel>(<row> {"<col>","<value>", ...})
//
// case-insensitive, with an optional {...} payload (absent payloads are
// valid, typical for delete). Non-matching lines are skipped; a matching
// line with an unreadable payload fails the whole parse, because a half
// understood mutation must not be applied.
func ParseDirectives(block string) ([]OperationCommand, error) {
	var cmds []OperationCommand

	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := directiveLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		cmd := OperationCommand{Panel: PanelID(m[2])}
		switch strings.ToLower(m[1]) {
		case "add":
			cmd.Kind = OpAdd
		case "update":
			cmd.Kind = OpUpdate
		case "delete":
			cmd.Kind = OpDelete
		}

		row, err := strconv.ParseUint(m[3], 10, 32)
		if err != nil {
			return nil, &MalformedDirectiveError{Line: line, Detail: "row is not a 32-bit integer"}
		}
		cmd.Row = uint32(row)

		if payload := strings.TrimSpace(m[4]); payload != "" {
			fields, err := parseDirectivePayload(line, payload)
			if err != nil {
				return nil, err
			}
			cmd.Fields = fields
		}

		cmds = append(cmds, cmd)
	}

	return cmds, nil
}

// parseDirectivePayload reads alternating "column","value" literals.
func parseDirectivePayload(line, payload string) (map[int]string, error) {
	items := splitQuotedCSV(payload)
	if len(items)%2 != 0 {
		return nil, &MalformedDirectiveError{Line: line, Detail: "payload has a column with no value"}
	}

	fields := make(map[int]string, len(items)/2)
	for i := 0; i < len(items); i += 2 {
		colLit := unquoteLiteral(items[i])
		col, err := strconv.Atoi(strings.TrimSpace(colLit))
		if err != nil || col <= 0 {
			return nil, &MalformedDirectiveError{
				Line:   line,
				Detail: "column " + strconv.Quote(colLit) + " is not a positive integer",
			}
		}
		fields[col] = unquoteLiteral(items[i+1])
	}
	return fields, nil
}

// splitQuotedCSV splits on commas that are not inside double quotes.
// A doubled "" inside a quoted section is an escaped quote, not a close.
func splitQuotedCSV(s string) []string {
	var items []string
	var current strings.Builder
	inQuote := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"':
			if inQuote && i+1 < len(s) && s[i+1] == '"' {
				current.WriteString(`""`)
				i++
				continue
			}
			inQuote = !inQuote
			current.WriteByte(c)
		case c == ',' && !inQuote:
			items = append(items, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteByte(c)
		}
	}
	if current.Len() > 0 || len(items) > 0 {
		items = append(items, strings.TrimSpace(current.String()))
	}

	// A trailing comma leaves one empty item; drop it.
	for len(items) > 0 && items[len(items)-1] == "" {
		items = items[:len(items)-1]
	}
	return items
}

// unquoteLiteral strips surrounding quotes and collapses doubled quotes.
// Unquoted literals pass through trimmed (tolerance for bare payloads).
func unquoteLiteral(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return strings.ReplaceAll(s, `""`, `"`)
}
