package panel

import (
	"fmt"
	"strings"
)

// UnknownPanelError rejects a panel label that is not part of the schema
// snapshot. Accepting it would let the model silently invent new schema,
// so the whole block fails instead.
type UnknownPanelError struct {
	Panel   string
	Allowed []PanelID
}

func (e *UnknownPanelError) Error() string {
	return fmt.Sprintf("unknown panel %q, supported panels: %s", e.Panel, joinPanelIDs(e.Allowed))
}

// UnknownFieldError rejects a field key that is not enabled on its panel.
type UnknownFieldError struct {
	Panel   PanelID
	Field   string
	Allowed []string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("panel %q: unknown field %q, enabled fields: %s",
		e.Panel, e.Field, strings.Join(e.Allowed, ", "))
}

// ColumnRangeError rejects a directive column index outside the enabled
// field range of its panel.
type ColumnRangeError struct {
	Panel  PanelID
	Column int
	Max    int
}

func (e *ColumnRangeError) Error() string {
	return fmt.Sprintf("panel %q: column %d out of valid range 1-%d", e.Panel, e.Column, e.Max)
}

// MalformedDirectiveError rejects a whole operation command whose payload
// cannot be read (non-integer column literal, dangling column, ...).
// Unlike per-field malformation in attribute lines, this is surfaced: a
// directive is a contract the generator has violated.
type MalformedDirectiveError struct {
	Line   string
	Detail string
}

func (e *MalformedDirectiveError) Error() string {
	return fmt.Sprintf("malformed directive %q: %s", e.Line, e.Detail)
}

func joinPanelIDs(ids []PanelID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = string(id)
	}
	return strings.Join(parts, ", ")
}
