package panel

import (
	"sort"
	"strings"
)

// PanelID identifies a named group of fields (a roster, an inventory, ...).
type PanelID string

// FieldDescriptor describes one field of a panel as the host currently
// exposes it. DisplayName is the label the model may use instead of Key.
type FieldDescriptor struct {
	Key         string
	DisplayName string
	Enabled     bool
}

// PanelSchema describes one panel: its ordered field list and whether the
// panel models a variable number of sub-entities (several NPCs,
// organizations, ...) whose values may arrive comma-merged.
type PanelSchema struct {
	Fields      []FieldDescriptor
	MultiEntity bool
}

// Schema is the read-only snapshot of which panels and fields are currently
// valid. It is supplied fresh on every parse call and never mutated or
// retained by the engine. Column indices in directives are 1-based
// positions into the enabled fields of a panel.
type Schema struct {
	Panels map[PanelID]PanelSchema
}

// Supports reports whether the panel is part of this snapshot. Matching is
// case-insensitive because models routinely capitalize panel labels.
func (s *Schema) Supports(id PanelID) bool {
	_, ok := s.Resolve(string(id))
	return ok
}

// Resolve maps a raw panel label to its canonical PanelID.
func (s *Schema) Resolve(label string) (PanelID, bool) {
	if s == nil {
		return "", false
	}
	if _, ok := s.Panels[PanelID(label)]; ok {
		return PanelID(label), true
	}
	for id := range s.Panels {
		if strings.EqualFold(string(id), label) {
			return id, true
		}
	}
	return "", false
}

// EnabledFields returns the ordered enabled fields of a panel. Directive
// column indices address this slice 1-based.
func (s *Schema) EnabledFields(id PanelID) []FieldDescriptor {
	ps, ok := s.Panels[id]
	if !ok {
		return nil
	}
	fields := make([]FieldDescriptor, 0, len(ps.Fields))
	for _, f := range ps.Fields {
		if f.Enabled {
			fields = append(fields, f)
		}
	}
	return fields
}

// SupportedPanels returns the sorted panel IDs of this snapshot.
func (s *Schema) SupportedPanels() []PanelID {
	if s == nil {
		return nil
	}
	ids := make([]PanelID, 0, len(s.Panels))
	for id := range s.Panels {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// FieldMap holds the key/value fields of one parsed panel.
type FieldMap map[string]string

// ParsedPanelSet maps each accepted panel to its fields. Every PanelID
// present is a member of the schema snapshot, and no FieldMap is empty.
type ParsedPanelSet map[PanelID]FieldMap

// OpKind is the verb of an operation command.
type OpKind uint8

const (
	OpAdd OpKind = iota
	OpUpdate
	OpDelete
)

// String returns the lowercase verb.
func (k OpKind) String() string {
	switch k {
	case OpAdd:
		return "add"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// OperationCommand is one imperative directive targeting a panel row.
// Fields maps 1-based column indices into the panel's enabled fields to
// their new values. An empty Fields map is valid (typical for delete).
type OperationCommand struct {
	Kind   OpKind         `json:"kind"`
	Panel  PanelID        `json:"panel"`
	Row    uint32         `json:"row"`
	Fields map[int]string `json:"fields,omitempty"`
}

// OutcomeKind tags the variants of a parse outcome.
type OutcomeKind uint8

const (
	// OutcomeNoBlock means no tag region or no classifiable format was
	// present. This is the normal case for ordinary prose, not an error.
	OutcomeNoBlock OutcomeKind = iota
	// OutcomePanels means attribute-style panel data was accepted.
	OutcomePanels
	// OutcomeDirectives means operation commands were accepted.
	OutcomeDirectives
	// OutcomeRejected means a block was found but violated the schema.
	OutcomeRejected
)

// String returns the outcome kind name.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeNoBlock:
		return "no_block"
	case OutcomePanels:
		return "panels"
	case OutcomeDirectives:
		return "directives"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Outcome is the result of one parse call.
//
// Kind names the primary variant. A comment-wrapped block whose segments
// yield both panel data and directives sets Kind to OutcomePanels and
// populates both Panels and Directives; callers that care about directives
// should check the slice regardless of Kind.
type Outcome struct {
	Kind       OutcomeKind        `json:"kind"`
	Panels     ParsedPanelSet     `json:"panels,omitempty"`
	Directives []OperationCommand `json:"directives,omitempty"`
	// Reason records why nothing was accepted (Kind NoBlock or Rejected).
	// It traces the final failure of the detection fallback chain.
	Reason string `json:"reason,omitempty"`
}

// NoBlock creates a no-data outcome with a traceable reason.
func NoBlock(reason string) *Outcome {
	return &Outcome{Kind: OutcomeNoBlock, Reason: reason}
}

// PanelData creates a panel-data outcome.
func PanelData(set ParsedPanelSet) *Outcome {
	return &Outcome{Kind: OutcomePanels, Panels: set}
}

// DirectiveSet creates a directives outcome.
func DirectiveSet(cmds []OperationCommand) *Outcome {
	return &Outcome{Kind: OutcomeDirectives, Directives: cmds}
}

// RejectedOutcome creates a schema-rejection outcome.
func RejectedOutcome(reason string) *Outcome {
	return &Outcome{Kind: OutcomeRejected, Reason: reason}
}
