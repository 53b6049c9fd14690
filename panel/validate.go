package panel

import "strings"

// ValidatePanels checks raw panel-parser output against the schema
// snapshot and canonicalizes labels and field keys.
//
// An unknown panel label is a hard rejection: the whole block fails with
// an UnknownPanelError naming the offender and the supported set. The
// same applies to field keys not enabled on their panel. Field keys match
// the descriptor's key or display name, case-insensitive, with an
// optional entityN. prefix carried through untouched.
func ValidatePanels(raw RawPanels, schema *Schema) (ParsedPanelSet, error) {
	set := make(ParsedPanelSet, len(raw))

	for label, fields := range raw {
		id, ok := schema.Resolve(label)
		if !ok {
			return nil, &UnknownPanelError{Panel: label, Allowed: schema.SupportedPanels()}
		}

		enabled := schema.EnabledFields(id)
		out := make(FieldMap, len(fields))
		for key, value := range fields {
			canonical, ok := resolveFieldKey(key, enabled)
			if !ok {
				return nil, &UnknownFieldError{Panel: id, Field: key, Allowed: enabledKeys(enabled)}
			}
			out[canonical] = value
		}
		if len(out) > 0 {
			set[id] = out
		}
	}

	return set, nil
}

// ValidateDirectives checks every command's panel and column indices.
// Any violation fails the whole batch; a partially valid mutation list
// must never reach the consumer.
func ValidateDirectives(cmds []OperationCommand, schema *Schema) ([]OperationCommand, error) {
	out := make([]OperationCommand, 0, len(cmds))

	for _, cmd := range cmds {
		id, ok := schema.Resolve(string(cmd.Panel))
		if !ok {
			return nil, &UnknownPanelError{Panel: string(cmd.Panel), Allowed: schema.SupportedPanels()}
		}
		max := len(schema.EnabledFields(id))
		for col := range cmd.Fields {
			if col < 1 || col > max {
				return nil, &ColumnRangeError{Panel: id, Column: col, Max: max}
			}
		}
		cmd.Panel = id
		out = append(out, cmd)
	}

	return out, nil
}

// resolveFieldKey maps a raw field key to the descriptor's canonical key.
// An entityN. prefix is preserved across the mapping.
func resolveFieldKey(key string, enabled []FieldDescriptor) (string, bool) {
	prefix := ""
	bare := key
	if m := entityPrefixRe.FindStringSubmatch(key); m != nil {
		prefix = key[:len(key)-len(m[2])]
		bare = m[2]
	}

	for _, f := range enabled {
		if strings.EqualFold(f.Key, bare) || (f.DisplayName != "" && strings.EqualFold(f.DisplayName, bare)) {
			return prefix + f.Key, true
		}
	}
	return "", false
}

func enabledKeys(enabled []FieldDescriptor) []string {
	keys := make([]string, len(enabled))
	for i, f := range enabled {
		keys[i] = f.Key
	}
	return keys
}
