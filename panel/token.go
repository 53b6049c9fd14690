package panel

import "strings"

// Pair is one tokenized (field key, value) datum, in source order.
type Pair struct {
	Key   string
	Value string
}

// TokenizeFields extracts name="value" pairs from one content line.
//
// The scan is a single O(n) pass over the bytes:
//  1. Skip whitespace and commas.
//  2. Accumulate until '=' to form the key; trim it.
//  3. The next non-space character must be '"'; otherwise the fragment is
//     malformed and skipped (local recovery, not an error).
//  4. Inside the value, '"' followed by another '"' is an escaped literal
//     quote; '"' followed by a comma, whitespace, or end of line closes
//     the value; any other '"' is copied through as content, which keeps
//     unbalanced nested quotes from derailing the rest of the line.
//
// When a line repeats a key, the later occurrence wins.
func TokenizeFields(line string) []Pair {
	var pairs []Pair
	n := len(line)
	i := 0

	for i < n {
		for i < n && (line[i] == ' ' || line[i] == '\t' || line[i] == ',') {
			i++
		}
		if i >= n {
			break
		}

		// Key runs up to '='. A trailing fragment with no '=' is noise.
		keyStart := i
		for i < n && line[i] != '=' {
			i++
		}
		if i >= n {
			break
		}
		key := strings.TrimSpace(line[keyStart:i])
		i++ // consume '='

		for i < n && (line[i] == ' ' || line[i] == '\t') {
			i++
		}
		if i >= n || line[i] != '"' {
			// Unquoted value: skip the fragment up to the next separator.
			for i < n && line[i] != ',' {
				i++
			}
			continue
		}
		i++ // consume opening quote

		var val strings.Builder
		for i < n {
			c := line[i]
			if c != '"' {
				val.WriteByte(c)
				i++
				continue
			}
			if i+1 < n && line[i+1] == '"' {
				val.WriteByte('"')
				i += 2
				continue
			}
			if i+1 >= n || line[i+1] == ',' || line[i+1] == ' ' || line[i+1] == '\t' {
				i++ // closing quote
				break
			}
			// Stray quote mid-value: treat as content.
			val.WriteByte('"')
			i++
		}

		if key != "" {
			pairs = setPair(pairs, key, val.String())
		}
	}

	return pairs
}

// setPair appends or, when the key already exists, overwrites in place.
func setPair(pairs []Pair, key, value string) []Pair {
	for i := range pairs {
		if pairs[i].Key == key {
			pairs[i].Value = value
			return pairs
		}
	}
	return append(pairs, Pair{Key: key, Value: value})
}

// FormatFields re-serializes pairs with the same quoting convention the
// tokenizer reads: values are quoted and internal quotes are doubled, so
// TokenizeFields(FormatFields(pairs)) reproduces the pairs.
func FormatFields(pairs []Pair) string {
	var b strings.Builder
	for i, p := range pairs {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.Key)
		b.WriteString(`="`)
		for j := 0; j < len(p.Value); j++ {
			if p.Value[j] == '"' {
				b.WriteString(`""`)
			} else {
				b.WriteByte(p.Value[j])
			}
		}
		b.WriteByte('"')
	}
	return b.String()
}
