// Package panel extracts structured panel data from model-generated prose.
//
// A host application asks a language model to append a tag-delimited block
// of world/character state to its replies. The block is unreliable: it may
// be wrapped in HTML comment markers or not, truncated on either side, and
// written in one of several syntaxes. This package recovers it:
//   - Region extraction tolerates a missing open or close tag
//   - Format detection classifies attribute lines, operation commands,
//     comment-wrapped segments, and raw JSON objects, and rejects prose
//   - A nested-quote-aware tokenizer reads key="value" lines where a
//     doubled "" is a literal quote
//   - Directive parsing handles add/update/delete panel(row {...}) commands
//   - Schema validation rejects hallucinated panels and fields outright,
//     with structured errors naming the offender and the allowed set
//   - Normalization splits comma-merged multi-entity values into indexed
//     entityN.field sub-records
//
// # Fail-loud validation
//
// Unknown panels, unknown fields, and out-of-range directive columns are
// never silently dropped. They reject the whole block and surface a typed
// error so the upstream generator can be corrected, preventing model-driven
// schema drift. Per-field malformation, by contrast, is recovered locally:
// a broken fragment is skipped and parsing continues.
//
// # Example
//
//	eng := panel.New(panel.WithTag("infobar"))
//	outcome, err := eng.Parse(messageText, schema, panel.MessageID("msg-42"))
//	if err != nil {
//		// schema violation: surface it upstream
//	}
//	if outcome.Kind == panel.OutcomePanels {
//		// outcome.Panels holds validated, normalized panel data
//	}
//
// The engine is a pure in-process library: it owns no network, file, or
// process boundary, never calls a model, and reads the schema snapshot
// passed into each call rather than any ambient state.
package panel
