package panel

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// Engine is the extraction-and-validation engine. It is safe for
// concurrent use; the only state shared across calls is the bounded
// outcome cache, which serializes its own access. The schema snapshot is
// a per-call parameter and is never retained.
type Engine struct {
	tag          string
	cache        *Cache
	log          zerolog.Logger
	metrics      *Metrics
	onPanels     func(ParsedPanelSet, int)
	onDirectives func([]OperationCommand, int)
}

// Option configures an Engine.
type Option func(*Engine)

// WithTag sets the tag name delimiting the panel-data region.
func WithTag(tag string) Option {
	return func(e *Engine) { e.tag = tag }
}

// WithLogger sets the structured logger. Default is a no-op logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithMetrics sets the metrics collectors. Default collectors register on
// a private registry; pass NewMetrics with your registerer to export.
func WithMetrics(m *Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithCacheCapacity bounds the outcome cache.
func WithCacheCapacity(capacity int) Option {
	return func(e *Engine) { e.cache = NewCache(capacity) }
}

// OnPanels registers a callback invoked after every successful panel
// parse with the validated set and its panel count. Downstream
// persistence hangs off this hook.
func OnPanels(fn func(ParsedPanelSet, int)) Option {
	return func(e *Engine) { e.onPanels = fn }
}

// OnDirectives registers a callback invoked after every successful
// directive parse with the commands and their count.
func OnDirectives(fn func([]OperationCommand, int)) Option {
	return func(e *Engine) { e.onDirectives = fn }
}

// New creates an engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		tag:   DefaultTag,
		cache: NewCache(DefaultCacheCapacity),
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.metrics == nil {
		e.metrics = NewMetrics(prometheus.NewRegistry())
	}
	return e
}

// Parse extracts, classifies, validates, and normalizes the panel data
// carried by one message.
//
// The returned error is non-nil only for contract violations the caller
// must surface upstream: unknown panels or fields, out-of-range directive
// columns, malformed directive payloads. Everything else degrades to a
// no-block outcome. A panic anywhere in the pipeline is contained,
// counted, and reported as no-block.
//
// A non-empty msgID enables caching: the same message text under the same
// ID returns the stored outcome without re-parsing.
func (e *Engine) Parse(text string, schema *Schema, msgID MessageID) (outcome *Outcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Error().Str("panic", fmt.Sprint(r)).Msg("parse failed internally")
			e.metrics.InternalFailures.Inc()
			outcome = NoBlock("internal parse failure")
			err = nil
		}
	}()

	var hash Digest
	if msgID != "" {
		hash = ContentHash(text)
		if cached, cachedErr, ok := e.cache.Get(msgID, hash); ok {
			e.metrics.CacheHits.Inc()
			return cached, cachedErr
		}
	}

	outcome, err = e.parseOnce(text, schema)
	e.metrics.ParsesTotal.WithLabelValues(outcome.Kind.String()).Inc()
	if err != nil {
		e.metrics.SchemaViolations.Inc()
		e.log.Warn().Err(err).Msg("block rejected by schema")
	}

	if msgID != "" {
		if e.cache.Put(msgID, hash, outcome, err) {
			e.metrics.CacheEvictions.Inc()
		}
	}

	if err == nil {
		e.notify(outcome)
	}
	return outcome, err
}

// ClearCache drops every cached outcome. Hosts call this on session or
// chat-context boundaries.
func (e *Engine) ClearCache() {
	e.cache.Clear()
}

func (e *Engine) parseOnce(text string, schema *Schema) (*Outcome, error) {
	block, ok := ExtractRegion(text, e.tag)
	if !ok {
		return NoBlock("no tag region"), nil
	}
	return e.parseBlock(block, schema, true)
}

// parseBlock runs the classification fallback chain on one block. Each
// branch reports its own failure reason so the final no-block outcome is
// traceable instead of silently falling through.
func (e *Engine) parseBlock(block string, schema *Schema, allowComments bool) (*Outcome, error) {
	switch format := DetectFormat(block); format {
	case FormatOperationCommands:
		cmds, err := ParseDirectives(block)
		if err != nil {
			return RejectedOutcome(err.Error()), err
		}
		cmds, err = ValidateDirectives(cmds, schema)
		if err != nil {
			return RejectedOutcome(err.Error()), err
		}
		if len(cmds) == 0 {
			return NoBlock("no parsable directives"), nil
		}
		return DirectiveSet(cmds), nil

	case FormatCommentWrapped:
		if !allowComments {
			return NoBlock("nested comment markers"), nil
		}
		return e.parseSegments(CommentSegments(block), schema)

	case FormatJSONObject:
		raw, err := ParseJSONBlock(block)
		if err != nil {
			// Unreadable JSON is handled like any malformed fragment:
			// recovered locally, reported as no data.
			e.log.Debug().Err(err).Msg("json block unreadable")
			return NoBlock("unreadable json block"), nil
		}
		return e.acceptPanels(raw, schema)

	case FormatPlainAttributes:
		return e.acceptPanels(ParsePanelLines(block), schema)

	default:
		e.log.Debug().Msg("block rejected as narrative")
		return NoBlock("content reads as narrative, not panel data"), nil
	}
}

// parseSegments classifies every comment segment independently and merges
// all that validate: panel maps union (later segments win on collision),
// directives concatenate in source order. A schema violation in any
// segment rejects the whole parse.
func (e *Engine) parseSegments(segments []string, schema *Schema) (*Outcome, error) {
	merged := make(ParsedPanelSet)
	var directives []OperationCommand

	for _, seg := range segments {
		out, err := e.parseBlock(seg, schema, false)
		if err != nil {
			return out, err
		}
		switch out.Kind {
		case OutcomePanels:
			for id, fields := range out.Panels {
				if existing, ok := merged[id]; ok {
					for k, v := range fields {
						existing[k] = v
					}
				} else {
					merged[id] = fields
				}
			}
			directives = append(directives, out.Directives...)
		case OutcomeDirectives:
			directives = append(directives, out.Directives...)
		}
	}

	switch {
	case len(merged) > 0:
		out := PanelData(merged)
		out.Directives = directives
		return out, nil
	case len(directives) > 0:
		return DirectiveSet(directives), nil
	default:
		return NoBlock("no comment segment classified as panel data"), nil
	}
}

// acceptPanels runs validation and normalization over raw panel output.
func (e *Engine) acceptPanels(raw RawPanels, schema *Schema) (*Outcome, error) {
	if len(raw) == 0 {
		return NoBlock("no panel lines tokenized"), nil
	}

	set, err := ValidatePanels(raw, schema)
	if err != nil {
		return RejectedOutcome(err.Error()), err
	}

	set = Normalize(set, schema)
	if len(set) == 0 {
		return NoBlock("every field emptied by normalization"), nil
	}
	return PanelData(set), nil
}

func (e *Engine) notify(outcome *Outcome) {
	if outcome.Kind == OutcomePanels && e.onPanels != nil {
		e.onPanels(outcome.Panels, len(outcome.Panels))
	}
	if len(outcome.Directives) > 0 && e.onDirectives != nil {
		e.onDirectives(outcome.Directives, len(outcome.Directives))
	}
}
