package session

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/roach88/predlog/internal/document"
	"github.com/roach88/predlog/internal/rules"
)

// Recorder receives session lifecycle events for diagnostics.
// Implemented by journal.Journal; nil disables recording.
type Recorder interface {
	RecordScan(ctx context.Context, sessionID, generation string, mismatches int) error
	RecordResolution(ctx context.Context, sessionID, kind, tokenText, suggestion string) error
}

// Session owns the mismatch queue for one open document.
//
// A Session is created once per open document and discarded when the
// document closes. It holds Location handles but never owns them; the
// Document Access keeps them addressable across edits.
//
// Thread-safety model:
//   - Scan() is single-flight: concurrent calls are dropped silently
//   - all other operations run to completion before the caller can issue
//     the next one (host UI semantics), so they carry no guard
type Session struct {
	doc      document.Access
	cfg      Config
	queue    mismatchQueue
	flagged  []document.Location
	scanning atomic.Bool
	tokens   TokenGenerator
	recorder Recorder
	log      *slog.Logger
	id       string
}

// Option configures a Session at construction.
type Option func(*Session)

// WithLogger sets the session logger. Default: slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithRecorder attaches a diagnostics recorder (e.g. a journal).
func WithRecorder(r Recorder) Option {
	return func(s *Session) { s.recorder = r }
}

// WithTokenGenerator overrides the identity token source.
// Default: UUIDv7Generator. Tests use FixedGenerator; note that the first
// token is consumed for the session ID itself.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(s *Session) { s.tokens = g }
}

// New creates a Session over the given document.
// Zero-value Config fields fall back to DefaultConfig equivalents.
func New(doc document.Access, cfg Config, opts ...Option) *Session {
	def := DefaultConfig()
	if len(cfg.Pairs) == 0 {
		cfg.Pairs = def.Pairs
	}
	if cfg.Scope == 0 {
		cfg.Scope = def.Scope
	}
	if cfg.Highlight == "" {
		cfg.Highlight = def.Highlight
	}

	s := &Session{
		doc:    doc,
		cfg:    cfg,
		tokens: UUIDv7Generator{},
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.id = s.tokens.Generate()
	return s
}

// ID returns the session's identity token.
func (s *Session) ID() string {
	return s.id
}

// QueueLen returns the number of unresolved mismatches.
func (s *Session) QueueLen() int {
	return s.queue.len()
}

// Queue returns a copy of the unresolved mismatches in document order.
func (s *Session) Queue() []Mismatch {
	return s.queue.all()
}

// Scan rebuilds the mismatch queue from the current document.
//
// A scan requested while one is in flight is dropped silently (zero result,
// nil error): two overlapping scans would race on document mutations.
//
// On failure the queue is left empty, the error reports the failing phase,
// and the session stays usable for a retry. Flags issued before the failure
// stay tracked so the next scan's clear pass removes them.
func (s *Session) Scan(ctx context.Context) (ScanResult, error) {
	if !s.scanning.CompareAndSwap(false, true) {
		s.log.Debug("scan already in flight, request dropped", "session", s.id)
		return ScanResult{}, nil
	}
	defer s.scanning.Store(false)

	generation := s.tokens.Generate()
	s.log.Debug("scan starting", "session", s.id, "generation", generation)

	res, err := s.scan(ctx)
	if err != nil {
		s.queue.reset()
		s.log.Error("scan failed", "session", s.id, "error", err)
		return ScanResult{}, err
	}

	s.record(ctx, func() error {
		return s.recorder.RecordScan(ctx, s.id, generation, res.Count)
	})
	return res, nil
}

func (s *Session) scan(ctx context.Context) (ScanResult, error) {
	// Clear flags left by the previous generation. Idempotent: clearing
	// an unflagged location is a no-op at the document.
	for _, loc := range s.flagged {
		if err := s.doc.SetHighlight(ctx, loc, ""); err != nil {
			return ScanResult{}, newScanError("scan", "failed to clear previous flags", err)
		}
	}
	if err := s.doc.Sync(ctx); err != nil {
		return ScanResult{}, newScanError("scan", "flag clear sync failed", err)
	}
	s.flagged = nil
	s.queue.reset()

	cands, err := s.collectCandidates(ctx)
	if err != nil {
		return ScanResult{}, err
	}

	for _, c := range cands {
		next, err := s.nextWord(ctx, c.loc)
		if err != nil {
			return ScanResult{}, err
		}
		if next == "" {
			continue // end of paragraph or document
		}
		expected, ok := rules.Expected(next, c.pair)
		if !ok {
			continue // no opinion: routine skip, never an error
		}
		if strings.EqualFold(expected, c.text) {
			continue
		}
		s.queue.push(Mismatch{
			Token:      Token{Text: c.text, Location: c.loc, NextWord: next},
			Suggestion: rules.Suggestion(c.text, expected),
		})
	}

	for _, m := range s.queue.all() {
		if err := s.doc.SetHighlight(ctx, m.Token.Location, s.cfg.Highlight); err != nil {
			return ScanResult{}, newScanError("scan", "failed to flag mismatch", err)
		}
		// Tracked as soon as the op is issued: a flag queued at the
		// document outlives a failure later in this scan, and the next
		// scan's clear pass must cover it.
		s.flagged = append(s.flagged, m.Token.Location)
	}
	if err := s.doc.Sync(ctx); err != nil {
		return ScanResult{}, newScanError("scan", "flag sync failed", err)
	}

	head, ok := s.queue.head()
	if !ok {
		s.log.Info("scan complete: no mismatches", "session", s.id)
		return ScanResult{}, nil
	}

	s.focus(ctx, head.Token.Location)
	s.log.Info("scan complete", "session", s.id, "mismatches", s.queue.len())
	return ScanResult{Count: s.queue.len(), First: &head}, nil
}

// candidate is a surviving whole-word hit awaiting judgment.
type candidate struct {
	text string
	loc  document.Location
	pair rules.Pair
}

// collectCandidates searches every configured letter, merges the hits into
// document order, and keeps only exact single-letter tokens.
func (s *Session) collectCandidates(ctx context.Context) ([]candidate, error) {
	enabled := make(map[rules.Pair]bool, len(s.cfg.Pairs))
	var letters []string
	for _, p := range s.cfg.Pairs {
		if enabled[p] {
			continue
		}
		enabled[p] = true
		letters = append(letters, p.Letters()...)
	}

	var locs []document.Location
	for _, letter := range letters {
		found, err := s.doc.SearchWholeWord(ctx, s.cfg.Scope, letter)
		if err != nil {
			return nil, newScanError("scan", fmt.Sprintf("search for %q failed", letter), err)
		}
		locs = append(locs, found...)
	}

	// Merge per-letter result lists into ascending document order. The
	// comparison is a host capability; position keys stay host-internal.
	var cmpErr error
	sort.SliceStable(locs, func(i, j int) bool {
		c, err := s.doc.Compare(locs[i], locs[j])
		if err != nil && cmpErr == nil {
			cmpErr = err
		}
		return c < 0
	})
	if cmpErr != nil {
		return nil, newScanError("scan", "location ordering failed", cmpErr)
	}

	var cands []candidate
	for i, loc := range locs {
		if i > 0 {
			// Distinct letters cannot collide, but a host search may
			// return duplicate hits; the queue forbids shared locations.
			if c, err := s.doc.Compare(locs[i-1], loc); err == nil && c == 0 {
				continue
			}
		}
		text, err := s.doc.TextAt(ctx, loc)
		if err != nil {
			return nil, newScanError("scan", "candidate read failed", err)
		}
		trimmed := strings.TrimSpace(text)
		if utf8.RuneCountInString(trimmed) != 1 {
			continue // host word-boundary search returned a longer hit
		}
		pair, ok := rules.PairFor(trimmed)
		if !ok || !enabled[pair] {
			continue
		}
		cands = append(cands, candidate{text: trimmed, loc: loc, pair: pair})
	}
	return cands, nil
}

// nextWord returns the trimmed text of the word following loc, or "" when
// nothing follows.
func (s *Session) nextWord(ctx context.Context, loc document.Location) (string, error) {
	next, err := s.doc.NextWordAfter(ctx, loc, document.DefaultDelimiters)
	if err != nil {
		return "", newScanError("scan", "next-word lookup failed", err)
	}
	if next == nil {
		return "", nil
	}
	text, err := s.doc.TextAt(ctx, next)
	if err != nil {
		return "", newScanError("scan", "next-word read failed", err)
	}
	return strings.TrimSpace(text), nil
}

// AcceptOne resolves the head mismatch by applying its suggestion.
// Returns false when the queue is empty (no-op).
func (s *Session) AcceptOne(ctx context.Context) (bool, error) {
	return s.resolveOne(ctx, "accept_one", true)
}

// RejectOne resolves the head mismatch without touching the document text.
// Returns false when the queue is empty (no-op).
func (s *Session) RejectOne(ctx context.Context) (bool, error) {
	return s.resolveOne(ctx, "reject_one", false)
}

func (s *Session) resolveOne(ctx context.Context, op string, apply bool) (bool, error) {
	m, ok := s.queue.head()
	if !ok {
		return false, nil
	}

	if apply {
		if err := s.doc.ReplaceText(ctx, m.Token.Location, m.Suggestion); err != nil {
			return false, newResolveError(op, "replace failed", err)
		}
	}
	if err := s.doc.SetHighlight(ctx, m.Token.Location, ""); err != nil {
		return false, newResolveError(op, "flag clear failed", err)
	}
	if err := s.doc.Sync(ctx); err != nil {
		return false, newResolveError(op, "sync failed", err)
	}

	// The document mutation committed; only now is the entry resolved.
	s.queue.popHead()
	s.unflag(m.Token.Location)

	if head, ok := s.queue.head(); ok {
		s.focus(ctx, head.Token.Location)
	}

	kind := "reject"
	if apply {
		kind = "accept"
	}
	s.record(ctx, func() error {
		return s.recorder.RecordResolution(ctx, s.id, kind, m.Token.Text, m.Suggestion)
	})
	s.log.Debug("mismatch resolved", "session", s.id, "kind", kind,
		"token", m.Token.Text, "suggestion", m.Suggestion, "remaining", s.queue.len())
	return true, nil
}

// AcceptAll resolves every queued mismatch by applying its suggestion.
// Returns the number resolved (0 on an empty queue).
func (s *Session) AcceptAll(ctx context.Context) (int, error) {
	return s.resolveAll(ctx, "accept_all", true)
}

// RejectAll clears every queued mismatch's flag without document edits.
// Returns the number resolved (0 on an empty queue).
func (s *Session) RejectAll(ctx context.Context) (int, error) {
	return s.resolveAll(ctx, "reject_all", false)
}

func (s *Session) resolveAll(ctx context.Context, op string, apply bool) (int, error) {
	entries := s.queue.all()
	if len(entries) == 0 {
		return 0, nil
	}

	// Document order: tracked locations stay independently addressable
	// regardless of edits elsewhere, so earlier replacements cannot
	// invalidate later ones.
	for _, m := range entries {
		if apply {
			if err := s.doc.ReplaceText(ctx, m.Token.Location, m.Suggestion); err != nil {
				return 0, newResolveError(op, "replace failed", err)
			}
		}
		if err := s.doc.SetHighlight(ctx, m.Token.Location, ""); err != nil {
			return 0, newResolveError(op, "flag clear failed", err)
		}
	}
	if err := s.doc.Sync(ctx); err != nil {
		return 0, newResolveError(op, "sync failed", err)
	}

	s.queue.reset()
	s.flagged = nil

	kind := "reject"
	if apply {
		kind = "accept"
	}
	for _, m := range entries {
		m := m
		s.record(ctx, func() error {
			return s.recorder.RecordResolution(ctx, s.id, kind, m.Token.Text, m.Suggestion)
		})
	}
	s.log.Info("queue resolved", "session", s.id, "kind", kind, "count", len(entries))
	return len(entries), nil
}

// focus moves the user's selection to loc. Selection is a UX cue, never a
// correctness requirement, so failures are logged and swallowed.
func (s *Session) focus(ctx context.Context, loc document.Location) {
	if err := s.doc.SelectAndFocus(ctx, loc); err != nil {
		s.log.Warn("focus failed", "session", s.id, "error", err)
		return
	}
	if err := s.doc.Sync(ctx); err != nil {
		s.log.Warn("focus sync failed", "session", s.id, "error", err)
	}
}

// unflag drops the entry at loc's document position from the flagged list.
// Position comparison is the host's, so Location dynamic types need not be
// comparable with ==.
func (s *Session) unflag(loc document.Location) {
	for i, f := range s.flagged {
		if c, err := s.doc.Compare(f, loc); err == nil && c == 0 {
			s.flagged = append(s.flagged[:i], s.flagged[i+1:]...)
			return
		}
	}
}

// record invokes the recorder when one is attached. Journal failures are
// diagnostic-path only and never fail the operation.
func (s *Session) record(ctx context.Context, fn func() error) {
	if s.recorder == nil {
		return
	}
	if err := fn(); err != nil {
		s.log.Warn("journal write failed", "session", s.id, "error", err)
	}
}
