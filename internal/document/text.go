package document

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// TextDocument is an in-memory Access implementation over plain text.
//
// It mirrors the host boundary faithfully: mutations queue until Sync, and
// every Location it hands out is a tracked span whose offsets are adjusted
// when text elsewhere in the same part is replaced. That adjustment is what
// provides the tracked-range guarantee the proofing core relies on.
//
// A TextDocument always has one body part; headers, footers, and tables may
// be added at construction and are only visible to ScopeFull searches.
//
// Not safe for concurrent use. The proofing core is single-threaded by
// design, and the host serializes its own request batches.
type TextDocument struct {
	parts      []*part
	spans      []*span
	highlights map[*span]string
	selection  *span
	pending    []func()
}

type partKind int

const (
	partBody partKind = iota + 1
	partHeader
	partFooter
	partTable
)

type part struct {
	kind partKind
	text []rune
}

// span is a tracked range: rune offsets into one part, kept current by
// commitReplace whenever text moves underneath it.
type span struct {
	doc        *TextDocument
	part       int
	start, end int
}

func (*span) isLocation() {}

// TextOption configures a TextDocument at construction.
type TextOption func(*TextDocument)

// WithHeader adds a header part.
func WithHeader(text string) TextOption {
	return func(d *TextDocument) { d.addPart(partHeader, text) }
}

// WithFooter adds a footer part.
func WithFooter(text string) TextOption {
	return func(d *TextDocument) { d.addPart(partFooter, text) }
}

// WithTable adds a table part (cell text flattened to plain text).
func WithTable(text string) TextOption {
	return func(d *TextDocument) { d.addPart(partTable, text) }
}

// NewText creates a TextDocument whose body is the given text.
func NewText(body string, opts ...TextOption) *TextDocument {
	d := &TextDocument{highlights: make(map[*span]string)}
	d.addPart(partBody, body)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *TextDocument) addPart(kind partKind, text string) {
	d.parts = append(d.parts, &part{kind: kind, text: []rune(text)})
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// SearchWholeWord implements Access.
func (d *TextDocument) SearchWholeWord(ctx context.Context, scope Scope, word string) ([]Location, error) {
	if word == "" {
		return nil, fmt.Errorf("search word must not be empty")
	}
	target := []rune(strings.ToLower(word))

	var found []Location
	for pi, p := range d.parts {
		if scope == ScopeBody && p.kind != partBody {
			continue
		}
		text := p.text
		for i := 0; i+len(target) <= len(text); i++ {
			if !runesEqualFold(text[i:i+len(target)], target) {
				continue
			}
			end := i + len(target)
			if i > 0 && isWordRune(text[i-1]) {
				continue
			}
			if end < len(text) && isWordRune(text[end]) {
				continue
			}
			found = append(found, d.newSpan(pi, i, end))
		}
	}
	return found, nil
}

func runesEqualFold(a, b []rune) bool {
	for i := range a {
		if unicode.ToLower(a[i]) != b[i] {
			return false
		}
	}
	return true
}

func (d *TextDocument) newSpan(part, start, end int) *span {
	sp := &span{doc: d, part: part, start: start, end: end}
	d.spans = append(d.spans, sp)
	return sp
}

// own checks that loc is a span handed out by this document.
func (d *TextDocument) own(loc Location) (*span, error) {
	sp, ok := loc.(*span)
	if !ok || sp.doc != d {
		return nil, fmt.Errorf("location does not belong to this document")
	}
	return sp, nil
}

// TextAt implements Access.
func (d *TextDocument) TextAt(ctx context.Context, loc Location) (string, error) {
	sp, err := d.own(loc)
	if err != nil {
		return "", err
	}
	return string(d.parts[sp.part].text[sp.start:sp.end]), nil
}

// NextWordAfter implements Access.
func (d *TextDocument) NextWordAfter(ctx context.Context, loc Location, delimiters string) (Location, error) {
	sp, err := d.own(loc)
	if err != nil {
		return nil, err
	}
	text := d.parts[sp.part].text

	i := sp.end
	for i < len(text) && strings.ContainsRune(delimiters, text[i]) {
		i++
	}
	start := i
	for i < len(text) && !strings.ContainsRune(delimiters, text[i]) {
		i++
	}
	if start == i {
		return nil, nil // nothing but delimiters until end of part
	}
	return d.newSpan(sp.part, start, i), nil
}

// SetHighlight implements Access. The flag change is queued until Sync.
func (d *TextDocument) SetHighlight(ctx context.Context, loc Location, color string) error {
	sp, err := d.own(loc)
	if err != nil {
		return err
	}
	d.pending = append(d.pending, func() {
		if color == "" {
			delete(d.highlights, sp)
		} else {
			d.highlights[sp] = color
		}
	})
	return nil
}

// ReplaceText implements Access. The edit is queued until Sync.
func (d *TextDocument) ReplaceText(ctx context.Context, loc Location, newText string) error {
	sp, err := d.own(loc)
	if err != nil {
		return err
	}
	d.pending = append(d.pending, func() { d.commitReplace(sp, []rune(newText)) })
	return nil
}

// commitReplace splices new text over sp and re-anchors every other tracked
// span in the same part so handles stay correct across the edit.
func (d *TextDocument) commitReplace(sp *span, newText []rune) {
	p := d.parts[sp.part]
	delta := len(newText) - (sp.end - sp.start)

	spliced := make([]rune, 0, len(p.text)+delta)
	spliced = append(spliced, p.text[:sp.start]...)
	spliced = append(spliced, newText...)
	spliced = append(spliced, p.text[sp.end:]...)
	p.text = spliced

	for _, other := range d.spans {
		if other == sp || other.part != sp.part {
			continue
		}
		switch {
		case other.start >= sp.end:
			other.start += delta
			other.end += delta
		case other.end <= sp.start:
			// entirely before the edit, unaffected
		default:
			// overlapped the edited range; collapse to its start
			other.start = sp.start
			other.end = sp.start
		}
	}
	sp.end = sp.start + len(newText)
}

// SelectAndFocus implements Access. The selection move is queued until Sync.
func (d *TextDocument) SelectAndFocus(ctx context.Context, loc Location) error {
	sp, err := d.own(loc)
	if err != nil {
		return err
	}
	d.pending = append(d.pending, func() { d.selection = sp })
	return nil
}

// Compare implements Access.
func (d *TextDocument) Compare(a, b Location) (int, error) {
	sa, err := d.own(a)
	if err != nil {
		return 0, err
	}
	sb, err := d.own(b)
	if err != nil {
		return 0, err
	}
	if sa.part != sb.part {
		return sa.part - sb.part, nil
	}
	if sa.start != sb.start {
		return sa.start - sb.start, nil
	}
	return sa.end - sb.end, nil
}

// Sync implements Access: commits queued mutations in issue order.
func (d *TextDocument) Sync(ctx context.Context) error {
	queued := d.pending
	d.pending = nil
	for _, apply := range queued {
		apply()
	}
	return nil
}

// BodyText returns the committed body text. Host-side observation for the
// CLI and tests; not part of the Access boundary.
func (d *TextDocument) BodyText() string {
	return string(d.parts[0].text)
}

// PartText returns the committed text of part i.
func (d *TextDocument) PartText(i int) string {
	return string(d.parts[i].text)
}

// Highlight returns the committed flag color at loc, or "".
func (d *TextDocument) Highlight(loc Location) string {
	sp, err := d.own(loc)
	if err != nil {
		return ""
	}
	return d.highlights[sp]
}

// HighlightCount returns the number of committed flags.
func (d *TextDocument) HighlightCount() int {
	return len(d.highlights)
}

// Selection returns the committed selection, or nil.
func (d *TextDocument) Selection() Location {
	if d.selection == nil {
		return nil
	}
	return d.selection
}

// Offsets exposes a span's part index and rune offsets. Host-side
// observation for diagnostics (the proofing core never sees offsets).
func (d *TextDocument) Offsets(loc Location) (part, start, end int, err error) {
	sp, err := d.own(loc)
	if err != nil {
		return 0, 0, 0, err
	}
	return sp.part, sp.start, sp.end, nil
}
