package harness

import (
	"context"
	"fmt"

	"github.com/roach88/predlog/internal/config"
	"github.com/roach88/predlog/internal/document"
	"github.com/roach88/predlog/internal/session"
)

// TraceMismatch is one queue entry in a trace snapshot.
type TraceMismatch struct {
	Found      string `json:"found"`
	NextWord   string `json:"next_word"`
	Suggestion string `json:"suggestion"`
}

// TraceEvent captures one executed operation and the queue state after it.
type TraceEvent struct {
	Op       string          `json:"op"`
	Count    int             `json:"count,omitempty"`    // scan
	Resolved int             `json:"resolved,omitempty"` // accept_all / reject_all
	Applied  *bool           `json:"applied,omitempty"`  // accept_one / reject_one
	QueueLen int             `json:"queue_len"`
	Queue    []TraceMismatch `json:"queue,omitempty"`
}

// Result is the outcome of executing a scenario.
type Result struct {
	Trace         []TraceEvent
	FinalDocument string
	FinalQueueLen int
}

// Run executes a scenario's flow against a fresh in-memory document and
// validates every expectation. Returns the trace for golden comparison.
//
// Identity tokens come from a FixedGenerator so traces and journals are
// deterministic across runs.
func Run(scenario *Scenario) (*Result, error) {
	cfg := config.Default()
	if len(scenario.Pairs) > 0 {
		cfg.Pairs = scenario.Pairs
	}
	if scenario.Scope != "" {
		cfg.Scope = scenario.Scope
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	// One token for the session ID plus one per scan step.
	tokens := []string{scenario.Name + "-session"}
	for i, step := range scenario.Flow {
		if step.Op == "scan" {
			tokens = append(tokens, fmt.Sprintf("%s-gen-%d", scenario.Name, i+1))
		}
	}

	ctx := context.Background()
	doc := document.NewText(scenario.Document)
	sess := session.New(doc, cfg.SessionConfig(),
		session.WithTokenGenerator(session.NewFixedGenerator(tokens...)))

	result := &Result{}
	for i, step := range scenario.Flow {
		event, err := runStep(ctx, sess, step)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: flow[%d] %s: %w", scenario.Name, i, step.Op, err)
		}
		result.Trace = append(result.Trace, event)
	}

	result.FinalDocument = doc.BodyText()
	result.FinalQueueLen = sess.QueueLen()

	if scenario.FinalDocument != nil && result.FinalDocument != *scenario.FinalDocument {
		return nil, fmt.Errorf("scenario %s: final document %q, want %q",
			scenario.Name, result.FinalDocument, *scenario.FinalDocument)
	}
	if scenario.FinalQueueLen != nil && result.FinalQueueLen != *scenario.FinalQueueLen {
		return nil, fmt.Errorf("scenario %s: final queue length %d, want %d",
			scenario.Name, result.FinalQueueLen, *scenario.FinalQueueLen)
	}
	return result, nil
}

func runStep(ctx context.Context, sess *session.Session, step Step) (TraceEvent, error) {
	event := TraceEvent{Op: step.Op}

	switch step.Op {
	case "scan":
		res, err := sess.Scan(ctx)
		if err != nil {
			return event, err
		}
		event.Count = res.Count
		if step.Expect != nil && step.Expect.Count != nil && res.Count != *step.Expect.Count {
			return event, fmt.Errorf("scan count %d, want %d", res.Count, *step.Expect.Count)
		}

	case "accept_one", "reject_one":
		var applied bool
		var err error
		if step.Op == "accept_one" {
			applied, err = sess.AcceptOne(ctx)
		} else {
			applied, err = sess.RejectOne(ctx)
		}
		if err != nil {
			return event, err
		}
		event.Applied = &applied
		if step.Expect != nil && step.Expect.Applied != nil && applied != *step.Expect.Applied {
			return event, fmt.Errorf("applied %v, want %v", applied, *step.Expect.Applied)
		}

	case "accept_all", "reject_all":
		var resolved int
		var err error
		if step.Op == "accept_all" {
			resolved, err = sess.AcceptAll(ctx)
		} else {
			resolved, err = sess.RejectAll(ctx)
		}
		if err != nil {
			return event, err
		}
		event.Resolved = resolved
		if step.Expect != nil && step.Expect.Resolved != nil && resolved != *step.Expect.Resolved {
			return event, fmt.Errorf("resolved %d, want %d", resolved, *step.Expect.Resolved)
		}

	default:
		return event, fmt.Errorf("unknown op %q", step.Op)
	}

	event.QueueLen = sess.QueueLen()
	for _, m := range sess.Queue() {
		event.Queue = append(event.Queue, TraceMismatch{
			Found:      m.Token.Text,
			NextWord:   m.Token.NextWord,
			Suggestion: m.Suggestion,
		})
	}
	return event, nil
}
