package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/segmentio/ksuid"

	"github.com/ssargent/deckcode/pkg/codec"
	"github.com/ssargent/deckcode/pkg/deck"
	"github.com/ssargent/deckcode/pkg/decklist"
	"github.com/ssargent/deckcode/pkg/logging"
	"github.com/ssargent/deckcode/pkg/metrics"
)

// Operation names used in logs and metric labels.
const (
	OpEncode  = "encode"
	OpDecode  = "decode"
	OpVerify  = "verify"
	OpInspect = "inspect"
	OpCheck   = "check"
)

// Service runs codec operations with logging and metrics
type Service struct {
	codec   Codec
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New creates a service. A nil logger discards all records.
func New(c Codec, m *metrics.Metrics, logger *slog.Logger) *Service {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Service{codec: c, metrics: m, logger: logger}
}

// Problem is an invalid token found by Verify
type Problem struct {
	Token deck.Token `json:"token" yaml:"token"`
	Kind  string     `json:"kind" yaml:"kind"`
	Error string     `json:"error" yaml:"error"`
}

// Encode returns the deck code for d
func (s *Service) Encode(ctx context.Context, d deck.Deck) (string, error) {
	start := time.Now()
	code, err := s.codec.Encode(d)
	s.observe(ctx, OpEncode, start, len(d), err)
	if err == nil {
		s.metrics.ObserveCode(code)
	}
	return code, err
}

// Decode parses a deck code
func (s *Service) Decode(ctx context.Context, code string) (deck.Deck, error) {
	start := time.Now()
	d, err := s.codec.Decode(code)
	s.observe(ctx, OpDecode, start, len(d), err)
	if err == nil {
		s.metrics.ObserveCode(code)
	}
	return d, err
}

// Inspect parses a deck code into its wire layout
func (s *Service) Inspect(ctx context.Context, code string) (*codec.Layout, error) {
	start := time.Now()
	layout, err := s.codec.Inspect(code)
	tokens := 0
	if layout != nil {
		tokens = len(layout.Deck())
	}
	s.observe(ctx, OpInspect, start, tokens, err)
	return layout, err
}

// Verify checks every token of d and returns one Problem per invalid
// token. The deck is valid when the result is empty.
func (s *Service) Verify(ctx context.Context, d deck.Deck) []Problem {
	start := time.Now()

	var problems []Problem
	for _, t := range d {
		if err := s.codec.Check(deck.Deck{t}); err != nil {
			problems = append(problems, Problem{Token: t, Kind: codec.KindOf(err).String(), Error: err.Error()})
		}
	}

	var err error
	if len(problems) > 0 {
		err = s.codec.Check(d)
	}
	s.observe(ctx, OpVerify, start, len(d), err)
	return problems
}

func (s *Service) observe(ctx context.Context, op string, start time.Time, tokens int, err error) {
	duration := time.Since(start)

	s.metrics.RecordOperation(op, err == nil, duration)
	if err != nil {
		kind := codec.KindOf(err).String()
		s.metrics.RecordError(op, kind)
		s.logger.WarnContext(ctx, "codec operation failed",
			"op", op,
			"kind", kind,
			"error", err,
		)
		return
	}

	s.metrics.ObserveDeck(op, tokens)
	s.logger.DebugContext(ctx, "codec operation",
		"op", op,
		"cards", tokens,
		"duration", duration,
	)
}

// CaseResult is the outcome of one fixture case
type CaseResult struct {
	Line    int    `json:"line" yaml:"line"`
	Code    string `json:"code" yaml:"code"`
	Encoded string `json:"encoded,omitempty" yaml:"encoded,omitempty"`
	// EncodeOK is set when the case deck encodes to Code.
	EncodeOK bool `json:"encode_ok" yaml:"encode_ok"`
	// DecodeOK is set when Code decodes to the case deck, in any order.
	DecodeOK bool   `json:"decode_ok" yaml:"decode_ok"`
	Error    string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Passed reports whether both directions matched
func (r CaseResult) Passed() bool {
	return r.EncodeOK && r.DecodeOK
}

// Report summarizes a CheckCases run
type Report struct {
	RunID    ksuid.KSUID   `json:"run_id" yaml:"run_id"`
	Started  time.Time     `json:"started" yaml:"started"`
	Duration time.Duration `json:"duration" yaml:"duration"`
	Total    int           `json:"total" yaml:"total"`
	Passed   int           `json:"passed" yaml:"passed"`
	Failed   int           `json:"failed" yaml:"failed"`
	Results  []CaseResult  `json:"results" yaml:"results"`
}

// OK reports whether every case passed
func (r *Report) OK() bool {
	return r.Failed == 0
}

// CheckCases encodes each case deck and compares the result with the case
// code, then decodes the code and compares it with the deck. It stops early
// only if ctx is cancelled.
func (s *Service) CheckCases(ctx context.Context, cases []decklist.Case) (*Report, error) {
	report := &Report{
		RunID:   ksuid.New(),
		Started: time.Now(),
		Total:   len(cases),
		Results: make([]CaseResult, 0, len(cases)),
	}
	logger := s.logger.With("run_id", report.RunID.String())
	logger.InfoContext(ctx, "checking cases", "cases", len(cases))

	for _, c := range cases {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := s.checkCase(ctx, c)
		s.metrics.RecordCase(result.Passed())
		if result.Passed() {
			report.Passed++
		} else {
			report.Failed++
			logger.WarnContext(ctx, "case failed",
				"line", c.Line,
				"code", c.Code,
				"encoded", result.Encoded,
				"error", result.Error,
			)
		}
		report.Results = append(report.Results, result)
	}

	report.Duration = time.Since(report.Started)
	logger.InfoContext(ctx, "cases checked",
		"passed", report.Passed,
		"failed", report.Failed,
		"duration", report.Duration,
	)
	return report, nil
}

func (s *Service) checkCase(ctx context.Context, c decklist.Case) CaseResult {
	result := CaseResult{Line: c.Line, Code: c.Code}

	encoded, err := s.Encode(ctx, c.Deck)
	if err != nil {
		result.Error = err.Error()
	} else {
		result.Encoded = encoded
		result.EncodeOK = encoded == c.Code
	}

	decoded, err := s.Decode(ctx, c.Code)
	if err != nil {
		if result.Error == "" {
			result.Error = err.Error()
		}
		return result
	}
	result.DecodeOK = c.Deck.Equal(decoded)
	return result
}
