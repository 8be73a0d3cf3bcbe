// Package session runs the interactive Package Express prompt flow.
package session

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"packagexpress/internal/errors"
	"packagexpress/internal/interfaces"
	"packagexpress/internal/models"
	"packagexpress/internal/output"
	"packagexpress/internal/quote"
)

// Session drives one quote from the welcome line to the final report
type Session struct {
	console interfaces.Console
	engine  *quote.Engine
	logger  *log.Logger
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the diagnostics logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates a session talking to console and filling engine
func New(console interfaces.Console, engine *quote.Engine, opts ...Option) *Session {
	s := &Session{
		console: console,
		engine:  engine,
		logger:  log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run prompts for weight and dimensions, then reports the quote or the limit that was exceeded.
// Exceeding a limit is a normal ending and returns a nil error. Console failures, including
// end of input, abort the run with an INPUT error.
func (s *Session) Run(ctx context.Context) (models.Outcome, error) {
	if err := s.engine.Start(); err != nil {
		return models.Incomplete, err
	}
	if err := s.say(output.Welcome); err != nil {
		return models.Incomplete, err
	}

	err := s.ask(ctx, output.WeightPrompt, "weight", func(raw string) error {
		_, err := s.engine.SetWeight(raw)
		return err
	})
	if err != nil {
		return s.finish(err, models.TooHeavy)
	}

	for _, axis := range models.Axes() {
		err := s.ask(ctx, output.PromptFor(axis), axis.String(), func(raw string) error {
			_, err := s.engine.SetDimension(axis, raw)
			return err
		})
		if err != nil {
			return models.Incomplete, err
		}
	}

	if err := s.engine.FinalizeDimensions(); err != nil {
		return s.finish(err, models.TooBig)
	}

	cost, err := s.engine.ComputeCost()
	if err != nil {
		return models.Incomplete, err
	}

	if err := s.say(output.FormatQuote(cost)); err != nil {
		return models.Incomplete, err
	}
	if err := s.say(output.ThankYou); err != nil {
		return models.Incomplete, err
	}

	s.logger.Info("quote complete", "outcome", models.Priced.String(), "cost", output.FormatCost(cost))
	return models.Priced, nil
}

// ask prompts until set accepts the answer. Parse errors re-prompt without limit;
// any other error from set is returned unchanged.
func (s *Session) ask(ctx context.Context, prompt, field string, set func(raw string) error) error {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return errors.InputErrorWithCause("quote cancelled", err).
				WithContext("prompt", field)
		}

		if err := s.say(prompt); err != nil {
			return err
		}

		raw, err := s.console.ReadLine()
		if err != nil {
			return s.readFailure(err, field)
		}

		err = set(raw)
		if err == nil {
			return nil
		}
		if !errors.IsRetryable(err) {
			return err
		}

		s.logger.Debug("re-prompting after invalid input", "prompt", field, "attempt", attempt)
		if err := s.say(output.InvalidInput); err != nil {
			return err
		}
	}
}

// finish reports a limit error to the user and ends the run normally.
// Any other error is passed through.
func (s *Session) finish(err error, outcome models.Outcome) (models.Outcome, error) {
	if !errors.IsErrorType(err, errors.LimitErrorType) {
		return models.Incomplete, err
	}

	q := s.engine.Quote()
	if sayErr := s.say(q.Error); sayErr != nil {
		return models.Incomplete, sayErr
	}

	s.logger.Info("quote rejected", "outcome", outcome.String(), "reason", q.Error)
	return outcome, nil
}

func (s *Session) say(line string) error {
	if err := s.console.WriteLine(line); err != nil {
		return errors.InputErrorWithCause("failed to write to console", err)
	}
	return nil
}

func (s *Session) readFailure(err error, field string) error {
	if err == io.EOF {
		return errors.InputError("input ended before the quote was complete").
			WithContext("prompt", field).
			WithSuggestion("Provide a value for every prompt (weight, width, height, length)")
	}
	return errors.InputErrorWithCause("failed to read from console", err).
		WithContext("prompt", field)
}
