// Package generator provides the optional text generation collaborator used
// to write product names and descriptions.
package generator

import (
	"context"
	"errors"
)

// TextGenerator produces text for a prompt. maxLength bounds the answer in
// tokens for model backed generators.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, maxLength int) (string, error)
}

// Source hands out a TextGenerator on demand. Acquire may fail when the
// backing model or credentials are unavailable.
type Source interface {
	Acquire(ctx context.Context) (TextGenerator, error)
}

// ErrUnavailable is returned by sources that have no generator to offer.
var ErrUnavailable = errors.New("text generator unavailable")

// None is the Source used when generation is disabled.
type None struct{}

func (None) Acquire(context.Context) (TextGenerator, error) {
	return nil, ErrUnavailable
}

// Func adapts a plain function to TextGenerator.
type Func func(ctx context.Context, prompt string, maxLength int) (string, error)

func (f Func) Generate(ctx context.Context, prompt string, maxLength int) (string, error) {
	return f(ctx, prompt, maxLength)
}

// Static is a Source that always returns the same generator.
type Static struct {
	Generator TextGenerator
}

func (s Static) Acquire(context.Context) (TextGenerator, error) {
	if s.Generator == nil {
		return nil, ErrUnavailable
	}
	return s.Generator, nil
}
