package rewrite

import (
	"fmt"
	"strings"
	"sunseo/internal/config"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Vars are the values a template can reference.
type Vars struct {
	Brand       string
	Model       string
	Collection  string
	Description string
	Quality     Quality
	Length      Length
	Style       Style
}

func (v Vars) env() map[string]any {
	return map[string]any{
		"brand":       v.Brand,
		"model":       v.Model,
		"collection":  v.Collection,
		"description": v.Description,
		"quality":     string(v.Quality),
		"length":      string(v.Length),
		"style":       string(v.Style),
	}
}

// Template is text with ${expression} placeholders.
type Template struct {
	source string
	parts  []templatePart
}

type templatePart struct {
	literal string
	program *vm.Program
}

// ParseTemplate compiles every placeholder of text up front so that a broken
// template is reported before any row is touched.
func ParseTemplate(text string) (*Template, error) {
	t := &Template{source: text}
	env := Vars{}.env()

	remaining := text
	for {
		start := strings.Index(remaining, "${")
		if start < 0 {
			break
		}
		end := strings.Index(remaining[start+2:], "}")
		if end < 0 {
			return nil, fmt.Errorf("unclosed placeholder in template %q", text)
		}
		end += start + 2

		if start > 0 {
			t.parts = append(t.parts, templatePart{literal: remaining[:start]})
		}

		expression := strings.TrimSpace(remaining[start+2 : end])
		program, err := expr.Compile(expression, expr.Env(env), expr.AllowUndefinedVariables())
		if err != nil {
			return nil, fmt.Errorf("compile expression %q: %w", expression, err)
		}
		t.parts = append(t.parts, templatePart{program: program})

		remaining = remaining[end+1:]
	}

	if remaining != "" {
		t.parts = append(t.parts, templatePart{literal: remaining})
	}
	return t, nil
}

// Execute renders the template. nil results render as empty text.
func (t *Template) Execute(vars Vars) (string, error) {
	env := vars.env()

	var b strings.Builder
	for _, part := range t.parts {
		if part.program == nil {
			b.WriteString(part.literal)
			continue
		}

		result, err := expr.Run(part.program, env)
		if err != nil {
			return "", fmt.Errorf("evaluate template %q: %w", t.source, err)
		}
		if result != nil {
			fmt.Fprint(&b, result)
		}
	}
	return b.String(), nil
}

// String returns the template source.
func (t *Template) String() string {
	return t.source
}

// Templates is the set of texts the rewriter renders per row.
type Templates struct {
	Name              *Template
	Description       *Template
	NamePrompt        *Template
	DescriptionPrompt *Template
}

// NewTemplates compiles the configured templates.
func NewTemplates(cfg config.TemplateConfig) (*Templates, error) {
	var (
		ts  Templates
		err error
	)

	if ts.Name, err = ParseTemplate(cfg.Name); err != nil {
		return nil, fmt.Errorf("name template: %w", err)
	}
	if ts.Description, err = ParseTemplate(cfg.Description); err != nil {
		return nil, fmt.Errorf("description template: %w", err)
	}
	if ts.NamePrompt, err = ParseTemplate(cfg.NamePrompt); err != nil {
		return nil, fmt.Errorf("name prompt template: %w", err)
	}
	if ts.DescriptionPrompt, err = ParseTemplate(cfg.DescriptionPrompt); err != nil {
		return nil, fmt.Errorf("description prompt template: %w", err)
	}
	return &ts, nil
}

// DefaultTemplates returns the built-in texts.
func DefaultTemplates() *Templates {
	ts, err := NewTemplates(config.Default().Templates)
	if err != nil {
		panic(err)
	}
	return ts
}
