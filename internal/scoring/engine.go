// Package scoring computes the heuristic ATS score and the job-targeted deep
// analysis of a plain-text resume. All matching is lowercase substring
// containment; there is no semantic model behind it.
package scoring

import "strings"

// Engine scores resumes against an immutable Config. It holds no mutable
// state and is safe for concurrent use.
type Engine struct {
	cfg       Config
	sections  []string
	keywords  []string
	skills    []string
	stopwords Stopwords
}

// New validates cfg and builds an Engine from it.
func New(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		cfg:       cfg,
		sections:  normalize(cfg.Sections),
		keywords:  normalize(cfg.BaseKeywords),
		skills:    normalize(cfg.Skills),
		stopwords: NewStopwords(cfg.Stopwords...),
	}, nil
}

// Default returns an Engine for the standard preset.
func Default() *Engine {
	e, err := New(DefaultConfig())
	if err != nil {
		panic("scoring: standard preset is invalid: " + err.Error())
	}
	return e
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	out := e.cfg
	out.Sections = clone(e.cfg.Sections)
	out.BaseKeywords = clone(e.cfg.BaseKeywords)
	out.Skills = clone(e.cfg.Skills)
	out.Stopwords = clone(e.cfg.Stopwords)
	return out
}

// normalize lowercases, trims and dedupes a configured list.
func normalize(in []string) []string {
	lowered := make([]string, 0, len(in))
	for _, s := range in {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(s)))
	}
	return dedupe(lowered)
}
