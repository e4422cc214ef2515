package scoring

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	PresetStandard = "standard"
	PresetExtended = "extended"
	PresetStrict   = "strict"
)

// Weights holds the maximum points awarded by each sub-score. They must total 100.
type Weights struct {
	Sections     float64 `yaml:"sections" json:"sections" validate:"gte=0,lte=100"`
	BaseKeywords float64 `yaml:"baseKeywords" json:"baseKeywords" validate:"gte=0,lte=100"`
	JobSpecific  float64 `yaml:"jobSpecific" json:"jobSpecific" validate:"gte=0,lte=100"`
}

// Config is the tunable data behind the engine. Nothing in the scoring
// logic is hard-wired outside of this struct.
type Config struct {
	Preset               string   `yaml:"preset" json:"preset"`
	Sections             []string `yaml:"sections" json:"sections" validate:"required,min=1,dive,required"`
	BaseKeywords         []string `yaml:"baseKeywords" json:"baseKeywords" validate:"required,min=1,dive,required"`
	Skills               []string `yaml:"skills" json:"skills" validate:"dive,required"`
	Stopwords            []string `yaml:"stopwords" json:"stopwords" validate:"dive,required"`
	MinDescriptionLength int      `yaml:"minDescriptionLength" json:"minDescriptionLength" validate:"gte=0"`
	Weights              Weights  `yaml:"weights" json:"weights"`
	BasicKeywordLimit    int      `yaml:"basicKeywordLimit" json:"basicKeywordLimit" validate:"gte=1"`
	DeepKeywordLimit     int      `yaml:"deepKeywordLimit" json:"deepKeywordLimit" validate:"gte=1"`
	JobMatchWarnPercent  float64  `yaml:"jobMatchWarnPercent" json:"jobMatchWarnPercent" validate:"gte=0,lte=100"`
	RepeatThreshold      int      `yaml:"repeatThreshold" json:"repeatThreshold" validate:"gte=1"`
	RepeatDistinctMin    int      `yaml:"repeatDistinctMin" json:"repeatDistinctMin" validate:"gte=0"`
}

var (
	standardSections = []string{
		"professional summary",
		"core strengths",
		"technical skills",
		"professional experience",
		"education",
		"certifications",
		"projects",
	}

	standardKeywords = []string{
		"software", "development", "coding", "programming", "react", "javascript", "python", "java", "aws", "cloud",
		"agile", "scrum", "devops", "full-stack", "frontend", "backend", "api", "database", "git",
		"design", "graphics", "photoshop", "illustrator", "ui/ux", "figma", "adobe", "creative", "visual",
		"management", "leadership", "team", "project", "communication", "collaboration", "strategy", "planning",
		"analytical", "problem-solving", "innovation", "adaptability", "time-management",
		"internship", "training", "learning", "certified", "course", "workshop", "graduate", "fresher",
		"experience", "years", "senior", "lead", "expert", "specialist", "consultant",
		"marketing", "sales", "finance", "accounting", "hr", "recruitment", "operations", "logistics", "customer",
	}

	extendedKeywords = []string{
		"software", "development", "coding", "programming", "react", "javascript", "python", "java", "aws", "cloud",
		"agile", "scrum", "devops", "full-stack", "frontend", "backend", "api", "database", "git",
		"design", "metadata", "photoshop", "illustrator", "ui/ux", "figma", "creative", "visual",
		"management", "leadership", "insights", "team", "project", "communication", "skills", "collaboration",
		"strategy", "impact", "analytical", "problem-solving", "innovation",
		"internship", "expert", "data", "analytics", "certified", "course",
		"experience", "senior", "marketing", "seo",
		"finance", "accounting", "revenue", "hr", "operations", "customer", "financial",
	}

	defaultSkills = []string{
		"software", "development", "coding", "programming", "react", "javascript", "python", "java", "aws", "cloud",
		"design", "graphics", "photoshop", "illustrator", "ui/ux", "figma", "adobe",
		"marketing", "sales", "branding", "campaign", "analytics", "seo", "crm",
		"finance", "accounting", "budget", "hr", "recruitment", "payroll",
		"management", "leadership", "communication", "collaboration", "analytical", "problem-solving",
	}
)

// DefaultConfig returns the standard preset.
func DefaultConfig() Config {
	cfg, _ := Preset(PresetStandard)
	return cfg
}

// PresetNames lists the built-in presets in a stable order.
func PresetNames() []string {
	names := []string{PresetStandard, PresetExtended, PresetStrict}
	sort.Strings(names)
	return names
}

// Preset returns a fresh copy of a built-in configuration.
func Preset(name string) (Config, error) {
	cfg := Config{
		Preset:               PresetStandard,
		Sections:             clone(standardSections),
		BaseKeywords:         clone(standardKeywords),
		Skills:               clone(defaultSkills),
		Stopwords:            []string{"with", "and", "the", "for", "this"},
		MinDescriptionLength: 100,
		Weights:              Weights{Sections: 40, BaseKeywords: 30, JobSpecific: 30},
		BasicKeywordLimit:    10,
		DeepKeywordLimit:     15,
		JobMatchWarnPercent:  70,
		RepeatThreshold:      5,
		RepeatDistinctMin:    3,
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PresetStandard:
		return cfg, nil
	case PresetExtended:
		cfg.Preset = PresetExtended
		cfg.Sections = []string{
			"professional summary",
			"core strengths",
			"technical skills",
			"professional experience",
			"education",
			"skills",
			"certifications",
			"projects",
		}
		cfg.BaseKeywords = clone(extendedKeywords)
		cfg.Stopwords = []string{"with", "and", "the", "for"}
		return cfg, nil
	case PresetStrict:
		cfg.Preset = PresetStrict
		cfg.MinDescriptionLength = 200
		return cfg, nil
	default:
		return Config{}, fmt.Errorf("unknown scoring preset %q (want one of %s)", name, strings.Join(PresetNames(), ", "))
	}
}

// LoadFile overlays the YAML document at path onto base. Fields absent from
// the file keep the base value; lists present in the file replace the base list.
func LoadFile(path string, base Config) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read scoring config %s: %w", path, err)
	}
	cfg := base
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode scoring config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("scoring config %s: %w", path, err)
	}
	return cfg, nil
}

var (
	vldOnce sync.Once
	vld     *validator.Validate
)

func getValidator() *validator.Validate {
	vldOnce.Do(func() { vld = validator.New() })
	return vld
}

// Validate checks field constraints and that the weights total 100.
// Sections and base keywords must still be non-empty once entries are
// trimmed and deduplicated, since the engine scores against those lists.
func (c Config) Validate() error {
	if err := getValidator().Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if len(normalize(c.Sections)) == 0 {
		return fmt.Errorf("%w: sections has no non-blank entries", ErrInvalidConfig)
	}
	if len(normalize(c.BaseKeywords)) == 0 {
		return fmt.Errorf("%w: baseKeywords has no non-blank entries", ErrInvalidConfig)
	}
	total := c.Weights.Sections + c.Weights.BaseKeywords + c.Weights.JobSpecific
	if math.Abs(total-100) > 0.000001 {
		return fmt.Errorf("%w: weights must total 100, got %.3f", ErrInvalidConfig, total)
	}
	return nil
}

func clone(in []string) []string {
	return append([]string(nil), in...)
}
