package scoring

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresets(t *testing.T) {
	assert.Equal(t, []string{PresetExtended, PresetStandard, PresetStrict}, PresetNames())

	for _, name := range PresetNames() {
		cfg, err := Preset(name)
		require.NoError(t, err, name)
		require.NoError(t, cfg.Validate(), name)
		assert.Equal(t, name, cfg.Preset)
	}

	std, err := Preset("")
	require.NoError(t, err)
	assert.Equal(t, PresetStandard, std.Preset)
	assert.Len(t, std.Sections, 7)
	assert.Equal(t, 100, std.MinDescriptionLength)
	assert.Contains(t, std.Stopwords, "this")

	ext, err := Preset("Extended")
	require.NoError(t, err)
	assert.Len(t, ext.Sections, 8)
	assert.Contains(t, ext.Sections, "skills")
	assert.NotContains(t, ext.Stopwords, "this")

	strict, err := Preset(PresetStrict)
	require.NoError(t, err)
	assert.Equal(t, 200, strict.MinDescriptionLength)

	_, err = Preset("lenient")
	assert.Error(t, err)
}

func TestPresetReturnsIndependentCopies(t *testing.T) {
	a := DefaultConfig()
	a.Sections[0] = "mutated"
	b := DefaultConfig()
	assert.Equal(t, "professional summary", b.Sections[0])
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"weights off", func(c *Config) { c.Weights.Sections = 50 }},
		{"no sections", func(c *Config) { c.Sections = nil }},
		{"blank section", func(c *Config) { c.Sections = []string{"education", ""} }},
		{"no keywords", func(c *Config) { c.BaseKeywords = []string{} }},
		{"whitespace sections", func(c *Config) { c.Sections = []string{"  ", "\t"} }},
		{"whitespace keywords", func(c *Config) { c.BaseKeywords = []string{" "} }},
		{"zero basic limit", func(c *Config) { c.BasicKeywordLimit = 0 }},
		{"warn percent over 100", func(c *Config) { c.JobMatchWarnPercent = 120 }},
		{"negative min description", func(c *Config) { c.MinDescriptionLength = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)

			_, err = New(cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadFileOverlaysBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scoring.yaml")
	doc := "minDescriptionLength: 20\nsections:\n  - Summary\n  - Education\nskills: [golang, kafka]\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := LoadFile(path, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.MinDescriptionLength)
	assert.Equal(t, []string{"Summary", "Education"}, cfg.Sections)
	assert.Equal(t, []string{"golang", "kafka"}, cfg.Skills)
	assert.Equal(t, DefaultConfig().BaseKeywords, cfg.BaseKeywords)

	e, err := New(cfg)
	require.NoError(t, err)
	res, err := e.Score("summary and education", "", "")
	require.NoError(t, err)
	assert.InDelta(t, 40.0, res.Breakdown.SectionScore, 0.0001)

	deep := e.AnalyzeDeep("golang", "Engineer", "kafka streaming with golang", 10)
	assert.True(t, deep.SufficientContext)
	assert.Contains(t, deep.Feedback, missingSkillsLine([]string{"kafka"}))
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.yaml"), DefaultConfig())
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("weights:\n  sections: 90\n"), 0o600))
	_, err = LoadFile(bad, DefaultConfig())
	require.ErrorIs(t, err, ErrInvalidConfig)

	blank := filepath.Join(dir, "blank.yaml")
	require.NoError(t, os.WriteFile(blank, []byte("sections: [\"  \"]\nbaseKeywords: [\" \"]\n"), 0o600))
	_, err = LoadFile(blank, DefaultConfig())
	require.ErrorIs(t, err, ErrInvalidConfig)

	garbage := filepath.Join(dir, "garbage.yaml")
	require.NoError(t, os.WriteFile(garbage, []byte("sections: {not: [a list"), 0o600))
	_, err = LoadFile(garbage, DefaultConfig())
	assert.Error(t, err)
}

func TestEngineConfigIsACopy(t *testing.T) {
	e := Default()
	cfg := e.Config()
	cfg.Sections[0] = "mutated"
	assert.Equal(t, "professional summary", e.Config().Sections[0])
}

func TestScoreStaysInRangeWithEmptyLists(t *testing.T) {
	e := &Engine{cfg: DefaultConfig()}
	res, err := e.Score("some resume", "", "")
	require.NoError(t, err)
	assert.Equal(t, 30, res.Score)
	assert.Zero(t, res.Breakdown.SectionScore)
	assert.Zero(t, res.Breakdown.BaseKeywordScore)
}
