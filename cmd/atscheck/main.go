// Command atscheck scores a local resume file without running the API.
//
//	go run ./cmd/atscheck -file resume.pdf -title "Backend Developer" -desc-file jd.txt -deep
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"ats-backend/internal/bootstrap"
	"ats-backend/internal/extract"
	"ats-backend/internal/scoring"
	"ats-backend/internal/shared/config"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type report struct {
	File      string                      `json:"file"`
	Score     int                         `json:"score"`
	Feedback  []string                    `json:"feedback"`
	Breakdown scoring.Breakdown           `json:"breakdown"`
	Deep      *scoring.DeepAnalysisResult `json:"deep,omitempty"`
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("atscheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	filePath := fs.String("file", "", "Path to resume file (pdf, docx, txt or md)")
	title := fs.String("title", "", "Target job title (optional)")
	desc := fs.String("desc", "", "Target job description (optional)")
	descFile := fs.String("desc-file", "", "Path to a job description file (overrides -desc)")
	deep := fs.Bool("deep", false, "Also run the deep analysis")
	prior := fs.Int("prior", -1, "Prior score for the deep progress line (defaults to the basic score)")
	preset := fs.String("preset", scoring.PresetStandard, "Scoring preset: "+strings.Join(scoring.PresetNames(), ", "))
	configFile := fs.String("config", "", "YAML scoring config overlay (optional)")
	format := fs.String("format", "text", "Output format: text or json")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *filePath == "" && fs.NArg() > 0 {
		*filePath = fs.Arg(0)
	}
	if *filePath == "" {
		fmt.Fprintln(stderr, "atscheck: -file is required")
		fs.Usage()
		return 2
	}
	if *format != "text" && *format != "json" {
		fmt.Fprintf(stderr, "atscheck: unknown format %q\n", *format)
		return 2
	}

	engine, err := bootstrap.BuildEngine(config.Config{ScoringPreset: *preset, ScoringConfigFile: *configFile})
	if err != nil {
		fmt.Fprintf(stderr, "atscheck: %v\n", err)
		return 1
	}

	description := *desc
	if *descFile != "" {
		raw, err := os.ReadFile(*descFile)
		if err != nil {
			fmt.Fprintf(stderr, "atscheck: read job description: %v\n", err)
			return 1
		}
		description = string(raw)
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		fmt.Fprintf(stderr, "atscheck: read resume: %v\n", err)
		return 1
	}
	name := filepath.Base(*filePath)
	text, err := extract.ExtractTextFromBytes(context.Background(), data, extract.NormalizeMimeType("", name, data), name)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedType):
			fmt.Fprintf(stderr, "atscheck: %s: only PDF, DOCX, TXT and MD files are supported\n", name)
		default:
			fmt.Fprintf(stderr, "atscheck: %s: %v\n", name, err)
		}
		return 1
	}

	basic, err := engine.Score(text, *title, description)
	if err != nil {
		fmt.Fprintf(stderr, "atscheck: %v\n", err)
		return 1
	}
	out := report{File: name, Score: basic.Score, Feedback: basic.Feedback, Breakdown: basic.Breakdown}
	if *deep {
		priorScore := basic.Score
		if *prior >= 0 {
			priorScore = *prior
		}
		result := engine.AnalyzeDeep(text, *title, description, priorScore)
		out.Deep = &result
	}

	if *format == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			fmt.Fprintf(stderr, "atscheck: %v\n", err)
			return 1
		}
		return 0
	}
	writeText(stdout, out)
	return 0
}

func writeText(w io.Writer, r report) {
	fmt.Fprintf(w, "%s: %d/100\n", r.File, r.Score)
	fmt.Fprintf(w, "  sections %.1f  keywords %.1f  job %.1f (%.0f%% of job terms)\n",
		r.Breakdown.SectionScore, r.Breakdown.BaseKeywordScore, r.Breakdown.JobSpecificScore,
		r.Breakdown.JobSpecificMatchPercent)
	for _, line := range r.Feedback {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if r.Deep == nil {
		return
	}
	fmt.Fprintln(w, "deep analysis:")
	for _, line := range r.Deep.Feedback {
		fmt.Fprintf(w, "  %s\n", line)
	}
	if r.Deep.Summary != "" {
		fmt.Fprintf(w, "summary: %s\n", r.Deep.Summary)
	}
}
