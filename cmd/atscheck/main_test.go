package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestRunTextOutput(t *testing.T) {
	path := writeFile(t, "resume.txt", "hello world")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-file", path}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.True(t, strings.HasPrefix(stdout.String(), "resume.txt: 30/100\n"), stdout.String())
	assert.Contains(t, stdout.String(), `Add the "education" section`)
	assert.NotContains(t, stdout.String(), "deep analysis:")
}

func TestRunJSONWithDeep(t *testing.T) {
	path := writeFile(t, "resume.md", "# Education\npython developer")
	var stdout, stderr bytes.Buffer

	code := run([]string{"-format", "json", "-deep", "-prior", "55", "-title", "Developer", "-desc", "short", path}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var out struct {
		File  string `json:"file"`
		Score int    `json:"score"`
		Deep  struct {
			Feedback          []string `json:"feedback"`
			SufficientContext bool     `json:"sufficientContext"`
		} `json:"deep"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, "resume.md", out.File)
	assert.False(t, out.Deep.SufficientContext)
	require.Len(t, out.Deep.Feedback, 1)
	assert.Contains(t, out.Deep.Feedback[0], "at least 100 characters (currently 5 characters)")
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		name string
		args []string
		code int
		msg  string
	}{
		{"missing file flag", nil, 2, "-file is required"},
		{"bad format", []string{"-format", "xml", "-file", "x.txt"}, 2, "unknown format"},
		{"bad preset", []string{"-preset", "lenient", "-file", "x.txt"}, 1, "unknown scoring preset"},
		{"missing file", []string{"-file", filepath.Join(os.TempDir(), "does-not-exist.pdf")}, 1, "read resume"},
		{"unsupported", []string{"-file", writeFile(t, "photo.png", "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")}, 1, "only PDF, DOCX, TXT and MD"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			assert.Equal(t, tc.code, run(tc.args, &stdout, &stderr))
			assert.Contains(t, stderr.String(), tc.msg)
		})
	}
}
