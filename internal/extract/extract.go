// Package extract turns uploaded resume documents into plain text.
package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"ats-backend/internal/shared/metrics"
	"ats-backend/internal/shared/storage/object"
)

const (
	MimePDF      = "application/pdf"
	MimeDOCX     = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MimeText     = "text/plain"
	MimeMarkdown = "text/markdown"

	mimeZip   = "application/zip"
	mimeOctet = "application/octet-stream"
)

var (
	// ErrUnsupportedType is returned for documents that are neither PDF, DOCX nor plain text.
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrEmptyText is returned when a document yields no text after trimming.
	ErrEmptyText = errors.New("no text could be extracted from the file")
	// ErrUnreadable wraps parser failures on malformed PDF or DOCX payloads.
	ErrUnreadable = errors.New("document could not be read")
)

// ExtractedKey is the storage key of the derived text copy for key.
func ExtractedKey(key string) string {
	return key + ".extracted.txt"
}

// ExtractText pulls text from a stored object and persists a derived .extracted.txt copy.
func ExtractText(ctx context.Context, store object.ObjectStore, fileKey string, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, fileKey)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: %w", fileKey, mimeType, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: read: %w", fileKey, mimeType, err)
	}

	text, err := ExtractTextFromBytes(ctx, raw, mimeType, fileName)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: %w", fileKey, mimeType, err)
	}

	if _, err := store.SaveWithKey(ctx, ExtractedKey(fileKey), "text/plain; charset=utf-8", strings.NewReader(text)); err != nil {
		return "", fmt.Errorf("extract text key=%s mime=%s: save: %w", fileKey, mimeType, err)
	}
	return text, nil
}

// ExtractTextFromBytes extracts trimmed text from an in-memory payload.
func ExtractTextFromBytes(ctx context.Context, data []byte, mimeType string, fileName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	start := time.Now()
	normalized := NormalizeMimeType(mimeType, fileName, data)
	label := typeLabel(normalized)

	var (
		text string
		err  error
	)
	switch normalized {
	case MimePDF:
		text, err = extractPDF(data)
	case MimeDOCX:
		text, err = extractDOCX(data)
	case MimeText, MimeMarkdown:
		text = strings.ToValidUTF8(string(data), "")
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedType, normalized)
	}
	if err == nil {
		text = strings.TrimSpace(text)
		if text == "" {
			err = ErrEmptyText
		}
	}

	metrics.ObserveExtraction(label, outcome(err), time.Since(start))
	if err != nil {
		return "", err
	}
	return text, nil
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed object streams.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: pdf: %v", ErrUnreadable, r)
		}
	}()
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: pdf: %v", ErrUnreadable, err)
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: pdf text: %v", ErrUnreadable, err)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("%w: pdf text: %v", ErrUnreadable, err)
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrEmptyText
	}
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		// Packages without a relationships part are still readable straight from the zip.
		return extractDOCXPart(data)
	}
	defer doc.Close()
	return stripDocxXML(doc.Editable().GetContent()), nil
}

func extractDOCXPart(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: docx: %v", ErrUnreadable, err)
	}
	for _, f := range zr.File {
		if strings.ReplaceAll(f.Name, "\\", "/") != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("%w: docx: %v", ErrUnreadable, err)
		}
		defer rc.Close()
		raw, err := io.ReadAll(rc)
		if err != nil {
			return "", fmt.Errorf("%w: docx: %v", ErrUnreadable, err)
		}
		return stripDocxXML(string(raw)), nil
	}
	return "", fmt.Errorf("%w: docx: document.xml file not found", ErrUnreadable)
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.StartElement:
			if t.Name.Local == "tab" {
				buf.WriteString("\t")
			}
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// NormalizeMimeType maps a declared MIME type to one of the supported types
// where possible. Parameters are dropped, zip containers are inspected for
// OOXML parts, and empty or generic types fall back to content sniffing and
// then the file extension.
func NormalizeMimeType(mimeType string, fileName string, data []byte) string {
	clean := cleanMime(mimeType)
	if (clean == "" || clean == mimeOctet) && len(data) > 0 {
		clean = cleanMime(mimetype.Detect(data).String())
	}
	if clean == mimeZip {
		if mapped := mapOOXMLFromZip(data); mapped != "" {
			return mapped
		}
	}
	if clean == "" || clean == mimeOctet || clean == mimeZip {
		if byExt := mimeFromExt(fileName); byExt != "" {
			return byExt
		}
	}
	return clean
}

func cleanMime(raw string) string {
	return strings.ToLower(strings.TrimSpace(strings.Split(raw, ";")[0]))
}

func mimeFromExt(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		return MimePDF
	case ".docx":
		return MimeDOCX
	case ".txt":
		return MimeText
	case ".md":
		return MimeMarkdown
	default:
		return ""
	}
}

func mapOOXMLFromZip(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ""
	}
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		switch name {
		case "word/document.xml":
			return MimeDOCX
		case "xl/workbook.xml":
			return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		case "ppt/presentation.xml":
			return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
		}
	}
	return ""
}

func typeLabel(mime string) string {
	switch mime {
	case MimePDF:
		return "pdf"
	case MimeDOCX:
		return "docx"
	case MimeText, MimeMarkdown:
		return "text"
	default:
		return "unsupported"
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrEmptyText):
		return "empty"
	case errors.Is(err, ErrUnsupportedType):
		return "unsupported"
	case errors.Is(err, ErrUnreadable):
		return "unreadable"
	default:
		return "error"
	}
}
