// Package resume turns uploaded résumé files (PDF, DOCX, plain text) into
// plain text for skill extraction.
package resume

import (
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"

	"github.com/aakritiieee7/hrmanagementsystem/pkg/logger"
	"github.com/aakritiieee7/hrmanagementsystem/pkg/metrics"
)

// Kind identifies a supported document format.
type Kind string

const (
	KindPDF     Kind = "pdf"
	KindDOCX    Kind = "docx"
	KindText    Kind = "text"
	KindUnknown Kind = "unknown"
)

const (
	mimePDF  = "application/pdf"
	mimeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

// Upload is one résumé file as received from a client.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Extractor converts uploads to text. It is safe for concurrent use.
type Extractor struct {
	maxBytes int64
	log      logger.Logger
}

// New creates an Extractor with configuration options.
func New(opts ...Option) *Extractor {
	e := &Extractor{maxBytes: DefaultMaxBytes, log: logger.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.Named("resume")
	return e
}

// MaxBytes returns the configured size cap.
func (e *Extractor) MaxBytes() int64 { return e.maxBytes }

// Extract returns the text of u. Every failure wraps ErrExtraction; no
// partial text is returned alongside an error.
func (e *Extractor) Extract(ctx context.Context, u Upload) (string, error) {
	kind := DetectKind(u)
	text, err := e.extract(ctx, kind, u)
	if err != nil {
		metrics.RecordResumeExtraction(string(kind), "error")
		e.log.Warn(ctx, "resume extraction failed",
			logger.String("filename", u.Filename),
			logger.String("kind", string(kind)),
			logger.Error(err))
		return "", err
	}
	metrics.RecordResumeExtraction(string(kind), "ok")
	return text, nil
}

func (e *Extractor) extract(ctx context.Context, kind Kind, u Upload) (string, error) {
	if len(u.Data) == 0 {
		return "", ErrEmpty
	}
	if int64(len(u.Data)) > e.maxBytes {
		return "", fmt.Errorf("%w: %d bytes exceeds %d", ErrTooLarge, len(u.Data), e.maxBytes)
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	switch kind {
	case KindPDF:
		return extractPDFText(u.Data)
	case KindDOCX:
		return extractDocxText(u.Data)
	case KindText:
		if !utf8.Valid(u.Data) {
			return "", fmt.Errorf("%w: text is not valid UTF-8", ErrExtraction)
		}
		return string(u.Data), nil
	default:
		return "", fmt.Errorf("%w: %s (%s)", ErrUnsupportedType, u.Filename, u.ContentType)
	}
}

// DetectKind classifies u by content type, then by extension, then by
// leading magic bytes.
func DetectKind(u Upload) Kind {
	ct := strings.ToLower(strings.TrimSpace(u.ContentType))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = strings.TrimSpace(ct[:i])
	}
	switch ct {
	case mimePDF:
		return KindPDF
	case mimeDOCX:
		return KindDOCX
	case "text/plain", "text/markdown":
		return KindText
	}
	switch strings.ToLower(filepath.Ext(u.Filename)) {
	case ".pdf":
		return KindPDF
	case ".docx":
		return KindDOCX
	case ".txt", ".md", ".text":
		return KindText
	}
	switch {
	case bytes.HasPrefix(u.Data, []byte("%PDF-")):
		return KindPDF
	case len(u.Data) > 0 && utf8.Valid(u.Data) && !bytes.ContainsRune(u.Data, 0):
		return KindText
	}
	return KindUnknown
}

func extractPDFText(data []byte) (text string, err error) {
	// The parser panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: malformed pdf: %v", ErrExtraction, r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: read pdf: %w", ErrExtraction, err)
	}
	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %w", ErrExtraction, i, err)
		}
		b.WriteString(pageText)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: parse docx: %w", ErrExtraction, err)
	}
	defer doc.Close()
	return documentText(doc.Editable().GetContent())
}

// documentText flattens WordprocessingML to text: runs are concatenated and
// each paragraph ends with a newline. Markup never reaches the matcher.
func documentText(content string) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	var (
		b      strings.Builder
		inText bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("%w: docx body: %w", ErrExtraction, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}
