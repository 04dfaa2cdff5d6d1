package services

import (
	"bytes"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/logger"
)

// TextExtractor turns a document buffer into plain text. It never fails:
// on a broken document it logs and returns whatever text it collected.
type TextExtractor interface {
	ExtractText(data []byte) string
}

type textExtractor struct {
	metrics *Metrics
	logger  *zap.Logger
}

func NewTextExtractor(metrics *Metrics, log *zap.Logger) TextExtractor {
	return &textExtractor{
		metrics: metrics,
		logger:  logger.OrNop(log),
	}
}

var zipMagic = []byte("PK\x03\x04")

// ExtractText implements TextExtractor.
func (e *textExtractor) ExtractText(data []byte) string {
	var text string
	if bytes.HasPrefix(data, zipMagic) {
		text = e.extractDocx(data)
	} else {
		text = e.extractPDF(data)
	}

	if strings.TrimSpace(text) == "" {
		e.metrics.ObserveExtraction("empty")
	} else {
		e.metrics.ObserveExtraction("ok")
	}
	return text
}

func (e *textExtractor) extractPDF(data []byte) (text string) {
	var builder strings.Builder

	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("error extracting text from PDF", zap.Any("panic", r))
			text = builder.String()
		}
	}()

	if len(data) == 0 {
		return ""
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Warn("error extracting text from PDF", zap.Error(err))
		return ""
	}

	totalPage := reader.NumPage()
	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := reader.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			e.logger.Debug("skipping unreadable PDF page", zap.Int("page", pageIndex), zap.Error(err))
			continue
		}
		builder.WriteString(pageText)
	}

	return builder.String()
}

var (
	docxParagraphEnd = regexp.MustCompile(`</w:p>|<w:br/>|<w:tab/>`)
	xmlTag           = regexp.MustCompile(`<[^>]+>`)
)

func (e *textExtractor) extractDocx(data []byte) (text string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("error extracting text from DOCX", zap.Any("panic", r))
			text = ""
		}
	}()

	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		e.logger.Warn("error extracting text from DOCX", zap.Error(err))
		return ""
	}
	defer doc.Close()

	return docxXMLToText(doc.Editable().GetContent())
}

func docxXMLToText(content string) string {
	content = docxParagraphEnd.ReplaceAllStringFunc(content, func(tag string) string {
		if tag == "<w:tab/>" {
			return "\t"
		}
		return "\n"
	})
	content = xmlTag.ReplaceAllString(content, "")
	return strings.TrimSpace(html.UnescapeString(content))
}

// RequireText returns an *ExtractionError when text carries no usable content.
func RequireText(text, source string) error {
	if strings.TrimSpace(text) == "" {
		return &ExtractionError{Source: source}
	}
	return nil
}

// ExtractOrFail runs the extractor and fails fast on empty output.
func ExtractOrFail(extractor TextExtractor, data []byte, source string) (string, error) {
	text := extractor.ExtractText(data)
	if err := RequireText(text, source); err != nil {
		return "", fmt.Errorf("extract %s: %w", source, err)
	}
	return text, nil
}
