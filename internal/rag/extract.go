package rag

import (
	"bytes"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
	"github.com/ledongthuc/pdf"
)

// ExtractText pulls plain text out of an uploaded document, dispatching on
// the filename suffix: PDFs are extracted page by page, HTML is reduced to
// its readable content, and anything else is decoded as UTF-8 text.
func ExtractText(data []byte, filename string) (string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return extractPDF(data, filename)
	case ".html", ".htm":
		return extractHTML(data, filename)
	default:
		if !utf8.Valid(data) {
			return "", &ExtractionError{Filename: filename, Reason: ReasonInvalidEncoding}
		}
		return string(data), nil
	}
}

// extractPDF concatenates the plain text of every page. A page that yields no
// text contributes an empty string rather than failing the document. The pdf
// library panics on some malformed inputs, so extraction recovers and reports
// those as malformed documents.
func extractPDF(data []byte, filename string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Filename: filename, Reason: ReasonMalformedDocument, Err: fmt.Errorf("%v", r)}
		}
	}()
	reader, rerr := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if rerr != nil {
		return "", &ExtractionError{Filename: filename, Reason: ReasonMalformedDocument, Err: rerr}
	}
	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, perr := page.GetPlainText(nil)
		if perr != nil {
			continue
		}
		b.WriteString(content)
	}
	return b.String(), nil
}

func extractHTML(data []byte, filename string) (string, error) {
	pageURL := &url.URL{Scheme: "file", Path: "/" + filename}
	article, err := readability.FromReader(bytes.NewReader(data), pageURL)
	if err != nil {
		return "", &ExtractionError{Filename: filename, Reason: ReasonMalformedDocument, Err: err}
	}
	return article.TextContent, nil
}
