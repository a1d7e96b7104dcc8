package rag

import (
	"errors"
	"strings"
	"testing"
)

func TestExtractPlainText(t *testing.T) {
	text, err := ExtractText([]byte("plain contents"), "notes.txt")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if text != "plain contents" {
		t.Fatalf("expected passthrough, got %q", text)
	}
}

func TestExtractUnknownExtensionTreatedAsText(t *testing.T) {
	text, err := ExtractText([]byte("markdown # body"), "readme.md")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if text != "markdown # body" {
		t.Fatalf("expected passthrough, got %q", text)
	}
}

func TestExtractInvalidEncoding(t *testing.T) {
	_, err := ExtractText([]byte{0xff, 0xfe, 0xfd}, "broken.txt")
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if exErr.Reason != ReasonInvalidEncoding {
		t.Fatalf("expected reason %q, got %q", ReasonInvalidEncoding, exErr.Reason)
	}
	if !strings.Contains(err.Error(), "broken.txt") {
		t.Fatalf("error should name the file: %v", err)
	}
}

func TestExtractMalformedPDF(t *testing.T) {
	_, err := ExtractText([]byte("this is not a pdf"), "report.pdf")
	var exErr *ExtractionError
	if !errors.As(err, &exErr) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
	if exErr.Reason != ReasonMalformedDocument {
		t.Fatalf("expected reason %q, got %q", ReasonMalformedDocument, exErr.Reason)
	}
	if !strings.Contains(err.Error(), "report.pdf") {
		t.Fatalf("error should name the file: %v", err)
	}
}

func TestExtractHTML(t *testing.T) {
	page := `<!DOCTYPE html>
<html><head><title>Release Notes</title></head><body>
<article>
<h1>Release Notes</h1>
<p>This release introduces incremental ingestion, a faster retrieval path,
and a number of fixes to the document catalog. Upgrading is recommended for
all deployments that index large PDF collections.</p>
<p>The chunking pipeline now respects paragraph boundaries where possible,
which improves answer grounding for long technical documents.</p>
</article>
</body></html>`
	text, err := ExtractText([]byte(page), "notes.html")
	if err != nil {
		t.Fatalf("ExtractText: %v", err)
	}
	if !strings.Contains(text, "incremental ingestion") {
		t.Fatalf("expected readable content in output, got %q", text)
	}
	if strings.Contains(text, "<p>") {
		t.Fatalf("expected markup to be stripped, got %q", text)
	}
}
