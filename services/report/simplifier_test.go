package report

import (
	"strings"
	"testing"
)

func TestParseVisionResponseWithMarkers(t *testing.T) {
	response := `Some preamble the model added.
---EXTRACTED_TEXT_START---
Hemoglobin: 11.2 g/dL (low)
WBC: 9000 /uL
---EXTRACTED_TEXT_END---
---SIMPLIFIED_REPORT_START---
Your red blood cell count is slightly low, which can cause tiredness.
---SIMPLIFIED_REPORT_END---
Trailing text.`

	extracted, simplified := ParseVisionResponse(response)

	if !strings.Contains(extracted, "Hemoglobin: 11.2") {
		t.Errorf("extracted = %q", extracted)
	}
	if strings.Contains(extracted, "---") {
		t.Errorf("extracted still contains markers: %q", extracted)
	}
	if simplified != "Your red blood cell count is slightly low, which can cause tiredness." {
		t.Errorf("simplified = %q", simplified)
	}
}

func TestParseVisionResponseMissingMarkers(t *testing.T) {
	response := "The report shows mildly elevated cholesterol. Discuss diet changes with your doctor."

	extracted, simplified := ParseVisionResponse(response)

	if extracted != "" {
		t.Errorf("extracted should be empty, got %q", extracted)
	}
	if simplified != response {
		t.Errorf("simplified should be whole response, got %q", simplified)
	}
}

func TestParseVisionResponseOnlyExtractedMarker(t *testing.T) {
	response := `---EXTRACTED_TEXT_START---
Creatinine: 1.0 mg/dL
---EXTRACTED_TEXT_END---
Everything looks normal.`

	extracted, simplified := ParseVisionResponse(response)

	if extracted != "Creatinine: 1.0 mg/dL" {
		t.Errorf("extracted = %q", extracted)
	}
	// No simplified markers, so the whole response is the explanation
	if !strings.Contains(simplified, "Everything looks normal.") {
		t.Errorf("simplified = %q", simplified)
	}
}

func TestSanitizePDFTruncatesTrailingGarbage(t *testing.T) {
	content := []byte("%PDF-1.4 fake body %%EOF\n<html>tracking pixel</html>")

	cleaned := sanitizePDF(content)

	if strings.Contains(string(cleaned), "html") {
		t.Errorf("trailing garbage not removed: %q", cleaned)
	}
	if !strings.HasPrefix(string(cleaned), "%PDF-") {
		t.Errorf("header lost: %q", cleaned)
	}
}

func TestSanitizePDFNonPDFUntouched(t *testing.T) {
	content := []byte("just some text")
	if got := sanitizePDF(content); string(got) != "just some text" {
		t.Errorf("non-PDF content modified: %q", got)
	}
}

func TestExtractTextEmptyContent(t *testing.T) {
	extractor := NewPDFExtractor()
	if _, err := extractor.ExtractText(nil); err == nil {
		t.Error("expected error for empty content")
	}
}
