package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"github.com/sahilchouksey/health-platform-api/services/llm"
)

// ErrScannedPDF means the PDF had no extractable text layer
var ErrScannedPDF = errors.New("PDF appears to be scanned and has no extractable text")

// SimplifiedResult is the output of a simplification run
type SimplifiedResult struct {
	ExtractedText string
	Simplified    string
	Backend       llm.Backend
	Degraded      bool
}

// Simplifier turns medical reports (PDF text or photographed images) into
// plain-language explanations via the LLM dispatcher.
type Simplifier struct {
	dispatcher *llm.Dispatcher
	extractor  *PDFExtractor
}

// NewSimplifier creates a new report simplifier
func NewSimplifier(dispatcher *llm.Dispatcher) *Simplifier {
	return &Simplifier{
		dispatcher: dispatcher,
		extractor:  NewPDFExtractor(),
	}
}

var (
	extractedRe  = regexp.MustCompile(`(?s)---EXTRACTED_TEXT_START---(.*?)---EXTRACTED_TEXT_END---`)
	simplifiedRe = regexp.MustCompile(`(?s)---SIMPLIFIED_REPORT_START---(.*?)---SIMPLIFIED_REPORT_END---`)
)

// ParseVisionResponse splits a delimiter-sectioned vision answer into its
// extracted text and simplified explanation. When the markers are missing
// the whole response becomes the explanation.
func ParseVisionResponse(response string) (extracted, simplified string) {
	if m := extractedRe.FindStringSubmatch(response); len(m) == 2 {
		extracted = strings.TrimSpace(m[1])
	}
	if m := simplifiedRe.FindStringSubmatch(response); len(m) == 2 {
		simplified = strings.TrimSpace(m[1])
	}

	if simplified == "" {
		simplified = strings.TrimSpace(response)
	}
	return extracted, simplified
}

// SimplifyPDF extracts text from a PDF and rewrites it in plain language
func (s *Simplifier) SimplifyPDF(ctx context.Context, content []byte, backend llm.Backend) (*SimplifiedResult, error) {
	text, err := s.extractor.ExtractText(content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScannedPDF, err)
	}

	return s.SimplifyText(ctx, text, backend)
}

// SimplifyText rewrites already-extracted report text in plain language
func (s *Simplifier) SimplifyText(ctx context.Context, text string, backend llm.Backend) (*SimplifiedResult, error) {
	prompt := llm.BuildSimplifyPrompt(text)
	simplified, usedBackend, err := s.dispatcher.Complete(ctx,
		[]llm.Message{{Role: "user", Content: prompt}}, llm.DefaultOptions, backend)
	if err != nil {
		return nil, fmt.Errorf("failed to simplify report: %w", err)
	}

	return &SimplifiedResult{
		ExtractedText: text,
		Simplified:    strings.TrimSpace(simplified),
		Backend:       usedBackend,
	}, nil
}

// SimplifyImage transcribes and simplifies a photographed report. A vision
// provider does both in one sectioned call; when a non-vision backend was
// requested, its text model re-summarizes the vision transcription.
func (s *Simplifier) SimplifyImage(ctx context.Context, imageData []byte, mimeType string, backend llm.Backend) (*SimplifiedResult, error) {
	vision := s.dispatcher.VisionProvider(backend)
	if vision == nil {
		return nil, fmt.Errorf("no vision-capable provider available")
	}

	response, err := vision.CompleteVision(ctx, llm.BuildVisionSimplifyPrompt(), imageData, mimeType, llm.DefaultOptions)
	if err != nil {
		return nil, fmt.Errorf("vision extraction failed: %w", err)
	}

	extracted, simplified := ParseVisionResponse(response)

	// The vision provider already produced the explanation. When the caller
	// asked for a different text backend, rerun the simplification there.
	if backend != vision.Name() && extracted != "" {
		result, err := s.SimplifyText(ctx, extracted, backend)
		if err == nil {
			result.Backend = backend
			return result, nil
		}
		log.Printf("[report] re-summarize via %s failed, keeping vision output: %v", backend, err)
	}

	return &SimplifiedResult{
		ExtractedText: extracted,
		Simplified:    simplified,
		Backend:       vision.Name(),
	}, nil
}
