package llm

import (
	"fmt"
	"strings"
)

// PatientContext is the snapshot of a user's health data that grounds
// assistant responses. All fields are optional.
type PatientContext struct {
	Name             string
	Age              int
	Gender           string
	BMI              float64
	HealthGoal       string
	Conditions       []string
	Lifestyle        []string
	Allergies        string
	CurrentSymptoms  string
	RecentDetections []DetectionSummary
}

// DetectionSummary is a compact view of one recent scan result
type DetectionSummary struct {
	Type       string
	Prediction string
	Confidence float64
	RiskLevel  string
}

const assistantPersona = "You are a careful, supportive health assistant for a consumer health-monitoring app. " +
	"You explain findings in plain language, encourage healthy habits, and always remind the user that " +
	"you are not a substitute for a doctor. Keep answers concise and practical."

// BuildChatSystemPrompt produces the system prompt for assistant chat
func BuildChatSystemPrompt(pc PatientContext) string {
	var b strings.Builder
	b.WriteString(assistantPersona)
	b.WriteString("\n\nPatient context:\n")
	b.WriteString(pc.describe())
	b.WriteString("\nIf the question is unrelated to health, politely steer back to health topics.")
	return b.String()
}

// BuildSuggestionPrompt produces the prompt asking for post-scan guidance
func BuildSuggestionPrompt(pc PatientContext, detectionType, prediction string, confidence float64, riskLevel string) string {
	var b strings.Builder
	b.WriteString(assistantPersona)
	b.WriteString("\n\nPatient context:\n")
	b.WriteString(pc.describe())
	fmt.Fprintf(&b, "\nA %s scan was just classified as %q with %.0f%% confidence (risk level %s).\n",
		detectionType, prediction, confidence*100, riskLevel)
	b.WriteString("Give 3-5 short, numbered suggestions on what the patient should do next, " +
		"including whether and how urgently to see a doctor. Do not diagnose.")
	return b.String()
}

// BuildRiskAssessmentPrompt asks for a structured JSON risk assessment
func BuildRiskAssessmentPrompt(pc PatientContext) string {
	var b strings.Builder
	b.WriteString("You are a health risk assessment engine.\n\nPatient context:\n")
	b.WriteString(pc.describe())
	b.WriteString("\nRespond with ONLY a JSON object of this exact shape:\n")
	b.WriteString(`{"riskScore": <0-100 integer>, "riskLevel": "LOW|MODERATE|HIGH|CRITICAL", ` +
		`"factors": ["..."], "recommendations": ["..."]}` + "\n")
	b.WriteString("No markdown, no code fences, no commentary.")
	return b.String()
}

// BuildSimplifyPrompt asks for a plain-language rewrite of report text
func BuildSimplifyPrompt(reportText string) string {
	var b strings.Builder
	b.WriteString("You are a medical report translator. Rewrite the following medical report " +
		"in plain, non-technical language a patient can understand. Explain abnormal values, " +
		"keep all numbers, and end with a short summary of what to discuss with a doctor.\n\n")
	b.WriteString("Report:\n")
	b.WriteString(reportText)
	return b.String()
}

// Delimiters the vision extract+simplify prompt asks the model to emit
const (
	ExtractedTextStart = "---EXTRACTED_TEXT_START---"
	ExtractedTextEnd   = "---EXTRACTED_TEXT_END---"
	SimplifiedStart    = "---SIMPLIFIED_REPORT_START---"
	SimplifiedEnd      = "---SIMPLIFIED_REPORT_END---"
)

// BuildVisionSimplifyPrompt asks a vision model to both transcribe and
// simplify a photographed report in one sectioned response.
func BuildVisionSimplifyPrompt() string {
	var b strings.Builder
	b.WriteString("This image is a medical report. Do two things:\n")
	fmt.Fprintf(&b, "1. Transcribe all text in the image between %s and %s.\n", ExtractedTextStart, ExtractedTextEnd)
	fmt.Fprintf(&b, "2. Rewrite the report in plain, non-technical language a patient can understand, between %s and %s.\n",
		SimplifiedStart, SimplifiedEnd)
	b.WriteString("Keep all numbers. Use exactly those delimiters, nothing else around them.")
	return b.String()
}

func (pc PatientContext) describe() string {
	var lines []string

	if pc.Name != "" {
		lines = append(lines, "- Name: "+pc.Name)
	}
	if pc.Age > 0 {
		lines = append(lines, fmt.Sprintf("- Age: %d", pc.Age))
	}
	if pc.Gender != "" {
		lines = append(lines, "- Gender: "+pc.Gender)
	}
	if pc.BMI > 0 {
		lines = append(lines, fmt.Sprintf("- BMI: %.1f", pc.BMI))
	}
	if pc.HealthGoal != "" {
		lines = append(lines, "- Health goal: "+pc.HealthGoal)
	}
	if len(pc.Conditions) > 0 {
		lines = append(lines, "- Conditions: "+strings.Join(pc.Conditions, ", "))
	}
	if len(pc.Lifestyle) > 0 {
		lines = append(lines, "- Lifestyle: "+strings.Join(pc.Lifestyle, ", "))
	}
	if pc.Allergies != "" {
		lines = append(lines, "- Allergies: "+pc.Allergies)
	}
	if pc.CurrentSymptoms != "" {
		lines = append(lines, "- Current symptoms: "+pc.CurrentSymptoms)
	}
	for _, d := range pc.RecentDetections {
		lines = append(lines, fmt.Sprintf("- Recent %s scan: %s (%.0f%% confidence, risk %s)",
			d.Type, d.Prediction, d.Confidence*100, d.RiskLevel))
	}

	if len(lines) == 0 {
		return "- No profile data available.\n"
	}
	return strings.Join(lines, "\n") + "\n"
}
