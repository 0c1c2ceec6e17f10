package llm

import "strings"

// Canned responses used when every provider fails. Selection is a simple
// keyword match on the user's message.
var fallbackResponses = []struct {
	keywords []string
	text     string
}{
	{
		keywords: []string{"hello", "hi ", "hey", "good morning", "good evening"},
		text: "Hello! I'm your health assistant. I can help you understand your scan results, " +
			"track your vitals, and answer general health questions. What would you like to know?",
	},
	{
		keywords: []string{"symptom", "pain", "ache", "fever", "dizzy", "nausea"},
		text: "I'm having trouble reaching the AI service right now, but symptoms that are severe, " +
			"sudden, or getting worse deserve prompt medical attention. Please consider contacting " +
			"a doctor, and log your symptoms in the app so you can share them at your visit.",
	},
	{
		keywords: []string{"diet", "food", "eat", "nutrition", "meal"},
		text: "I can't generate a personalized answer right now, but a balanced plate works for most " +
			"people: half vegetables and fruits, a quarter whole grains, a quarter lean protein, and " +
			"plenty of water. If you have a diagnosed condition, follow the diet your doctor recommended.",
	},
	{
		keywords: []string{"exercise", "workout", "activity", "walk", "gym"},
		text: "I can't generate a personalized answer right now. As a general guideline, aim for about " +
			"150 minutes of moderate activity per week, plus two strength sessions. Start gently and " +
			"check with a doctor before new routines if you have heart or joint problems.",
	},
}

const defaultFallbackText = "I'm sorry, the AI service is temporarily unavailable. Your data is saved, " +
	"and you can try again in a few minutes. For anything urgent, please contact a medical professional."

// FallbackSuggestionText is returned when a scan suggestion cannot be generated
const FallbackSuggestionText = "AI suggestions are temporarily unavailable for this scan. " +
	"Please review the classification result with a medical professional, and check back later."

// FallbackChatResponse picks a canned reply matching the user's message
func FallbackChatResponse(userMessage string) string {
	lowered := " " + strings.ToLower(userMessage) + " "

	for _, canned := range fallbackResponses {
		for _, kw := range canned.keywords {
			if strings.Contains(lowered, kw) {
				return canned.text
			}
		}
	}
	return defaultFallbackText
}
