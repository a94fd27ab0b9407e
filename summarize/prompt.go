package summarize

import "fmt"

// Prompt shape for the completion-style backends (Ollama, Gemini).
const promptTemplate = `Please provide a concise summary of the following transcript.
Focus on the main points and key insights.

TRANSCRIPT:
%s

SUMMARY:`

func buildPrompt(text string, maxLength int) string {
	prompt := fmt.Sprintf(promptTemplate, text)
	if maxLength > 0 {
		prompt += fmt.Sprintf("\n(Please keep the summary under %d words)", maxLength)
	}
	return prompt
}

// buildUserMessage is the user-role message for the chat-style backends.
// The length constraint rides on the user message, not the system one.
func buildUserMessage(preamble, text string, maxLength int) string {
	msg := fmt.Sprintf("%s\n\n%s", preamble, text)
	if maxLength > 0 {
		msg += fmt.Sprintf("\n\nKeep the summary under %d words.", maxLength)
	}
	return msg
}
