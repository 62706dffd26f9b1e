package ai

import (
	"strings"

	"github.com/carelane/carelane/backend/internal/model/chat"
)

// systemPrompt pins the assistant to wellness guidance and safety-first
// behavior regardless of what the conversation drifts toward.
const systemPrompt = "You are a careful, friendly healthcare assistant. " +
	"Provide general wellness info, triage-style guidance, and safety-first suggestions. " +
	"DO NOT diagnose or prescribe medicines/dosages. " +
	"Use plain language and short bullet points when helpful. " +
	"ALWAYS: remind to consult a licensed clinician for diagnosis/treatment, " +
	"and to seek urgent care for red flags (chest pain, trouble breathing, severe bleeding, " +
	"sudden weakness on one side, fainting, high fever in infants). " +
	"Consider the user's age, sex, pregnancy, allergies, and chronic conditions when given."

// historyWindow bounds how many stored turns feed the prompt. Older turns
// are dropped, never summarized.
const historyWindow = 8

// BuildMessages assembles the ordered prompt for one chat turn: the fixed
// system prompt, the patient context when any profile field is set, the
// last turns of history oldest first, then the new user message. Pure; the
// stored history is never mutated.
func BuildMessages(history []chat.Turn, profile chat.Profile, userText string) []chat.PromptMessage {
	messages := make([]chat.PromptMessage, 0, historyWindow+3)
	messages = append(messages, chat.PromptMessage{Role: chat.RoleSystem, Content: systemPrompt})

	if lines := profile.ContextLines(); len(lines) > 0 {
		messages = append(messages, chat.PromptMessage{
			Role:    chat.RoleSystem,
			Content: strings.Join(lines, "\n"),
		})
	}

	startIdx := 0
	if len(history) > historyWindow {
		startIdx = len(history) - historyWindow
	}
	for _, turn := range history[startIdx:] {
		messages = append(messages, chat.PromptMessage{Role: turn.Role, Content: turn.Text})
	}

	messages = append(messages, chat.PromptMessage{Role: chat.RoleUser, Content: userText})
	return messages
}
