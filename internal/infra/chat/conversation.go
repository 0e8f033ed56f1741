package chat

import "strings"

// MaxHistory bounds how many prior turns are forwarded to the provider.
const MaxHistory = 20

// BuildConversation concatenates the block's system prompt, the visitor's
// prior turns and the new message. Only user/assistant turns with text are
// kept from history, and only the most recent MaxHistory of them.
func BuildConversation(systemPrompt string, history []Message, message string) []Message {
	turns := make([]Message, 0, len(history))
	for _, m := range history {
		content := strings.TrimSpace(m.Content)
		if content == "" {
			continue
		}
		if m.Role != RoleUser && m.Role != RoleAssistant {
			continue
		}
		turns = append(turns, Message{Role: m.Role, Content: content})
	}
	if len(turns) > MaxHistory {
		turns = turns[len(turns)-MaxHistory:]
	}

	out := make([]Message, 0, len(turns)+2)
	if p := strings.TrimSpace(systemPrompt); p != "" {
		out = append(out, Message{Role: RoleSystem, Content: p})
	}
	out = append(out, turns...)
	out = append(out, Message{Role: RoleUser, Content: strings.TrimSpace(message)})
	return out
}
