package conversation

import (
	"strings"

	"github.com/mitchellh/mapstructure"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Turn struct {
	Role    Role   `json:"role" mapstructure:"role"`
	Content string `json:"content" mapstructure:"content"`
}

// History is an ordered list of turns. It is only ever extended.
type History []Turn

// Append returns a new history with the turn added at the end. The receiver
// is not modified, so earlier snapshots stay valid.
func (h History) Append(role Role, content string) History {
	next := make(History, len(h), len(h)+1)
	copy(next, h)
	return append(next, Turn{Role: role, Content: content})
}

// UserText lowercases the user turns and joins them with single spaces, in order.
func (h History) UserText() string {
	parts := make([]string, 0, len(h))
	for _, turn := range h {
		if turn.Role != RoleUser {
			continue
		}
		parts = append(parts, strings.ToLower(turn.Content))
	}
	return strings.Join(parts, " ")
}

// Last returns up to n trailing turns.
func (h History) Last(n int) History {
	if n <= 0 {
		return History{}
	}
	if len(h) <= n {
		return h
	}
	return h[len(h)-n:]
}

// DecodeHistory converts loosely typed turns (as read from JSON) into a History.
// Turns that are not objects, lack a role, or whose content is not a string
// are skipped.
func DecodeHistory(raw []any) History {
	history := make(History, 0, len(raw))
	for _, item := range raw {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}

		var turn Turn
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:      &turn,
			ErrorUnused: false,
		})
		if err != nil {
			continue
		}
		if err := decoder.Decode(fields); err != nil {
			continue
		}
		if turn.Role == "" {
			continue
		}
		history = append(history, turn)
	}
	return history
}
