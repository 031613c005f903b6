// Package chat manages a turn-based conversation with the backend
// assistant, scoped to one analysis report's context (or none, for a
// general-purpose assistant).
package chat

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Mdsinan09/hcis-project/internal/report"
)

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in the conversation.
type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
	// IsPlaceholder marks a transient stand-in for an in-flight assistant
	// reply. At most one placeholder exists at any time.
	IsPlaceholder bool `json:"is_placeholder,omitempty"`
}

// Transport issues one chat turn against the backend.
type Transport interface {
	Chat(ctx context.Context, question string, contextPayload map[string]any) (string, error)
}

// ContextFunc supplies an implicit context payload for an unbound session,
// typically the most recently completed history entry.
type ContextFunc func(ctx context.Context) map[string]any

// Fixed reply strings. Chat failures are absorbed into the message stream
// rather than surfaced as errors, so these are what the user sees.
const (
	PlaceholderContent = "Thinking..."
	emptyReply         = "The assistant returned no response."
	errorReply         = "Sorry, something went wrong while answering that. Please try again."
)

// Session holds one conversation. Turns are strictly serialized: a new
// question is silently dropped while a prior turn is still in flight, which
// keeps the single-placeholder invariant trivially true.
type Session struct {
	mu        sync.Mutex
	transport Transport
	bound     *report.AnalysisReport
	contextFn ContextFunc
	messages  []Message
	inFlight  bool
}

// NewSession creates a conversation bound to the given report. The report's
// raw payload travels with every question as conversational context.
func NewSession(t Transport, bound *report.AnalysisReport) *Session {
	return &Session{transport: t, bound: bound}
}

// NewGeneralSession creates an unbound conversation. contextFn, when
// non-nil, supplies an implicit context source per turn; otherwise the
// context is an empty object.
func NewGeneralSession(t Transport, contextFn ContextFunc) *Session {
	return &Session{transport: t, contextFn: contextFn}
}

// BoundReport returns the report this session is scoped to, or nil.
func (s *Session) BoundReport() *report.AnalysisReport {
	return s.bound
}

// Messages returns a snapshot of the conversation in append order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Send runs one conversational turn.
//
// Blank questions and questions asked while a turn is in flight are
// rejected silently (nil, nil): no message is appended and no request
// issued. Otherwise the user message and a placeholder are appended
// immediately; when the transport resolves, the placeholder is replaced in
// place with either the assistant's text or a fixed apology. Send never
// returns a transport error.
func (s *Session) Send(ctx context.Context, question string) (*Message, error) {
	question = strings.TrimSpace(question)

	s.mu.Lock()
	if question == "" || s.inFlight {
		s.mu.Unlock()
		return nil, nil
	}
	s.inFlight = true
	s.messages = append(s.messages,
		Message{Role: RoleUser, Content: question, Timestamp: time.Now()},
		Message{Role: RoleAssistant, Content: PlaceholderContent, Timestamp: time.Now(), IsPlaceholder: true},
	)
	contextPayload := s.contextPayload(ctx)
	s.mu.Unlock()

	answer, err := s.transport.Chat(ctx, question, contextPayload)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false

	content := answer
	if err != nil {
		content = errorReply
	} else if strings.TrimSpace(content) == "" {
		content = emptyReply
	}

	resolved := s.resolvePlaceholder(content)
	return resolved, nil
}

// contextPayload picks the context for the next turn: the bound report's
// raw payload, the implicit source, or an empty object. Must be called with
// the lock held.
func (s *Session) contextPayload(ctx context.Context) map[string]any {
	if s.bound != nil && s.bound.FullReport != nil {
		return s.bound.FullReport
	}
	if s.contextFn != nil {
		if payload := s.contextFn(ctx); payload != nil {
			return payload
		}
	}
	return map[string]any{}
}

// resolvePlaceholder replaces the single outstanding placeholder with the
// final assistant message. The guard in Send serializes turns, so scanning
// from the tail always finds the right one. Must be called with the lock
// held.
func (s *Session) resolvePlaceholder(content string) *Message {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].IsPlaceholder {
			s.messages[i] = Message{
				Role:      RoleAssistant,
				Content:   content,
				Timestamp: time.Now(),
			}
			return &s.messages[i]
		}
	}
	// No placeholder found; append rather than lose the reply.
	s.messages = append(s.messages, Message{Role: RoleAssistant, Content: content, Timestamp: time.Now()})
	return &s.messages[len(s.messages)-1]
}
