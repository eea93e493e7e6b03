// Package conversation implements the onboarding turn orchestrator: it owns
// the collected-data state machine, decides which field to elicit, runs the
// LinkedIn import bridge, and hands completed profiles to the analysis
// runner. The dialogue model narrates; this package decides.
package conversation

import (
	"github.com/hiremeplz/hiremeplz/internal/onboarding"
	"github.com/hiremeplz/hiremeplz/internal/types"
)

// Event is one streamed item of a conversation turn. Concrete events
// marshal directly to the wire format.
type Event interface {
	Kind() string
}

// EmitFunc receives events in order during a turn.
type EmitFunc func(Event)

// TextEvent is an increment of the assistant's visible reply.
type TextEvent struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

func (TextEvent) Kind() string { return "text" }

// ToolCallEvent reports a state change of a named tool invocation.
type ToolCallEvent struct {
	Type   string `json:"type"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

func (ToolCallEvent) Kind() string { return "tool_call" }

// ToolStatusEvent is periodic progress while a tool runs.
type ToolStatusEvent struct {
	Type    string `json:"type"`
	Elapsed int    `json:"elapsed"`
}

func (ToolStatusEvent) Kind() string { return "tool_status" }

// AnalysisStartedEvent marks the handoff to the profile scorer.
type AnalysisStartedEvent struct {
	Type string `json:"type"`
}

func (AnalysisStartedEvent) Kind() string { return "analysis_started" }

// ReasoningStartedEvent marks the beginning of scorer reasoning.
type ReasoningStartedEvent struct {
	Type string `json:"type"`
}

func (ReasoningStartedEvent) Kind() string { return "reasoning_started" }

// ReasoningChunkEvent is an increment of the scorer's reasoning stream.
type ReasoningChunkEvent struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

func (ReasoningChunkEvent) Kind() string { return "reasoning_chunk" }

// ReasoningEvaluatingEvent marks the scorer validating its own output.
type ReasoningEvaluatingEvent struct {
	Type string `json:"type"`
}

func (ReasoningEvaluatingEvent) Kind() string { return "reasoning_evaluating" }

// ReasoningCompletedEvent carries the reasoning wall time in seconds.
type ReasoningCompletedEvent struct {
	Type     string `json:"type"`
	Duration int    `json:"duration"`
}

func (ReasoningCompletedEvent) Kind() string { return "reasoning_completed" }

// ProfileAnalysisEvent carries the final scored analysis.
type ProfileAnalysisEvent struct {
	Type string `json:"type"`
	types.ProfileAnalysis
}

func (ProfileAnalysisEvent) Kind() string { return "profile_analysis" }

// FinalEvent closes every successful turn with the authoritative state.
type FinalEvent struct {
	Type          string               `json:"type"`
	Message       string               `json:"message"`
	CollectedData types.CollectedData  `json:"collectedData"`
	IsComplete    bool                 `json:"isComplete"`
	InputHint     onboarding.InputHint `json:"inputHint"`
}

func (FinalEvent) Kind() string { return "final" }

// ErrorEvent reports a failed turn to the stream.
type ErrorEvent struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (ErrorEvent) Kind() string { return "error" }

// Constructors fix the Type discriminator so callers cannot mismatch it.

func newText(content string) TextEvent       { return TextEvent{Type: "text", Content: content} }
func newToolCall(name, status string) ToolCallEvent {
	return ToolCallEvent{Type: "tool_call", Name: name, Status: status}
}
func newToolStatus(elapsed int) ToolStatusEvent {
	return ToolStatusEvent{Type: "tool_status", Elapsed: elapsed}
}

// NewError builds an error event for the stream.
func NewError(message string) ErrorEvent { return ErrorEvent{Type: "error", Message: message} }
