package llm

import (
	"context"
	"fmt"
)

// StubClient is a canned-response Client for tests. Responses are consumed
// in order per method; Calls records every prompt received.
type StubClient struct {
	ContentResponses []string
	StreamResponses  [][]string
	JSONResponses    []string
	Err              error

	Calls []string

	contentIdx int
	streamIdx  int
	jsonIdx    int
}

var _ Client = (*StubClient)(nil)

func (s *StubClient) GenerateContent(_ context.Context, prompt string, _ ModelTier) (string, error) {
	s.Calls = append(s.Calls, prompt)
	if s.Err != nil {
		return "", s.Err
	}
	if s.contentIdx >= len(s.ContentResponses) {
		return "", fmt.Errorf("stub: no content response %d", s.contentIdx)
	}
	resp := s.ContentResponses[s.contentIdx]
	s.contentIdx++
	return resp, nil
}

func (s *StubClient) GenerateStream(ctx context.Context, prompt string, _ ModelTier) (<-chan StreamChunk, error) {
	s.Calls = append(s.Calls, prompt)
	if s.Err != nil {
		return nil, s.Err
	}
	if s.streamIdx >= len(s.StreamResponses) {
		return nil, fmt.Errorf("stub: no stream response %d", s.streamIdx)
	}
	chunks := s.StreamResponses[s.streamIdx]
	s.streamIdx++

	out := make(chan StreamChunk)
	go func() {
		defer close(out)
		for _, text := range chunks {
			select {
			case out <- StreamChunk{Text: text}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out, nil
}

func (s *StubClient) GenerateJSON(_ context.Context, prompt string, _ ModelTier) (string, error) {
	s.Calls = append(s.Calls, prompt)
	if s.Err != nil {
		return "", s.Err
	}
	if s.jsonIdx >= len(s.JSONResponses) {
		return "", fmt.Errorf("stub: no json response %d", s.jsonIdx)
	}
	resp := s.JSONResponses[s.jsonIdx]
	s.jsonIdx++
	return CleanJSONBlock(resp), nil
}

func (s *StubClient) GetModel(tier ModelTier) string { return "stub-" + string(tier) }

func (s *StubClient) Close() error { return nil }
