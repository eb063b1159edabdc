// Package llmtest provides a scripted llm.Completer for tests.
package llmtest

import (
	"context"
	"iter"
	"sync"

	"github.com/rcliao/yournote/internal/llm"
)

// Fake returns Reply (or Err) for every call and records the requests.
// Chunks, when set, are what Stream yields; otherwise Stream yields Reply
// as a single chunk.
type Fake struct {
	Reply  string
	Chunks []string
	Err    error

	mu       sync.Mutex
	Requests []llm.ChatRequest
}

func (f *Fake) record(req llm.ChatRequest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, req)
}

// Calls returns how many requests were made.
func (f *Fake) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Requests)
}

// Last returns the most recent request.
func (f *Fake) Last() llm.ChatRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Requests) == 0 {
		return llm.ChatRequest{}
	}
	return f.Requests[len(f.Requests)-1]
}

// System returns the system message of the most recent request.
func (f *Fake) System() string {
	for _, m := range f.Last().Messages {
		if m.Role == "system" {
			return m.Content
		}
	}
	return ""
}

// User returns the user message of the most recent request.
func (f *Fake) User() string {
	for _, m := range f.Last().Messages {
		if m.Role == "user" {
			return m.Content
		}
	}
	return ""
}

func (f *Fake) Complete(ctx context.Context, req llm.ChatRequest) (string, error) {
	f.record(req)
	if f.Err != nil {
		return "", f.Err
	}
	return f.Reply, nil
}

func (f *Fake) Stream(ctx context.Context, req llm.ChatRequest) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		f.record(req)
		if f.Err != nil {
			yield("", f.Err)
			return
		}
		chunks := f.Chunks
		if chunks == nil {
			chunks = []string{f.Reply}
		}
		for _, c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
	}
}

// Gateway wraps f in a gateway with the default model settings.
func (f *Fake) Gateway() *llm.Gateway {
	return llm.NewGateway(f, "test-model", 0.7, 1024, nil)
}
