package services

import (
	"context"
	"errors"
	"sync"
)

// fakeGenerator stands in for Gemini. Replies are keyed by schema name and
// every request is recorded.
type fakeGenerator struct {
	mu        sync.Mutex
	responses map[string]string
	err       error
	requests  []GenerateRequest
}

func newFakeGenerator(responses map[string]string) *fakeGenerator {
	return &fakeGenerator{responses: responses}
}

func (f *fakeGenerator) Generate(_ context.Context, req GenerateRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	reply, ok := f.responses[req.Operation]
	if !ok {
		return "", errors.New("no canned response for " + req.Operation)
	}
	return reply, nil
}

func (f *fakeGenerator) Model() string {
	return "fake-model"
}

func (f *fakeGenerator) calls() []GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]GenerateRequest(nil), f.requests...)
}

// fakeExtractor returns the document bytes as text, except for inputs listed
// in empty which yield nothing.
type fakeExtractor struct {
	mu    sync.Mutex
	empty map[string]bool
	count int
}

func (f *fakeExtractor) ExtractText(data []byte) string {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.count++
	if f.empty[string(data)] {
		return ""
	}
	return string(data)
}

func (f *fakeExtractor) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}
