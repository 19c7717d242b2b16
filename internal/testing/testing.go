// Package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/plx/internal/services"
)

// FakeSender is a [services.Sender] test double that records requests and replays queued results.
//
// When the queue is empty it answers 200 with an empty JSON object.
type FakeSender struct {
	mu        sync.Mutex
	Requests  []services.Request
	responses []fakeResult
}

type fakeResult struct {
	resp *services.APIResponse
	err  error
}

var _ services.Sender = (*FakeSender)(nil)

// Respond queues a successful response with the given status and body.
func (f *FakeSender) Respond(status int, body string) *FakeSender {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResult{resp: &services.APIResponse{StatusCode: status, Body: []byte(body)}})
	return f
}

// Fail queues an error result.
func (f *FakeSender) Fail(err error) *FakeSender {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses = append(f.responses, fakeResult{err: err})
	return f
}

func (f *FakeSender) Send(ctx context.Context, req *services.Request) (*services.APIResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Requests = append(f.Requests, *req)

	if len(f.responses) == 0 {
		return &services.APIResponse{StatusCode: http.StatusOK, Body: []byte("{}")}, nil
	}
	next := f.responses[0]
	f.responses = f.responses[1:]
	return next.resp, next.err
}

// Last returns the most recent request.
func (f *FakeSender) Last() services.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.Requests) == 0 {
		return services.Request{}
	}
	return f.Requests[len(f.Requests)-1]
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
