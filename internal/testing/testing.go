// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/jabberjabberjabber/llm-jukebox/internal/models"
)

// MockProvider is a test double for [provider.Service]. Responses are set
// per call; unset errors return the configured values.
type MockProvider struct {
	SearchResult   *models.Candidate
	SearchErr      error
	FetchPath      string
	FetchErr       error
	DescribeResult *models.Candidate
	DescribeErr    error

	SearchCalls   []string
	FetchCalls    []string
	DescribeCalls []string
}

func (m *MockProvider) SearchOne(ctx context.Context, query string) (*models.Candidate, error) {
	m.SearchCalls = append(m.SearchCalls, query)
	return m.SearchResult, m.SearchErr
}

func (m *MockProvider) Fetch(ctx context.Context, candidate *models.Candidate, query string) (string, error) {
	m.FetchCalls = append(m.FetchCalls, candidate.Title)
	return m.FetchPath, m.FetchErr
}

func (m *MockProvider) Describe(ctx context.Context, url string) (*models.Candidate, error) {
	m.DescribeCalls = append(m.DescribeCalls, url)
	return m.DescribeResult, m.DescribeErr
}

func (m *MockProvider) Name() string { return "mock" }

// StubPlayer is a test double for [jukebox.AudioPlayer]. It tracks state
// like the real player but never touches audio hardware.
type StubPlayer struct {
	PlayErr error

	Current    *models.Track
	PlayCalls  []*models.Track
	StopCalls  int
	WaitCalled bool
}

func (p *StubPlayer) Play(track *models.Track) error {
	p.PlayCalls = append(p.PlayCalls, track)
	if p.PlayErr != nil {
		return p.PlayErr
	}
	p.Current = track
	return nil
}

func (p *StubPlayer) Stop() bool {
	p.StopCalls++
	if p.Current == nil {
		return false
	}
	p.Current = nil
	return true
}

func (p *StubPlayer) NowPlaying() *models.Track { return p.Current }

func (p *StubPlayer) Wait(ctx context.Context) error {
	p.WaitCalled = true
	return nil
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

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
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

// MustWriteFile writes an audio-fixture file, creating parent dirs.
func MustWriteFile(t *testing.T, path string, content []byte) {
	t.Helper()
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
