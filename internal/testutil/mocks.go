package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/awtza/phrasebook/internal/audio"
)

// MockSynthesizer implements audio.Synthesizer and records every request
type MockSynthesizer struct {
	mu sync.Mutex

	Errors       map[string]error // Keyed by request text
	Empty        map[string]bool  // Texts answered with an empty payload
	AvailableErr error
	Calls        []audio.Request
	Closed       int
}

// Synthesize returns a fake MP3 payload that names the text and voice
func (m *MockSynthesizer) Synthesize(ctx context.Context, req audio.Request) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.Errors[req.Text]; ok {
		return nil, err
	}
	if m.Empty[req.Text] {
		return nil, nil
	}

	return append(GenerateAudioData(), []byte(fmt.Sprintf("%s|%s", req.Voice, req.Text))...), nil
}

// Name returns the provider name
func (m *MockSynthesizer) Name() string {
	return "mock"
}

// IsAvailable returns AvailableErr
func (m *MockSynthesizer) IsAvailable() error {
	return m.AvailableErr
}

// Close counts how often the synthesizer was released
func (m *MockSynthesizer) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed++
	return nil
}

// Texts returns the text of every recorded request in call order
func (m *MockSynthesizer) Texts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	texts := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		texts[i] = c.Text
	}
	return texts
}

// ConcatCall records one MockConcatenator invocation
type ConcatCall struct {
	LeadIn   time.Duration
	Segments []audio.Segment
	Dst      string
}

// MockConcatenator implements audio.Concatenator by writing the segment
// paths to dst instead of audio
type MockConcatenator struct {
	mu     sync.Mutex
	Err    error
	Errors map[string]error // Keyed by dst
	Calls  []ConcatCall
}

// Concat records the call and writes a placeholder file
func (m *MockConcatenator) Concat(ctx context.Context, leadIn time.Duration, segments []audio.Segment, dst string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, ConcatCall{LeadIn: leadIn, Segments: segments, Dst: dst})
	if m.Err != nil {
		return m.Err
	}
	if err, ok := m.Errors[dst]; ok {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	return os.WriteFile(dst, []byte(fmt.Sprintf("%d segments", len(segments))), 0644)
}

// CallFor returns the recorded call that wrote dst
func (m *MockConcatenator) CallFor(dst string) (ConcatCall, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.Calls {
		if c.Dst == dst {
			return c, true
		}
	}
	return ConcatCall{}, false
}

// GenerateAudioData generates mock audio data
func GenerateAudioData() []byte {
	// Simple mock MP3 header
	return []byte{0xFF, 0xFB, 0x90, 0x00}
}
