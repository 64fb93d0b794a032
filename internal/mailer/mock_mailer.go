package mailer

import (
	"sync"
)

// SentEmail is one message captured by the mock instead of being delivered.
type SentEmail struct {
	Recipient    string
	TemplateFile string
	Data         any
}

// MockMailer records sent emails in memory for assertions in tests. It is
// safe for concurrent use because order notifications run in the background.
type MockMailer struct {
	mu   sync.RWMutex
	sent []SentEmail
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Send(recipient, templateFile string, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = append(m.sent, SentEmail{
		Recipient:    recipient,
		TemplateFile: templateFile,
		Data:         data,
	})

	return nil
}

// SentEmails returns a snapshot of everything sent so far.
func (m *MockMailer) SentEmails() []SentEmail {
	m.mu.RLock()
	defer m.mu.RUnlock()

	sent := make([]SentEmail, len(m.sent))
	copy(sent, m.sent)
	return sent
}

func (m *MockMailer) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.sent = nil
}
