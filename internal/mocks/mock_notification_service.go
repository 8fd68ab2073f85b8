package mocks

import (
	"sync"

	"github.com/jumx0202/ordersvc/domain"
)

// MockNotificationService implements domain.NotificationService for testing.
// It records every message so tests can assert on delivered content.
type MockNotificationService struct {
	SendSMSFunc   func(to, message string) error
	SendEmailFunc func(to, subject, body string) error

	mu         sync.Mutex
	SentSMS    []SentMessage
	SentEmails []SentEmail
}

// SentMessage is a recorded SMS delivery
type SentMessage struct {
	To      string
	Message string
}

// SentEmail is a recorded e-mail delivery
type SentEmail struct {
	To      string
	Subject string
	Body    string
}

// NewMockNotificationService creates a new MockNotificationService
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

// SendSMS records the message and delegates to SendSMSFunc when set
func (m *MockNotificationService) SendSMS(to, message string) error {
	m.mu.Lock()
	m.SentSMS = append(m.SentSMS, SentMessage{To: to, Message: message})
	m.mu.Unlock()
	if m.SendSMSFunc != nil {
		return m.SendSMSFunc(to, message)
	}
	return nil
}

// SendEmail records the message and delegates to SendEmailFunc when set
func (m *MockNotificationService) SendEmail(to, subject, body string) error {
	m.mu.Lock()
	m.SentEmails = append(m.SentEmails, SentEmail{To: to, Subject: subject, Body: body})
	m.mu.Unlock()
	if m.SendEmailFunc != nil {
		return m.SendEmailFunc(to, subject, body)
	}
	return nil
}

// LastEmail returns the most recent recorded e-mail, or nil.
func (m *MockNotificationService) LastEmail() *SentEmail {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.SentEmails) == 0 {
		return nil
	}
	e := m.SentEmails[len(m.SentEmails)-1]
	return &e
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
