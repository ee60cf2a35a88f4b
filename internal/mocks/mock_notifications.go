package mocks

import (
	"context"
	"sync"
)

// MockSmsSender implements domain.SmsSender and records every message
type MockSmsSender struct {
	SendFunc func(ctx context.Context, toE164, message string) error

	mu       sync.Mutex
	Sent     []string
	Messages []string
}

// NewMockSmsSender creates a new MockSmsSender
func NewMockSmsSender() *MockSmsSender {
	return &MockSmsSender{}
}

func (m *MockSmsSender) Send(ctx context.Context, toE164, message string) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, toE164)
	m.Messages = append(m.Messages, message)
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(ctx, toE164, message)
	}
	return nil
}

// LastMessage returns the body of the most recent SMS, or ""
func (m *MockSmsSender) LastMessage() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Messages) == 0 {
		return ""
	}
	return m.Messages[len(m.Messages)-1]
}

// MockMailSender implements domain.MailSender for testing
type MockMailSender struct {
	SendResetPasswordFunc func(ctx context.Context, email, tempPassword string) error

	mu            sync.Mutex
	Recipients    []string
	TempPasswords []string
}

// NewMockMailSender creates a new MockMailSender
func NewMockMailSender() *MockMailSender {
	return &MockMailSender{}
}

func (m *MockMailSender) SendResetPassword(ctx context.Context, email, tempPassword string) error {
	m.mu.Lock()
	m.Recipients = append(m.Recipients, email)
	m.TempPasswords = append(m.TempPasswords, tempPassword)
	m.mu.Unlock()

	if m.SendResetPasswordFunc != nil {
		return m.SendResetPasswordFunc(ctx, email, tempPassword)
	}
	return nil
}
