package mocks

// MockPasswordService implements domain.PasswordHasher for testing
type MockPasswordService struct {
	HashFunc   func(plaintext string) (string, error)
	VerifyFunc func(digest, plaintext string) bool
}

// NewMockPasswordService creates a new MockPasswordService
func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(plaintext string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(plaintext)
	}
	return "hashed_" + plaintext, nil
}

func (m *MockPasswordService) Verify(digest, plaintext string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(digest, plaintext)
	}
	return digest == "hashed_"+plaintext
}
