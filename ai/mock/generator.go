package mock

import "context"

// defaultCompletion is a parseable bullets response matching what the
// expansion prompt asks the model for.
const defaultCompletion = `["Developed and maintained distributed Go services processing millions of requests per day",
"Led cross-functional team of 5 engineers to deliver critical projects on schedule",
"Designed cloud infrastructure that reduced operational costs by 40%"]`

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type MockGenerator struct {
	// CompleteFunc is called by Complete if set.
	// If nil, returns a fixed JSON array of resume bullets.
	CompleteFunc func(ctx context.Context, prompt string, temperature float64) (string, error)

	callCount int
}

// NewMockGenerator creates a mock generator with default canned output.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Complete returns the injected completion, or the canned bullets response.
func (m *MockGenerator) Complete(ctx context.Context, prompt string, temperature float64) (string, error) {
	m.callCount++

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, prompt, temperature)
	}

	return defaultCompletion, nil
}

// CallCount returns the number of times Complete was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.CompleteFunc = nil
}
