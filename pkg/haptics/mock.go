package haptics

import "sync"

// Mock records warning intensities for testing.
type Mock struct {
	mu          sync.Mutex
	intensities []float64
}

// NewMock creates a new mock actuator.
func NewMock() *Mock {
	return &Mock{}
}

// PlayWarning records the intensity.
func (m *Mock) PlayWarning(intensity float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.intensities = append(m.intensities, intensity)
}

// Intensities returns a copy of the recorded intensities, in call order.
func (m *Mock) Intensities() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.intensities))
	copy(out, m.intensities)
	return out
}

// Last returns the most recent intensity, or -1 if none was recorded.
func (m *Mock) Last() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.intensities) == 0 {
		return -1
	}
	return m.intensities[len(m.intensities)-1]
}
