package algorithms

import (
	"fmt"
	"sort"
	"sync"

	"bregman-segmenter/internal/algorithms/splitbregman"
	"bregman-segmenter/internal/algorithms/threshold"
	"bregman-segmenter/internal/logger"

	"github.com/samber/lo"
)

type Manager struct {
	algorithms       map[string]Algorithm
	currentAlgorithm string
	parameters       map[string]map[string]interface{}
	mu               sync.RWMutex
}

func NewManager(log logger.Logger) *Manager {
	manager := &Manager{
		algorithms:       make(map[string]Algorithm),
		currentAlgorithm: splitbregman.Name,
		parameters:       make(map[string]map[string]interface{}),
	}

	manager.registerAlgorithms(log)

	return manager
}

func (m *Manager) registerAlgorithms(log logger.Logger) {
	m.Register(splitbregman.NewProcessor(log))
	m.Register(threshold.NewProcessor())
}

// Register adds or replaces an algorithm under its own name.
func (m *Manager) Register(algorithm Algorithm) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.algorithms[algorithm.GetName()] = algorithm
	m.parameters[algorithm.GetName()] = algorithm.GetDefaultParameters()
}

func (m *Manager) SetCurrentAlgorithm(algorithm string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.algorithms[algorithm]; !exists {
		return fmt.Errorf("unknown algorithm: %s", algorithm)
	}

	m.currentAlgorithm = algorithm
	return nil
}

func (m *Manager) GetCurrentAlgorithm() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentAlgorithm
}

func (m *Manager) GetParameters(algorithm string) map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if params, exists := m.parameters[algorithm]; exists {
		return lo.Assign(params)
	}

	return make(map[string]interface{})
}

// SetParameter stores a parameter after checking that the algorithm accepts
// the resulting parameter set.
func (m *Manager) SetParameter(algorithm, name string, value interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	params, exists := m.parameters[algorithm]
	if !exists {
		return fmt.Errorf("unknown algorithm: %s", algorithm)
	}

	candidate := lo.Assign(params, map[string]interface{}{name: value})
	if err := m.algorithms[algorithm].ValidateParameters(candidate); err != nil {
		return err
	}
	m.parameters[algorithm] = candidate
	return nil
}

func (m *Manager) GetAlgorithm(name string) (Algorithm, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if algorithm, exists := m.algorithms[name]; exists {
		return algorithm, nil
	}

	return nil, fmt.Errorf("unknown algorithm: %s", name)
}

func (m *Manager) GetAvailableAlgorithms() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := lo.Keys(m.algorithms)
	sort.Strings(names)
	return names
}
