package testing

import (
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/alephnull/rfw/pkg/logger"
)

func NewTestLogger() logger.Logger {
	log, _ := logger.NewSlogLogger(&logger.Config{
		Level:  logger.LevelDebug,
		Format: logger.FormatText,
	})
	return log
}

// MockRunner is a testify mock for the iptables command runner.
type MockRunner struct {
	mock.Mock
}

func (m *MockRunner) Run(name string, args ...string) ([]byte, error) {
	callArgs := make([]interface{}, 0, len(args)+1)
	callArgs = append(callArgs, name)
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	result := m.Called(callArgs...)
	if result.Get(0) == nil {
		return nil, result.Error(1)
	}
	return result.Get(0).([]byte), result.Error(1)
}

// Call is one recorded command execution with its wall-clock interval.
type Call struct {
	Name  string
	Args  []string
	Start time.Time
	End   time.Time
}

// RecordingRunner records every execution with start/end timestamps and an
// optional artificial duration, so tests can prove that executions behind
// the gate never overlap.
type RecordingRunner struct {
	mu    sync.Mutex
	calls []Call

	// Delay stretches each call to make accidental overlap observable.
	Delay time.Duration

	// Respond produces the output for a call. Nil means empty output and
	// no error.
	Respond func(name string, args []string) ([]byte, error)
}

func (r *RecordingRunner) Run(name string, args ...string) ([]byte, error) {
	start := time.Now()
	if r.Delay > 0 {
		time.Sleep(r.Delay)
	}

	var out []byte
	var err error
	if r.Respond != nil {
		out, err = r.Respond(name, args)
	}

	r.mu.Lock()
	r.calls = append(r.calls, Call{Name: name, Args: args, Start: start, End: time.Now()})
	r.mu.Unlock()

	return out, err
}

func (r *RecordingRunner) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	calls := make([]Call, len(r.calls))
	copy(calls, r.calls)
	return calls
}
