package testutil

import "sync"

// FakeRunner records commands instead of running them. Commands succeed
// unless listed in Fail; every command exists unless listed in Missing.
type FakeRunner struct {
	mu       sync.Mutex
	Commands []string
	Fail     map[string]bool
	Missing  map[string]bool
}

// NewFakeRunner creates a FakeRunner where everything succeeds
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Fail:    make(map[string]bool),
		Missing: make(map[string]bool),
	}
}

func (r *FakeRunner) Run(command string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Commands = append(r.Commands, command)
	return !r.Fail[command]
}

func (r *FakeRunner) CommandExists(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !r.Missing[name]
}
