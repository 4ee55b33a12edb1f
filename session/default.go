package session

import "sync"

var (
	defaultMu    sync.Mutex
	defaultState *State
)

// Install offers s as the process-default state. The first installed state
// wins: while one is installed, later offers are discarded and Install
// returns the original. Callers that need to know whether they became the
// default compare the return value against their own state.
func Install(s *State) *State {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultState != nil {
		return defaultState
	}
	defaultState = s
	return s
}

// Installed returns the process-default state, or nil before any Install.
func Installed() *State {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultState
}

// Uninstall clears the process-default slot. Used for test isolation and
// clean session restarts only.
func Uninstall() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultState = nil
}
