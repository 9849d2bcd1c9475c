package authz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeNavigator records navigations and can be told to fail.
type fakeNavigator struct {
	targets []string
	err     error
}

func (n *fakeNavigator) Navigate(target string) error {
	n.targets = append(n.targets, target)
	return n.err
}

func TestGateNavigatesOnceWhileRedirecting(t *testing.T) {
	nav := &fakeNavigator{}
	gate := NewGate(nav)

	state := SessionState{}
	for i := 0; i < 5; i++ {
		render := gate.Evaluate(state, ViewPolicy{}, "/bets")
		assert.Equal(t, RenderWaiting, render)
	}

	require.Len(t, nav.targets, 1)
	assert.Equal(t, "/login?next=%2Fbets", nav.targets[0])
}

func TestGateDoesNotNavigateWhenContentRenders(t *testing.T) {
	nav := &fakeNavigator{}
	gate := NewGate(nav)

	render := gate.Evaluate(SessionState{Authenticated: true, Role: "user"}, ViewPolicy{}, "/bets")

	assert.Equal(t, RenderContent, render)
	assert.Empty(t, nav.targets)
}

func TestGateRetriesAfterFailedNavigation(t *testing.T) {
	nav := &fakeNavigator{err: errors.New("navigation failed")}
	gate := NewGate(nav)

	state := SessionState{}
	gate.Evaluate(state, ViewPolicy{}, "/bets")
	require.Len(t, nav.targets, 1)

	// The failure cleared the in-flight flag, so the next cycle retries.
	nav.err = nil
	gate.Evaluate(state, ViewPolicy{}, "/bets")
	require.Len(t, nav.targets, 2)

	// A successful navigation sticks; further cycles are no-ops.
	gate.Evaluate(state, ViewPolicy{}, "/bets")
	assert.Len(t, nav.targets, 2)
}

func TestGateResetAllowsNewRedirect(t *testing.T) {
	nav := &fakeNavigator{}
	gate := NewGate(nav)

	gate.Evaluate(SessionState{}, ViewPolicy{}, "/bets")
	gate.Evaluate(SessionState{}, ViewPolicy{}, "/bets")
	require.Len(t, nav.targets, 1)

	gate.Reset()
	gate.Evaluate(SessionState{}, ViewPolicy{}, "/bets")
	assert.Len(t, nav.targets, 2)
}

func TestGateEntryWaitsForLoadingThenForwards(t *testing.T) {
	nav := &fakeNavigator{}
	gate := NewGate(nav)

	render := gate.EvaluateEntry(SessionState{Loading: true})
	assert.Equal(t, RenderWaiting, render)
	assert.Empty(t, nav.targets)

	render = gate.EvaluateEntry(SessionState{Authenticated: true, Role: "user"})
	assert.Equal(t, RenderRedirecting, render)
	require.Len(t, nav.targets, 1)
	assert.Equal(t, HomePath, nav.targets[0])

	// Repeated cycles while the redirect is in flight stay quiet.
	gate.EvaluateEntry(SessionState{Authenticated: true, Role: "user"})
	assert.Len(t, nav.targets, 1)
}
