package authz

// Navigator performs a navigation to a target path. Implementations report
// failure so the gate can allow a retry on the next evaluation.
type Navigator interface {
	Navigate(target string) error
}

// Gate evaluates access decisions for one view instance and issues at most
// one navigation per redirect. Re-evaluating while a redirect is already in
// flight is a no-op; a failed Navigate clears the flag so the next cycle can
// retry. Gate is meant for a single render loop and is not safe for
// concurrent use.
type Gate struct {
	navigator  Navigator
	redirected bool
}

// NewGate creates a Gate that issues navigations through navigator.
func NewGate(navigator Navigator) *Gate {
	return &Gate{navigator: navigator}
}

// Evaluate computes the decision for one render cycle and performs its
// navigation side effect if one is required and not already in flight. The
// returned render value is what the view may show this cycle.
func (g *Gate) Evaluate(state SessionState, policy ViewPolicy, requestedPath string) Render {
	decision := Decide(state, policy, requestedPath)
	g.apply(decision)
	return decision.Render
}

// EvaluateEntry is Evaluate for the root entry view.
func (g *Gate) EvaluateEntry(state SessionState) Render {
	decision := DecideEntry(state)
	g.apply(decision)
	return decision.Render
}

// Reset clears the redirect-in-flight flag, for reuse after the view the gate
// guards has been re-entered.
func (g *Gate) Reset() {
	g.redirected = false
}

func (g *Gate) apply(decision Decision) {
	if decision.Action != ActionNavigate {
		return
	}
	if g.redirected {
		return
	}
	g.redirected = true
	if err := g.navigator.Navigate(decision.Target); err != nil {
		// Allow the next evaluation to retry the redirect.
		g.redirected = false
	}
}
