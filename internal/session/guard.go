package session

// LoginRoute is where unauthenticated (and force-logged-out) operators
// are sent.
const LoginRoute = "/login"

// Decision classifies one route-guard evaluation.
type Decision int

const (
	// DecisionPending means the store has not settled; render nothing.
	DecisionPending Decision = iota
	// DecisionAuthorized means the protected content may be served.
	DecisionAuthorized
	// DecisionRedirectLogin means no user is signed in.
	DecisionRedirectLogin
	// DecisionRedirectDashboard means a recognized user holds the wrong
	// role and belongs on their own dashboard.
	DecisionRedirectDashboard
	// DecisionForceLogout means the user's role is unrecognized
	// (corrupted session data); terminate the session and send to login.
	DecisionForceLogout
)

// Verdict is the outcome of evaluating one state snapshot against a
// required role.
type Verdict struct {
	Decision Decision
	// Target is the redirect destination for the redirecting decisions,
	// "" otherwise.
	Target string
}

// Evaluate applies the route-guard rules to a state snapshot. It is a
// pure function: identical snapshots yield identical verdicts, so
// repeated evaluation never re-triggers anything by itself.
func Evaluate(st State, required Role) Verdict {
	if !st.Initialized || st.Loading {
		return Verdict{Decision: DecisionPending}
	}
	if st.User == nil {
		return Verdict{Decision: DecisionRedirectLogin, Target: LoginRoute}
	}
	if st.User.Role == required {
		return Verdict{Decision: DecisionAuthorized}
	}
	if st.User.Role.Valid() {
		return Verdict{Decision: DecisionRedirectDashboard, Target: st.User.Role.Dashboard()}
	}
	return Verdict{Decision: DecisionForceLogout, Target: LoginRoute}
}
