package sessionguard

import "context"

// Policy selects what the caller should do with an unauthenticated visitor.
type Policy int

const (
	// PolicyRedirect sends the visitor to the login route.
	PolicyRedirect Policy = iota
	// PolicyPrompt opens a login dialog in place.
	PolicyPrompt
)

// Verdict is the outcome of one guard check.
type Verdict int

const (
	// VerdictAllow means the identity is confirmed and the role is permitted.
	VerdictAllow Verdict = iota
	// VerdictLogin means the visitor is unauthenticated; act per Policy.
	VerdictLogin
	// VerdictHome means the identity is confirmed but the role is not in the
	// allowed set; send the visitor to the neutral home route.
	VerdictHome
)

// Decision carries the verdict plus the resolved identity when there is one.
type Decision struct {
	Verdict  Verdict
	Policy   Policy
	Identity *Identity
}

// Allowed reports whether gated content may render.
func (d Decision) Allowed() bool { return d.Verdict == VerdictAllow }

// Guard is the reusable session gate: one instance per page activation,
// parameterized by the roles that page admits.
type Guard struct {
	store    CredentialStore
	resolver IdentityResolver
	policy   Policy
	allowed  []Role
}

// Option configures a Guard.
type Option func(*Guard)

// WithPolicy sets the unauthenticated behavior. Default is PolicyRedirect.
func WithPolicy(p Policy) Option {
	return func(g *Guard) { g.policy = p }
}

// AllowRoles restricts the guard to the given roles. With no restriction any
// confirmed identity passes.
func AllowRoles(roles ...Role) Option {
	return func(g *Guard) { g.allowed = roles }
}

func New(store CredentialStore, resolver IdentityResolver, opts ...Option) *Guard {
	g := &Guard{
		store:    store,
		resolver: resolver,
		policy:   PolicyRedirect,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check runs the gate once. Missing credential, failed identity round trip,
// and malformed responses all produce VerdictLogin; gated content renders only
// on VerdictAllow. The check never writes to the store.
func (g *Guard) Check(ctx context.Context) Decision {
	cred, ok := g.store.GetCredential()
	if !ok {
		return Decision{Verdict: VerdictLogin, Policy: g.policy}
	}

	identity, err := g.resolver.Resolve(ctx, cred.Token)
	if err != nil {
		return Decision{Verdict: VerdictLogin, Policy: g.policy}
	}

	if !g.roleAllowed(identity.Role) {
		return Decision{Verdict: VerdictHome, Policy: g.policy, Identity: identity}
	}

	return Decision{Verdict: VerdictAllow, Policy: g.policy, Identity: identity}
}

func (g *Guard) roleAllowed(role Role) bool {
	if len(g.allowed) == 0 {
		return true
	}
	for _, r := range g.allowed {
		if r == role {
			return true
		}
	}
	return false
}
