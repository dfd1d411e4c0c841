// Package sessionguard implements the client-side authentication gate used by
// the institute dashboards: read the stored credential, confirm it against
// the identity endpoint, and decide whether role-gated content may render.
// Every uncertainty resolves to "not authenticated".
package sessionguard

// Role is the closed set of roles the identity endpoint can resolve.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleStudent   Role = "student"
	RoleUser      Role = "user"
)

// ParseRole maps a server-provided role string to the closed set. Unknown
// values degrade to RoleUser, never to a privileged role.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin, RoleModerator, RoleStudent:
		return Role(s)
	default:
		return RoleUser
	}
}
