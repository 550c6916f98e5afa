package domain

// Allowed reports whether a caller with role may run an operation that
// declares required. An empty required set admits every authenticated role.
func Allowed(role Role, required []Role) bool {
	if len(required) == 0 {
		return true
	}
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}

// AdminOnly is the required-role set of agent-directory administration.
var AdminOnly = []Role{RoleAdmin}
