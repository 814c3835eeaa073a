package session

// Role determines which dashboard and which API scopes a signed-in
// operator may reach. The two values mirror the backend's customer and
// mechanic resources; any other value is treated as corrupt session data
// and forces a logout.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleMechanic Role = "mechanic"
)

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleMechanic
}

// Dashboard returns the role's landing route.
func (r Role) Dashboard() string {
	if r == RoleMechanic {
		return "/mechanic-dashboard"
	}
	return "/customer-dashboard"
}

// User is the canonical application identity: the identity provider's
// subject fused with the backend customer or mechanic record. Role and
// BackendID always travel together; the pair is never mutated
// independently of a full user replacement.
type User struct {
	SubjectID   string `json:"subject_id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
	Role        Role   `json:"role"`
	BackendID   int64  `json:"backend_id"`
}

// Equal compares two users field for field, treating two nils as equal.
func (u *User) Equal(o *User) bool {
	if u == nil || o == nil {
		return u == o
	}
	return *u == *o
}
