package domain

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Session is the authenticated identity returned by login/register. At most
// one session is active at a time; an empty token means unauthenticated.
type Session struct {
	Token     string `json:"token"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
}
