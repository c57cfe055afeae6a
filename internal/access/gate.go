// Package access decides whether a session may enter a role-gated route.
package access

import "github.com/noah-isme/innovators-hub-api/internal/models"

// Decision is the outcome of evaluating a session against a route's required roles.
type Decision int

const (
	// Pending means the session is still resolving; nothing conclusive may be rendered.
	Pending Decision = iota
	// Allow lets the request through.
	Allow
	// RedirectLogin sends an anonymous caller to the sign-in page.
	RedirectLogin
	// RedirectHome sends a signed-in caller without a permitted role to the landing page.
	RedirectHome
)

const (
	LoginPath = "/auth"
	HomePath  = "/"
)

func (d Decision) String() string {
	switch d {
	case Pending:
		return "pending"
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectHome:
		return "redirect_home"
	}
	return "unknown"
}

// Target returns the redirect path for redirect decisions and "" otherwise.
func (d Decision) Target() string {
	switch d {
	case RedirectLogin:
		return LoginPath
	case RedirectHome:
		return HomePath
	}
	return ""
}

// Session is the caller state the gate evaluates. A nil *Session is an anonymous caller.
type Session struct {
	Resolved bool
	UserID   string
	Profile  *models.Profile
}

// Decide evaluates the session against the required roles. An empty role set only
// requires a signed-in user.
func Decide(session *Session, required []models.UserRole) Decision {
	if session != nil && !session.Resolved {
		return Pending
	}
	if session == nil || session.UserID == "" {
		return RedirectLogin
	}
	if len(required) == 0 {
		return Allow
	}
	if session.Profile == nil {
		return RedirectHome
	}
	for _, role := range required {
		if session.Profile.Role == role {
			return Allow
		}
	}
	return RedirectHome
}
