package domain

// NavLink is one entry of the top navigation bar.
type NavLink struct {
	Label  string `json:"label"`
	Path   string `json:"path"`
	Method string `json:"method,omitempty"`
}

// Navigation returns the links visible for the given session state.
func Navigation(authenticated bool) []NavLink {
	links := []NavLink{{Label: "Browse Jobs", Path: "/jobs"}}
	if authenticated {
		return append(links,
			NavLink{Label: "Dashboard", Path: "/dashboard"},
			NavLink{Label: "Logout", Path: "/auth/logout", Method: "POST"},
		)
	}
	return append(links, NavLink{Label: "Login", Path: "/login"})
}
