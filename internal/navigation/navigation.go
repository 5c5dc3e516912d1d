package navigation

import (
	"fmt"

	"github.com/harentsoaR/healthease-api/internal/session"
)

// AuthPath is where unauthenticated visitors are sent.
const AuthPath = "/auth"

type Item struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Icon string `json:"icon"`
}

// Menu is the sidebar for one role.
type Menu struct {
	Role      session.Role `json:"role"`
	Title     string       `json:"title"`
	Dashboard string       `json:"dashboard"`
	Items     []Item       `json:"items"`
}

var settings = Item{Name: "Settings", Path: "/settings", Icon: "settings"}

// Items returns the sidebar entries for r.
func Items(r session.Role) []Item {
	switch r {
	case session.RolePatient:
		return []Item{
			{Name: "Dashboard", Path: r.DashboardPath(), Icon: "home"},
			{Name: "Find Doctor", Path: "/find-doctor", Icon: "search"},
			{Name: "Appointments", Path: "/appointments", Icon: "calendar"},
			{Name: "Medical History", Path: "/medical-history", Icon: "file-text"},
			settings,
		}
	case session.RoleDoctor:
		return []Item{
			{Name: "Dashboard", Path: r.DashboardPath(), Icon: "home"},
			{Name: "My Schedule", Path: "/schedule", Icon: "calendar"},
			{Name: "Patients", Path: "/patients", Icon: "users"},
			{Name: "Appointments", Path: "/doctor/appointments", Icon: "clipboard-list"},
			settings,
		}
	case session.RoleAdmin:
		return []Item{
			{Name: "Dashboard", Path: r.DashboardPath(), Icon: "bar-chart"},
			{Name: "Users", Path: "/users", Icon: "users"},
			{Name: "Doctors", Path: "/doctors", Icon: "user"},
			{Name: "Analytics", Path: "/analytics", Icon: "bar-chart"},
			settings,
		}
	default:
		panic(fmt.Sprintf("navigation: unhandled role %d", r))
	}
}

func MenuFor(r session.Role) Menu {
	return Menu{
		Role:      r,
		Title:     r.Title(),
		Dashboard: r.DashboardPath(),
		Items:     Items(r),
	}
}

// HomeRedirect is the landing target for the root path.
func HomeRedirect(f session.Flags) string {
	if !f.IsAuthenticated {
		return AuthPath
	}
	return f.Role.DashboardPath()
}
