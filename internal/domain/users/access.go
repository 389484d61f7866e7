package users

import "strings"

const (
	// SignInPath is where unauthenticated visitors of protected pages are sent
	SignInPath = "/auth/sign-in"
	// WelcomePath is the first page a client sees until therapist recommendations were shown
	WelcomePath = "/client/welcome"
)

// publicRoutes match themselves and everything below them
var publicRoutes = []string{
	"/",
	SignInPath,
	"/auth/verify",
	"/auth/verify-account",
	"/about",
	"/community",
	"/landing",
	"/therapist-application",
	"/pre-assessment",
}

var roleAreas = map[string]string{
	"/client":    RoleClient,
	"/therapist": RoleTherapist,
	"/moderator": RoleModerator,
	"/admin":     RoleAdmin,
}

// RouteDecision is the outcome of a route guard check
type RouteDecision struct {
	Allowed    bool
	RedirectTo string
}

// DashboardPath returns the landing page of a role
func DashboardPath(role string) string {
	switch role {
	case RoleClient, RoleTherapist, RoleModerator, RoleAdmin:
		return "/" + role
	default:
		return "/"
	}
}

// IsPublicRoute reports whether path can be opened without signing in
func IsPublicRoute(path string) bool {
	path = normalizePath(path)
	for _, route := range publicRoutes {
		if hasSegmentPrefix(path, route) {
			return true
		}
	}
	return false
}

// CheckRouteAccess decides whether user may open path. A nil user is an anonymous visitor.
func CheckRouteAccess(user *User, path string) RouteDecision {
	path = normalizePath(path)

	if IsPublicRoute(path) {
		if user != nil && strings.HasPrefix(path, "/auth/") {
			return RouteDecision{Allowed: false, RedirectTo: DashboardPath(user.Role)}
		}
		return RouteDecision{Allowed: true}
	}

	if user == nil {
		return RouteDecision{Allowed: false, RedirectTo: SignInPath}
	}

	if user.Role == RoleClient {
		onWelcome := hasSegmentPrefix(path, WelcomePath)
		if !user.SeenRecommendations && !onWelcome {
			return RouteDecision{Allowed: false, RedirectTo: WelcomePath}
		}
		if user.SeenRecommendations && onWelcome {
			return RouteDecision{Allowed: false, RedirectTo: DashboardPath(user.Role)}
		}
	}

	for prefix, areaRole := range roleAreas {
		if hasSegmentPrefix(path, prefix) {
			if areaRole == user.Role {
				return RouteDecision{Allowed: true}
			}
			return RouteDecision{Allowed: false, RedirectTo: DashboardPath(user.Role)}
		}
	}

	return RouteDecision{Allowed: true}
}

func normalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if path == "" || !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
		if path == "" {
			path = "/"
		}
	}
	return path
}

func hasSegmentPrefix(path, prefix string) bool {
	if prefix == "/" {
		return path == "/"
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
