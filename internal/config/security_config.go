// config/security_config.go
package config

type SecurityLevel int

const (
	SecurityPublic SecurityLevel = iota // No authentication
	SecurityMember                      // Valid identity token required
	SecurityAdmin                       // Identity token carrying the admin claim
)

func (l SecurityLevel) String() string {
	switch l {
	case SecurityPublic:
		return "public"
	case SecurityMember:
		return "member"
	case SecurityAdmin:
		return "admin"
	}
	return "unknown"
}

// EndpointSecurityConfig maps HTTP route names to their required security level
var EndpointSecurityConfig = map[string]SecurityLevel{
	// Operational - Public
	"healthz": SecurityPublic,
	"metrics": SecurityPublic,

	// Proxies - Public
	"events.upcoming": SecurityPublic,
	"github.repos":    SecurityPublic,
	"chat":            SecurityPublic,
	"contact":         SecurityPublic,

	// Auth - Public
	"auth.register": SecurityPublic,
	"auth.login":    SecurityPublic,

	// Catalog - Public
	"resources.list":   SecurityPublic,
	"caseStudies.list": SecurityPublic,

	// Member
	"github.validate":      SecurityMember,
	"me.get":               SecurityMember,
	"me.update":            SecurityMember,
	"me.rsvps":             SecurityMember,
	"me.projects":          SecurityMember,
	"members.list":         SecurityMember,
	"members.get":          SecurityMember,
	"clubEvents.list":      SecurityMember,
	"clubEvents.attendees": SecurityMember,
	"clubEvents.rsvp":      SecurityMember,
	"clubEvents.unrsvp":    SecurityMember,
	"projects.list":        SecurityMember,
	"projects.submit":      SecurityMember,
	"projects.get":         SecurityMember,

	// Admin
	"admin.stats":              SecurityAdmin,
	"admin.syncEvents":         SecurityAdmin,
	"admin.projects.list":      SecurityAdmin,
	"admin.projects.review":    SecurityAdmin,
	"admin.projects.feature":   SecurityAdmin,
	"admin.resources.list":     SecurityAdmin,
	"admin.resources.create":   SecurityAdmin,
	"admin.resources.update":   SecurityAdmin,
	"admin.resources.delete":   SecurityAdmin,
	"admin.caseStudies.list":   SecurityAdmin,
	"admin.caseStudies.create": SecurityAdmin,
	"admin.caseStudies.update": SecurityAdmin,
	"admin.caseStudies.delete": SecurityAdmin,
	"admin.users.list":         SecurityAdmin,
	"admin.users.setAdmin":     SecurityAdmin,
	"admin.users.delete":       SecurityAdmin,
}

// GetSecurityLevel returns the level for a route name. Unknown routes require
// admin so a missing entry never exposes an endpoint.
func GetSecurityLevel(route string) SecurityLevel {
	if level, ok := EndpointSecurityConfig[route]; ok {
		return level
	}
	return SecurityAdmin
}
