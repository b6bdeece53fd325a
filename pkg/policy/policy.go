// Package policy is the single source of truth for roles and route access.
// The router gates every protected handler through this table and the SPA
// fetches the same table to drive its client-side route guard, so the two
// layers cannot drift.
package policy

// Authoritative role enumeration. The legacy backend schema only listed the
// first three; analyst and staff existed client-side only. They are first
// class here.
const (
	RoleFarmer     = "farmer"
	RoleGovernment = "government"
	RoleAdmin      = "admin"
	RoleAnalyst    = "analyst"
	RoleStaff      = "staff"
)

var Roles = []string{RoleFarmer, RoleGovernment, RoleAdmin, RoleAnalyst, RoleStaff}

// Government officials carry a capability list on top of their role.
var GovernmentPermissions = []string{"read", "write", "admin", "approve", "report"}

// Identity is the authenticated caller as resolved from a bearer token.
type Identity struct {
	ID   uint   `json:"id"`
	Role string `json:"role"`
}

// Route names. Each protected route group declares exactly one of these;
// there is no role hierarchy and admin passes only where listed.
const (
	RouteAnalytics      = "analytics"
	RouteLandRead       = "land.read"
	RouteLandWrite      = "land.write"
	RouteFarmersRead    = "farmers.read"
	RouteFarmersMutate  = "farmers.mutate"
	RouteGovernmentRead = "government.read"
	RouteGovernmentEdit = "government.mutate"
	RoutePermissions    = "government.permissions"
	RouteMessaging      = "communication.messages"
	RouteSupportCreate  = "communication.support.create"
	RouteSupportManage  = "communication.support.manage"
	RouteSubsidies      = "subsidies"
	RouteSubsidyImport  = "subsidies.import"
	RouteFinance        = "finance"
)

var table = map[string][]string{
	RouteAnalytics:      {RoleFarmer, RoleGovernment, RoleAdmin, RoleAnalyst},
	RouteLandRead:       {RoleFarmer, RoleGovernment, RoleAdmin, RoleAnalyst},
	RouteLandWrite:      {RoleFarmer, RoleAdmin},
	RouteFarmersRead:    {RoleFarmer, RoleGovernment, RoleAdmin, RoleAnalyst},
	RouteFarmersMutate:  {RoleFarmer, RoleAdmin},
	RouteGovernmentRead: {RoleGovernment, RoleAdmin, RoleAnalyst},
	RouteGovernmentEdit: {RoleGovernment, RoleAdmin},
	RoutePermissions:    {RoleAdmin},
	RouteMessaging:      {RoleFarmer, RoleGovernment, RoleAdmin, RoleAnalyst, RoleStaff},
	RouteSupportCreate:  {RoleFarmer, RoleGovernment, RoleAdmin, RoleAnalyst, RoleStaff},
	RouteSupportManage:  {RoleAdmin, RoleStaff},
	RouteSubsidies:      {RoleFarmer, RoleGovernment, RoleAdmin},
	RouteSubsidyImport:  {RoleAdmin},
	RouteFinance:        {RoleFarmer, RoleAdmin},
}

// AllowedRoles returns the roles permitted on the named route, nil when the
// route is unknown (deny by default).
func AllowedRoles(route string) []string {
	return table[route]
}

// Table returns a copy of the whole policy table for the client route guard.
func Table() map[string][]string {
	out := make(map[string][]string, len(table))
	for k, v := range table {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// Allowed is the authorizer: permit iff the role is in the allowed set.
// Pure function; identical inputs always produce identical output.
func Allowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// CanMutate is the ownership guard for resource-scoped writes: the owner or
// an admin, nobody else.
func CanMutate(id Identity, ownerID uint) bool {
	return id.ID == ownerID || id.Role == RoleAdmin
}

func ValidRole(role string) bool {
	return Allowed(role, Roles)
}

func ValidPermission(p string) bool {
	return Allowed(p, GovernmentPermissions)
}

// Decide mirrors the SPA route guard: render only when identity resolution
// has finished and the caller holds one of the required roles. The outcomes
// are distinct so the client can redirect to login (no identity) or home
// (wrong role) without flashing an unauthorized view while loading.
type Decision int

const (
	DecideWait Decision = iota
	DecideLogin
	DecideHome
	DecideRender
)

func Decide(id *Identity, required []string, loading bool) Decision {
	switch {
	case loading:
		return DecideWait
	case id == nil:
		return DecideLogin
	case !Allowed(id.Role, required):
		return DecideHome
	default:
		return DecideRender
	}
}
