package permissions

import "leaguehq-backend/internal/domain"

type Action string

const (
	ActionInviteMembers      Action = "INVITE_MEMBERS"
	ActionRemoveMembers      Action = "REMOVE_MEMBERS"
	ActionManageRoles        Action = "MANAGE_ROLES"
	ActionCreatePlaceholders Action = "CREATE_PLACEHOLDERS"
	ActionCreateTeams        Action = "CREATE_TEAMS"
	ActionCreateGameTypes    Action = "CREATE_GAME_TYPES"
	ActionReportMember       Action = "REPORT_MEMBER"
	ActionModerateMembers    Action = "MODERATE_MEMBERS"
	ActionEditLeague         Action = "EDIT_LEAGUE"
	ActionDeleteLeague       Action = "DELETE_LEAGUE"
	ActionManageLimits       Action = "MANAGE_LIMITS"
)

type TeamAction string

const (
	TeamActionEditTeam      TeamAction = "EDIT_TEAM"
	TeamActionDeleteTeam    TeamAction = "DELETE_TEAM"
	TeamActionManageMembers TeamAction = "MANAGE_TEAM_MEMBERS"
)

type Page string

const (
	PageMembers    Page = "MEMBERS"
	PageTeams      Page = "TEAMS"
	PageGameTypes  Page = "GAME_TYPES"
	PageModeration Page = "MODERATION"
	PageSettings   Page = "SETTINGS"
)

// Permission rules are plain role-to-set tables rather than a hierarchy of
// types, so the whole rule set can be audited and tested by enumeration.
var rolePermissions = map[domain.LeagueRole]map[Action]bool{
	domain.LeagueRoleMember: {
		ActionReportMember: true,
	},
	domain.LeagueRoleManager: {
		ActionInviteMembers:      true,
		ActionRemoveMembers:      true,
		ActionCreatePlaceholders: true,
		ActionCreateTeams:        true,
		ActionCreateGameTypes:    true,
		ActionReportMember:       true,
		ActionModerateMembers:    true,
	},
	domain.LeagueRoleExecutive: {
		ActionInviteMembers:      true,
		ActionRemoveMembers:      true,
		ActionManageRoles:        true,
		ActionCreatePlaceholders: true,
		ActionCreateTeams:        true,
		ActionCreateGameTypes:    true,
		ActionReportMember:       true,
		ActionModerateMembers:    true,
		ActionEditLeague:         true,
		ActionDeleteLeague:       true,
		ActionManageLimits:       true,
	},
}

var teamRolePermissions = map[domain.TeamRole]map[TeamAction]bool{
	domain.TeamRoleMember: {},
	domain.TeamRoleManager: {
		TeamActionEditTeam:      true,
		TeamActionDeleteTeam:    true,
		TeamActionManageMembers: true,
	},
}

var pageAccess = map[Page]map[domain.LeagueRole]bool{
	PageMembers: {
		domain.LeagueRoleMember:    true,
		domain.LeagueRoleManager:   true,
		domain.LeagueRoleExecutive: true,
	},
	PageTeams: {
		domain.LeagueRoleMember:    true,
		domain.LeagueRoleManager:   true,
		domain.LeagueRoleExecutive: true,
	},
	PageGameTypes: {
		domain.LeagueRoleMember:    true,
		domain.LeagueRoleManager:   true,
		domain.LeagueRoleExecutive: true,
	},
	PageModeration: {
		domain.LeagueRoleManager:   true,
		domain.LeagueRoleExecutive: true,
	},
	PageSettings: {
		domain.LeagueRoleExecutive: true,
	},
}

var roleRank = map[domain.LeagueRole]int{
	domain.LeagueRoleMember:    1,
	domain.LeagueRoleManager:   2,
	domain.LeagueRoleExecutive: 3,
}

// Can reports whether a league role is allowed to perform an action.
// Unknown roles and actions are denied.
func Can(role domain.LeagueRole, action Action) bool {
	return rolePermissions[role][action]
}

// CanTeamAct reports whether a team-scoped role may perform a team action.
// Team roles are independent of league roles: a league executive with no
// qualifying team role is denied here.
func CanTeamAct(role domain.TeamRole, action TeamAction) bool {
	return teamRolePermissions[role][action]
}

// CanAccessPage reports whether a league role may view a page.
func CanAccessPage(role domain.LeagueRole, page Page) bool {
	return pageAccess[page][role]
}

// CanActOn reports whether the actor's role strictly outranks the target's.
// Peers can never act on peers.
func CanActOn(actor, target domain.LeagueRole) bool {
	ar, ok := roleRank[actor]
	if !ok {
		return false
	}
	tr, ok := roleRank[target]
	if !ok {
		return false
	}
	return ar > tr
}

// AssignableRoles returns every role the actor may grant: all roles at or
// below the actor's own rank, in ascending order.
func AssignableRoles(actor domain.LeagueRole) []domain.LeagueRole {
	ar, ok := roleRank[actor]
	if !ok {
		return nil
	}
	var roles []domain.LeagueRole
	for _, r := range []domain.LeagueRole{domain.LeagueRoleMember, domain.LeagueRoleManager, domain.LeagueRoleExecutive} {
		if roleRank[r] <= ar {
			roles = append(roles, r)
		}
	}
	return roles
}

// IsAssignable reports whether the actor may grant the given role.
func IsAssignable(actor, role domain.LeagueRole) bool {
	ar, ok := roleRank[actor]
	if !ok {
		return false
	}
	rr, ok := roleRank[role]
	if !ok {
		return false
	}
	return rr <= ar
}
