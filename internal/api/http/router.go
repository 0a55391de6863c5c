package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"leaguehq-backend/internal/security"
	"leaguehq-backend/internal/service"
)

// Handler wires every service behind the JSON API.
type Handler struct {
	authSvc        service.AuthService
	userSvc        service.UserService
	leagueSvc      service.LeagueService
	membershipSvc  service.MembershipService
	invitationSvc  service.InvitationService
	placeholderSvc service.PlaceholderService
	teamSvc        service.TeamService
	moderationSvc  service.ModerationService
	gameTypeSvc    service.GameTypeService
	limitSvc       service.LimitService
	tokens         security.TokenManager
}

func NewHandler(
	authSvc service.AuthService,
	userSvc service.UserService,
	leagueSvc service.LeagueService,
	membershipSvc service.MembershipService,
	invitationSvc service.InvitationService,
	placeholderSvc service.PlaceholderService,
	teamSvc service.TeamService,
	moderationSvc service.ModerationService,
	gameTypeSvc service.GameTypeService,
	limitSvc service.LimitService,
	tokens security.TokenManager,
) *Handler {
	return &Handler{
		authSvc:        authSvc,
		userSvc:        userSvc,
		leagueSvc:      leagueSvc,
		membershipSvc:  membershipSvc,
		invitationSvc:  invitationSvc,
		placeholderSvc: placeholderSvc,
		teamSvc:        teamSvc,
		moderationSvc:  moderationSvc,
		gameTypeSvc:    gameTypeSvc,
		limitSvc:       limitSvc,
		tokens:         tokens,
	}
}

// Router builds the full route table. Everything under the authed subrouter
// requires a valid access token.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(loggingMiddleware)

	api := r.PathPrefix("/api/v1").Subrouter()

	// Public surface.
	api.HandleFunc("/auth/signup", h.handleSignup).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", h.handleLogin).Methods(http.MethodPost)
	api.HandleFunc("/auth/refresh", h.handleRefresh).Methods(http.MethodPost)
	api.HandleFunc("/leagues/public", h.handleListPublicLeagues).Methods(http.MethodGet)
	api.HandleFunc("/invite/{token}", h.handleInviteLinkDetails).Methods(http.MethodGet)

	authed := api.NewRoute().Subrouter()
	authed.Use(authMiddleware(h.tokens))

	// Profile and personal listings.
	authed.HandleFunc("/me", h.handleGetProfile).Methods(http.MethodGet)
	authed.HandleFunc("/me", h.handleUpdateProfile).Methods(http.MethodPut)
	authed.HandleFunc("/me/leagues", h.handleListMyLeagues).Methods(http.MethodGet)
	authed.HandleFunc("/me/invitations", h.handleListMyInvitations).Methods(http.MethodGet)
	authed.HandleFunc("/me/limits", h.handleMyLimits).Methods(http.MethodGet)

	// Leagues and membership.
	authed.HandleFunc("/leagues", h.handleCreateLeague).Methods(http.MethodPost)
	authed.HandleFunc("/leagues/{leagueID}", h.handleGetLeague).Methods(http.MethodGet)
	authed.HandleFunc("/leagues/{leagueID}", h.handleUpdateLeague).Methods(http.MethodPut)
	authed.HandleFunc("/leagues/{leagueID}", h.handleDeleteLeague).Methods(http.MethodDelete)
	authed.HandleFunc("/leagues/{leagueID}/archive", h.handleArchiveLeague).Methods(http.MethodPost)
	authed.HandleFunc("/leagues/{leagueID}/unarchive", h.handleUnarchiveLeague).Methods(http.MethodPost)
	authed.HandleFunc("/leagues/{leagueID}/join", h.handleJoinLeague).Methods(http.MethodPost)
	authed.HandleFunc("/leagues/{leagueID}/leave", h.handleLeaveLeague).Methods(http.MethodPost)
	authed.HandleFunc("/leagues/{leagueID}/members", h.handleListMembers).Methods(http.MethodGet)
	authed.HandleFunc("/leagues/{leagueID}/members/{userID}", h.handleRemoveMember).Methods(http.MethodDelete)
	authed.HandleFunc("/leagues/{leagueID}/members/{userID}/role", h.handleUpdateMemberRole).Methods(http.MethodPut)
	authed.HandleFunc("/leagues/{leagueID}/limits", h.handleLeagueLimits).Methods(http.MethodGet)
	authed.HandleFunc("/leagues/{leagueID}/limits", h.handleSetLeagueLimit).Methods(http.MethodPut)

	// Invitations.
	authed.HandleFunc("/leagues/{leagueID}/invitations", h.handleInviteUser).Methods(http.MethodPost)
	authed.HandleFunc("/leagues/{leagueID}/invitations", h.handleListLeagueInvitations).Methods(http.MethodGet)
	authed.HandleFunc("/leagues/{leagueID}/invite-links", h.handleGenerateInviteLink).Methods(http.MethodPost)
	authed.HandleFunc("/invitations/{invitationID}/accept", h.handleAcceptInvitation).Methods(http.MethodPost)
	authed.HandleFunc("/invitations/{invitationID}/decline", h.handleDeclineInvitation).Methods(http.MethodPost)
	authed.HandleFunc("/invitations/{invitationID}", h.handleCancelInvitation).Methods(http.MethodDelete)
	authed.HandleFunc("/invite/{token}/join", h.handleJoinViaInviteLink).Methods(http.MethodPost)

	// Placeholder members.
	authed.HandleFunc("/leagues/{leagueID}/placeholders", h.handleCreatePlaceholder).Methods(http.MethodPost)
	authed.HandleFunc("/leagues/{leagueID}/placeholders", h.handleListPlaceholders).Methods(http.MethodGet)
	authed.HandleFunc("/placeholders/{placeholderID}", h.handleRenamePlaceholder).Methods(http.MethodPut)
	authed.HandleFunc("/placeholders/{placeholderID}/retire", h.handleRetirePlaceholder).Methods(http.MethodPost)
	authed.HandleFunc("/placeholders/{placeholderID}/restore", h.handleRestorePlaceholder).Methods(http.MethodPost)
	authed.HandleFunc("/placeholders/{placeholderID}/link", h.handleLinkPlaceholder).Methods(http.MethodPost)
	authed.HandleFunc("/placeholders/{placeholderID}/unlink", h.handleUnlinkPlaceholder).Methods(http.MethodPost)

	// Teams.
	authed.HandleFunc("/leagues/{leagueID}/teams", h.handleCreateTeam).Methods(http.MethodPost)
	authed.HandleFunc("/leagues/{leagueID}/teams", h.handleListTeams).Methods(http.MethodGet)
	authed.HandleFunc("/teams/{teamID}", h.handleGetTeam).Methods(http.MethodGet)
	authed.HandleFunc("/teams/{teamID}", h.handleUpdateTeam).Methods(http.MethodPut)
	authed.HandleFunc("/teams/{teamID}", h.handleDeleteTeam).Methods(http.MethodDelete)
	authed.HandleFunc("/teams/{teamID}/archive", h.handleArchiveTeam).Methods(http.MethodPost)
	authed.HandleFunc("/teams/{teamID}/unarchive", h.handleUnarchiveTeam).Methods(http.MethodPost)
	authed.HandleFunc("/teams/{teamID}/members", h.handleAddTeamMember).Methods(http.MethodPost)
	authed.HandleFunc("/teams/{teamID}/leave", h.handleLeaveTeam).Methods(http.MethodPost)
	authed.HandleFunc("/team-members/{teamMemberID}", h.handleRemoveTeamMember).Methods(http.MethodDelete)

	// Moderation.
	authed.HandleFunc("/leagues/{leagueID}/reports", h.handleCreateReport).Methods(http.MethodPost)
	authed.HandleFunc("/leagues/{leagueID}/reports", h.handleListReports).Methods(http.MethodGet)
	authed.HandleFunc("/reports/{reportID}/action", h.handleTakeAction).Methods(http.MethodPost)
	authed.HandleFunc("/leagues/{leagueID}/members/{userID}/lift-suspension", h.handleLiftSuspension).Methods(http.MethodPost)
	authed.HandleFunc("/leagues/{leagueID}/members/{userID}/actions", h.handleListActionsForUser).Methods(http.MethodGet)
	authed.HandleFunc("/actions/{actionID}/acknowledge", h.handleAcknowledgeAction).Methods(http.MethodPost)

	// Game types.
	authed.HandleFunc("/leagues/{leagueID}/game-types", h.handleCreateGameType).Methods(http.MethodPost)
	authed.HandleFunc("/leagues/{leagueID}/game-types", h.handleListGameTypes).Methods(http.MethodGet)
	authed.HandleFunc("/game-types/{gameTypeID}", h.handleGetGameType).Methods(http.MethodGet)
	authed.HandleFunc("/game-types/{gameTypeID}", h.handleUpdateGameType).Methods(http.MethodPut)
	authed.HandleFunc("/game-types/{gameTypeID}", h.handleDeleteGameType).Methods(http.MethodDelete)
	authed.HandleFunc("/game-types/{gameTypeID}/archive", h.handleArchiveGameType).Methods(http.MethodPost)
	authed.HandleFunc("/game-types/{gameTypeID}/unarchive", h.handleUnarchiveGameType).Methods(http.MethodPost)

	return r
}
