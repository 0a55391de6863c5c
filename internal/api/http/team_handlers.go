package http

import (
	"net/http"

	"leaguehq-backend/internal/domain"
)

func (h *Handler) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	team, err := h.teamSvc.CreateTeam(r.Context(), userID(r), leagueID, req.Name, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, team)
}

func (h *Handler) handleGetTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "teamID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	team, members, err := h.teamSvc.GetTeam(r.Context(), userID(r), teamID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, struct {
		Team    *domain.Team        `json:"team"`
		Members []domain.TeamMember `json:"members"`
	}{Team: team, Members: members})
}

func (h *Handler) handleListTeams(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	teams, err := h.teamSvc.ListTeams(r.Context(), userID(r), leagueID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, teams)
}

func (h *Handler) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "teamID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	team, err := h.teamSvc.UpdateTeam(r.Context(), userID(r), teamID, req.Name, req.Description)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, team)
}

func (h *Handler) handleArchiveTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "teamID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.teamSvc.ArchiveTeam(r.Context(), userID(r), teamID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleUnarchiveTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "teamID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.teamSvc.UnarchiveTeam(r.Context(), userID(r), teamID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "teamID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.teamSvc.DeleteTeam(r.Context(), userID(r), teamID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleAddTeamMember(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "teamID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		UserID        *int32          `json:"user_id"`
		PlaceholderID *int32          `json:"placeholder_member_id"`
		Role          domain.TeamRole `json:"role"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Role == "" {
		req.Role = domain.TeamRoleMember
	}

	tm, err := h.teamSvc.AddTeamMember(r.Context(), userID(r), teamID, req.UserID, req.PlaceholderID, req.Role)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, tm)
}

func (h *Handler) handleRemoveTeamMember(w http.ResponseWriter, r *http.Request) {
	teamMemberID, err := pathID(r, "teamMemberID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.teamSvc.RemoveTeamMember(r.Context(), userID(r), teamMemberID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleLeaveTeam(w http.ResponseWriter, r *http.Request) {
	teamID, err := pathID(r, "teamID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.teamSvc.LeaveTeam(r.Context(), userID(r), teamID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleCreatePlaceholder(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		DisplayName string `json:"display_name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	pm, err := h.placeholderSvc.CreatePlaceholder(r.Context(), userID(r), leagueID, req.DisplayName)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, pm)
}

func (h *Handler) handleListPlaceholders(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	includeRetired := r.URL.Query().Get("include_retired") == "true"
	pms, err := h.placeholderSvc.ListPlaceholders(r.Context(), userID(r), leagueID, includeRetired)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, pms)
}

func (h *Handler) handleRenamePlaceholder(w http.ResponseWriter, r *http.Request) {
	placeholderID, err := pathID(r, "placeholderID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		DisplayName string `json:"display_name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	pm, err := h.placeholderSvc.RenamePlaceholder(r.Context(), userID(r), placeholderID, req.DisplayName)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, pm)
}

func (h *Handler) handleRetirePlaceholder(w http.ResponseWriter, r *http.Request) {
	placeholderID, err := pathID(r, "placeholderID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.placeholderSvc.RetirePlaceholder(r.Context(), userID(r), placeholderID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleRestorePlaceholder(w http.ResponseWriter, r *http.Request) {
	placeholderID, err := pathID(r, "placeholderID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.placeholderSvc.RestorePlaceholder(r.Context(), userID(r), placeholderID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleLinkPlaceholder(w http.ResponseWriter, r *http.Request) {
	placeholderID, err := pathID(r, "placeholderID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		UserID int32 `json:"user_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	pm, err := h.placeholderSvc.LinkPlaceholder(r.Context(), userID(r), placeholderID, req.UserID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, pm)
}

func (h *Handler) handleUnlinkPlaceholder(w http.ResponseWriter, r *http.Request) {
	placeholderID, err := pathID(r, "placeholderID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	pm, err := h.placeholderSvc.UnlinkPlaceholder(r.Context(), userID(r), placeholderID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, pm)
}
