package http

import (
	"context"
	"net/http"

	"leaguehq-backend/internal/domain"
)

func (h *Handler) handleCreateLeague(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string                  `json:"name"`
		Description string                  `json:"description"`
		Visibility  domain.LeagueVisibility `json:"visibility"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Visibility == "" {
		req.Visibility = domain.LeagueVisibilityPrivate
	}

	league, err := h.leagueSvc.CreateLeague(r.Context(), userID(r), req.Name, req.Description, req.Visibility)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, league)
}

func (h *Handler) handleGetLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}

	league, member, err := h.leagueSvc.GetLeague(r.Context(), userID(r), leagueID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, struct {
		League     *domain.League       `json:"league"`
		Membership *domain.LeagueMember `json:"membership,omitempty"`
	}{League: league, Membership: member})
}

func (h *Handler) handleListMyLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.leagueSvc.ListMyLeagues(r.Context(), userID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, leagues)
}

func (h *Handler) handleListPublicLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.leagueSvc.ListPublicLeagues(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, leagues)
}

func (h *Handler) handleUpdateLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		Name        string                  `json:"name"`
		Description string                  `json:"description"`
		Visibility  domain.LeagueVisibility `json:"visibility"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	league, err := h.leagueSvc.UpdateLeague(r.Context(), userID(r), leagueID, req.Name, req.Description, req.Visibility)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, league)
}

func (h *Handler) handleArchiveLeague(w http.ResponseWriter, r *http.Request) {
	h.leagueArchiveOp(w, r, h.leagueSvc.ArchiveLeague)
}

func (h *Handler) handleUnarchiveLeague(w http.ResponseWriter, r *http.Request) {
	h.leagueArchiveOp(w, r, h.leagueSvc.UnarchiveLeague)
}

func (h *Handler) leagueArchiveOp(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, userID, leagueID int32) error) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := op(r.Context(), userID(r), leagueID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleDeleteLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.leagueSvc.DeleteLeague(r.Context(), userID(r), leagueID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleJoinLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	member, err := h.membershipSvc.JoinLeague(r.Context(), userID(r), leagueID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, member)
}

func (h *Handler) handleLeaveLeague(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.membershipSvc.LeaveLeague(r.Context(), userID(r), leagueID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleListMembers(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	members, err := h.membershipSvc.ListMembers(r.Context(), userID(r), leagueID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, members)
}

func (h *Handler) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	targetID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.membershipSvc.RemoveMember(r.Context(), userID(r), leagueID, targetID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleUpdateMemberRole(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	targetID, err := pathID(r, "userID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		Role domain.LeagueRole `json:"role"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	member, err := h.membershipSvc.UpdateMemberRole(r.Context(), userID(r), leagueID, targetID, req.Role)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, member)
}

func (h *Handler) handleMyLimits(w http.ResponseWriter, r *http.Request) {
	info, err := h.limitSvc.UserLeagueLimit(r.Context(), userID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]domain.LimitInfo{"leagues_per_user": info})
}

func (h *Handler) handleLeagueLimits(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	memberInfo, err := h.limitSvc.LeagueMemberLimit(r.Context(), leagueID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	gameTypeInfo, err := h.limitSvc.LeagueGameTypeLimit(r.Context(), leagueID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]domain.LimitInfo{
		"members_per_league":    memberInfo,
		"game_types_per_league": gameTypeInfo,
	})
}

func (h *Handler) handleSetLeagueLimit(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		LimitType domain.LimitType `json:"limit_type"`
		Value     *int32           `json:"value"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	o, err := h.limitSvc.SetLeagueOverride(r.Context(), userID(r), leagueID, req.LimitType, req.Value)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, o)
}
