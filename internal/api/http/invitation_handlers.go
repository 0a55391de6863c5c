package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"leaguehq-backend/internal/domain"
)

func (h *Handler) handleInviteUser(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		Email string            `json:"email"`
		Role  domain.LeagueRole `json:"role"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Role == "" {
		req.Role = domain.LeagueRoleMember
	}

	inv, err := h.invitationSvc.InviteUser(r.Context(), userID(r), leagueID, req.Email, req.Role)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, inv)
}

func (h *Handler) handleGenerateInviteLink(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		Role          domain.LeagueRole `json:"role"`
		ExpiresInDays *int32            `json:"expires_in_days"`
		MaxUses       *int32            `json:"max_uses"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Role == "" {
		req.Role = domain.LeagueRoleMember
	}

	inv, err := h.invitationSvc.GenerateInviteLink(r.Context(), userID(r), leagueID, req.Role, req.ExpiresInDays, req.MaxUses)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, inv)
}

func (h *Handler) handleInviteLinkDetails(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	details, err := h.invitationSvc.GetInviteLinkDetails(r.Context(), token)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, details)
}

func (h *Handler) handleAcceptInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID, err := pathID(r, "invitationID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.invitationSvc.AcceptInvitation(r.Context(), userID(r), invitationID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleDeclineInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID, err := pathID(r, "invitationID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.invitationSvc.DeclineInvitation(r.Context(), userID(r), invitationID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleCancelInvitation(w http.ResponseWriter, r *http.Request) {
	invitationID, err := pathID(r, "invitationID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.invitationSvc.CancelInvitation(r.Context(), userID(r), invitationID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleJoinViaInviteLink(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	member, err := h.invitationSvc.JoinViaInviteLink(r.Context(), userID(r), token)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, member)
}

func (h *Handler) handleListMyInvitations(w http.ResponseWriter, r *http.Request) {
	invs, err := h.invitationSvc.ListMyInvitations(r.Context(), userID(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, invs)
}

func (h *Handler) handleListLeagueInvitations(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	invs, err := h.invitationSvc.ListLeagueInvitations(r.Context(), userID(r), leagueID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, invs)
}
