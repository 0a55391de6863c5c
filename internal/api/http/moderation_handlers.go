package http

import (
	"net/http"

	"leaguehq-backend/internal/domain"
)

func (h *Handler) handleCreateReport(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		ReportedUserID int32  `json:"reported_user_id"`
		Reason         string `json:"reason"`
		Description    string `json:"description"`
		Evidence       string `json:"evidence"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	report, err := h.moderationSvc.CreateReport(r.Context(), userID(r), leagueID, req.ReportedUserID, req.Reason, req.Description, req.Evidence)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, report)
}

func (h *Handler) handleListReports(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	status := domain.ReportStatus(r.URL.Query().Get("status"))
	reports, err := h.moderationSvc.ListReports(r.Context(), userID(r), leagueID, status)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, reports)
}

func (h *Handler) handleTakeAction(w http.ResponseWriter, r *http.Request) {
	reportID, err := pathID(r, "reportID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req struct {
		Action         domain.ModerationActionKind `json:"action"`
		Reason         string                      `json:"reason"`
		SuspensionDays int32                       `json:"suspension_days"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	action, err := h.moderationSvc.TakeAction(r.Context(), userID(r), reportID, req.Action, req.Reason, req.SuspensionDays)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, action)
}

func (h *Handler) handleLiftSuspension(w http.ResponseWriter, r *http.Request) {
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
		Reason string `json:"reason"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	action, err := h.moderationSvc.LiftSuspension(r.Context(), userID(r), leagueID, targetID, req.Reason)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, action)
}

func (h *Handler) handleListActionsForUser(w http.ResponseWriter, r *http.Request) {
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
	actions, err := h.moderationSvc.ListActionsForUser(r.Context(), userID(r), leagueID, targetID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, actions)
}

func (h *Handler) handleAcknowledgeAction(w http.ResponseWriter, r *http.Request) {
	actionID, err := pathID(r, "actionID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.moderationSvc.AcknowledgeAction(r.Context(), userID(r), actionID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}
