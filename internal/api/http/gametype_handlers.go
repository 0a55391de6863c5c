package http

import (
	"net/http"

	"leaguehq-backend/internal/domain"
)

type gameTypeRequest struct {
	Name     string                `json:"name"`
	Category domain.GameCategory   `json:"category"`
	Config   domain.GameTypeConfig `json:"config"`
}

func (h *Handler) handleCreateGameType(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req gameTypeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	gt, err := h.gameTypeSvc.CreateGameType(r.Context(), userID(r), leagueID, req.Name, req.Category, req.Config)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusCreated, gt)
}

func (h *Handler) handleGetGameType(w http.ResponseWriter, r *http.Request) {
	gameTypeID, err := pathID(r, "gameTypeID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	gt, err := h.gameTypeSvc.GetGameType(r.Context(), userID(r), gameTypeID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, gt)
}

func (h *Handler) handleListGameTypes(w http.ResponseWriter, r *http.Request) {
	leagueID, err := pathID(r, "leagueID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	includeArchived := r.URL.Query().Get("include_archived") == "true"
	gts, err := h.gameTypeSvc.ListGameTypes(r.Context(), userID(r), leagueID, includeArchived)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, gts)
}

func (h *Handler) handleUpdateGameType(w http.ResponseWriter, r *http.Request) {
	gameTypeID, err := pathID(r, "gameTypeID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	var req gameTypeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	gt, err := h.gameTypeSvc.UpdateGameType(r.Context(), userID(r), gameTypeID, req.Name, req.Category, req.Config)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, gt)
}

func (h *Handler) handleArchiveGameType(w http.ResponseWriter, r *http.Request) {
	gameTypeID, err := pathID(r, "gameTypeID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.gameTypeSvc.ArchiveGameType(r.Context(), userID(r), gameTypeID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleUnarchiveGameType(w http.ResponseWriter, r *http.Request) {
	gameTypeID, err := pathID(r, "gameTypeID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.gameTypeSvc.UnarchiveGameType(r.Context(), userID(r), gameTypeID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *Handler) handleDeleteGameType(w http.ResponseWriter, r *http.Request) {
	gameTypeID, err := pathID(r, "gameTypeID")
	if err != nil {
		respondError(w, r, err)
		return
	}
	if err := h.gameTypeSvc.DeleteGameType(r.Context(), userID(r), gameTypeID); err != nil {
		respondError(w, r, err)
		return
	}
	respondData(w, http.StatusOK, map[string]bool{"ok": true})
}
