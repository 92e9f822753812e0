package handlers

import (
	"net/http"

	"github.com/Dosada05/br-standings/services"
)

type MatchHandler struct {
	matchService services.MatchService
}

func NewMatchHandler(ms services.MatchService) *MatchHandler {
	return &MatchHandler{matchService: ms}
}

// GetMatchResults godoc
// @Summary Scored results of one match
// @Tags matches
// @Produce json
// @Param matchID path int true "Match ID"
// @Success 200 {object} services.MatchResultsView
// @Failure 400 {object} map[string]string "Invalid ID"
// @Failure 404 {object} map[string]string "Match not found"
// @Router /matches/{matchID}/results [get]
func (h *MatchHandler) GetMatchResults(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.matchService.GetMatchResults(r.Context(), matchID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitResults godoc
// @Summary Submit or replace the results of a match
// @Tags matches
// @Description Replaces the match results, completes the match and republishes its stage standings.
// @Accept json
// @Produce json
// @Param matchID path int true "Match ID"
// @Param input body services.SubmitResultsInput true "Placement and kills per team"
// @Success 200 {object} services.MatchResultsView
// @Failure 400 {object} map[string]string "Malformed body"
// @Failure 404 {object} map[string]string "Match not found"
// @Failure 422 {object} map[string]string "Validation failed"
// @Router /matches/{matchID}/results [put]
func (h *MatchHandler) SubmitResults(w http.ResponseWriter, r *http.Request) {
	matchID, err := getIDFromURL(r, "matchID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.SubmitResultsInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	view, err := h.matchService.SubmitResults(r.Context(), matchID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, view, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
