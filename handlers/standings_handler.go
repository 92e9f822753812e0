package handlers

import (
	"net/http"

	"github.com/Dosada05/br-standings/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
}

func NewStandingsHandler(ss services.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: ss}
}

// GetTournamentStandings godoc
// @Summary Live standings of a tournament stage
// @Tags standings
// @Description Computes standings from completed matches. Without stage_id the current stage is used.
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param stage_id query int false "Stage ID"
// @Param only_played query bool false "Hide teams without maps played"
// @Success 200 {object} map[string]interface{} "standings"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 404 {object} map[string]string "Tournament or stage not found"
// @Failure 422 {object} map[string]string "Stage is not ranked by points"
// @Router /tournaments/{tournamentID}/standings [get]
func (h *StandingsHandler) GetTournamentStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	stageID, err := queryInt(r, "stage_id", 0)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	onlyPlayed, err := queryBool(r, "only_played")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.GetStandings(r.Context(), tournamentID, stageID, onlyPlayed)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetStoredStandings godoc
// @Summary Last published standings rows of a stage
// @Tags standings
// @Produce json
// @Param tournamentID path int true "Tournament ID"
// @Param stage_id query int false "Stage ID"
// @Success 200 {object} map[string]interface{} "standings rows"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 404 {object} map[string]string "Tournament or stage not found"
// @Router /tournaments/{tournamentID}/standings/published [get]
func (h *StandingsHandler) GetStoredStandings(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	stageID, err := queryInt(r, "stage_id", 0)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rows, err := h.standingsService.GetStoredStandings(r.Context(), tournamentID, stageID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetScrimStandings godoc
// @Summary Cumulative standings of a scrim
// @Tags standings
// @Produce json
// @Param scrimID path int true "Scrim ID"
// @Param only_played query bool false "Hide teams without maps played"
// @Success 200 {object} map[string]interface{} "standings"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 404 {object} map[string]string "Scrim not found"
// @Failure 422 {object} map[string]string "Not a scrim"
// @Router /scrims/{scrimID}/standings [get]
func (h *StandingsHandler) GetScrimStandings(w http.ResponseWriter, r *http.Request) {
	scrimID, err := getIDFromURL(r, "scrimID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	onlyPlayed, err := queryBool(r, "only_played")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	standings, err := h.standingsService.GetScrimStandings(r.Context(), scrimID, onlyPlayed)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
