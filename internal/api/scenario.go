package api

import (
	"net/http"

	"github.com/chirp-app/chirp-ai/internal/scenario"
)

type scenarioRequest struct {
	Text       string   `json:"text"`
	Difficulty int      `json:"difficulty"`
	Tags       []string `json:"tags"`
	TargetAge  int      `json:"target_age"`
}

type scenarioResponse struct {
	ScriptJSON scenario.Script `json:"script_json"`
	RubricJSON scenario.Rubric `json:"rubric_json"`
}

// HandleGenerate builds a practice scenario script and its scoring rubric.
func (h *Handlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	req := scenarioRequest{Difficulty: 1}
	if err := DecodeJSON(r, &req); err != nil {
		WriteErrorDetail(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Text == "" {
		WriteError(w, http.StatusBadRequest, "text is required")
		return
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}

	WriteJSON(w, http.StatusOK, scenarioResponse{
		ScriptJSON: scenario.GenerateScript(req.Text, req.Difficulty, req.Tags, req.TargetAge),
		RubricJSON: scenario.GenerateRubric(req.Difficulty, req.Tags),
	})
}
