package api

import "net/http"

type alignRequest struct {
	Text     string `json:"text"`
	AudioURL string `json:"audio_url"`
}

// HandleAlign aligns target text against audio referenced by URL.
func (h *Handlers) HandleAlign(w http.ResponseWriter, r *http.Request) {
	var req alignRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteErrorDetail(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Text == "" {
		WriteError(w, http.StatusBadRequest, "text is required")
		return
	}

	path, cleanup, ok := h.fetchMedia(w, r, req.AudioURL)
	if !ok {
		return
	}
	defer cleanup()

	WriteJSON(w, http.StatusOK, h.svc.Align(r.Context(), req.Text, path))
}

// HandleAlignUpload aligns target text against an uploaded file. The text
// travels as a form field beside the file part.
func (h *Handlers) HandleAlignUpload(w http.ResponseWriter, r *http.Request) {
	path, cleanup, ok := h.saveUpload(w, r, "audio/", "video/")
	if !ok {
		return
	}
	defer cleanup()

	text := formValue(r, "text")
	if text == "" {
		WriteError(w, http.StatusBadRequest, "text is required")
		return
	}

	WriteJSON(w, http.StatusOK, h.svc.Align(r.Context(), text, path))
}
