package api

import "net/http"

type sttRequest struct {
	AudioURL string `json:"audio_url"`
	Language string `json:"language"`
}

// HandleSTT transcribes audio referenced by URL.
func (h *Handlers) HandleSTT(w http.ResponseWriter, r *http.Request) {
	var req sttRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteErrorDetail(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	path, cleanup, ok := h.fetchMedia(w, r, req.AudioURL)
	if !ok {
		return
	}
	defer cleanup()

	WriteJSON(w, http.StatusOK, h.svc.Transcribe(r.Context(), path, req.Language))
}

// HandleSTTUpload transcribes an uploaded audio or video file.
func (h *Handlers) HandleSTTUpload(w http.ResponseWriter, r *http.Request) {
	path, cleanup, ok := h.saveUpload(w, r, "audio/", "video/")
	if !ok {
		return
	}
	defer cleanup()

	language := formValue(r, "language")
	if language == "" {
		language = "en"
	}

	WriteJSON(w, http.StatusOK, h.svc.Transcribe(r.Context(), path, language))
}

// HandleSTTLanguages lists the languages the transcription backend accepts.
func (h *Handlers) HandleSTTLanguages(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{
		"supported_languages": map[string]string{
			"en":   "English",
			"es":   "Spanish",
			"fr":   "French",
			"de":   "German",
			"it":   "Italian",
			"pt":   "Portuguese",
			"ru":   "Russian",
			"ja":   "Japanese",
			"ko":   "Korean",
			"zh":   "Chinese",
			"ar":   "Arabic",
			"hi":   "Hindi",
			"auto": "Auto-detect",
		},
		"default":               "en",
		"auto_detect_available": true,
	})
}
