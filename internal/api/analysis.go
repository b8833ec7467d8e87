package api

import "net/http"

type audioAnalysisRequest struct {
	AudioURL string `json:"audio_url"`
}

type videoAnalysisRequest struct {
	VideoURL string `json:"video_url"`
}

// HandleAnalyzeAudio scores the prosody of audio referenced by URL.
func (h *Handlers) HandleAnalyzeAudio(w http.ResponseWriter, r *http.Request) {
	var req audioAnalysisRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteErrorDetail(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	path, cleanup, ok := h.fetchMedia(w, r, req.AudioURL)
	if !ok {
		return
	}
	defer cleanup()

	result, err := h.svc.AnalyzeAudio(r.Context(), path)
	if err != nil {
		h.log.Error().Err(err).Msg("audio analysis failed")
		WriteErrorDetail(w, http.StatusInternalServerError, "audio analysis failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// HandleAnalyzeAudioUpload scores the prosody of an uploaded file.
func (h *Handlers) HandleAnalyzeAudioUpload(w http.ResponseWriter, r *http.Request) {
	// Video uploads are accepted here; the decoder extracts the audio track.
	path, cleanup, ok := h.saveUpload(w, r, "audio/", "video/")
	if !ok {
		return
	}
	defer cleanup()

	result, err := h.svc.AnalyzeAudio(r.Context(), path)
	if err != nil {
		h.log.Error().Err(err).Msg("audio analysis failed")
		WriteErrorDetail(w, http.StatusInternalServerError, "audio analysis failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// HandleAnalyzeVideo scores facial behavior in video referenced by URL.
func (h *Handlers) HandleAnalyzeVideo(w http.ResponseWriter, r *http.Request) {
	var req videoAnalysisRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteErrorDetail(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	path, cleanup, ok := h.fetchMedia(w, r, req.VideoURL)
	if !ok {
		return
	}
	defer cleanup()

	result, err := h.svc.AnalyzeVideo(r.Context(), path)
	if err != nil {
		h.log.Error().Err(err).Msg("video analysis failed")
		WriteErrorDetail(w, http.StatusInternalServerError, "video analysis failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

// HandleAnalyzeVideoUpload scores facial behavior in an uploaded file.
func (h *Handlers) HandleAnalyzeVideoUpload(w http.ResponseWriter, r *http.Request) {
	path, cleanup, ok := h.saveUpload(w, r, "video/")
	if !ok {
		return
	}
	defer cleanup()

	result, err := h.svc.AnalyzeVideo(r.Context(), path)
	if err != nil {
		h.log.Error().Err(err).Msg("video analysis failed")
		WriteErrorDetail(w, http.StatusInternalServerError, "video analysis failed", err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, result)
}
