package api

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/chirp-app/chirp-ai/internal/analyze"
	"github.com/chirp-app/chirp-ai/internal/media"
)

// Handlers holds the dependencies shared by the analysis endpoints.
type Handlers struct {
	svc       *analyze.Service
	fetcher   *media.Fetcher
	maxUpload int64
	log       zerolog.Logger
}

// NewHandlers wires the endpoint handlers.
func NewHandlers(svc *analyze.Service, fetcher *media.Fetcher, maxUpload int64, log zerolog.Logger) *Handlers {
	return &Handlers{
		svc:       svc,
		fetcher:   fetcher,
		maxUpload: maxUpload,
		log:       log,
	}
}

// fetchMedia downloads the media behind url to a temp file. On failure it
// writes a 400 response and returns ok=false.
func (h *Handlers) fetchMedia(w http.ResponseWriter, r *http.Request, url string) (string, func(), bool) {
	if url == "" {
		WriteError(w, http.StatusBadRequest, "media url is required")
		return "", nil, false
	}

	path, cleanup, err := h.fetcher.Fetch(r.Context(), url)
	if err != nil {
		h.log.Warn().Err(err).Str("url", url).Msg("media fetch failed")
		WriteErrorDetail(w, http.StatusBadRequest, "failed to download media", err.Error())
		return "", nil, false
	}
	return path, cleanup, true
}

// saveUpload spools the multipart "file" part to a temp file, validating
// its content type against the allowed prefixes (e.g. "audio/", "video/").
// On failure it writes a 400 response and returns ok=false.
func (h *Handlers) saveUpload(w http.ResponseWriter, r *http.Request, allowed ...string) (string, func(), bool) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteErrorDetail(w, http.StatusBadRequest, "missing file upload", err.Error())
		return "", nil, false
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	accepted := false
	for _, prefix := range allowed {
		if strings.HasPrefix(contentType, prefix) {
			accepted = true
			break
		}
	}
	if !accepted {
		WriteError(w, http.StatusBadRequest, "file must be "+typeLabel(allowed))
		return "", nil, false
	}

	path, cleanup, err := h.fetcher.SaveUpload(file, uploadName(header.Filename, contentType))
	if err != nil {
		h.log.Warn().Err(err).Str("filename", header.Filename).Msg("upload spool failed")
		WriteErrorDetail(w, http.StatusBadRequest, "failed to save upload", err.Error())
		return "", nil, false
	}
	return path, cleanup, true
}

// typeLabel renders allowed content-type prefixes for an error message:
// ["audio/", "video/"] reads "audio or video".
func typeLabel(prefixes []string) string {
	labels := make([]string, len(prefixes))
	for i, p := range prefixes {
		labels[i] = strings.TrimSuffix(p, "/")
	}
	return strings.Join(labels, " or ")
}

// uploadName picks a name with a usable extension for format sniffing,
// falling back on the content type's major class.
func uploadName(filename, contentType string) string {
	if strings.Contains(filename, ".") {
		return filename
	}
	if strings.HasPrefix(contentType, "audio/") {
		return "upload.wav"
	}
	return "upload.mp4"
}

// formValue reads a field from the (multipart) form with a query fallback.
func formValue(r *http.Request, name string) string {
	if v := r.FormValue(name); v != "" {
		return v
	}
	return r.URL.Query().Get(name)
}
