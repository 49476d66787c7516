package http

import "net/http"

// withBodyLimit wraps the request body in [http.MaxBytesReader]. Handlers
// see a *http.MaxBytesError once the limit is crossed.
func (h *Handler) withBodyLimit(next http.Handler) http.Handler {
	if h.maxUploadBytes <= 0 {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > h.maxUploadBytes {
			writeError(w, r, "Handler.withBodyLimit", ErrBodyTooLarge)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
		next.ServeHTTP(w, r)
	})
}
