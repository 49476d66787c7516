package http

import (
	"net/http"

	"github.com/MKhiriev/go-qr-keeper/internal/logger"
	"github.com/MKhiriev/go-qr-keeper/internal/service"
	"github.com/MKhiriev/go-qr-keeper/internal/utils"
)

// auth resolves the caller identity from an optional bearer token.
//
// Requests without an "Authorization" header pass through anonymously. A
// header that is present but malformed, or a token that fails
// verification, is rejected with 401 Unauthorized. On success the token
// subject is stored in the request context via [utils.WithOwnerID].
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			next.ServeHTTP(w, r)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			writeError(w, r, "Handler.auth", ErrInvalidAuthorizationHeader)
			return
		}

		ctx := r.Context()
		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeError(w, r, "Handler.auth", err)
			return
		}

		logger.FromRequest(r).Debug().Str("owner_id", token.OwnerID).Msg("caller authenticated")

		next.ServeHTTP(w, r.WithContext(utils.WithOwnerID(ctx, token.OwnerID)))
	})
}

// requireOwner rejects anonymous callers. It must run after auth.
func (h *Handler) requireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetOwnerIDFromContext(r.Context()); !ok {
			writeError(w, r, "Handler.requireOwner", service.ErrUnauthenticated)
			return
		}
		next.ServeHTTP(w, r)
	})
}
