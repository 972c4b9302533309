package middleware

import (
	"errors"
	"net/http"
	"strings"

	"sandgrund/pkg/auth"
	"sandgrund/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

const (
	MsgNotLoggedIn   = "You are not logged in! Please log in to get access."
	MsgBadAuthHeader = "Authorization header must be of the form 'Bearer <token>'."
	MsgInvalidToken  = "Invalid token. Please log in again."
	MsgExpiredToken  = "Your token has expired! Please log in again."
	MsgRevokedToken  = "This token is no longer valid. Please log in again."
	MsgForbidden     = "You do not have permission to perform this action."
)

// Authenticator verifies bearer tokens on httprouter handles and stores the
// claims on the request context.
type Authenticator struct {
	issuer   *auth.Issuer
	denylist auth.Denylist
	log      *logger.Logger
}

func NewAuthenticator(issuer *auth.Issuer, denylist auth.Denylist, log *logger.Logger) *Authenticator {
	return &Authenticator{issuer: issuer, denylist: denylist, log: log}
}

func (a *Authenticator) Authenticate(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		header := r.Header.Get("Authorization")
		if header == "" {
			reject(w, a.log, r, http.StatusUnauthorized, MsgNotLoggedIn)
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenString) == "" {
			reject(w, a.log, r, http.StatusUnauthorized, MsgBadAuthHeader)
			return
		}

		claims, err := a.issuer.Parse(strings.TrimSpace(tokenString))
		if err != nil {
			msg := MsgInvalidToken
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = MsgExpiredToken
			}
			reject(w, a.log, r, http.StatusUnauthorized, msg, "error", err)
			return
		}

		if a.denylist != nil {
			revoked, err := a.denylist.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				a.log.Error("denylist lookup failed",
					"request_id", logger.RequestID(r.Context()),
					"error", err,
				)
				reject(w, a.log, r, http.StatusServiceUnavailable, "Authentication is temporarily unavailable.")
				return
			}
			if revoked {
				reject(w, a.log, r, http.StatusUnauthorized, MsgRevokedToken)
				return
			}
		}

		next(w, r.WithContext(auth.WithClaims(r.Context(), claims)), ps)
	}
}

// RestrictTo must wrap a handle that is already behind Authenticate.
func (a *Authenticator) RestrictTo(roles ...string) func(httprouter.Handle) httprouter.Handle {
	return func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			claims, ok := auth.ClaimsFromContext(r.Context())
			if !ok {
				reject(w, a.log, r, http.StatusUnauthorized, MsgNotLoggedIn)
				return
			}
			for _, role := range roles {
				if claims.Role == role {
					next(w, r, ps)
					return
				}
			}
			reject(w, a.log, r, http.StatusForbidden, MsgForbidden, "role", claims.Role)
		}
	}
}
