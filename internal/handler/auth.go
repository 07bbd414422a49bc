package handler

import (
	"context"
	"net/http"
	"strings"
)

// accountIDKey is the context key for the authenticated account ID.
type accountIDKey struct{}

// requireAccount is middleware that resolves the acting account from the
// Authorization header. Credentials take the form "Basic user:pass", either
// base64-encoded per RFC 7617 or raw (some operational tooling sends the
// unencoded form). The username identifies the account; requests without
// usable credentials are rejected before reaching any handler.
func requireAccount(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := accountFromHeader(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, "unauthorized", "missing or malformed Authorization header")
			return
		}
		ctx := context.WithValue(r.Context(), accountIDKey{}, accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func accountFromHeader(r *http.Request) (string, bool) {
	if user, _, ok := r.BasicAuth(); ok && user != "" {
		return user, true
	}
	// Fall back to unencoded "Basic user:pass".
	header := r.Header.Get("Authorization")
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	user, _, found := strings.Cut(header[len(prefix):], ":")
	if !found || user == "" {
		return "", false
	}
	return user, true
}

// accountID returns the authenticated account for the request. The auth
// middleware guarantees it is set on every route below /api.
func accountID(r *http.Request) string {
	id, _ := r.Context().Value(accountIDKey{}).(string)
	return id
}
