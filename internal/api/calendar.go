package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/mpetrenko/calendar-insights-backend/internal/model"
)

// authorizeCalendarHandler redirects the caller to the Google consent
// page. The caller's own bearer token travels in the state parameter,
// so the callback can tell whose consent completed.
func (a *Api) authorizeCalendarHandler(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

	http.Redirect(w, r, a.consent.ConsentURL(token), http.StatusFound)
}

// oauthCallbackHandler completes the consent flow: it authenticates
// the state token, exchanges the code for calendar tokens, stores them
// and runs the first sync.
func (a *Api) oauthCallbackHandler(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	id, err := a.jwts.GetIdFromToken(state)
	if err != nil {
		a.unauthorizedResponse(w, r, errors.New("invalid state"))
		return
	}

	user, err := a.users.GetUserByID(r.Context(), a.db, id)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrNoRecord):
			a.forbiddenResponse(w, r, "user does not exists")
		default:
			a.serverErrorResponse(w, r, err)
		}
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		a.badRequestResponse(w, r, errors.New("code must be provided"))
		return
	}

	token, err := a.consent.Exchange(r.Context(), code)
	if err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("exchange code: %w", err))
		return
	}

	if err := a.credentials.UpsertCredentials(r.Context(), a.db, &model.Credentials{
		UserID:       user.ID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("store credentials: %w", err))
		return
	}

	if err := a.sync.SyncUser(r.Context(), user); err != nil {
		a.serverErrorResponse(w, r, fmt.Errorf("initial sync: %w", err))
		return
	}

	w.WriteHeader(http.StatusOK)
}

func (a *Api) syncCalendarHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := r.Context().Value(contextKeyUser).(*model.User)
	if !ok {
		a.serverErrorResponse(w, r, errCantRetrieveUser)
		return
	}

	if err := a.sync.SyncUser(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, model.ErrNotAuthorized):
			a.conflictResponse(w, r, "calendar is not authorized")
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("sync calendar: %w", err))
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}
