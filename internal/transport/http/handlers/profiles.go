package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/cv-profile-service/internal/transport/http/httperr"
)

// GetProfile — GET /profiles/{user_id}.
// Отдаёт профиль владельца; при первом обращении профиль создаётся пустым.
func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		httperr.WriteError(w, r, errInvalidArgument())
		return
	}

	profile, err := h.Service.ProfileByUserID(r.Context(), userID)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ProfileFromModel(profile))
}

// UpdateProfile — PUT /profiles/{user_id}.
// Заменяет присланные секции документа целиком (tags, metadata, fields,
// base_language); отсутствующие секции не трогаются.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		httperr.WriteError(w, r, errInvalidArgument())
		return
	}

	var in UpdateProfileRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, errInvalidArgument())
		return
	}

	input, err := in.ToInput(userID)
	if err != nil {
		httperr.WriteError(w, r, errInvalidArgument())
		return
	}

	profile, err := h.Service.UpdateProfile(r.Context(), input)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, ProfileFromModel(profile))
}
