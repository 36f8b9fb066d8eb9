package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pribylovaa/cv-profile-service/internal/transport/http/httperr"
)

// Translate — POST /profiles/{user_id}/translate.
//
// Селектор области перевода — ровно один:
//   - field_id — перевести одно поле (существующий перевод перезаписывается);
//   - translate_all=true — перевести все поля (уже переведённые пропускаются).
//
// Неуспех перевода отдельного поля — не ошибка HTTP-операции: исход
// фиксируется в манифесте, клиент решает, что показывать пользователю.
func (h *Handlers) Translate(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "user_id"))
	if err != nil {
		httperr.WriteError(w, r, errInvalidArgument())
		return
	}

	var in TranslateRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, errInvalidArgument())
		return
	}

	// Ровно один селектор.
	if in.TranslateAll == (in.FieldID != "") {
		httperr.WriteError(w, r, errInvalidArgument())
		return
	}

	if in.TranslateAll {
		profile, outcomes, err := h.Service.TranslateAll(r.Context(), userID, in.TargetLanguage)
		if err != nil {
			httperr.WriteError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, TranslateAllResponse{
			Profile:  ProfileFromModel(profile),
			Outcomes: outcomesFromService(outcomes),
		})
		return
	}

	fieldID, err := uuid.Parse(in.FieldID)
	if err != nil {
		httperr.WriteError(w, r, errInvalidArgument())
		return
	}

	field, outcome, err := h.Service.TranslateField(r.Context(), userID, fieldID, in.TargetLanguage)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TranslateFieldResponse{
		Field:   fieldFromModel(*field),
		Outcome: outcomeFromService(outcome),
	})
}
