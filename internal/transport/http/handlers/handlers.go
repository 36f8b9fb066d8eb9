// handlers — REST-хендлеры cv-profile-service.
//
// Слой отвечает только за декодирование/валидацию формы запроса и
// сериализацию ответа; бизнес-правила живут в service.
package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/pribylovaa/cv-profile-service/internal/service"
)

// Handlers агрегирует зависимости (сервисный слой).
type Handlers struct {
	Service *service.Service
}

func New(s *service.Service) *Handlers {
	return &Handlers{Service: s}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
// Ошибки выводим через httperr.WriteError.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// errInvalidArgument — вспомогалка: локальная ошибка парсинга -> 400.
func errInvalidArgument() error {
	return fmt.Errorf("handlers: %w", service.ErrInvalidArgument)
}
