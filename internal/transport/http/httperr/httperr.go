// httperr стандартизирует ответы об ошибках HTTP-слоя.
// На вход — ошибка сервисного слоя (сентинелы service/*), на выход:
//   - корректный HTTP-статус;
//   - краткое безопасное message без утечки деталей.
package httperr

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pribylovaa/cv-profile-service/internal/service"
	"github.com/pribylovaa/cv-profile-service/internal/translate"
)

// Нестандартный код часто используемый для "клиент закрыл соединение".
const StatusClientClosedRequest = 499

// APIError — единый формат для фронта.
// Code — короткий стабильный код для машиночитаемой обработки на FE.
// Message — безопасное человекочитаемое описание.
// RequestID — прокидывается из X-Request-Id, если есть (для трассировки).
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse — корневой объект в ответе.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// ToHTTP конвертирует ошибку сервисного слоя в HTTP-статус и унифицированный
// ответ для фронта.
//
// Маппинг:
//   - ErrInvalidArgument -> 400;
//   - ErrNotFound -> 404;
//   - translate.ErrRateLimited -> 429 (лимиты провайдера на операции перевода);
//   - context.Canceled -> 499, context.DeadlineExceeded -> 504;
//   - прочее (включая ErrInternal и err == nil — программная ошибка вызова) -> 500.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := base(err)

	return status, ErrorResponse{
		Error: APIError{
			Code:    code,
			Message: msg,
		},
	}
}

// WriteError — хелпер для HTTP-хендлеров.
// Пишет корректный статус/тело, добавляет request_id из заголовка, если он есть.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)

	// Прокидываем request_id для фронта, чтобы он мог репортить баги с привязкой.
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.Error.RequestID = rid
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func base(err error) (int, string, string) {
	switch {
	case err == nil:
		return http.StatusInternalServerError, "internal", "internal error"
	case errors.Is(err, service.ErrInvalidArgument):
		return http.StatusBadRequest, "invalid_argument", "invalid argument"
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound, "not_found", "not found"
	case errors.Is(err, translate.ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited", "provider rate limited"
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "deadline exceeded"
	default:
		return http.StatusInternalServerError, "internal", "internal error"
	}
}
