// translate описывает контракт внешнего провайдера перевода.
// Ядро сервиса не знает деталей конкретного вендора: ему нужен один вызов
// translate(text, target, source) с различимыми классами отказов.
package translate

import (
	"context"
	"errors"
	"strings"
)

// Классы отказов провайдера. Движок согласования не ретраит их сам,
// а фиксирует в исходе по каждому полю.
var (
	// ErrUnavailable — провайдер недоступен (сеть, 5xx).
	ErrUnavailable = errors.New("translation provider unavailable")
	// ErrRejected — провайдер отклонил запрос (невалидный язык/текст, авторизация).
	ErrRejected = errors.New("translation request rejected")
	// ErrRateLimited — превышены лимиты провайдера.
	ErrRateLimited = errors.New("translation provider rate limited")
)

// Translator — контракт провайдера перевода.
// sourceLang может быть пустым: провайдер определяет язык сам.
// Каждый вызов переводит ровно один текст — изоляция отказов по полям
// требует независимых вызовов, без неявного батчинга.
type Translator interface {
	Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error)
}

// providerCodes — фиксированный маппинг внутренних коротких кодов языков
// в коды провайдера.
var providerCodes = map[string]string{
	"en": "EN",
	"fr": "FR",
	"de": "DE",
	"es": "ES",
	"it": "IT",
	"pt": "PT",
	"nl": "NL",
	"pl": "PL",
	"ru": "RU",
	"uk": "UK",
	"ja": "JA",
	"ko": "KO",
	"zh": "ZH",
	"ar": "AR",
	"tr": "TR",
}

// ProviderCode нормализует внутренний код языка в код провайдера.
// Незнакомые коды передаются как есть в верхнем регистре.
func ProviderCode(lang string) string {
	lang = strings.TrimSpace(strings.ToLower(lang))
	if code, ok := providerCodes[lang]; ok {
		return code
	}

	return strings.ToUpper(lang)
}
