// deepl реализует translate.Translator поверх DeepL-совместимого HTTP API
// (POST /v2/translate). Ключ и endpoint приходят из конфигурации процесса;
// клиент не содержит ретраев — политика повторов принадлежит вызывающему.
package deepl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pribylovaa/cv-profile-service/internal/translate"
)

// Client — HTTP-клиент DeepL-совместимого провайдера.
type Client struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

// New создаёт клиент провайдера.
// endpoint — базовый URL API (например, https://api.deepl.com);
// timeout <= 0 означает дефолтные 15s.
func New(endpoint, apiKey string, timeout time.Duration) (*Client, error) {
	const op = "translate/deepl/New"

	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return nil, fmt.Errorf("%s: empty endpoint", op)
	}

	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%s: empty api key", op)
	}

	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: timeout},
	}, nil
}

type translateRequest struct {
	Text       []string `json:"text"`
	TargetLang string   `json:"target_lang"`
	SourceLang string   `json:"source_lang,omitempty"`
}

type translateResponse struct {
	Translations []struct {
		DetectedSourceLanguage string `json:"detected_source_language"`
		Text                   string `json:"text"`
	} `json:"translations"`
}

// Translate переводит один текст на targetLang.
// sourceLang может быть пустым — тогда провайдер определяет язык сам.
// Ошибки маппятся в сентинелы пакета translate:
//   - 429 и 456 (quota) -> ErrRateLimited;
//   - 5xx и сетевые сбои -> ErrUnavailable;
//   - прочие не-200 -> ErrRejected.
func (c *Client) Translate(ctx context.Context, text, targetLang, sourceLang string) (string, error) {
	const op = "translate/deepl/Translate"

	body, err := json.Marshal(translateRequest{
		Text:       []string{text},
		TargetLang: translate.ProviderCode(targetLang),
		SourceLang: sourceCode(sourceLang),
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/v2/translate", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "DeepL-Auth-Key "+c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		// Контекст отменён/истёк — отдаём как есть, это не отказ провайдера.
		if ctx.Err() != nil {
			return "", fmt.Errorf("%s: %w", op, ctx.Err())
		}

		return "", fmt.Errorf("%s: %w: %v", op, translate.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("%s: %w: %v", op, translate.ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		// обрабатываем ниже.
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == 456:
		// 456 — нестандартный код DeepL "quota exceeded".
		return "", fmt.Errorf("%s: %w", op, translate.ErrRateLimited)
	case resp.StatusCode >= 500:
		return "", fmt.Errorf("%s: %w: status %d", op, translate.ErrUnavailable, resp.StatusCode)
	default:
		return "", fmt.Errorf("%s: %w: status %d: %s", op, translate.ErrRejected, resp.StatusCode, truncate(respBody, 200))
	}

	var parsed translateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%s: %w: malformed response: %v", op, translate.ErrRejected, err)
	}

	if len(parsed.Translations) == 0 {
		return "", fmt.Errorf("%s: %w: empty translations", op, translate.ErrRejected)
	}

	return parsed.Translations[0].Text, nil
}

func sourceCode(lang string) string {
	if strings.TrimSpace(lang) == "" {
		return ""
	}

	return translate.ProviderCode(lang)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}

	return string(b[:n]) + "..."
}

// Проверка выполнения контракта.
var _ translate.Translator = (*Client)(nil)
