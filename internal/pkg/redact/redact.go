// redact — маскирование секретов в логах и дампах конфигурации.
package redact

// APIKey маскирует ключ провайдера: первые 4 символа + "***".
func APIKey(s string) string {
	if len(s) <= 4 {
		return "***"
	}

	return s[:4] + "***"
}

func Token() string { return "[REDACTED_TOKEN]" }
