package translate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Маппинг внутренних кодов в коды провайдера:
// известные коды берутся из таблицы, незнакомые — аперкейс как есть.
func TestProviderCode(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"fr", "FR"},
		{"en", "EN"},
		{"zh", "ZH"},
		{"FR", "FR"},
		{" de ", "DE"},
		{"eo", "EO"},   // не в таблице — passthrough upper-case.
		{"x-kl", "X-KL"},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, ProviderCode(tc.in), "in=%q", tc.in)
	}
}
