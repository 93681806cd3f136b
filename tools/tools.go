package tools

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"unicode"
)

// CheckoutToken gera o token público de checkout de um plano: 16 bytes de
// crypto/rand renderizados em hex (32 caracteres). A unicidade é garantida
// pelo índice único do banco; a aleatoriedade só precisa ser imprevisível.
func CheckoutToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// HashSHA256 normaliza (trim + minúsculas) e aplica SHA-256 em hex, como a
// Conversions API exige para campos de user_data.
func HashSHA256(text string) string {
	normalized := strings.ToLower(strings.TrimSpace(text))
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])
}

// OnlyDigits remove tudo que não é dígito (telefones e documentos chegam
// formatados do front).
func OnlyDigits(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
