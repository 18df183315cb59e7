package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

const suffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// randomSuffix returns a short random identifier fragment used in generated
// organization codes and channel slugs.
func randomSuffix(length int) string {
	if length <= 0 {
		length = 6
	}

	var builder strings.Builder
	builder.Grow(length)
	max := big.NewInt(int64(len(suffixAlphabet)))
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the platform entropy source is
			// broken; fall back to a fixed character rather than panic.
			builder.WriteByte('x')
			continue
		}
		builder.WriteByte(suffixAlphabet[n.Int64()])
	}
	return builder.String()
}

// slugify converts a display name into a kebab-case slug fragment.
func slugify(name string) string {
	var builder strings.Builder
	builder.Grow(len(name))
	prevDash := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			builder.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				builder.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.Trim(builder.String(), "-")
}

// randomHSLColor produces the workspace accent colour.
func randomHSLColor() string {
	hue, err := rand.Int(rand.Reader, big.NewInt(360))
	if err != nil {
		return "hsl(200, 70%, 50%)"
	}
	return fmt.Sprintf("hsl(%d, 70%%, 50%%)", hue.Int64())
}

func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
