package logging

import (
	"log/slog"
	"strings"
)

// secretKeyPatterns are substrings of attribute keys whose values are masked.
// Matching is case-insensitive.
var secretKeyPatterns = []string{
	"TOKEN",
	"SECRET",
	"PASSWORD",
	"AUTH",
	"CREDENTIAL",
	"API_KEY",
	"APIKEY",
	"PRIVATE",
}

// tokenPrefixes identify credential values regardless of key name.
var tokenPrefixes = []string{
	"ghp_", "gho_", "ghu_", "ghs_", "ghr_",
	"sk-",
	"AKIA",
	"xoxb-", "xoxp-", "xoxa-", "xoxr-",
}

// ShouldMask reports whether values logged under key should be masked.
func ShouldMask(key string) bool {
	upper := strings.ToUpper(key)
	for _, p := range secretKeyPatterns {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}

// LooksLikeToken reports whether value starts with a known credential prefix.
func LooksLikeToken(value string) bool {
	for _, p := range tokenPrefixes {
		if strings.HasPrefix(value, p) {
			return true
		}
	}
	return false
}

// MaskValue hides all but the last four characters of value.
// Values of four characters or fewer are fully masked.
func MaskValue(value string) string {
	if len(value) <= 4 {
		return "********"
	}
	return "****" + value[len(value)-4:]
}

// MaskEnv returns a copy of env with sensitive values masked.
func MaskEnv(env map[string]string) map[string]string {
	if env == nil {
		return nil
	}
	out := make(map[string]string, len(env))
	for k, v := range env {
		if ShouldMask(k) || LooksLikeToken(v) {
			out[k] = MaskValue(v)
			continue
		}
		out[k] = v
	}
	return out
}

// redactAttr masks a as a ReplaceAttr hook would.
func redactAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Value.Kind() {
	case slog.KindString:
		s := a.Value.String()
		if ShouldMask(a.Key) || LooksLikeToken(s) {
			return slog.String(a.Key, MaskValue(s))
		}
	case slog.KindAny:
		if env, ok := a.Value.Any().(map[string]string); ok {
			return slog.Any(a.Key, MaskEnv(env))
		}
		if ShouldMask(a.Key) {
			return slog.String(a.Key, MaskValue(a.Value.String()))
		}
	}
	return a
}
