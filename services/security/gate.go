package security

import (
	"fmt"
	"regexp"
	"strings"

	"freightbook/config"

	"go.uber.org/zap"
)

// Gate screens user-supplied values before they may enter the state machine
// and masks identifying substrings before anything reaches the audit sink.
type Gate interface {
	ValidateText(value string) error
	Sanitize(value string) string
	Mask(value string) string
	MaskPayload(payload map[string]string) map[string]string
}

// DefaultGate implements Gate with pattern-based rejection.
type DefaultGate struct {
	Logger *zap.Logger

	dangerous []*regexp.Regexp
}

var dangerousPatterns = []string{
	`rm\s+-rf`,
	`sudo\s+`,
	`curl.*\|.*sh`,
	`wget.*\|.*sh`,
	`eval\s*\(`,
	`exec\s*\(`,
	`__import__`,
	`subprocess`,
	`os\.system`,
	`shell=True`,
	`<script`,
	`;\s*drop\s+table`,
	`('|")\s*or\s+('|")?1('|")?\s*=\s*('|")?1`,
}

// NewDefaultGate compiles the dangerous pattern set once.
func NewDefaultGate(logger *zap.Logger) *DefaultGate {
	g := &DefaultGate{Logger: logger}
	for _, p := range dangerousPatterns {
		g.dangerous = append(g.dangerous, regexp.MustCompile(`(?i)`+p))
	}
	return g
}

// ValidateText rejects empty, oversized, or dangerous input.
func (g *DefaultGate) ValidateText(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fmt.Errorf("value is empty")
	}
	max := config.AppConfig.MaxFieldLength
	if max <= 0 {
		max = 5000
	}
	if len(value) > max {
		g.Logger.Warn("Input exceeds length limit", zap.Int("length", len(value)))
		return fmt.Errorf("value exceeds maximum length of %d", max)
	}
	for _, re := range g.dangerous {
		if re.MatchString(value) {
			g.Logger.Warn("Dangerous input pattern matched",
				zap.String("pattern", re.String()),
				zap.String("value", g.Mask(truncate(value, 100))))
			return fmt.Errorf("value matched a dangerous input pattern")
		}
	}
	return nil
}

var controlChars = regexp.MustCompile(`[\x00-\x08\x0b\x0c\x0e-\x1f\x7f]`)

// Sanitize strips control characters and trims the value to the field limit.
func (g *DefaultGate) Sanitize(value string) string {
	out := controlChars.ReplaceAllString(value, "")
	max := config.AppConfig.MaxFieldLength
	if max <= 0 {
		max = 5000
	}
	if len(out) > max {
		out = out[:max]
	}
	return strings.TrimSpace(out)
}

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	tokenPattern = regexp.MustCompile(`\b[A-Za-z0-9]{20,}\b`)
	phonePattern = regexp.MustCompile(`\+?\d[\d\- ]{7,}\d`)
)

// Mask hides emails, phone numbers, and long token-like strings.
func (g *DefaultGate) Mask(value string) string {
	out := emailPattern.ReplaceAllStringFunc(value, func(m string) string {
		return m[:3] + "***@***.***"
	})
	out = tokenPattern.ReplaceAllStringFunc(out, func(m string) string {
		return m[:4] + strings.Repeat("*", len(m)-8) + m[len(m)-4:]
	})
	out = phonePattern.ReplaceAllStringFunc(out, func(m string) string {
		if len(m) <= 4 {
			return "****"
		}
		return m[:4] + strings.Repeat("*", len(m)-4)
	})
	return out
}

// MaskPayload masks every value of an audit payload.
func (g *DefaultGate) MaskPayload(payload map[string]string) map[string]string {
	if payload == nil {
		return nil
	}
	masked := make(map[string]string, len(payload))
	for k, v := range payload {
		masked[k] = g.Mask(v)
	}
	return masked
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
