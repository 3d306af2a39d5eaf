package apierrors

import (
	"math"
	"strings"
)

const (
	maxEnvelopeDepth = 4
	maxTextMessage   = 300

	msgUnexpected = "An unexpected error occurred"
	msgCancelled  = "Request cancelled"
	msgValidation = "Validation error"
)

// fields is what a shape matcher could pull out of an error payload.
type fields struct {
	message string
	code    Code
	details any
	status  int
}

func (f fields) empty() bool {
	return f.message == "" && f.code == "" && f.details == nil
}

// shapeMatcher recognizes one backend error convention.
type shapeMatcher func(payload any, depth int) (fields, bool)

// extractFields runs the matchers in order; the first match wins.
func extractFields(payload any, depth int) fields {
	matchers := [...]shapeMatcher{
		matchNestedEnvelope,
		matchGatewayEnvelope,
		matchValidationDetail,
		matchGenericObject,
		matchPlainText,
	}
	for _, match := range matchers {
		if f, ok := match(payload, depth); ok {
			return f
		}
	}
	return fields{}
}

// matchNestedEnvelope handles {data: {success, error, ...}} double wrapping.
func matchNestedEnvelope(payload any, depth int) (fields, bool) {
	obj, ok := payload.(map[string]any)
	if !ok || depth >= maxEnvelopeDepth {
		return fields{}, false
	}
	inner, ok := obj["data"].(map[string]any)
	if !ok {
		return fields{}, false
	}
	_, hasSuccess := inner["success"]
	_, hasError := inner["error"]
	if !hasSuccess && !hasError {
		return fields{}, false
	}
	f := extractFields(inner, depth+1)
	if f.empty() {
		return fields{}, false
	}
	if f.status == 0 {
		f.status = pickStatus(obj)
	}
	return f, true
}

// matchGatewayEnvelope handles {success, error|message, code, details, data}.
func matchGatewayEnvelope(payload any, _ int) (fields, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return fields{}, false
	}
	msg := firstString(obj, "error", "message")
	code := normalizeCode(obj["code"])
	_, hasDetails := obj["details"]
	if msg == "" && code == "" && !hasDetails {
		return fields{}, false
	}
	details := obj["details"]
	if details == nil {
		details = obj["data"]
	}
	return fields{message: msg, code: code, details: details, status: pickStatus(obj)}, true
}

// matchValidationDetail handles FastAPI style {detail: string|[]{msg}|{message}}.
func matchValidationDetail(payload any, _ int) (fields, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return fields{}, false
	}
	detail, ok := obj["detail"]
	if !ok {
		return fields{}, false
	}
	var msg string
	switch d := detail.(type) {
	case string:
		msg = d
	case []any:
		msg = msgValidation
		if len(d) > 0 {
			if first, ok := d[0].(map[string]any); ok {
				if m, ok := first["msg"].(string); ok && m != "" {
					msg = m
				}
			}
		}
	case map[string]any:
		msg = msgValidation
		if m, ok := d["message"].(string); ok && m != "" {
			msg = m
		}
	}
	return fields{message: msg, code: CodeValidationError, details: detail, status: pickStatus(obj)}, true
}

// matchGenericObject accepts any object and reads {message|error, code, details}.
func matchGenericObject(payload any, _ int) (fields, bool) {
	obj, ok := payload.(map[string]any)
	if !ok {
		return fields{}, false
	}
	return fields{
		message: firstString(obj, "message", "error"),
		code:    normalizeCode(obj["code"]),
		details: obj["details"],
		status:  pickStatus(obj),
	}, true
}

// matchPlainText treats a non-blank string body as the message.
func matchPlainText(payload any, _ int) (fields, bool) {
	s, ok := payload.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return fields{}, false
	}
	return fields{message: truncate(s, maxTextMessage)}, true
}

var codeFallbacks = []struct {
	fragment string
	code     Code
}{
	{"UNAUTH", CodeUnauthorized},
	{"FORBID", CodeForbidden},
	{"VALID", CodeValidationError},
	{"NOT_FOUND", CodeNotFound},
	{"CONFLICT", CodeConflict},
	{"TIMEOUT", CodeTimeout},
}

// normalizeCode maps a backend-declared code onto the closed set.
func normalizeCode(v any) Code {
	raw, ok := v.(string)
	if !ok || raw == "" {
		return ""
	}
	upper := strings.ToUpper(strings.TrimSpace(raw))
	if c := Code(upper); c.Known() {
		return c
	}
	for _, fb := range codeFallbacks {
		if strings.Contains(upper, fb.fragment) {
			return fb.code
		}
	}
	return ""
}

var statusKeys = []string{"status", "statusCode", "status_code", "httpStatus"}

func pickStatus(obj map[string]any) int {
	for _, key := range statusKeys {
		if s, ok := toStatus(obj[key]); ok {
			return s
		}
	}
	return 0
}

func toStatus(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 || n != math.Trunc(n) || n > math.MaxInt32 {
			return 0, false
		}
		return int(n), true
	case int:
		return n, n > 0
	case int64:
		return int(n), n > 0 && n <= math.MaxInt32
	}
	return 0, false
}

func firstString(obj map[string]any, keys ...string) string {
	for _, key := range keys {
		if s, ok := obj[key].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
