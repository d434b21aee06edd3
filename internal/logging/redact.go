package logging

import "strings"

// RedactEmail keeps the first two characters of the local part and the domain.
func RedactEmail(s string) string {
	parts := strings.Split(s, "@")
	if len(parts) != 2 {
		return "***"
	}

	local, domain := parts[0], parts[1]
	if len(local) > 2 {
		local = local[:2] + "***"
	} else {
		local = "***"
	}

	return local + "@" + domain
}

const (
	RedactedToken    = "[REDACTED_TOKEN]"
	RedactedPassword = "[REDACTED_PASSWORD]"
	RedactedCode     = "[REDACTED_CODE]"
)

// sensitiveFields are request body keys whose values never reach a log line.
var sensitiveFields = map[string]string{
	"password":      RedactedPassword,
	"code":          RedactedCode,
	"temp_token":    RedactedToken,
	"access_token":  RedactedToken,
	"refresh_token": RedactedToken,
	"id_token":      RedactedToken,
	"token":         RedactedToken,
}

// RedactFields returns a copy of a decoded JSON object with credentials
// replaced and emails shortened. Nested values are left as they are.
func RedactFields(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if repl, ok := sensitiveFields[strings.ToLower(k)]; ok {
			out[k] = repl
			continue
		}
		if k == "email" {
			if s, ok := v.(string); ok {
				out[k] = RedactEmail(s)
				continue
			}
		}
		out[k] = v
	}
	return out
}
