package leads

import "strings"

// htmlEscaper replaces the five HTML-special characters in a single
// pass, so entities produced by one substitution are never re-escaped
// by another. html.EscapeString is not used because it emits numeric
// entities (&#34;, &#39;) instead of the &quot;/&#x27; forms the
// notification emails carry.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

// EscapeHTML escapes user-supplied text for interpolation into the
// notification email body. Values headed for the database stay raw.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// Normalize builds the lead that will be persisted. Call it only after
// Validate returned no errors.
func Normalize(s *Submission, clientIP string) *Lead {
	lead := &Lead{
		Nombre:    strings.TrimSpace(string(s.Nombre)),
		Email:     strings.ToLower(strings.TrimSpace(string(s.Email))),
		Mensaje:   strings.TrimSpace(string(s.Mensaje)),
		PageURL:   truncate(strings.TrimSpace(string(s.PageURL)), 500),
		UserAgent: truncate(strings.TrimSpace(string(s.UserAgent)), 500),
		ClientIP:  clientIP,
		Status:    StatusNew,
	}
	if digits := digitsOnly(string(s.Telefono)); digits != "" {
		lead.Telefono = &digits
	}
	if car := strings.TrimSpace(string(s.CocheInteres)); car != "" {
		lead.CocheInteres = &car
	}
	if id := strings.TrimSpace(string(s.CarID)); id != "" {
		lead.CarID = &id
	}
	return lead
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
