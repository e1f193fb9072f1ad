package leads

import (
	"strings"
	"testing"
)

func TestEscapeHTML_ReplacesAllFive(t *testing.T) {
	in := `<script>alert("x & 'y'")</script>`
	out := EscapeHTML(in)

	for _, raw := range []string{"<", ">", `"`, "'"} {
		if strings.Contains(out, raw) {
			t.Errorf("escaped output still contains raw %q: %s", raw, out)
		}
	}
	// Every & must belong to an entity we produced.
	stripped := out
	for _, ent := range []string{"&amp;", "&lt;", "&gt;", "&quot;", "&#x27;"} {
		stripped = strings.ReplaceAll(stripped, ent, "")
	}
	if strings.Contains(stripped, "&") {
		t.Errorf("unescaped ampersand left in %s", out)
	}
}

func TestEscapeHTML_RoundTrip(t *testing.T) {
	inputs := []string{
		`<script>alert('xss')</script>`,
		`Tom & Jerry say "hi"`,
		"plain text stays plain",
		"already &amp; escaped input",
	}
	decoder := strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&#x27;", "'",
		"&amp;", "&",
	)
	for _, in := range inputs {
		if got := decoder.Replace(EscapeHTML(in)); got != in {
			t.Errorf("round trip of %q gave %q", in, got)
		}
	}
}

func TestEscapeHTML_NoDoubleEscaping(t *testing.T) {
	if got := EscapeHTML("<"); got != "&lt;" {
		t.Errorf("EscapeHTML(<) = %q", got)
	}
	if got := EscapeHTML("&lt;"); got != "&amp;lt;" {
		t.Errorf("EscapeHTML(&lt;) = %q, ampersand must escape first", got)
	}
}

func TestNormalize_TrimsAndLowercases(t *testing.T) {
	sub := Submission{
		Nombre:  "  Maria Garcia  ",
		Email:   " MARIA@Example.COM ",
		Mensaje: "  I want to know more about this car  ",
	}
	lead := Normalize(&sub, "1.2.3.4")

	if lead.Nombre != "Maria Garcia" {
		t.Errorf("nombre = %q", lead.Nombre)
	}
	if lead.Email != "maria@example.com" {
		t.Errorf("email = %q", lead.Email)
	}
	if lead.Mensaje != "I want to know more about this car" {
		t.Errorf("mensaje = %q", lead.Mensaje)
	}
	if lead.ClientIP != "1.2.3.4" {
		t.Errorf("client ip = %q", lead.ClientIP)
	}
	if lead.Status != StatusNew {
		t.Errorf("status = %q, want %q", lead.Status, StatusNew)
	}
}

func TestNormalize_PhoneReducedToDigits(t *testing.T) {
	sub := validSubmission()
	sub.Telefono = "+34 600-123 456"
	lead := Normalize(&sub, "ip")

	if lead.Telefono == nil || *lead.Telefono != "34600123456" {
		t.Fatalf("telefono = %v, want 34600123456", lead.Telefono)
	}
}

func TestNormalize_EmptyOptionalsAreAbsent(t *testing.T) {
	sub := validSubmission()
	sub.Telefono = "  "
	sub.CocheInteres = ""
	sub.CarID = ""
	lead := Normalize(&sub, "ip")

	if lead.Telefono != nil {
		t.Errorf("blank telefono should be absent, got %q", *lead.Telefono)
	}
	if lead.CocheInteres != nil {
		t.Errorf("blank coche_interes should be absent")
	}
	if lead.CarID != nil {
		t.Errorf("blank car_id should be absent")
	}
}

func TestNormalize_TruncatesTrackingFields(t *testing.T) {
	sub := validSubmission()
	sub.PageURL = formText("https://example.com/" + strings.Repeat("a", 600))
	sub.UserAgent = formText(strings.Repeat("u", 501))
	lead := Normalize(&sub, "ip")

	if n := len([]rune(lead.PageURL)); n != 500 {
		t.Errorf("page_url length = %d, want 500", n)
	}
	if n := len([]rune(lead.UserAgent)); n != 500 {
		t.Errorf("user_agent length = %d, want 500", n)
	}
}

func TestDigitsOnly(t *testing.T) {
	cases := map[string]string{
		"+34 600-123 456": "34600123456",
		"no digits here":  "",
		"600123456":       "600123456",
	}
	for in, want := range cases {
		if got := digitsOnly(in); got != want {
			t.Errorf("digitsOnly(%q) = %q, want %q", in, got, want)
		}
	}
}
