package templates

import (
	"embed"
	htmpl "html/template"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

// Template names. A name maps to <name>.subject.tmpl, <name>.text.tmpl and
// <name>.html.tmpl; Universal only ships the HTML part.
const (
	Universal         = "universal"
	VerificationCode  = "verification_code"
	LoginNotification = "login_notification"
)

//go:embed *.tmpl
var files embed.FS

var (
	textSet = texttpl.Must(texttpl.New("text").Funcs(texttpl.FuncMap(funcs)).
		ParseFS(files, "*.subject.tmpl", "*.text.tmpl"))
	htmlSet = htmpl.Must(htmpl.New("html").Funcs(htmpl.FuncMap(funcs)).
		ParseFS(files, "*.html.tmpl"))
)

var funcs = map[string]any{
	"now":     func() time.Time { return time.Now().UTC() },
	"upper":   strings.ToUpper,
	"default": orDefault,
}

// orDefault backs {{ .Value | default "fallback" }}: blank strings, nil and
// zero values fall back.
func orDefault(fallback, value any) any {
	switch v := value.(type) {
	case nil:
		return fallback
	case string:
		if strings.TrimSpace(v) == "" {
			return fallback
		}
		return v
	}
	if reflect.ValueOf(value).IsZero() {
		return fallback
	}
	return value
}

func execText(file string, data any) (string, error) {
	var sb strings.Builder
	if err := textSet.ExecuteTemplate(&sb, file, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func execHTML(file string, data any) (string, error) {
	var sb strings.Builder
	if err := htmlSet.ExecuteTemplate(&sb, file, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Render produces the subject, plain text and HTML parts of name.
func Render(name string, data any) (subject, text, html string, err error) {
	if subject, err = execText(name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = execText(name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execHTML(name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}

// RenderHTML renders only <name>.html.tmpl.
func RenderHTML(name string, data any) (string, error) {
	return execHTML(name+".html.tmpl", data)
}
