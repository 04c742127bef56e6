package layouts

import (
	"bytes"
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

var baseTemplate = template.Must(template.New("base").Parse(`<!DOCTYPE html>
<html lang="en"{{ with .Class }} class="{{ . }}"{{ end }}>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta http-equiv="Accept-CH" content="Sec-CH-Prefers-Color-Scheme">
<title>{{ .Title }}</title>
<style id="theme-vars">{{ .CSS }}</style>
<link rel="stylesheet" href="/static/css/main.css">
<script src="/static/js/htmx.min.js" defer></script>
</head>
<body class="bg-background text-foreground font-sans">
{{ .Content }}
</body>
</html>
`))

// Base renders the page shell with the theme variables inlined in the head,
// so the first paint already uses the active theme.
func Base(title string, content templ.Component, style ThemeStyle) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var body bytes.Buffer
		if err := content.Render(ctx, &body); err != nil {
			return err
		}
		return baseTemplate.Execute(w, struct {
			Title   string
			Class   string
			CSS     template.CSS
			Content template.HTML
		}{
			Title:   title,
			Class:   htmlClass(style),
			CSS:     template.CSS(style.CSS),
			Content: template.HTML(body.String()),
		})
	})
}

var themeUpdateTemplate = template.Must(template.New("theme-update").Parse(
	`<style id="theme-vars" hx-swap-oob="true">{{ .CSS }}</style>` +
		`<script>document.documentElement.classList.toggle("dark", {{ .Dark }});</script>`))

// ThemeUpdate is an out-of-band fragment that swaps the inline theme
// variables and the dark class after a theme change.
func ThemeUpdate(style ThemeStyle) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return themeUpdateTemplate.Execute(w, struct {
			CSS  template.CSS
			Dark bool
		}{
			CSS:  template.CSS(style.CSS),
			Dark: style.Dark,
		})
	})
}
