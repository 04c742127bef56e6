package themes

import (
	"context"
	"html/template"
	"io"

	"github.com/a-h/templ"
)

const (
	panelTarget = `hx-target="#theme-customizer" hx-swap="outerHTML"`
	// Each control patches only its own field.
	customize = `hx-patch="/api/v1/theme/customizations" hx-trigger="change" ` + panelTarget
)

var panelTemplate = template.Must(template.New("panel").Parse(`<section id="theme-customizer" class="w-80 space-y-6 rounded-lg border border-border bg-card p-4 text-card-foreground">
<header class="flex items-center justify-between">
<h2 class="text-lg font-semibold">Theme Customizer</h2>
<button type="button" class="text-sm text-muted-foreground" hx-delete="/api/v1/theme/customizations" ` + panelTarget + `>Reset</button>
</header>

<div class="space-y-2">
<h3 class="text-sm font-medium">Themes</h3>
<div class="grid grid-cols-2 gap-2">
{{ range .Presets }}{{ template "theme-option" . }}{{ end }}
</div>
{{ if .CustomThemes }}
<h3 class="text-sm font-medium">Saved</h3>
<div class="grid grid-cols-2 gap-2">
{{ range .CustomThemes }}{{ template "theme-option" . }}{{ end }}
</div>
{{ end }}
</div>

<label class="block space-y-1">
<span class="text-sm font-medium">Mode</span>
<select name="mode" class="w-full rounded border border-input bg-background p-2" hx-put="/api/v1/theme/mode" hx-trigger="change" ` + panelTarget + `>
{{ range .Modes }}<option value="{{ .Value }}"{{ if .Selected }} selected{{ end }}>{{ .Label }}</option>{{ end }}
</select>
</label>

<div class="space-y-4">
<label class="block space-y-1">
<span class="text-sm font-medium">Primary color</span>
<input type="color" name="primaryColor" value="{{ .PrimaryColor }}" class="h-10 w-full" ` + customize + `>
</label>
<button type="button" class="text-xs text-muted-foreground" hx-patch="/api/v1/theme/customizations" hx-vals='{"primaryColor":""}' ` + panelTarget + `>Reset primary color</button>
{{ range .Contrast }}
<p class="text-xs {{ if .Passes }}text-muted-foreground{{ else }}text-destructive{{ end }}">{{ .Mode }} contrast {{ .Ratio }}:1{{ if not .Passes }} (below 3:1){{ end }}</p>
{{ end }}
<label class="block space-y-1">
<span class="text-sm font-medium">Font family</span>
<select name="fontFamily" class="w-full rounded border border-input bg-background p-2" ` + customize + `>
{{ range .Fonts }}<option value="{{ .Value }}"{{ if .Selected }} selected{{ end }}>{{ .Label }}</option>{{ end }}
</select>
</label>
<label class="block space-y-1">
<span class="text-sm font-medium">Border radius</span>
<select name="borderRadius" class="w-full rounded border border-input bg-background p-2" ` + customize + `>
{{ range .Radii }}<option value="{{ .Value }}"{{ if .Selected }} selected{{ end }}>{{ .Label }}</option>{{ end }}
</select>
</label>
<label class="block space-y-1">
<span class="text-sm font-medium">Spacing {{ .Spacing }}x</span>
<input type="range" name="spacing" min="{{ .SpacingMin }}" max="{{ .SpacingMax }}" step="{{ .SpacingStep }}" value="{{ .Spacing }}" class="w-full" ` + customize + `>
</label>
<label class="block space-y-1">
<span class="text-sm font-medium">Animations</span>
<select name="animations" class="w-full rounded border border-input bg-background p-2" ` + customize + `>
<option value="true"{{ if .Animations }} selected{{ end }}>On</option>
<option value="false"{{ if not .Animations }} selected{{ end }}>Off</option>
</select>
</label>
</div>

<button type="button" class="w-full rounded bg-primary p-2 text-primary-foreground" hx-post="/api/v1/theme/custom" ` + panelTarget + `>Save as custom theme</button>
</section>

{{ define "theme-option" }}<form hx-put="/api/v1/theme/current" ` + panelTarget + `>
<input type="hidden" name="themeId" value="{{ .ID }}">
<button type="submit" title="{{ .Description }}" class="flex w-full items-center gap-2 rounded border p-2 text-left text-sm {{ if .IsActive }}border-primary{{ else }}border-border{{ end }}">
<span class="h-4 w-4 rounded-full" style="background: {{ .Swatch }}"></span>
<span>{{ .Name }}</span>
</button>
</form>{{ end }}`))

// CustomizerPanel renders the theme customizer side panel.
func CustomizerPanel(data PanelData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return panelTemplate.Execute(w, data)
	})
}

var storefrontTemplate = template.Must(template.New("storefront").Parse(`<div class="flex min-h-screen gap-8 p-[var(--container-padding)]">
<main class="flex-1 space-y-[var(--section-spacing)]">
<h1 class="font-heading text-3xl font-bold">Storefront preview</h1>
<div class="grid grid-cols-3 gap-4">
{{ range .Products }}<article class="rounded-lg border border-border bg-card p-4 transition" style="transition-duration: var(--animation-duration); transition-timing-function: var(--animation-easing)">
<h2 class="font-semibold">{{ .Name }}</h2>
<p class="text-muted-foreground">{{ .Price }}</p>
<button type="button" class="mt-2 rounded-md bg-primary px-3 py-1 text-primary-foreground">Add to cart</button>
</article>{{ end }}
</div>
</main>
{{ .Panel }}
</div>`))

type Product struct {
	Name  string
	Price string
}

// Storefront renders a sample product grid next to the customizer panel.
func Storefront(products []Product, panel templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		html, err := templ.ToGoHTML(ctx, panel)
		if err != nil {
			return err
		}
		return storefrontTemplate.Execute(w, struct {
			Products []Product
			Panel    template.HTML
		}{Products: products, Panel: html})
	})
}
