package customizer

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/codr1/storefront/internal/api/apiutil"
	"github.com/codr1/storefront/internal/models"
)

func decodeSetThemeRequest(r *http.Request) (setThemeRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req setThemeRequest
		return req, apiutil.DecodeJSON(r, &req)
	}

	if err := r.ParseForm(); err != nil {
		return setThemeRequest{}, err
	}
	return setThemeRequest{
		ThemeID: apiutil.FirstNonEmpty(r.FormValue("themeId"), r.FormValue("theme_id")),
	}, nil
}

func decodeSetModeRequest(r *http.Request) (setModeRequest, error) {
	if apiutil.IsJSONRequest(r) {
		var req setModeRequest
		return req, apiutil.DecodeJSON(r, &req)
	}

	if err := r.ParseForm(); err != nil {
		return setModeRequest{}, err
	}
	return setModeRequest{Mode: r.FormValue("mode")}, nil
}

// decodeCustomizationsPatch reads a JSON patch, where null clears a field, or
// form fields, where an empty value clears it. Absent fields are kept.
func decodeCustomizationsPatch(r *http.Request) (models.CustomizationsPatch, error) {
	var patch models.CustomizationsPatch
	if apiutil.IsJSONRequest(r) {
		return patch, apiutil.DecodeJSON(r, &patch)
	}

	if err := r.ParseForm(); err != nil {
		return patch, err
	}
	form := r.PostForm

	if values, ok := form["primaryColor"]; ok {
		patch.PrimaryColor = stringPatch(values)
	}
	if values, ok := form["fontFamily"]; ok {
		patch.FontFamily = stringPatch(values)
	}
	if values, ok := form["borderRadius"]; ok {
		if raw := lastValue(values); raw == "" {
			patch.BorderRadius = models.Clear[models.RadiusStyle]()
		} else {
			patch.BorderRadius = models.Update(models.RadiusStyle(raw))
		}
	}
	if values, ok := form["spacing"]; ok {
		if raw := lastValue(values); raw == "" {
			patch.Spacing = models.Clear[float64]()
		} else {
			spacing, err := apiutil.ParsePositiveFloatField(raw, "spacing")
			if err != nil {
				return patch, err
			}
			patch.Spacing = models.Update(spacing)
		}
	}
	if values, ok := form["animations"]; ok {
		switch raw := strings.ToLower(lastValue(values)); raw {
		case "":
			patch.Animations = models.Clear[bool]()
		case "true", "on", "1":
			patch.Animations = models.Update(true)
		case "false", "off", "0":
			patch.Animations = models.Update(false)
		default:
			return patch, fmt.Errorf("animations must be true or false")
		}
	}
	return patch, nil
}

func stringPatch(values []string) models.Patch[string] {
	if raw := lastValue(values); raw != "" {
		return models.Update(raw)
	}
	return models.Clear[string]()
}

func lastValue(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[len(values)-1])
}
