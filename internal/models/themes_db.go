package models

import (
	"context"
	"encoding/json"
	"fmt"

	dbgen "github.com/codr1/storefront/internal/db/generated"
)

type ThemeQueries interface {
	GetTheme(ctx context.Context, id string) (dbgen.Theme, error)
	ListThemes(ctx context.Context) ([]dbgen.Theme, error)
}

// ThemeFromDB decodes the stored config. Row timestamps win over the encoded ones.
func ThemeFromDB(row dbgen.Theme) (ThemeConfig, error) {
	var theme ThemeConfig
	if err := json.Unmarshal([]byte(row.Config), &theme); err != nil {
		return ThemeConfig{}, fmt.Errorf("decode theme %q: %w", row.ID, err)
	}
	theme.ID = row.ID
	theme.CreatedAt = row.CreatedAt
	theme.UpdatedAt = row.UpdatedAt
	return theme, nil
}

func ThemeToDBParams(theme ThemeConfig) (dbgen.UpsertThemeParams, error) {
	raw, err := json.Marshal(theme)
	if err != nil {
		return dbgen.UpsertThemeParams{}, fmt.Errorf("encode theme %q: %w", theme.ID, err)
	}
	return dbgen.UpsertThemeParams{
		ID:        theme.ID,
		Name:      theme.Name,
		Category:  string(theme.Category),
		Config:    string(raw),
		CreatedAt: theme.CreatedAt,
		UpdatedAt: theme.UpdatedAt,
	}, nil
}

func GetStoredThemes(ctx context.Context, queries ThemeQueries) ([]ThemeConfig, error) {
	rows, err := queries.ListThemes(ctx)
	if err != nil {
		return nil, err
	}
	themes := make([]ThemeConfig, 0, len(rows))
	for _, row := range rows {
		theme, err := ThemeFromDB(row)
		if err != nil {
			return nil, err
		}
		themes = append(themes, theme)
	}
	return themes, nil
}
