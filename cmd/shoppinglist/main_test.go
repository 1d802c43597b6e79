package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/nikolayk812/shoppinglist/internal/config"
	"github.com/nikolayk812/shoppinglist/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name      string
		plan      config.Plan
		wantError string
	}{
		{
			name: "plan without database: ok",
			plan: config.Plan{
				Ingredients: []string{"Flour", "Egg"},
				Recipes: []config.RecipeSpec{{
					Name:        "Pasta",
					Ingredients: []config.EntrySpec{{Ingredient: "Flour", Amount: "100"}, {Ingredient: "Egg", Amount: "1"}},
				}},
				Meals: []config.MealSpec{{Recipe: "Pasta", Multiplier: "4"}},
			},
		},
		{
			name:      "unknown recipe: error",
			plan:      config.Plan{Meals: []config.MealSpec{{Recipe: "Pasta", Multiplier: "1"}}},
			wantError: `planner.Build: recipe "Pasta" is not declared`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Plan = tt.plan

			err := run(t.Context(), cfg, logger.NewNop())
			if tt.wantError != "" {
				require.EqualError(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	for _, key := range []string{"LOG_MODE", "SHOPPINGLIST_DATABASE_URL", "SHOPPINGLIST_OWNER_ID", "SHOPPINGLIST_LANGUAGE"} {
		t.Setenv(key, "")
	}

	plan := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(plan, []byte("owner_id: bob\nplan:\n  ingredients: [Salt]\n"), 0o644))

	tests := []struct {
		name      string
		args      []string
		wantOwner string
		wantError string
	}{
		{
			name:      "no flags, no plan file nearby: defaults",
			args:      nil,
			wantOwner: config.Default().OwnerID,
		},
		{
			name:      "explicit plan file: ok",
			args:      []string{"-config", plan},
			wantOwner: "bob",
		},
		{
			name:      "missing plan file: error",
			args:      []string{"-config", filepath.Join(t.TempDir(), "absent.yaml")},
			wantError: "os.ReadFile",
		},
		{
			name:      "unknown flag: error",
			args:      []string{"-plan", plan},
			wantError: "fs.Parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfig(tt.args)
			if tt.wantError != "" {
				require.ErrorContains(t, err, tt.wantError)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantOwner, cfg.OwnerID)
		})
	}
}
