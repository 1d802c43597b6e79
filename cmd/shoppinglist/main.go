package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shoppinglist/internal/config"
	"github.com/nikolayk812/shoppinglist/internal/domain"
	"github.com/nikolayk812/shoppinglist/internal/logger"
	"github.com/nikolayk812/shoppinglist/internal/planner"
	"github.com/nikolayk812/shoppinglist/internal/repository"
	"github.com/nikolayk812/shoppinglist/internal/summary"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("shoppinglist failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
}

// loadConfig reads the plan named by -config. Without the flag only defaults
// and environment variables apply.
func loadConfig(args []string) (config.Config, error) {
	fs := flag.NewFlagSet("shoppinglist", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to the YAML plan, empty to use defaults and environment only")
	if err := fs.Parse(args); err != nil {
		return config.Config{}, fmt.Errorf("fs.Parse: %w", err)
	}

	return config.Load(*configPath)
}

func run(ctx context.Context, cfg config.Config, log *logger.Logger) error {
	log = log.With("owner_id", cfg.OwnerID)

	list, err := planner.Build(cfg.Plan)
	if err != nil {
		return fmt.Errorf("planner.Build: %w", err)
	}

	if err := list.CheckReferences(); err != nil {
		return fmt.Errorf("list.CheckReferences: %w", err)
	}

	counts := list.Len()
	log.Info("shopping list built",
		"ingredients", counts.Ingredients,
		"recipes", counts.Recipes,
		"items", counts.Items)

	tag, err := cfg.LanguageTag()
	if err != nil {
		return err
	}

	lines, err := summary.Totals(list, tag)
	if err != nil {
		return fmt.Errorf("summary.Totals: %w", err)
	}
	for _, line := range lines {
		log.Info("to buy",
			"ingredient", line.Name,
			"amount", line.Amount.String(),
			"recipes", len(line.Recipes),
			"manual", line.Manual)
	}

	if cfg.DatabaseURL != "" {
		if err := save(ctx, cfg, log, list); err != nil {
			return err
		}
	} else {
		log.Debug("database url not set, skipping save")
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("enc.Encode: %w", err)
	}

	return nil
}

func save(ctx context.Context, cfg config.Config, log *logger.Logger, list *domain.ShoppingList) error {
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	repo, err := repository.NewShoppingList(pool, log)
	if err != nil {
		return fmt.Errorf("repository.NewShoppingList: %w", err)
	}

	if err := repo.Save(ctx, cfg.OwnerID, list); err != nil {
		return fmt.Errorf("repo.Save: %w", err)
	}
	log.Info("shopping list saved")

	return nil
}
