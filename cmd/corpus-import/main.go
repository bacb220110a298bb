// Command corpus-import loads a realtime-database JSON export of the meals and
// workouts collections into the sqlite or postgres corpus.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sunfrisky19/model-meals-workouts/config"
	"github.com/sunfrisky19/model-meals-workouts/logging"
	"github.com/sunfrisky19/model-meals-workouts/services"
)

func main() {
	in := flag.String("in", "", "path to the JSON export ({\"meals\":{...},\"workouts\":{...}})")
	driver := flag.String("driver", "", "target store, sqlite or postgres (default: CORPUS_DRIVER)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load config")
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: "console"})

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}
	if *driver != "" {
		cfg.Corpus.Driver = *driver
	}

	if err := run(context.Background(), cfg, *in); err != nil {
		logging.Fatal().Err(err).Msg("import failed")
	}
}

func run(ctx context.Context, cfg *config.Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	meals, workouts, err := services.DecodeCorpusExport(data)
	if err != nil {
		return err
	}

	target, closeFn, err := openImporter(cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	if err := target.ImportMeals(ctx, meals); err != nil {
		return fmt.Errorf("import meals: %w", err)
	}
	if err := target.ImportWorkouts(ctx, workouts); err != nil {
		return fmt.Errorf("import workouts: %w", err)
	}
	logging.Info().
		Str("driver", cfg.Corpus.Driver).
		Int("meals", len(meals)).
		Int("workouts", len(workouts)).
		Msg("corpus imported")
	return nil
}

func openImporter(cfg *config.Config) (services.CorpusImporter, func() error, error) {
	switch cfg.Corpus.Driver {
	case "sqlite":
		c, err := services.NewSQLiteCorpus(cfg.Corpus.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return c, c.Close, nil
	case "postgres":
		db, err := config.InitDB(cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		if err := services.MigrateCorpus(db); err != nil {
			return nil, nil, fmt.Errorf("migrate corpus tables: %w", err)
		}
		c := services.NewGormCorpus(db)
		return c, c.Close, nil
	default:
		return nil, nil, fmt.Errorf("corpus driver %q cannot be imported into", cfg.Corpus.Driver)
	}
}
