package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"recipehub/database"
	"recipehub/internal/cache"
	"recipehub/internal/config"
)

// Loads an ingredient reference CSV (name,measurement_unit per line) into
// the ingredients table. Pairs already present are skipped, so the loader
// is safe to re-run on an updated file.
func main() {
	file := flag.String("file", "data/ingredients.csv", "path to the ingredients CSV")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("could not load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	pool, err := database.ConnectPool(ctx, cfg)
	if err != nil {
		slog.Error("could not connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	f, err := os.Open(*file)
	if err != nil {
		slog.Error("could not open csv", "file", *file, "error", err)
		os.Exit(1)
	}
	defer f.Close()

	existing, err := existingPairs(ctx, pool)
	if err != nil {
		slog.Error("could not read existing ingredients", "error", err)
		os.Exit(1)
	}

	rows, skipped, err := readRows(f, existing)
	if err != nil {
		slog.Error("could not parse csv", "file", *file, "error", err)
		os.Exit(1)
	}

	if len(rows) == 0 {
		slog.Info("nothing to load", "skipped", skipped)
		return
	}

	copied, err := pool.CopyFrom(ctx,
		pgx.Identifier{"ingredients"},
		[]string{"name", "measurement_unit"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		slog.Error("bulk load failed", "error", err)
		os.Exit(1)
	}

	slog.Info("ingredients loaded", "inserted", copied, "skipped", skipped)

	// The API caches ingredient lookups in redis. Drop those entries so the
	// new rows show up right away instead of waiting out the TTL.
	refCache, err := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.CacheTTL)
	if err != nil {
		slog.Warn("redis unavailable, cached ingredient lists expire by TTL", "error", err)
		return
	}
	defer refCache.Close()

	if err := refCache.InvalidatePrefix(ctx, "ingredients:"); err != nil {
		slog.Warn("could not invalidate ingredient cache", "error", err)
	}
}

type pairSet map[string]struct{}

func pairKey(name, unit string) string {
	// NUL never appears in ingredient data, making the key unambiguous
	return name + "\x00" + unit
}

func existingPairs(ctx context.Context, pool *pgxpool.Pool) (pairSet, error) {
	rows, err := pool.Query(ctx, "SELECT name, measurement_unit FROM ingredients")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	set := pairSet{}
	for rows.Next() {
		var name, unit string
		if err := rows.Scan(&name, &unit); err != nil {
			return nil, err
		}
		set[pairKey(name, unit)] = struct{}{}
	}
	return set, rows.Err()
}

// readRows parses the CSV and drops pairs that are already present or
// duplicated inside the file itself.
func readRows(r io.Reader, existing pairSet) ([][]any, int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	var rows [][]any
	skipped := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		name, unit := record[0], record[1]
		if name == "" || unit == "" {
			skipped++
			continue
		}

		key := pairKey(name, unit)
		if _, ok := existing[key]; ok {
			skipped++
			continue
		}
		existing[key] = struct{}{}

		rows = append(rows, []any{name, unit})
	}
	return rows, skipped, nil
}
