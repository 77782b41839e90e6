// seed_metros.go — standalone script to load metros from a CSV into Postgres.
//
// Usage:
//
//	go run scripts/seed_metros.go -csv /path/to/metros.csv -db postgres://localhost/livebetter
//
// Expected CSV columns: cbsa_code, name, state, lat, lon, population.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

type metroRow struct {
	CBSACode   string
	Name       string
	State      string
	Lat        float64
	Lon        float64
	Population int64
}

func main() {
	csvPath := flag.String("csv", "metros.csv", "path to metros CSV")
	dbURL := flag.String("db", os.Getenv("LIVEBETTER_DATABASE_URL"), "database URL")
	dryRun := flag.Bool("dry-run", false, "print rows without inserting")
	flag.Parse()

	rows, err := loadCSV(*csvPath)
	if err != nil {
		log.Fatalf("load csv: %v", err)
	}
	log.Printf("loaded %d metros from %s", len(rows), *csvPath)

	if *dryRun {
		for _, m := range rows {
			fmt.Printf("%s %s, %s (%d)\n", m.CBSACode, m.Name, m.State, m.Population)
		}
		return
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, *dbURL)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	inserted := 0
	for _, m := range rows {
		_, err := pool.Exec(ctx, `
			INSERT INTO metro (cbsa_code, name, state, lat, lon, population)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (cbsa_code) DO UPDATE
			SET name = EXCLUDED.name, state = EXCLUDED.state,
				lat = EXCLUDED.lat, lon = EXCLUDED.lon,
				population = EXCLUDED.population`,
			m.CBSACode, m.Name, m.State, m.Lat, m.Lon, m.Population)
		if err != nil {
			log.Printf("skip %s (%s): %v", m.Name, m.CBSACode, err)
			continue
		}
		inserted++
	}
	log.Printf("seeded %d/%d metros", inserted, len(rows))
}

func loadCSV(path string) ([]metroRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"cbsa_code", "name", "state", "lat", "lon", "population"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("missing required column %q", required)
		}
	}

	var rows []metroRow
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		lat, err := strconv.ParseFloat(rec[col["lat"]], 64)
		if err != nil {
			return nil, fmt.Errorf("bad lat %q: %w", rec[col["lat"]], err)
		}
		lon, err := strconv.ParseFloat(rec[col["lon"]], 64)
		if err != nil {
			return nil, fmt.Errorf("bad lon %q: %w", rec[col["lon"]], err)
		}
		pop, _ := strconv.ParseInt(rec[col["population"]], 10, 64)
		rows = append(rows, metroRow{
			CBSACode:   rec[col["cbsa_code"]],
			Name:       rec[col["name"]],
			State:      rec[col["state"]],
			Lat:        lat,
			Lon:        lon,
			Population: pop,
		})
	}
	return rows, nil
}
