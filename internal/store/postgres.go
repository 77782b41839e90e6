package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const metroColumns = `m.metro_id, m.name, m.state, m.cbsa_code, m.lat, m.lon, m.population,
	mc.median_rent_usd, mc.rpp_index, mc.eff_tax_rate, mc.utilities_monthly,
	qol.school_score, qol.crime_rate, qol.weather_score, qol.healthcare_score,
	qol.walkability_score, qol.air_quality_index, qol.commute_time_mins`

const metroFrom = `FROM metro m
	INNER JOIN metro_costs mc ON m.metro_id = mc.metro_id
	LEFT JOIN metro_quality_of_life qol ON m.metro_id = qol.metro_id`

func (s *PostgresStore) FetchMetros(ctx context.Context, filter MetroFilter) ([]*Metro, error) {
	query := `SELECT ` + metroColumns + ` ` + metroFrom + ` WHERE m.population >= $1`
	args := []interface{}{filter.PopulationMin}

	if filter.State != "" {
		query += " AND m.state = $2"
		args = append(args, filter.State)
	}

	query += " ORDER BY m.population DESC"

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMetros(rows)
}

func (s *PostgresStore) GetMetrosByIDs(ctx context.Context, ids []int64) ([]*Metro, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+metroColumns+` `+metroFrom+`
		WHERE m.metro_id = ANY($1)
		ORDER BY m.population DESC`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanMetros(rows)
}

func (s *PostgresStore) MetroCount(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM metro`).Scan(&count)
	return count, err
}

func (s *PostgresStore) HealthCheck(ctx context.Context) Health {
	var metros, withCosts int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM metro`).Scan(&metros); err != nil {
		return Health{Status: "unhealthy", Error: err.Error()}
	}
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM metro_costs`).Scan(&withCosts); err != nil {
		return Health{Status: "unhealthy", Error: err.Error()}
	}
	return Health{Status: "healthy", Metros: metros, MetrosWithCosts: withCosts}
}

func scanMetros(rows pgx.Rows) ([]*Metro, error) {
	var metros []*Metro
	for rows.Next() {
		m := &Metro{}
		q := &QualityOfLife{}
		err := rows.Scan(
			&m.ID, &m.Name, &m.State, &m.CBSACode, &m.Lat, &m.Lon, &m.Population,
			&m.MedianRent, &m.RPPIndex, &m.EffTaxRate, &m.UtilitiesMonthly,
			&q.SchoolScore, &q.CrimeRate, &q.WeatherScore, &q.HealthcareScore,
			&q.WalkabilityScore, &q.AirQualityIndex, &q.CommuteTimeMins,
		)
		if err != nil {
			return nil, err
		}
		// LEFT JOIN miss comes back as an all-NULL row: keep the record absent.
		if !q.Empty() {
			m.QualityOfLife = q
		}
		metros = append(metros, m)
	}
	return metros, rows.Err()
}
