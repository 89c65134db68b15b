// compstore persists per-grade comp statistics snapshots so price
// history survives across scrapes. one snapshot row per product, grade
// and day, pushing twice on the same day replaces the earlier rows.
package compstore

import (
	"context"
	"database/sql"
	"time"

	"cardcomps-backend/lib/platforms/pricecharting"

	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

type PushRequest struct {
	Time    time.Time
	Product string
	Stats   map[string]pricecharting.GradeStats
}

func (s Store) Push(ctx context.Context, req PushRequest) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	startOfToday := time.Date(req.Time.Year(), req.Time.Month(), req.Time.Day(), 0, 0, 0, 0, req.Time.Location()).Unix()
	startOfTomorrow := time.Date(req.Time.Year(), req.Time.Month(), req.Time.Day()+1, 0, 0, 0, 0, req.Time.Location()).Unix()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO product (url) VALUES (?) ON CONFLICT (url) DO NOTHING`,
		req.Product,
	)
	if err != nil {
		return err
	}
	var productId int64
	err = tx.QueryRowContext(
		ctx,
		`SELECT id FROM product WHERE url = ?`,
		req.Product,
	).Scan(&productId)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(
		ctx,
		`DELETE FROM comp_snapshot WHERE product_id = ? AND time >= ? AND time < ?`,
		productId, startOfToday, startOfTomorrow,
	)
	if err != nil {
		return err
	}

	for grade, stats := range req.Stats {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO comp_snapshot
				(product_id, grade, time, count, median, mean, min, max, latest_sale)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			productId, grade, req.Time.Unix(),
			stats.Count, stats.Median, stats.Mean,
			stats.Min, stats.Max, stats.LatestSale,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

type Snapshot struct {
	Time  time.Time
	Grade string
	Stats pricecharting.GradeStats
}

// Pull returns every stored snapshot for a product, oldest first.
func (s Store) Pull(ctx context.Context, product string) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT cs.grade, cs.time, cs.count, cs.median, cs.mean, cs.min, cs.max, cs.latest_sale
			FROM comp_snapshot cs
			JOIN product p ON p.id = cs.product_id
			WHERE p.url = ?
			ORDER BY cs.time ASC, cs.grade ASC`,
		product,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var snap Snapshot
		var unix int64
		err = rows.Scan(
			&snap.Grade, &unix,
			&snap.Stats.Count, &snap.Stats.Median, &snap.Stats.Mean,
			&snap.Stats.Min, &snap.Stats.Max, &snap.Stats.LatestSale,
		)
		if err != nil {
			return nil, err
		}
		snap.Time = time.Unix(unix, 0)
		snapshots = append(snapshots, snap)
	}

	return snapshots, rows.Err()
}
