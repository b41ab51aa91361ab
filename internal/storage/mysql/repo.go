package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"india_travel/internal/domain"
)

func valJSON(v []string) (string, error) {
	if v == nil {
		v = []string{}
	}
	b, err := json.Marshal(v)
	return string(b), err
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

func (r *Repo) UpsertDestination(ctx context.Context, position int, d domain.Destination) error {
	hl, err := valJSON(d.Highlights)
	if err != nil {
		return err
	}
	ac, err := valJSON(d.Activities)
	if err != nil {
		return err
	}
	tp, err := valJSON(d.Tips)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, upsertDestinationSQL,
		d.ID,
		position,
		d.Name,
		d.Tagline,
		d.Region,
		d.Coordinates.Lat,
		d.Coordinates.Lng,
		d.Description,
		d.BestTime,
		d.Duration,
		d.HowToReach,
		hl, ac, tp,
	)
	return err
}

// Load implements domain.CatalogSource.
func (r *Repo) Load(ctx context.Context) ([]domain.Destination, error) {
	rows, err := r.db.QueryContext(ctx, listDestinationsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Destination
	for rows.Next() {
		var d domain.Destination
		var hl, ac, tp []byte
		if err := rows.Scan(
			&d.ID,
			&d.Name,
			&d.Tagline,
			&d.Region,
			&d.Coordinates.Lat, &d.Coordinates.Lng,
			&d.Description,
			&d.BestTime,
			&d.Duration,
			&d.HowToReach,
			&hl, &ac, &tp,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(hl, &d.Highlights); err != nil {
			return nil, fmt.Errorf("destination %s highlights: %w", d.ID, err)
		}
		if err := json.Unmarshal(ac, &d.Activities); err != nil {
			return nil, fmt.Errorf("destination %s activities: %w", d.ID, err)
		}
		if err := json.Unmarshal(tp, &d.Tips); err != nil {
			return nil, fmt.Errorf("destination %s tips: %w", d.ID, err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
