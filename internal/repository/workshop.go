package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shenikar/roadside_dispatch/internal/models"
	"github.com/shenikar/roadside_dispatch/internal/service"
)

type WorkshopDirectory struct {
	db *pgxpool.Pool
}

func NewWorkshopDirectory(db *pgxpool.Pool) service.WorkshopDirectory {
	return &WorkshopDirectory{db: db}
}

// FindEmergencyCapableWorkshops возвращает мастерские города, ближайшие к точке вызова
func (d *WorkshopDirectory) FindEmergencyCapableWorkshops(ctx context.Context, city string, location models.Location, limit int) ([]string, error) {
	query := `
		SELECT id
		FROM workshops
		WHERE
			emergency_capable
			AND archived_at IS NULL
			AND lower(city) = lower($1)
		ORDER BY
			ST_Distance(location, ST_SetSRID(ST_MakePoint($2, $3), 4326)::geography),
			id
		LIMIT $4;
	`
	rows, err := d.db.Query(ctx, query, city, location.Lng, location.Lat, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to find emergency-capable workshops: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, limit)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan workshop row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error workshop iteration: %w", err)
	}
	return ids, nil
}
