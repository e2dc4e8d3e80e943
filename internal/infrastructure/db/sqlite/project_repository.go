package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/renewables/energy-dashboard/internal/core/domain"
)

const projectColumns = `id, name, owner, energy_type, capacity, location, status, year, latitude, longitude, created_at`

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("select projects: %w", err)
	}
	defer rows.Close()

	out := []domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id)
	p, err := scanProject(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	created := *p
	created.ID = uuid.NewString()
	if created.CreatedAt.IsZero() {
		created.CreatedAt = time.Now().UTC()
	}

	const q = `INSERT INTO projects (` + projectColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		created.ID, created.Name, created.Owner, string(created.EnergyType), created.Capacity,
		created.Location, string(created.Status), created.Year,
		nullFloat(created.Latitude), nullFloat(created.Longitude), created.CreatedAt.UnixNano(),
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	return &created, nil
}

func (r *ProjectRepository) Update(ctx context.Context, id string, patch domain.ProjectPatch) (*domain.Project, error) {
	var set setClause
	if patch.Name != nil {
		set.add("name", *patch.Name)
	}
	if patch.Owner != nil {
		set.add("owner", *patch.Owner)
	}
	if patch.EnergyType != nil {
		set.add("energy_type", string(*patch.EnergyType))
	}
	if patch.Capacity != nil {
		set.add("capacity", *patch.Capacity)
	}
	if patch.Location != nil {
		set.add("location", *patch.Location)
	}
	if patch.Status != nil {
		set.add("status", string(*patch.Status))
	}
	if patch.Year != nil {
		set.add("year", *patch.Year)
	}
	if patch.ClearLatitude {
		set.add("latitude", nil)
	} else if patch.Latitude != nil {
		set.add("latitude", *patch.Latitude)
	}
	if patch.ClearLongitude {
		set.add("longitude", nil)
	} else if patch.Longitude != nil {
		set.add("longitude", *patch.Longitude)
	}
	if set.empty() {
		return r.Get(ctx, id)
	}

	res, err := r.db.ExecContext(ctx, `UPDATE projects SET `+set.sql()+` WHERE id = ?`, append(set.args, id)...)
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, domain.ErrProjectNotFound
	}
	return r.Get(ctx, id)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func scanProject(row scannable) (domain.Project, error) {
	var (
		p          domain.Project
		energyType string
		status     string
		capacity   any
		lat, lng   sql.NullFloat64
		createdAt  int64
	)
	err := row.Scan(&p.ID, &p.Name, &p.Owner, &energyType, &capacity, &p.Location, &status, &p.Year, &lat, &lng, &createdAt)
	if err != nil {
		return domain.Project{}, err
	}

	p.Capacity, err = capacityValue(capacity)
	if err != nil {
		return domain.Project{}, fmt.Errorf("project %s: %w", p.ID, err)
	}
	p.EnergyType = domain.EnergyType(energyType)
	p.Status = domain.ProjectStatus(status)
	if lat.Valid {
		p.Latitude = &lat.Float64
	}
	if lng.Valid {
		p.Longitude = &lng.Float64
	}
	p.CreatedAt = time.Unix(0, createdAt).UTC()
	return p, nil
}

// capacityValue reads a column that SQLite may hand back as REAL, INTEGER
// or TEXT depending on how the row was written.
func capacityValue(v any) (float64, error) {
	switch c := v.(type) {
	case float64:
		return c, nil
	case int64:
		return float64(c), nil
	case string:
		return parseDecimal(c)
	case []byte:
		return parseDecimal(string(c))
	default:
		return 0, domain.ErrInvalidCapacity
	}
}

func parseDecimal(s string) (float64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, domain.ErrInvalidCapacity
	}
	return d.InexactFloat64(), nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
