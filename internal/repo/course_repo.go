package repo

import (
	"context"
	"embed"
	"errors"
	"fmt"

	dom "Catalog/internal/domain"
	"Catalog/internal/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// ErrNotFound is returned when no course has the requested id.
var ErrNotFound = errors.New("course not found")

//go:embed migrations/*.sql
var migrations embed.FS

// CourseRepo is the persistence gateway for the courses table.
type CourseRepo interface {
	Insert(ctx context.Context, c dom.Course) (dom.Course, error)
	FindAll(ctx context.Context) ([]dom.Course, error)
	FindByID(ctx context.Context, id int64) (dom.Course, error)
	// Update overwrites every mutable field and stamps updated_at.
	Update(ctx context.Context, id int64, c dom.Course) (dom.Course, error)
	// Deactivate sets active = false; it reports false when no row matched.
	Deactivate(ctx context.Context, id int64) (bool, error)
}

// PGCourseRepo implements CourseRepo with Postgres and owns the pool.
type PGCourseRepo struct {
	db  *pgxpool.Pool
	log *logger.Logger
}

func NewPGCourseRepo(db *pgxpool.Pool, log *logger.Logger) *PGCourseRepo {
	return &PGCourseRepo{db: db, log: log}
}

const courseColumns = `id, name, COALESCE(description, ''), price, duration_hours, category, active, created_at, updated_at`

// EnsureSchema creates the courses table if it does not exist yet.
func (r *PGCourseRepo) EnsureSchema(ctx context.Context) error {
	db := stdlib.OpenDBFromPool(r.db)
	defer db.Close()

	goose.SetBaseFS(migrations)
	goose.SetLogger(r.log.With("component", "goose"))
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Close releases the pool. Safe to call more than once.
func (r *PGCourseRepo) Close() {
	if r.db == nil {
		return
	}
	r.db.Close()
	r.db = nil
	r.log.Info("storage connection closed")
}

func (r *PGCourseRepo) Insert(ctx context.Context, c dom.Course) (dom.Course, error) {
	query := `
		INSERT INTO courses (name, description, price, duration_hours, category, active)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
		RETURNING ` + courseColumns
	out, err := scanCourse(r.db.QueryRow(ctx, query,
		c.Name, c.Description, c.Price, c.DurationHours, string(c.Category), c.Active,
	))
	if err != nil {
		return dom.Course{}, fmt.Errorf("insert course: %w", err)
	}
	return out, nil
}

func (r *PGCourseRepo) FindAll(ctx context.Context) ([]dom.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses ORDER BY created_at DESC, id DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	list := make([]dom.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return list, nil
}

func (r *PGCourseRepo) FindByID(ctx context.Context, id int64) (dom.Course, error) {
	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	c, err := scanCourse(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Course{}, ErrNotFound
		}
		return dom.Course{}, fmt.Errorf("get course %d: %w", id, err)
	}
	return c, nil
}

func (r *PGCourseRepo) Update(ctx context.Context, id int64, c dom.Course) (dom.Course, error) {
	query := `
		UPDATE courses
		SET name = $2, description = NULLIF($3, ''), price = $4, duration_hours = $5,
		    category = $6, active = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + courseColumns
	out, err := scanCourse(r.db.QueryRow(ctx, query,
		id, c.Name, c.Description, c.Price, c.DurationHours, string(c.Category), c.Active,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.Course{}, ErrNotFound
		}
		return dom.Course{}, fmt.Errorf("update course %d: %w", id, err)
	}
	return out, nil
}

func (r *PGCourseRepo) Deactivate(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `UPDATE courses SET active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("deactivate course %d: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanCourse(row pgx.Row) (dom.Course, error) {
	var (
		c        dom.Course
		category string
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Price, &c.DurationHours,
		&category, &c.Active, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return dom.Course{}, err
	}
	c.Category = dom.Category(category)
	return c, nil
}
