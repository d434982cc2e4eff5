package course

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hongjunna/toporider/internal/db"
	"github.com/hongjunna/toporider/internal/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input Course) (Course, error) {
	if input.Title == "" || len(input.Polylines) == 0 {
		return Course{}, errors.New("title and polylines required")
	}
	if input.Markers == nil {
		input.Markers = []Marker{}
	}

	markers, polylines, err := encodePath(input.Markers, input.Polylines)
	if err != nil {
		return Course{}, err
	}
	input.ID = uuid.NewString()
	input.TotalDistanceM, input.TotalAscentM = totals(input.Polylines)

	row := s.db.QueryRow(ctx, `
		INSERT INTO courses (id, title, description, markers_json, polylines_json, route, total_distance_m, total_ascent_m, rider_id)
		VALUES ($1,$2,$3,$4,$5, ST_GeogFromText($6), $7,$8,$9)
		RETURNING created_at
	`, input.ID, input.Title, input.Description, markers, polylines, routeWKT(input.Polylines), input.TotalDistanceM, input.TotalAscentM, input.RiderID)
	if err := row.Scan(&input.CreatedAt); err != nil {
		return Course{}, fmt.Errorf("insert course: %w", err)
	}
	return input, nil
}

func (s *Service) List(ctx context.Context) ([]Course, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, title, description, markers_json, polylines_json, total_distance_m, total_ascent_m, rider_id, created_at
		FROM courses WHERE is_deleted = false
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := []Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}

func (s *Service) Get(ctx context.Context, id string) (Course, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, title, description, markers_json, polylines_json, total_distance_m, total_ascent_m, rider_id, created_at
		FROM courses WHERE id=$1 AND is_deleted = false
	`, id)
	c, err := scanCourse(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Course{}, ErrNotFound
	}
	return c, err
}

func (s *Service) Update(ctx context.Context, id string, patch Course) (Course, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return Course{}, err
	}
	if patch.Title != "" {
		c.Title = patch.Title
	}
	if patch.Description != "" {
		c.Description = patch.Description
	}
	if patch.Markers != nil {
		c.Markers = patch.Markers
	}
	if patch.Polylines != nil {
		c.Polylines = patch.Polylines
		c.TotalDistanceM, c.TotalAscentM = totals(c.Polylines)
	}

	markers, polylines, err := encodePath(c.Markers, c.Polylines)
	if err != nil {
		return Course{}, err
	}
	tag, err := s.db.Exec(ctx, `
		UPDATE courses
		SET title=$2, description=$3, markers_json=$4, polylines_json=$5, route=ST_GeogFromText($6), total_distance_m=$7, total_ascent_m=$8
		WHERE id=$1 AND is_deleted = false
	`, c.ID, c.Title, c.Description, markers, polylines, routeWKT(c.Polylines), c.TotalDistanceM, c.TotalAscentM)
	if err != nil {
		return Course{}, fmt.Errorf("update course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return Course{}, ErrNotFound
	}
	return c, nil
}

// Delete marks the course deleted; the row is kept.
func (s *Service) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `UPDATE courses SET is_deleted = true WHERE id=$1 AND is_deleted = false`, id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Profile builds the elevation profile of a stored course.
func (s *Service) Profile(ctx context.Context, id string) (*profile.Profile, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return profile.Build(c.Polylines), nil
}

func scanCourse(row pgx.Row) (Course, error) {
	var (
		c                  Course
		markers, polylines []byte
	)
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &markers, &polylines, &c.TotalDistanceM, &c.TotalAscentM, &c.RiderID, &c.CreatedAt); err != nil {
		return Course{}, err
	}
	if err := json.Unmarshal(markers, &c.Markers); err != nil {
		return Course{}, fmt.Errorf("decode markers of %s: %w", c.ID, err)
	}
	if err := json.Unmarshal(polylines, &c.Polylines); err != nil {
		return Course{}, fmt.Errorf("decode polylines of %s: %w", c.ID, err)
	}
	return c, nil
}

func encodePath(markers []Marker, polylines []profile.PathSegment) ([]byte, []byte, error) {
	m, err := json.Marshal(markers)
	if err != nil {
		return nil, nil, err
	}
	p, err := json.Marshal(polylines)
	if err != nil {
		return nil, nil, err
	}
	return m, p, nil
}
