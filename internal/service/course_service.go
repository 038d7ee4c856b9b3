package service

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"Catalog/internal/cache"
	dom "Catalog/internal/domain"
	"Catalog/internal/logger"
	"Catalog/internal/repo"
	"Catalog/internal/utils"

	"golang.org/x/sync/singleflight"
)

var (
	ErrNotFound = errors.New("course not found")
	// ErrStorage wraps every repository failure. Its detail is for logs only.
	ErrStorage = errors.New("storage failure")
)

// ValidationError carries every field problem found in a request.
type ValidationError struct {
	Fields []dom.FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid course data: %d field error(s)", len(e.Fields))
}

// Result is the outcome of a workflow operation. Message is meant for the end user.
type Result struct {
	Success bool
	Message string
	Course  *dom.Course
	Courses []dom.Course
}

const listFlightKey = "list"

type CourseService struct {
	repo  repo.CourseRepo
	cache *cache.CourseCache
	log   *logger.Logger
	sf    singleflight.Group
	// writes counts cache invalidations; a listing read across a write is not cached.
	writes atomic.Uint64
}

// NewCourseService creates a CourseService. If c is nil, caching is disabled.
func NewCourseService(r repo.CourseRepo, c *cache.CourseCache, log *logger.Logger) *CourseService {
	return &CourseService{repo: r, cache: c, log: log}
}

// Register validates, sanitizes and stores a new course.
func (s *CourseService) Register(ctx context.Context, input map[string]any) (Result, error) {
	draft := dom.NewDraft(input)
	if errs := draft.Validate(); len(errs) > 0 {
		return Result{}, &ValidationError{Fields: errs}
	}
	c, err := coerce(draft)
	if err != nil {
		return Result{}, err
	}

	saved, err := s.repo.Insert(ctx, c)
	if err != nil {
		return Result{}, s.storageFault("register course", err)
	}
	s.invalidateCache(ctx)
	s.log.Info("course registered", "id", saved.ID, "name", saved.Name)
	return Result{
		Success: true,
		Course:  &saved,
		Message: fmt.Sprintf("Course %q registered successfully!", saved.Name),
	}, nil
}

// List returns every course, newest first.
func (s *CourseService) List(ctx context.Context) (Result, error) {
	list, err := s.loadList(ctx)
	if err != nil {
		return Result{}, s.storageFault("list courses", err)
	}
	return Result{
		Success: true,
		Courses: list,
		Message: fmt.Sprintf("%d course(s) found", len(list)),
	}, nil
}

func (s *CourseService) loadList(ctx context.Context) ([]dom.Course, error) {
	if s.cache == nil {
		return s.repo.FindAll(ctx)
	}
	v, err, _ := s.sf.Do(listFlightKey, func() (interface{}, error) {
		// Joined callers share this fetch, so it must outlive the first caller.
		ctx := context.WithoutCancel(ctx)
		list, err := s.cache.GetList(ctx)
		if err != nil {
			s.log.Warn("course cache read failed", "error", err)
		} else if list != nil {
			return list, nil
		}

		gen := s.writes.Load()
		list, err = s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		s.fillCache(ctx, gen, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]dom.Course), nil
}

// fillCache stores list unless a write happened since gen was read. A write
// that lands while the entry is being stored drops it again.
func (s *CourseService) fillCache(ctx context.Context, gen uint64, list []dom.Course) {
	if s.writes.Load() != gen {
		return
	}
	if err := s.cache.SetList(ctx, list); err != nil {
		s.log.Warn("course cache write failed", "error", err)
		return
	}
	if s.writes.Load() != gen {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warn("course cache invalidation failed", "error", err)
		}
	}
}

// GetByID fetches one course.
func (s *CourseService) GetByID(ctx context.Context, id int64) (Result, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return Result{}, ErrNotFound
		}
		return Result{}, s.storageFault("get course", err, "id", id)
	}
	return Result{Success: true, Course: &c}, nil
}

// Update replaces the mutable fields of an existing course.
// The existence check and the write are separate statements; a concurrent
// writer between the two wins or loses without notice.
func (s *CourseService) Update(ctx context.Context, id int64, input map[string]any) (Result, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return Result{}, ErrNotFound
		}
		return Result{}, s.storageFault("update course", err, "id", id)
	}

	draft := dom.NewDraft(input)
	if errs := draft.Validate(); len(errs) > 0 {
		return Result{}, &ValidationError{Fields: errs}
	}
	c, err := coerce(draft)
	if err != nil {
		return Result{}, err
	}

	updated, err := s.repo.Update(ctx, id, c)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return Result{}, ErrNotFound
		}
		return Result{}, s.storageFault("update course", err, "id", id)
	}
	s.invalidateCache(ctx)
	s.log.Info("course updated", "id", id)
	return Result{
		Success: true,
		Course:  &updated,
		Message: "Course updated successfully!",
	}, nil
}

// Deactivate soft-deletes a course. An unknown id is an unsuccessful result, not an error.
func (s *CourseService) Deactivate(ctx context.Context, id int64) (Result, error) {
	ok, err := s.repo.Deactivate(ctx, id)
	if err != nil {
		return Result{}, s.storageFault("deactivate course", err, "id", id)
	}
	if !ok {
		return Result{Success: false, Message: "Course could not be deactivated"}, nil
	}
	s.invalidateCache(ctx)
	s.log.Info("course deactivated", "id", id)
	return Result{Success: true, Message: "Course deactivated successfully!"}, nil
}

// Categories returns the fixed category list.
func (s *CourseService) Categories() []dom.Category {
	return dom.Categories()
}

// coerce converts a validated draft into the stored form.
func coerce(d dom.Draft) (dom.Course, error) {
	c, err := d.Sanitized().Course()
	if err != nil {
		var fe dom.FieldError
		if errors.As(err, &fe) {
			return dom.Course{}, &ValidationError{Fields: []dom.FieldError{fe}}
		}
		return dom.Course{}, err
	}
	return c, nil
}

func (s *CourseService) storageFault(op string, err error, keysAndValues ...interface{}) error {
	fields := append([]interface{}{"op", op, "error", err}, keysAndValues...)
	if constraint, ok := utils.IsPGConstraintViolation(err); ok {
		fields = append(fields, "constraint", constraint)
	}
	s.log.Error("storage fault", fields...)
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}

func (s *CourseService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	s.writes.Add(1)
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("course cache invalidation failed", "error", err)
	}
}
