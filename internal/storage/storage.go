// Package storage defines the Storage interface — a contract that any
// database backend must satisfy to work with this application.
//
// WHY AN INTERFACE?
// ─────────────────
// Handlers (HTTP layer) should not know or care which database they are
// talking to. By depending only on this interface:
//
//   - Switching databases = implement the interface for the new DB,
//     change one line in main.go. Zero handler changes.
//
//   - Writing tests = pass a fake/mock that satisfies the interface.
//     No real database needed for unit tests.
//
// This is the Dependency Inversion Principle in practice.
//
// Note what is NOT here: validation. Storage only ever sees courses
// that already passed the rule registry — persistence and rule
// evaluation stay separate concerns.
package storage

import "github.com/GeoSauer/courses-api/internal/types"

// Storage is the database contract.
// Any concrete type that implements ALL of these methods automatically
// satisfies this interface — Go does this implicitly (no "implements"
// keyword required).
type Storage interface {
	// CreateCourse inserts a new course record and returns the auto-
	// generated primary-key ID. Returns an error on failure.
	CreateCourse(title string, price float64) (int64, error)

	// GetCourseByID fetches a single course by its primary key.
	// Returns an error (with a descriptive message) if not found.
	GetCourseByID(id int64) (types.Course, error)

	// GetCourses returns every course in the database.
	// Returns an empty slice (not nil) if there are no courses.
	GetCourses() ([]types.Course, error)

	// UpdateCourseByID replaces the fields of an existing course.
	// Returns the updated course record or an error.
	UpdateCourseByID(id int64, course types.Course) (types.Course, error)

	// DeleteCourseByID removes a course record permanently.
	DeleteCourseByID(id int64) error
}
