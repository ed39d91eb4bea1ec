// Package course contains all HTTP handlers related to the Course resource.
//
// HANDLER PATTERN USED HERE — THE CLOSURE / FACTORY PATTERN:
// ────────────────────────────────────────────────────────────
// Go's router expects handler functions with the signature:
//
//	func(http.ResponseWriter, *http.Request)
//
// That signature has no room for extra parameters like a database or
// the rule registry. To inject dependencies we use a factory function
// that:
//  1. Accepts dependencies (storage, registry)
//  2. Returns a function with the exact signature the router needs
//
// Because the inner function "closes over" the outer parameters, it can
// access them even after the factory call has returned.
// This is called a closure. Example:
//
//	router.HandleFunc("POST /api/courses", course.New(storage, registry))
//	//                                            ^^^^^^^^^^^^^^^^^^^^^^
//	//                        New(storage, registry) is called ONCE at
//	//                        startup. It returns a handler func which
//	//                        is called on EVERY incoming request.
//
// The registry handed to these factories is already sealed: handlers
// only ever evaluate, they never register rules.
package course

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GeoSauer/courses-api/internal/metrics"
	"github.com/GeoSauer/courses-api/internal/rules"
	"github.com/GeoSauer/courses-api/internal/storage"
	"github.com/GeoSauer/courses-api/internal/types"
	"github.com/GeoSauer/courses-api/internal/utils/response"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/courses
// Creates a new course from the JSON request body.
//
// Request body (JSON):
//
//	{ "title": "Algebra", "price": 10 }
//
// Success response (201 Created):
//
//	{ "id": 1 }
//
// Error responses:
//
//	400 Bad Request  — empty body, malformed JSON, or a rule violation
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(storage storage.Storage, registry *rules.Registry) http.HandlerFunc {
	// This is the factory function. It runs ONCE when the route is registered.
	// It captures `storage` and `registry` in the closure below.

	return func(w http.ResponseWriter, r *http.Request) {
		// Structured log: every request gets an Info log so we can trace
		// activity in production logs.
		slog.Info("creating a course")

		// ── Step 1: Decode JSON body into a Course struct ─────────────
		var course types.Course

		// json.NewDecoder reads from r.Body (the raw bytes sent by the client).
		// .Decode(&course) populates the course variable via its pointer.
		// Fields in the JSON are matched to struct fields using json:"..." tags.
		err := json.NewDecoder(r.Body).Decode(&course)

		if errors.Is(err, io.EOF) {
			// io.EOF means the body was completely empty — nothing to decode.
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return // stop further processing
		}

		if err != nil {
			// Any other decode error: malformed JSON, wrong types, etc.
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// ── Step 2: Evaluate the candidate against the rule registry ──
		// Check runs every rule registered for the "course" entity type
		// against this instance and returns all violations at once.
		// It cannot fail with an error — a candidate either passes or
		// it does not.
		report := registry.Check(types.CourseEntity, course)
		metrics.ObserveReport(report)
		if !report.OK() {
			// The submission is rejected as a whole: nothing is stored,
			// and the client gets one message naming every violation so
			// the user can fix the form in a single round trip.
			slog.Info("course rejected",
				slog.Int("violations", len(report.Violations)))
			response.WriteJSON(w, http.StatusBadRequest,
				response.EvaluationError(report))
			return
		}

		// ── Step 3: Persist to database ───────────────────────────────
		// We call the Storage interface method — not SQLite directly.
		// This keeps the handler database-agnostic. Only accepted
		// candidates ever reach this line.
		lastID, err := storage.CreateCourse(course.Title, course.Price)
		if err != nil {
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("course accepted",
			slog.Int64("id", lastID),
			slog.String("title", course.Title),
			slog.Float64("price", course.Price),
		)

		// ── Step 4: Return 201 Created with the new course's ID ───────
		// map[string]int64 encodes to: {"id": 1}
		response.WriteJSON(w, http.StatusCreated, map[string]int64{"id": lastID})
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/courses/{id}
// Fetches a single course by its primary key ID.
//
// Path parameter: {id} — must be a valid integer
//
// Success response (200 OK):
//
//	{ "id": 1, "title": "Algebra", "price": 10 }
//
// Error responses:
//
//	400 Bad Request  — id is not a valid integer
//	500 Internal     — database error or course not found
//
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// r.PathValue("id") extracts the {id} segment from the URL.
		// This works because Go 1.22+ supports named path parameters in
		// the ServeMux pattern: "GET /api/courses/{id}"
		id := r.PathValue("id")
		slog.Info("getting a course", slog.String("id", id))

		// The URL gives us a string; the database needs int64.
		// strconv.ParseInt(s, base, bitSize) converts string → int64.
		// base 10 = decimal, bitSize 64 = int64.
		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			// The client sent something like "/api/courses/abc"
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		course, err := storage.GetCourseByID(intID)
		if err != nil {
			slog.Error("error getting course",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, course)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/courses
// Returns a JSON array of all courses in the database.
//
// Success response (200 OK):
//
//	[
//	  { "id": 1, "title": "Algebra",  "price": 10 },
//	  { "id": 2, "title": "Geometry", "price": 12.5 }
//	]
//
// Returns an empty array [] (not null) when there are no courses.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all courses")

		courses, err := storage.GetCourses()
		if err != nil {
			slog.Error("error getting courses", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, courses)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /api/courses/{id}
// Replaces ALL fields of an existing course.
//
// A PUT body is a fresh submission, so it faces exactly the same rule
// evaluation as a create — an update cannot smuggle in a course the
// registry would have rejected.
//
// Request body (JSON) — all fields required for a PUT:
//
//	{ "title": "Algebra II", "price": 15 }
//
// Success response (200 OK) — the updated course:
//
//	{ "id": 1, "title": "Algebra II", "price": 15 }
//
// Error responses:
//
//	400 Bad Request  — invalid id, empty body, or a rule violation
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(storage storage.Storage, registry *rules.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a course", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		// Decode the update payload
		var course types.Course
		err = json.NewDecoder(r.Body).Decode(&course)
		if errors.Is(err, io.EOF) {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("request body is empty")))
			return
		}
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// Evaluate the update payload using the same rules as creation
		report := registry.Check(types.CourseEntity, course)
		metrics.ObserveReport(report)
		if !report.OK() {
			response.WriteJSON(w, http.StatusBadRequest,
				response.EvaluationError(report))
			return
		}

		// Persist and retrieve the updated record
		updated, err := storage.UpdateCourseByID(intID, course)
		if err != nil {
			slog.Error("error updating course",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("course updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, updated)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /api/courses/{id}
// Permanently removes a course record from the database.
//
// Success response (200 OK):
//
//	{ "status": "deleted" }
//
// Error responses:
//
//	400 Bad Request  — invalid id
//	500 Internal     — database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Delete(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a course", slog.String("id", id))

		intID, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest,
				response.GeneralError(errors.New("invalid id: must be an integer")))
			return
		}

		if err := storage.DeleteCourseByID(intID); err != nil {
			slog.Error("error deleting course",
				slog.String("id", id),
				slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				response.GeneralError(err))
			return
		}

		slog.Info("course deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
	}
}
