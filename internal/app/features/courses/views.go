// internal/app/features/courses/views.go
package courses

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/auth"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
	"github.com/skillforge/skillforge/internal/domain/models"
)

// lectureView is one lecture inside a populated course tree. VideoURL is
// omitted from the public view and filled in for enrolled/owning callers.
type lectureView struct {
	ID          primitive.ObjectID `json:"id"`
	Title       string             `json:"title"`
	Duration    string             `json:"duration"`
	Description string             `json:"description,omitempty"`
	VideoURL    string             `json:"video_url,omitempty"`
}

type sectionView struct {
	ID          primitive.ObjectID `json:"id"`
	Name        string             `json:"name"`
	SubSections []lectureView      `json:"sub_sections"`
}

type instructorView struct {
	ID        primitive.ObjectID `json:"id"`
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Image     string             `json:"image,omitempty"`
}

// coursePage is the populated detail payload. CompletedVideos is only set
// on the full (signed-in) view; an enrolled student with no progress record
// still gets an empty list, not null.
type coursePage struct {
	Course          *models.Course        `json:"course"`
	Instructor      *instructorView       `json:"instructor,omitempty"`
	Content         []sectionView         `json:"content"`
	TotalDuration   string                `json:"total_duration"`
	CompletedVideos *[]primitive.ObjectID `json:"completed_videos,omitempty"`
}

// HandleListPublished returns all published courses, newest first.
//
// GET /courses
func (h *Handler) HandleListPublished(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Courses.ListPublished(ctx)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	respond.OK(w, "courses", list)
}

// HandleSearch matches published courses on name, description, or tags.
// An empty query returns an empty list rather than the full catalog.
//
// GET /courses/search?q=...
func (h *Handler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		respond.OK(w, "courses", []models.Course{})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Courses.Search(ctx, q)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	respond.OK(w, "courses", list)
}

// HandleInstructorCourses returns the caller's own courses, drafts included.
//
// GET /courses/mine
func (h *Handler) HandleInstructorCourses(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)
	instructorID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid session user id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Courses.ListByInstructor(ctx, instructorID)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	respond.OK(w, "courses", list)
}

// HandleDetails is the public populated course view. Lecture video URLs are
// withheld; only titles and durations are exposed to browsers.
//
// GET /courses/{id}
func (h *Handler) HandleDetails(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid course id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page, err := h.buildCoursePage(ctx, id, false)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}
	respond.OK(w, "course details", page)
}

// HandleFullDetails is the signed-in populated view with video URLs and the
// caller's completion state. Enrollment is not enforced here; the router
// gates it behind a session.
//
// GET /courses/{id}/full
func (h *Handler) HandleFullDetails(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid course id"))
		return
	}
	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid session user id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	page, err := h.buildCoursePage(ctx, id, true)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	completed := []primitive.ObjectID{}
	prog, err := h.Progress.Get(ctx, userID, id)
	switch {
	case err == nil:
		completed = prog.CompletedVideos
	case err == mongo.ErrNoDocuments:
		// No record yet; report zero progress rather than 404.
	default:
		respond.Err(w, h.Log, err)
		return
	}
	page.CompletedVideos = &completed

	respond.OK(w, "course details", page)
}

// buildCoursePage loads the course and populates its section and lecture
// tree in stored order. Dangling section or lecture ids are skipped.
func (h *Handler) buildCoursePage(ctx context.Context, id primitive.ObjectID, includeVideos bool) (*coursePage, error) {
	course, err := h.Courses.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("course not found")
		}
		return nil, err
	}

	sections, err := h.Sections.GetByIDs(ctx, course.Content)
	if err != nil {
		return nil, err
	}
	var lectureIDs []primitive.ObjectID
	for _, sec := range sections {
		lectureIDs = append(lectureIDs, sec.SubSections...)
	}
	lectures, err := h.SubSections.GetByIDs(ctx, lectureIDs)
	if err != nil {
		return nil, err
	}

	totalSeconds := 0
	content := []sectionView{}
	for _, secID := range course.Content {
		sec, ok := sections[secID]
		if !ok {
			continue
		}
		sv := sectionView{ID: sec.ID, Name: sec.Name, SubSections: []lectureView{}}
		for _, subID := range sec.SubSections {
			sub, ok := lectures[subID]
			if !ok {
				continue
			}
			totalSeconds += models.ParseDurationSeconds(sub.Duration)
			lv := lectureView{
				ID:          sub.ID,
				Title:       sub.Title,
				Duration:    sub.Duration,
				Description: sub.Description,
			}
			if includeVideos {
				lv.VideoURL = sub.VideoURL
			}
			sv.SubSections = append(sv.SubSections, lv)
		}
		content = append(content, sv)
	}

	page := &coursePage{
		Course:        course,
		Content:       content,
		TotalDuration: models.FormatDuration(totalSeconds),
	}
	if instructor, err := h.Users.GetByID(ctx, course.Instructor); err == nil {
		page.Instructor = &instructorView{
			ID:        instructor.ID,
			FirstName: instructor.FirstName,
			LastName:  instructor.LastName,
			Image:     instructor.Image,
		}
	}
	return page, nil
}
