// internal/app/features/courses/delete.go
package courses

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/skillforge/skillforge/internal/app/system/apperr"
	"github.com/skillforge/skillforge/internal/app/system/auth"
	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
)

// HandleDelete removes a course and everything hanging off it: student
// enrollment back-references, progress records, the section and lecture
// tree, and the category and instructor back-references.
//
// The steps run sequentially with no transaction. A failed step is recorded
// and the cascade keeps going, so a partial failure deletes as much as it
// can; the response is then an integrity error naming the failed steps.
//
// DELETE /courses/{id}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	user, _ := auth.CurrentUser(r)

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		respond.Err(w, h.Log, apperr.Validation("invalid course id"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	course, err := h.getOwnedCourse(ctx, id, user)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	var failed []string
	fail := func(step string, err error) {
		failed = append(failed, step)
		h.Log.Error("course cascade step failed",
			zap.String("course_id", id.Hex()),
			zap.String("step", step),
			zap.Error(err))
	}

	// 1. Unenroll every student.
	if err := h.Users.RemoveCourseFromAll(ctx, id); err != nil {
		fail("unenroll students", err)
	}

	// 2. Progress records for this course.
	if _, err := h.Progress.DeleteForCourse(ctx, id); err != nil {
		fail("delete progress", err)
	}

	// 3. Lectures, then their sections.
	sections, err := h.Sections.GetByIDs(ctx, course.Content)
	if err != nil {
		fail("load sections", err)
	} else {
		var lectureIDs []primitive.ObjectID
		for _, sec := range sections {
			lectureIDs = append(lectureIDs, sec.SubSections...)
		}
		if _, err := h.SubSections.DeleteMany(ctx, lectureIDs); err != nil {
			fail("delete lectures", err)
		}
		if _, err := h.Sections.DeleteMany(ctx, course.Content); err != nil {
			fail("delete sections", err)
		}
	}

	// 4. The course document itself.
	if _, err := h.Courses.Delete(ctx, id); err != nil {
		fail("delete course", err)
	}

	// 5. Catalog back-references.
	if err := h.Categories.RemoveCourse(ctx, course.Category, id); err != nil {
		fail("category back-reference", err)
	}
	if err := h.Users.RemoveCourse(ctx, course.Instructor, id); err != nil {
		fail("instructor back-reference", err)
	}

	if len(failed) > 0 {
		respond.Err(w, h.Log, apperr.Integrity(
			"course delete left inconsistent data; failed steps: "+strings.Join(failed, ", "), nil))
		return
	}

	respond.OK(w, "course deleted", nil)
}
