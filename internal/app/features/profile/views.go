// internal/app/features/profile/views.go
package profile

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/skillforge/skillforge/internal/app/system/respond"
	"github.com/skillforge/skillforge/internal/app/system/timeouts"
	"github.com/skillforge/skillforge/internal/domain/models"
)

// enrolledCourseView is one enrolled course with the caller's progress.
type enrolledCourseView struct {
	Course          models.Course `json:"course"`
	TotalDuration   string        `json:"total_duration"`
	TotalLectures   int           `json:"total_lectures"`
	CompletedCount  int           `json:"completed_count"`
	ProgressPercent int           `json:"progress_percent"`
}

// HandleEnrolledCourses lists the caller's enrolled courses with duration
// and completion figures. A course id that no longer resolves is skipped;
// account deletion and cascade gaps can leave dangling references.
//
// GET /profile/courses
func (h *Handler) HandleEnrolledCourses(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	account, err := h.currentAccount(ctx, r)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	out := []enrolledCourseView{}
	for _, courseID := range account.Courses {
		course, err := h.Courses.GetByID(ctx, courseID)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				continue
			}
			respond.Err(w, h.Log, err)
			return
		}

		totalSeconds, totalLectures, err := h.courseTotals(ctx, course)
		if err != nil {
			respond.Err(w, h.Log, err)
			return
		}

		completed := 0
		if prog, err := h.Progress.Get(ctx, account.ID, courseID); err == nil {
			completed = len(prog.CompletedVideos)
		} else if err != mongo.ErrNoDocuments {
			respond.Err(w, h.Log, err)
			return
		}

		percent := 0
		if totalLectures > 0 {
			percent = completed * 100 / totalLectures
		}
		out = append(out, enrolledCourseView{
			Course:          *course,
			TotalDuration:   models.FormatDuration(totalSeconds),
			TotalLectures:   totalLectures,
			CompletedCount:  completed,
			ProgressPercent: percent,
		})
	}

	respond.OK(w, "enrolled courses", out)
}

// dashboardCourseView is one of the instructor's courses with its earnings.
type dashboardCourseView struct {
	Course        models.Course `json:"course"`
	TotalStudents int           `json:"total_students"`
	TotalRevenue  int           `json:"total_revenue"`
}

// HandleDashboard reports per-course student counts and gross revenue for
// the signed-in instructor. Revenue is price times enrollments; refunds and
// gateway fees are not modelled.
//
// GET /profile/dashboard
func (h *Handler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	account, err := h.currentAccount(ctx, r)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	list, err := h.Courses.ListByInstructor(ctx, account.ID)
	if err != nil {
		respond.Err(w, h.Log, err)
		return
	}

	out := make([]dashboardCourseView, 0, len(list))
	for _, course := range list {
		students := len(course.StudentsEnrolled)
		out = append(out, dashboardCourseView{
			Course:        course,
			TotalStudents: students,
			TotalRevenue:  course.Price * students,
		})
	}

	respond.OK(w, "instructor dashboard", out)
}

// courseTotals sums lecture durations and counts lectures across the
// course's content tree.
func (h *Handler) courseTotals(ctx context.Context, course *models.Course) (seconds, lectures int, err error) {
	sections, err := h.Sections.GetByIDs(ctx, course.Content)
	if err != nil {
		return 0, 0, err
	}
	var lectureIDs []primitive.ObjectID
	for _, sec := range sections {
		lectureIDs = append(lectureIDs, sec.SubSections...)
	}
	subs, err := h.SubSections.GetByIDs(ctx, lectureIDs)
	if err != nil {
		return 0, 0, err
	}
	for _, sub := range subs {
		seconds += models.ParseDurationSeconds(sub.Duration)
	}
	return seconds, len(subs), nil
}
