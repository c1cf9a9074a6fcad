package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yigit/unischedule/internal/app/builder"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/config"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
)

type enrollmentFixture struct {
	*catalog
	notifier   *fakeNotifier
	enrollment *EnrollmentService
	student    int64
	sectionID  int64
}

const studentUserID = 500

func newEnrollmentFixture(t *testing.T, cfg config.SchedulingConfig) *enrollmentFixture {
	t.Helper()
	c := newCatalog()
	f := &enrollmentFixture{catalog: c, notifier: &fakeNotifier{}}
	f.student = c.store.addStudent(studentUserID)
	prerequisites := NewPrerequisiteService(c.store, cfg.FailingGrades)
	f.enrollment = NewEnrollmentService(c.store, prerequisites, f.notifier, c.audit, cfg, zerolog.Nop())
	f.sectionID = f.createSection(t, c.section(c.cs101, c.turing, "001", "R101", models.Monday, models.Clock(9, 0), models.Clock(10, 30)))
	c.audit.actions = nil
	return f
}

func (f *enrollmentFixture) createSection(t *testing.T, b *builder.SectionBuilder) int64 {
	t.Helper()
	section, err := f.sections.CreateSection(context.Background(), 1, b)
	if err != nil {
		t.Fatalf("CreateSection: %v", err)
	}
	return section.ID
}

func (f *enrollmentFixture) setCapacity(sectionID int64, capacity, current int) {
	row := f.store.data.sections[sectionID]
	row.Capacity = capacity
	row.CurrentEnrollment = current
	f.store.data.sections[sectionID] = row
}

func TestMissingPrerequisitesCountsEachCourseOnce(t *testing.T) {
	store := newMemStore()
	calculus := store.addCourse("MATH101")
	programming := store.addCourse("CS100")
	algorithms := store.addCourse("CS201", calculus, programming)
	service := NewPrerequisiteService(store, []string{"F", "FF"})
	ctx := context.Background()

	repeater := store.addStudent(1)
	store.addCompleted(repeater, calculus, "FF")
	store.addCompleted(repeater, calculus, "BB")

	missing, err := service.MissingPrerequisites(ctx, repeater, algorithms)
	if err != nil {
		t.Fatalf("MissingPrerequisites: %v", err)
	}
	if !reflect.DeepEqual(missing, []int64{programming}) {
		t.Errorf("two records for one course must not cover two prerequisites, missing = %v", missing)
	}

	store.addCompleted(repeater, programming, "CC")
	eligible, err := service.IsEligible(ctx, repeater, algorithms)
	if err != nil {
		t.Fatalf("IsEligible: %v", err)
	}
	if !eligible {
		t.Error("student passed both prerequisites and should be eligible")
	}
}

func TestMissingPrerequisitesGrades(t *testing.T) {
	required := []int64{1, 2, 3, 1}
	grade := func(g string) *string { return &g }
	completed := []models.CompletedCourse{
		{CourseID: 1, FinalGrade: grade(" b+ ")},
		{CourseID: 2, FinalGrade: grade("f")},
		{CourseID: 3, FinalGrade: nil},
	}
	missing := missingPrerequisites(required, completed, models.NewGradePolicy([]string{"F"}))
	if !reflect.DeepEqual(missing, []int64{2, 3}) {
		t.Errorf("missing = %v, want [2 3]", missing)
	}

	if got := missingPrerequisites(nil, nil, models.NewGradePolicy(nil)); len(got) != 0 {
		t.Errorf("a course without prerequisites has nothing missing, got %v", got)
	}
}

func TestPrerequisiteErrors(t *testing.T) {
	store := newMemStore()
	course := store.addCourse("CS201", store.addCourse("CS101"))
	student := store.addStudent(1)
	service := NewPrerequisiteService(store, []string{"F"})
	ctx := context.Background()

	if _, err := service.IsEligible(ctx, 9999, course); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound, got %v", err)
	}
	if _, err := service.IsEligible(ctx, student, 9999); !errors.Is(err, apperrors.ErrCourseNotFound) {
		t.Errorf("expected ErrCourseNotFound, got %v", err)
	}
	store.data.failCompleted = errStorage
	if _, err := service.IsEligible(ctx, student, course); !errors.Is(err, errStorage) {
		t.Errorf("expected the storage error, got %v", err)
	}
}

func TestCreateRequest(t *testing.T) {
	f := newEnrollmentFixture(t, config.SchedulingConfig{})
	ctx := context.Background()

	request, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, f.sectionID)
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if request.ID == 0 || request.Status != models.RequestPending {
		t.Errorf("unexpected request %+v", request)
	}
	if len(f.audit.actions) != 1 || f.audit.actions[0] != models.AuditActionRequestCreated {
		t.Errorf("expected a request audit record, got %v", f.audit.actions)
	}

	if _, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, f.sectionID); !errors.Is(err, apperrors.ErrPendingRequestExists) {
		t.Errorf("second request: expected ErrPendingRequestExists, got %v", err)
	}
}

func TestCreateRequestRefusals(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown section", func(t *testing.T) {
		f := newEnrollmentFixture(t, config.SchedulingConfig{})
		if _, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, 9999); !errors.Is(err, apperrors.ErrSectionNotFound) {
			t.Errorf("expected ErrSectionNotFound, got %v", err)
		}
	})

	t.Run("section full", func(t *testing.T) {
		f := newEnrollmentFixture(t, config.SchedulingConfig{})
		f.setCapacity(f.sectionID, 2, 2)
		if _, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, f.sectionID); !errors.Is(err, apperrors.ErrSectionFull) {
			t.Errorf("expected ErrSectionFull, got %v", err)
		}
	})

	t.Run("already enrolled", func(t *testing.T) {
		f := newEnrollmentFixture(t, config.SchedulingConfig{})
		request, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, f.sectionID)
		if err != nil {
			t.Fatalf("CreateRequest: %v", err)
		}
		if _, err := f.enrollment.ApproveRequest(ctx, request.ID, 1); err != nil {
			t.Fatalf("ApproveRequest: %v", err)
		}
		if _, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, f.sectionID); !errors.Is(err, apperrors.ErrAlreadyEnrolled) {
			t.Errorf("expected ErrAlreadyEnrolled, got %v", err)
		}
	})

	t.Run("schedule conflict", func(t *testing.T) {
		f := newEnrollmentFixture(t, config.SchedulingConfig{})
		request, _ := f.enrollment.CreateRequest(ctx, studentUserID, f.student, f.sectionID)
		if _, err := f.enrollment.ApproveRequest(ctx, request.ID, 1); err != nil {
			t.Fatalf("ApproveRequest: %v", err)
		}
		overlapping := f.createSection(t, f.section(f.ee101, f.hopper, "001", "R202", models.Monday, models.Clock(10, 0), models.Clock(11, 0)))
		_, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, overlapping)
		if !errors.Is(err, apperrors.ErrScheduleConflict) {
			t.Errorf("expected ErrScheduleConflict, got %v", err)
		}

		adjacent := f.createSection(t, f.section(f.ee101, f.turing, "002", "R203", models.Monday, models.Clock(10, 30), models.Clock(11, 30)))
		if _, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, adjacent); err != nil {
			t.Errorf("adjacent section should be allowed: %v", err)
		}
	})

	t.Run("missing prerequisites", func(t *testing.T) {
		f := newEnrollmentFixture(t, config.SchedulingConfig{EnforcePrerequisites: true, FailingGrades: []string{"F"}})
		advanced := f.store.addCourse("CS201", f.cs101)
		sectionID := f.createSection(t, f.section(advanced, f.hopper, "001", "R303", models.Thursday, models.Clock(9, 0), models.Clock(10, 0)))

		_, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, sectionID)
		if !errors.Is(err, apperrors.ErrPrerequisitesNotMet) {
			t.Fatalf("expected ErrPrerequisitesNotMet, got %v", err)
		}

		f.store.addCompleted(f.student, f.cs101, "A")
		if _, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, sectionID); err != nil {
			t.Errorf("student with the prerequisite should be allowed: %v", err)
		}
	})
}

func TestRequestAfterDroppedSeat(t *testing.T) {
	f := newEnrollmentFixture(t, config.SchedulingConfig{})
	ctx := context.Background()

	id := f.store.data.id()
	f.store.data.enrollments[id] = models.Enrollment{ID: id, StudentID: f.student, SectionID: f.sectionID, Status: models.EnrollmentDropped}

	request, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, f.sectionID)
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if _, err := f.enrollment.ApproveRequest(ctx, request.ID, 1); err != nil {
		t.Fatalf("a dropped seat must not block re-enrollment: %v", err)
	}
}

func TestGroupedSectionSharesSeats(t *testing.T) {
	f := newEnrollmentFixture(t, config.SchedulingConfig{})
	ctx := context.Background()

	primary := f.createSection(t, f.section(f.cs101, f.hopper, "005", "R400", models.Friday, models.Clock(9, 0), models.Clock(10, 0)).
		WithAdditionalCourses(f.ee101).
		WithCapacity(1))
	group := f.store.data.sections[primary].MeetingGroupID
	var sibling int64
	for id, row := range f.store.data.sections {
		if id != primary && row.MeetingGroupID == group {
			sibling = id
		}
	}
	if sibling == 0 {
		t.Fatal("expected a second row for the grouped course")
	}

	request, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, primary)
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if _, err := f.enrollment.ApproveRequest(ctx, request.ID, 1); err != nil {
		t.Fatalf("ApproveRequest: %v", err)
	}

	other := f.store.addStudent(studentUserID + 1)
	if _, err := f.enrollment.CreateRequest(ctx, studentUserID+1, other, sibling); !errors.Is(err, apperrors.ErrSectionFull) {
		t.Errorf("grouped course should share the one seat, got %v", err)
	}
}

func TestCreateRequestChecksWholeWeekWithinTerm(t *testing.T) {
	f := newEnrollmentFixture(t, config.SchedulingConfig{})
	ctx := context.Background()

	weekly := f.createSection(t, f.section(f.ee101, f.hopper, "002", "R210", models.Tuesday, models.Clock(13, 0), models.Clock(14, 0)).
		AddTimeSlot(models.Thursday, models.Clock(14, 0), models.Clock(15, 30)))
	request, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, weekly)
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if _, err := f.enrollment.ApproveRequest(ctx, request.ID, 1); err != nil {
		t.Fatalf("ApproveRequest: %v", err)
	}

	thursday := f.createSection(t, f.section(f.cs101, f.turing, "003", "R211", models.Thursday, models.Clock(14, 30), models.Clock(15, 30)))
	if _, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, thursday); !errors.Is(err, apperrors.ErrScheduleConflict) {
		t.Errorf("second weekly meeting: expected ErrScheduleConflict, got %v", err)
	}

	spring := f.createSection(t, f.section(f.cs101, f.turing, "003", "R211", models.Thursday, models.Clock(14, 30), models.Clock(15, 30)).
		WithSemester(models.TermSpring, 2025))
	if _, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, spring); err != nil {
		t.Errorf("same slot in another term should be allowed: %v", err)
	}
}

func TestApproveRequest(t *testing.T) {
	f := newEnrollmentFixture(t, config.SchedulingConfig{})
	ctx := context.Background()

	request, err := f.enrollment.CreateRequest(ctx, studentUserID, f.student, f.sectionID)
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	approved, err := f.enrollment.ApproveRequest(ctx, request.ID, 77)
	if err != nil {
		t.Fatalf("ApproveRequest: %v", err)
	}
	if approved.Status != models.RequestApproved || approved.ReviewedBy == nil || *approved.ReviewedBy != 77 || approved.ReviewedAt == nil {
		t.Errorf("review stamp missing: %+v", approved)
	}
	if got := f.store.data.sections[f.sectionID].CurrentEnrollment; got != 1 {
		t.Errorf("CurrentEnrollment = %d, want 1", got)
	}
	if len(f.store.data.enrollments) != 1 {
		t.Errorf("expected one enrollment, have %d", len(f.store.data.enrollments))
	}
	if len(f.notifier.sent) != 1 || f.notifier.sent[0].recipients[0] != studentUserID {
		t.Errorf("student should be notified, sent %+v", f.notifier.sent)
	}

	_, err = f.enrollment.ApproveRequest(ctx, request.ID, 77)
	if !errors.Is(err, apperrors.ErrRequestNotPending) {
		t.Errorf("second approval: expected ErrRequestNotPending, got %v", err)
	}
	if got := f.store.data.sections[f.sectionID].CurrentEnrollment; got != 1 {
		t.Errorf("second approval must not add a seat, CurrentEnrollment = %d", got)
	}

	if _, err := f.enrollment.ApproveRequest(ctx, 9999, 77); !errors.Is(err, apperrors.ErrRequestNotFound) {
		t.Errorf("expected ErrRequestNotFound, got %v", err)
	}
}

func TestApproveRequestRollsBack(t *testing.T) {
	f := newEnrollmentFixture(t, config.SchedulingConfig{})
	ctx := context.Background()

	request, _ := f.enrollment.CreateRequest(ctx, studentUserID, f.student, f.sectionID)
	f.store.data.failIncrement = errStorage

	if _, err := f.enrollment.ApproveRequest(ctx, request.ID, 77); !errors.Is(err, errStorage) {
		t.Fatalf("expected the storage error, got %v", err)
	}
	if len(f.store.data.enrollments) != 0 {
		t.Error("enrollment row must be rolled back")
	}
	if status := f.store.data.requests[request.ID].Status; status != models.RequestPending {
		t.Errorf("request should stay pending, got %s", status)
	}
	if len(f.notifier.sent) != 0 {
		t.Error("no notification for a failed approval")
	}
}

func TestApproveRequestFullSection(t *testing.T) {
	f := newEnrollmentFixture(t, config.SchedulingConfig{})
	ctx := context.Background()

	request, _ := f.enrollment.CreateRequest(ctx, studentUserID, f.student, f.sectionID)
	f.setCapacity(f.sectionID, 1, 1)

	if _, err := f.enrollment.ApproveRequest(ctx, request.ID, 77); !errors.Is(err, apperrors.ErrSectionFull) {
		t.Fatalf("expected ErrSectionFull, got %v", err)
	}
	if len(f.store.data.enrollments) != 0 {
		t.Error("enrollment row must be rolled back")
	}
}

func TestSideEffectFailuresDoNotUndoApproval(t *testing.T) {
	f := newEnrollmentFixture(t, config.SchedulingConfig{})
	ctx := context.Background()

	request, _ := f.enrollment.CreateRequest(ctx, studentUserID, f.student, f.sectionID)
	f.notifier.err = errors.New("smtp down")
	f.audit.err = errors.New("audit table locked")

	if _, err := f.enrollment.ApproveRequest(ctx, request.ID, 77); err != nil {
		t.Fatalf("ApproveRequest: %v", err)
	}
	if status := f.store.data.requests[request.ID].Status; status != models.RequestApproved {
		t.Errorf("approval should stand, status = %s", status)
	}
}

func TestRejectRequest(t *testing.T) {
	f := newEnrollmentFixture(t, config.SchedulingConfig{})
	ctx := context.Background()

	request, _ := f.enrollment.CreateRequest(ctx, studentUserID, f.student, f.sectionID)

	if _, err := f.enrollment.RejectRequest(ctx, request.ID, 77, "  "); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("blank reason: expected validation error, got %v", err)
	}

	rejected, err := f.enrollment.RejectRequest(ctx, request.ID, 77, "Reserved for majors")
	if err != nil {
		t.Fatalf("RejectRequest: %v", err)
	}
	if rejected.Status != models.RequestRejected || rejected.RejectionReason == nil || *rejected.RejectionReason != "Reserved for majors" {
		t.Errorf("unexpected rejection %+v", rejected)
	}
	if len(f.notifier.sent) != 1 {
		t.Errorf("student should be notified of the rejection")
	}

	if _, err := f.enrollment.ApproveRequest(ctx, request.ID, 77); !errors.Is(err, apperrors.ErrRequestNotPending) {
		t.Errorf("approving a rejected request: expected ErrRequestNotPending, got %v", err)
	}
	if f.store.data.sections[f.sectionID].CurrentEnrollment != 0 {
		t.Error("rejection must not take a seat")
	}
}

func TestApproveAll(t *testing.T) {
	f := newEnrollmentFixture(t, config.SchedulingConfig{})
	ctx := context.Background()
	f.setCapacity(f.sectionID, 1, 0)

	first, _ := f.enrollment.CreateRequest(ctx, studentUserID, f.student, f.sectionID)
	other := f.store.addStudent(501)
	second, err := f.enrollment.CreateRequest(ctx, 501, other, f.sectionID)
	if err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}

	result := f.enrollment.ApproveAll(ctx, []int64{first.ID, second.ID, 9999}, 77)
	if result.Approved != 1 || result.Failed != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Failures[0].RequestID != second.ID || result.Failures[1].RequestID != 9999 {
		t.Errorf("failures out of order: %+v", result.Failures)
	}
	if status := f.store.data.requests[second.ID].Status; status != models.RequestPending {
		t.Errorf("failed approval should leave the request pending, got %s", status)
	}
}

func TestListRequests(t *testing.T) {
	f := newEnrollmentFixture(t, config.SchedulingConfig{})
	ctx := context.Background()

	first, _ := f.enrollment.CreateRequest(ctx, studentUserID, f.student, f.sectionID)
	other := f.store.addStudent(501)
	if _, err := f.enrollment.CreateRequest(ctx, 501, other, f.sectionID); err != nil {
		t.Fatalf("CreateRequest: %v", err)
	}
	if _, err := f.enrollment.ApproveRequest(ctx, first.ID, 77); err != nil {
		t.Fatalf("ApproveRequest: %v", err)
	}

	pending := models.RequestPending
	requests, page, err := f.enrollment.ListRequests(ctx, repositories.RequestFilter{Status: &pending, Page: 1, Size: 10})
	if err != nil {
		t.Fatalf("ListRequests: %v", err)
	}
	if len(requests) != 1 || requests[0].StudentID != other || page.TotalItems != 1 {
		t.Errorf("unexpected pending list %+v (%+v)", requests, page)
	}

	bogus := models.RequestStatus("LOST")
	if _, _, err := f.enrollment.ListRequests(ctx, repositories.RequestFilter{Status: &bogus}); !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Errorf("unknown status: expected validation error, got %v", err)
	}
}

func TestStudentForUser(t *testing.T) {
	f := newEnrollmentFixture(t, config.SchedulingConfig{})

	student, err := f.enrollment.StudentForUser(context.Background(), studentUserID)
	if err != nil || student.ID != f.student {
		t.Fatalf("StudentForUser = %+v, %v", student, err)
	}
	if _, err := f.enrollment.StudentForUser(context.Background(), 12345); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound, got %v", err)
	}
}
