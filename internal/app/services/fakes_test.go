package services

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/app/models/dto"
	"github.com/yigit/unischedule/internal/app/repositories"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/helpers"
)

// memData is the state behind memStore. WithinTx snapshots it and restores the
// snapshot when the callback fails.
type memData struct {
	nextID      int64
	sections    map[int64]models.Section
	courses     map[int64]models.Course
	instructors map[int64]models.Instructor
	students    map[int64]models.Student
	requests    map[int64]models.EnrollmentRequest
	enrollments map[int64]models.Enrollment

	locks             []string
	failIncrement     error
	failCompleted     error
	lockedRequestRead int
}

func (d *memData) clone() *memData {
	c := *d
	c.sections = make(map[int64]models.Section, len(d.sections))
	for k, v := range d.sections {
		v.Sessions = append([]models.Session(nil), v.Sessions...)
		v.CourseIDs = append([]int64(nil), v.CourseIDs...)
		c.sections[k] = v
	}
	c.courses = copyMap(d.courses)
	c.instructors = copyMap(d.instructors)
	c.students = copyMap(d.students)
	c.requests = copyMap(d.requests)
	c.enrollments = copyMap(d.enrollments)
	c.locks = append([]string(nil), d.locks...)
	return &c
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (d *memData) id() int64 {
	d.nextID++
	return d.nextID
}

type memStore struct {
	data *memData
	txs  int
}

func newMemStore() *memStore {
	return &memStore{data: &memData{
		sections:    map[int64]models.Section{},
		courses:     map[int64]models.Course{},
		instructors: map[int64]models.Instructor{},
		students:    map[int64]models.Student{},
		requests:    map[int64]models.EnrollmentRequest{},
		enrollments: map[int64]models.Enrollment{},
	}}
}

func (s *memStore) Sections() repositories.SectionRepository       { return memSections{s} }
func (s *memStore) Enrollments() repositories.EnrollmentRepository { return memEnrollments{s} }
func (s *memStore) Courses() repositories.CourseRepository         { return memCourses{s} }
func (s *memStore) Instructors() repositories.InstructorRepository { return memInstructors{s} }
func (s *memStore) Students() repositories.StudentRepository       { return memStudents{s} }

func (s *memStore) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repositories.Store) error) error {
	s.txs++
	snapshot := s.data.clone()
	if err := fn(ctx, s); err != nil {
		*s.data = *snapshot
		return err
	}
	return nil
}

func (s *memStore) addCourse(code string, prerequisites ...int64) int64 {
	id := s.data.id()
	s.data.courses[id] = models.Course{ID: id, Code: code, Name: code, CreditHours: 3, PrerequisiteIDs: prerequisites}
	return id
}

func (s *memStore) addInstructor(userID int64) int64 {
	id := s.data.id()
	s.data.instructors[id] = models.Instructor{ID: id, UserID: userID}
	return id
}

func (s *memStore) addStudent(userID int64) int64 {
	id := s.data.id()
	s.data.students[id] = models.Student{ID: id, UserID: userID}
	return id
}

// addCompleted records a finished enrollment in a fresh section of courseID
func (s *memStore) addCompleted(studentID, courseID int64, grade string) {
	sectionID := s.data.id()
	s.data.sections[sectionID] = models.Section{
		ID: sectionID, CourseIDs: []int64{courseID}, SectionNumber: "H", Semester: models.TermSpring, AcademicYear: 2020, Capacity: 100,
	}
	g := grade
	id := s.data.id()
	s.data.enrollments[id] = models.Enrollment{ID: id, StudentID: studentID, SectionID: sectionID, Status: models.EnrollmentCompleted, FinalGrade: &g}
}

func (s *memStore) sectionRows() []models.Section {
	rows := make([]models.Section, 0, len(s.data.sections))
	for _, row := range s.data.sections {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
	return rows
}

func (s *memStore) withCodes(section models.Section) *models.Section {
	section.CourseCodes = map[int64]string{}
	for _, id := range section.CourseIDs {
		section.CourseCodes[id] = s.data.courses[id].Code
	}
	return &section
}

type memSections struct{ s *memStore }

// Insert stores one row per course, as the SQL repository does
func (r memSections) Insert(ctx context.Context, section *models.Section) (int64, error) {
	var primary int64
	for _, courseID := range section.CourseIDs {
		row := *section
		row.ID = r.s.data.id()
		row.CourseIDs = []int64{courseID}
		row.Sessions = nil
		for _, session := range section.Sessions {
			if session.CourseID != nil && *session.CourseID != courseID {
				continue
			}
			session.CourseID = nil
			row.Sessions = append(row.Sessions, session)
		}
		if len(row.Sessions) == 0 {
			continue
		}
		r.s.data.sections[row.ID] = row
		if primary == 0 {
			primary = row.ID
		}
	}
	return primary, nil
}

func (r memSections) FindByID(ctx context.Context, id int64) (*models.Section, error) {
	row, ok := r.s.data.sections[id]
	if !ok {
		return nil, apperrors.ErrSectionNotFound
	}
	return r.s.withCodes(row), nil
}

func (r memSections) ListBySemester(ctx context.Context, semester models.Term, year int) ([]*models.Section, error) {
	var out []*models.Section
	for _, row := range r.s.sectionRows() {
		if row.Semester == semester && row.AcademicYear == year {
			out = append(out, r.s.withCodes(row))
		}
	}
	return out, nil
}

func (r memSections) ListSessionsByDay(ctx context.Context, semester models.Term, year int, day models.Weekday) ([]models.TimetableEntry, error) {
	sections, _ := r.ListBySemester(ctx, semester, year)
	var out []models.TimetableEntry
	for _, section := range sections {
		out = append(out, section.EntriesOn(day)...)
	}
	return out, nil
}

func (r memSections) WeeklyTimetable(ctx context.Context, semester models.Term, year int) (models.WeeklyTimetable, error) {
	sections, _ := r.ListBySemester(ctx, semester, year)
	return models.BuildWeeklyTimetable(sections), nil
}

func (r memSections) HasCapacity(ctx context.Context, id int64) (bool, error) {
	row, ok := r.s.data.sections[id]
	if !ok {
		return false, apperrors.ErrSectionNotFound
	}
	return row.HasCapacity(), nil
}

func (r memSections) IncrementEnrollment(ctx context.Context, id int64) error {
	if r.s.data.failIncrement != nil {
		return r.s.data.failIncrement
	}
	row, ok := r.s.data.sections[id]
	if !ok {
		return apperrors.ErrSectionNotFound
	}
	if !row.HasCapacity() {
		return apperrors.ErrSectionFull
	}
	for otherID, other := range r.s.data.sections {
		if otherID == id || (row.MeetingGroupID != uuid.Nil && other.MeetingGroupID == row.MeetingGroupID) {
			other.CurrentEnrollment++
			r.s.data.sections[otherID] = other
		}
	}
	return nil
}

func (r memSections) LockTerm(ctx context.Context, semester models.Term, year int) error {
	r.s.data.locks = append(r.s.data.locks, string(semester))
	return nil
}

type memEnrollments struct{ s *memStore }

func (r memEnrollments) CreateRequest(ctx context.Context, request *models.EnrollmentRequest) (int64, error) {
	for _, existing := range r.s.data.requests {
		if existing.StudentID == request.StudentID && existing.SectionID == request.SectionID && existing.Status == models.RequestPending {
			return 0, apperrors.ErrPendingRequestExists
		}
	}
	row := *request
	row.ID = r.s.data.id()
	r.s.data.requests[row.ID] = row
	return row.ID, nil
}

func (r memEnrollments) GetRequest(ctx context.Context, id int64) (*models.EnrollmentRequest, error) {
	row, ok := r.s.data.requests[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	return &row, nil
}

func (r memEnrollments) GetRequestForUpdate(ctx context.Context, id int64) (*models.EnrollmentRequest, error) {
	r.s.data.lockedRequestRead++
	return r.GetRequest(ctx, id)
}

func (r memEnrollments) UpdateReview(ctx context.Context, request *models.EnrollmentRequest) error {
	row, ok := r.s.data.requests[request.ID]
	if !ok {
		return apperrors.ErrRequestNotFound
	}
	if row.Status != models.RequestPending {
		return apperrors.ErrRequestNotPending
	}
	r.s.data.requests[request.ID] = *request
	return nil
}

func (r memEnrollments) ListRequests(ctx context.Context, filter repositories.RequestFilter) ([]*models.EnrollmentRequest, dto.PaginationInfo, error) {
	var matched []*models.EnrollmentRequest
	for _, row := range r.s.data.requests {
		if filter.Status != nil && row.Status != *filter.Status {
			continue
		}
		if filter.SectionID != nil && row.SectionID != *filter.SectionID {
			continue
		}
		row := row
		matched = append(matched, &row)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	pagination := helpers.NewPaginationInfo(int64(len(matched)), filter.Page, filter.Size)
	offset, limit := helpers.CalculateOffsetLimit(filter.Page, filter.Size)
	start := int(offset)
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], pagination, nil
}

func (r memEnrollments) PendingRequestExists(ctx context.Context, studentID, sectionID int64) (bool, error) {
	for _, row := range r.s.data.requests {
		if row.StudentID == studentID && row.SectionID == sectionID && row.Status == models.RequestPending {
			return true, nil
		}
	}
	return false, nil
}

func (r memEnrollments) CreateEnrollment(ctx context.Context, enrollment *models.Enrollment) (int64, error) {
	for _, row := range r.s.data.enrollments {
		if row.StudentID == enrollment.StudentID && row.SectionID == enrollment.SectionID && row.Status == models.EnrollmentEnrolled {
			return 0, apperrors.ErrAlreadyEnrolled
		}
	}
	row := *enrollment
	row.ID = r.s.data.id()
	r.s.data.enrollments[row.ID] = row
	return row.ID, nil
}

func (r memEnrollments) IsEnrolled(ctx context.Context, studentID, sectionID int64) (bool, error) {
	for _, row := range r.s.data.enrollments {
		if row.StudentID == studentID && row.SectionID == sectionID && row.Status == models.EnrollmentEnrolled {
			return true, nil
		}
	}
	return false, nil
}

func (r memEnrollments) EnrolledEntries(ctx context.Context, studentID int64, semester models.Term, year int) ([]models.TimetableEntry, error) {
	var out []models.TimetableEntry
	for _, row := range r.s.data.enrollments {
		if row.StudentID != studentID || row.Status != models.EnrollmentEnrolled {
			continue
		}
		section := r.s.withCodes(r.s.data.sections[row.SectionID])
		if section.Semester == semester && section.AcademicYear == year {
			out = append(out, section.Entries()...)
		}
	}
	return out, nil
}

func (r memEnrollments) CompletedCourses(ctx context.Context, studentID int64) ([]models.CompletedCourse, error) {
	if r.s.data.failCompleted != nil {
		return nil, r.s.data.failCompleted
	}
	var out []models.CompletedCourse
	for _, row := range r.s.data.enrollments {
		if row.StudentID != studentID || row.Status != models.EnrollmentCompleted {
			continue
		}
		section := r.s.data.sections[row.SectionID]
		out = append(out, models.CompletedCourse{CourseID: section.CourseIDs[0], FinalGrade: row.FinalGrade})
	}
	return out, nil
}

type memCourses struct{ s *memStore }

func (r memCourses) Create(ctx context.Context, course *models.Course) (int64, error) {
	id := r.s.data.id()
	row := *course
	row.ID = id
	row.Code = strings.ToUpper(row.Code)
	r.s.data.courses[id] = row
	return id, nil
}

func (r memCourses) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	row, ok := r.s.data.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return &row, nil
}

func (r memCourses) GetByCode(ctx context.Context, code string) (*models.Course, error) {
	for _, row := range r.s.data.courses {
		if strings.EqualFold(row.Code, code) {
			row := row
			return &row, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (r memCourses) PrerequisiteIDs(ctx context.Context, courseID int64) ([]int64, error) {
	course, err := r.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return course.PrerequisiteIDs, nil
}

func (r memCourses) AddPrerequisite(ctx context.Context, courseID, prerequisiteID int64) error {
	row, ok := r.s.data.courses[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	row.PrerequisiteIDs = append(row.PrerequisiteIDs, prerequisiteID)
	r.s.data.courses[courseID] = row
	return nil
}

type memInstructors struct{ s *memStore }

func (r memInstructors) Create(ctx context.Context, instructor *models.Instructor) (int64, error) {
	return r.s.addInstructor(instructor.UserID), nil
}

func (r memInstructors) GetByID(ctx context.Context, id int64) (*models.Instructor, error) {
	row, ok := r.s.data.instructors[id]
	if !ok {
		return nil, apperrors.ErrInstructorNotFound
	}
	return &row, nil
}

func (r memInstructors) GetByUserID(ctx context.Context, userID int64) (*models.Instructor, error) {
	for _, row := range r.s.data.instructors {
		if row.UserID == userID {
			row := row
			return &row, nil
		}
	}
	return nil, apperrors.ErrInstructorNotFound
}

type memStudents struct{ s *memStore }

func (r memStudents) Create(ctx context.Context, student *models.Student) (int64, error) {
	return r.s.addStudent(student.UserID), nil
}

func (r memStudents) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	row, ok := r.s.data.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return &row, nil
}

func (r memStudents) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	for _, row := range r.s.data.students {
		if row.UserID == userID {
			row := row
			return &row, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

type sentNotification struct {
	title      string
	recipients []int64
}

type fakeNotifier struct {
	sent []sentNotification
	err  error
}

func (n *fakeNotifier) Notify(ctx context.Context, title, body string, recipients []int64, category string) error {
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, sentNotification{title: title, recipients: recipients})
	return nil
}

type fakeAudit struct {
	actions []string
	err     error
}

func (a *fakeAudit) Record(ctx context.Context, actorUserID int64, action, entityType string, entityID int64, details interface{}) error {
	if a.err != nil {
		return a.err
	}
	a.actions = append(a.actions, action)
	return nil
}

var errStorage = errors.New("storage unavailable")
