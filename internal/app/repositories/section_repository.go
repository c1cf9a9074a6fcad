package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/unischedule/internal/app/models"
	"github.com/yigit/unischedule/internal/db"
	"github.com/yigit/unischedule/internal/pkg/apperrors"
	"github.com/yigit/unischedule/internal/pkg/dberrors"
	"github.com/yigit/unischedule/internal/pkg/logger"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Constraint names from migrations/002_sections.sql
const (
	constraintInstructorOverlap = "section_sessions_instructor_overlap"
	constraintRoomOverlap       = "section_sessions_room_overlap"
	constraintExactDuplicate    = "section_sessions_exact_duplicate"
	constraintSectionCourseFK   = "sections_course_id_fkey"
	constraintSectionInstrFK    = "sections_instructor_id_fkey"
	constraintWithinCapacity    = "sections_enrollment_within_capacity"
)

// PostgresSectionRepository handles database operations for sections
type PostgresSectionRepository struct {
	db db.DBTX
}

// NewSectionRepository creates a section repository on a pool or a transaction
func NewSectionRepository(conn db.DBTX) *PostgresSectionRepository {
	return &PostgresSectionRepository{db: conn}
}

var sectionColumns = []string{
	"s.id", "s.meeting_group_id", "s.course_id", "c.code", "s.instructor_id", "s.section_number",
	"s.session_type", "s.semester", "s.academic_year", "s.room", "s.capacity",
	"s.current_enrollment", "s.is_weekly", "s.created_by", "s.created_at",
}

func (r *PostgresSectionRepository) selectSections() squirrel.SelectBuilder {
	return psql.Select(sectionColumns...).
		From("sections s").
		Join("courses c ON c.id = s.course_id")
}

func scanSection(row pgx.Row) (*models.Section, error) {
	var (
		section   models.Section
		courseID  int64
		code      string
		createdBy *int64
	)
	err := row.Scan(
		&section.ID, &section.MeetingGroupID, &courseID, &code, &section.InstructorID,
		&section.SectionNumber, &section.SessionType, &section.Semester, &section.AcademicYear,
		&section.Room, &section.Capacity, &section.CurrentEnrollment, &section.IsWeekly,
		&createdBy, &section.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	section.CourseIDs = []int64{courseID}
	section.CourseCodes = map[int64]string{courseID: code}
	if createdBy != nil {
		section.CreatedBy = *createdBy
	}
	return &section, nil
}

// Insert stores the section as one row per course sharing the meeting group and returns
// the id of the primary course's row.
func (r *PostgresSectionRepository) Insert(ctx context.Context, section *models.Section) (int64, error) {
	var primaryID int64
	insert := func(ctx context.Context, conn db.DBTX) error {
		entries := section.Entries()
		for i, courseID := range section.CourseIDs {
			id, err := r.insertRow(ctx, conn, section, courseID)
			if err != nil {
				return err
			}
			if i == 0 {
				primaryID = id
			}
			if err := r.insertSessions(ctx, conn, id, courseID, entries); err != nil {
				return err
			}
		}
		return nil
	}

	var err error
	if beginner, ok := r.db.(db.TxBeginner); ok {
		err = db.WithTransaction(ctx, beginner, func(ctx context.Context, tx pgx.Tx) error {
			return insert(ctx, tx)
		})
	} else {
		err = insert(ctx, r.db)
	}
	if err != nil {
		return 0, translateSectionError(err)
	}
	return primaryID, nil
}

func (r *PostgresSectionRepository) insertRow(ctx context.Context, conn db.DBTX, section *models.Section, courseID int64) (int64, error) {
	var createdBy *int64
	if section.CreatedBy != 0 {
		createdBy = &section.CreatedBy
	}
	sql, args, err := psql.Insert("sections").
		Columns("meeting_group_id", "course_id", "instructor_id", "section_number", "session_type",
			"semester", "academic_year", "room", "capacity", "current_enrollment", "is_weekly", "created_by").
		Values(section.MeetingGroupID, courseID, section.InstructorID, section.SectionNumber, section.SessionType,
			section.Semester, section.AcademicYear, section.Room, section.Capacity, section.CurrentEnrollment,
			section.IsWeekly, createdBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("building insert section SQL: %w", err)
	}

	var id int64
	if err := conn.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresSectionRepository) insertSessions(ctx context.Context, conn db.DBTX, sectionID, courseID int64, entries []models.TimetableEntry) error {
	builder := psql.Insert("section_sessions").
		Columns("section_id", "meeting_group_id", "course_id", "instructor_id", "semester", "academic_year",
			"day", "start_minute", "end_minute", "room", "session_type", "section_number")
	rows := 0
	for _, e := range entries {
		if e.CourseID != courseID {
			continue
		}
		var room *string
		if e.Room != "" {
			room = &e.Room
		}
		builder = builder.Values(sectionID, e.MeetingGroupID, courseID, e.InstructorID, e.Semester, e.AcademicYear,
			int(e.Day), int(e.Start), int(e.End), room, e.SessionType, e.SectionNumber)
		rows++
	}
	if rows == 0 {
		return nil
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("building insert sessions SQL: %w", err)
	}
	_, err = conn.Exec(ctx, sql, args...)
	return err
}

// translateSectionError maps constraint violations onto the scheduling taxonomy
func translateSectionError(err error) error {
	switch {
	case dberrors.IsExclusionConstraintError(err, constraintRoomOverlap):
		return apperrors.NewSchedulingConflict(apperrors.ConflictRoom, "the room is already booked at an overlapping time")
	case dberrors.IsExclusionConstraintError(err, constraintInstructorOverlap):
		return apperrors.NewSchedulingConflict(apperrors.ConflictInstructor, "the instructor already teaches at an overlapping time")
	case dberrors.IsDuplicateConstraintError(err, constraintExactDuplicate):
		return apperrors.NewSchedulingConflict(apperrors.ConflictDuplicate, "an identical section already exists")
	case dberrors.IsForeignKeyConstraintError(err, constraintSectionCourseFK):
		return apperrors.ErrCourseNotFound
	case dberrors.IsForeignKeyConstraintError(err, constraintSectionInstrFK):
		return apperrors.ErrInstructorNotFound
	}
	var conflict *apperrors.ConflictError
	if errors.As(err, &conflict) {
		return err
	}
	logger.Error().Err(err).Msg("Error inserting section")
	return apperrors.NewPersistenceError("insert section", err)
}

// FindByID loads one section row with its sessions
func (r *PostgresSectionRepository) FindByID(ctx context.Context, id int64) (*models.Section, error) {
	sql, args, err := r.selectSections().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("building get section SQL: %w", err)
	}

	section, err := scanSection(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSectionNotFound
		}
		return nil, apperrors.NewPersistenceError("get section", err)
	}

	if err := r.attachSessions(ctx, []*models.Section{section}); err != nil {
		return nil, err
	}
	return section, nil
}

// ListBySemester returns every section row of a term. Grouped sections come back as one
// record per course.
func (r *PostgresSectionRepository) ListBySemester(ctx context.Context, semester models.Term, year int) ([]*models.Section, error) {
	sql, args, err := r.selectSections().
		Where(squirrel.Eq{"s.semester": semester, "s.academic_year": year}).
		OrderBy("c.code", "s.section_number", "s.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building list sections SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list sections", err)
	}
	defer rows.Close()

	sections := []*models.Section{}
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			return nil, apperrors.NewPersistenceError("scan section", err)
		}
		sections = append(sections, section)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("list sections", err)
	}

	if err := r.attachSessions(ctx, sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// attachSessions loads the sessions of sections, keeping only the values that differ
// from the section defaults as overrides.
func (r *PostgresSectionRepository) attachSessions(ctx context.Context, sections []*models.Section) error {
	if len(sections) == 0 {
		return nil
	}
	byID := make(map[int64]*models.Section, len(sections))
	ids := make([]int64, 0, len(sections))
	for _, s := range sections {
		byID[s.ID] = s
		ids = append(ids, s.ID)
	}

	sql, args, err := psql.Select("section_id", "day", "start_minute", "end_minute", "room", "session_type", "section_number").
		From("section_sessions").
		Where(squirrel.Eq{"section_id": ids}).
		OrderBy("section_id", "day", "start_minute").
		ToSql()
	if err != nil {
		return fmt.Errorf("building list sessions SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return apperrors.NewPersistenceError("list sessions", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			sectionID     int64
			session       models.Session
			room          *string
			sessionType   string
			sectionNumber string
		)
		if err := rows.Scan(&sectionID, &session.Day, &session.Start, &session.End, &room, &sessionType, &sectionNumber); err != nil {
			return apperrors.NewPersistenceError("scan session", err)
		}
		section := byID[sectionID]
		if room != nil && (section.Room == nil || *section.Room != *room) {
			session.Room = room
		}
		if sessionType != section.SessionType {
			session.SessionType = sessionType
		}
		if sectionNumber != section.SectionNumber {
			session.SectionNumber = &sectionNumber
		}
		section.Sessions = append(section.Sessions, session)
	}
	if err := rows.Err(); err != nil {
		return apperrors.NewPersistenceError("list sessions", err)
	}
	return nil
}

// ListSessionsByDay returns the persisted meetings of one day of a term
func (r *PostgresSectionRepository) ListSessionsByDay(ctx context.Context, semester models.Term, year int, day models.Weekday) ([]models.TimetableEntry, error) {
	sql, args, err := selectEntries().
		Where(squirrel.Eq{"ss.semester": semester, "ss.academic_year": year, "ss.day": int(day)}).
		OrderBy("ss.start_minute", "ss.section_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("building sessions by day SQL: %w", err)
	}
	return queryEntries(ctx, r.db, sql, args...)
}

func selectEntries() squirrel.SelectBuilder {
	return psql.Select(
		"ss.section_id", "ss.meeting_group_id", "ss.course_id", "c.code", "ss.instructor_id",
		"ss.section_number", "ss.session_type", "COALESCE(ss.room, '')", "ss.semester", "ss.academic_year",
		"ss.day", "ss.start_minute", "ss.end_minute",
	).
		From("section_sessions ss").
		Join("courses c ON c.id = ss.course_id")
}

func queryEntries(ctx context.Context, conn db.DBTX, sql string, args ...interface{}) ([]models.TimetableEntry, error) {
	rows, err := conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperrors.NewPersistenceError("list timetable entries", err)
	}
	defer rows.Close()

	var entries []models.TimetableEntry
	for rows.Next() {
		var e models.TimetableEntry
		if err := rows.Scan(
			&e.SectionID, &e.MeetingGroupID, &e.CourseID, &e.CourseCode, &e.InstructorID,
			&e.SectionNumber, &e.SessionType, &e.Room, &e.Semester, &e.AcademicYear,
			&e.Day, &e.Start, &e.End,
		); err != nil {
			return nil, apperrors.NewPersistenceError("scan timetable entry", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewPersistenceError("list timetable entries", err)
	}
	return entries, nil
}

// WeeklyTimetable materializes the term as day-bucketed entries
func (r *PostgresSectionRepository) WeeklyTimetable(ctx context.Context, semester models.Term, year int) (models.WeeklyTimetable, error) {
	sections, err := r.ListBySemester(ctx, semester, year)
	if err != nil {
		return nil, err
	}
	return models.BuildWeeklyTimetable(sections), nil
}

// HasCapacity reports whether one more student fits in the section
func (r *PostgresSectionRepository) HasCapacity(ctx context.Context, id int64) (bool, error) {
	var hasCapacity bool
	err := r.db.QueryRow(ctx, `SELECT current_enrollment < capacity FROM sections WHERE id = $1`, id).Scan(&hasCapacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, apperrors.ErrSectionNotFound
		}
		return false, apperrors.NewPersistenceError("check capacity", err)
	}
	return hasCapacity, nil
}

// incrementGroupSeats bumps the shared seat count on every row of the section's
// meeting group, so a grouped section admits at most capacity students in total.
func incrementGroupSeats(id int64) (string, []interface{}, error) {
	return psql.Update("sections").
		Set("current_enrollment", squirrel.Expr("current_enrollment + 1")).
		Where("meeting_group_id = (SELECT meeting_group_id FROM sections WHERE id = ?)", id).
		Where("current_enrollment < capacity").
		ToSql()
}

// IncrementEnrollment takes one seat. It must run in the transaction that inserts the
// matching enrollment; a full section yields ErrSectionFull.
func (r *PostgresSectionRepository) IncrementEnrollment(ctx context.Context, id int64) error {
	sql, args, err := incrementGroupSeats(id)
	if err != nil {
		return fmt.Errorf("building increment enrollment SQL: %w", err)
	}
	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsCheckConstraintError(err, constraintWithinCapacity) {
			return apperrors.ErrSectionFull
		}
		return apperrors.NewPersistenceError("increment enrollment", err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	if _, err := r.HasCapacity(ctx, id); err != nil {
		return err
	}
	return apperrors.ErrSectionFull
}

// LockTerm serializes section creation for one term until the transaction ends
func (r *PostgresSectionRepository) LockTerm(ctx context.Context, semester models.Term, year int) error {
	key := fmt.Sprintf("sections:%s:%d", semester, year)
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, key); err != nil {
		return apperrors.NewPersistenceError("lock term", err)
	}
	return nil
}
