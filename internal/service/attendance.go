package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/logger"
	"smartschool-backend/internal/repository"
)

type attendanceService struct {
	store repository.Store
}

func NewAttendanceService(store repository.Store) AttendanceService {
	return &attendanceService{store: store}
}

func (s *attendanceService) HasBeenMarked(ctx context.Context, studentID uuid.UUID, date time.Time) (bool, error) {
	return s.store.Attendance().HasBeenMarked(ctx, studentID, date)
}

// BulkCreate records attendance for a class submission in one transaction.
// Already-marked students are skipped silently (first write wins), so a
// duplicate submission is a no-op rather than an error. Either every
// remaining row commits or none do.
func (s *attendanceService) BulkCreate(ctx context.Context, date time.Time, classID uuid.UUID, entries []domain.StudentAttendanceEntry) error {
	if len(entries) == 0 {
		return nil
	}
	var created, skipped int
	err := s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		for _, entry := range entries {
			marked, err := r.Attendance().HasBeenMarked(ctx, entry.StudentID, date)
			if err != nil {
				return err
			}
			if marked {
				skipped++
				continue
			}
			att := &domain.Attendance{
				StudentID: entry.StudentID,
				Date:      date,
				IsPresent: entry.IsPresent,
				Remarks:   entry.Remarks,
			}
			// A concurrent submission may have inserted the pair between
			// the probe and the insert; the losing insert reports false
			// and still counts as already marked.
			inserted, err := r.Attendance().Create(ctx, att)
			if err != nil {
				return err
			}
			if !inserted {
				skipped++
				continue
			}
			created++
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.Info("Bulk attendance recorded", "class_id", classID, "date", date.Format("2006-01-02"),
		"created", created, "skipped", skipped)
	return nil
}

// BulkUpdate upserts attendance for each (student, date) pair in one
// transaction. Unlike BulkCreate, failures are surfaced to the caller.
func (s *attendanceService) BulkUpdate(ctx context.Context, date time.Time, entries []domain.StudentAttendanceEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return s.store.WithinTx(ctx, func(ctx context.Context, r repository.Registry) error {
		for _, entry := range entries {
			existing, err := r.Attendance().GetByStudentAndDate(ctx, entry.StudentID, date)
			switch {
			case err == nil:
				existing.IsPresent = entry.IsPresent
				existing.Remarks = entry.Remarks
				if err := r.Attendance().Update(ctx, existing); err != nil {
					return err
				}
			case errors.Is(err, domain.ErrNotFound):
				att := &domain.Attendance{
					StudentID: entry.StudentID,
					Date:      date,
					IsPresent: entry.IsPresent,
					Remarks:   entry.Remarks,
				}
				// A create that loses a concurrent race leaves the other
				// writer's record in place; re-read and apply the update.
				inserted, err := r.Attendance().Create(ctx, att)
				if err != nil {
					return err
				}
				if !inserted {
					existing, err := r.Attendance().GetByStudentAndDate(ctx, entry.StudentID, date)
					if err != nil {
						return err
					}
					existing.IsPresent = entry.IsPresent
					existing.Remarks = entry.Remarks
					if err := r.Attendance().Update(ctx, existing); err != nil {
						return err
					}
				}
			default:
				return err
			}
		}
		return nil
	})
}

// StudentPercentage is presentDays / totalDays * 100, and 0 when the student
// has no records in range.
func (s *attendanceService) StudentPercentage(ctx context.Context, studentID uuid.UUID, start, end time.Time) (float64, error) {
	records, err := s.store.Attendance().ListByStudent(ctx, studentID, start, end)
	if err != nil {
		return 0, err
	}
	return presenceRatio(records), nil
}

func (s *attendanceService) ClassPercentages(ctx context.Context, classID uuid.UUID, start, end time.Time) (map[uuid.UUID]float64, error) {
	students, err := s.store.Students().ListByClass(ctx, classID)
	if err != nil {
		return nil, err
	}
	records, err := s.store.Attendance().ListByClassRange(ctx, classID, start, end)
	if err != nil {
		return nil, err
	}

	byStudent := make(map[uuid.UUID][]domain.Attendance)
	for _, rec := range records {
		byStudent[rec.StudentID] = append(byStudent[rec.StudentID], rec)
	}

	percentages := make(map[uuid.UUID]float64, len(students))
	for _, st := range students {
		percentages[st.ID] = presenceRatio(byStudent[st.ID])
	}
	return percentages, nil
}

// MonthlyReport walks the weekday calendar dates of the month. Saturdays and
// Sundays are not working days and are excluded entirely; the average is
// taken over the daily percentages of all working days.
func (s *attendanceService) MonthlyReport(ctx context.Context, year, month int) (*domain.MonthlyAttendance, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("month %d out of range: %w", month, domain.ErrInvalidArgument)
	}

	report := &domain.MonthlyAttendance{Year: year, Month: month}
	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	for date := first; date.Month() == time.Month(month); date = date.AddDate(0, 0, 1) {
		if date.Weekday() == time.Saturday || date.Weekday() == time.Sunday {
			continue
		}
		report.WorkingDays++

		records, err := s.store.Attendance().ListByDate(ctx, date)
		if err != nil {
			return nil, err
		}
		present := 0
		for _, rec := range records {
			if rec.IsPresent {
				present++
			}
		}
		daily := domain.DailyAttendance{
			Date:         date,
			PresentCount: present,
			AbsentCount:  len(records) - present,
		}
		if len(records) > 0 {
			daily.AttendancePercentage = float64(present) / float64(len(records)) * 100
		}
		report.DailyAttendance = append(report.DailyAttendance, daily)
	}

	if len(report.DailyAttendance) > 0 {
		var sum float64
		for _, d := range report.DailyAttendance {
			sum += d.AttendancePercentage
		}
		report.AverageAttendance = sum / float64(len(report.DailyAttendance))
	}
	return report, nil
}

func (s *attendanceService) DailySummary(ctx context.Context, date time.Time) (*domain.AttendanceSummary, error) {
	classes, err := s.store.Classes().List(ctx)
	if err != nil {
		return nil, err
	}

	byClass := make(map[string]domain.AttendanceStat, len(classes))
	for _, class := range classes {
		records, err := s.store.Attendance().ListByClass(ctx, class.ID, date)
		if err != nil {
			return nil, err
		}
		present := 0
		for _, rec := range records {
			if rec.IsPresent {
				present++
			}
		}
		stat := domain.AttendanceStat{
			TotalStudents:   len(records),
			PresentStudents: present,
			AbsentStudents:  len(records) - present,
		}
		if len(records) > 0 {
			stat.AttendancePercentage = float64(present) / float64(len(records)) * 100
		}
		byClass[fmt.Sprintf("%s - %s", class.Name, class.Section)] = stat
	}

	all, err := s.store.Attendance().ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	present := 0
	for _, rec := range all {
		if rec.IsPresent {
			present++
		}
	}
	summary := &domain.AttendanceSummary{
		Date:              date,
		TotalStudents:     len(all),
		PresentStudents:   present,
		AbsentStudents:    len(all) - present,
		AttendanceByClass: byClass,
	}
	if len(all) > 0 {
		summary.AttendancePercentage = float64(present) / float64(len(all)) * 100
	}
	return summary, nil
}

func (s *attendanceService) AbsentStudents(ctx context.Context, date time.Time) ([]domain.Student, error) {
	records, err := s.store.Attendance().ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	absent := make(map[uuid.UUID]bool)
	for _, rec := range records {
		if !rec.IsPresent {
			absent[rec.StudentID] = true
		}
	}
	if len(absent) == 0 {
		return nil, nil
	}

	students, err := s.store.Students().List(ctx)
	if err != nil {
		return nil, err
	}
	var result []domain.Student
	for _, st := range students {
		if absent[st.ID] {
			result = append(result, st)
		}
	}
	return result, nil
}

func (s *attendanceService) ListByStudent(ctx context.Context, studentID uuid.UUID, start, end time.Time) ([]domain.Attendance, error) {
	return s.store.Attendance().ListByStudent(ctx, studentID, start, end)
}

func (s *attendanceService) ListByClass(ctx context.Context, classID uuid.UUID, date time.Time) ([]domain.Attendance, error) {
	return s.store.Attendance().ListByClass(ctx, classID, date)
}

func presenceRatio(records []domain.Attendance) float64 {
	if len(records) == 0 {
		return 0
	}
	present := 0
	for _, rec := range records {
		if rec.IsPresent {
			present++
		}
	}
	return float64(present) / float64(len(records)) * 100
}
