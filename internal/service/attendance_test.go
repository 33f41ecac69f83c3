package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"smartschool-backend/internal/domain"
)

func TestAttendanceService_BulkCreate(t *testing.T) {
	ctx := context.Background()
	classID := uuid.New()
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	marked := uuid.New()
	unmarked := uuid.New()

	t.Run("SkipsAlreadyMarked", func(t *testing.T) {
		store := newMockStore()
		svc := NewAttendanceService(store)

		store.attendance.On("HasBeenMarked", ctx, marked, date).Return(true, nil)
		store.attendance.On("HasBeenMarked", ctx, unmarked, date).Return(false, nil)
		store.attendance.On("Create", ctx, mock.MatchedBy(func(a *domain.Attendance) bool {
			return a.StudentID == unmarked && a.IsPresent
		})).Return(true, nil)

		entries := []domain.StudentAttendanceEntry{
			{StudentID: marked, IsPresent: false},
			{StudentID: unmarked, IsPresent: true},
		}
		err := svc.BulkCreate(ctx, date, classID, entries)
		assert.NoError(t, err)
		store.attendance.AssertNumberOfCalls(t, "Create", 1)
	})

	t.Run("RepeatSubmissionIsNoop", func(t *testing.T) {
		store := newMockStore()
		svc := NewAttendanceService(store)

		store.attendance.On("HasBeenMarked", ctx, marked, date).Return(true, nil)

		err := svc.BulkCreate(ctx, date, classID, []domain.StudentAttendanceEntry{{StudentID: marked, IsPresent: true}})
		assert.NoError(t, err)
		store.attendance.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("ConcurrentInsertCountsAsMarked", func(t *testing.T) {
		store := newMockStore()
		svc := NewAttendanceService(store)

		// Another submission wins the (student, date) pair between the
		// probe and the insert; the batch continues.
		store.attendance.On("HasBeenMarked", ctx, marked, date).Return(false, nil)
		store.attendance.On("Create", ctx, mock.MatchedBy(func(a *domain.Attendance) bool {
			return a.StudentID == marked
		})).Return(false, nil)
		store.attendance.On("HasBeenMarked", ctx, unmarked, date).Return(false, nil)
		store.attendance.On("Create", ctx, mock.MatchedBy(func(a *domain.Attendance) bool {
			return a.StudentID == unmarked
		})).Return(true, nil)

		entries := []domain.StudentAttendanceEntry{
			{StudentID: marked, IsPresent: true},
			{StudentID: unmarked, IsPresent: true},
		}
		err := svc.BulkCreate(ctx, date, classID, entries)
		assert.NoError(t, err)
		store.attendance.AssertNumberOfCalls(t, "Create", 2)
	})

	t.Run("EmptyEntries", func(t *testing.T) {
		store := newMockStore()
		svc := NewAttendanceService(store)

		err := svc.BulkCreate(ctx, date, classID, nil)
		assert.NoError(t, err)
	})
}

func TestAttendanceService_BulkUpdate(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	existing := uuid.New()
	missing := uuid.New()

	store := newMockStore()
	svc := NewAttendanceService(store)

	store.attendance.On("GetByStudentAndDate", ctx, existing, date).
		Return(&domain.Attendance{ID: uuid.New(), StudentID: existing, Date: date, IsPresent: true}, nil)
	store.attendance.On("Update", ctx, mock.MatchedBy(func(a *domain.Attendance) bool {
		return a.StudentID == existing && !a.IsPresent
	})).Return(nil)
	store.attendance.On("GetByStudentAndDate", ctx, missing, date).Return(nil, domain.ErrNotFound)
	store.attendance.On("Create", ctx, mock.MatchedBy(func(a *domain.Attendance) bool {
		return a.StudentID == missing
	})).Return(true, nil)

	entries := []domain.StudentAttendanceEntry{
		{StudentID: existing, IsPresent: false, Remarks: "left early"},
		{StudentID: missing, IsPresent: true},
	}
	err := svc.BulkUpdate(ctx, date, entries)
	assert.NoError(t, err)
	store.attendance.AssertNumberOfCalls(t, "Update", 1)
	store.attendance.AssertNumberOfCalls(t, "Create", 1)
}

func TestAttendanceService_BulkUpdate_ConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	studentID := uuid.New()

	store := newMockStore()
	svc := NewAttendanceService(store)

	// A concurrent writer inserts the pair after the miss; the update is
	// applied to that record instead.
	store.attendance.On("GetByStudentAndDate", ctx, studentID, date).
		Return(nil, domain.ErrNotFound).Once()
	store.attendance.On("Create", ctx, mock.AnythingOfType("*domain.Attendance")).
		Return(false, nil)
	store.attendance.On("GetByStudentAndDate", ctx, studentID, date).
		Return(&domain.Attendance{ID: uuid.New(), StudentID: studentID, Date: date, IsPresent: true}, nil)
	store.attendance.On("Update", ctx, mock.MatchedBy(func(a *domain.Attendance) bool {
		return a.StudentID == studentID && !a.IsPresent
	})).Return(nil)

	entries := []domain.StudentAttendanceEntry{{StudentID: studentID, IsPresent: false}}
	err := svc.BulkUpdate(ctx, date, entries)
	assert.NoError(t, err)
	store.attendance.AssertNumberOfCalls(t, "Update", 1)
}

func TestAttendanceService_StudentPercentage(t *testing.T) {
	ctx := context.Background()
	studentID := uuid.New()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("NoRecordsIsZero", func(t *testing.T) {
		store := newMockStore()
		svc := NewAttendanceService(store)

		store.attendance.On("ListByStudent", ctx, studentID, start, end).Return([]domain.Attendance{}, nil)

		pct, err := svc.StudentPercentage(ctx, studentID, start, end)
		assert.NoError(t, err)
		assert.Zero(t, pct)
	})

	t.Run("PresentRatio", func(t *testing.T) {
		store := newMockStore()
		svc := NewAttendanceService(store)

		records := []domain.Attendance{
			{IsPresent: true}, {IsPresent: true}, {IsPresent: true}, {IsPresent: false},
		}
		store.attendance.On("ListByStudent", ctx, studentID, start, end).Return(records, nil)

		pct, err := svc.StudentPercentage(ctx, studentID, start, end)
		assert.NoError(t, err)
		assert.InDelta(t, 75.0, pct, 0.001)
	})
}

func TestAttendanceService_MonthlyReport(t *testing.T) {
	ctx := context.Background()
	store := newMockStore()
	svc := NewAttendanceService(store)

	// June 2026 has 22 weekdays.
	store.attendance.On("ListByDate", ctx, mock.AnythingOfType("time.Time")).
		Return([]domain.Attendance{{IsPresent: true}, {IsPresent: false}}, nil)

	report, err := svc.MonthlyReport(ctx, 2026, 6)
	assert.NoError(t, err)
	assert.Equal(t, 22, report.WorkingDays)
	assert.Len(t, report.DailyAttendance, 22)
	for _, day := range report.DailyAttendance {
		wd := day.Date.Weekday()
		assert.NotEqual(t, time.Saturday, wd)
		assert.NotEqual(t, time.Sunday, wd)
	}
	assert.InDelta(t, 50.0, report.AverageAttendance, 0.001)
}

func TestAttendanceService_MonthlyReport_InvalidMonth(t *testing.T) {
	store := newMockStore()
	svc := NewAttendanceService(store)

	_, err := svc.MonthlyReport(context.Background(), 2026, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestAttendanceService_ClassPercentages(t *testing.T) {
	ctx := context.Background()
	classID := uuid.New()
	start := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 5, 0, 0, 0, 0, time.UTC)

	withRecords := uuid.New()
	withoutRecords := uuid.New()

	store := newMockStore()
	svc := NewAttendanceService(store)

	store.students.On("ListByClass", ctx, classID).Return([]domain.Student{
		{ID: withRecords}, {ID: withoutRecords},
	}, nil)
	store.attendance.On("ListByClassRange", ctx, classID, start, end).Return([]domain.Attendance{
		{StudentID: withRecords, IsPresent: true},
		{StudentID: withRecords, IsPresent: false},
	}, nil)

	percentages, err := svc.ClassPercentages(ctx, classID, start, end)
	assert.NoError(t, err)
	assert.InDelta(t, 50.0, percentages[withRecords], 0.001)
	// A student with no records still appears, at zero.
	assert.Zero(t, percentages[withoutRecords])
}
