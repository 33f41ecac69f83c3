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

func TestTeacherService_Create(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	t.Run("AssignsSequencedTeacherID", func(t *testing.T) {
		store := newMockStore()
		svc := &teacherService{store: store, now: func() time.Time { return fixed }}

		store.sequences.On("Next", ctx, domain.SequenceKindTeacherID).Return(int64(7), nil)
		store.teachers.On("Create", ctx, mock.AnythingOfType("*domain.Teacher")).Return(nil)

		teacher, err := svc.Create(ctx, &domain.Teacher{
			FirstName: "Maya", LastName: "Iyer", Email: "maya@school.test",
		})
		assert.NoError(t, err)
		assert.Equal(t, "TCH260007", teacher.TeacherID)
		assert.Equal(t, fixed, teacher.JoiningDate)
	})

	t.Run("MissingEmail", func(t *testing.T) {
		store := newMockStore()
		svc := &teacherService{store: store, now: time.Now}

		_, err := svc.Create(ctx, &domain.Teacher{FirstName: "Maya", LastName: "Iyer"})
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestTeacherService_AssignClass(t *testing.T) {
	ctx := context.Background()
	teacherID := uuid.New()
	classID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		store := newMockStore()
		svc := &teacherService{store: store, now: time.Now}

		store.teachers.On("GetByID", ctx, teacherID).Return(&domain.Teacher{ID: teacherID}, nil)
		store.classes.On("GetByID", ctx, classID).Return(&domain.Class{ID: classID}, nil)
		store.teachers.On("CountClasses", ctx, teacherID).Return(2, nil)
		store.teachers.On("AssignClass", ctx, teacherID, classID).Return(true, nil)

		assigned, err := svc.AssignClass(ctx, teacherID, classID)
		assert.NoError(t, err)
		assert.True(t, assigned)
	})

	t.Run("WorkloadCapReached", func(t *testing.T) {
		store := newMockStore()
		svc := &teacherService{store: store, now: time.Now}

		store.teachers.On("GetByID", ctx, teacherID).Return(&domain.Teacher{ID: teacherID}, nil)
		store.classes.On("GetByID", ctx, classID).Return(&domain.Class{ID: classID}, nil)
		store.teachers.On("CountClasses", ctx, teacherID).Return(maxClassesPerTeacher, nil)

		_, err := svc.AssignClass(ctx, teacherID, classID)
		assert.ErrorIs(t, err, domain.ErrQuotaExceeded)
		store.teachers.AssertNotCalled(t, "AssignClass", ctx, teacherID, classID)
	})

	t.Run("RepeatAssignmentIsNoop", func(t *testing.T) {
		store := newMockStore()
		svc := &teacherService{store: store, now: time.Now}

		store.teachers.On("GetByID", ctx, teacherID).Return(&domain.Teacher{ID: teacherID}, nil)
		store.classes.On("GetByID", ctx, classID).Return(&domain.Class{ID: classID}, nil)
		store.teachers.On("CountClasses", ctx, teacherID).Return(2, nil)
		store.teachers.On("AssignClass", ctx, teacherID, classID).Return(false, nil)

		assigned, err := svc.AssignClass(ctx, teacherID, classID)
		assert.NoError(t, err)
		assert.False(t, assigned)
	})
}

func TestTeacherService_AssignSubject(t *testing.T) {
	ctx := context.Background()
	teacherID := uuid.New()
	subjectID := uuid.New()

	t.Run("QualifiedSpecialization", func(t *testing.T) {
		store := newMockStore()
		svc := &teacherService{store: store, now: time.Now}

		store.teachers.On("GetByID", ctx, teacherID).
			Return(&domain.Teacher{ID: teacherID, Specialization: "Mathematics"}, nil)
		store.subjects.On("GetByID", ctx, subjectID).
			Return(&domain.Subject{ID: subjectID, Name: "Applied Mathematics"}, nil)
		store.teachers.On("AssignSubject", ctx, teacherID, subjectID).Return(true, nil)

		assigned, err := svc.AssignSubject(ctx, teacherID, subjectID)
		assert.NoError(t, err)
		assert.True(t, assigned)
	})

	t.Run("UnqualifiedSpecialization", func(t *testing.T) {
		store := newMockStore()
		svc := &teacherService{store: store, now: time.Now}

		store.teachers.On("GetByID", ctx, teacherID).
			Return(&domain.Teacher{ID: teacherID, Specialization: "History"}, nil)
		store.subjects.On("GetByID", ctx, subjectID).
			Return(&domain.Subject{ID: subjectID, Name: "Physics"}, nil)

		_, err := svc.AssignSubject(ctx, teacherID, subjectID)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})

	t.Run("EmptySpecializationNeverQualifies", func(t *testing.T) {
		store := newMockStore()
		svc := &teacherService{store: store, now: time.Now}

		store.teachers.On("GetByID", ctx, teacherID).
			Return(&domain.Teacher{ID: teacherID}, nil)
		store.subjects.On("GetByID", ctx, subjectID).
			Return(&domain.Subject{ID: subjectID, Name: "Physics"}, nil)

		_, err := svc.AssignSubject(ctx, teacherID, subjectID)
		assert.ErrorIs(t, err, domain.ErrInvalidArgument)
	})
}

func TestTeacherService_Workload(t *testing.T) {
	ctx := context.Background()
	teacherID := uuid.New()

	store := newMockStore()
	svc := &teacherService{store: store, now: time.Now}

	store.teachers.On("GetByID", ctx, teacherID).Return(&domain.Teacher{ID: teacherID}, nil)
	store.teachers.On("CountClasses", ctx, teacherID).Return(3, nil)
	store.teachers.On("CountSubjects", ctx, teacherID).Return(5, nil)

	workload, err := svc.Workload(ctx, teacherID)
	assert.NoError(t, err)
	assert.Equal(t, 5, workload, "workload is the larger of class and subject counts")
}

func TestQualifiedFor(t *testing.T) {
	assert.True(t, qualifiedFor("mathematics", "Applied Mathematics"))
	assert.True(t, qualifiedFor("Applied Mathematics", "mathematics"))
	assert.False(t, qualifiedFor("History", "Physics"))
	assert.False(t, qualifiedFor("", "Physics"))
}
