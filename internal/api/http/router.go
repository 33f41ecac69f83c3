package http

import (
	"github.com/gorilla/mux"

	"smartschool-backend/internal/domain"
	"smartschool-backend/internal/security"
	"smartschool-backend/internal/service"
)

// Handlers bundles the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Auth       *AuthHandler
	Books      *BookHandler
	Lending    *LendingHandler
	Attendance *AttendanceHandler
	Donations  *DonationHandler
	Students   *StudentHandler
	Teachers   *TeacherHandler
	Classes    *ClassHandler
	Reports    *ReportHandler
}

func NewHandlers(authSvc service.AuthService, bookSvc service.BookService,
	lendingSvc service.LendingService, attendanceSvc service.AttendanceService,
	donationSvc service.DonationService, studentSvc service.StudentService,
	teacherSvc service.TeacherService, classSvc service.ClassService) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(authSvc),
		Books:      NewBookHandler(bookSvc),
		Lending:    NewLendingHandler(lendingSvc),
		Attendance: NewAttendanceHandler(attendanceSvc),
		Donations:  NewDonationHandler(donationSvc),
		Students:   NewStudentHandler(studentSvc),
		Teachers:   NewTeacherHandler(teacherSvc),
		Classes:    NewClassHandler(classSvc),
		Reports:    NewReportHandler(lendingSvc, bookSvc, donationSvc, studentSvc, teacherSvc),
	}
}

// NewRouter mounts all routes under /api/v1. Login is public; everything
// else requires a valid access token, and mutating staff operations are
// limited by role.
func NewRouter(h *Handlers, tm security.TokenManager) *mux.Router {
	admin := string(domain.UserRoleAdmin)
	librarian := string(domain.UserRoleLibrarian)
	teacher := string(domain.UserRoleTeacher)

	root := mux.NewRouter()
	root.HandleFunc("/api/v1/auth/login", h.Auth.Login).Methods("POST")

	api := root.PathPrefix("/api/v1").Subrouter()
	api.Use(NewAuthMiddleware(tm).Handler)

	// Book catalog
	api.HandleFunc("/books", RequireRole(h.Books.Create, admin, librarian)).Methods("POST")
	api.HandleFunc("/books", h.Books.List).Methods("GET")
	api.HandleFunc("/books/popular", h.Books.Popular).Methods("GET")
	api.HandleFunc("/books/{id}", h.Books.Get).Methods("GET")
	api.HandleFunc("/books/{id}", RequireRole(h.Books.Update, admin, librarian)).Methods("PUT")
	api.HandleFunc("/books/{id}", RequireRole(h.Books.Delete, admin, librarian)).Methods("DELETE")
	api.HandleFunc("/books/{id}/availability", h.Books.Availability).Methods("GET")
	api.HandleFunc("/books/{bookId}/lendings", h.Lending.HistoryByBook).Methods("GET")

	// Lending lifecycle
	api.HandleFunc("/lendings", RequireRole(h.Lending.Create, admin, librarian)).Methods("POST")
	api.HandleFunc("/lendings/active", h.Lending.ListActive).Methods("GET")
	api.HandleFunc("/lendings/overdue", h.Lending.ListOverdue).Methods("GET")
	api.HandleFunc("/lendings/{id}", h.Lending.Get).Methods("GET")
	api.HandleFunc("/lendings/{id}/return", RequireRole(h.Lending.Return, admin, librarian)).Methods("POST")
	api.HandleFunc("/lendings/{id}/renew", RequireRole(h.Lending.Renew, admin, librarian)).Methods("POST")
	api.HandleFunc("/lendings/{id}/lost", RequireRole(h.Lending.MarkLost, admin, librarian)).Methods("POST")
	api.HandleFunc("/lendings/{id}/fine", h.Lending.Fine).Methods("GET")
	api.HandleFunc("/borrowers/{borrowerId}/lendings", h.Lending.ListByBorrower).Methods("GET")

	// Attendance
	api.HandleFunc("/attendance", RequireRole(h.Attendance.BulkCreate, admin, teacher)).Methods("POST")
	api.HandleFunc("/attendance", RequireRole(h.Attendance.BulkUpdate, admin, teacher)).Methods("PUT")
	api.HandleFunc("/attendance/summary", h.Attendance.DailySummary).Methods("GET")
	api.HandleFunc("/attendance/absent", h.Attendance.AbsentStudents).Methods("GET")
	api.HandleFunc("/attendance/monthly", h.Attendance.MonthlyReport).Methods("GET")
	api.HandleFunc("/attendance/students/{studentId}", h.Attendance.ListByStudent).Methods("GET")
	api.HandleFunc("/attendance/students/{studentId}/percentage", h.Attendance.StudentPercentage).Methods("GET")
	api.HandleFunc("/attendance/classes/{classId}", h.Attendance.ListByClass).Methods("GET")
	api.HandleFunc("/attendance/classes/{classId}/percentages", h.Attendance.ClassPercentages).Methods("GET")

	// Donations
	api.HandleFunc("/donations", RequireRole(h.Donations.Process, admin)).Methods("POST")
	api.HandleFunc("/donations", h.Donations.List).Methods("GET")
	api.HandleFunc("/donations/total", h.Donations.Total).Methods("GET")
	api.HandleFunc("/donations/{id}", h.Donations.Get).Methods("GET")
	api.HandleFunc("/donations/{id}/status", RequireRole(h.Donations.UpdateStatus, admin)).Methods("PUT")

	// Students
	api.HandleFunc("/students", RequireRole(h.Students.Create, admin)).Methods("POST")
	api.HandleFunc("/students", h.Students.List).Methods("GET")
	api.HandleFunc("/students/{id}", h.Students.Get).Methods("GET")
	api.HandleFunc("/students/{id}", RequireRole(h.Students.Update, admin)).Methods("PUT")
	api.HandleFunc("/students/{id}", RequireRole(h.Students.Delete, admin)).Methods("DELETE")
	api.HandleFunc("/students/{id}/transfer", RequireRole(h.Students.Transfer, admin)).Methods("POST")
	api.HandleFunc("/students/{id}/lendings", h.Students.LendingHistory).Methods("GET")

	// Teachers
	api.HandleFunc("/teachers", RequireRole(h.Teachers.Create, admin)).Methods("POST")
	api.HandleFunc("/teachers", h.Teachers.List).Methods("GET")
	api.HandleFunc("/teachers/{id}", h.Teachers.Get).Methods("GET")
	api.HandleFunc("/teachers/{id}", RequireRole(h.Teachers.Update, admin)).Methods("PUT")
	api.HandleFunc("/teachers/{id}/workload", h.Teachers.Workload).Methods("GET")
	api.HandleFunc("/teachers/{id}/classes", h.Teachers.Classes).Methods("GET")
	api.HandleFunc("/teachers/{id}/classes/{classId}", RequireRole(h.Teachers.AssignClass, admin)).Methods("PUT")
	api.HandleFunc("/teachers/{id}/classes/{classId}", RequireRole(h.Teachers.RemoveClass, admin)).Methods("DELETE")
	api.HandleFunc("/teachers/{id}/subjects", h.Teachers.Subjects).Methods("GET")
	api.HandleFunc("/teachers/{id}/subjects/{subjectId}", RequireRole(h.Teachers.AssignSubject, admin)).Methods("PUT")
	api.HandleFunc("/teachers/{id}/subjects/{subjectId}", RequireRole(h.Teachers.RemoveSubject, admin)).Methods("DELETE")

	// Classes
	api.HandleFunc("/classes", RequireRole(h.Classes.Create, admin)).Methods("POST")
	api.HandleFunc("/classes", h.Classes.List).Methods("GET")
	api.HandleFunc("/classes/{id}", h.Classes.Get).Methods("GET")
	api.HandleFunc("/classes/{id}/subjects", h.Classes.Subjects).Methods("GET")
	api.HandleFunc("/classes/{id}/subjects/{subjectId}", RequireRole(h.Classes.AssignSubject, admin)).Methods("PUT")
	api.HandleFunc("/classes/{id}/subjects/{subjectId}", RequireRole(h.Classes.RemoveSubject, admin)).Methods("DELETE")

	// Reports
	api.HandleFunc("/reports/lending", h.Reports.Lending).Methods("GET")
	api.HandleFunc("/reports/books", h.Reports.Books).Methods("GET")
	api.HandleFunc("/reports/donations", h.Reports.Donations).Methods("GET")
	api.HandleFunc("/reports/students", h.Reports.Students).Methods("GET")
	api.HandleFunc("/reports/teachers", h.Reports.Teachers).Methods("GET")

	return root
}
