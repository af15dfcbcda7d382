package repository

import "gorm.io/gorm"

// Repository groups every repository of the console.
type Repository struct {
	Profile    ProfileRepository
	Class      ClassRepository
	Subject    SubjectRepository
	Meeting    MeetingRepository
	Enrollment EnrollmentRepository
	ImportRow  ImportRowRepository
	Attendance AttendanceRepository
	Report     ReportRepository
}

// NewRepository wires the gorm implementations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Profile:    NewProfileRepo(db),
		Class:      NewClassRepo(db),
		Subject:    NewSubjectRepo(db),
		Meeting:    NewMeetingRepo(db),
		Enrollment: NewEnrollmentRepo(db),
		ImportRow:  NewImportRowRepo(db),
		Attendance: NewAttendanceRepo(db),
		Report:     NewReportRepo(db),
	}
}
