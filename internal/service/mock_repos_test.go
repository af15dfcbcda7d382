package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/truongminh05/VCI-Web/internal/model"
	"github.com/truongminh05/VCI-Web/internal/repository"
	"github.com/truongminh05/VCI-Web/pkg/sheet"
)

// ── Mock ProfileRepository ──

type mockProfileRepo struct {
	profiles    map[string]*model.Profile
	checkErr    error
	checkResult *bool
	updateCalls int
	lastUpdate  map[string]interface{}
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (m *mockProfileRepo) add(p *model.Profile) {
	m.profiles[p.UserID] = p
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID string) (*model.Profile, error) {
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) GetByCode(_ context.Context, code string) (*model.Profile, error) {
	for _, p := range m.profiles {
		if p.Code != nil && strings.EqualFold(*p.Code, code) {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) ListByIDs(_ context.Context, ids []string) ([]model.Profile, error) {
	var result []model.Profile
	for _, id := range ids {
		if p, ok := m.profiles[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (m *mockProfileRepo) ListActive(_ context.Context, role model.Role) ([]model.Profile, error) {
	var result []model.Profile
	for _, p := range m.profiles {
		if p.DisabledAt != nil || (role != "" && p.Role != role) {
			continue
		}
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockProfileRepo) CountByRole(_ context.Context, role model.Role) (int64, error) {
	var n int64
	for _, p := range m.profiles {
		if p.Role == role {
			n++
		}
	}
	return n, nil
}

func (m *mockProfileRepo) UpdatePersonal(_ context.Context, userID string, fields map[string]interface{}) (int64, error) {
	m.updateCalls++
	m.lastUpdate = fields
	p, ok := m.profiles[userID]
	if !ok {
		return 0, nil
	}
	if v, ok := fields["ho_ten"].(string); ok {
		p.FullName = &v
	} else {
		p.FullName = nil
	}
	if v, ok := fields["ngay_sinh"].(time.Time); ok {
		p.BirthDate = &v
	}
	return 1, nil
}

func (m *mockProfileRepo) Disable(_ context.Context, userID string, at time.Time) (int64, error) {
	p, ok := m.profiles[userID]
	if !ok {
		return 0, nil
	}
	p.DisabledAt = &at
	return 1, nil
}

func (m *mockProfileRepo) CheckCodeAvailable(ctx context.Context, code string) (bool, error) {
	if m.checkErr != nil {
		return false, m.checkErr
	}
	if m.checkResult != nil {
		return *m.checkResult, nil
	}
	n, _ := m.CountByCode(ctx, code)
	return n == 0, nil
}

func (m *mockProfileRepo) CountByCode(_ context.Context, code string) (int64, error) {
	var n int64
	for _, p := range m.profiles {
		if p.Code != nil && *p.Code == code {
			n++
		}
	}
	return n, nil
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	classes map[string]*model.Class
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{classes: make(map[string]*model.Class)}
}

func (m *mockClassRepo) Create(_ context.Context, class *model.Class) error {
	if class.ID == "" {
		class.ID = fmt.Sprintf("class-%d", len(m.classes)+1)
	}
	m.classes[class.ID] = class
	return nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.Class, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) List(_ context.Context) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.classes {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockClassRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.classes)), nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.ID == "" {
		subject.ID = "subj-" + subject.Code
	}
	stored := *subject
	m.subjects[subject.ID] = &stored
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	if _, ok := m.subjects[subject.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	stored := *subject
	m.subjects[subject.ID] = &stored
	return nil
}

// ── Mock MeetingRepository ──

type mockMeetingRepo struct {
	created  []repository.CreateMeetingParams
	meetings []model.Meeting
}

func (m *mockMeetingRepo) Create(_ context.Context, p *repository.CreateMeetingParams) error {
	m.created = append(m.created, *p)
	return nil
}

func (m *mockMeetingRepo) ListByClass(_ context.Context, classID string) ([]model.Meeting, error) {
	var result []model.Meeting
	for _, mt := range m.meetings {
		if mt.ClassID == classID {
			result = append(result, mt)
		}
	}
	return result, nil
}

func (m *mockMeetingRepo) Count(_ context.Context) (int64, error) {
	return int64(len(m.meetings)), nil
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	byClass map[string][]string
	classes map[string]*model.Class
}

func newMockEnrollmentRepo() *mockEnrollmentRepo {
	return &mockEnrollmentRepo{byClass: make(map[string][]string), classes: make(map[string]*model.Class)}
}

func (m *mockEnrollmentRepo) AddStudent(_ context.Context, classID, studentID string) error {
	for _, id := range m.byClass[classID] {
		if id == studentID {
			return nil
		}
	}
	m.byClass[classID] = append(m.byClass[classID], studentID)
	return nil
}

func (m *mockEnrollmentRepo) RemoveStudent(_ context.Context, classID, studentID string) error {
	ids := m.byClass[classID]
	for i, id := range ids {
		if id == studentID {
			m.byClass[classID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockEnrollmentRepo) ListStudentIDs(_ context.Context, classID string) ([]string, error) {
	return m.byClass[classID], nil
}

func (m *mockEnrollmentRepo) GetByStudent(_ context.Context, studentID string) (*model.Enrollment, error) {
	for classID, ids := range m.byClass {
		for _, id := range ids {
			if id == studentID {
				return &model.Enrollment{ClassID: classID, StudentID: studentID, Class: m.classes[classID]}, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ImportRowRepository ──

type mockImportRowRepo struct {
	rows       []model.ImportRow
	batchCalls int
}

func (m *mockImportRowRepo) BatchCreate(_ context.Context, rows []model.ImportRow) error {
	m.batchCalls++
	for _, r := range rows {
		r.ID = fmt.Sprintf("imp-%d", len(m.rows)+1)
		m.rows = append(m.rows, r)
	}
	return nil
}

func (m *mockImportRowRepo) ListPending(_ context.Context, classID string) ([]model.ImportRow, error) {
	var result []model.ImportRow
	for _, r := range m.rows {
		if r.ClassID == classID && r.Pending {
			result = append(result, r)
		}
	}
	return result, nil
}

// ── Mock AttendanceRepository ──

type mockAttendanceRepo struct {
	records []model.Attendance
	err     error
}

func (m *mockAttendanceRepo) ListRecentByStudent(_ context.Context, studentID string, limit int) ([]model.Attendance, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []model.Attendance
	for _, r := range m.records {
		if r.StudentID == studentID && len(result) < limit {
			result = append(result, r)
		}
	}
	return result, nil
}

// ── Mock ReportRepository ──

type mockReportRepo struct {
	rows  []model.ReportRow
	calls int
}

func (m *mockReportRepo) ListByMeeting(_ context.Context, classID, meetingID string) ([]model.ReportRow, error) {
	m.calls++
	var result []model.ReportRow
	for _, r := range m.rows {
		if r.ClassID == classID && r.MeetingID == meetingID {
			result = append(result, r)
		}
	}
	return result, nil
}

// ── Mock FunctionInvoker ──

type mockFunctions struct {
	calls    int
	lastName string
	lastBody map[string]interface{}
	lastTok  string
	response string
	err      error
}

func (m *mockFunctions) Invoke(_ context.Context, accessToken, name string, body, out interface{}) error {
	m.calls++
	m.lastName = name
	m.lastTok = accessToken
	if b, ok := body.(map[string]interface{}); ok {
		m.lastBody = b
	}
	if m.err != nil {
		return m.err
	}
	if out == nil || m.response == "" {
		return nil
	}
	return json.Unmarshal([]byte(m.response), out)
}

// ── Mock AccountSheet ──

type mockSheet struct {
	configured bool
	rows       []sheet.AccountRow
	err        error
}

func (m *mockSheet) Configured() bool { return m.configured }

func (m *mockSheet) ListAccounts(_ context.Context) ([]sheet.AccountRow, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

// ── helpers ──

type mockRepos struct {
	profile    *mockProfileRepo
	class      *mockClassRepo
	subject    *mockSubjectRepo
	meeting    *mockMeetingRepo
	enrollment *mockEnrollmentRepo
	importRow  *mockImportRowRepo
	attendance *mockAttendanceRepo
	report     *mockReportRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	m := &mockRepos{
		profile:    newMockProfileRepo(),
		class:      newMockClassRepo(),
		subject:    newMockSubjectRepo(),
		meeting:    &mockMeetingRepo{},
		enrollment: newMockEnrollmentRepo(),
		importRow:  &mockImportRowRepo{},
		attendance: &mockAttendanceRepo{},
		report:     &mockReportRepo{},
	}
	repo := &repository.Repository{
		Profile:    m.profile,
		Class:      m.class,
		Subject:    m.subject,
		Meeting:    m.meeting,
		Enrollment: m.enrollment,
		ImportRow:  m.importRow,
		Attendance: m.attendance,
		Report:     m.report,
	}
	return repo, m
}

func strPtr(s string) *string { return &s }
