package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/timecalc"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/sqlite"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/sqlite/sqlitetest"
	adjustmentService "github.com/cmlabs-hris/attendance-backend-go/internal/service/adjustment"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/attendance-backend-go/internal/service/employee"
	reportService "github.com/cmlabs-hris/attendance-backend-go/internal/service/report"
	vacationService "github.com/cmlabs-hris/attendance-backend-go/internal/service/vacation"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const handlerTestSecret = "test-secret-key-for-jwt"

var jst = time.FixedZone("JST", 9*60*60)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

type testServer struct {
	router        *chi.Mux
	employeeToken string
	managerToken  string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := sqlitetest.NewDB(t)
	sqlitetest.SeedEmployee(t, db, "emp-1", "E001")

	clock := timecalc.FixedClock{At: time.Date(2024, time.March, 4, 9, 30, 0, 0, jst)}
	tx := sqlite.NewTransactor(db)
	attendanceRepo := sqlite.NewAttendanceRepository(db)
	adjustmentRepo := sqlite.NewAdjustmentRepository(db)
	employeeRepo := sqlite.NewEmployeeRepository(db)
	vacationRepo := sqlite.NewVacationRepository(db)

	monthlySvc := attendanceService.NewMonthlySubmissionService(tx, attendanceRepo, employeeRepo, vacationRepo, clock, jst)
	jwtService := jwt.NewJWTService(handlerTestSecret, "1h")

	router := NewRouter(
		RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}},
		jwtService,
		NewAttendanceHandler(attendanceService.NewAttendanceService(tx, attendanceRepo, employeeRepo, clock, jst), monthlySvc, clock, jst),
		NewMonthlySubmissionHandler(monthlySvc, jst),
		NewAdjustmentHandler(adjustmentService.NewAdjustmentService(tx, adjustmentRepo, attendanceRepo, employeeRepo, clock, jst), jst),
		NewVacationHandler(vacationService.NewVacationService(tx, vacationRepo, employeeRepo, clock, jst), jst),
		NewEmployeeHandler(employeeService.NewEmployeeService(employeeRepo, clock)),
		NewReportHandler(reportService.NewReportService(attendanceRepo, employeeRepo, clock, jst), jst),
	)

	employeeToken, _, err := jwtService.GenerateAccessToken("emp-1", jwt.RoleEmployee)
	require.NoError(t, err)
	managerToken, _, err := jwtService.GenerateAccessToken("mgr-1", jwt.RoleManager)
	require.NoError(t, err)

	return &testServer{router: router, employeeToken: employeeToken, managerToken: managerToken}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_RejectsForeignSignature(t *testing.T) {
	s := newTestServer(t)
	other, _, err := jwt.NewJWTService("another-secret", "1h").GenerateAccessToken("emp-1", jwt.RoleOwner)
	require.NoError(t, err)

	rec := s.do(t, http.MethodGet, "/api/v1/attendance/today", other, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_EchoesRequestID(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/attendance/today", nil)
	req.Header.Set("Authorization", "Bearer "+s.employeeToken)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get(middleware.RequestIDHeader))
}

func TestAttendanceHandler_ClockIn(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", s.employeeToken, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Clock in successful (late 30 min)", env.Message)

	var data map[string]interface{}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "2024-03-04", data["date"])
	assert.Equal(t, "2024-03-04T09:30:00+09:00", data["clock_in"])
	assert.Equal(t, "LATE", data["status"])
	assert.Equal(t, "遅刻", data["status_label"])
	assert.Equal(t, "未申請", data["submission_status_label"])

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", s.employeeToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	env = decode(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "ALREADY_CLOCKED_IN", env.Error.Code)
}

func TestAttendanceHandler_ClockOutWithoutClockIn(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/clock-out", s.employeeToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "NOT_CLOCKED_IN", decode(t, rec).Error.Code)
}

func TestAttendanceHandler_UnknownEmployee(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", s.managerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "EMPLOYEE_NOT_FOUND", decode(t, rec).Error.Code)
}

func TestAttendanceHandler_SubmitMonthlyValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/monthly-submissions", s.employeeToken, map[string]string{"month": "2024-13"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	env := decode(t, rec)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "month")

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/monthly-submissions", s.employeeToken, map[string]string{"month": "2024-02"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NO_RECORDS_FOUND", decode(t, rec).Error.Code)
}

func TestAdmin_RequiresApprover(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/admin/monthly-submissions", s.employeeToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/monthly-submissions", s.managerToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdjustmentFlow(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/adjustment-requests", s.employeeToken, map[string]string{
		"target_date":   "2024-03-01",
		"new_clock_in":  "2024-03-01T09:00:00+09:00",
		"new_clock_out": "2024-03-01T18:00:00+09:00",
		"reason":        "forgot to punch",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		StatusLabel string `json:"status_label"`
	}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &created))
	assert.Equal(t, "PENDING", created.Status)
	assert.Equal(t, "申請中", created.StatusLabel)

	rec = s.do(t, http.MethodGet, "/api/v1/admin/adjustment-requests/pending-count", s.managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"pending_count":1}`, string(decode(t, rec).Data))

	rec = s.do(t, http.MethodPost, "/api/v1/admin/adjustment-requests/"+created.ID+"/approve", s.managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/admin/adjustment-requests/"+created.ID+"/reject", s.managerToken, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "INVALID_STATUS", decode(t, rec).Error.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/attendance/history?month=2024-03", s.employeeToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &history))
	require.Len(t, history, 1)
	assert.Equal(t, "2024-03-01", history[0]["date"])
	assert.Equal(t, "NORMAL", history[0]["status"])
}

func TestAdjustmentHandler_NotFound(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/admin/adjustment-requests/missing", s.managerToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ADJUSTMENT_REQUEST_NOT_FOUND", decode(t, rec).Error.Code)
}

func TestAdjustmentHandler_InvalidBody(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/adjustment-requests", bytes.NewBufferString("{"))
	req.Header.Set("Authorization", "Bearer "+s.employeeToken)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", decode(t, rec).Error.Code)
}

func TestReportHandler_MonthlyExports(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", s.employeeToken, nil).Code)

	rec := s.do(t, http.MethodGet, "/api/v1/admin/reports/monthly/emp-1/2024-03.csv", s.managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attendance-2024-03.csv")
	assert.Contains(t, rec.Body.String(), "E001,2024-03-04,09:30,-,LATE")

	rec = s.do(t, http.MethodGet, "/api/v1/admin/reports/monthly/emp-1/2024-03.pdf", s.managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestReportHandler_Inconsistencies(t *testing.T) {
	s := newTestServer(t)
	require.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/v1/attendance/clock-in", s.employeeToken, nil).Code)

	rec := s.do(t, http.MethodGet, "/api/v1/admin/reports/inconsistencies?start_date=2024-03-01&end_date=2024-03-31", s.managerToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var issues []map[string]interface{}
	require.NoError(t, json.Unmarshal(decode(t, rec).Data, &issues))
	require.Len(t, issues, 2)
	assert.Equal(t, "MISSING_CLOCK_OUT", issues[0]["issue"])
	assert.Equal(t, "退勤打刻漏れ", issues[0]["issue_label"])
	assert.Equal(t, "LATE", issues[1]["issue"])
	assert.EqualValues(t, 30, issues[1]["minutes"])

	rec = s.do(t, http.MethodGet, "/api/v1/admin/reports/inconsistencies?start_date=2024-03-31&end_date=2024-03-01", s.managerToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_DATE_RANGE", decode(t, rec).Error.Code)
}
