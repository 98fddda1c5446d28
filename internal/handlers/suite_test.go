package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"time"

	portssvc "github.com/SscSPs/erp_ledger/internal/core/ports/services"
	"github.com/SscSPs/erp_ledger/internal/dto"
	"github.com/SscSPs/erp_ledger/internal/handlers"
	"github.com/SscSPs/erp_ledger/internal/middleware"
	"github.com/SscSPs/erp_ledger/internal/platform/config"
	"github.com/SscSPs/erp_ledger/internal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
)

const (
	testSecret = "test-secret-key-that-is-long-enough"
	testIssuer = "erp-ledger-test"
	testOrgID  = "org-1"
	testUserID = "user-1"
)

// dataEnvelope mirrors dto.DataEnvelope with a raw payload.
type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// handlerSuite wires the real router and middleware chain around mocked services.
type handlerSuite struct {
	suite.Suite
	router         *gin.Engine
	production     bool
	accountService *MockAccountService
	journalService *MockJournalService
	entryService   *MockEntryService
	reportService  *MockReportingService
}

func (s *handlerSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.accountService = new(MockAccountService)
	s.journalService = new(MockJournalService)
	s.entryService = new(MockEntryService)
	s.reportService = new(MockReportingService)

	cfg := &config.Config{
		JWTSecret:    testSecret,
		JWTIssuer:    testIssuer,
		IsProduction: s.production,
	}
	services := &portssvc.ServiceContainer{
		Account:   s.accountService,
		Journal:   s.journalService,
		Entry:     s.entryService,
		Reporting: s.reportService,
	}

	s.router = gin.New()
	handlers.RegisterRoutes(s.router, cfg, services, handlers.Infrastructure{})
}

func (s *handlerSuite) TearDownTest() {
	s.accountService.AssertExpectations(s.T())
	s.journalService.AssertExpectations(s.T())
	s.entryService.AssertExpectations(s.T())
	s.reportService.AssertExpectations(s.T())
}

// generateTestToken creates a JWT granting testOrgID with every capability.
func (s *handlerSuite) generateTestToken(userID string) string {
	token, err := utils.GenerateJWT(userID, testSecret, testIssuer,
		[]string{testOrgID}, []string{"accounting:read", "accounting:write", "accounting:post"}, time.Hour)
	if err != nil {
		s.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

// do sends an authenticated request scoped to testOrgID.
func (s *handlerSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		var err error
		payload, err = json.Marshal(b)
		s.Require().NoError(err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer "+s.generateTestToken(testUserID))
	req.Header.Set(middleware.OrganizationHeader, testOrgID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// decodeData unmarshals the data envelope of w into out.
func (s *handlerSuite) decodeData(w *httptest.ResponseRecorder, out any) {
	var env dataEnvelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	s.Require().NoError(json.Unmarshal(env.Data, out), string(env.Data))
}

// assertError checks the status and code of an error envelope and returns its message.
func (s *handlerSuite) assertError(w *httptest.ResponseRecorder, status int, code string) string {
	s.Equal(status, w.Code, w.Body.String())
	var env dto.ErrorEnvelope
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	s.Equal(code, env.Error.Code)
	s.NotEmpty(env.Error.Message)
	return env.Error.Message
}
