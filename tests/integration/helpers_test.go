package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/order-tracking-api/models"
	"github.com/kendall-kelly/order-tracking-api/routes"
	"github.com/kendall-kelly/order-tracking-api/services"
	"github.com/kendall-kelly/order-tracking-api/tests/testutil"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// apiSuite runs every test against the full router and a fresh in-memory database
type apiSuite struct {
	suite.Suite
	router *gin.Engine
	db     *gorm.DB
	auth   *services.AuthService
}

// SetupSuite runs once before all tests
func (s *apiSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	testutil.MustSetTestEnvironment(s.T())
}

// SetupTest runs before each test
func (s *apiSuite) SetupTest() {
	cfg := testutil.TestConfig()
	s.db = testutil.NewTestDB(s.T())
	s.auth = testutil.NewTestAuthService(s.T(), s.db, cfg)

	router, err := routes.NewRouter(cfg, s.db, services.WithPasswordCost(bcrypt.MinCost))
	s.Require().NoError(err)
	s.router = router
}

func (s *apiSuite) request(method, path string, body interface{}, authHeader string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *apiSuite) decode(w *httptest.ResponseRecorder, out interface{}) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), out), "Response should be valid JSON: %s", w.Body.String())
}

// register creates a user through the HTTP API and returns a bearer header from a real login
func (s *apiSuite) register(username string, role models.Role) string {
	w := s.request(http.MethodPost, "/auth/register", map[string]interface{}{
		"username": username,
		"password": testutil.TestPassword,
		"role":     role,
	}, "")
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w = s.request(http.MethodPost, "/auth/login", map[string]interface{}{
		"username": username,
		"password": testutil.TestPassword,
	}, "")
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var token services.Token
	s.decode(w, &token)
	return "Bearer " + token.AccessToken
}

func (s *apiSuite) errorCode(w *httptest.ResponseRecorder) string {
	var envelope struct {
		Success bool `json:"success"`
		Error   struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	s.decode(w, &envelope)
	s.False(envelope.Success)
	return envelope.Error.Code
}
