package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/order-tracking-api/routes"
	"github.com/kendall-kelly/order-tracking-api/services"
	"github.com/kendall-kelly/order-tracking-api/tests/testutil"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// serverSuite starts the full application on a real listener for every test
type serverSuite struct {
	suite.Suite
	server *httptest.Server
	db     *gorm.DB
}

// SetupSuite runs once before all tests
func (s *serverSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	testutil.MustSetTestEnvironment(s.T())
}

// SetupTest starts a server over an empty database
func (s *serverSuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	router, err := routes.NewRouter(testutil.TestConfig(), s.db, services.WithPasswordCost(bcrypt.MinCost))
	s.Require().NoError(err)
	s.server = httptest.NewServer(router)
}

// TearDownTest stops the server
func (s *serverSuite) TearDownTest() {
	s.server.Close()
}

// makeRequest sends a JSON request and decodes the JSON response into out when out is non-nil
func (s *serverSuite) makeRequest(method, path string, body interface{}, token string, out interface{}) *http.Response {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, s.server.URL+path, &buf)
	s.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	if out != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (s *serverSuite) login(username, password string) string {
	var token services.Token
	resp := s.makeRequest(http.MethodPost, "/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, "", &token)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal("bearer", token.TokenType)
	return token.AccessToken
}
