package controllers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/kendall-kelly/order-tracking-api/services"
	"github.com/kendall-kelly/order-tracking-api/tests/testutil"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type controllerFixture struct {
	db         *gorm.DB
	auth       *services.AuthService
	orders     *services.OrderService
	activities *services.ActivityService
}

func newControllerFixture(t *testing.T) *controllerFixture {
	t.Helper()
	db := testutil.NewTestDB(t)
	activities := services.NewActivityService(db)
	return &controllerFixture{
		db:         db,
		auth:       testutil.NewTestAuthService(t, db, testutil.TestConfig()),
		orders:     services.NewOrderService(db, activities),
		activities: activities,
	}
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func performRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "Response should be valid JSON")
	return response
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()
	var response []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "Response should be a JSON array")
	return response
}

func errorCode(t *testing.T, response map[string]interface{}) string {
	t.Helper()
	require.Equal(t, false, response["success"])
	errorData, ok := response["error"].(map[string]interface{})
	require.True(t, ok, "error envelope expected")
	return errorData["code"].(string)
}
