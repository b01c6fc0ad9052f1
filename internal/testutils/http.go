package testutils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPTestSuite wraps a bare gin router for handler tests
type HTTPTestSuite struct {
	Router *gin.Engine
}

// ErrorBody mirrors the JSON error envelope written by the API handlers
type ErrorBody struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Code      string `json:"code"`
	Attempts  int    `json:"attempts"`
	RequestID string `json:"request_id"`
}

// SetupHTTPTest initializes Gin for testing
func SetupHTTPTest() *HTTPTestSuite {
	gin.SetMode(gin.TestMode)
	return &HTTPTestSuite{Router: gin.New()}
}

// MakeRequest sends body as JSON to the router
func (suite *HTTPTestSuite) MakeRequest(method, url string, body interface{}) *httptest.ResponseRecorder {
	return suite.MakeRequestWithHeaders(method, url, body, nil)
}

// MakeRequestWithHeaders sends body as JSON with extra headers, such as a bearer token
func (suite *HTTPTestSuite) MakeRequestWithHeaders(method, url string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody io.Reader
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	}

	req := httptest.NewRequest(method, url, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	suite.Router.ServeHTTP(recorder, req)
	return recorder
}

// AssertJSONResponse asserts the response status and unmarshals the JSON body into target
func AssertJSONResponse(t *testing.T, recorder *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	t.Helper()
	assert.Equal(t, expectedStatus, recorder.Code)
	assert.Equal(t, "application/json; charset=utf-8", recorder.Header().Get("Content-Type"))

	if target != nil {
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), target))
	}
}

// AssertErrorResponse asserts an error envelope whose message contains expectedMessage
func AssertErrorResponse(t *testing.T, recorder *httptest.ResponseRecorder, expectedStatus int, expectedMessage string) ErrorBody {
	t.Helper()
	var body ErrorBody
	AssertJSONResponse(t, recorder, expectedStatus, &body)
	if expectedMessage != "" {
		assert.Contains(t, body.Error, expectedMessage)
	}
	return body
}

// AssertErrorKind asserts an error envelope carrying a bootstrap failure of the given kind
func AssertErrorKind(t *testing.T, recorder *httptest.ResponseRecorder, expectedStatus int, expectedKind string) ErrorBody {
	t.Helper()
	body := AssertErrorResponse(t, recorder, expectedStatus, "")
	assert.Equal(t, expectedKind, body.Kind)
	assert.NotEmpty(t, body.Error)
	return body
}
