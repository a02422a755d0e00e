//go:build unit || e2e

package authtest

import (
	"net/http"
	"testing"

	"immoview/internal/handler/dto/request"
	"immoview/internal/handler/dto/response"
	"immoview/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// LoginUser authenticates through the public login endpoint and returns the
// access token for use in Authorization headers.
func LoginUser(t *testing.T, router *gin.Engine, email, plainPassword string) string {
	t.Helper()

	w := httptest.PerformRequest(t, router, http.MethodPost, "/api/auth/login",
		request.LoginRequest{Email: email, Password: plainPassword}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var body response.LoginResponse
	err := httptest.DecodeResponseBody(t, w.Body, &body)
	require.NoError(t, err)
	require.NotEmpty(t, body.AccessToken)

	return body.AccessToken
}
