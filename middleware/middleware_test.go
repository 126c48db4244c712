package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"kirana/models"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	user := models.User{UserID: "u1234567890", Name: "Ada", IsAdmin: true}

	token, err := GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	require.Equal(t, "u1234567890", claims.UserID)
	require.Equal(t, "Ada", claims.Name)
	require.True(t, claims.IsAdmin)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := ValidateToken("not-a-token")
	require.Error(t, err)

	_, err = ValidateToken("")
	require.Error(t, err)
}

func TestAuthenticateRejectsMissingToken(t *testing.T) {
	called := false
	handle := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/order/mine", nil)
	handle(w, r, nil)

	require.False(t, called)
	require.Equal(t, 401, w.Code)
}

func TestAuthenticatePopulatesContext(t *testing.T) {
	token, err := GenerateToken(models.User{UserID: "u42", Name: "Bo", IsAdmin: false})
	require.NoError(t, err)

	var gotID, gotName string
	var gotAdmin bool
	handle := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotID = GetUserID(r.Context())
		gotName = GetUserName(r.Context())
		gotAdmin = IsAdmin(r.Context())
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/order/mine", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	handle(w, r, nil)

	require.Equal(t, "u42", gotID)
	require.Equal(t, "Bo", gotName)
	require.False(t, gotAdmin)
}

func TestAuthenticateAcceptsQueryToken(t *testing.T) {
	token, err := GenerateToken(models.User{UserID: "u42", Name: "Bo"})
	require.NoError(t, err)

	var gotID string
	handle := Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotID = GetUserID(r.Context())
	})

	w := httptest.NewRecorder()
	r := httptest.NewRequest("GET", "/api/order/updates?token="+token, nil)
	handle(w, r, nil)

	require.Equal(t, "u42", gotID)
}

func TestRequireAdmin(t *testing.T) {
	adminToken, err := GenerateToken(models.User{UserID: "u1", IsAdmin: true})
	require.NoError(t, err)
	userToken, err := GenerateToken(models.User{UserID: "u2", IsAdmin: false})
	require.NoError(t, err)

	called := false
	handle := Authenticate(RequireAdmin(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	}))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("PUT", "/api/order/o1/deliver", nil)
	r.Header.Set("Authorization", "Bearer "+userToken)
	handle(w, r, nil)
	require.False(t, called)
	require.Equal(t, 403, w.Code)

	w = httptest.NewRecorder()
	r = httptest.NewRequest("PUT", "/api/order/o1/deliver", nil)
	r.Header.Set("Authorization", "Bearer "+adminToken)
	handle(w, r, nil)
	require.True(t, called)
}
