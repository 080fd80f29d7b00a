package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/projecto-dev/projecto/db"
	"github.com/projecto-dev/projecto/internal/auth"
	"github.com/projecto-dev/projecto/internal/router"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestServer wires the real router against an in-memory database.
func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")
	require.NoError(t, auth.InitJWTSecret())

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	db.DB = gdb
	require.NoError(t, db.MigrateDatabase())

	return router.NewRouter()
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
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

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func registerUser(t *testing.T, r *gin.Engine, email string, frontend, backend bool) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/accounts", "", gin.H{
		"firstname": "Test",
		"lastname":  "User",
		"email":     email,
		"password":  "password123",
		"frontend":  frontend,
		"backend":   backend,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func loginUser(t *testing.T, r *gin.Engine, email string) (access, refresh string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/token", "", gin.H{
		"email":    email,
		"password": "password123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var pair struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	decode(t, w, &pair)
	require.NotEmpty(t, pair.Access)
	require.NotEmpty(t, pair.Refresh)
	return pair.Access, pair.Refresh
}

func TestRegisterValidation(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/api/accounts", "", gin.H{
		"firstname": "No",
		"lastname":  "Email",
		"password":  "password123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var fieldErrors map[string]string
	decode(t, w, &fieldErrors)
	require.Contains(t, fieldErrors, "email")
}

func TestRegisterNormalizesAndRejectsDuplicates(t *testing.T) {
	r := newTestServer(t)
	registerUser(t, r, "A@X.com", true, false)

	// Same email after normalization.
	w := doJSON(t, r, http.MethodPost, "/api/accounts", "", gin.H{
		"firstname": "Dup",
		"lastname":  "User",
		"email":     "  a@x.com ",
		"password":  "password123",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var fieldErrors map[string]string
	decode(t, w, &fieldErrors)
	require.Equal(t, "Email already exists", fieldErrors["email"])

	// The stored identity is the normalized one.
	access, _ := loginUser(t, r, "a@x.com")

	w = doJSON(t, r, http.MethodGet, "/api/me", access, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile struct {
		Email    string `json:"email"`
		Frontend bool   `json:"frontend"`
	}
	decode(t, w, &profile)
	require.Equal(t, "a@x.com", profile.Email)
	require.True(t, profile.Frontend)
}

func TestAuthRequired(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/projects?email=a@x.com", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/home", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	r := newTestServer(t)
	registerUser(t, r, "a@x.com", false, false)
	access, refresh := loginUser(t, r, "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/logout", access, gin.H{"refresh_token": refresh})
	require.Equal(t, http.StatusResetContent, w.Code)

	// The blacklisted token can no longer be refreshed or revoked again.
	w = doJSON(t, r, http.MethodPost, "/api/token/refresh", "", gin.H{"refresh": refresh})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/logout", access, gin.H{"refresh_token": refresh})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/logout", access, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRefreshTokenFlow(t *testing.T) {
	r := newTestServer(t)
	registerUser(t, r, "a@x.com", false, false)
	_, refresh := loginUser(t, r, "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/token/refresh", "", gin.H{"refresh": refresh})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Access string `json:"access"`
	}
	decode(t, w, &resp)
	require.NotEmpty(t, resp.Access)

	// The new access token works.
	w = doJSON(t, r, http.MethodGet, "/api/me", resp.Access, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

// TestJoinLifecycleScenario walks the full collaboration flow: a creates a
// project, b discovers and requests it, a accepts, and both sides' listings
// and counts reflect the transition.
func TestJoinLifecycleScenario(t *testing.T) {
	r := newTestServer(t)
	registerUser(t, r, "a@x.com", true, false)
	registerUser(t, r, "b@x.com", false, true)
	aToken, _ := loginUser(t, r, "a@x.com")
	bToken, _ := loginUser(t, r, "b@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/projectleads", aToken, gin.H{
		"email":       "a@x.com",
		"projectname": "P",
		"description": "a project",
		"frontend":    true,
		"backend":     false,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// b sees P in discovery.
	w = doJSON(t, r, http.MethodGet, "/api/projects?email=b@x.com", bToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listing []map[string]interface{}
	decode(t, w, &listing)
	require.Len(t, listing, 1)
	require.Equal(t, "P", listing[0]["projectname"])
	require.Equal(t, "a@x.com", listing[0]["owner_email"])

	// b requests to join.
	w = doJSON(t, r, http.MethodPost, "/api/projectrequests", bToken, gin.H{
		"owner_email":  "a@x.com",
		"projectname":  "P",
		"member_email": "b@x.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// P is now hidden from b's discovery.
	w = doJSON(t, r, http.MethodGet, "/api/projects?email=b@x.com", bToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listing)
	require.Empty(t, listing)

	// A duplicate request fails.
	w = doJSON(t, r, http.MethodPost, "/api/projectrequests", bToken, gin.H{
		"owner_email":  "a@x.com",
		"projectname":  "P",
		"member_email": "b@x.com",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// a sees b's pending request.
	w = doJSON(t, r, http.MethodGet, "/api/projectrequestsdisplay?email=a@x.com&projectname=P", aToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listing)
	require.Len(t, listing, 1)
	require.Equal(t, "b@x.com", listing[0]["email"])

	// a accepts b.
	w = doJSON(t, r, http.MethodPost, "/api/projectmembers", aToken, gin.H{
		"owner":       "a@x.com",
		"projectname": "P",
		"email":       "b@x.com",
		"message":     "welcome",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// b's joined listing shows P.
	w = doJSON(t, r, http.MethodGet, "/api/joinedprojects?email=b@x.com", bToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listing)
	require.Len(t, listing, 1)
	require.Equal(t, "P", listing[0]["projectname"])

	// The members display shows b.
	w = doJSON(t, r, http.MethodGet, "/api/projectmembersdisplay?email=a@x.com&projectname=P", aToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listing)
	require.Len(t, listing, 1)
	require.Equal(t, "b@x.com", listing[0]["member_email"])

	// b has no pending requests left.
	w = doJSON(t, r, http.MethodGet, "/api/pendingprojects?email=b@x.com", bToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listing)
	require.Empty(t, listing)

	// Counts for both sides.
	var counts struct {
		Created int64 `json:"createdprojects"`
		Joined  int64 `json:"joinedprojects"`
		Pending int64 `json:"pendingrequests"`
	}

	w = doJSON(t, r, http.MethodGet, "/api/projectcount?email=a@x.com", aToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &counts)
	require.EqualValues(t, 1, counts.Created)
	require.EqualValues(t, 0, counts.Joined)
	require.EqualValues(t, 0, counts.Pending)

	w = doJSON(t, r, http.MethodGet, "/api/projectcount?email=b@x.com", bToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &counts)
	require.EqualValues(t, 0, counts.Created)
	require.EqualValues(t, 1, counts.Joined)
	require.EqualValues(t, 0, counts.Pending)
}

func TestProjectCountErrors(t *testing.T) {
	r := newTestServer(t)
	registerUser(t, r, "a@x.com", false, false)
	access, _ := loginUser(t, r, "a@x.com")

	w := doJSON(t, r, http.MethodGet, "/api/projectcount?email=unknown@x.com", access, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/projectcount", access, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateProjectDuplicateName(t *testing.T) {
	r := newTestServer(t)
	registerUser(t, r, "a@x.com", false, false)
	access, _ := loginUser(t, r, "a@x.com")

	body := gin.H{
		"email":       "a@x.com",
		"projectname": "P",
		"description": "first",
	}

	w := doJSON(t, r, http.MethodPost, "/api/projectleads", access, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/projectleads", access, body)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var fieldErrors map[string]string
	decode(t, w, &fieldErrors)
	require.Contains(t, fieldErrors, "projectname")
}

func TestCreateProjectUnknownOwner(t *testing.T) {
	r := newTestServer(t)
	registerUser(t, r, "a@x.com", false, false)
	access, _ := loginUser(t, r, "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/projectleads", access, gin.H{
		"email":       "ghost@x.com",
		"projectname": "P",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var fieldErrors map[string]string
	decode(t, w, &fieldErrors)
	require.Contains(t, fieldErrors, "email")
}

func TestListOwnedProjectsDefaultsToSessionUser(t *testing.T) {
	r := newTestServer(t)
	registerUser(t, r, "a@x.com", false, false)
	access, _ := loginUser(t, r, "a@x.com")

	w := doJSON(t, r, http.MethodPost, "/api/projectleads", access, gin.H{
		"email":       "a@x.com",
		"projectname": "P",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// No email param: falls back to the authenticated user.
	w = doJSON(t, r, http.MethodGet, "/api/projectleads", access, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var listing []map[string]interface{}
	decode(t, w, &listing)
	require.Len(t, listing, 1)
	require.Equal(t, "P", listing[0]["projectname"])

	// Unknown owner email: empty list, not an error.
	w = doJSON(t, r, http.MethodGet, "/api/projectleads?email=ghost@x.com", access, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &listing)
	require.Empty(t, listing)
}
