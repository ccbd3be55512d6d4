package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus_hub/internal/config"
	"campus_hub/internal/controllers"
	"campus_hub/internal/identity"
	"campus_hub/internal/models"
	"campus_hub/internal/policy"
	"campus_hub/internal/realtime"
	"campus_hub/internal/routes"
	"campus_hub/internal/store"
	"campus_hub/internal/testutil"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type api struct {
	t     *testing.T
	r     *gin.Engine
	store *store.Store
}

func newAPI(t *testing.T, cfg *config.Config, rules policy.Rules) *api {
	t.Helper()
	db := testutil.OpenDB(t)
	st := store.New(db, rules)
	ids := identity.New(st, "test-secret", time.Hour)
	hub := realtime.NewEmergencyHub()
	t.Cleanup(hub.Close)
	if cfg == nil {
		cfg = &config.Config{CORSOrigins: []string{"http://localhost:5173"}}
	}
	h := controllers.New(st, ids, hub)
	return &api{t: t, r: routes.SetupRouter(cfg, h, ids, io.Discard), store: st}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func (a *api) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	a.t.Helper()
	var rdr io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	require.NoError(t, json.Unmarshal(env.Data, v), w.Body.String())
}

// signup registers a user and returns the token and user id.
func (a *api) signup(email, name string) (string, uuid.UUID) {
	a.t.Helper()
	w := a.do(http.MethodPost, "/api/auth/signup", "", gin.H{"email": email, "password": "secret123", "name": name})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	var res identity.Result
	require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Token, res.Session.UserID
}

func (a *api) admin(email string) string {
	a.t.Helper()
	token, id := a.signup(email, "Admin")
	require.NoError(a.t, a.store.GrantRole(context.Background(), id, models.RoleAdmin))
	return token
}

func TestSignup_DerivesProfileAndSingleRole(t *testing.T) {
	a := newAPI(t, nil, policy.Rules{})
	token, id := a.signup("amina@campus.edu", "Amina")

	w := a.do(http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var p models.Profile
	decode(t, w, &p)
	assert.Equal(t, id, p.UserID)
	assert.Equal(t, "Amina", p.Name)
	assert.Equal(t, "amina@campus.edu", p.Email)

	w = a.do(http.MethodGet, "/api/profile/roles", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var roles []models.UserRole
	decode(t, w, &roles)
	require.Len(t, roles, 1)
	assert.Equal(t, models.RoleUser, roles[0].Role)

	w = a.do(http.MethodPatch, "/api/profile", token, gin.H{"name": "Amina K."})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &p)
	assert.Equal(t, "Amina K.", p.Name)
}

func TestAuth_Flow(t *testing.T) {
	a := newAPI(t, nil, policy.Rules{})
	token, _ := a.signup("ben@campus.edu", "")

	w := a.do(http.MethodPost, "/api/auth/signup", "", gin.H{"email": "ben@campus.edu", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ben@campus.edu", "password": "wrong-one"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "ben@campus.edu", "password": "secret123"})
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/api/auth/session", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ben@campus.edu")

	w = a.do(http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = a.do(http.MethodGet, "/api/auth/session", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTravelPost_AppearsFirstOnDashboard(t *testing.T) {
	a := newAPI(t, nil, policy.Rules{})
	alice, _ := a.signup("alice@campus.edu", "Alice")
	bob, _ := a.signup("bob@campus.edu", "Bob")

	w := a.do(http.MethodPost, "/api/travel-posts", bob, gin.H{
		"from_location": "Dorm", "to_location": "Lab", "travel_date": "2025-05-01", "travel_time": "09:00", "mode": "walk",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPost, "/api/travel-posts", alice, gin.H{
		"from_location": "Library", "to_location": "Gym", "travel_date": "2025-05-01", "travel_time": "14:00", "mode": "bike",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var post models.TravelPost
	decode(t, w, &post)
	assert.Equal(t, models.TravelActive, post.Status)

	w = a.do(http.MethodGet, "/api/dashboard", bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dash struct {
		TravelPosts        []models.TravelPost `json:"travel_posts"`
		OpenEmergencyCount *int64              `json:"open_emergency_count"`
	}
	decode(t, w, &dash)
	require.Len(t, dash.TravelPosts, 2)
	assert.Equal(t, post.ID, dash.TravelPosts[0].ID)
	assert.Nil(t, dash.OpenEmergencyCount)

	w = a.do(http.MethodPatch, "/api/travel-posts/"+post.ID.String(), bob, gin.H{"mode": "car"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = a.do(http.MethodGet, "/api/travel-posts/"+post.ID.String(), bob, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTravelPost_Validation(t *testing.T) {
	a := newAPI(t, nil, policy.Rules{})
	token, _ := a.signup("val@campus.edu", "")

	cases := []gin.H{
		{"from_location": "A", "to_location": "B", "travel_date": "01/05/2025", "travel_time": "14:00", "mode": "bike"},
		{"from_location": "A", "to_location": "B", "travel_date": "2025-05-01", "travel_time": "2pm", "mode": "bike"},
		{"from_location": "A", "to_location": "B", "travel_date": "2025-05-01", "travel_time": "14:00", "mode": "rocket"},
		{"to_location": "B", "travel_date": "2025-05-01", "travel_time": "14:00", "mode": "bike"},
	}
	for _, body := range cases {
		w := a.do(http.MethodPost, "/api/travel-posts", token, body)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
	}

	w := a.do(http.MethodGet, "/api/travel-posts/not-a-uuid", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = a.do(http.MethodGet, "/api/travel-posts?limit=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEmergency_ResolveScenario(t *testing.T) {
	a := newAPI(t, nil, policy.Rules{})
	student, _ := a.signup("student@campus.edu", "")
	other, _ := a.signup("other@campus.edu", "")
	adminToken := a.admin("admin@campus.edu")

	w := a.do(http.MethodPost, "/api/emergencies", student, gin.H{"reason": "medical", "location": "Dorm B"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var e models.EmergencyRequest
	decode(t, w, &e)
	assert.Equal(t, models.EmergencyOpen, e.Status)
	path := "/api/emergencies/" + e.ID.String()

	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, path, other, nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, path+"/resolve", student, nil).Code)
	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, path+"/resolve", other, nil).Code)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodGet, "/api/admin/emergencies", student, nil).Code)
	w = a.do(http.MethodGet, "/api/admin/emergencies", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var queue []models.EmergencyRequest
	decode(t, w, &queue)
	require.Len(t, queue, 1)

	w = a.do(http.MethodGet, "/api/dashboard", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var dash struct {
		OpenEmergencyCount *int64 `json:"open_emergency_count"`
	}
	decode(t, w, &dash)
	require.NotNil(t, dash.OpenEmergencyCount)
	assert.EqualValues(t, 1, *dash.OpenEmergencyCount)

	w = a.do(http.MethodPost, path+"/resolve", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &e)
	assert.Equal(t, models.EmergencyResolved, e.Status)
	require.NotNil(t, e.ResolvedAt)
	require.NotNil(t, e.ResolvedBy)

	w = a.do(http.MethodGet, path, student, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &e)
	assert.Equal(t, models.EmergencyResolved, e.Status)

	w = a.do(http.MethodPost, "/api/emergencies", student, gin.H{"reason": "boredom", "location": "Dorm B"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrand_HelperCompletion(t *testing.T) {
	for _, allow := range []bool{false, true} {
		a := newAPI(t, nil, policy.Rules{AllowHelperCompletion: allow})
		owner, _ := a.signup("owner@campus.edu", "")
		helper, helperID := a.signup("helper@campus.edu", "")

		w := a.do(http.MethodPost, "/api/errands", owner, gin.H{"title": "Pick up parcel", "reward": "a coffee"})
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		var errand models.ErrandRequest
		decode(t, w, &errand)

		w = a.do(http.MethodPost, "/api/errands/"+errand.ID.String()+"/complete", helper, nil)
		if !allow {
			assert.Equal(t, http.StatusForbidden, w.Code)
			w = a.do(http.MethodPost, "/api/errands/"+errand.ID.String()+"/complete", owner, nil)
			require.Equal(t, http.StatusOK, w.Code)
			continue
		}
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		decode(t, w, &errand)
		assert.Equal(t, models.ErrandCompleted, errand.Status)
		require.NotNil(t, errand.CompletedBy)
		assert.Equal(t, helperID, *errand.CompletedBy)

		late, _ := a.signup("late@campus.edu", "")
		w = a.do(http.MethodPost, "/api/errands/"+errand.ID.String()+"/complete", late, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = a.do(http.MethodGet, "/api/errands/"+errand.ID.String(), owner, nil)
		require.Equal(t, http.StatusOK, w.Code)
		decode(t, w, &errand)
		require.NotNil(t, errand.CompletedBy)
		assert.Equal(t, helperID, *errand.CompletedBy)
	}
}

func TestCarpool_SeatsAndRoute(t *testing.T) {
	a := newAPI(t, nil, policy.Rules{})
	driver, _ := a.signup("driver@campus.edu", "")
	rider, _ := a.signup("rider@campus.edu", "")

	w := a.do(http.MethodPost, "/api/carpools", driver, gin.H{
		"from_location": "Main Gate", "to_location": "Airport",
		"departure_date": "2025-06-01", "departure_time": "07:30",
		"seats_available": 3, "price_per_seat": "200",
		"route_geometry": json.RawMessage(`{"type":"LineString","coordinates":[[36.8219,-1.2921],[36.8172,-1.2864]]}`),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var ride struct {
		models.CarpoolRide
		RouteGeometry json.RawMessage `json:"route_geometry"`
	}
	decode(t, w, &ride)
	assert.JSONEq(t, `{"type":"LineString","coordinates":[[36.8219,-1.2921],[36.8172,-1.2864]]}`, string(ride.RouteGeometry))
	path := "/api/carpools/" + ride.ID.String()

	w = a.do(http.MethodPatch, path, driver, gin.H{"seats_taken": 5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &ride)
	assert.Equal(t, 3, ride.SeatsAvailable)
	assert.Equal(t, 5, ride.SeatsTaken)

	w = a.do(http.MethodPatch, path, driver, gin.H{"route_geometry": nil})
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &ride)
	assert.Equal(t, "null", string(ride.RouteGeometry))

	w = a.do(http.MethodPatch, path, driver, gin.H{"route_geometry": json.RawMessage(`{"type":"Polygon","coordinates":[]}`)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodPost, path+"/complete", rider, nil).Code)
	w = a.do(http.MethodPost, path+"/complete", driver, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &ride)
	assert.Equal(t, models.RideCompleted, ride.Status)

	assert.Equal(t, http.StatusForbidden, a.do(http.MethodDelete, path, rider, nil).Code)
	assert.Equal(t, http.StatusNoContent, a.do(http.MethodDelete, path, driver, nil).Code)
	assert.Equal(t, http.StatusNotFound, a.do(http.MethodGet, path, driver, nil).Code)
}

func TestActivity_AnonymousAndOwn(t *testing.T) {
	a := newAPI(t, nil, policy.Rules{})
	token, id := a.signup("log@campus.edu", "")

	w := a.do(http.MethodPost, "/api/activity", "", gin.H{"action_type": "view", "entity_type": "page"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var entry models.ActivityLog
	decode(t, w, &entry)
	assert.Nil(t, entry.UserID)

	w = a.do(http.MethodGet, "/api/activity", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var entries []models.ActivityLog
	decode(t, w, &entries)
	assert.Empty(t, entries)

	w = a.do(http.MethodGet, "/api/activity?action_type=sign_up", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &entries)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].UserID)
	assert.Equal(t, id, *entries[0].UserID)
}

func TestAnonymousReads(t *testing.T) {
	a := newAPI(t, nil, policy.Rules{})
	token, _ := a.signup("poster@campus.edu", "")

	w := a.do(http.MethodPost, "/api/errands", token, gin.H{"title": "Print notes"})
	require.Equal(t, http.StatusCreated, w.Code)
	var errand models.ErrandRequest
	decode(t, w, &errand)

	w = a.do(http.MethodGet, "/api/errands", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var errands []models.ErrandRequest
	decode(t, w, &errands)
	require.Len(t, errands, 1)
	assert.Equal(t, errand.ID, errands[0].ID)

	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/errands/"+errand.ID.String(), "", nil).Code)
	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/api/carpools", "", nil).Code)

	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodPost, "/api/errands", "", gin.H{"title": "x"}).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodPost, "/api/errands/"+errand.ID.String()+"/complete", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, a.do(http.MethodGet, "/api/travel-posts", "", nil).Code)
}

func TestAPIKeyGate(t *testing.T) {
	a := newAPI(t, &config.Config{APIKey: "anon-key", CORSOrigins: []string{"http://localhost:5173"}}, policy.Rules{})

	w := a.do(http.MethodPost, "/api/auth/login", "", gin.H{"email": "x@campus.edu", "password": "secret123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "api key")

	assert.Equal(t, http.StatusOK, a.do(http.MethodGet, "/health", "", nil).Code)
}
