package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"societyhub-be/controllers"
	"societyhub-be/models"
	"societyhub-be/services"
	"societyhub-be/services/mocks"
	"societyhub-be/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	router   *gin.Engine
	polls    *mocks.MockPollStore
	meetings *mocks.MockMeetingStore
	tokens   *utils.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	ctrl := gomock.NewController(t)
	ts := &testServer{
		polls:    mocks.NewMockPollStore(ctrl),
		meetings: mocks.NewMockMeetingStore(ctrl),
		tokens:   utils.NewTokenManager("test-secret", time.Hour),
	}
	users := mocks.NewMockUserStore(ctrl)
	files := mocks.NewMockFileStore(ctrl)

	ts.router = SetupRouter(Handlers{
		Auth:          controllers.NewAuthController(services.NewAuthService(users, ts.tokens, 4)),
		Meetings:      controllers.NewMeetingController(services.NewMeetingService(ts.meetings, nil)),
		Polls:         controllers.NewPollController(services.NewPollService(ts.polls, nil)),
		Complaints:    controllers.NewComplaintController(services.NewComplaintService(mocks.NewMockComplaintStore(ctrl), users, files, nil)),
		Notices:       controllers.NewNoticeController(services.NewNoticeService(mocks.NewMockNoticeStore(ctrl), files, nil)),
		Payments:      controllers.NewPaymentController(services.NewPaymentService(mocks.NewMockPaymentStore(ctrl), files)),
		Notifications: controllers.NewNotificationController(services.NewNotificationService(mocks.NewMockNotificationStore(ctrl))),
	}, Options{Tokens: ts.tokens})
	return ts
}

func (ts *testServer) token(t *testing.T, role models.Role) string {
	tok, err := ts.tokens.Generate(primitive.NewObjectID(), role)
	require.NoError(t, err)
	return tok
}

func (ts *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)
	return w
}

func pollMeeting(t *testing.T) *models.Meeting {
	m := models.Meeting{ID: primitive.NewObjectID(), Title: "AGM", Agenda: "Paint", Date: time.Now()}
	m, err := m.AttachPoll("Paint color?", []string{"Red", "Blue"})
	require.NoError(t, err)
	return &m
}

func TestPollRoutes_CreatePoll(t *testing.T) {
	ts := newTestServer(t)
	m := &models.Meeting{ID: primitive.NewObjectID(), Title: "AGM", Agenda: "Paint", Date: time.Now()}
	path := "/api/meetings/" + m.ID.Hex() + "/poll"
	body := gin.H{"question": "Paint color?", "options": []string{"Red", " ", "Blue"}}

	ts.polls.EXPECT().FindByID(gomock.Any(), m.ID).Return(m, nil)
	ts.polls.EXPECT().ReplacePoll(gomock.Any(), m.ID, gomock.Any()).Return(nil)

	w := ts.do(http.MethodPost, path, ts.token(t, models.RoleAdmin), body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{
		"success": true,
		"message": "Poll created successfully",
		"poll": {"question": "Paint color?", "options": ["Red", "Blue"], "totalVotes": 0}
	}`, w.Body.String())

	w = ts.do(http.MethodPost, path, ts.token(t, models.RoleResident), body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = ts.do(http.MethodPost, path, "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPollRoutes_CreatePollValidation(t *testing.T) {
	ts := newTestServer(t)
	m := &models.Meeting{ID: primitive.NewObjectID(), Title: "AGM", Agenda: "Paint", Date: time.Now()}
	ts.polls.EXPECT().FindByID(gomock.Any(), m.ID).Return(m, nil)

	w := ts.do(http.MethodPost, "/api/meetings/"+m.ID.Hex()+"/poll", ts.token(t, models.RoleAdmin),
		gin.H{"question": "Q", "options": []string{"only"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Poll needs at least 2 options"}`, w.Body.String())
}

func TestPollRoutes_Vote(t *testing.T) {
	m := pollMeeting(t)
	path := "/api/meetings/" + m.ID.Hex() + "/vote"

	tests := []struct {
		name       string
		role       models.Role
		body       interface{}
		setup      func(ts *testServer)
		wantStatus int
		wantBody   string
	}{
		{
			name: "recorded",
			role: models.RoleResident,
			body: gin.H{"optionIndex": 0},
			setup: func(ts *testServer) {
				ts.polls.EXPECT().FindByID(gomock.Any(), m.ID).Return(m, nil)
				ts.polls.EXPECT().UpsertBallot(gomock.Any(), m.ID, m.Poll.Revision, gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"success":true,"message":"Vote submitted"}`,
		},
		{
			name:       "missing option index",
			role:       models.RoleResident,
			body:       gin.H{},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "out of range",
			role: models.RoleResident,
			body: gin.H{"optionIndex": 5},
			setup: func(ts *testServer) {
				ts.polls.EXPECT().FindByID(gomock.Any(), m.ID).Return(m, nil)
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Option index 5 is out of range"}`,
		},
		// A meeting without a poll is a missing resource: 404, not 400.
		{
			name: "no poll",
			role: models.RoleResident,
			body: gin.H{"optionIndex": 0},
			setup: func(ts *testServer) {
				bare := m.DetachPoll()
				ts.polls.EXPECT().FindByID(gomock.Any(), m.ID).Return(&bare, nil)
			},
			wantStatus: http.StatusNotFound,
			wantBody:   `{"error":"Poll not available"}`,
		},
		{
			name:       "admins do not vote",
			role:       models.RoleAdmin,
			body:       gin.H{"optionIndex": 0},
			wantStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			if tt.setup != nil {
				tt.setup(ts)
			}
			w := ts.do(http.MethodPost, path, ts.token(t, tt.role), tt.body)
			assert.Equal(t, tt.wantStatus, w.Code, w.Body.String())
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			}
		})
	}
}

func TestPollRoutes_Results(t *testing.T) {
	ts := newTestServer(t)
	m := pollMeeting(t)
	voted, err := m.CastVote(primitive.NewObjectID(), 1)
	require.NoError(t, err)

	ts.polls.EXPECT().FindByID(gomock.Any(), m.ID).Return(&voted, nil)
	w := ts.do(http.MethodGet, "/api/meetings/"+m.ID.Hex()+"/results", ts.token(t, models.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"question":"Paint color?","options":["Red","Blue"],"votes":[0,1]}`, w.Body.String())

	w = ts.do(http.MethodGet, "/api/meetings/"+m.ID.Hex()+"/results", ts.token(t, models.RoleResident), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestPollRoutes_DeleteThenResults(t *testing.T) {
	ts := newTestServer(t)
	m := pollMeeting(t)
	bare := m.DetachPoll()
	admin := ts.token(t, models.RoleAdmin)

	ts.polls.EXPECT().RemovePoll(gomock.Any(), m.ID).Return(nil)
	ts.polls.EXPECT().FindByID(gomock.Any(), m.ID).Return(&bare, nil)

	w := ts.do(http.MethodDelete, "/api/meetings/"+m.ID.Hex()+"/poll", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Results for a removed poll report 404, matching the vote path.
	w = ts.do(http.MethodGet, "/api/meetings/"+m.ID.Hex()+"/results", admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Poll not found"}`, w.Body.String())
}

func TestMeetingRoutes(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.token(t, models.RoleAdmin)

	ts.meetings.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	w := ts.do(http.MethodPost, "/api/meetings", admin, gin.H{"title": "AGM", "agenda": "Budget", "date": "2026-11-01"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"location":"Society Hall"`)

	w = ts.do(http.MethodPost, "/api/meetings", admin, gin.H{"title": "AGM", "agenda": "Budget", "date": "soon"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	m := pollMeeting(t)
	ts.meetings.EXPECT().List(gomock.Any()).Return([]models.Meeting{*m}, nil)
	w = ts.do(http.MethodGet, "/api/meetings", ts.token(t, models.RoleResident), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "userId")
	assert.Contains(t, w.Body.String(), `"totalVotes":0`)

	w = ts.do(http.MethodGet, "/api/meetings/not-an-id", admin, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	missing := primitive.NewObjectID()
	ts.meetings.EXPECT().DeleteByID(gomock.Any(), missing).Return(models.ErrNotFound("Meeting not found"))
	w = ts.do(http.MethodDelete, "/api/meetings/"+missing.Hex(), admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORS(t *testing.T) {
	preflight := func(r *gin.Engine, origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/meetings", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	prod := SetupRouter(Handlers{}, Options{Production: true, FrontendURL: []string{"society.example.com"}})
	w := preflight(prod, "https://society.example.com")
	assert.Equal(t, "https://society.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	w = preflight(prod, "https://evil.example.com")
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	dev := SetupRouter(Handlers{}, Options{})
	w = preflight(dev, "https://anything.example.com")
	assert.Equal(t, "https://anything.example.com", w.Header().Get("Access-Control-Allow-Origin"))
}
