package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surveymaster/server/internal/auth"
	"github.com/surveymaster/server/internal/handler"
	"github.com/surveymaster/server/internal/models"
	"github.com/surveymaster/server/internal/repository"
	"github.com/surveymaster/server/internal/service"
)

const testSecret = "router-test-secret"

type fixture struct {
	router  *chi.Mux
	users   *repository.MemoryUsers
	surveys *repository.MemorySurveys
}

type fakeIntents struct{}

func (fakeIntents) CreateIntent(_ context.Context, _ int64) (string, error) {
	return "pi_test_secret", nil
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := repository.NewMemoryUsers()
	surveys := repository.NewMemorySurveys()
	votes := repository.NewMemoryVotes()
	payments := repository.NewMemoryPayments()

	userSvc := service.NewUserService(users)
	surveySvc := service.NewSurveyService(surveys)
	voteSvc := service.NewVoteService(votes, surveys)
	paymentSvc := service.NewPaymentService(payments, fakeIntents{})

	r := New(
		testSecret,
		users,
		handler.NewAuthHandler(testSecret),
		handler.NewUserHandler(userSvc),
		handler.NewSurveyHandler(surveySvc),
		handler.NewVoteHandler(voteSvc),
		handler.NewPaymentHandler(paymentSvc),
	)
	return &fixture{router: r, users: users, surveys: surveys}
}

func (f *fixture) addUser(t *testing.T, email, role string) string {
	t.Helper()
	id, err := f.users.Insert(context.Background(), &models.User{Email: email, Role: role})
	require.NoError(t, err)
	return id
}

func (f *fixture) addSurvey(t *testing.T, title, status string) string {
	t.Helper()
	id, err := f.surveys.Insert(context.Background(), &models.Survey{
		Title: title, Status: status, CreatedBy: "owner@example.com",
	})
	require.NoError(t, err)
	return id
}

func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func token(t *testing.T, email string) string {
	t.Helper()
	tok, err := auth.GenerateToken(testSecret, email)
	require.NoError(t, err)
	return tok
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestLiveness(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Survey Master is Running", rec.Body.String())
}

func TestIssueToken(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodPost, "/jwt", "", map[string]string{"email": "alice@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	decode(t, rec, &resp)
	claims, err := auth.ValidateToken(testSecret, resp["token"])
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestRegisterIdempotent(t *testing.T) {
	f := newFixture(t)

	rec := f.do(t, http.MethodPost, "/users", "", map[string]string{"email": "alice@example.com"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var first service.RegisterResult
	decode(t, rec, &first)
	assert.NotNil(t, first.InsertedID)

	rec = f.do(t, http.MethodPost, "/users", "", map[string]string{"email": "alice@example.com"})
	require.Equal(t, http.StatusOK, rec.Code)
	var second service.RegisterResult
	decode(t, rec, &second)
	assert.Nil(t, second.InsertedID)
	assert.Equal(t, "User already exist!", second.Message)
}

func TestVoteScenario(t *testing.T) {
	// register -> issue credential -> cast yes -> tally and check reflect it
	// -> second cast is a conflict and changes nothing.
	f := newFixture(t)
	f.addUser(t, "alice@example.com", models.RoleNone)
	surveyID := f.addSurvey(t, "S1", models.StatusPublish)
	tok := token(t, "alice@example.com")

	rec := f.do(t, http.MethodPost, "/vote", tok, map[string]string{
		"surveyId": surveyID, "choice": models.ChoiceYes,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	survey, err := f.surveys.FindByID(context.Background(), surveyID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), survey.YesOption)
	assert.Equal(t, int64(0), survey.NoOption)

	rec = f.do(t, http.MethodGet, "/vote/check/"+surveyID+"/alice@example.com", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var check map[string]bool
	decode(t, rec, &check)
	assert.True(t, check["hasVoted"])

	rec = f.do(t, http.MethodPost, "/vote", tok, map[string]string{
		"surveyId": surveyID, "choice": models.ChoiceNo,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	survey, err = f.surveys.FindByID(context.Background(), surveyID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), survey.YesOption)
	assert.Equal(t, int64(0), survey.NoOption)
}

func TestVoteRequiresCredential(t *testing.T) {
	f := newFixture(t)
	surveyID := f.addSurvey(t, "S1", models.StatusPublish)

	rec := f.do(t, http.MethodPost, "/vote", "", map[string]string{
		"surveyId": surveyID, "choice": models.ChoiceYes,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVoteRejectsSpoofedEmail(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "mallory@example.com", models.RoleNone)
	surveyID := f.addSurvey(t, "S1", models.StatusPublish)

	rec := f.do(t, http.MethodPost, "/vote", token(t, "mallory@example.com"), map[string]string{
		"surveyId": surveyID, "userEmail": "alice@example.com", "choice": models.ChoiceYes,
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestVoteCheckUnknownPairIsFalse(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/vote/check/64f000000000000000000000/nobody@example.com", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var check map[string]bool
	decode(t, rec, &check)
	assert.False(t, check["hasVoted"])
}

func TestPublishedFilterAndDetail(t *testing.T) {
	f := newFixture(t)
	published := f.addSurvey(t, "Published", models.StatusPublish)
	draft := f.addSurvey(t, "Draft", models.StatusDraft)

	rec := f.do(t, http.MethodGet, "/surveys", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []models.Survey
	decode(t, rec, &listed)
	require.Len(t, listed, 1)
	assert.Equal(t, published, listed[0].ID.Hex())

	// The draft is absent from the listing but reachable by id.
	rec = f.do(t, http.MethodGet, "/surveys/surveyDetails/"+draft, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var detail models.Survey
	decode(t, rec, &detail)
	assert.Equal(t, "Draft", detail.Title)
}

func TestSurveyCreateRequiresSurveyorRole(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "admin@example.com", models.RoleAdmin)
	f.addUser(t, "maker@example.com", models.RoleSurveyor)

	body := map[string]string{"title": "New survey", "status": models.StatusDraft}

	// Admin is rejected: the role check is an exact match.
	rec := f.do(t, http.MethodPost, "/surveys", token(t, "admin@example.com"), body)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPost, "/surveys", token(t, "maker@example.com"), body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	decode(t, rec, &resp)
	survey, err := f.surveys.FindByID(context.Background(), resp["insertedId"])
	require.NoError(t, err)
	assert.Equal(t, "maker@example.com", survey.CreatedBy)
	assert.Equal(t, int64(0), survey.YesOption)
}

func TestUserListIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "admin@example.com", models.RoleAdmin)
	f.addUser(t, "alice@example.com", models.RoleNone)

	rec := f.do(t, http.MethodGet, "/users", token(t, "alice@example.com"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/users", token(t, "admin@example.com"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []models.User
	decode(t, rec, &users)
	assert.Len(t, users, 2)
}

func TestRoleProbeIsSelfOnly(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "admin@example.com", models.RoleAdmin)
	f.addUser(t, "alice@example.com", models.RoleNone)

	// Even an admin cannot probe someone else's role membership.
	rec := f.do(t, http.MethodGet, "/users/admin/alice@example.com", token(t, "admin@example.com"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodGet, "/users/admin/admin@example.com", token(t, "admin@example.com"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var probe map[string]bool
	decode(t, rec, &probe)
	assert.True(t, probe["admin"])
}

func TestPromoteAndRoleChangeAreAdminOnly(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "admin@example.com", models.RoleAdmin)
	targetID := f.addUser(t, "alice@example.com", models.RoleNone)

	rec := f.do(t, http.MethodPatch, "/users/admin/"+targetID, token(t, "alice@example.com"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPatch, "/users/admin/"+targetID, token(t, "admin@example.com"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	u, err := f.users.FindByID(context.Background(), targetID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleSurveyor, u.Role)

	rec = f.do(t, http.MethodPatch, "/users/alice@example.com", token(t, "admin@example.com"),
		map[string]string{"role": models.RoleProUser})
	require.Equal(t, http.StatusOK, rec.Code)

	u, err = f.users.FindByID(context.Background(), targetID)
	require.NoError(t, err)
	assert.Equal(t, models.RoleProUser, u.Role)
}

func TestPaymentFlow(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "admin@example.com", models.RoleAdmin)
	f.addUser(t, "alice@example.com", models.RoleNone)
	alice := token(t, "alice@example.com")

	rec := f.do(t, http.MethodPost, "/create-payment-intent", alice, map[string]float64{"price": 19.99})
	require.Equal(t, http.StatusOK, rec.Code)
	var intent map[string]string
	decode(t, rec, &intent)
	assert.Equal(t, "pi_test_secret", intent["clientSecret"])

	rec = f.do(t, http.MethodPost, "/payments", alice, map[string]any{"amount": 1999})
	require.Equal(t, http.StatusCreated, rec.Code)
	var created map[string]string
	decode(t, rec, &created)

	// Self-only history: alice sees hers, bob cannot.
	rec = f.do(t, http.MethodGet, "/payments/alice@example.com", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history []models.Payment
	decode(t, rec, &history)
	require.Len(t, history, 1)
	assert.Equal(t, models.PaymentPending, history[0].Status)

	rec = f.do(t, http.MethodGet, "/payments/alice@example.com", token(t, "admin@example.com"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin approval.
	rec = f.do(t, http.MethodPatch, "/payments/"+created["insertedId"], token(t, "admin@example.com"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(t, http.MethodGet, "/payments/alice@example.com", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &history)
	assert.Equal(t, models.PaymentApproved, history[0].Status)
}

func TestDeleteUserIsAdminOnly(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "admin@example.com", models.RoleAdmin)
	targetID := f.addUser(t, "alice@example.com", models.RoleNone)

	rec := f.do(t, http.MethodDelete, "/users/"+targetID, token(t, "alice@example.com"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodDelete, "/users/"+targetID, token(t, "admin@example.com"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	u, err := f.users.FindByID(context.Background(), targetID)
	require.NoError(t, err)
	assert.Nil(t, u)
}
