package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"snapshot-qa/internal/database"
	"snapshot-qa/internal/engine"
	"snapshot-qa/internal/middleware"
	"snapshot-qa/internal/models"
	"snapshot-qa/internal/types"
	"snapshot-qa/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	metrics := utils.NewMetricsCollector()
	system := actor.NewActorSystem()
	store := database.NewMemoryStore()
	appEngine := engine.NewEngine(system, metrics, store)
	jwtAuth := middleware.NewAuth("integration-test-secret")

	return NewServer(system, appEngine, metrics, store, jwtAuth)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func registerAndLogin(t *testing.T, server *Server, username, email string) (models.User, string) {
	t.Helper()

	w := postJSON(t, server.HandleUserRegistration(), "/user/register", map[string]string{
		"username": username,
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &user))

	w = postJSON(t, server.HandleUserLogin(), "/user/login", map[string]string{
		"email":    email,
		"password": "password123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code)

	var login types.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	require.True(t, login.Success)
	require.NotEmpty(t, login.Token)

	return user, login.Token
}

func askQuestion(t *testing.T, server *Server, token, title, body string) models.Question {
	t.Helper()

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	require.NoError(t, writer.WriteField("title", title))
	require.NoError(t, writer.WriteField("body", body))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/question", &form)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	server.Auth.Protect(server.HandleQuestion())(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var question models.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &question))
	return question
}

func TestIntegrationFlow(t *testing.T) {
	server := newTestServer(t)

	asker, askerToken := registerAndLogin(t, server, "asker", "asker@example.com")
	_, voterToken := registerAndLogin(t, server, "voter", "voter@example.com")

	// Ask a question
	question := askQuestion(t, server, askerToken, "How do actor mailboxes work?", "Details inside.")
	assert.Equal(t, "How do actor mailboxes work?", question.Title)
	assert.Equal(t, asker.ID, question.AskedByID)
	assert.Equal(t, 0, question.Upvotes)

	// Upvote it as the second user
	voteHandler := server.Auth.Protect(server.HandleVoteQuestion())
	w := postJSON(t, voteHandler, "/vote", map[string]string{
		"id":    question.ID.String(),
		"value": "up",
	}, voterToken)
	require.Equal(t, http.StatusOK, w.Code)

	var voted models.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &voted))
	assert.Equal(t, 1, voted.Upvotes)

	// A second identical vote is rejected
	w = postJSON(t, voteHandler, "/vote", map[string]string{
		"id":    question.ID.String(),
		"value": "up",
	}, voterToken)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Switching direction moves the score by two
	w = postJSON(t, voteHandler, "/vote", map[string]string{
		"id":    question.ID.String(),
		"value": "down",
	}, voterToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &voted))
	assert.Equal(t, -1, voted.Upvotes)

	// Answer the question and upvote the answer
	answerHandler := server.Auth.Protect(server.HandleAnswerQuestion())
	w = postJSON(t, answerHandler, "/answer", map[string]string{
		"questionId": question.ID.String(),
		"answer":     "They serialize message handling.",
	}, voterToken)
	require.Equal(t, http.StatusOK, w.Code)

	var answered models.Question
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &answered))
	require.Len(t, answered.Answers, 1)
	assert.Equal(t, "voter", answered.Answers[0].AnsweredBy)

	voteAnswerHandler := server.Auth.Protect(server.HandleVoteAnswer())
	w = postJSON(t, voteAnswerHandler, "/voteAnswer", map[string]string{
		"id":       question.ID.String(),
		"answerId": answered.Answers[0].ID.String(),
		"value":    "up",
	}, askerToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &answered))
	assert.Equal(t, 1, answered.Answers[0].Upvotes)

	// The stranger cannot delete the question
	deleteHandler := server.Auth.Protect(server.HandleDeleteQuestion())
	w = postJSON(t, deleteHandler, "/question/delete", map[string]string{
		"questionId": question.ID.String(),
	}, voterToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// The asker can
	w = postJSON(t, deleteHandler, "/question/delete", map[string]string{
		"questionId": question.ID.String(),
	}, askerToken)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListQuestionsSortOrders(t *testing.T) {
	server := newTestServer(t)

	_, token := registerAndLogin(t, server, "lister", "lister@example.com")
	first := askQuestion(t, server, token, "First question", "")
	second := askQuestion(t, server, token, "Second question", "")

	// Upvote the first question so the orders differ
	w := postJSON(t, server.Auth.Protect(server.HandleVoteQuestion()), "/vote", map[string]string{
		"id":    first.ID.String(),
		"value": "up",
	}, token)
	require.Equal(t, http.StatusOK, w.Code)

	list := func(sort string) []models.Question {
		req := httptest.NewRequest("GET", "/list?sort="+sort, nil)
		w := httptest.NewRecorder()
		server.HandleListQuestions()(w, req)
		require.Equal(t, http.StatusOK, w.Code)

		var questions []models.Question
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &questions))
		return questions
	}

	byVotesDesc := list("dec")
	require.Len(t, byVotesDesc, 2)
	assert.Equal(t, first.ID, byVotesDesc[0].ID)

	byVotesAsc := list("asc")
	assert.Equal(t, second.ID, byVotesAsc[0].ID)

	newest := list("time")
	assert.Equal(t, second.ID, newest[0].ID)

	// Unknown sort orders are rejected
	req := httptest.NewRequest("GET", "/list?sort=bogus", nil)
	rec := httptest.NewRecorder()
	server.HandleListQuestions()(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server := newTestServer(t)

	w := postJSON(t, server.Auth.Protect(server.HandleVoteQuestion()), "/vote", map[string]string{
		"id":    "not-checked",
		"value": "up",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVoteRejectsUnknownDirection(t *testing.T) {
	server := newTestServer(t)
	_, token := registerAndLogin(t, server, "nilvoter", "nilvoter@example.com")
	question := askQuestion(t, server, token, "Vote target", "")

	voteHandler := server.Auth.Protect(server.HandleVoteQuestion())
	w := postJSON(t, voteHandler, "/vote", map[string]string{
		"id":    question.ID.String(),
		"value": "sideways",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	voteAnswerHandler := server.Auth.Protect(server.HandleVoteAnswer())
	w = postJSON(t, voteAnswerHandler, "/voteAnswer", map[string]string{
		"id":       question.ID.String(),
		"answerId": question.ID.String(),
		"value":    "",
	}, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// A bad direction never reaches the actor, so the score stays put
	req := httptest.NewRequest("GET", "/question?id="+question.ID.String(), nil)
	rec := httptest.NewRecorder()
	server.HandleQuestion()(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var unchanged models.Question
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &unchanged))
	assert.Equal(t, 0, unchanged.Upvotes)
}

func TestMetricsCountRequests(t *testing.T) {
	server := newTestServer(t)

	before := server.Metrics.Snapshot().RequestCount
	registerAndLogin(t, server, "counted", "counted@example.com")
	after := server.Metrics.Snapshot().RequestCount

	// Register and login each dispatch one actor request
	assert.Equal(t, before+2, after)
}

func TestAskQuestionRequiresTitle(t *testing.T) {
	server := newTestServer(t)
	_, token := registerAndLogin(t, server, "untitled", "untitled@example.com")

	var form bytes.Buffer
	writer := multipart.NewWriter(&form)
	require.NoError(t, writer.WriteField("body", "No title here."))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/question", &form)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	server.Auth.Protect(server.HandleQuestion())(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
