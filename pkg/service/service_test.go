package service_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/askholmes/holmes/pkg/adapter"
	"github.com/askholmes/holmes/pkg/service"
)

type captured struct {
	method string
	path   string
	user   string
	body   string
}

// newServer records the last request and replies with the given JSON
func newServer(t *testing.T, status int, response string) (*httptest.Server, *captured) {
	req := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.method = r.Method
		req.path = r.URL.Path
		req.user = r.Header.Get(service.IdentityHeader)
		data, _ := io.ReadAll(r.Body)
		req.body = string(data)
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)
	return srv, req
}

func TestAuthLogin(t *testing.T) {
	srv, req := newServer(t, http.StatusOK, `{"user":{"id":"user-1","email":"w@example.com"}}`)

	auth := service.NewAuth(adapter.New(srv.URL))
	user, err := auth.Login(context.Background(), "w@example.com")
	gt.NoError(t, err)
	gt.Equal(t, string(user.ID), "user-1")
	gt.Equal(t, user.Email, "w@example.com")

	gt.Equal(t, req.method, http.MethodPost)
	gt.Equal(t, req.path, "/api/auth/login")
	gt.S(t, req.body).Contains(`"email":"w@example.com"`)
}

func TestAuthLoginEmptyEmail(t *testing.T) {
	srv, req := newServer(t, http.StatusOK, `{}`)

	auth := service.NewAuth(adapter.New(srv.URL))
	_, err := auth.Login(context.Background(), "  ")
	gt.Error(t, err)
	gt.Equal(t, req.method, "")
}

func TestAuthRegister(t *testing.T) {
	srv, req := newServer(t, http.StatusCreated, `{"user":{"id":"user-2","email":"new@example.com"}}`)

	auth := service.NewAuth(adapter.New(srv.URL))
	user, err := auth.Register(context.Background(), "new@example.com")
	gt.NoError(t, err)
	gt.Equal(t, string(user.ID), "user-2")
	gt.Equal(t, req.path, "/api/auth/register")
}

func TestAuthGetUser(t *testing.T) {
	srv, req := newServer(t, http.StatusOK, `{"user":{"id":"user-1","email":"w@example.com"}}`)

	auth := service.NewAuth(adapter.New(srv.URL))
	user, err := auth.GetUser(context.Background(), "user-1")
	gt.NoError(t, err)
	gt.Equal(t, user.Email, "w@example.com")

	gt.Equal(t, req.method, http.MethodGet)
	gt.Equal(t, req.path, "/api/auth/user/user-1")
}

func TestQuestionsListSendsIdentity(t *testing.T) {
	srv, req := newServer(t, http.StatusOK,
		`{"questions":[{"id":"q-1","user_id":"user-1","question":"Who?","answer":""}]}`)

	qs := service.NewQuestions(adapter.New(srv.URL))
	records, err := qs.List(context.Background(), "user-1")
	gt.NoError(t, err)
	gt.A(t, records).Length(1)
	gt.Equal(t, string(records[0].ID), "q-1")

	gt.Equal(t, req.method, http.MethodGet)
	gt.Equal(t, req.path, "/api/questions")
	gt.Equal(t, req.user, "user-1")
}

func TestQuestionsCreateAnswerOmittedAsNull(t *testing.T) {
	srv, req := newServer(t, http.StatusCreated,
		`{"question":{"id":"q-1","user_id":"user-1","question":"Who?","answer":""}}`)

	qs := service.NewQuestions(adapter.New(srv.URL))
	_, err := qs.Create(context.Background(), "user-1", "Who?", "")
	gt.NoError(t, err)

	gt.Equal(t, req.method, http.MethodPost)
	gt.S(t, req.body).Contains(`"question":"Who?"`)
	gt.S(t, req.body).Contains(`"answer":null`)
}

func TestQuestionsUpdateSendsAnswer(t *testing.T) {
	srv, req := newServer(t, http.StatusOK,
		`{"question":{"id":"q-1","user_id":"user-1","question":"Who?","answer":"Holmes"}}`)

	qs := service.NewQuestions(adapter.New(srv.URL))
	record, err := qs.Update(context.Background(), "user-1", "q-1", "Who?", "Holmes")
	gt.NoError(t, err)
	gt.Equal(t, record.Answer, "Holmes")

	gt.Equal(t, req.method, http.MethodPut)
	gt.Equal(t, req.path, "/api/questions/q-1")
	gt.S(t, req.body).Contains(`"answer":"Holmes"`)
}

func TestQuestionsDelete(t *testing.T) {
	srv, req := newServer(t, http.StatusOK, `{"message":"Question deleted"}`)

	qs := service.NewQuestions(adapter.New(srv.URL))
	gt.NoError(t, qs.Delete(context.Background(), "user-1", "q-1"))

	gt.Equal(t, req.method, http.MethodDelete)
	gt.Equal(t, req.path, "/api/questions/q-1")
	gt.Equal(t, req.user, "user-1")
}

func TestQuestionsGetNotFound(t *testing.T) {
	srv, _ := newServer(t, http.StatusNotFound, `{"error":"Question not found"}`)

	qs := service.NewQuestions(adapter.New(srv.URL))
	_, err := qs.Get(context.Background(), "user-1", "gone")
	gt.Error(t, err)

	tErr, ok := adapter.AsError(err)
	gt.True(t, ok)
	gt.Equal(t, tErr.Message, "Question not found")
}

func TestRAGQuery(t *testing.T) {
	srv, req := newServer(t, http.StatusOK, `{"answer":"A consulting detective."}`)

	rag := service.NewRAG(adapter.New(srv.URL))
	answer, err := rag.Query(context.Background(), "Who is Sherlock Holmes?")
	gt.NoError(t, err)
	gt.Equal(t, answer, "A consulting detective.")

	gt.Equal(t, req.path, "/api/rag/query")
	gt.S(t, req.body).Contains(`"question":"Who is Sherlock Holmes?"`)
}

func TestRAGIndex(t *testing.T) {
	srv, req := newServer(t, http.StatusOK, `{"message":"Indexed 3 documents"}`)

	rag := service.NewRAG(adapter.New(srv.URL))
	gt.NoError(t, rag.Index(context.Background()))
	gt.Equal(t, req.method, http.MethodPost)
	gt.Equal(t, req.path, "/api/rag/index")
}

func TestRAGUploadBook(t *testing.T) {
	var gotUser, gotFilename string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = r.Header.Get(service.IdentityHeader)
		gt.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		gt.NoError(t, err)
		gotFilename = header.Filename
		w.Write([]byte(`{"message":"uploaded"}`))
	}))
	t.Cleanup(srv.Close)

	rag := service.NewRAG(adapter.New(srv.URL))
	err := rag.UploadBook(context.Background(), "user-1", "study.pdf", strings.NewReader("pdf bytes"))
	gt.NoError(t, err)
	gt.Equal(t, gotUser, "user-1")
	gt.Equal(t, gotFilename, "study.pdf")
}

func TestRAGListDocuments(t *testing.T) {
	srv, req := newServer(t, http.StatusOK,
		`{"documents":[{"id":"d-1","filename":"study.pdf","chunk_count":12}]}`)

	rag := service.NewRAG(adapter.New(srv.URL))
	docs, err := rag.ListDocuments(context.Background())
	gt.NoError(t, err)
	gt.A(t, docs).Length(1)
	gt.Equal(t, docs[0].Filename, "study.pdf")
	gt.Equal(t, docs[0].ChunkCount, 12)
	gt.Equal(t, req.path, "/api/rag/documents")
}

func TestRAGSearchDefaultsTopK(t *testing.T) {
	srv, req := newServer(t, http.StatusOK, `{"chunks":[]}`)

	rag := service.NewRAG(adapter.New(srv.URL))
	_, err := rag.SearchChunks(context.Background(), "baker street", 0)
	gt.NoError(t, err)

	gt.Equal(t, req.path, "/api/rag/search")
	gt.S(t, req.body).Contains(`"top_k":3`)
	gt.S(t, req.body).Contains(`"query":"baker street"`)
}

func TestRAGDeleteDocument(t *testing.T) {
	srv, req := newServer(t, http.StatusOK, `{"message":"deleted"}`)

	rag := service.NewRAG(adapter.New(srv.URL))
	gt.NoError(t, rag.DeleteDocument(context.Background(), "d-1"))
	gt.Equal(t, req.method, http.MethodDelete)
	gt.Equal(t, req.path, "/api/rag/documents/d-1")
}
