package adapter_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/askholmes/holmes/pkg/adapter"
)

func TestDoSuccess(t *testing.T) {
	var gotMethod, gotPath, gotContentType, gotUser string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotContentType = r.Header.Get("Content-Type")
		gotUser = r.Header.Get("X-User-ID")
		w.Write([]byte(`{"questions":[]}`))
	}))
	defer srv.Close()

	client := adapter.New(srv.URL)
	raw, err := client.Do(context.Background(), http.MethodGet, "/questions", nil, map[string]string{"X-User-ID": "user-1"})
	gt.NoError(t, err)
	gt.S(t, string(raw)).Contains("questions")

	gt.Equal(t, gotMethod, http.MethodGet)
	gt.Equal(t, gotPath, "/api/questions")
	gt.Equal(t, gotContentType, "application/json")
	gt.Equal(t, gotUser, "user-1")
}

func TestDoSendsJSONBody(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		gotBody = string(data)
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := adapter.New(srv.URL)
	_, err := client.Do(context.Background(), http.MethodPost, "/auth/login", map[string]string{"email": "w@example.com"}, nil)
	gt.NoError(t, err)
	gt.S(t, gotBody).Contains(`"email":"w@example.com"`)
}

func TestDoServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Question not found"}`))
	}))
	defer srv.Close()

	client := adapter.New(srv.URL)
	_, err := client.Do(context.Background(), http.MethodGet, "/questions/x", nil, nil)
	gt.Error(t, err)

	tErr, ok := adapter.AsError(err)
	gt.True(t, ok)
	gt.Equal(t, tErr.StatusCode, http.StatusNotFound)
	gt.Equal(t, tErr.Message, "Question not found")
}

func TestDoServerErrorWithoutErrorField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`boom`))
	}))
	defer srv.Close()

	client := adapter.New(srv.URL)
	_, err := client.Do(context.Background(), http.MethodGet, "/questions", nil, nil)

	tErr, ok := adapter.AsError(err)
	gt.True(t, ok)
	gt.Equal(t, tErr.StatusCode, http.StatusInternalServerError)
	gt.Equal(t, tErr.Message, "An error occurred")
}

func TestDoNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := adapter.New(url)
	_, err := client.Do(context.Background(), http.MethodGet, "/questions", nil, nil)

	tErr, ok := adapter.AsError(err)
	gt.True(t, ok)
	gt.Equal(t, tErr.StatusCode, 0)
	gt.Equal(t, tErr.Message, adapter.NetworkErrorMessage)
}

func TestDoInvalidResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := adapter.New(srv.URL)
	_, err := client.Do(context.Background(), http.MethodGet, "/questions", nil, nil)

	tErr, ok := adapter.AsError(err)
	gt.True(t, ok)
	gt.Equal(t, tErr.StatusCode, 0)
}

func TestDoContentTypeCannotBeCleared(t *testing.T) {
	var gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := adapter.New(srv.URL)
	_, err := client.Do(context.Background(), http.MethodGet, "/questions", nil, map[string]string{"Content-Type": ""})
	gt.NoError(t, err)
	gt.Equal(t, gotContentType, "application/json")
}

func TestUpload(t *testing.T) {
	var gotUser, gotFilename, gotContent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = r.Header.Get("X-User-ID")
		gt.NoError(t, r.ParseMultipartForm(1<<20))
		f, header, err := r.FormFile("file")
		gt.NoError(t, err)
		defer f.Close()
		gotFilename = header.Filename
		data, _ := io.ReadAll(f)
		gotContent = string(data)
		w.Write([]byte(`{"message":"ok"}`))
	}))
	defer srv.Close()

	client := adapter.New(srv.URL)
	_, err := client.Upload(context.Background(), "/rag/upload", "file", "study.pdf",
		strings.NewReader("pdf bytes"), map[string]string{"X-User-ID": "user-2"})
	gt.NoError(t, err)

	gt.Equal(t, gotUser, "user-2")
	gt.Equal(t, gotFilename, "study.pdf")
	gt.Equal(t, gotContent, "pdf bytes")
}

func TestUploadServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Only PDF files are supported"}`))
	}))
	defer srv.Close()

	client := adapter.New(srv.URL)
	_, err := client.Upload(context.Background(), "/rag/upload", "file", "study.txt", strings.NewReader("x"), nil)

	tErr, ok := adapter.AsError(err)
	gt.True(t, ok)
	gt.Equal(t, tErr.StatusCode, http.StatusBadRequest)
	gt.Equal(t, tErr.Message, "Only PDF files are supported")
}
