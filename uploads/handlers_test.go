package uploads

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
)

func multiFileRequest(t *testing.T, names []string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	mw.WriteField("kind", "video")
	mw.WriteField("module", "movies")
	for _, name := range names {
		part, err := mw.CreateFormFile("files", name)
		if err != nil {
			t.Fatalf("form build failed: %v", err)
		}
		part.Write([]byte("data"))
	}
	mw.Close()

	r := httptest.NewRequest("POST", "/api/uploads/movies/videos", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func TestAddMultiFileContinuesPastBadFile(t *testing.T) {
	store := newFakeStore()
	h := NewUploadHandler(testManager(store))

	w := httptest.NewRecorder()
	r := multiFileRequest(t, []string{"teaser.mp4", "notes.txt", "trailer.mp4"})
	ps := httprouter.Params{{Key: "folder", Value: "/movies/videos"}}

	h.Add(w, r, ps)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var results []Upload
	if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected a result per file, got %d", len(results))
	}
	if results[0].Status != StatusCompleted || results[2].Status != StatusCompleted {
		t.Fatalf("valid files did not complete: %+v", results)
	}
	if results[1].Status != StatusError || results[1].Message == "" {
		t.Fatalf("bad file should be an error row with a message: %+v", results[1])
	}
	if results[1].FileName != "notes.txt" {
		t.Fatalf("error row names wrong file: %+v", results[1])
	}
	if len(store.objects) != 2 {
		t.Fatalf("expected the two valid files stored, got %d", len(store.objects))
	}
}

func TestRemoveHandlerBadURL(t *testing.T) {
	h := NewUploadHandler(testManager(newFakeStore()))

	w := httptest.NewRecorder()
	r := httptest.NewRequest("DELETE", "/api/upload?url=https://elsewhere.com/x.jpg", nil)
	h.Remove(w, r, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("unrecognized url should be 400, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	r = httptest.NewRequest("DELETE", "/api/upload", nil)
	h.Remove(w, r, nil)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing url should be 400, got %d", w.Code)
	}
}
