package uploads

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"cineadmin/structs"
)

type fakeStore struct {
	mu         sync.Mutex
	objects    map[string][]byte
	deleted    []string
	putCalls   int
	putErr     error
	putStarted chan struct{}
	blockPut   bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: map[string][]byte{}, putStarted: make(chan struct{}, 8)}
}

func (f *fakeStore) Put(ctx context.Context, name string, src io.Reader, size int64, progress func(int)) error {
	f.mu.Lock()
	f.putCalls++
	f.mu.Unlock()
	f.putStarted <- struct{}{}

	if f.putErr != nil {
		return f.putErr
	}
	if progress != nil {
		progress(0)
		progress(50)
	}
	if f.blockPut {
		<-ctx.Done()
		return ctx.Err()
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.objects[name] = data
	f.mu.Unlock()
	if progress != nil {
		progress(100)
	}
	return nil
}

func (f *fakeStore) Delete(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, name)
	delete(f.objects, name)
	return nil
}

func (f *fakeStore) URL(name string) string { return "/static/uploads/" + name }

func (f *fakeStore) ObjectNameFromURL(url string) (string, bool) {
	name, found := strings.CutPrefix(url, "/static/uploads/")
	return name, found && name != ""
}

func testManager(store *fakeStore) *Manager {
	m := NewManager(store, DefaultConfig())
	m.cdnSettings = func(context.Context) structs.CDNSettings { return structs.CDNSettings{} }
	m.encSettings = func(context.Context) structs.EncodingSettings { return structs.EncodingSettings{AutoEncode: false} }
	m.logUpload = func(context.Context, string, string, string, string) {}
	m.logDelete = func(context.Context, string, string) {}
	return m
}

func TestValidateFile(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		name string
		size int64
		kind string
		ok   bool
	}{
		{"poster.jpg", 1 << 20, "image", true},
		{"POSTER.JPG", 1 << 20, "image", true},
		{"poster.webp", 1 << 20, "image", true},
		{"poster.bmp", 1 << 20, "image", false},
		{"poster.jpg", 11 << 20, "image", false},
		{"trailer.mp4", 100 << 20, "video", true},
		{"trailer.avi", 100 << 20, "video", false},
		{"trailer.mp4", 501 << 20, "video", false},
		{"trailer.jpg", 1 << 20, "video", false},
		{"noext", 100, "image", false},
	}
	for _, c := range cases {
		msg := ValidateFile(c.name, c.size, c.kind, cfg)
		if c.ok && msg != "" {
			t.Fatalf("%s (%s): expected ok, got %q", c.name, c.kind, msg)
		}
		if !c.ok && msg == "" {
			t.Fatalf("%s (%s): expected rejection", c.name, c.kind)
		}
	}
}

func TestUploadFileValidationBeforeAnyEffect(t *testing.T) {
	store := newFakeStore()
	m := testManager(store)

	_, err := m.UploadFile(context.Background(), Request{
		Key:      "u1",
		Folder:   "movies/images",
		FileName: "poster.bmp",
		Size:     100,
		Kind:     "image",
		Src:      strings.NewReader("data"),
	})

	var verr ErrValidation
	if !errors.As(err, &verr) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if store.putCalls != 0 {
		t.Fatal("store touched before validation passed")
	}
	if _, ok := m.Get("u1"); ok {
		t.Fatal("rejected upload should not be registered")
	}
}

func TestUploadFileSuccess(t *testing.T) {
	store := newFakeStore()
	m := testManager(store)

	var completedURL string
	var loggedModule string
	m.logUpload = func(_ context.Context, kind, module, fileName, url string) {
		loggedModule = module
	}

	snap, err := m.UploadFile(context.Background(), Request{
		Key:        "u1",
		Folder:     "movies/videos",
		Module:     "movies",
		FileName:   "trailer.mp4",
		Size:       4,
		Kind:       "video",
		Src:        strings.NewReader("data"),
		OnComplete: func(url string) { completedURL = url },
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}

	if snap.Status != StatusCompleted {
		t.Fatalf("expected completed, got %s", snap.Status)
	}
	if snap.Progress != 100 {
		t.Fatalf("expected progress 100, got %d", snap.Progress)
	}
	want := []Status{StatusIdle, StatusUploading, StatusCompleted}
	if len(snap.transitions) != len(want) {
		t.Fatalf("unexpected transitions %v", snap.transitions)
	}
	for i, st := range want {
		if snap.transitions[i] != st {
			t.Fatalf("unexpected transitions %v", snap.transitions)
		}
	}
	if completedURL == "" || completedURL != snap.URL {
		t.Fatalf("completion callback got %q, snapshot url %q", completedURL, snap.URL)
	}
	if loggedModule != "movies" {
		t.Fatalf("upload not logged for module, got %q", loggedModule)
	}
	if len(store.objects) != 1 {
		t.Fatalf("expected one stored object, got %d", len(store.objects))
	}
}

func TestUploadFileCancelReturnsToIdle(t *testing.T) {
	store := newFakeStore()
	store.blockPut = true
	m := testManager(store)

	completed := false
	type result struct {
		snap Upload
		err  error
	}
	done := make(chan result, 1)
	go func() {
		snap, err := m.UploadFile(context.Background(), Request{
			Key:        "u1",
			Folder:     "movies/videos",
			FileName:   "trailer.mp4",
			Size:       100,
			Kind:       "video",
			Src:        strings.NewReader("data"),
			OnComplete: func(string) { completed = true },
		})
		done <- result{snap, err}
	}()

	<-store.putStarted
	if !m.Cancel("u1") {
		t.Fatal("cancel of in-flight upload refused")
	}

	res := <-done
	if res.err != nil {
		t.Fatalf("cancelled upload should not error: %v", res.err)
	}
	if res.snap.Status != StatusIdle {
		t.Fatalf("expected idle after cancel, got %s", res.snap.Status)
	}
	if res.snap.Progress != 0 {
		t.Fatalf("expected progress reset, got %d", res.snap.Progress)
	}
	if completed {
		t.Fatal("completion callback fired for cancelled upload")
	}

	// Once out of uploading the machine refuses further cancels.
	if m.Cancel("u1") {
		t.Fatal("cancel accepted outside uploading state")
	}
}

func TestUploadFileStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.putErr = errors.New("disk full")
	m := testManager(store)

	snap, err := m.UploadFile(context.Background(), Request{
		Key:      "u1",
		Folder:   "movies/images",
		FileName: "poster.jpg",
		Size:     4,
		Kind:     "image",
		Src:      strings.NewReader("data"),
	})
	if err != nil {
		t.Fatalf("storage failure should surface via status, got %v", err)
	}
	if snap.Status != StatusError {
		t.Fatalf("expected error status, got %s", snap.Status)
	}
	if snap.Message == "" {
		t.Fatal("expected a user-facing message")
	}
}

func TestUploadFileSimulatedEncoding(t *testing.T) {
	store := newFakeStore()
	m := testManager(store)
	m.encSettings = func(context.Context) structs.EncodingSettings { return structs.EncodingSettings{AutoEncode: true} }
	m.encStep = 50
	m.encInterval = time.Millisecond

	var loggedKind, loggedModule string
	m.logUpload = func(_ context.Context, kind, module, fileName, url string) {
		loggedKind, loggedModule = kind, module
	}

	snap, err := m.UploadFile(context.Background(), Request{
		Key:      "u1",
		Folder:   "movies/videos",
		Module:   "movies",
		FileName: "trailer.mp4",
		Size:     4,
		Kind:     "video",
		Src:      strings.NewReader("data"),
	})
	if err != nil {
		t.Fatalf("upload failed: %v", err)
	}
	if snap.Status != StatusEncoding {
		t.Fatalf("expected encoding after upload, got %s", snap.Status)
	}
	if loggedKind != "video" || loggedModule != "movies" {
		t.Fatalf("upload not logged before encoding phase, got kind %q module %q", loggedKind, loggedModule)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		cur, ok := m.Get("u1")
		if ok && cur.Status == StatusCompleted {
			if cur.EncProgress != 100 {
				t.Fatalf("expected encode progress 100, got %d", cur.EncProgress)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("encoding never completed, status %s", cur.Status)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestRemove(t *testing.T) {
	store := newFakeStore()
	m := testManager(store)

	var loggedURL string
	m.logDelete = func(_ context.Context, module, url string) { loggedURL = url }

	store.objects["movies/images/1_poster.jpg"] = []byte("x")

	url := "/static/uploads/movies/images/1_poster.jpg"
	if err := m.Remove(context.Background(), "movies", url); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "movies/images/1_poster.jpg" {
		t.Fatalf("unexpected deletes %v", store.deleted)
	}
	if loggedURL != url {
		t.Fatalf("delete not logged, got %q", loggedURL)
	}

	// A second remove of the same object is satisfied by the idempotent store.
	if err := m.Remove(context.Background(), "movies", url); err != nil {
		t.Fatalf("repeat remove failed: %v", err)
	}

	err := m.Remove(context.Background(), "movies", "https://elsewhere.com/x.jpg")
	if !errors.Is(err, ErrUnrecognizedURL) {
		t.Fatalf("foreign url should be rejected as unrecognized, got %v", err)
	}
}
