package storage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStorePutProgress(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/static/uploads")

	data := bytes.Repeat([]byte("x"), copyChunkSize*3+100)
	var pcts []int
	err := store.Put(context.Background(), "posters/a.jpg", bytes.NewReader(data), int64(len(data)), func(pct int) {
		pcts = append(pcts, pct)
	})
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}

	if len(pcts) == 0 {
		t.Fatal("no progress reported")
	}
	if pcts[0] != 0 {
		t.Fatalf("progress should start at 0, got %d", pcts[0])
	}
	if pcts[len(pcts)-1] != 100 {
		t.Fatalf("progress should end at 100, got %d", pcts[len(pcts)-1])
	}
	for i := 1; i < len(pcts); i++ {
		if pcts[i] < pcts[i-1] {
			t.Fatalf("progress went backwards: %v", pcts)
		}
		if pcts[i] > 100 {
			t.Fatalf("progress exceeded 100: %v", pcts)
		}
	}

	got, err := os.ReadFile(filepath.Join(store.Root, "posters", "a.jpg"))
	if err != nil {
		t.Fatalf("object not written: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatal("stored bytes differ from source")
	}
}

func TestDiskStorePutCancelCleansUp(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/static/uploads")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	data := bytes.Repeat([]byte("y"), copyChunkSize)
	err := store.Put(ctx, "videos/v.mp4", bytes.NewReader(data), int64(len(data)), nil)
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if _, statErr := os.Stat(filepath.Join(store.Root, "videos", "v.mp4")); !os.IsNotExist(statErr) {
		t.Fatal("partial object not cleaned up")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, io.ErrUnexpectedEOF }

func TestDiskStorePutReadErrorCleansUp(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/static/uploads")

	err := store.Put(context.Background(), "x/y.bin", failingReader{}, 10, nil)
	if err != io.ErrUnexpectedEOF {
		t.Fatalf("expected read error, got %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(store.Root, "x", "y.bin")); !os.IsNotExist(statErr) {
		t.Fatal("partial object not cleaned up")
	}
}

func TestDiskStoreDeleteIdempotent(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/static/uploads")

	if err := store.Put(context.Background(), "a/b.txt", strings.NewReader("hi"), 2, nil); err != nil {
		t.Fatalf("put failed: %v", err)
	}
	if err := store.Delete("a/b.txt"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := store.Delete("a/b.txt"); err != nil {
		t.Fatalf("repeat delete should succeed, got %v", err)
	}
	if err := store.Delete("never/existed.txt"); err != nil {
		t.Fatalf("delete of missing object should succeed, got %v", err)
	}
}

func TestDiskStoreURLRoundTrip(t *testing.T) {
	store := NewDiskStore(t.TempDir(), "/static/uploads")

	url := store.URL("posters/p.jpg")
	if url != "/static/uploads/posters/p.jpg" {
		t.Fatalf("unexpected url %q", url)
	}

	name, ok := store.ObjectNameFromURL("https://cine.example.com" + url + "?v=3")
	if !ok || name != "posters/p.jpg" {
		t.Fatalf("round trip failed: %q %v", name, ok)
	}

	name, ok = store.ObjectNameFromURL("https://firebasestorage.googleapis.com/v0/b/app/o/posters/p.jpg?alt=media")
	if !ok || name != "posters/p.jpg" {
		t.Fatalf("managed storage url failed: %q %v", name, ok)
	}

	if _, ok := store.ObjectNameFromURL("https://elsewhere.com/other/path.jpg"); ok {
		t.Fatal("foreign url should not resolve")
	}
}
