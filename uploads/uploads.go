package uploads

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"cineadmin/audit"
	"cineadmin/cdn"
	"cineadmin/storage"
	"cineadmin/structs"
	"cineadmin/utils"

	"github.com/disintegration/imaging"
)

type Status string

const (
	StatusIdle      Status = "idle"
	StatusUploading Status = "uploading"
	StatusEncoding  Status = "encoding"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// Config is the accepted-format allow-list and size ceiling applied before
// any storage action.
type Config struct {
	ImageFormats []string
	VideoFormats []string
	MaxImageMB   int64
	MaxVideoMB   int64
}

func DefaultConfig() Config {
	return Config{
		ImageFormats: []string{".jpg", ".jpeg", ".png", ".webp", ".gif"},
		VideoFormats: []string{".mp4", ".mov", ".mkv", ".webm"},
		MaxImageMB:   10,
		MaxVideoMB:   500,
	}
}

// ValidateFile checks the extension allow-list (case-insensitive) and the
// megabyte ceiling. It returns a user-facing message, empty when the file
// is acceptable. No network or storage action happens before this passes.
func ValidateFile(fileName string, size int64, kind string, cfg Config) string {
	ext := strings.ToLower(filepath.Ext(fileName))

	formats := cfg.ImageFormats
	maxMB := cfg.MaxImageMB
	if kind == "video" {
		formats = cfg.VideoFormats
		maxMB = cfg.MaxVideoMB
	}

	if !utils.Contains(formats, ext) {
		return fmt.Sprintf("Unsupported file format %q. Accepted: %s", ext, strings.Join(formats, ", "))
	}
	if size > maxMB<<20 {
		return fmt.Sprintf("File too large. Maximum size is %d MB", maxMB)
	}
	return ""
}

// ErrValidation wraps the user-facing validation message.
type ErrValidation struct{ Message string }

func (e ErrValidation) Error() string { return e.Message }

// Upload tracks one file through the idle → uploading → completed machine,
// with error reachable from uploading and idle re-entry on cancel.
type Upload struct {
	ID          string `json:"id"`
	FileName    string `json:"file_name"`
	ObjectName  string `json:"object_name"`
	Folder      string `json:"folder"`
	Kind        string `json:"kind"` // image | video
	Status      Status `json:"status"`
	Progress    int    `json:"progress"`
	EncProgress int    `json:"enc_progress"`
	URL         string `json:"url"`
	Message     string `json:"message,omitempty"`

	cancel      context.CancelFunc
	transitions []Status
	onComplete  func(url string)
}

// Request describes one upload.
type Request struct {
	Key        string // upload id, generated when empty (multi-file callers pass their own)
	Folder     string // object folder prefix, e.g. events/images
	Module     string // audit module name; empty disables the log side effect
	FileName   string
	Size       int64
	Kind       string // image | video
	Src        io.Reader
	Multi      bool // multi-file path gets a random token in the object name
	OnComplete func(url string)
}

// Manager owns the keyed collection of upload state machines.
type Manager struct {
	mu      sync.Mutex
	uploads map[string]*Upload

	store storage.Store
	cfg   Config

	// swapped in tests
	cdnSettings func(ctx context.Context) structs.CDNSettings
	encSettings func(ctx context.Context) structs.EncodingSettings
	logUpload   func(ctx context.Context, kind, module, fileName, url string)
	logDelete   func(ctx context.Context, module, url string)

	encStep     int
	encInterval time.Duration
}

func NewManager(store storage.Store, cfg Config) *Manager {
	return &Manager{
		uploads:     make(map[string]*Upload),
		store:       store,
		cfg:         cfg,
		cdnSettings: cdn.GetCDNSettings,
		encSettings: cdn.GetEncodingSettings,
		logUpload: func(ctx context.Context, kind, module, fileName, url string) {
			if kind == "video" {
				audit.LogVideoUpload(ctx, module, fileName, url)
			} else {
				audit.LogImageUpload(ctx, module, fileName, url)
			}
		},
		logDelete:   audit.LogImageDelete,
		encStep:     10,
		encInterval: 500 * time.Millisecond,
	}
}

func (m *Manager) setStatus(u *Upload, st Status) {
	m.mu.Lock()
	u.Status = st
	u.transitions = append(u.transitions, st)
	m.mu.Unlock()
}

func (m *Manager) setProgress(u *Upload, pct int) {
	m.mu.Lock()
	if pct > u.Progress { // progress is monotonically non-decreasing
		u.Progress = pct
	}
	m.mu.Unlock()
}

// Get returns a snapshot of one upload.
func (m *Manager) Get(id string) (Upload, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.uploads[id]
	if !ok {
		return Upload{}, false
	}
	return *u, true
}

// Cancel aborts an in-flight upload. Only valid while uploading; the state
// machine re-enters idle and the completion callback never fires.
func (m *Manager) Cancel(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.uploads[id]
	if !ok || u.Status != StatusUploading || u.cancel == nil {
		return false
	}
	u.cancel()
	return true
}

func objectName(folder, fileName string, multi bool) string {
	base := filepath.Base(fileName)
	base = strings.ReplaceAll(base, " ", "_")
	if multi {
		return fmt.Sprintf("%s/%d_%s_%s", folder, time.Now().UnixMilli(), utils.GenerateToken(6), base)
	}
	return fmt.Sprintf("%s/%d_%s", folder, time.Now().UnixMilli(), base)
}

// UploadFile runs one file through the machine. Validation failures abort
// before any state or storage effect and come back as ErrValidation. The
// returned snapshot is taken after the terminal transition of the upload
// phase (completed uploads may still be in the simulated encoding phase).
func (m *Manager) UploadFile(ctx context.Context, req Request) (Upload, error) {
	if msg := ValidateFile(req.FileName, req.Size, req.Kind, m.cfg); msg != "" {
		return Upload{}, ErrValidation{Message: msg}
	}

	if req.Key == "" {
		req.Key = utils.GenerateID(12)
	}

	u := &Upload{
		ID:         req.Key,
		FileName:   req.FileName,
		ObjectName: objectName(req.Folder, req.FileName, req.Multi),
		Folder:     req.Folder,
		Kind:       req.Kind,
		Status:     StatusIdle,
		onComplete: req.OnComplete,
	}
	u.transitions = []Status{StatusIdle}

	upCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	u.cancel = cancel

	m.mu.Lock()
	m.uploads[u.ID] = u
	m.mu.Unlock()

	m.setStatus(u, StatusUploading)

	// Buffer image bytes so a thumbnail can be derived after the store write.
	src := req.Src
	var imgBuf *bytes.Buffer
	if req.Kind == "image" {
		imgBuf = &bytes.Buffer{}
		src = io.TeeReader(req.Src, imgBuf)
	}

	err := m.store.Put(upCtx, u.ObjectName, src, req.Size, func(pct int) {
		m.setProgress(u, pct)
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			// Cancelled mid-upload: back to idle, preview state discarded.
			m.mu.Lock()
			u.Progress = 0
			u.Message = ""
			m.mu.Unlock()
			m.setStatus(u, StatusIdle)
			return m.snapshot(u), nil
		}
		m.mu.Lock()
		u.Message = "Upload failed. Please try again."
		m.mu.Unlock()
		m.setStatus(u, StatusError)
		return m.snapshot(u), nil
	}

	if imgBuf != nil {
		m.makeThumbnail(upCtx, u, imgBuf.Bytes())
	}

	deliveryURL := m.store.URL(u.ObjectName)
	cdnURL := cdn.BuildCDNUrl(deliveryURL, m.cdnSettings(ctx))

	m.mu.Lock()
	u.URL = cdnURL
	m.mu.Unlock()

	if req.Module != "" {
		// The file is stored, so the upload is logged here even when a
		// simulated encoding phase follows. Fire-and-forget: the audit
		// layer swallows its own failures, so a rejected log write can
		// never fail the upload.
		m.logUpload(ctx, req.Kind, req.Module, req.FileName, u.URL)
	}

	if req.Kind == "video" && m.encSettings(ctx).AutoEncode {
		// Simulated encoding phase: progress stepped on a fixed ticker.
		// Real transcoding is an external collaborator; this only tells the
		// console the file is being worked on.
		m.setStatus(u, StatusEncoding)
		go m.simulateEncoding(u)
	} else {
		m.finish(u)
	}

	return m.snapshot(u), nil
}

func (m *Manager) finish(u *Upload) {
	m.setStatus(u, StatusCompleted)
	if u.onComplete != nil {
		u.onComplete(u.URL)
	}
}

func (m *Manager) simulateEncoding(u *Upload) {
	ticker := time.NewTicker(m.encInterval)
	defer ticker.Stop()

	for range ticker.C {
		m.mu.Lock()
		u.EncProgress += m.encStep
		if u.EncProgress >= 100 {
			u.EncProgress = 100
			m.mu.Unlock()
			m.setStatus(u, StatusCompleted)
			if u.onComplete != nil {
				u.onComplete(u.URL)
			}
			return
		}
		m.mu.Unlock()
	}
}

func (m *Manager) makeThumbnail(ctx context.Context, u *Upload, data []byte) {
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		log.Printf("Skipping thumbnail for %s: %v", u.ObjectName, err)
		return
	}

	thumb := imaging.Resize(img, 300, 0, imaging.Lanczos)
	var out bytes.Buffer
	if err := imaging.Encode(&out, thumb, imaging.JPEG); err != nil {
		log.Printf("Skipping thumbnail for %s: %v", u.ObjectName, err)
		return
	}

	thumbName := u.Folder + "/thumb/" + filepath.Base(u.ObjectName)
	if err := m.store.Put(ctx, thumbName, &out, int64(out.Len()), nil); err != nil {
		log.Printf("Failed to save thumbnail %s: %v", thumbName, err)
	}
}

func (m *Manager) snapshot(u *Upload) Upload {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *u
}

// ErrUnrecognizedURL marks a delivery URL that does not belong to the
// store. A caller mistake, not a storage fault.
var ErrUnrecognizedURL = errors.New("unrecognized delivery URL")

// Remove deletes a stored object by its delivery URL. A missing object is
// treated as an already-satisfied delete; any other failure surfaces.
func (m *Manager) Remove(ctx context.Context, module, url string) error {
	name, ok := m.store.ObjectNameFromURL(url)
	if !ok {
		return ErrUnrecognizedURL
	}

	if err := m.store.Delete(name); err != nil {
		return err
	}

	if module != "" {
		m.logDelete(ctx, module, url)
	}
	return nil
}
