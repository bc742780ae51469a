package uploads

import (
	"errors"
	"net/http"
	"strings"

	"cineadmin/utils"

	"github.com/julienschmidt/httprouter"
)

// UploadHandler exposes the manager over HTTP.
type UploadHandler struct {
	Mgr *Manager
}

func NewUploadHandler(mgr *Manager) *UploadHandler {
	return &UploadHandler{Mgr: mgr}
}

// Add handles POST /api/uploads/*folder. A single "file" form field runs
// the single-file path; a "files" field runs the multi-file path with one
// independent state machine per file.
func (h *UploadHandler) Add(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	folder := strings.Trim(ps.ByName("folder"), "/")
	if folder == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Folder is required")
		return
	}

	if err := r.ParseMultipartForm(512 << 20); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "Unable to parse form: "+err.Error())
		return
	}

	kind := r.FormValue("kind")
	if kind == "" {
		kind = "image"
	}
	module := r.FormValue("module")

	// Multi-file path. Each file is its own state machine, so one bad file
	// becomes an error row in the result list and the rest still upload.
	if files := r.MultipartForm.File["files"]; len(files) > 0 {
		var results []Upload
		for _, fh := range files {
			f, err := fh.Open()
			if err != nil {
				results = append(results, Upload{
					FileName: fh.Filename,
					Kind:     kind,
					Status:   StatusError,
					Message:  "Unable to read file",
				})
				continue
			}
			snap, upErr := h.Mgr.UploadFile(r.Context(), Request{
				Folder:   folder,
				Module:   module,
				FileName: fh.Filename,
				Size:     fh.Size,
				Kind:     kind,
				Src:      f,
				Multi:    true,
			})
			f.Close()
			var vErr ErrValidation
			if errors.As(upErr, &vErr) {
				results = append(results, Upload{
					FileName: fh.Filename,
					Kind:     kind,
					Status:   StatusError,
					Message:  vErr.Message,
				})
				continue
			}
			results = append(results, snap)
		}
		utils.SendJSONResponse(w, http.StatusCreated, results)
		return
	}

	// Single-file path
	f, fh, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			utils.SendErrorResponse(w, http.StatusBadRequest, "File is required")
		} else {
			utils.SendErrorResponse(w, http.StatusBadRequest, "Error retrieving file: "+err.Error())
		}
		return
	}
	defer f.Close()

	snap, upErr := h.Mgr.UploadFile(r.Context(), Request{
		Folder:   folder,
		Module:   module,
		FileName: fh.Filename,
		Size:     fh.Size,
		Kind:     kind,
		Src:      f,
	})
	var vErr ErrValidation
	if errors.As(upErr, &vErr) {
		utils.SendErrorResponse(w, http.StatusBadRequest, vErr.Message)
		return
	}
	if snap.Status == StatusError {
		utils.SendJSONResponse(w, http.StatusBadGateway, snap)
		return
	}

	utils.SendJSONResponse(w, http.StatusCreated, snap)
}

// Status returns the state-machine snapshot for one upload.
func (h *UploadHandler) Status(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	snap, ok := h.Mgr.Get(ps.ByName("id"))
	if !ok {
		utils.SendErrorResponse(w, http.StatusNotFound, "Upload not found")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, snap)
}

// Cancel aborts an in-flight upload. Only valid while uploading.
func (h *UploadHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !h.Mgr.Cancel(ps.ByName("id")) {
		utils.SendErrorResponse(w, http.StatusConflict, "Upload is not in progress")
		return
	}
	utils.SendJSONResponse(w, http.StatusOK, map[string]string{"message": "Upload cancelled"})
}

// Remove deletes a stored object by delivery URL. Confirmation happens in
// the console; a missing object completes the flow without error.
func (h *UploadHandler) Remove(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	url := r.URL.Query().Get("url")
	if url == "" {
		utils.SendErrorResponse(w, http.StatusBadRequest, "url is required")
		return
	}

	if err := h.Mgr.Remove(r.Context(), r.URL.Query().Get("module"), url); err != nil {
		if errors.Is(err, ErrUnrecognizedURL) {
			utils.SendErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.SendErrorResponse(w, http.StatusInternalServerError, "Failed to delete object: "+err.Error())
		return
	}

	utils.SendJSONResponse(w, http.StatusOK, map[string]string{"message": "Object deleted"})
}
