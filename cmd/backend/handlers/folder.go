package handlers

import (
	"errors"
	"net/http"

	"github.com/fitrack/backend/folder"
	"github.com/fitrack/backend/logger"
)

// FolderHandler handles test folder-related requests.
type FolderHandler struct {
	folderStore folder.Store
	logger      logger.Logger
}

// NewFolderHandler creates a new folder handler.
func NewFolderHandler(folderStore folder.Store, log logger.Logger) *FolderHandler {
	return &FolderHandler{
		folderStore: folderStore,
		logger:      log,
	}
}

// CreateFolderRequest represents a folder creation request.
type CreateFolderRequest struct {
	Name      string `json:"name"`
	ProjectID string `json:"projectId"`
}

// UpdateFolderRequest represents a folder rename request.
type UpdateFolderRequest struct {
	Name *string `json:"name,omitempty"`
}

// Create handles creating a new folder.
func (h *FolderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user not authenticated")
		return
	}

	var req CreateFolderRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	f := &folder.Folder{
		Name:      req.Name,
		ProjectID: req.ProjectID,
		CreatorID: userID,
	}

	if err := h.folderStore.Create(r.Context(), f); err != nil {
		if errors.Is(err, folder.ErrInvalidFolderName) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error(r.Context(), "failed to create folder", logger.Fields{
			"error": err.Error(),
			"name":  req.Name,
		})
		respondError(w, http.StatusInternalServerError, "failed to create folder")
		return
	}

	respondJSON(w, http.StatusCreated, f)
}

// List handles listing all folders with live test case counts.
func (h *FolderHandler) List(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folderStore.List(r.Context())
	if err != nil {
		h.logger.Error(r.Context(), "failed to list folders", logger.Fields{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "failed to list folders")
		return
	}

	respondJSON(w, http.StatusOK, folders)
}

// Update handles renaming a folder.
func (h *FolderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "folder_id", "folder")
	if !ok {
		return
	}

	var req UpdateFolderRequest
	if err := parseJSON(r, &req, h.logger); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	var setters []folder.UpdateSetter
	if req.Name != nil {
		setters = append(setters, folder.SetName(*req.Name))
	}

	if len(setters) == 0 {
		respondError(w, http.StatusBadRequest, "no fields to update")
		return
	}

	if err := h.folderStore.Update(r.Context(), id, setters...); err != nil {
		if errors.Is(err, folder.ErrFolderNotFound) {
			respondError(w, http.StatusNotFound, "folder not found")
			return
		}
		if errors.Is(err, folder.ErrInvalidFolderName) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error(r.Context(), "failed to update folder", logger.Fields{
			"error":     err.Error(),
			"folder_id": id.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to update folder")
		return
	}

	updated, err := h.folderStore.GetByID(r.Context(), id)
	if err != nil {
		h.logger.Error(r.Context(), "failed to get updated folder", logger.Fields{
			"error":     err.Error(),
			"folder_id": id.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to get updated folder")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// Delete handles deleting an empty folder. Folders that still contain test
// cases are rejected with a 400 and an explanatory message.
func (h *FolderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUUIDOrRespond(w, r, "folder_id", "folder")
	if !ok {
		return
	}

	if err := h.folderStore.Delete(r.Context(), id); err != nil {
		if errors.Is(err, folder.ErrFolderNotFound) {
			respondError(w, http.StatusNotFound, "folder not found")
			return
		}
		if errors.Is(err, folder.ErrFolderNotEmpty) {
			respondJSON(w, http.StatusBadRequest, ErrorResponse{
				Error:   "folder not empty",
				Message: err.Error(),
			})
			return
		}
		h.logger.Error(r.Context(), "failed to delete folder", logger.Fields{
			"error":     err.Error(),
			"folder_id": id.String(),
		})
		respondError(w, http.StatusInternalServerError, "failed to delete folder")
		return
	}

	respondSuccess(w, "folder deleted successfully")
}
