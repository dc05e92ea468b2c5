package handlers

import (
	"net/http"

	"saraf-backend/internal/backup"
	"saraf-backend/pkg/respond"
)

type BackupHandler struct {
	Exporter *backup.Exporter
}

func NewBackupHandler(exporter *backup.Exporter) *BackupHandler {
	return &BackupHandler{Exporter: exporter}
}

// Export uploads a JSON snapshot of everything the user owns.
func (h *BackupHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	key, err := h.Exporter.Export(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, map[string]string{
		"message": "Backup uploaded",
		"key":     key,
	})
}

// List returns the user's stored snapshots.
func (h *BackupHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	backups, err := h.Exporter.List(r.Context(), userID)
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"backups": backups})
}
