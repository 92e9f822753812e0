package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
)

type UploadResult struct {
	Key      string
	Location string
	ETag     string
}

type FileUploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// StandingsSnapshotKey is the object key of a stage's published standings.
// Scrims use stage 0.
func StandingsSnapshotKey(tournamentID, stageID int) string {
	return fmt.Sprintf("standings/tournament_%d/stage_%d.json", tournamentID, stageID)
}

// UploadJSON marshals v and uploads it under key as application/json.
func UploadJSON(ctx context.Context, uploader FileUploader, key string, v interface{}) (*UploadResult, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", key, err)
	}
	return uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
}
