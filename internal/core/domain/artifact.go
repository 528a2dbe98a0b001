package domain

import "time"

// ArtifactInfo records one derived artifact in the content-addressed index.
type ArtifactInfo struct {
	Path      string    `json:"path,omitzero"`
	Digest    string    `json:"digest,omitzero"`
	Size      int64     `json:"size,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
