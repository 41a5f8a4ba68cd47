package models

import "time"

// Metrics is the administrative reporting document: aggregate counts over
// users, images and classifications. It is computed on demand and read-only.
type Metrics struct {
	TotalUsers             int64            `json:"total_users"`
	TotalImages            int64            `json:"total_images"`
	TotalClassifications   int64            `json:"total_classifications"`
	ClassificationsByStage map[string]int64 `json:"classifications_by_stage"`
	UsersBySpecialty       map[string]int64 `json:"users_by_specialty"`
	GeneratedAt            time.Time        `json:"generated_at"`
}
