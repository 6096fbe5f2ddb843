package dto

import (
	"time"

	"github.com/google/uuid"
)

type GapRecordResponse struct {
	Skill         string `json:"skill"`
	RequiredLevel int    `json:"required_level"`
	UserLevel     int    `json:"user_level"`
	Gap           int    `json:"gap"`
	GapPositive   int    `json:"gap_positive"`
}

type GapSummaryResponse struct {
	TotalRequired int     `json:"total_required"`
	TotalUser     int     `json:"total_user"`
	TotalGap      int     `json:"total_gap"`
	UnmetSkills   int     `json:"unmet_skills"`
	LargestGap    *string `json:"largest_gap_skill"`
}

// CompletionResponse carries the readout; Percent is null when it is undefined.
type CompletionResponse struct {
	Percent *float64 `json:"percent"`
	Display string   `json:"display"`
}

type SessionResponse struct {
	SessionID  uuid.UUID           `json:"session_id"`
	Version    int                 `json:"version"`
	Job        string              `json:"job"`
	Levels     map[string]int      `json:"levels"`
	Records    []GapRecordResponse `json:"records"`
	Summary    GapSummaryResponse  `json:"summary"`
	Completion CompletionResponse  `json:"completion"`
}

type GapReportResponse struct {
	DatasetID  uuid.UUID           `json:"dataset_id"`
	Job        string              `json:"job"`
	Records    []GapRecordResponse `json:"records"`
	Summary    GapSummaryResponse  `json:"summary"`
	Completion CompletionResponse  `json:"completion"`
}

type DatasetResponse struct {
	ID        uuid.UUID `json:"id"`
	Seed      int64     `json:"seed"`
	Label     string    `json:"label"`
	JobCount  int       `json:"job_count"`
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}

type JobPageResponse struct {
	Jobs   []string `json:"jobs"`
	Total  int      `json:"total"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

type HealthResponse struct {
	Database  string `json:"database"`
	Redis     string `json:"redis"`
	Sessions  string `json:"sessions"`
	WSClients int    `json:"ws_clients"`
}
