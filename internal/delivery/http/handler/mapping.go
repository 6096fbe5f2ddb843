package handler

import (
	"skill-gap/internal/delivery/http/dto"
	"skill-gap/internal/domain/gap"
	"skill-gap/internal/repository"
	"skill-gap/internal/usecase"
)

func toGapRecords(records []gap.Record) []dto.GapRecordResponse {
	out := make([]dto.GapRecordResponse, 0, len(records))
	for _, r := range records {
		out = append(out, dto.GapRecordResponse{
			Skill:         r.Skill,
			RequiredLevel: r.RequiredLevel,
			UserLevel:     r.UserLevel,
			Gap:           r.Gap,
			GapPositive:   r.GapPositive,
		})
	}
	return out
}

func toSummary(s gap.Summary) dto.GapSummaryResponse {
	res := dto.GapSummaryResponse{
		TotalRequired: s.TotalRequired,
		TotalUser:     s.TotalUser,
		TotalGap:      s.TotalGap,
		UnmetSkills:   s.UnmetSkills,
	}
	if s.Largest != nil {
		name := s.Largest.Skill
		res.LargestGap = &name
	}
	return res
}

func toCompletion(pct float64, ok bool, display string) dto.CompletionResponse {
	res := dto.CompletionResponse{Display: display}
	if ok {
		p := pct
		res.Percent = &p
	}
	return res
}

// ToSessionResponse is shared with the websocket handler.
func ToSessionResponse(v usecase.DashboardView) dto.SessionResponse {
	levels := make(map[string]int, len(v.Levels))
	for k, lvl := range v.Levels {
		levels[k] = lvl
	}
	return dto.SessionResponse{
		SessionID:  v.SessionID,
		Version:    v.Version,
		Job:        v.Job,
		Levels:     levels,
		Records:    toGapRecords(v.Records),
		Summary:    toSummary(v.Summary),
		Completion: toCompletion(v.Completion, v.HasCompletion, v.CompletionText),
	}
}

func toGapReport(r usecase.GapReport) dto.GapReportResponse {
	return dto.GapReportResponse{
		DatasetID:  r.DatasetID,
		Job:        r.Job,
		Records:    toGapRecords(r.Records),
		Summary:    toSummary(r.Summary),
		Completion: toCompletion(r.Completion, r.HasCompletion, r.CompletionText),
	}
}

func toDataset(m repository.DatasetMeta) dto.DatasetResponse {
	return dto.DatasetResponse{
		ID:        m.ID,
		Seed:      m.Seed,
		Label:     m.Label,
		JobCount:  m.JobCount,
		RowCount:  m.RowCount,
		CreatedAt: m.CreatedAt,
	}
}
