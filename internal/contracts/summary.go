package contracts

import "Paydue/internal/domain/summary"

type SummaryResponse struct {
	Summary *summary.Summary `json:"summary"`
}
