package storage

import "unstakepool/internal/model"

// Sink receives step results from a scenario run.
type Sink interface {
	PutResultBatch(results []model.StepResult) error
}
