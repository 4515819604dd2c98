package payroll

import (
	"context"

	payrollerrors "capbot/internal/payroll/errors"
)

// Service is the read-only payroll lookup surface behind the HTTP layer.
type Service interface {
	GetRecord(ctx context.Context, name, competency string) (RecordResponse, error)
}

type service struct {
	store *Store
}

func NewService(store *Store) Service {
	return &service{store: store}
}

func (s *service) GetRecord(ctx context.Context, name, competency string) (RecordResponse, error) {
	records := s.store.SearchEmployeeCompetency(name, competency)
	if len(records) == 0 {
		return RecordResponse{}, payrollerrors.ErrRecordNotFound
	}

	rec := records[0]
	return RecordResponse{
		Employee:   rec.Name,
		Competency: rec.Competency,
		Data:       rec.Snapshot(),
		SourceLine: rec.sourceLine,
	}, nil
}
