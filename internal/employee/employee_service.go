package employee

import (
	"context"

	employeeerrors "capbot/internal/employee/errors"
	"capbot/internal/payroll"
)

// Service exposes the read-only roster derived from the payroll store.
type Service interface {
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetCompetencies(ctx context.Context, name string) (CompetenciesResponse, error)
}

type service struct {
	store *payroll.Store
}

func NewService(store *payroll.Store) Service {
	return &service{store: store}
}

func (s *service) GetAll(_ context.Context) ([]EmployeeResponse, error) {
	names := s.store.EmployeeNames()
	resp := make([]EmployeeResponse, 0, len(names))
	for _, name := range names {
		resp = append(resp, EmployeeResponse{FullName: name})
	}
	return resp, nil
}

func (s *service) GetCompetencies(_ context.Context, name string) (CompetenciesResponse, error) {
	records := s.store.SearchEmployee(name)
	if len(records) == 0 {
		return CompetenciesResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	return CompetenciesResponse{
		Employee:     records[0].Name,
		Competencies: s.store.CompetenciesFor(name),
	}, nil
}
