package permissions

import (
	"context"
	"errors"

	"github.com/echnavi/charge-admin-backend/pkg/db/models"
	"github.com/echnavi/charge-admin-backend/pkg/enums"
	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
)

// The owner level (1) is reserved for the platform; scoped lists never
// include it. Agency staff pick from the fixed 2..7 band.
const (
	ownerPermission = 1
	agencyBandLow   = 2
	agencyBandHigh  = 7
)

// ServiceParams groups dependencies for the permission service.
type ServiceParams struct {
	Repo Repository
}

// Service serves the permission catalogue, scoped per caller.
type Service struct {
	repo Repository
}

// NewService builds a permission service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

// List returns the catalogue rows the caller may assign. An empty
// result is not an error.
func (s *Service) List(ctx context.Context, req ListRequest) ([]PermissionDTO, error) {
	rows, err := s.listScoped(ctx, req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing permissions")
	}
	out := make([]PermissionDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, PermissionDTO{PermissionID: row.PermissionID, PermissionName: row.PermissionName})
	}
	return out, nil
}

func (s *Service) listScoped(ctx context.Context, req ListRequest) ([]models.Permission, error) {
	if req.UserCategory != nil && *req.UserCategory == int(enums.CategoryAgency) {
		return s.repo.ListBetween(ctx, agencyBandLow, agencyBandHigh)
	}
	if req.UserID != nil {
		mine, found, err := s.repo.AgencyPermissionForUser(ctx, *req.UserID)
		if err != nil {
			return nil, err
		}
		if found {
			return s.repo.ListUpTo(ctx, mine, ownerPermission)
		}
		return s.repo.ListExcluding(ctx, ownerPermission)
	}
	return s.repo.ListAll(ctx)
}
