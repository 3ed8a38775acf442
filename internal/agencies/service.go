package agencies

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/pkg/db"
	"github.com/echnavi/charge-admin-backend/pkg/db/models"
	"github.com/echnavi/charge-admin-backend/pkg/enums"
	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
	"github.com/echnavi/charge-admin-backend/pkg/jst"
)

const agencyNumberLength = 3

// Audit actor names recorded in create_user / update_user columns.
const (
	actorAdmin     = "admin"
	actorDashboard = "Dashboard"
)

// ServiceParams groups dependencies for the agency service.
type ServiceParams struct {
	DB   *db.Client
	Repo Repository
}

// Service orchestrates agency master maintenance.
type Service struct {
	db   *db.Client
	repo Repository
}

// NewService builds an agency service.
func NewService(params ServiceParams) (*Service, error) {
	if params.DB == nil {
		return nil, errors.New("db is required")
	}
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{db: params.DB, repo: params.Repo}, nil
}

// Register mints an app_agency_number and inserts the agency row. The
// number draw and the insert share one transaction so a duplicate draw
// can never be committed.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	now := jst.FormatDateTime(jst.Now())

	var out RegisterResponse
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		number, err := db.GenerateUniqueNumber(tx, models.Agency{}.TableName(), "app_agency_number", agencyNumberLength)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generating agency number")
		}

		row := models.Agency{
			AppAgencyNumber: number,
			Company:         req.Agency,
			ZipCode:         req.ZipCode,
			Prefecture:      req.Prefecture,
			City:            req.City,
			Address:         req.Address,
			Building:        req.Building,
			Country:         req.Country,
			Telephone:       req.Telephone,
			CreateDate:      now,
			CreateUser:      actorAdmin,
			UpdateDate:      now,
			UpdateUser:      actorAdmin,
			Status:          enums.StatusActive,
		}
		if err := s.repo.WithTx(tx).Create(ctx, &row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting agency")
		}

		out = RegisterResponse{AgencyID: row.AgencyID, AppAgencyNumber: row.AppAgencyNumber}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every agency row, including inactive ones. The dashboard
// renders status itself.
func (s *Service) List(ctx context.Context) ([]AgencyDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing agencies")
	}
	out := make([]AgencyDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out, nil
}

// Update rewrites the full agency row and stamps the update audit columns.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*AgencyDTO, error) {
	row, err := s.repo.FindByID(ctx, req.AgencyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading agency")
	}
	if row == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "No agency found with the given ID.[E003]").
			WithDetails(map[string]any{"agency_id": req.AgencyID})
	}

	row.AppAgencyNumber = req.AppAgencyNumber
	row.Company = req.Company
	row.ZipCode = req.ZipCode
	row.Prefecture = req.Prefecture
	row.City = req.City
	row.Address = req.Address
	row.Building = req.Building
	row.Country = req.Country
	row.Telephone = req.Telephone
	row.UpdateDate = jst.FormatDateTime(jst.Now())
	row.UpdateUser = actorDashboard
	if req.Status != nil {
		row.Status = *req.Status
	}

	if err := s.repo.Update(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating agency")
	}

	dto := toDTO(*row)
	return &dto, nil
}

func toDTO(row models.Agency) AgencyDTO {
	return AgencyDTO{
		AgencyID:        row.AgencyID,
		AppAgencyNumber: row.AppAgencyNumber,
		Company:         row.Company,
		ZipCode:         row.ZipCode,
		Prefecture:      row.Prefecture,
		City:            row.City,
		Address:         row.Address,
		Building:        row.Building,
		Country:         row.Country,
		Telephone:       row.Telephone,
		Status:          row.Status,
	}
}
