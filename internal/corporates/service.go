package corporates

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

const corporateNumberLength = 3

const (
	actorAdmin     = "admin"
	actorDashboard = "Dashboard"
)

// ServiceParams groups dependencies for the corporate service.
type ServiceParams struct {
	DB   *db.Client
	Repo Repository
}

// Service orchestrates corporate client master maintenance.
type Service struct {
	db   *db.Client
	repo Repository
}

// NewService builds a corporate service.
func NewService(params ServiceParams) (*Service, error) {
	if params.DB == nil {
		return nil, errors.New("db is required")
	}
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{db: params.DB, repo: params.Repo}, nil
}

// Register mints an app_corporate_number and inserts the corporate row.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	now := jst.FormatDateTime(jst.Now())

	var out RegisterResponse
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		number, err := db.GenerateUniqueNumber(tx, models.Corporate{}.TableName(), "app_corporate_number", corporateNumberLength)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generating corporate number")
		}

		row := models.Corporate{
			AppCorporateNumber: number,
			Company:            req.Corporate,
			ZipCode:            req.ZipCode,
			Prefecture:         req.Prefecture,
			City:               req.City,
			Address:            req.Address,
			Building:           req.Building,
			Country:            req.Country,
			Telephone:          req.Telephone,
			CreateDate:         now,
			CreateUser:         actorAdmin,
			UpdateDate:         now,
			UpdateUser:         actorAdmin,
			Status:             enums.StatusActive,
		}
		if err := s.repo.WithTx(tx).Create(ctx, &row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting corporate")
		}

		out = RegisterResponse{CorporateID: row.CorporateID, AppCorporateNumber: row.AppCorporateNumber}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns every corporate row, including inactive ones.
func (s *Service) List(ctx context.Context) ([]CorporateDTO, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing corporates")
	}
	out := make([]CorporateDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out, nil
}

// Update rewrites the full corporate row and stamps the update audit columns.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*CorporateDTO, error) {
	row, err := s.repo.FindByID(ctx, req.CorporateID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading corporate")
	}
	if row == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "No corporate found with the given ID.[E003]").
			WithDetails(map[string]any{"corporate_id": req.CorporateID})
	}

	row.AppCorporateNumber = req.AppCorporateNumber
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
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating corporate")
	}

	dto := toDTO(*row)
	return &dto, nil
}

func toDTO(row models.Corporate) CorporateDTO {
	return CorporateDTO{
		CorporateID:        row.CorporateID,
		AppCorporateNumber: row.AppCorporateNumber,
		Company:            row.Company,
		ZipCode:            row.ZipCode,
		Prefecture:         row.Prefecture,
		City:               row.City,
		Address:            row.Address,
		Building:           row.Building,
		Country:            row.Country,
		Telephone:          row.Telephone,
		Status:             row.Status,
	}
}
