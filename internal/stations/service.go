package stations

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/pkg/db"
	"github.com/echnavi/charge-admin-backend/pkg/db/models"
	"github.com/echnavi/charge-admin-backend/pkg/enums"
	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
	"github.com/echnavi/charge-admin-backend/pkg/jst"
)

const actorDashboard = "Dashboard"

// ServiceParams groups dependencies for the station service.
type ServiceParams struct {
	DB   *db.Client
	Repo Repository
}

// Service maintains the charging station master for agency users.
type Service struct {
	db   *db.Client
	repo Repository
}

// NewService builds a station service.
func NewService(params ServiceParams) (*Service, error) {
	if params.DB == nil {
		return nil, errors.New("db is required")
	}
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{db: params.DB, repo: params.Repo}, nil
}

// List returns the stations of the caller's agency in the given status.
// A caller with no agency binding simply sees no stations.
func (s *Service) List(ctx context.Context, req ListRequest) ([]StationDTO, error) {
	agencyID, found, err := s.repo.AgencyIDForUser(ctx, req.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving agency")
	}
	if !found {
		return nil, nil
	}

	rows, err := s.repo.ListByAgencyAndStatus(ctx, agencyID, *req.Status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing stations")
	}

	out := make([]StationDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, StationDTO{
			UserID:      req.UserID,
			LocationID:  row.LocationID,
			StationName: row.StationName,
			AgencyID:    row.AgencyID,
			ZipCode:     row.ZipCode,
			Prefecture:  row.Prefecture,
			City:        row.City,
			Address:     row.Address,
			Building:    row.Building,
			OpenTime:    NormalizeClock(row.OpenTime),
			EndTime:     NormalizeClock(row.EndTime),
			OpenDay:     row.OpenDay,
			Status:      row.Status,
		})
	}
	return out, nil
}

// Register inserts a station under the caller's agency, minting the next
// app_location_number for that agency.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	now := jst.FormatDateTime(jst.Now())

	var out RegisterResponse
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		agencyID, found, err := repo.AgencyIDForUser(ctx, req.UserID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving agency")
		}
		if !found {
			return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("ユーザーID %d に対応する企業IDが見つかりません", req.UserID))
		}

		number, err := nextLocationNumber(ctx, repo, agencyID)
		if err != nil {
			return err
		}

		row := models.Location{
			AgencyID:          agencyID,
			AppLocationNumber: number,
			StationName:       req.StationName,
			ZipCode:           req.ZipCode,
			Prefecture:        req.Prefecture,
			City:              req.City,
			Address:           req.Address,
			Building:          req.Building,
			OpenTime:          req.OpenTime,
			EndTime:           req.EndTime,
			OpenDay:           req.OpenDay,
			CreateDate:        now,
			CreateUser:        actorDashboard,
			UpdateDate:        now,
			UpdateUser:        actorDashboard,
			Status:            enums.StatusActive,
		}
		if err := repo.Create(ctx, &row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting station")
		}

		out = RegisterResponse{AppLocationNumber: number}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update rewrites the station row. Status defaults to active when the
// dashboard omits it.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*UpdateResponse, error) {
	status := enums.StatusActive
	if req.Status != nil {
		status = *req.Status
	}

	row := models.Location{
		LocationID:  req.LocationID,
		StationName: req.StationName,
		ZipCode:     req.ZipCode,
		Prefecture:  req.Prefecture,
		City:        req.City,
		Address:     req.Address,
		Building:    req.Building,
		OpenTime:    req.OpenTime,
		EndTime:     req.EndTime,
		OpenDay:     req.OpenDay,
		UpdateDate:  jst.FormatDateTime(jst.Now()),
		UpdateUser:  actorDashboard,
		Status:      status,
	}

	affected, err := s.repo.Update(ctx, &row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating station")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "更新対象のデータが見つかりません")
	}

	return &UpdateResponse{LocationID: req.LocationID, StationName: req.StationName}, nil
}

// nextLocationNumber continues the per-agency sequence. The first number
// is the agency id followed by "1" zero-padded so the whole string is
// four characters; later numbers increment the previous one.
func nextLocationNumber(ctx context.Context, repo Repository, agencyID int64) (string, error) {
	last, found, err := repo.LastLocationNumber(ctx, agencyID)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reading location numbers")
	}
	if found {
		n, err := strconv.Atoi(last)
		if err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "malformed location number")
		}
		return strconv.Itoa(n + 1), nil
	}

	agency := strconv.FormatInt(agencyID, 10)
	padding := 4 - len(agency)
	if padding < 1 {
		padding = 1
	}
	return agency + fmt.Sprintf("%0*d", padding, 1), nil
}

// NormalizeClock folds "HH:MM:SS" down to "HH:MM". Values already in
// "HH:MM" pass through; anything else renders as "00:00".
func NormalizeClock(value string) string {
	parts := strings.Split(value, ":")
	if len(parts) < 2 {
		return "00:00"
	}
	hh, err1 := strconv.Atoi(parts[0])
	mm, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || hh < 0 || hh > 23 || mm < 0 || mm > 59 {
		return "00:00"
	}
	return fmt.Sprintf("%02d:%02d", hh, mm)
}
