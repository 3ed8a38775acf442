package powersupplies

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/pkg/db"
	"github.com/echnavi/charge-admin-backend/pkg/db/models"
	"github.com/echnavi/charge-admin-backend/pkg/enums"
	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
	"github.com/echnavi/charge-admin-backend/pkg/jst"
)

const powerSupplyNumberLength = 12

// Audit actors. Repricing is recorded as "API" because the charging
// subsystem also calls it outside the dashboard.
const (
	actorDashboard = "Dashboard"
	actorAPI       = "API"
)

// ServiceParams groups dependencies for the charger service.
type ServiceParams struct {
	DB   *db.Client
	Repo Repository
}

// Service maintains the charger master for agency users.
type Service struct {
	db   *db.Client
	repo Repository
}

// NewService builds a charger service.
func NewService(params ServiceParams) (*Service, error) {
	if params.DB == nil {
		return nil, errors.New("db is required")
	}
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{db: params.DB, repo: params.Repo}, nil
}

// List returns the chargers at the given stations whose permission level
// falls within the caller's range (1 through the caller's own level).
func (s *Service) List(ctx context.Context, req ListRequest) ([]PowerSupplyDTO, error) {
	permission, found, err := s.repo.PermissionForUser(ctx, req.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving permission")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("ユーザーID %d の権限が見つかりません", req.UserID))
	}

	permissions := make([]int, 0, permission)
	for p := 1; p <= permission; p++ {
		permissions = append(permissions, p)
	}

	rows, err := s.repo.ListByLocationsAndPermissions(ctx, req.LocationIDs, permissions)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing chargers")
	}

	out := make([]PowerSupplyDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, toDTO(row))
	}
	return out, nil
}

// Register mints a twelve digit charger number and inserts the row.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	now := jst.FormatDateTime(jst.Now())

	var out RegisterResponse
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		number, err := db.GenerateUniqueNumber(tx, models.PowerSupply{}.TableName(), "app_powersupply_number", powerSupplyNumberLength)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generating charger number")
		}

		row := models.PowerSupply{
			LocationID:           req.LocationID,
			AppPowerSupplyNumber: number,
			PowerSupplyName:      req.PowerSupplyName,
			Type:                 *req.Type,
			Wat:                  *req.Wat,
			Price:                req.Price,
			QuickPower:           *req.QuickPower,
			NomalPower:           *req.NomalPower,
			Maintenance:          *req.Maintenance,
			Online:               *req.Online,
			ChargeSegment:        *req.ChargeSegment,
			Permission:           *req.Permission,
			CreateDate:           now,
			CreateUser:           actorDashboard,
			UpdateDate:           now,
			UpdateUser:           actorDashboard,
			Status:               enums.StatusActive,
		}
		if err := s.repo.WithTx(tx).Create(ctx, &row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting charger")
		}

		out = RegisterResponse{AppPowerSupplyNumber: number}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update rewrites the charger row in full.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*UpdateResponse, error) {
	row := models.PowerSupply{
		PowerSupplyID:   req.PowerSupplyID,
		LocationID:      req.LocationID,
		PowerSupplyName: req.PowerSupplyName,
		Plan:            req.Plan,
		Type:            req.Type,
		Wat:             req.Wat,
		Price:           req.Price,
		QuickPower:      req.QuickPower,
		NomalPower:      req.NomalPower,
		Maintenance:     req.Maintenance,
		Online:          req.Online,
		ChargeSegment:   req.ChargeSegment,
		Permission:      req.Permission,
		Status:          req.Status,
		UpdateDate:      jst.FormatDateTime(jst.Now()),
		UpdateUser:      actorDashboard,
	}

	affected, err := s.repo.Update(ctx, &row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating charger")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "更新対象のデータが見つかりません")
	}

	return &UpdateResponse{PowerSupplyID: req.PowerSupplyID, PowerSupplyName: req.PowerSupplyName}, nil
}

// UpdateChargeFee reprices either one charger or every charger at a
// station. Requests naming both or neither scope are rejected.
func (s *Service) UpdateChargeFee(ctx context.Context, req ChargeFeeRequest) (*ChargeFeeResponse, error) {
	if req.PowerSupplyID != nil && req.LocationID != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "powersupply_idとlocation_idは同時に指定できません")
	}
	if req.PowerSupplyID == nil && req.LocationID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "powersupply_idまたはlocation_idのいずれかが必要です")
	}

	now := jst.FormatDateTime(jst.Now())

	var (
		affected int64
		err      error
	)
	if req.PowerSupplyID != nil {
		affected, err = s.repo.UpdatePriceByID(ctx, *req.PowerSupplyID, req.Price, now, actorAPI)
	} else {
		affected, err = s.repo.UpdatePriceByLocation(ctx, *req.LocationID, req.Price, now, actorAPI)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating charge fee")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "更新対象のデータが見つかりません")
	}

	return &ChargeFeeResponse{PowerSupplyID: req.PowerSupplyID, LocationID: req.LocationID, Price: req.Price}, nil
}

// QRInfo resolves the printed QR number to the charger identity. A miss
// returns nil without error; the endpoint reports it as a sentinel.
func (s *Service) QRInfo(ctx context.Context, req QRInfoRequest) (*QRInfoResponse, error) {
	row, err := s.repo.FindByNumber(ctx, req.AppPowerSupplyNumber)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading charger")
	}
	if row == nil {
		return nil, nil
	}
	return &QRInfoResponse{
		AppPowerSupplyNumber: row.AppPowerSupplyNumber,
		PowerSupplyName:      row.PowerSupplyName,
	}, nil
}

func toDTO(row models.PowerSupply) PowerSupplyDTO {
	return PowerSupplyDTO{
		PowerSupplyID:        row.PowerSupplyID,
		LocationID:           row.LocationID,
		AppPowerSupplyNumber: row.AppPowerSupplyNumber,
		PowerSupplyName:      row.PowerSupplyName,
		Plan:                 row.Plan,
		Type:                 row.Type,
		Wat:                  row.Wat,
		Price:                row.Price,
		QuickPower:           row.QuickPower,
		NomalPower:           row.NomalPower,
		Maintenance:          row.Maintenance,
		Online:               row.Online,
		ChargeSegment:        row.ChargeSegment,
		Permission:           row.Permission,
		Status:               row.Status,
	}
}
