package charges

import (
	"context"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
)

// Timestamps are returned in ISO 8601 without an offset, the format the
// dashboard already parses.
const timestampLayout = "2006-01-02T15:04:05"

// ServiceParams groups dependencies for the session history service.
type ServiceParams struct {
	Repo Repository
}

// Service answers session history queries for the dashboard.
type Service struct {
	repo Repository
}

// NewService builds a history service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	return &Service{repo: params.Repo}, nil
}

// History returns sessions between the two period bounds. When the caller
// does not name chargers explicitly, the visible set derives from the
// caller's agency and permission level; a caller with nothing visible
// gets an empty result, not an error.
func (s *Service) History(ctx context.Context, req HistoryRequest) ([]HistoryRow, error) {
	userID, found, err := s.repo.UserIDByAppNumber(ctx, req.AppUserNumber)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving user")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "指定されたapp_user_numberに対応するユーザーが見つかりません")
	}

	powerSupplyIDs := req.PowerSupplyIDs
	if len(powerSupplyIDs) == 0 {
		permission, _, found, err := s.repo.PermissionAndAgency(ctx, userID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving permission")
		}
		if !found {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("ユーザーID %s の権限が見つかりません", req.AppUserNumber))
		}

		powerSupplyIDs, err = s.repo.PowerSupplyIDsForUser(ctx, userID, permissionRange(permission))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving visible chargers")
		}
	}

	if len(powerSupplyIDs) == 0 {
		return nil, nil
	}

	records, err := s.repo.ListSessions(ctx, powerSupplyIDs, req.StartPeriod, req.EndPeriod)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing sessions")
	}

	out := make([]HistoryRow, 0, len(records))
	for _, rec := range records {
		out = append(out, HistoryRow{
			TransactionID:        rec.TransactionID,
			PowerSupplyID:        rec.PowerSupplyID,
			UserID:               rec.UserID,
			ChargingStart:        formatTimestamp(rec.ChargingStart),
			ChargingEnd:          formatTimestamp(rec.ChargingEnd),
			ChargedAmount:        rec.ChargedAmount,
			BillingAmount:        rec.BillingAmount,
			AppUserNumber:        rec.AppUserNumber,
			StationName:          rec.StationName,
			AppPowerSupplyNumber: rec.AppPowerSupplyNumber,
			PowerSupplyName:      rec.PowerSupplyName,
		})
	}
	return out, nil
}

// Unpaid returns the unsettled sessions on chargers visible to the caller,
// newest first.
func (s *Service) Unpaid(ctx context.Context, req UnpaidRequest) ([]UnpaidRow, error) {
	permission, agencyID, found, err := s.repo.PermissionAndAgency(ctx, req.UserID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving permission")
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("ユーザーID %d の権限が見つかりません", req.UserID))
	}

	powerSupplyIDs, err := s.repo.PowerSupplyIDsForAgency(ctx, agencyID, permissionRange(permission))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving visible chargers")
	}
	if len(powerSupplyIDs) == 0 {
		return nil, nil
	}

	records, err := s.repo.ListUnpaidSessions(ctx, powerSupplyIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing unpaid sessions")
	}

	out := make([]UnpaidRow, 0, len(records))
	for _, rec := range records {
		out = append(out, UnpaidRow{
			TransactionID:        rec.TransactionID,
			StationName:          rec.StationName,
			AppPowerSupplyNumber: rec.AppPowerSupplyNumber,
			ChargingStart:        formatTimestamp(rec.ChargingStart),
			ChargingTime:         rec.ChargingTime,
			ChargingRate:         rec.ChargingRate,
			ChargedAmount:        rec.ChargedAmount,
			BillingAmount:        rec.BillingAmount,
			AppUserNumber:        rec.AppUserNumber,
			LastName:             rec.LastName,
			FirstName:            rec.FirstName,
		})
	}
	return out, nil
}

// Download exports the full session history of one station or one charger.
func (s *Service) Download(ctx context.Context, req DownloadRequest) ([]DownloadRow, error) {
	if req.LocationID == nil && req.PowerSupplyID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "location_id または powersupply_id は必須です")
	}

	var (
		records []sessionRecord
		err     error
	)
	if req.LocationID != nil {
		records, err = s.repo.ListSessionsByLocation(ctx, *req.LocationID)
	} else {
		records, err = s.repo.ListSessionsByPowerSupply(ctx, *req.PowerSupplyID)
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "exporting sessions")
	}

	out := make([]DownloadRow, 0, len(records))
	for _, rec := range records {
		out = append(out, DownloadRow{
			TransactionID:        rec.TransactionID,
			ChargingStart:        formatTimestamp(rec.ChargingStart),
			ChargingEnd:          formatTimestamp(rec.ChargingEnd),
			ChargedAmount:        rec.ChargedAmount,
			BillingAmount:        rec.BillingAmount,
			AppUserNumber:        rec.AppUserNumber,
			StationName:          rec.StationName,
			AppPowerSupplyNumber: rec.AppPowerSupplyNumber,
			PowerSupplyName:      rec.PowerSupplyName,
		})
	}
	return out, nil
}

func permissionRange(permission int) []int {
	out := make([]int, 0, permission)
	for p := 1; p <= permission; p++ {
		out = append(out, p)
	}
	return out
}

func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(timestampLayout)
	return &s
}
