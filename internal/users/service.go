package users

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/pkg/cognito"
	"github.com/echnavi/charge-admin-backend/pkg/db"
	"github.com/echnavi/charge-admin-backend/pkg/db/models"
	"github.com/echnavi/charge-admin-backend/pkg/enums"
	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
	"github.com/echnavi/charge-admin-backend/pkg/jst"
	"github.com/echnavi/charge-admin-backend/pkg/logger"
	"github.com/echnavi/charge-admin-backend/pkg/phone"
)

const appUserNumberLength = 10

const (
	actorDashboard = "Dashboard"

	// Defaults applied when an admin binds an existing consumer to an agency.
	adminAssignPermission = 7
	adminAssignPassword   = "admin_user"

	// Corporate users start at the lowest permission; the password column
	// is legacy and never checked.
	corporateInitialPermission = 1
	corporateLegacyPassword    = "default_password"
)

// ServiceParams groups dependencies for the user service.
type ServiceParams struct {
	DB       *db.Client
	Repo     Repository
	Identity cognito.Provider
	Logger   *logger.Logger
}

// Service maintains dashboard users of every category: individual
// consumers, agency staff, and corporate staff.
type Service struct {
	db       *db.Client
	repo     Repository
	identity cognito.Provider
	logg     *logger.Logger
}

// NewService builds a user service.
func NewService(params ServiceParams) (*Service, error) {
	if params.DB == nil {
		return nil, errors.New("db is required")
	}
	if params.Repo == nil {
		return nil, errors.New("repo is required")
	}
	if params.Identity == nil {
		return nil, errors.New("identity provider is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Service{db: params.DB, repo: params.Repo, identity: params.Identity, logg: params.Logger}, nil
}

// ListIndividuals returns the non-deleted consumer accounts, newest
// first, optionally narrowed to one email address.
func (s *Service) ListIndividuals(ctx context.Context, req IndividualListRequest) ([]IndividualUserDTO, error) {
	rows, err := s.repo.ListIndividuals(ctx, req.Email)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing individual users")
	}
	out := make([]IndividualUserDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, IndividualUserDTO{
			AppUserNumber: row.AppUserNumber,
			LastName:      row.LastName,
			FirstName:     row.FirstName,
			Status:        row.Status,
			Mail:          row.Mail,
		})
	}
	return out, nil
}

// UpdateIndividualStatus changes a consumer's status, addressed by
// app_user_number.
func (s *Service) UpdateIndividualStatus(ctx context.Context, req IndividualUpdateRequest) (*IndividualUpdateResponse, error) {
	userID, found, err := s.repo.UserIDByAppNumber(ctx, req.AppUserNumber)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving user")
	}
	if !found {
		return nil, userNotFoundByNumber(req.AppUserNumber)
	}

	affected, err := s.repo.UpdateStatus(ctx, userID, *req.Status, jst.FormatDateTime(jst.Now()), actorDashboard)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating user status")
	}
	if affected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "No user found with the given ID.[E003]").
			WithDetails(map[string]any{"user_id": req.AppUserNumber})
	}
	return &IndividualUpdateResponse{UserID: userID}, nil
}

// AssignAgency binds an existing user to an agency: existing memberships
// are rebound, missing ones are created with the admin defaults.
func (s *Service) AssignAgency(ctx context.Context, req AssignAgencyRequest) (*AssignAgencyResponse, error) {
	userID, found, err := s.repo.UserIDByAppNumber(ctx, req.AppUserNumber)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving user")
	}
	if !found {
		return nil, userNotFoundByNumber(req.AppUserNumber)
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		membership, err := repo.FindAgencyMembership(ctx, userID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading agency membership")
		}
		if membership != nil {
			if err := repo.UpdateAgencyBinding(ctx, userID, req.AgencyID); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rebinding agency membership")
			}
			return nil
		}
		password := adminAssignPassword
		row := models.UserAgency{
			UserID:     userID,
			AgencyID:   req.AgencyID,
			Permission: adminAssignPermission,
			Password:   &password,
		}
		if err := repo.CreateAgencyMembership(ctx, &row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting agency membership")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &AssignAgencyResponse{AppUserNumber: req.AppUserNumber, AgencyID: req.AgencyID}, nil
}

// ListAgencyUsers serves the three agency dashboard views. An empty
// result is not an error.
func (s *Service) ListAgencyUsers(ctx context.Context, req AgencyListRequest) ([]AgencyUserDTO, error) {
	var (
		rows []memberRecord
		err  error
		mode string
	)
	switch {
	case req.GetAllFlg == 1:
		rows, err = s.repo.ListAgencyUsersAll(ctx)
		mode = "all"
	case req.GetCompanyUsersFlg == 1:
		rows, err = s.repo.ListAgencyColleagues(ctx, req.UserID)
		mode = "colleagues"
	default:
		rows, err = s.repo.AgencySelf(ctx, req.UserID)
		mode = "self"
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing agency users")
	}

	out := make([]AgencyUserDTO, 0, len(rows))
	for _, row := range rows {
		dto := AgencyUserDTO{
			UserID:        row.UserID,
			AppUserNumber: row.AppUserNumber,
			LastName:      row.LastName,
			FirstName:     row.FirstName,
			Status:        row.Status,
			Permission:    row.Permission,
		}
		switch mode {
		case "all":
			company := row.Company
			dto.Company = &company
		case "self":
			category := row.UserCategory
			name := row.PermissionName
			dto.UserCategory = &category
			dto.PermissionName = &name
		}
		out = append(out, dto)
	}
	return out, nil
}

// UpdateAgencyUser rewrites a staff profile and permission in one
// transaction. Status 3 also deletes the Cognito account; identity
// failures there are logged but never roll back the row.
func (s *Service) UpdateAgencyUser(ctx context.Context, req AgencyUpdateRequest) (*AgencyUpdateResponse, error) {
	userID, found, err := s.repo.UserIDByAppNumber(ctx, req.AppUserNumber)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving user")
	}
	if !found {
		return nil, userNotFoundByNumber(req.AppUserNumber)
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		now := jst.FormatDateTime(jst.Now())
		if err := repo.UpdateProfile(ctx, userID, req.LastName, req.FirstName, *req.Status, now, actorDashboard); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating user profile")
		}
		if err := repo.UpdateAgencyPermission(ctx, userID, *req.Permission); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating agency permission")
		}

		if *req.Status == enums.StatusDeleted {
			row, err := repo.FindByID(ctx, userID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading user email")
			}
			if row == nil || row.Mail == "" {
				return pkgerrors.New(pkgerrors.CodeNotFound, "指定されたユーザーのメールアドレスが見つかりません")
			}
			s.deleteIdentityByEmail(ctx, row.Mail)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &AgencyUpdateResponse{
		AppUserNumber: req.AppUserNumber,
		LastName:      req.LastName,
		FirstName:     req.FirstName,
	}, nil
}

// deleteIdentityByEmail removes the pool account behind an email.
// Best-effort: a missing or duplicate match only logs.
func (s *Service) deleteIdentityByEmail(ctx context.Context, email string) {
	username, err := s.identity.FindUsernameByEmail(ctx, email)
	if err != nil {
		s.logg.Error(ctx, "looking up identity account", err)
		return
	}
	if username == "" {
		s.logg.Warn(ctx, "no identity account for email, skipping delete")
		return
	}
	if err := s.identity.AdminDeleteUser(ctx, username); err != nil {
		s.logg.Error(ctx, "deleting identity account", err)
	}
}

// RegisterAgencyUser creates an agency staff account: m_user row, agency
// membership, and the identity-pool account with SMS MFA required. The
// row only commits after the identity provider accepts the user.
func (s *Service) RegisterAgencyUser(ctx context.Context, req AgencyRegisterRequest) (*RegisterResponse, error) {
	if req.AppUserNumber == "" && req.AgencyID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "app_user_numberまたはagencyIdのいずれかが必要です")
	}

	agencyID, err := s.resolveAgencyID(ctx, req.AppUserNumber, req.AgencyID)
	if err != nil {
		return nil, err
	}

	formattedPhone, err := phone.Canonicalize(req.Phone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid phone number")
	}

	var out RegisterResponse
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		number, err := db.GenerateUniqueNumber(tx, models.User{}.TableName(), "app_user_number", appUserNumberLength)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generating user number")
		}
		echNaviCode := "EchNavi" + "AGE" + number
		now := jst.FormatDateTime(jst.Now())

		row := models.User{
			EchNaviCode:   echNaviCode,
			AppUserNumber: number,
			UserCategory:  enums.CategoryAgency,
			LastName:      req.LastName,
			FirstName:     req.FirstName,
			Mail:          req.Email,
			CreateDate:    now,
			CreateUser:    actorDashboard,
			UpdateDate:    now,
			UpdateUser:    actorDashboard,
			Status:        enums.StatusActive,
		}
		if err := repo.Create(ctx, &row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting user")
		}
		membership := models.UserAgency{
			UserID:     row.UserID,
			AgencyID:   agencyID,
			Permission: *req.Permission,
		}
		if err := repo.CreateAgencyMembership(ctx, &membership); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting agency membership")
		}

		username, err := s.createIdentity(ctx, formattedPhone, req.Email, req.LastName, req.FirstName, echNaviCode, enums.CategoryAgency)
		if err != nil {
			return err
		}

		out = RegisterResponse{AppUserNumber: number, CognitoUsername: username, EchNaviCode: echNaviCode}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logg.Info(ctx, "agency user registered")
	return &out, nil
}

// ListCorporateUsers serves the corporate dashboard views: all corporate
// users, or the colleagues of the caller addressed by app_user_number.
func (s *Service) ListCorporateUsers(ctx context.Context, req CorporateListRequest) ([]CorporateUserDTO, error) {
	if req.GetAllFlg == 1 {
		rows, err := s.repo.ListCorporateUsersAll(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing corporate users")
		}
		out := make([]CorporateUserDTO, 0, len(rows))
		for _, row := range rows {
			corporateID := row.CorporateID
			company := row.Company
			out = append(out, CorporateUserDTO{
				UserID:        row.UserID,
				AppUserNumber: row.AppUserNumber,
				LastName:      row.LastName,
				FirstName:     row.FirstName,
				Status:        row.Status,
				Permission:    row.Permission,
				CorporateID:   &corporateID,
				Company:       &company,
			})
		}
		return out, nil
	}

	if req.AppUserNumber == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "userIdは必須です（getAllFlgが1の場合を除く）")
	}
	userID, found, err := s.repo.UserIDByAppNumber(ctx, req.AppUserNumber)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving user")
	}
	if !found {
		return nil, userNotFoundByNumber(req.AppUserNumber)
	}

	rows, err := s.repo.ListCorporateColleagues(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing corporate users")
	}
	out := make([]CorporateUserDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, CorporateUserDTO{
			UserID:        row.UserID,
			AppUserNumber: row.AppUserNumber,
			LastName:      row.LastName,
			FirstName:     row.FirstName,
			Status:        row.Status,
			Permission:    row.Permission,
		})
	}
	return out, nil
}

// UpdateCorporateUser rewrites a corporate staff profile and permission.
// Unlike the agency flow, deletion here never touches the identity pool.
func (s *Service) UpdateCorporateUser(ctx context.Context, req CorporateUpdateRequest) error {
	userID, found, err := s.repo.UserIDByAppNumber(ctx, req.AppUserNumber)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving user")
	}
	if !found {
		return userNotFoundByNumber(req.AppUserNumber)
	}

	return s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateNamesAndStatus(ctx, userID, req.LastName, req.FirstName, *req.Status); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating user profile")
		}
		if err := repo.UpdateCorporatePermission(ctx, userID, *req.Permission); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating corporate permission")
		}
		return nil
	})
}

// RegisterCorporateUser creates a corporate staff account. The nav code
// sequence derives from the corporate's current member count.
func (s *Service) RegisterCorporateUser(ctx context.Context, req CorporateRegisterRequest) (*RegisterResponse, error) {
	if req.AppUserNumber == "" && req.CorporateID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "app_user_numberまたはcorporateIdのいずれかが必要です")
	}

	corporateID, err := s.resolveCorporateID(ctx, req.AppUserNumber, req.CorporateID)
	if err != nil {
		return nil, err
	}

	formattedPhone, err := phone.Canonicalize(req.Phone)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid phone number")
	}

	var out RegisterResponse
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		number, err := db.GenerateUniqueNumber(tx, models.User{}.TableName(), "app_user_number", appUserNumberLength)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "generating user number")
		}
		count, err := repo.CountCorporateUsers(ctx, corporateID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting corporate users")
		}
		echNaviCode := fmt.Sprintf("CORPEchNaviCD%d%04d", corporateID, count+1)
		now := jst.FormatDateTime(jst.Now())

		row := models.User{
			EchNaviCode:   echNaviCode,
			AppUserNumber: number,
			UserCategory:  enums.CategoryCorporate,
			LastName:      req.LastName,
			FirstName:     req.FirstName,
			Mail:          req.Email,
			CreateDate:    now,
			CreateUser:    actorDashboard,
			UpdateDate:    now,
			UpdateUser:    actorDashboard,
			Status:        enums.StatusActive,
		}
		if err := repo.Create(ctx, &row); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting user")
		}
		password := corporateLegacyPassword
		membership := models.UserCorporate{
			UserID:      row.UserID,
			CorporateID: corporateID,
			Permission:  corporateInitialPermission,
			Password:    &password,
		}
		if err := repo.CreateCorporateMembership(ctx, &membership); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "inserting corporate membership")
		}

		username, err := s.createIdentity(ctx, formattedPhone, req.Email, req.LastName, req.FirstName, echNaviCode, enums.CategoryCorporate)
		if err != nil {
			return err
		}

		out = RegisterResponse{AppUserNumber: number, CognitoUsername: username, EchNaviCode: echNaviCode}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.logg.Info(ctx, "corporate user registered")
	return &out, nil
}

// createIdentity provisions the pool account and flags SMS MFA as the
// mandatory second factor.
func (s *Service) createIdentity(ctx context.Context, phoneE164, email, lastName, firstName, echNaviCode string, category enums.UserCategory) (string, error) {
	username, err := s.identity.AdminCreateUser(ctx, cognito.CreateUserInput{
		Phone:        phoneE164,
		Email:        email,
		LastName:     lastName,
		FirstName:    firstName,
		EchNaviCode:  echNaviCode,
		UserCategory: fmt.Sprintf("%d", category),
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating identity account")
	}
	if err := s.identity.SetSMSMFARequired(ctx, username); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "enabling SMS MFA")
	}
	return username, nil
}

func (s *Service) resolveAgencyID(ctx context.Context, appUserNumber string, explicit *int64) (int64, error) {
	if explicit != nil {
		return *explicit, nil
	}
	userID, found, err := s.repo.UserIDByAppNumber(ctx, appUserNumber)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving user")
	}
	if !found {
		return 0, userNotFoundByNumber(appUserNumber)
	}
	membership, err := s.repo.FindAgencyMembership(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading agency membership")
	}
	if membership == nil {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "指定されたユーザーIDに対応する企業IDが見つかりません")
	}
	return membership.AgencyID, nil
}

func (s *Service) resolveCorporateID(ctx context.Context, appUserNumber string, explicit *int64) (int64, error) {
	if explicit != nil {
		return *explicit, nil
	}
	userID, found, err := s.repo.UserIDByAppNumber(ctx, appUserNumber)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "resolving user")
	}
	if !found {
		return 0, userNotFoundByNumber(appUserNumber)
	}
	membership, err := s.repo.FindCorporateMembership(ctx, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading corporate membership")
	}
	if membership == nil {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, "指定されたユーザーIDに対応する企業IDが見つかりません")
	}
	return membership.CorporateID, nil
}

func userNotFoundByNumber(appUserNumber string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, "指定されたapp_user_numberに対応するユーザーが見つかりません").
		WithDetails(map[string]any{"app_user_number": appUserNumber})
}
