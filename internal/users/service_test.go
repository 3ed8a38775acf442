package users

import (
	"context"
	"io"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/echnavi/charge-admin-backend/pkg/cognito"
	"github.com/echnavi/charge-admin-backend/pkg/db"
	"github.com/echnavi/charge-admin-backend/pkg/db/models"
	"github.com/echnavi/charge-admin-backend/pkg/enums"
	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
	"github.com/echnavi/charge-admin-backend/pkg/logger"
)

// stubIdentity records identity-pool calls without talking to AWS.
type stubIdentity struct {
	cognito.Provider

	created     []cognito.CreateUserInput
	mfaSet      []string
	deleted     []string
	createErr   error
	emailLookup map[string]string
}

func (s *stubIdentity) AdminCreateUser(_ context.Context, in cognito.CreateUserInput) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	s.created = append(s.created, in)
	return in.Phone, nil
}

func (s *stubIdentity) SetSMSMFARequired(_ context.Context, username string) error {
	s.mfaSet = append(s.mfaSet, username)
	return nil
}

func (s *stubIdentity) FindUsernameByEmail(_ context.Context, email string) (string, error) {
	return s.emailLookup[email], nil
}

func (s *stubIdentity) AdminDeleteUser(_ context.Context, username string) error {
	s.deleted = append(s.deleted, username)
	return nil
}

func newTestService(t *testing.T) (*Service, *stubIdentity, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file:users_test?mode=memory&cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.User{}, &models.UserGeneral{}, &models.UserAgency{},
		&models.UserCorporate{}, &models.Agency{}, &models.Corporate{}, &models.Permission{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	for _, table := range []string{
		"m_user", "m_user_general", "m_user_agency", "m_user_corporate",
		"m_agency", "m_corporate", "m_permission",
	} {
		if err := conn.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("failed to reset %s: %v", table, err)
		}
	}

	identity := &stubIdentity{emailLookup: map[string]string{}}
	svc, err := NewService(ServiceParams{
		DB:       db.NewFromGorm(conn),
		Repo:     NewRepository(conn),
		Identity: identity,
		Logger:   logger.New(logger.Options{ServiceName: "test", Output: io.Discard}),
	})
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc, identity, conn
}

func seedUser(t *testing.T, conn *gorm.DB, number string, category enums.UserCategory, mail string) int64 {
	t.Helper()
	row := models.User{
		EchNaviCode:   "EC" + number,
		AppUserNumber: number,
		UserCategory:  category,
		LastName:      "山田",
		FirstName:     "太郎",
		Mail:          mail,
		Status:        enums.StatusActive,
	}
	if err := conn.Create(&row).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return row.UserID
}

func TestListIndividualsFiltersByEmail(t *testing.T) {
	svc, _, conn := newTestService(t)

	first := seedUser(t, conn, "1000000001", enums.CategoryIndividual, "one@example.com")
	second := seedUser(t, conn, "1000000002", enums.CategoryIndividual, "two@example.com")
	deleted := seedUser(t, conn, "1000000003", enums.CategoryIndividual, "gone@example.com")
	conn.Model(&models.User{}).Where("user_id = ?", deleted).Update("status", enums.StatusDeleted)
	for _, id := range []int64{first, second, deleted} {
		conn.Create(&models.UserGeneral{UserID: id})
	}

	all, err := svc.ListIndividuals(context.Background(), IndividualListRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(all))
	}
	if all[0].AppUserNumber != "1000000002" {
		t.Fatalf("expected newest first, got %q", all[0].AppUserNumber)
	}

	byEmail, err := svc.ListIndividuals(context.Background(), IndividualListRequest{Email: "one@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byEmail) != 1 || byEmail[0].Mail != "one@example.com" {
		t.Fatalf("unexpected filter result %+v", byEmail)
	}
}

func TestUpdateIndividualStatusStampsAudit(t *testing.T) {
	svc, _, conn := newTestService(t)
	id := seedUser(t, conn, "1000000010", enums.CategoryIndividual, "a@example.com")

	status := enums.StatusInactive
	resp, err := svc.UpdateIndividualStatus(context.Background(), IndividualUpdateRequest{
		AppUserNumber: "1000000010",
		Status:        &status,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.UserID != id {
		t.Fatalf("expected user id %d, got %d", id, resp.UserID)
	}

	var row models.User
	if err := conn.Where("user_id = ?", id).First(&row).Error; err != nil {
		t.Fatalf("row not found: %v", err)
	}
	if row.Status != enums.StatusInactive || row.UpdateUser != "Dashboard" {
		t.Fatalf("unexpected row %+v", row)
	}
}

func TestUpdateIndividualStatusUnknownNumber(t *testing.T) {
	svc, _, _ := newTestService(t)

	status := enums.StatusActive
	_, err := svc.UpdateIndividualStatus(context.Background(), IndividualUpdateRequest{
		AppUserNumber: "9999999999",
		Status:        &status,
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestAssignAgencyUpsertsMembership(t *testing.T) {
	svc, _, conn := newTestService(t)
	id := seedUser(t, conn, "1000000020", enums.CategoryIndividual, "b@example.com")

	// First call inserts with the admin defaults.
	resp, err := svc.AssignAgency(context.Background(), AssignAgencyRequest{
		AppUserNumber: "1000000020",
		AgencyID:      7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AgencyID != 7 {
		t.Fatalf("unexpected response %+v", resp)
	}
	var membership models.UserAgency
	if err := conn.Where("user_id = ?", id).First(&membership).Error; err != nil {
		t.Fatalf("membership not created: %v", err)
	}
	if membership.Permission != adminAssignPermission {
		t.Fatalf("expected permission %d, got %d", adminAssignPermission, membership.Permission)
	}

	// Second call only rebinds the agency.
	if _, err := svc.AssignAgency(context.Background(), AssignAgencyRequest{
		AppUserNumber: "1000000020",
		AgencyID:      8,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := conn.Where("user_id = ?", id).First(&membership).Error; err != nil {
		t.Fatalf("membership lost: %v", err)
	}
	if membership.AgencyID != 8 || membership.Permission != adminAssignPermission {
		t.Fatalf("unexpected membership %+v", membership)
	}
}

func TestListAgencyUsersModes(t *testing.T) {
	svc, _, conn := newTestService(t)

	conn.Create(&models.Agency{AgencyID: 1, AppAgencyNumber: "001", Company: "Agency One", Status: enums.StatusActive})
	conn.Create(&models.Permission{PermissionID: 5, PermissionName: "manager"})
	conn.Create(&models.Permission{PermissionID: 3, PermissionName: "staff"})

	alice := seedUser(t, conn, "4000000001", enums.CategoryAgency, "alice@example.com")
	bob := seedUser(t, conn, "4000000002", enums.CategoryAgency, "bob@example.com")
	conn.Create(&models.UserAgency{UserID: alice, AgencyID: 1, Permission: 5})
	conn.Create(&models.UserAgency{UserID: bob, AgencyID: 1, Permission: 3})

	all, err := svc.ListAgencyUsers(context.Background(), AgencyListRequest{GetAllFlg: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(all))
	}
	if all[0].Company == nil || *all[0].Company != "Agency One" {
		t.Fatalf("expected company in all mode, got %+v", all[0])
	}

	colleagues, err := svc.ListAgencyUsers(context.Background(), AgencyListRequest{UserID: alice, GetCompanyUsersFlg: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(colleagues) != 2 {
		t.Fatalf("expected 2 colleagues, got %d", len(colleagues))
	}
	if colleagues[0].Company != nil || colleagues[0].PermissionName != nil {
		t.Fatalf("colleague mode must not carry company or permission name: %+v", colleagues[0])
	}

	self, err := svc.ListAgencyUsers(context.Background(), AgencyListRequest{UserID: alice})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(self) != 1 {
		t.Fatalf("expected 1 row, got %d", len(self))
	}
	if self[0].PermissionName == nil || *self[0].PermissionName != "manager" {
		t.Fatalf("expected permission name in self mode, got %+v", self[0])
	}
	if self[0].UserCategory == nil || *self[0].UserCategory != int(enums.CategoryAgency) {
		t.Fatalf("expected user category in self mode, got %+v", self[0])
	}
}

func TestListAgencyUsersEmptyIsNotAnError(t *testing.T) {
	svc, _, _ := newTestService(t)

	rows, err := svc.ListAgencyUsers(context.Background(), AgencyListRequest{GetAllFlg: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestUpdateAgencyUserDeletesIdentityOnStatus3(t *testing.T) {
	svc, identity, conn := newTestService(t)
	id := seedUser(t, conn, "4000000010", enums.CategoryAgency, "staff@example.com")
	conn.Create(&models.UserAgency{UserID: id, AgencyID: 1, Permission: 5})
	identity.emailLookup["staff@example.com"] = "+819012345678"

	status := enums.StatusDeleted
	permission := 3
	resp, err := svc.UpdateAgencyUser(context.Background(), AgencyUpdateRequest{
		AppUserNumber: "4000000010",
		LastName:      "佐藤",
		FirstName:     "花子",
		Status:        &status,
		Permission:    &permission,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.LastName != "佐藤" {
		t.Fatalf("unexpected response %+v", resp)
	}

	var row models.User
	conn.Where("user_id = ?", id).First(&row)
	if row.Status != enums.StatusDeleted || row.UpdateUser != "Dashboard" {
		t.Fatalf("unexpected row %+v", row)
	}
	var membership models.UserAgency
	conn.Where("user_id = ?", id).First(&membership)
	if membership.Permission != 3 {
		t.Fatalf("permission not updated: %+v", membership)
	}
	if len(identity.deleted) != 1 || identity.deleted[0] != "+819012345678" {
		t.Fatalf("expected pool delete, got %v", identity.deleted)
	}
}

func TestUpdateAgencyUserSurvivesMissingPoolAccount(t *testing.T) {
	svc, identity, conn := newTestService(t)
	id := seedUser(t, conn, "4000000011", enums.CategoryAgency, "ghost@example.com")
	conn.Create(&models.UserAgency{UserID: id, AgencyID: 1, Permission: 5})

	status := enums.StatusDeleted
	permission := 5
	if _, err := svc.UpdateAgencyUser(context.Background(), AgencyUpdateRequest{
		AppUserNumber: "4000000011",
		LastName:      "佐藤",
		FirstName:     "花子",
		Status:        &status,
		Permission:    &permission,
	}); err != nil {
		t.Fatalf("missing pool account must not fail the update: %v", err)
	}
	if len(identity.deleted) != 0 {
		t.Fatalf("unexpected deletes %v", identity.deleted)
	}
}

func TestRegisterAgencyUserProvisionsIdentity(t *testing.T) {
	svc, identity, conn := newTestService(t)

	agencyID := int64(3)
	permission := 4
	resp, err := svc.RegisterAgencyUser(context.Background(), AgencyRegisterRequest{
		AgencyID:   &agencyID,
		LastName:   "鈴木",
		FirstName:  "一郎",
		Email:      "ichiro@example.com",
		Phone:      "09012345678",
		Permission: &permission,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.AppUserNumber) != appUserNumberLength {
		t.Fatalf("expected %d-digit number, got %q", appUserNumberLength, resp.AppUserNumber)
	}
	if !strings.HasPrefix(resp.EchNaviCode, "EchNaviAGE") {
		t.Fatalf("unexpected nav code %q", resp.EchNaviCode)
	}
	if resp.CognitoUsername != "+819012345678" {
		t.Fatalf("expected E.164 username, got %q", resp.CognitoUsername)
	}

	var row models.User
	if err := conn.Where("app_user_number = ?", resp.AppUserNumber).First(&row).Error; err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if row.UserCategory != enums.CategoryAgency || row.CreateUser != "Dashboard" {
		t.Fatalf("unexpected row %+v", row)
	}
	var membership models.UserAgency
	if err := conn.Where("user_id = ?", row.UserID).First(&membership).Error; err != nil {
		t.Fatalf("membership not persisted: %v", err)
	}
	if membership.AgencyID != 3 || membership.Permission != 4 {
		t.Fatalf("unexpected membership %+v", membership)
	}

	if len(identity.created) != 1 || identity.created[0].UserCategory != "4" {
		t.Fatalf("unexpected pool create %+v", identity.created)
	}
	if len(identity.mfaSet) != 1 {
		t.Fatalf("SMS MFA not required: %v", identity.mfaSet)
	}
}

func TestRegisterAgencyUserRollsBackOnIdentityFailure(t *testing.T) {
	svc, identity, conn := newTestService(t)
	identity.createErr = context.DeadlineExceeded

	agencyID := int64(3)
	permission := 4
	_, err := svc.RegisterAgencyUser(context.Background(), AgencyRegisterRequest{
		AgencyID:   &agencyID,
		LastName:   "鈴木",
		FirstName:  "一郎",
		Email:      "ichiro@example.com",
		Phone:      "09012345678",
		Permission: &permission,
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}

	var count int64
	conn.Model(&models.User{}).Count(&count)
	if count != 0 {
		t.Fatalf("user row must roll back, found %d rows", count)
	}
}

func TestRegisterAgencyUserRequiresAgencyReference(t *testing.T) {
	svc, _, _ := newTestService(t)

	permission := 4
	_, err := svc.RegisterAgencyUser(context.Background(), AgencyRegisterRequest{
		LastName:   "鈴木",
		FirstName:  "一郎",
		Email:      "ichiro@example.com",
		Phone:      "09012345678",
		Permission: &permission,
	})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListCorporateUsersRequiresCaller(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.ListCorporateUsers(context.Background(), CorporateListRequest{})
	if pkgerrors.CodeOf(err) != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListCorporateUsersColleagues(t *testing.T) {
	svc, _, conn := newTestService(t)

	conn.Create(&models.Corporate{CorporateID: 9, AppCorporateNumber: "009", Company: "Acme", Status: enums.StatusActive})
	alice := seedUser(t, conn, "2000000001", enums.CategoryCorporate, "a@acme.example")
	bob := seedUser(t, conn, "2000000002", enums.CategoryCorporate, "b@acme.example")
	other := seedUser(t, conn, "2000000003", enums.CategoryCorporate, "c@other.example")
	conn.Create(&models.UserCorporate{UserID: alice, CorporateID: 9, Permission: 1})
	conn.Create(&models.UserCorporate{UserID: bob, CorporateID: 9, Permission: 1})
	conn.Create(&models.UserCorporate{UserID: other, CorporateID: 10, Permission: 1})

	rows, err := svc.ListCorporateUsers(context.Background(), CorporateListRequest{AppUserNumber: "2000000001"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 colleagues, got %d", len(rows))
	}

	all, err := svc.ListCorporateUsers(context.Background(), CorporateListRequest{GetAllFlg: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(all))
	}
	if all[0].Company == nil || *all[0].Company != "Acme" {
		t.Fatalf("expected company in all mode, got %+v", all[0])
	}
}

func TestUpdateCorporateUserSkipsAudit(t *testing.T) {
	svc, identity, conn := newTestService(t)
	id := seedUser(t, conn, "2000000010", enums.CategoryCorporate, "x@acme.example")
	conn.Create(&models.UserCorporate{UserID: id, CorporateID: 9, Permission: 1})

	status := enums.StatusDeleted
	permission := 2
	if err := svc.UpdateCorporateUser(context.Background(), CorporateUpdateRequest{
		AppUserNumber: "2000000010",
		LastName:      "田中",
		FirstName:     "次郎",
		Status:        &status,
		Permission:    &permission,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var row models.User
	conn.Where("user_id = ?", id).First(&row)
	if row.LastName != "田中" || row.Status != enums.StatusDeleted {
		t.Fatalf("unexpected row %+v", row)
	}
	if row.UpdateUser != "" {
		t.Fatalf("corporate update must not stamp audit columns, got %q", row.UpdateUser)
	}
	var membership models.UserCorporate
	conn.Where("user_id = ?", id).First(&membership)
	if membership.Permission != 2 {
		t.Fatalf("permission not updated: %+v", membership)
	}
	if len(identity.deleted) != 0 {
		t.Fatalf("corporate deletion must not touch the pool: %v", identity.deleted)
	}
}

func TestRegisterCorporateUserSequencesNavCode(t *testing.T) {
	svc, identity, conn := newTestService(t)

	existing := seedUser(t, conn, "2000000020", enums.CategoryCorporate, "first@acme.example")
	conn.Create(&models.UserCorporate{UserID: existing, CorporateID: 9, Permission: 1})

	corporateID := int64(9)
	resp, err := svc.RegisterCorporateUser(context.Background(), CorporateRegisterRequest{
		CorporateID: &corporateID,
		LastName:    "田中",
		FirstName:   "三郎",
		Email:       "saburo@acme.example",
		Phone:       "08011112222",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.EchNaviCode != "CORPEchNaviCD90002" {
		t.Fatalf("unexpected nav code %q", resp.EchNaviCode)
	}

	var membership models.UserCorporate
	var row models.User
	if err := conn.Where("app_user_number = ?", resp.AppUserNumber).First(&row).Error; err != nil {
		t.Fatalf("user not persisted: %v", err)
	}
	if err := conn.Where("user_id = ?", row.UserID).First(&membership).Error; err != nil {
		t.Fatalf("membership not persisted: %v", err)
	}
	if membership.Permission != corporateInitialPermission {
		t.Fatalf("unexpected membership %+v", membership)
	}
	if len(identity.created) != 1 || identity.created[0].UserCategory != "2" {
		t.Fatalf("unexpected pool create %+v", identity.created)
	}
}
