package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/echnavi/charge-admin-backend/pkg/errors"
	"github.com/echnavi/charge-admin-backend/pkg/types"
)

func TestWriteSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, "Agency data was successfully registered in the database.", map[string]string{"app_agency_number": "123"})

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}

	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode success envelope: %v", err)
	}
	if body.ResultCode != "success" {
		t.Fatalf("unexpected resultCode %q", body.ResultCode)
	}
	if body.Data.(map[string]any)["app_agency_number"] != "123" {
		t.Fatalf("unexpected payload %v", body.Data)
	}
}

func TestWriteSuccess_SentinelMessageKeeps200(t *testing.T) {
	w := httptest.NewRecorder()
	WriteSuccess(w, "User does not exist.[E001]", nil)

	if got := w.Code; got != http.StatusOK {
		t.Fatalf("expected status 200 but got %d", got)
	}
	var body types.SuccessEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode success envelope: %v", err)
	}
	if body.Message != "User does not exist.[E001]" {
		t.Fatalf("unexpected message %q", body.Message)
	}
}

func TestWriteErrorMapsTypedError(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeNotFound, "No agency found with the given ID.[E003]").
		WithDetails(map[string]any{"agency_id": 42})
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusNotFound {
		t.Fatalf("expected status 404 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.ResultCode != "error" {
		t.Fatalf("unexpected resultCode %q", body.ResultCode)
	}
	if body.Message != "No agency found with the given ID.[E003]" {
		t.Fatalf("unexpected message %q", body.Message)
	}
	if body.Data.Error == nil {
		t.Fatalf("expected detail in error payload")
	}
}

func TestWriteErrorDefaultsToInternalForUntrustedErrors(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(context.Background(), nil, w, errors.New("boom"))

	if got := w.Code; got != http.StatusInternalServerError {
		t.Fatalf("expected status 500 but got %d", got)
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Data.Error != "boom" {
		t.Fatalf("expected cause text in detail, got %v", body.Data.Error)
	}
}

func TestWriteErrorHidesDetailForUnauthorized(t *testing.T) {
	w := httptest.NewRecorder()
	err := pkgerrors.Wrap(pkgerrors.CodeUnauthorized, errors.New("NotAuthorizedException"), "電話番号またはパスワードが間違っています[E001]")
	WriteError(context.Background(), nil, w, err)

	if got := w.Code; got != http.StatusUnauthorized {
		t.Fatalf("expected status 401 but got %d", got)
	}
	var body types.ErrorEnvelope
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error envelope: %v", err)
	}
	if body.Data.Error != nil {
		t.Fatalf("credential errors must not leak detail, got %v", body.Data.Error)
	}
}
