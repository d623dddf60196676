package errorbank

import (
	"errors"
	"net/http"
	"testing"

	"google.golang.org/grpc/codes"
)

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err    *AppError
		status int
		code   codes.Code
	}{
		{BadRequest("bad"), http.StatusBadRequest, codes.InvalidArgument},
		{Unauthorized("who"), http.StatusUnauthorized, codes.Unauthenticated},
		{Conflict("clash"), http.StatusConflict, codes.AlreadyExists},
		{NotFound("gone"), http.StatusNotFound, codes.NotFound},
		{Unprocessable("nope"), http.StatusUnprocessableEntity, codes.FailedPrecondition},
		{Internal("boom"), http.StatusInternalServerError, codes.Internal},
	}

	for _, tt := range tests {
		if got := tt.err.StatusCode(); got != tt.status {
			t.Errorf("%s: StatusCode() = %d, want %d", tt.err.Kind(), got, tt.status)
		}
		if got := tt.err.GRPCCode(); got != tt.code {
			t.Errorf("%s: GRPCCode() = %v, want %v", tt.err.Kind(), got, tt.code)
		}
	}
}

func TestFrom(t *testing.T) {
	appErr := NotFound("missing")
	if got := From(appErr); got != appErr {
		t.Error("From should return the original AppError")
	}

	wrapped := From(errors.New("db down"))
	if wrapped.Kind() != KindInternal {
		t.Errorf("kind = %q, want internal", wrapped.Kind())
	}
	if From(nil) != nil {
		t.Error("From(nil) should be nil")
	}
}

func TestWithCauseAndDetails(t *testing.T) {
	cause := errors.New("underlying")
	err := Internal("failed", WithCause(cause), WithDetail("id", 7))

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause")
	}
	if err.Details()["id"] != 7 {
		t.Errorf("details = %v, want id=7", err.Details())
	}
}
