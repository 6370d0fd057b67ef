package errors

import (
	stderrs "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusCodeMapping(t *testing.T) {
	cases := []struct {
		code ErrorCode
		want int
	}{
		{ErrorCodeNotFound, http.StatusNotFound},
		{ErrorCodeInvalidArgument, http.StatusUnprocessableEntity},
		{ErrorCodeValidation, http.StatusBadRequest},
		{ErrorCodeJSON, http.StatusBadRequest},
		{ErrorCodeUnauthorized, http.StatusUnauthorized},
		{ErrorCodeTooManyRequests, http.StatusTooManyRequests},
		{ErrorCodeUnavailable, http.StatusServiceUnavailable},
		{ErrorCodeIO, http.StatusInternalServerError},
		{ErrorCodeUnknown, http.StatusInternalServerError},
		{9999, http.StatusInternalServerError},
	}
	for _, c := range cases {
		if got := HTTPStatusCode(c.code); got != c.want {
			t.Fatalf("HTTPStatusCode(%v) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestErrorTypeAndMethods(t *testing.T) {
	var e *Error
	if e.Error() != "<nil>" {
		t.Fatalf("nil *Error render = %q, want <nil>", e.Error())
	}

	src := stderrs.New("connection reset")
	wrapped := Wrapf(src, ErrorCodeUnavailable, "GET %s", "tables/Activity")
	if want := "GET tables/Activity: connection reset"; wrapped.Error() != want {
		t.Fatalf("Wrapf().Error = %q, want %q", wrapped.Error(), want)
	}
	if !stderrs.Is(wrapped, src) {
		t.Fatalf("Wrapf must keep the cause reachable")
	}
	if got, ok := As(fmt.Errorf("outer: %w", wrapped)); !ok || got.Code() != ErrorCodeUnavailable {
		t.Fatalf("As() through fmt wrapping failed")
	}
	if _, ok := As(src); ok {
		t.Fatalf("As() true for foreign error")
	}

	orig := Validationf("end before start")
	withField := WithField(orig, "end")
	if fe, _ := As(withField); fe.Field() != "end" {
		t.Fatalf("WithField failed")
	}
	if fe0, _ := As(orig); fe0.Field() != "" {
		t.Fatalf("copy-on-write mutated original")
	}
	if fe, ok := As(WithField(src, "start")); !ok || fe.Code() != ErrorCodeValidation || fe.Field() != "start" {
		t.Fatalf("WithField on foreign error should wrap as validation")
	}
	if WithField(nil, "x") != nil {
		t.Fatalf("WithField(nil) should stay nil")
	}

	if w := WireFrom(wrapped); w.Code != ErrorCodeUnavailable || w.Message != "GET tables/Activity" {
		t.Fatalf("WireFrom(ours) mismatch: %+v", w)
	}
	if w := WireFrom(src); w.Code != ErrorCodeUnknown || w.Message != "connection reset" {
		t.Fatalf("WireFrom(foreign) mismatch: %+v", w)
	}
	if w := WireFrom(nil); w != (Wire{}) {
		t.Fatalf("WireFrom(nil) expected zero, got %+v", w)
	}
	if st, _ := HTTP(nil); st != http.StatusOK {
		t.Fatalf("HTTP(nil) status = %d", st)
	}

	if !IsCode(NotFoundf("x"), ErrorCodeNotFound) ||
		!IsCode(InvalidArgf("x"), ErrorCodeInvalidArgument) ||
		!IsCode(JSONErrf("x"), ErrorCodeJSON) ||
		!IsCode(Unauthorizedf("x"), ErrorCodeUnauthorized) ||
		!IsCode(Unavailablef("x"), ErrorCodeUnavailable) {
		t.Fatalf("sugar helpers code mismatch")
	}
	if WrapIf(nil, ErrorCodeIO, "ignored") != nil {
		t.Fatalf("WrapIf(nil) should return nil")
	}
}

func TestRetryable(t *testing.T) {
	if !Retryable(Unavailablef("502")) || !Retryable(New(ErrorCodeTooManyRequests, "429")) {
		t.Fatalf("transient codes should be retryable")
	}
	if Retryable(Unauthorizedf("401")) || Retryable(stderrs.New("plain")) {
		t.Fatalf("non-transient errors must not be retryable")
	}
}

func TestErrorCodeString(t *testing.T) {
	if ErrorCodeIO.String() != "io" || ErrorCode(200).String() != "unknown" {
		t.Fatalf("unexpected labels %q %q", ErrorCodeIO, ErrorCode(200))
	}
}
