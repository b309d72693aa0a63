package errors

import (
	"fmt"
	"testing"

	"github.com/pkg/errors"
)

func TestErrorIs(t *testing.T) {
	cases := map[string]struct {
		kind      *Error
		err       error
		wantMatch bool
	}{
		"instance of the same root": {
			kind:      ErrNotFound,
			err:       ErrNotFound,
			wantMatch: true,
		},
		"wrapped root": {
			kind:      ErrNotFound,
			err:       Wrap(ErrNotFound, "gone"),
			wantMatch: true,
		},
		"double wrapped root": {
			kind:      ErrNotFound,
			err:       Wrap(Wrap(ErrNotFound, "gone"), "outer"),
			wantMatch: true,
		},
		"different root": {
			kind:      ErrNotFound,
			err:       ErrUnauthorized,
			wantMatch: false,
		},
		"stdlib error": {
			kind:      ErrNotFound,
			err:       fmt.Errorf("not found"),
			wantMatch: false,
		},
		"nil error": {
			kind:      ErrNotFound,
			err:       nil,
			wantMatch: false,
		},
		"wrapped nil is nil": {
			kind:      nil,
			err:       Wrap(nil, "no error"),
			wantMatch: true,
		},
		"contained in a multi error": {
			kind:      ErrState,
			err:       Append(ErrAmount, Wrap(ErrState, "bad")),
			wantMatch: true,
		},
		"not contained in a multi error": {
			kind:      ErrNotFound,
			err:       Append(ErrAmount, ErrState),
			wantMatch: false,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if got := tc.kind.Is(tc.err); got != tc.wantMatch {
				t.Fatalf("unexpected match result: %v", got)
			}
		})
	}
}

func TestWrapNil(t *testing.T) {
	if err := Wrap(nil, "whatever"); err != nil {
		t.Fatalf("want nil, got %+v", err)
	}
}

func TestWrapAttachesStackTraceOnce(t *testing.T) {
	err := Wrap(ErrInput, "inner")
	inner := stackTrace(err)
	if inner == nil {
		t.Fatal("wrapping must attach a stack trace")
	}
	outer := stackTrace(Wrap(err, "outer"))
	if fmt.Sprintf("%v", inner) != fmt.Sprintf("%v", outer) {
		t.Fatal("second wrap must not overwrite the stack trace")
	}
}

func TestErrorCode(t *testing.T) {
	if code := ErrNotFound.Code(); code != 3 {
		t.Fatalf("unexpected code: %d", code)
	}
}

func TestRegisterPanicsOnCollision(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("reusing an error code must panic")
		}
	}()
	Register(ErrNotFound.Code(), "conflicting")
}

func TestRecover(t *testing.T) {
	fail := func() (err error) {
		defer Recover(&err)
		panic("blew up")
	}
	err := fail()
	if !ErrPanic.Is(err) {
		t.Fatalf("want ErrPanic, got %+v", err)
	}
}

func TestWrappedErrorFormat(t *testing.T) {
	err := Wrap(ErrInput, "name")
	if got := fmt.Sprintf("%s", err); got != "name: invalid input" {
		t.Fatalf("unexpected message: %q", got)
	}
	if got := fmt.Sprintf("%+v", err); got == "name: invalid input" {
		t.Fatal("verbose format must include the stack trace")
	}
}

func TestCauseIsPreserved(t *testing.T) {
	err := Wrap(ErrExpired, "too late")
	if errors.Cause(err) != ErrExpired {
		t.Fatalf("unexpected cause: %+v", errors.Cause(err))
	}
}
