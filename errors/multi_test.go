package errors

import (
	"testing"
)

func TestAppend(t *testing.T) {
	cases := map[string]struct {
		errs     []error
		wantNil  bool
		wantMsg  string
		wantCode uint32
	}{
		"no errors": {
			errs:    nil,
			wantNil: true,
		},
		"only nil errors": {
			errs:    []error{nil, nil},
			wantNil: true,
		},
		"single error is returned unchanged": {
			errs:     []error{ErrNotFound},
			wantMsg:  "not found",
			wantCode: 3,
		},
		"nil errors are ignored": {
			errs:     []error{nil, ErrNotFound, nil},
			wantMsg:  "not found",
			wantCode: 3,
		},
		"multiple errors are combined": {
			errs:     []error{ErrNotFound, ErrState},
			wantMsg:  "not found; invalid state",
			wantCode: 3,
		},
		"nested multi errors are flattened": {
			errs:     []error{Append(ErrNotFound, ErrState), ErrAmount},
			wantMsg:  "not found; invalid state; invalid amount",
			wantCode: 3,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := Append(tc.errs...)
			if tc.wantNil {
				if err != nil {
					t.Fatalf("want nil, got %+v", err)
				}
				return
			}
			if err.Error() != tc.wantMsg {
				t.Fatalf("unexpected message: %q", err)
			}
			type coder interface {
				Code() uint32
			}
			if c, ok := err.(coder); !ok || c.Code() != tc.wantCode {
				t.Fatalf("unexpected code: %v", err)
			}
		})
	}
}

func TestMultiErrorIsMatchesAnyMember(t *testing.T) {
	err := Append(
		Wrap(ErrNotFound, "first"),
		Wrap(ErrState, "second"),
	)

	if !ErrNotFound.Is(err) {
		t.Fatal("first member must match")
	}
	if !ErrState.Is(err) {
		t.Fatal("second member must match")
	}
	if ErrAmount.Is(err) {
		t.Fatal("absent kind must not match")
	}
}
