package cqldbc

import (
	"strings"
	"testing"
)

func TestExecOptions_Validate(t *testing.T) {
	if err := DefaultExecOptions.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}

	bad := ExecOptions{Type: ResultSetType(7)}
	err := bad.Validate()
	e := wantKind(t, err, ErrSyntax)
	if !strings.Contains(e.Message, "ResultSetType(7)") {
		t.Errorf("message must name the offending value, got %q", e.Message)
	}

	// Each field fails independently of the others.
	bad = ExecOptions{Type: TypeScrollSensitive, Concurrency: Concurrency(7)}
	wantKind(t, bad.Validate(), ErrSyntax)
	bad = ExecOptions{Concurrency: ConcurUpdatable, Holdability: Holdability(7)}
	wantKind(t, bad.Validate(), ErrSyntax)
}

func TestValidateFetchDirection(t *testing.T) {
	cases := []struct {
		dir FetchDirection
		typ ResultSetType
		ok  bool
	}{
		{FetchForward, TypeForwardOnly, true},
		{FetchReverse, TypeForwardOnly, false},
		{FetchUnknown, TypeForwardOnly, false},
		{FetchForward, TypeScrollInsensitive, true},
		{FetchReverse, TypeScrollInsensitive, true},
		{FetchUnknown, TypeScrollSensitive, true},
		{FetchDirection(9), TypeScrollSensitive, false},
	}
	for _, tc := range cases {
		err := validateFetchDirection(tc.dir, tc.typ)
		if tc.ok && err != nil {
			t.Errorf("%s on %s: unexpected error: %v", tc.dir, tc.typ, err)
		}
		if !tc.ok {
			wantKind(t, err, ErrSyntax)
		}
	}
}

func TestValidateFetchSize(t *testing.T) {
	if err := validateFetchSize(0); err != nil {
		t.Errorf("zero is a legal fetch size: %v", err)
	}
	if err := validateFetchSize(1000); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	wantKind(t, validateFetchSize(-5), ErrSyntax)
}

func TestValidateGeneratedKeysMode(t *testing.T) {
	if err := validateGeneratedKeysMode(NoGeneratedKeys); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	// Syntactically legal; rejection as unsupported happens downstream.
	if err := validateGeneratedKeysMode(ReturnGeneratedKeys); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	wantKind(t, validateGeneratedKeysMode(GeneratedKeysMode(3)), ErrSyntax)
}

func TestValidateMoreResultsAction(t *testing.T) {
	for _, action := range []MoreResultsAction{CloseCurrentResult, KeepCurrentResult, CloseAllResults} {
		if err := validateMoreResultsAction(action); err != nil {
			t.Errorf("%s: unexpected error: %v", action, err)
		}
	}
	wantKind(t, validateMoreResultsAction(MoreResultsAction(9)), ErrSyntax)
}

func TestDefaultHints(t *testing.T) {
	h := defaultHints()
	if h.MaxRows != 0 || h.MaxFieldSize != 0 || h.QueryTimeoutSeconds != 0 {
		t.Errorf("caps must default to unlimited: %+v", h)
	}
	if !h.EscapeProcessing {
		t.Errorf("escape processing defaults on")
	}
}
