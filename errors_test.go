package cqldbc

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func execFailure(t *testing.T, backendErr error) (error, *fakeSession) {
	t.Helper()
	conn, sess := newTestConn()
	sess.execErr = backendErr
	stmt, err := conn.NewStatement()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = stmt.Execute(context.Background(), "SELECT * FROM t")
	return err, sess
}

func TestTranslate_InvalidRequest(t *testing.T) {
	cause := &InvalidRequestError{Why: "line 1: no viable alternative"}
	err, sess := execFailure(t, cause)

	e := wantKind(t, err, ErrSyntax)
	if e.Query != "SELECT * FROM t" {
		t.Errorf("expected query text on the error, got %q", e.Query)
	}
	if !errors.Is(err, cause) {
		t.Errorf("the backend cause must be wrapped")
	}
	if sess.closes() != 0 {
		t.Errorf("invalid request must leave the session open")
	}
}

func TestTranslate_Unavailable(t *testing.T) {
	err, sess := execFailure(t, &UnavailableError{Consistency: Quorum, Required: 2, Alive: 1})

	wantKind(t, err, ErrConnNonTransient)
	if sess.closes() != 0 {
		t.Errorf("unavailable must leave the session open for higher-level retry")
	}
	if !IsConnectionError(err) {
		t.Errorf("unavailable must classify as a connection error")
	}
	if IsTransient(err) {
		t.Errorf("unavailable is not transient")
	}
}

func TestTranslate_Timeout(t *testing.T) {
	err, sess := execFailure(t, &RequestTimeoutError{Consistency: Quorum})

	wantKind(t, err, ErrConnTransient)
	if sess.closes() != 0 {
		t.Errorf("a timeout must leave the session open")
	}
	if !IsTransient(err) || !IsRetryable(err) || !IsConnectionError(err) {
		t.Errorf("a timeout must classify as transient, retryable and connection-related")
	}
}

func TestTranslate_SchemaDisagreement(t *testing.T) {
	err, sess := execFailure(t, &SchemaDisagreementError{})

	wantKind(t, err, ErrSchemaMismatch)
	if sess.closes() != 0 {
		t.Errorf("schema disagreement must leave the session open")
	}
	if !IsRetryable(err) {
		t.Errorf("schema disagreement is retryable after a delay")
	}
	if IsConnectionError(err) {
		t.Errorf("schema disagreement is not a connection error")
	}
}

func TestTranslate_Transport(t *testing.T) {
	cause := &TransportError{Err: errors.New("connection reset by peer")}
	err, sess := execFailure(t, cause)

	wantKind(t, err, ErrConnNonTransient)
	if got := sess.closes(); got != 1 {
		t.Errorf("transport failure must close the session exactly once, got %d", got)
	}
	if !errors.Is(err, cause) {
		t.Errorf("the transport cause must be wrapped")
	}
}

func TestTranslate_TransportCloseFailureSwallowed(t *testing.T) {
	conn, sess := newTestConn()
	sess.execErr = &TransportError{Err: errors.New("broken pipe")}
	sess.closeErr = errors.New("teardown also failed")
	stmt, _ := conn.NewStatement()

	_, err := stmt.Execute(context.Background(), "SELECT 1")
	e := wantKind(t, err, ErrConnNonTransient)
	if got := sess.closes(); got != 1 {
		t.Errorf("teardown must be attempted exactly once, got %d", got)
	}
	if errors.Is(e, sess.closeErr) {
		t.Errorf("the teardown failure must never surface over the original error")
	}
}

func TestTranslate_UnknownErrorIsTransport(t *testing.T) {
	err, sess := execFailure(t, fmt.Errorf("short read on frame header"))

	wantKind(t, err, ErrConnNonTransient)
	if got := sess.closes(); got != 1 {
		t.Errorf("unknown protocol failures must poison the session, got %d closes", got)
	}
}

func TestError_KindMatching(t *testing.T) {
	err := &Error{Kind: ErrSyntax, Message: "bad query"}
	if !errors.Is(err, &Error{Kind: ErrSyntax}) {
		t.Errorf("errors.Is must match on kind")
	}
	if errors.Is(err, &Error{Kind: ErrUnsupported}) {
		t.Errorf("errors.Is must not match a different kind")
	}
}

func TestError_MessageEmbedsQuery(t *testing.T) {
	err := &Error{Kind: ErrSyntax, Message: "unknown column", Query: "SELECT nope FROM t"}
	msg := err.Error()
	if want := "'SELECT nope FROM t'"; !strings.Contains(msg, want) {
		t.Errorf("expected %q in %q", want, msg)
	}
}

func TestClassifiers_NonDriverErrors(t *testing.T) {
	plain := errors.New("some other failure")
	if IsConnectionError(plain) || IsTransient(plain) || IsRetryable(plain) {
		t.Errorf("classifiers must reject non-driver errors")
	}
	if IsConnectionError(nil) || IsTransient(nil) || IsRetryable(nil) {
		t.Errorf("classifiers must reject nil")
	}
}
