package cqldbc

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func testDB(t *testing.T) (*sql.DB, *fakeSession) {
	t.Helper()
	sess := &fakeSession{responses: make(map[string]*Response)}
	dial := func(ctx context.Context) (Session, error) { return sess, nil }
	db := sql.OpenDB(NewConnector(dial, WithConsistency(Quorum)))
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db, sess
}

func TestSQL_Query(t *testing.T) {
	db, sess := testDB(t)
	sess.responses["SELECT id, name FROM users"] = rowsResponse(
		[]string{"id", "name"},
		[][]interface{}{{int64(1), "ada"}, {int64(2), "grace"}})

	rows, err := db.Query("SELECT id, name FROM users")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rows.Close()

	var got []string
	for rows.Next() {
		var id int64
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, name)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != "ada" || got[1] != "grace" {
		t.Errorf("unexpected rows: %v", got)
	}
	if got := sess.last(); got != Quorum {
		t.Errorf("connector consistency must reach the session, got %s", got)
	}
}

func TestSQL_Exec(t *testing.T) {
	db, sess := testDB(t)
	sess.responses["DELETE FROM users WHERE id = 1"] = &Response{Kind: ResponseCount, Count: 1}

	res, err := db.Exec("DELETE FROM users WHERE id = 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected != 1 {
		t.Errorf("expected 1 row affected, got %d", affected)
	}

	_, err = res.LastInsertId()
	wantKind(t, err, ErrUnsupported)
}

func TestSQL_ExecVoid(t *testing.T) {
	db, _ := testDB(t)

	res, err := db.Exec("TRUNCATE users")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if affected, _ := res.RowsAffected(); affected != 0 {
		t.Errorf("void statements report 0 rows affected, got %d", affected)
	}
}

func TestSQL_ExecOnRowQuery(t *testing.T) {
	db, sess := testDB(t)
	sess.responses["SELECT 1"] = rowsResponse([]string{"n"}, [][]interface{}{{int64(1)}})

	_, err := db.Exec("SELECT 1")
	wantKind(t, err, ErrSyntax)
}

func TestSQL_Prepare(t *testing.T) {
	db, sess := testDB(t)
	sess.responses["SELECT id FROM users"] = rowsResponse([]string{"id"}, [][]interface{}{{int64(1)}})

	stmt, err := db.Prepare("SELECT id FROM users")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer stmt.Close()

	rows, err := stmt.Query()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer rows.Close()
	if !rows.Next() {
		t.Fatalf("expected one row")
	}
}

func TestSQL_BeginUnsupported(t *testing.T) {
	db, _ := testDB(t)

	_, err := db.Begin()
	wantKind(t, err, ErrUnsupported)
}

func TestSQL_OpenByDSN(t *testing.T) {
	db, err := sql.Open("cqldbc", "host=127.0.0.1")
	if err != nil {
		t.Fatalf("open is lazy, unexpected error: %v", err)
	}
	defer db.Close()

	err = db.Ping()
	var e *Error
	if !errors.As(err, &e) || e.Kind != ErrUnsupported {
		t.Fatalf("DSN-based open must fail as unsupported, got %v", err)
	}
}

func TestSQL_DialFailure(t *testing.T) {
	dialErr := errors.New("no contact points reachable")
	db := sql.OpenDB(NewConnector(func(ctx context.Context) (Session, error) {
		return nil, dialErr
	}))
	defer db.Close()

	if err := db.Ping(); !errors.Is(err, dialErr) {
		t.Errorf("expected the dial error, got %v", err)
	}
}
