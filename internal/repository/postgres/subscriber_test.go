package postgres

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/service/subscription"
)

func setupTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newSubscriberFixture(t *testing.T) domain.NewSubscriber {
	t.Helper()
	name, err := domain.ParseSubscriberName("Ursula Le Guin")
	if err != nil {
		t.Fatalf("parse name: %v", err)
	}
	email, err := domain.ParseSubscriberEmail("ursula_le_guin@gmail.com")
	if err != nil {
		t.Fatalf("parse email: %v", err)
	}
	return domain.NewSubscriber{Name: name, Email: email}
}

func TestSubscribeFlow_CommitsSubscriberAndToken(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSubscriberRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO subscriptions")).
		WithArgs(sqlmock.AnyArg(), "ursula_le_guin@gmail.com", "Ursula Le Guin", sqlmock.AnyArg(), string(domain.SubscriberPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO subscription_tokens")).
		WithArgs("a1b2c3d4e5f6g7h8i9j0k1l2m", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := repo.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	id, err := tx.InsertSubscriber(context.Background(), newSubscriberFixture(t))
	if err != nil {
		t.Fatalf("insert subscriber: %v", err)
	}
	if id == uuid.Nil {
		t.Fatal("expected a generated subscriber id")
	}
	if err := tx.StoreToken(context.Background(), id, "a1b2c3d4e5f6g7h8i9j0k1l2m"); err != nil {
		t.Fatalf("store token: %v", err)
	}
	if err := tx.Commit(); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback after commit should be a no-op, got: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestInsertSubscriber_DuplicateEmail(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSubscriberRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO subscriptions")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "subscriptions_email_key"})
	mock.ExpectRollback()

	tx, err := repo.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	_, err = tx.InsertSubscriber(context.Background(), newSubscriberFixture(t))
	if !errors.Is(err, subscription.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestStoreToken_DuplicateToken(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSubscriberRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO subscription_tokens")).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "subscription_tokens_pkey"})
	mock.ExpectRollback()

	tx, err := repo.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	err = tx.StoreToken(context.Background(), uuid.New(), "a1b2c3d4e5f6g7h8i9j0k1l2m")
	if !errors.Is(err, subscription.ErrDuplicateToken) {
		t.Fatalf("expected ErrDuplicateToken, got: %v", err)
	}
	if err := tx.Rollback(); err != nil {
		t.Fatalf("rollback: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSubscriberIDFromToken(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSubscriberRepo(db)

	want := uuid.New()
	issued := time.Now().UTC().Add(-time.Hour)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT subscriber_id, created_at FROM subscription_tokens")).
		WithArgs("a1b2c3d4e5f6g7h8i9j0k1l2m").
		WillReturnRows(sqlmock.NewRows([]string{"subscriber_id", "created_at"}).AddRow(want.String(), issued))

	id, issuedAt, found, err := repo.SubscriberIDFromToken(context.Background(), "a1b2c3d4e5f6g7h8i9j0k1l2m")
	if err != nil {
		t.Fatalf("look up token: %v", err)
	}
	if !found {
		t.Fatal("expected token to be found")
	}
	if id != want {
		t.Errorf("subscriber id = %s, want %s", id, want)
	}
	if !issuedAt.Equal(issued) {
		t.Errorf("issued at = %s, want %s", issuedAt, issued)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSubscriberIDFromToken_Unknown(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSubscriberRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT subscriber_id, created_at FROM subscription_tokens")).
		WithArgs("zzzzzzzzzzzzzzzzzzzzzzzzz").
		WillReturnRows(sqlmock.NewRows([]string{"subscriber_id", "created_at"}))

	_, _, found, err := repo.SubscriberIDFromToken(context.Background(), "zzzzzzzzzzzzzzzzzzzzzzzzz")
	if err != nil {
		t.Fatalf("look up token: %v", err)
	}
	if found {
		t.Fatal("unknown token reported as found")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestConfirmSubscriber(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSubscriberRepo(db)

	id := uuid.New()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE subscriptions SET status")).
		WithArgs(string(domain.SubscriberConfirmed), id, string(domain.SubscriberPending)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.ConfirmSubscriber(context.Background(), id); err != nil {
		t.Fatalf("confirm subscriber: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestConfirmedSubscribers_RevalidatesEachRow(t *testing.T) {
	db, mock := setupTestDB(t)
	repo := NewSubscriberRepo(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT email FROM subscriptions")).
		WithArgs(string(domain.SubscriberConfirmed)).
		WillReturnRows(sqlmock.NewRows([]string{"email"}).
			AddRow("ursula_le_guin@gmail.com").
			AddRow("not-an-email").
			AddRow("octavia_butler@gmail.com"))

	it, err := repo.ConfirmedSubscribers(context.Background())
	if err != nil {
		t.Fatalf("open cursor: %v", err)
	}
	defer it.Close()

	var valid []string
	var rowErrs int
	for it.Next() {
		email, err := it.Subscriber()
		if err != nil {
			rowErrs++
			continue
		}
		valid = append(valid, email.String())
	}
	if err := it.Err(); err != nil {
		t.Fatalf("cursor error: %v", err)
	}
	if len(valid) != 2 || valid[0] != "ursula_le_guin@gmail.com" || valid[1] != "octavia_butler@gmail.com" {
		t.Errorf("valid emails = %v", valid)
	}
	if rowErrs != 1 {
		t.Errorf("row errors = %d, want 1", rowErrs)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
