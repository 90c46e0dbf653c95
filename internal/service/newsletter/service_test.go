package newsletter

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ignite/newsletter/internal/domain"
	"github.com/ignite/newsletter/internal/email"
)

// mockSource replays a fixed sequence of rows: either a valid address
// or a per-row error, mirroring the lazy re-validation cursor.
type mockSource struct {
	rows     []mockRow
	openErr  error
	lastIter *mockIterator
}

type mockRow struct {
	addr   string
	rowErr error
}

type mockIterator struct {
	rows   []mockRow
	pos    int
	closed bool
}

func (m *mockSource) ConfirmedSubscribers(_ context.Context) (SubscriberIterator, error) {
	if m.openErr != nil {
		return nil, m.openErr
	}
	m.lastIter = &mockIterator{rows: m.rows, pos: -1}
	return m.lastIter, nil
}

func (it *mockIterator) Next() bool {
	it.pos++
	return it.pos < len(it.rows)
}

func (it *mockIterator) Subscriber() (domain.SubscriberEmail, error) {
	row := it.rows[it.pos]
	if row.rowErr != nil {
		return domain.SubscriberEmail{}, row.rowErr
	}
	addr, err := domain.ParseSubscriberEmail(row.addr)
	if err != nil {
		panic(fmt.Sprintf("test fixture address %q invalid: %v", row.addr, err))
	}
	return addr, nil
}

func (it *mockIterator) Err() error   { return nil }
func (it *mockIterator) Close() error { it.closed = true; return nil }

// recordingSender records recipients and fails on demand.
type recordingSender struct {
	mu     sync.Mutex
	sent   []string
	failOn string // recipient that triggers a send error
}

func (r *recordingSender) Send(_ context.Context, msg email.Email) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg.To.String() == r.failOn {
		return errors.New("email API error (status 500)")
	}
	r.sent = append(r.sent, msg.To.String())
	return nil
}

var testIssue = Issue{
	Title: "T",
	HTML:  "<p>H</p>",
	Text:  "H",
}

func TestPublish_ZeroSubscribersSucceeds(t *testing.T) {
	sender := &recordingSender{}
	svc := NewService(&mockSource{}, sender)

	sent, err := svc.Publish(context.Background(), testIssue)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if sent != 0 || len(sender.sent) != 0 {
		t.Errorf("sent = %d (%v), want 0", sent, sender.sent)
	}
}

func TestPublish_OneEmailPerConfirmedSubscriber(t *testing.T) {
	source := &mockSource{rows: []mockRow{
		{addr: "a@example.com"},
		{addr: "b@example.com"},
		{addr: "c@example.com"},
	}}
	sender := &recordingSender{}
	svc := NewService(source, sender)

	sent, err := svc.Publish(context.Background(), testIssue)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if sent != 3 {
		t.Errorf("sent = %d, want 3", sent)
	}
	want := []string{"a@example.com", "b@example.com", "c@example.com"}
	for i, addr := range want {
		if sender.sent[i] != addr {
			t.Errorf("recipient[%d] = %q, want %q", i, sender.sent[i], addr)
		}
	}
}

func TestPublish_SkipsInvalidRowsWithoutAborting(t *testing.T) {
	source := &mockSource{rows: []mockRow{
		{addr: "a@example.com"},
		{rowErr: errors.New("stored email is no longer valid")},
		{addr: "c@example.com"},
	}}
	sender := &recordingSender{}
	svc := NewService(source, sender)

	sent, err := svc.Publish(context.Background(), testIssue)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if sent != 2 {
		t.Errorf("sent = %d, want 2", sent)
	}
}

func TestPublish_SendFailureAbortsWithRecipient(t *testing.T) {
	source := &mockSource{rows: []mockRow{
		{addr: "a@example.com"},
		{addr: "b@example.com"},
		{addr: "c@example.com"},
	}}
	sender := &recordingSender{failOn: "b@example.com"}
	svc := NewService(source, sender)

	sent, err := svc.Publish(context.Background(), testIssue)
	if err == nil {
		t.Fatal("expected error when a send fails")
	}
	var de *DispatchError
	if !errors.As(err, &de) {
		t.Fatalf("expected DispatchError, got %T: %v", err, err)
	}
	if de.Recipient != "b@example.com" {
		t.Errorf("failing recipient = %q, want %q", de.Recipient, "b@example.com")
	}
	if sent != 1 {
		t.Errorf("sent before abort = %d, want 1", sent)
	}
	// fail-fast: c must not have been attempted
	for _, addr := range sender.sent {
		if addr == "c@example.com" {
			t.Error("fan-out continued past the failing recipient")
		}
	}
}

func TestPublish_SourceFailure(t *testing.T) {
	svc := NewService(&mockSource{openErr: errors.New("connection refused")}, &recordingSender{})

	_, err := svc.Publish(context.Background(), testIssue)
	if err == nil {
		t.Fatal("expected error when the subscriber source fails")
	}
}

func TestPublish_ClosesIterator(t *testing.T) {
	source := &mockSource{rows: []mockRow{{addr: "a@example.com"}}}
	svc := NewService(source, &recordingSender{})

	if _, err := svc.Publish(context.Background(), testIssue); err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if source.lastIter == nil || !source.lastIter.closed {
		t.Error("Publish must close the subscriber cursor")
	}
}
