package alerts

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"cineadmin/audit"
	"cineadmin/structs"

	"gopkg.in/gomail.v2"
)

type sentMail struct {
	to      []string
	subject string
	body    string
}

func fakeMailer(sent *[]sentMail) *Mailer {
	m := &Mailer{}
	m.send = func(msg *gomail.Message) error {
		var body strings.Builder
		msg.WriteTo(&body)
		*sent = append(*sent, sentMail{
			to:      msg.GetHeader("To"),
			subject: msg.GetHeader("Subject")[0],
			body:    body.String(),
		})
		return nil
	}
	return m
}

func TestAlertWorkerDispatch(t *testing.T) {
	var sent []sentMail
	var recorded []audit.Entry

	entries := make(chan structs.SystemLog, 1)
	w := &AlertWorker{
		Mailer:     fakeMailer(&sent),
		recipients: func(context.Context) ([]string, error) { return []string{"boss@cine.in"}, nil },
		entries:    entries,
		record:     func(_ context.Context, e audit.Entry) { recorded = append(recorded, e) },
	}

	w.dispatch(context.Background(), structs.SystemLog{
		LogID:     "log1",
		Action:    "error",
		Module:    "uploads",
		Details:   "disk full",
		Status:    "error",
		Timestamp: time.Now(),
	})

	if len(sent) != 1 {
		t.Fatalf("expected one mail, got %d", len(sent))
	}
	if sent[0].to[0] != "boss@cine.in" {
		t.Fatalf("unexpected recipients %v", sent[0].to)
	}
	if !strings.Contains(sent[0].subject, "uploads") {
		t.Fatalf("subject should name the module, got %q", sent[0].subject)
	}
	if !strings.Contains(sent[0].body, "disk full") {
		t.Fatal("mail body missing the error details")
	}

	if len(recorded) != 1 {
		t.Fatalf("expected one dispatch record, got %d", len(recorded))
	}
	if recorded[0].Action != audit.ActionAlertSent || recorded[0].Status == "error" {
		t.Fatalf("unexpected dispatch record %+v", recorded[0])
	}
}

func TestAlertWorkerNoRecipients(t *testing.T) {
	var sent []sentMail
	w := &AlertWorker{
		Mailer:     fakeMailer(&sent),
		recipients: func(context.Context) ([]string, error) { return nil, nil },
		record:     func(context.Context, audit.Entry) { t.Fatal("should not record without a send") },
	}

	w.dispatch(context.Background(), structs.SystemLog{Module: "uploads", Status: "error"})

	if len(sent) != 0 {
		t.Fatalf("mail sent with no recipients: %v", sent)
	}
}

func TestAlertWorkerRecipientFailure(t *testing.T) {
	var sent []sentMail
	w := &AlertWorker{
		Mailer:     fakeMailer(&sent),
		recipients: func(context.Context) ([]string, error) { return nil, errors.New("mongo down") },
		record:     func(context.Context, audit.Entry) { t.Fatal("should not record on failure") },
	}

	w.dispatch(context.Background(), structs.SystemLog{Module: "uploads", Status: "error"})

	if len(sent) != 0 {
		t.Fatal("mail sent despite recipient lookup failure")
	}
}

func TestAlertWorkerStopsOnContext(t *testing.T) {
	entries := make(chan structs.SystemLog)
	w := &AlertWorker{
		Mailer:     &Mailer{send: func(*gomail.Message) error { return nil }},
		recipients: func(context.Context) ([]string, error) { return nil, nil },
		entries:    entries,
		record:     func(context.Context, audit.Entry) {},
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
}

func newTestDigestWorker(sent *[]sentMail, logs []structs.SystemLog, fetchErr error) *DigestWorker {
	return &DigestWorker{
		Mailer:     fakeMailer(sent),
		loc:        time.UTC,
		recipients: func(context.Context) ([]string, error) { return []string{"boss@cine.in"}, nil },
		fetchErrors: func(context.Context, time.Time, time.Time) ([]structs.SystemLog, error) {
			return logs, fetchErr
		},
	}
}

func TestDigestGroupsByModule(t *testing.T) {
	var sent []sentMail
	w := newTestDigestWorker(&sent, []structs.SystemLog{
		{Module: "uploads", Status: "error"},
		{Module: "uploads", Status: "error"},
		{Module: "content", Status: "error"},
	}, nil)

	w.runDigest(context.Background())

	if len(sent) != 1 {
		t.Fatalf("expected one digest mail, got %d", len(sent))
	}
	body := sent[0].body
	if !strings.Contains(body, "uploads") || !strings.Contains(body, "content") {
		t.Fatal("digest body missing module rows")
	}
	if !strings.Contains(body, "3 error-level") {
		t.Fatalf("digest body missing total count: %s", body)
	}
	if !strings.Contains(sent[0].subject, "Error digest") {
		t.Fatalf("unexpected subject %q", sent[0].subject)
	}
}

func TestDigestSkipsQuietDay(t *testing.T) {
	var sent []sentMail
	w := newTestDigestWorker(&sent, nil, nil)

	w.runDigest(context.Background())

	if len(sent) != 0 {
		t.Fatal("digest sent for a day with zero errors")
	}
}

func TestDigestFetchFailure(t *testing.T) {
	var sent []sentMail
	w := newTestDigestWorker(&sent, nil, errors.New("mongo down"))

	w.runDigest(context.Background())

	if len(sent) != 0 {
		t.Fatal("digest sent despite query failure")
	}
}

func TestDigestNextRun(t *testing.T) {
	w := &DigestWorker{loc: time.UTC}

	// Before 09:00: today at 09:00.
	now := time.Date(2026, 3, 10, 6, 30, 0, 0, time.UTC)
	run := w.nextRun(now)
	want := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if !run.Equal(want) {
		t.Fatalf("nextRun before 09:00: got %v, want %v", run, want)
	}

	// At or after 09:00: tomorrow.
	now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	run = w.nextRun(now)
	want = time.Date(2026, 3, 11, 9, 0, 0, 0, time.UTC)
	if !run.Equal(want) {
		t.Fatalf("nextRun at 09:00: got %v, want %v", run, want)
	}
}
