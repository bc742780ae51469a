package alerts

import (
	"context"
	"log"
	"sort"
	"time"

	"cineadmin/db"
	"cineadmin/structs"

	"go.mongodb.org/mongo-driver/bson"
)

const digestHour = 9 // 09:00 local

// DigestWorker emails a daily aggregated error digest to the super-admins
// at 09:00 Asia/Kolkata. A day with zero errors is a logged no-op.
type DigestWorker struct {
	Mailer *Mailer

	loc *time.Location

	// swapped in tests
	recipients  func(ctx context.Context) ([]string, error)
	fetchErrors func(ctx context.Context, from, to time.Time) ([]structs.SystemLog, error)
}

func NewDigestWorker(mailer *Mailer) *DigestWorker {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		log.Printf("alerts: failed to load timezone, falling back to UTC: %v", err)
		loc = time.UTC
	}
	return &DigestWorker{
		Mailer:      mailer,
		loc:         loc,
		recipients:  SuperAdminEmails,
		fetchErrors: fetchErrorLogs,
	}
}

func fetchErrorLogs(ctx context.Context, from, to time.Time) ([]structs.SystemLog, error) {
	cursor, err := db.SystemLogsCollection.Find(ctx, bson.M{
		"status":    "error",
		"timestamp": bson.M{"$gte": from, "$lt": to},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []structs.SystemLog
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (w *DigestWorker) nextRun(now time.Time) time.Time {
	local := now.In(w.loc)
	run := time.Date(local.Year(), local.Month(), local.Day(), digestHour, 0, 0, 0, w.loc)
	if !run.After(local) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}

func (w *DigestWorker) Start(ctx context.Context) {
	log.Println("Digest worker started")
	for {
		wait := time.Until(w.nextRun(time.Now()))
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			log.Println("Digest worker stopped")
			return
		case <-timer.C:
			w.runDigest(ctx)
		}
	}
}

// runDigest builds and sends the digest for the previous calendar day.
func (w *DigestWorker) runDigest(ctx context.Context) {
	now := time.Now().In(w.loc)
	dayEnd := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, w.loc)
	dayStart := dayEnd.AddDate(0, 0, -1)

	logs, err := w.fetchErrors(ctx, dayStart, dayEnd)
	if err != nil {
		log.Printf("alerts: digest query failed: %v", err)
		return
	}
	if len(logs) == 0 {
		log.Printf("alerts: no errors on %s, skipping digest", dayStart.Format("2006-01-02"))
		return
	}

	counts := map[string]int{}
	for _, l := range logs {
		counts[l.Module]++
	}
	rows := make([]digestRow, 0, len(counts))
	for module, count := range counts {
		rows = append(rows, digestRow{Module: module, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Count > rows[j].Count })

	emails, err := w.recipients(ctx)
	if err != nil {
		log.Printf("alerts: failed to load digest recipients: %v", err)
		return
	}
	if len(emails) == 0 {
		log.Println("alerts: no super_admin recipients configured, skipping digest")
		return
	}

	body, err := renderDigest(digestData{
		Date:  dayStart.Format("2006-01-02"),
		Total: len(logs),
		Rows:  rows,
	})
	if err != nil {
		log.Printf("alerts: failed to render digest: %v", err)
		return
	}

	subject := "[Chhattisgarh Cinema] Error digest for " + dayStart.Format("2006-01-02")
	if err := w.Mailer.Send(emails, subject, body); err != nil {
		log.Printf("alerts: failed to send digest email: %v", err)
	}
}
