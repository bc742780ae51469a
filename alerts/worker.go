package alerts

import (
	"context"
	"log"

	"cineadmin/audit"
	"cineadmin/structs"
)

// AlertWorker reacts to error-level log entries by mailing every
// super-admin a formatted critical-error notice. Failures anywhere in the
// path are caught and logged; the log write that triggered the alert is
// never rolled back or retried.
type AlertWorker struct {
	Mailer *Mailer

	// swapped in tests
	recipients func(ctx context.Context) ([]string, error)
	entries    <-chan structs.SystemLog
	record     func(ctx context.Context, e audit.Entry)
}

func NewAlertWorker(mailer *Mailer) *AlertWorker {
	return &AlertWorker{
		Mailer:     mailer,
		recipients: SuperAdminEmails,
		entries:    audit.ErrorEntries,
		record:     audit.Record,
	}
}

func (w *AlertWorker) Start(ctx context.Context) {
	log.Println("Alert worker started")
	for {
		select {
		case <-ctx.Done():
			log.Println("Alert worker stopped")
			return
		case entry := <-w.entries:
			w.dispatch(ctx, entry)
		}
	}
}

func (w *AlertWorker) dispatch(ctx context.Context, entry structs.SystemLog) {
	emails, err := w.recipients(ctx)
	if err != nil {
		log.Printf("alerts: failed to load recipients: %v", err)
		return
	}
	if len(emails) == 0 {
		log.Println("alerts: no super_admin recipients configured, skipping alert")
		return
	}

	body, err := renderAlert(entry)
	if err != nil {
		log.Printf("alerts: failed to render alert: %v", err)
		return
	}

	if err := w.Mailer.Send(emails, "[Chhattisgarh Cinema] Critical error in "+entry.Module, body); err != nil {
		log.Printf("alerts: failed to send alert email: %v", err)
		return
	}

	// Record the dispatch itself. Status success, so this cannot feed back
	// into the alert queue.
	w.record(context.Background(), audit.Entry{
		Action:   audit.ActionAlertSent,
		Module:   "alerts",
		ItemID:   entry.LogID,
		ItemType: "system_log",
		Details:  "Critical error alert emailed to " + emailsSummary(emails),
	})
}

func emailsSummary(emails []string) string {
	if len(emails) == 1 {
		return emails[0]
	}
	return emails[0] + " and others"
}
