package alerts

import (
	"context"
	"os"
	"strconv"

	"cineadmin/db"

	"go.mongodb.org/mongo-driver/bson"
	"gopkg.in/gomail.v2"
)

const (
	fromName    = "Chhattisgarh Cinema Alerts"
	alertSender = "alerts@chhattisgarhcinema.example"
)

// Mailer sends HTML mail over SMTP. The account identity and credential
// are the two secrets read from the environment.
type Mailer struct {
	host     string
	port     int
	email    string
	password string

	// send is swapped in tests
	send func(msg *gomail.Message) error
}

func NewMailerFromEnv() *Mailer {
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil || port == 0 {
		port = 587
	}
	m := &Mailer{
		host:     os.Getenv("SMTP_HOST"),
		port:     port,
		email:    os.Getenv("SMTP_EMAIL"),
		password: os.Getenv("SMTP_PASSWORD"),
	}
	m.send = func(msg *gomail.Message) error {
		dialer := gomail.NewDialer(m.host, m.port, m.email, m.password)
		return dialer.DialAndSend(msg)
	}
	return m
}

// Send delivers one HTML message to the recipient list.
func (m *Mailer) Send(to []string, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(alertSender, fromName))
	msg.SetHeader("To", to...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)
	return m.send(msg)
}

// SuperAdminEmails returns the addresses of every super_admin with a
// non-empty email field.
func SuperAdminEmails(ctx context.Context) ([]string, error) {
	cursor, err := db.AdminsCollection.Find(ctx, bson.M{
		"role":  "super_admin",
		"email": bson.M{"$ne": ""},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var admins []struct {
		Email string `bson:"email"`
	}
	if err := cursor.All(ctx, &admins); err != nil {
		return nil, err
	}

	var emails []string
	for _, a := range admins {
		if a.Email != "" {
			emails = append(emails, a.Email)
		}
	}
	return emails, nil
}
