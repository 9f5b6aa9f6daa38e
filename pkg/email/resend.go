package email

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type EmailService struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewEmailService(apiKey, from, fromName string, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
		logger:   logger,
	}
}

var eventLiveTemplate = template.Must(template.New("event_live").Parse(`
<h2>Your event is live!</h2>
<p>Hi {{.FullName}},</p>
<p>Payment is confirmed and <strong>{{.EventName}}</strong> is now visible to guests.</p>
<p>It starts on {{.StartTime}}.</p>
`))

var medalTemplate = template.Must(template.New("medal").Parse(`
<h2>You earned a {{.MedalType}} medal</h2>
<p>Hi {{.FullName}},</p>
<p>Your activity this month earned you a {{.MedalType}} medal{{if .Discount}} with a {{.Discount}}% discount on your next event{{end}}.</p>
`))

func (s *EmailService) SendEventLiveEmail(to, fullName, eventName string, startTime time.Time) error {
	s.logger.Info("sending event live email", zap.String("to", to), zap.String("event", eventName))

	html, err := render(eventLiveTemplate, map[string]interface{}{
		"FullName":  fullName,
		"EventName": eventName,
		"StartTime": startTime.Format("Monday, Jan 2 at 3:04 PM"),
	})
	if err != nil {
		return err
	}

	return s.send(to, fmt.Sprintf("%s is live", eventName), html)
}

func (s *EmailService) SendMedalEmail(to, fullName, medalType string, discount float64) error {
	s.logger.Info("sending medal email", zap.String("to", to), zap.String("medal", medalType))

	html, err := render(medalTemplate, map[string]interface{}{
		"FullName":  fullName,
		"MedalType": medalType,
		"Discount":  discount,
	})
	if err != nil {
		return err
	}

	return s.send(to, fmt.Sprintf("You earned a %s medal", medalType), html)
}

func (s *EmailService) send(to, subject, html string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.fromName, s.from),
		To:      []string{to},
		Subject: subject,
		Html:    html,
	}

	_, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send email", zap.String("to", to), zap.Error(err))
	}
	return err
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
