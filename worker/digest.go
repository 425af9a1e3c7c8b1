package worker

import (
	"bytes"
	"context"
	"fmt"
	"fooddonation-backend/models"
	"fooddonation-backend/services"
	"fooddonation-backend/utils/logger"
	"html/template"
	"time"
)

// AlertSource yields the food items expiring within the alert window
type AlertSource interface {
	GetExpiryAlerts(ctx context.Context) ([]*models.FoodItem, error)
}

var digestTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"date": func(t time.Time) string { return t.UTC().Format("2006-01-02") },
}).Parse(`<p>{{len .Items}} food item(s) expire within the next 7 days.</p>
<table>
<tr><th>Name</th><th>Category</th><th>Quantity</th><th>Expiry Date</th></tr>
{{range .Items}}<tr><td>{{.Name}}</td><td>{{.Category}}</td><td>{{.Qty}} {{.Unit}}</td><td>{{date .ExpiryDate}}</td></tr>
{{end}}</table>`))

// ExpiryDigestJob reports soon-to-expire stock. It never changes item status.
type ExpiryDigestJob struct {
	alerts    AlertSource
	mailer    services.Mailer
	recipient string
	logger    logger.Logger
	now       func() time.Time
}

// NewExpiryDigestJob creates the digest job. mailer may be nil.
func NewExpiryDigestJob(alerts AlertSource, mailer services.Mailer, recipient string, log logger.Logger) *ExpiryDigestJob {
	return &ExpiryDigestJob{alerts: alerts, mailer: mailer, recipient: recipient, logger: log, now: time.Now}
}

// Run computes the digest, logs it and mails it when delivery is configured
func (j *ExpiryDigestJob) Run(ctx context.Context) (*models.ExpiryDigest, error) {
	items, err := j.alerts.GetExpiryAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load expiry alerts: %w", err)
	}
	digest := &models.ExpiryDigest{GeneratedAt: j.now(), Items: items}

	j.logger.WithFields(map[string]interface{}{
		"expiring_items": len(items),
	}).Info("Expiry digest computed")
	for _, item := range items {
		j.logger.WithFields(map[string]interface{}{
			"id":          item.ID,
			"name":        item.Name,
			"expiry_date": item.ExpiryDate,
		}).Debug("Item expiring soon")
	}

	if len(items) == 0 || j.mailer == nil || j.recipient == "" {
		return digest, nil
	}

	body, err := RenderDigest(digest)
	if err != nil {
		return digest, err
	}
	subject := fmt.Sprintf("Expiry alert: %d item(s) expiring soon", len(items))
	if err := j.mailer.Send(ctx, j.recipient, subject, body); err != nil {
		return digest, fmt.Errorf("send expiry digest: %w", err)
	}
	return digest, nil
}

// RenderDigest renders the digest as an HTML email body
func RenderDigest(digest *models.ExpiryDigest) (string, error) {
	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, digest); err != nil {
		return "", fmt.Errorf("render expiry digest: %w", err)
	}
	return buf.String(), nil
}
