package email

import (
	"context"
	"fmt"

	"agency_portal_backend/internal/events"
	"agency_portal_backend/platform/config"
	"agency_portal_backend/platform/logger"
)

// Notifier turns domain events into alert emails for the account team.
// With email disabled in config it subscribes nothing and costs nothing.
type Notifier struct {
	sender    Sender
	recipient string
	log       *logger.Logger
}

// NewNotifier builds the notifier from config. Returns nil when email is
// disabled; Subscribe on a nil notifier is a no-op.
func NewNotifier(cfg config.EmailConfig, log *logger.Logger) *Notifier {
	if !cfg.GetEmailEnabled() || cfg.GetAlertRecipient() == "" {
		return nil
	}
	sender := NewSMTPSender(
		cfg.GetSMTPHost(), cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(), cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(), cfg.GetEmailFromName(),
	)
	return &Notifier{sender: sender, recipient: cfg.GetAlertRecipient(), log: log}
}

// Subscribe registers the alert handlers on the bus.
func (n *Notifier) Subscribe(bus events.Bus) {
	if n == nil {
		return
	}

	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(
		func(ctx context.Context, event events.Event) error {
			e, ok := event.(events.LeadCreated)
			if !ok || e.Priority != "hot" {
				return nil
			}
			return n.send(ctx,
				fmt.Sprintf("Hot lead: %s", e.Company),
				hotLeadBody(e),
			)
		}))

	bus.Subscribe(events.ProvisioningFailed{}.EventName(), events.HandlerFunc(
		func(ctx context.Context, event events.Event) error {
			e, ok := event.(events.ProvisioningFailed)
			if !ok {
				return nil
			}
			return n.send(ctx,
				fmt.Sprintf("Provisioning failed at %s", e.Step),
				provisioningFailedBody(e),
			)
		}))
}

func (n *Notifier) send(ctx context.Context, subject, body string) error {
	if err := n.sender.Send(ctx, n.recipient, subject, body); err != nil {
		// Alerting is best effort; a failed email never fails the operation.
		n.log.Error("alert email failed", "subject", subject, "error", err)
	}
	return nil
}

func hotLeadBody(e events.LeadCreated) string {
	return fmt.Sprintf(
		`<h2>New hot lead</h2>
<p><strong>%s</strong> (%s) from <strong>%s</strong> scored %d.</p>
<p>Source: %s</p>
<p>Reach out within the hour while the interest is fresh.</p>`,
		e.Name, e.Email, e.Company, e.LeadScore, e.Source)
}

func provisioningFailedBody(e events.ProvisioningFailed) string {
	return fmt.Sprintf(
		`<h2>Provisioning pipeline failure</h2>
<p>Lead <code>%s</code> failed at step <strong>%s</strong>.</p>
<p>Reason: %s</p>
<p>A backfill retry has been scheduled; check the logs if it keeps failing.</p>`,
		e.LeadID, e.Step, e.Reason)
}
