package email

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/rs/zerolog/log"
)

// Attachment is a file carried on the outgoing message, already in memory.
type Attachment struct {
	Filename string
	Data     []byte
}

// Message is a fully composed digest email.
type Message struct {
	Subject    string
	HTML       string
	To         []string
	CC         []string
	Attachment *Attachment
}

// Mailer delivers digest emails through Mailgun.
type Mailer struct {
	mg   *mailgun.MailgunImpl
	from string
}

func NewMailer(domain, apiKey, from string) *Mailer {
	return &Mailer{mg: mailgun.NewMailgun(domain, apiKey), from: from}
}

// Send delivers the message. Delivery problems surface as a single wrapped
// error; the Mailgun message id is logged on success.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	text := "Laporan penjualan harian terlampir. Buka email ini dengan klien yang mendukung HTML."
	mm := mailgun.NewMessage(m.from, msg.Subject, text, msg.To...)
	mm.SetHTML(msg.HTML)
	for _, cc := range msg.CC {
		mm.AddCC(cc)
	}
	if msg.Attachment != nil {
		mm.AddBufferAttachment(msg.Attachment.Filename, msg.Attachment.Data)
	}

	_, id, err := m.mg.Send(ctx, mm)
	if err != nil {
		return fmt.Errorf("failed to send report email: %w", err)
	}

	log.Info().
		Str("message_id", id).
		Strs("to", msg.To).
		Msg("Report email sent")
	return nil
}
