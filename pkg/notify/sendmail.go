package notify

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"mime"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Sendmail defaults
const (
	DefaultSendmailPath = "/usr/sbin/sendmail"
	DefaultRecipient    = "root"
	DefaultSubject      = "Notification from meteowatch"
)

// SendmailNotifier pipes a plain-text message into the local MTA
type SendmailNotifier struct {
	Path      string
	Recipient string
	Subject   string
	logger    zerolog.Logger
}

// NewSendmailNotifier creates a notifier using the local sendmail binary.
// Empty arguments select the defaults.
func NewSendmailNotifier(path, recipient string, logger zerolog.Logger) *SendmailNotifier {
	if path == "" {
		path = DefaultSendmailPath
	}
	if recipient == "" {
		recipient = DefaultRecipient
	}
	return &SendmailNotifier{
		Path:      path,
		Recipient: recipient,
		Subject:   DefaultSubject,
		logger:    logger,
	}
}

// Name returns the notifier type
func (s *SendmailNotifier) Name() string {
	return "sendmail"
}

// Notify hands the message to sendmail. Recipients are read from the
// headers (-t) and a lone dot does not end the input (-oi).
func (s *SendmailNotifier) Notify(ctx context.Context, n Notification) error {
	s.logger.Debug().Str("recipient", s.Recipient).Msg("Sending mail")

	cmd := exec.CommandContext(ctx, s.Path, "-t", "-oi")
	cmd.Stdin = bytes.NewReader(s.Compose(n))
	cmd.WaitDelay = time.Second

	out, err := cmd.CombinedOutput()
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		s.logger.Debug().Msg(scanner.Text())
	}
	if err != nil {
		return fmt.Errorf("sendmail: %w", err)
	}
	return nil
}

// Compose renders n as an RFC 5322 message
func (s *SendmailNotifier) Compose(n Notification) []byte {
	at := n.Time
	if at.IsZero() {
		at = time.Now()
	}
	host := n.Host
	if host == "" {
		host = "localhost"
	}

	var b bytes.Buffer
	header := func(k, v string) { fmt.Fprintf(&b, "%s: %s\r\n", k, v) }

	header("From", host)
	header("To", s.Recipient)
	header("Subject", mime.QEncoding.Encode("utf-8", s.Subject))
	header("Date", at.Format(time.RFC1123Z))
	header("Message-ID", fmt.Sprintf("<%s@%s>", uuid.New(), host))
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="utf-8"`)
	header("Content-Transfer-Encoding", "8bit")
	b.WriteString("\r\n")

	var body []string
	if n.Binary != "" {
		body = append(body, "Binary path: "+n.Binary)
	}
	if n.Cause != "" {
		body = append(body, "Failed checks: "+n.Cause)
	}
	body = append(body, fmt.Sprintf("Rebooting %s in %s", host, delayText(n.Delay)))
	b.WriteString(strings.Join(body, "\r\n"))
	b.WriteString("\r\n")

	return b.Bytes()
}

func delayText(d time.Duration) string {
	minutes := int(d.Round(time.Minute) / time.Minute)
	if minutes <= 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
