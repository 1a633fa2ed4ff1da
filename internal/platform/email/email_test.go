package email

import (
	"context"
	"strings"
	"testing"

	"hrdesk/internal/platform/config"
)

func TestBuildMessageStripsHeaderInjection(t *testing.T) {
	msg := string(buildMessage("hr@example.com", "asha@example.com", "Leave approved\r\nBcc: evil@example.com", "line one\nline two"))

	if strings.Contains(msg, "\r\nBcc:") {
		t.Fatalf("subject injected a header: %q", msg)
	}
	if !strings.Contains(msg, "Subject: Leave approved  Bcc: evil@example.com\r\n") {
		t.Fatalf("unexpected subject line: %q", msg)
	}
	if !strings.HasSuffix(msg, "\r\n\r\nline one\r\nline two") {
		t.Fatalf("unexpected body: %q", msg)
	}
}

func TestNewDisabledIsNoop(t *testing.T) {
	mailer := New(config.Config{EmailEnabled: false, SMTPHost: "smtp.example.com"})
	if err := mailer.Send(context.Background(), "a@example.com", "b@example.com", "s", "b"); err != nil {
		t.Fatalf("noop mailer returned %v", err)
	}
}
