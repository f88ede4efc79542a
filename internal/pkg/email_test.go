package pkg

import (
	"bytes"
	"strings"
	"testing"
)

func TestActivationHTMLEscapes(t *testing.T) {
	body := ActivationHTML("<bob>")
	if strings.Contains(body, "<bob>") {
		t.Errorf("username must be escaped, got %s", body)
	}
	if !strings.Contains(body, "&lt;bob&gt;") {
		t.Errorf("expected escaped username in %s", body)
	}
}

func TestNewEmailHeaders(t *testing.T) {
	cfg := SMTPConfig{Host: "smtp.example.com", Port: 587, From: "Club <no-reply@example.com>"}
	if !cfg.Enabled() {
		t.Fatal("expected config to be enabled")
	}
	m := NewEmail(cfg, "bob@example.com", ActivationSubject, ActivationHTML("bob"))

	if got := m.GetHeader("To"); len(got) != 1 || got[0] != "bob@example.com" {
		t.Errorf("unexpected To header %v", got)
	}
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if !strings.Contains(buf.String(), "Subject: Your account is active") {
		t.Errorf("subject missing from message:\n%s", buf.String())
	}
	if (SMTPConfig{}).Enabled() {
		t.Error("empty config must be disabled")
	}
}

func TestNewMessageKey(t *testing.T) {
	msg := NewMessage("USR000001", []byte(`{"type":"x"}`))
	if string(msg.Key) != "USR000001" {
		t.Errorf("unexpected key %q", msg.Key)
	}
}
