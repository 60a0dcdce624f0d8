package mailer

import (
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestBuildEnrollmentEmail(t *testing.T) {
	e := BuildEnrollmentEmail(EnrollmentEmailData{
		StudentName: "Ada Lovelace",
		CourseName:  "Intro to Go",
		Description: "Learn Go from first principles.",
		Thumbnail:   "https://media.test/thumbnails/go.png",
	})

	if !strings.Contains(e.Subject, "Intro to Go") {
		t.Errorf("subject = %q, want course name", e.Subject)
	}
	if !strings.Contains(e.TextBody, "Ada Lovelace") {
		t.Error("text body missing student name")
	}
	if !strings.Contains(e.TextBody, "Learn Go from first principles.") {
		t.Error("text body missing course description")
	}
	if !strings.Contains(e.HTMLBody, "Intro to Go") {
		t.Error("html body missing course name")
	}
	if !strings.Contains(e.HTMLBody, "Learn Go from first principles.") {
		t.Error("html body missing course description")
	}
	if !strings.Contains(e.HTMLBody, "https://media.test/thumbnails/go.png") {
		t.Error("html body missing thumbnail")
	}
}

func TestBuildEnrollmentEmail_NoThumbnail(t *testing.T) {
	e := BuildEnrollmentEmail(EnrollmentEmailData{
		StudentName: "Ada",
		CourseName:  "Intro to Go",
	})
	if strings.Contains(e.HTMLBody, "<img") {
		t.Error("html body should omit the image when no thumbnail is set")
	}
}

func TestBuildPaymentReceiptEmail(t *testing.T) {
	e := BuildPaymentReceiptEmail(ReceiptEmailData{
		StudentName: "Ada",
		OrderID:     "order_1",
		PaymentID:   "pay_1",
		Amount:      49900,
		Currency:    "INR",
	})

	if !strings.Contains(e.TextBody, "INR 499.00") {
		t.Errorf("text body = %q, want formatted amount", e.TextBody)
	}
	if !strings.Contains(e.HTMLBody, "order_1") || !strings.Contains(e.HTMLBody, "pay_1") {
		t.Error("html body missing order or payment id")
	}
}

func TestAmountMajor(t *testing.T) {
	tests := []struct {
		minor int
		want  string
	}{
		{0, "0.00"},
		{5, "0.05"},
		{100, "1.00"},
		{49900, "499.00"},
		{49999, "499.99"},
	}
	for _, tt := range tests {
		got := ReceiptEmailData{Amount: tt.minor}.AmountMajor()
		if got != tt.want {
			t.Errorf("AmountMajor(%d) = %q, want %q", tt.minor, got, tt.want)
		}
	}
}

func TestBuildPasswordResetEmail(t *testing.T) {
	e := BuildPasswordResetEmail(ResetEmailData{
		Name:     "Ada",
		ResetURL: "https://example.com/reset/abc123",
	})

	if !strings.Contains(e.TextBody, "https://example.com/reset/abc123") {
		t.Error("text body missing reset link")
	}
	if !strings.Contains(e.HTMLBody, "https://example.com/reset/abc123") {
		t.Error("html body missing reset link")
	}
	if !strings.Contains(e.TextBody, "1 hour") {
		t.Error("text body should state the expiry window")
	}
}

func TestSend_LogOnlyMode(t *testing.T) {
	m := New("", 0, "", "", "noreply@example.com", "SkillForge", zap.NewNop())
	if err := m.Send(Email{To: "a@example.com", Subject: "hi", TextBody: "hello"}); err != nil {
		t.Fatalf("log-only Send failed: %v", err)
	}
}

func TestBuildMessage(t *testing.T) {
	m := New("smtp.example.com", 587, "u", "p", "noreply@example.com", "SkillForge", zap.NewNop())
	msg := string(m.buildMessage(Email{
		To:       "a@example.com",
		Subject:  "Hello",
		TextBody: "plain text",
		HTMLBody: "<p>html</p>",
	}))

	for _, want := range []string{
		"From: SkillForge <noreply@example.com>",
		"To: a@example.com",
		"Subject: Hello",
		"multipart/alternative",
		"plain text",
		"<p>html</p>",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
}
