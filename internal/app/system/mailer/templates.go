// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// EnrollmentEmailData holds data for the course-enrollment confirmation.
type EnrollmentEmailData struct {
	StudentName string
	CourseName  string
	Description string
	Thumbnail   string // course thumbnail URL, may be empty
}

// BuildEnrollmentEmail creates the confirmation sent after a student is
// enrolled in a course.
func BuildEnrollmentEmail(data EnrollmentEmailData) Email {
	return Email{
		To:      "", // Set by caller
		Subject: fmt.Sprintf("You are enrolled in %s", data.CourseName),
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nYou have been successfully enrolled in %s.\n\n%s\n\nHappy learning!\n",
			data.StudentName, data.CourseName, data.Description),
		HTMLBody: renderHTML("enrollment", enrollmentHTMLTemplate, data),
	}
}

// ReceiptEmailData holds data for the payment receipt.
type ReceiptEmailData struct {
	StudentName string
	OrderID     string
	PaymentID   string
	Amount      int // minor units
	Currency    string
}

// AmountMajor renders the minor-unit amount as a major-unit figure for
// display (e.g. 49900 -> "499.00").
func (d ReceiptEmailData) AmountMajor() string {
	return fmt.Sprintf("%d.%02d", d.Amount/100, d.Amount%100)
}

// BuildPaymentReceiptEmail creates the receipt sent after the gateway
// confirms a payment.
func BuildPaymentReceiptEmail(data ReceiptEmailData) Email {
	return Email{
		To:      "",
		Subject: "Payment received",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nWe received your payment of %s %s.\n\nOrder: %s\nPayment: %s\n",
			data.StudentName, data.Currency, data.AmountMajor(), data.OrderID, data.PaymentID),
		HTMLBody: renderHTML("receipt", receiptHTMLTemplate, data),
	}
}

// ResetEmailData holds data for the password-reset email.
type ResetEmailData struct {
	Name     string
	ResetURL string
}

// BuildPasswordResetEmail creates the reset-link email. The link embeds a
// token that expires an hour after it is issued.
func BuildPasswordResetEmail(data ResetEmailData) Email {
	return Email{
		To:      "",
		Subject: "Reset your password",
		TextBody: fmt.Sprintf(
			"Hi %s,\n\nFollow this link to reset your password:\n%s\n\nThe link expires in 1 hour. If you did not request a reset, you can safely ignore this email.\n",
			data.Name, data.ResetURL),
		HTMLBody: renderHTML("reset", resetHTMLTemplate, data),
	}
}

func renderHTML(name, tmplText string, data any) string {
	tmpl := template.Must(template.New(name).Parse(tmplText))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const enrollmentHTMLTemplate = `<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 24px; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <div style="max-width: 480px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; padding: 32px;">
    <h1 style="margin: 0 0 16px; font-size: 20px; color: #1f2937;">Welcome aboard, {{.StudentName}}!</h1>
    {{if .Thumbnail}}<img src="{{.Thumbnail}}" alt="{{.CourseName}}" style="display: block; width: 100%; border-radius: 6px; margin: 0 0 16px;">
    {{end}}<p style="margin: 0 0 16px; font-size: 15px; color: #374151; line-height: 1.5;">
      You have been successfully enrolled in <strong>{{.CourseName}}</strong>.
    </p>
    <p style="margin: 0 0 16px; font-size: 14px; color: #6b7280; line-height: 1.5;">{{.Description}}</p>
    <p style="margin: 0; font-size: 13px; color: #9ca3af;">Happy learning!</p>
  </div>
</body>
</html>`

const receiptHTMLTemplate = `<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 24px; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <div style="max-width: 480px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; padding: 32px;">
    <h1 style="margin: 0 0 16px; font-size: 20px; color: #1f2937;">Payment received</h1>
    <p style="margin: 0 0 16px; font-size: 15px; color: #374151; line-height: 1.5;">
      Hi {{.StudentName}}, we received your payment of <strong>{{.Currency}} {{.AmountMajor}}</strong>.
    </p>
    <table style="width: 100%; font-size: 13px; color: #6b7280;">
      <tr><td style="padding: 4px 0;">Order</td><td style="text-align: right;">{{.OrderID}}</td></tr>
      <tr><td style="padding: 4px 0;">Payment</td><td style="text-align: right;">{{.PaymentID}}</td></tr>
    </table>
  </div>
</body>
</html>`

const resetHTMLTemplate = `<!DOCTYPE html>
<html>
<body style="margin: 0; padding: 24px; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <div style="max-width: 480px; margin: 0 auto; background-color: #ffffff; border-radius: 8px; padding: 32px;">
    <h1 style="margin: 0 0 16px; font-size: 20px; color: #1f2937;">Reset your password</h1>
    <p style="margin: 0 0 24px; font-size: 15px; color: #374151; line-height: 1.5;">
      Hi {{.Name}}, click the button below to choose a new password.
    </p>
    <p style="margin: 0 0 24px; text-align: center;">
      <a href="{{.ResetURL}}" style="display: inline-block; padding: 12px 28px; background-color: #4f46e5; color: #ffffff; text-decoration: none; font-size: 15px; border-radius: 6px;">Reset Password</a>
    </p>
    <p style="margin: 0; font-size: 12px; color: #9ca3af; text-align: center;">
      The link expires in 1 hour. If you did not request a reset, you can safely ignore this email.
    </p>
  </div>
</body>
</html>`
