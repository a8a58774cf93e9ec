package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// ContactNotificationData holds data for the owner notification.
type ContactNotificationData struct {
	SiteName   string
	Name       string
	Email      string
	Subject    string // optional
	Message    string
	ReceivedAt time.Time
	Reference  string
}

// AutoReplyData holds data for the auto-reply sent to the visitor.
type AutoReplyData struct {
	SiteName  string
	Name      string
	Message   string
	OwnerName string
}

// DiagnosticData holds data for the test email.
type DiagnosticData struct {
	SiteName string
	Provider string
	SentAt   time.Time
}

var funcs = template.FuncMap{
	"lines": splitLines,
	"stamp": func(t time.Time) string { return t.UTC().Format("Mon, 02 Jan 2006 15:04:05 MST") },
}

var (
	notificationTmpl = template.Must(template.New("notification").Funcs(funcs).Parse(layoutHTML + notificationHTML))
	autoReplyTmpl    = template.Must(template.New("auto_reply").Funcs(funcs).Parse(layoutHTML + autoReplyHTML))
	diagnosticTmpl   = template.Must(template.New("diagnostic").Funcs(funcs).Parse(layoutHTML + diagnosticHTML))
)

// splitLines normalizes line endings and splits for <br> rendering.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(s, "\n")
}

func render(t *template.Template, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("email: failed to render %s: %w", t.Name(), err)
	}
	return buf.String(), nil
}

// ContactNotificationHTML returns the HTML body of the owner notification.
func ContactNotificationHTML(data ContactNotificationData) (string, error) {
	return render(notificationTmpl, data)
}

// ContactNotificationText returns the plain-text body of the owner notification.
func ContactNotificationText(data ContactNotificationData) string {
	var buf bytes.Buffer
	buf.WriteString("New contact form submission\n\n")
	fmt.Fprintf(&buf, "Name: %s\n", data.Name)
	fmt.Fprintf(&buf, "Email: %s\n", data.Email)
	if data.Subject != "" {
		fmt.Fprintf(&buf, "Subject: %s\n", data.Subject)
	}
	fmt.Fprintf(&buf, "\nMessage:\n%s\n\n", data.Message)
	fmt.Fprintf(&buf, "Received at %s (ref %s)\n", data.ReceivedAt.UTC().Format(time.RFC1123), data.Reference)
	fmt.Fprintf(&buf, "This email was sent from the %s contact form.\n", data.SiteName)
	return buf.String()
}

// AutoReplyHTML returns the HTML body of the auto-reply.
func AutoReplyHTML(data AutoReplyData) (string, error) {
	return render(autoReplyTmpl, data)
}

// AutoReplyText returns the plain-text body of the auto-reply.
func AutoReplyText(data AutoReplyData) string {
	return fmt.Sprintf(`Hi %s,

Thank you for reaching out! I've received your message and will get back to you as soon as possible.

Your message:
%s

I typically respond within 24-48 hours. If your inquiry is urgent, feel free to reach out to me directly.

Looking forward to connecting!

Best regards,
%s

- This is an automated response from the %s contact form.`, data.Name, data.Message, data.OwnerName, data.SiteName)
}

// DiagnosticHTML returns the HTML body of the test email.
func DiagnosticHTML(data DiagnosticData) (string, error) {
	return render(diagnosticTmpl, data)
}

// DiagnosticText returns the plain-text body of the test email.
func DiagnosticText(data DiagnosticData) string {
	return fmt.Sprintf("Test email from the %s contact relay.\n\nProvider: %s\nSent at: %s\n\nIf you received this, outbound email is working.",
		data.SiteName, data.Provider, data.SentAt.UTC().Format(time.RFC1123))
}

const layoutHTML = `{{define "layout_start"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
</head>
<body style="margin:0;padding:0;font-family:Arial,Helvetica,sans-serif;line-height:1.6;color:#333333;background-color:#f4f5f7;">
<table role="presentation" width="100%" cellpadding="0" cellspacing="0" style="background-color:#f4f5f7;padding:40px 0;">
<tr><td align="center">
<table role="presentation" width="600" cellpadding="0" cellspacing="0" style="max-width:600px;background-color:#f8f9fa;border-radius:10px;overflow:hidden;">
{{end}}{{define "layout_end"}}</table>
</td></tr>
</table>
</body>
</html>{{end}}`

const notificationHTML = `{{template "layout_start"}}
  <tr><td style="padding:30px;text-align:center;color:#ffffff;background:linear-gradient(135deg,#667eea 0%,#764ba2 100%);background-color:#667eea;">
    <h1 style="margin:0;font-size:24px;">New Contact Form Submission</h1>
  </td></tr>
  <tr><td style="padding:30px 30px 20px;">
    <div style="font-weight:bold;color:#667eea;margin-bottom:5px;">Name:</div>
    <div style="background-color:#ffffff;padding:15px;border-radius:5px;border-left:4px solid #667eea;">{{.Name}}</div>
  </td></tr>
  <tr><td style="padding:0 30px 20px;">
    <div style="font-weight:bold;color:#667eea;margin-bottom:5px;">Email:</div>
    <div style="background-color:#ffffff;padding:15px;border-radius:5px;border-left:4px solid #667eea;"><a href="mailto:{{.Email}}">{{.Email}}</a></div>
  </td></tr>
  {{if .Subject}}<tr><td style="padding:0 30px 20px;">
    <div style="font-weight:bold;color:#667eea;margin-bottom:5px;">Subject:</div>
    <div style="background-color:#ffffff;padding:15px;border-radius:5px;border-left:4px solid #667eea;">{{.Subject}}</div>
  </td></tr>{{end}}
  <tr><td style="padding:0 30px 30px;">
    <div style="font-weight:bold;color:#667eea;margin-bottom:5px;">Message:</div>
    <div style="background-color:#ffffff;padding:15px;border-radius:5px;border-left:4px solid #667eea;">{{range $i, $line := lines .Message}}{{if $i}}<br>{{end}}{{$line}}{{end}}</div>
  </td></tr>
  <tr><td style="padding:16px 30px;text-align:center;font-size:12px;color:#666666;border-top:1px solid #eeeef2;">
    <p style="margin:0;">Received at {{stamp .ReceivedAt}} &middot; ref {{.Reference}}</p>
    <p style="margin:0;">This email was sent from the {{.SiteName}} contact form</p>
  </td></tr>
{{template "layout_end"}}`

const autoReplyHTML = `{{template "layout_start"}}
  <tr><td style="padding:30px;text-align:center;color:#ffffff;background:linear-gradient(135deg,#667eea 0%,#764ba2 100%);background-color:#667eea;">
    <h1 style="margin:0;font-size:24px;">Thanks for Getting in Touch!</h1>
  </td></tr>
  <tr><td style="padding:30px;">
    <p>Hi <strong>{{.Name}}</strong>,</p>
    <p>Thank you for reaching out! I've received your message and will get back to you as soon as possible.</p>
    <div style="background-color:#ffffff;padding:20px;border-radius:5px;margin:20px 0;">
      <h3 style="margin-top:0;">Your Message:</h3>
      <p>{{range $i, $line := lines .Message}}{{if $i}}<br>{{end}}{{$line}}{{end}}</p>
    </div>
    <p>I typically respond within 24-48 hours. If your inquiry is urgent, feel free to reach out to me directly.</p>
    <p>Looking forward to connecting!</p>
    <p>Best regards,<br><strong>{{.OwnerName}}</strong></p>
  </td></tr>
  <tr><td style="padding:16px 30px;text-align:center;font-size:12px;color:#666666;border-top:1px solid #eeeef2;">
    <p style="margin:0;">This is an automated response from the {{.SiteName}} contact form</p>
  </td></tr>
{{template "layout_end"}}`

const diagnosticHTML = `{{template "layout_start"}}
  <tr><td style="padding:30px;">
    <h1 style="margin:0 0 16px;font-size:22px;color:#1a1a2e;">Test email</h1>
    <p>This is a test email from the {{.SiteName}} contact relay.</p>
    <p>Provider: <strong>{{.Provider}}</strong><br>Sent at: {{stamp .SentAt}}</p>
    <p>If you received this, outbound email is working.</p>
  </td></tr>
{{template "layout_end"}}`
