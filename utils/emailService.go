package utils

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"memarya/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// Outgoing mail is disabled when no sender is configured
	if from == "" {
		return nil
	}

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Memarya Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by all outgoing mail
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1B2A4A; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1B2A4A; line-height: 1.6; }
			.content h2 { color: #1B2A4A; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #4CAF7D; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4CAF7D; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>MEMARYA ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Memarya Academy. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Memarya Academy"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Memarya Academy</strong>! We are thrilled to have you onboard.</p>
		<p>Your account has been successfully created. Browse the catalog and enroll in your first course to get started.</p>
		<p>If you have any questions, feel free to reach out to our support team.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Email verification OTP
func SendOTPEmail(email, otp string) error {
	subject := "Your Memarya Academy Verification Code"
	body := fmt.Sprintf(`
		<p>Your One Time Password (OTP) is:</p>
		<h1 style="text-align: center; color: #4CAF7D; font-size: 40px; margin: 20px 0;">%s</h1>
		<p style="font-size: 14px; color: #999999;">The code expires in 10 minutes. Do not share this OTP with anyone.</p>
	`, otp)

	return SendEmail([]string{email}, subject, getEmailTemplate("Verify Your Email", body))
}

// 3. Certificate issued
func SendCertificateEmail(email, name, courseTitle, certificateNumber string, issuedAt time.Time) {
	subject := "Your Certificate for " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have completed <strong>%s</strong>.</p>
		<div class="info-box">
			Certificate number: <strong>%s</strong><br>
			Issued on: %s
		</div>
		<p>You can download your certificate as a PDF from your certificates page at any time.</p>
	`, name, courseTitle, certificateNumber, issuedAt.Format("January 2, 2006"))

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Completed!", body))
}
