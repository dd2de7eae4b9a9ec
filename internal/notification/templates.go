package notification

import "fmt"

// Data carries the template fields for a notification. Only the fields a
// given kind uses need to be set.
type Data struct {
	Username       string
	Email          string
	Role           string
	ExternalID     string
	SubmissionDate string
	Code           string
	RejectionReason string
	ExpiryMinutes  int
	ApproveURL     string
	RejectURL      string
	AdminPanelURL  string
}

func render(kind Kind, data Data) (subject, html string, err error) {
	switch kind {
	case KindOTP:
		return fmt.Sprintf("Your verification code - %s", data.Code), otpHTML(data), nil
	case KindAdminNotification:
		return fmt.Sprintf("New registration request - %s - %s", data.Role, data.Username), adminNotificationHTML(data), nil
	case KindApproval:
		return "Registration approved - your activation code", approvalHTML(data), nil
	case KindRejection:
		return "Registration request not approved", rejectionHTML(data), nil
	default:
		return "", "", fmt.Errorf("unknown notification kind: %s", kind)
	}
}

func otpHTML(data Data) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #2563eb;">Verification code</h1>
    <div style="background: #f0f9ff; padding: 20px; border-radius: 8px; text-align: center;">
      <div style="font-size: 40px; font-weight: bold; letter-spacing: 8px; font-family: monospace;">%s</div>
      <p>This code expires in %d minutes.</p>
    </div>
    <p style="color: #6b7280; font-size: 14px;">If you did not request this code, ignore this email.</p>
  </div>
</body>
</html>`, data.Code, data.ExpiryMinutes)
}

func adminNotificationHTML(data Data) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #2563eb;">New registration request</h1>
    <table style="width: 100%%; border-collapse: collapse;">
      <tr><td style="padding: 6px 0; font-weight: bold;">Username:</td><td>%s</td></tr>
      <tr><td style="padding: 6px 0; font-weight: bold;">Email:</td><td>%s</td></tr>
      <tr><td style="padding: 6px 0; font-weight: bold;">Role:</td><td>%s</td></tr>
      <tr><td style="padding: 6px 0; font-weight: bold;">National ID:</td><td style="font-family: monospace;">%s</td></tr>
      <tr><td style="padding: 6px 0; font-weight: bold;">Submitted:</td><td>%s</td></tr>
    </table>
    <div style="text-align: center; margin: 25px 0;">
      <a href="%s" style="display: inline-block; background: #16a34a; color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px; font-weight: bold; margin-right: 10px;">APPROVE</a>
      <a href="%s" style="display: inline-block; background: #dc2626; color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px; font-weight: bold;">REJECT</a>
    </div>
    <p style="text-align: center;"><a href="%s">Open the admin panel</a> to review the full request.</p>
  </div>
</body>
</html>`, data.Username, data.Email, data.Role, data.ExternalID, data.SubmissionDate,
		data.ApproveURL, data.RejectURL, data.AdminPanelURL)
}

func approvalHTML(data Data) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #16a34a;">Registration approved</h1>
    <p>Hello <strong>%s</strong>, your registration request has been approved.</p>
    <div style="background: #f0f9ff; padding: 20px; border-radius: 8px; text-align: center;">
      <h3 style="margin: 0 0 10px 0;">Your activation code</h3>
      <div style="font-size: 40px; font-weight: bold; letter-spacing: 8px; font-family: monospace;">%s</div>
      <p>Keep this code safe; you will need it to finish signing in.</p>
    </div>
  </div>
</body>
</html>`, data.Username, data.Code)
}

func rejectionHTML(data Data) string {
	reason := ""
	if data.RejectionReason != "" {
		reason = fmt.Sprintf(`<div style="background: #fee2e2; padding: 15px; border-radius: 8px; margin: 20px 0;">
      <h3 style="color: #dc2626; margin: 0 0 10px 0;">Reason</h3>
      <p style="margin: 0;">%s</p>
    </div>`, data.RejectionReason)
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
    <h1 style="color: #dc2626;">Registration request not approved</h1>
    <p>Hello <strong>%s</strong>, we regret to inform you that your registration request could not be approved.</p>
    %s
    <p>You may submit a new request once the issues have been addressed.</p>
  </div>
</body>
</html>`, data.Username, reason)
}
