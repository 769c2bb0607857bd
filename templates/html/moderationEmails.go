package templates

import (
	"fmt"
	"html"
)

// RenderBanNoticeEmail generates the HTML for the ban notification email.
// expiresLine is a human readable expiry sentence, e.g. "This ban expires on
// Jan 2, 2006." or "This ban is permanent."
func RenderBanNoticeEmail(displayName, reason, expiresLine string) string {
	safeName := html.EscapeString(displayName)
	safeReason := html.EscapeString(reason)
	safeExpires := html.EscapeString(expiresLine)
	return fmt.Sprintf(`<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
  <meta http-equiv="Content-Type" content="text/html; charset=utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1, minimum-scale=1, maximum-scale=1">
  <title>Account Restriction Notice - PolyView</title>
  <style type="text/css">
    body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; margin: 0; padding: 0; background-color: #0a0a0f; }
    .container { max-width: 600px; margin: 0 auto; background-color: #12121f; }
    .header { background: linear-gradient(135deg, #ef4444 0%%, #b91c1c 100%%); padding: 40px 30px; text-align: center; }
    .header h1 { color: #fff; margin: 0; font-size: 24px; font-weight: 700; }
    .content { padding: 40px 30px; color: #e5e7eb; }
    .content h2 { color: #fff; margin-top: 0; }
    .highlight-box { background: rgba(239, 68, 68, 0.1); border: 1px solid rgba(239, 68, 68, 0.3); border-radius: 12px; padding: 20px; margin: 20px 0; }
    .highlight-box h3 { color: #ef4444; margin-top: 0; font-size: 16px; }
    .footer { padding: 30px; text-align: center; color: #6b7280; font-size: 12px; border-top: 1px solid rgba(255,255,255,0.1); }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Account Restriction Notice</h1>
    </div>
    <div class="content">
      <h2>Hi %s,</h2>
      <p>A moderator has restricted your ability to contribute within one of the perspectives you participate in.</p>

      <div class="highlight-box">
        <h3>Reason</h3>
        <p style="margin-bottom: 0;">%s</p>
      </div>

      <p>%s</p>
      <p>While this ban is active you will not be able to post, comment, or edit within the affected perspective. Your access to the rest of the platform is unchanged.</p>
      <p>If you believe this decision was made in error, you can reply to this email to request a review.</p>
    </div>
    <div class="footer">
      <p>PolyView Moderation Team</p>
    </div>
  </div>
</body>
</html>`, safeName, safeReason, safeExpires)
}
