package mail

import (
	"bytes"
	"html/template"
	"time"
)

const welcomeTpl = `<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;background:#f5f5f5;padding:20px">
<div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;padding:24px">
  <h1 style="color:#333">Welcome, {{.Name}}!</h1>
  <p>Thank you for registering with us.</p>
  <p>We're excited to have you on board.</p>
  <p style="color:#999;font-size:12px;margin-top:24px">© {{year}} SubKart. This is an automated message, please do not reply.</p>
</div>
</body>
</html>`

const otpTpl = `<!DOCTYPE html>
<html>
<body style="font-family:sans-serif;background:#f5f5f5;padding:20px">
<div style="max-width:600px;margin:0 auto;background:#fff;border-radius:8px;padding:24px">
  <h1 style="color:#333">Password Reset Request</h1>
  <p>Your OTP code is: <strong style="font-size:20px;letter-spacing:2px">{{.Code}}</strong></p>
  <p>This code will expire in 10 minutes.</p>
  <p style="color:#999;font-size:12px">If you didn't request this, please ignore this email.</p>
</div>
</body>
</html>`

type welcomeData struct {
	Name string
}

type otpData struct {
	Code int
}

func renderTemplate(tpl string, data interface{}) (string, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"year": func() int {
			return time.Now().Year()
		},
	}).Parse(tpl)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
