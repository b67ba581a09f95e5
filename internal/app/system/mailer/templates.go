// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// consultationStrings holds the per-locale wording for consultation emails.
type consultationStrings struct {
	Subject string
	Hello   string
	Body    string
	Signoff string
}

var consultationCopy = map[string]consultationStrings{
	"en": {
		Subject: "We received your consultation request",
		Hello:   "Hello, %s!",
		Body:    "Thank you for reaching out. Our specialist will contact you shortly to arrange your consultation.",
		Signoff: "The Vitamove team",
	},
	"ru": {
		Subject: "Мы получили вашу заявку на консультацию",
		Hello:   "Здравствуйте, %s!",
		Body:    "Спасибо за обращение. Наш специалист свяжется с вами в ближайшее время, чтобы договориться о консультации.",
		Signoff: "Команда Vitamove",
	},
	"ka": {
		Subject: "თქვენი კონსულტაციის მოთხოვნა მიღებულია",
		Hello:   "გამარჯობა, %s!",
		Body:    "მადლობა მომართვისთვის. ჩვენი სპეციალისტი მალე დაგიკავშირდებათ კონსულტაციის შესათანხმებლად.",
		Signoff: "Vitamove-ის გუნდი",
	},
}

// ConsultationData holds data for the consultation request emails.
type ConsultationData struct {
	SiteName string
	Name     string
	Email    string
	Phone    string
	Message  string
	Locale   string // en | ru | ka; unknown values fall back to en
}

// BuildConsultationConfirmation creates the localized confirmation sent to
// the requester.
func BuildConsultationConfirmation(data ConsultationData) Email {
	c, ok := consultationCopy[data.Locale]
	if !ok {
		c = consultationCopy["en"]
	}

	var text bytes.Buffer
	fmt.Fprintf(&text, c.Hello+"\n\n", data.Name)
	text.WriteString(c.Body + "\n\n")
	text.WriteString(c.Signoff + "\n")

	return Email{
		To:       data.Email,
		Subject:  c.Subject,
		TextBody: text.String(),
		HTMLBody: renderBranded(data.SiteName, fmt.Sprintf(c.Hello, data.Name), c.Body, c.Signoff),
	}
}

// BuildConsultationNotice creates the plain admin notification with the
// requester's contact details.
func BuildConsultationNotice(adminAddr string, data ConsultationData) Email {
	var text bytes.Buffer
	text.WriteString("New consultation request:\n\n")
	fmt.Fprintf(&text, "Name:    %s\n", data.Name)
	fmt.Fprintf(&text, "Email:   %s\n", data.Email)
	fmt.Fprintf(&text, "Phone:   %s\n", data.Phone)
	fmt.Fprintf(&text, "Locale:  %s\n", data.Locale)
	if data.Message != "" {
		fmt.Fprintf(&text, "\nMessage:\n%s\n", data.Message)
	}

	return Email{
		To:       adminAddr,
		Subject:  fmt.Sprintf("[%s] New consultation request from %s", data.SiteName, data.Name),
		TextBody: text.String(),
	}
}

// LoginCodeData holds data for the admin sign-in code email.
type LoginCodeData struct {
	SiteName  string
	Code      string
	ExpiresIn string // e.g. "10 minutes"
}

// BuildLoginCode creates the admin verification code email.
func BuildLoginCode(to string, data LoginCodeData) Email {
	var text bytes.Buffer
	fmt.Fprintf(&text, "Your %s admin sign-in code is: %s\n\n", data.SiteName, data.Code)
	fmt.Fprintf(&text, "This code expires in %s.\n\n", data.ExpiresIn)
	text.WriteString("If you did not request this code, you can safely ignore this email.\n")

	return Email{
		To:       to,
		Subject:  fmt.Sprintf("Your %s sign-in code", data.SiteName),
		TextBody: text.String(),
		HTMLBody: renderBranded(data.SiteName,
			"Your sign-in code:",
			fmt.Sprintf("<strong style=\"font-size:28px;letter-spacing:6px;font-family:'Courier New',monospace;\">%s</strong>", template.HTMLEscapeString(data.Code)),
			fmt.Sprintf("This code expires in %s.", data.ExpiresIn)),
	}
}

const brandedHTMLTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><meta name="viewport" content="width=device-width, initial-scale=1.0"></head>
<body style="margin:0;padding:0;font-family:-apple-system,BlinkMacSystemFont,'Segoe UI',Roboto,Arial,sans-serif;background-color:#f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color:#f3f4f6;">
    <tr><td align="center" style="padding:40px 20px;">
      <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width:480px;background-color:#ffffff;border-radius:8px;">
        <tr><td style="padding:32px 32px 24px;text-align:center;border-bottom:1px solid #e5e7eb;">
          <h1 style="margin:0;font-size:22px;font-weight:600;color:#0f766e;">{{.SiteName}}</h1>
        </td></tr>
        <tr><td style="padding:32px;">
          <p style="margin:0 0 16px;font-size:16px;color:#374151;">{{.Heading}}</p>
          <p style="margin:0 0 24px;font-size:15px;color:#374151;line-height:1.5;">{{.Body}}</p>
          <p style="margin:0;font-size:13px;color:#9ca3af;">{{.Footer}}</p>
        </td></tr>
      </table>
    </td></tr>
  </table>
</body>
</html>`

var brandedTmpl = template.Must(template.New("branded").Parse(brandedHTMLTemplate))

func renderBranded(siteName, heading, body, footer string) string {
	var buf bytes.Buffer
	_ = brandedTmpl.Execute(&buf, struct {
		SiteName, Heading, Footer string
		Body                      template.HTML
	}{SiteName: siteName, Heading: heading, Footer: footer, Body: template.HTML(body)})
	return buf.String()
}
