package mailer_test

import (
	"strings"
	"testing"

	"github.com/vitamove/vitamove-server/internal/app/system/mailer"
)

func TestBuildConsultationConfirmation_Localized(t *testing.T) {
	cases := []struct {
		locale      string
		wantSubject string
		wantInBody  string
	}{
		{"en", "We received your consultation request", "Hello, Anna!"},
		{"ru", "Мы получили вашу заявку на консультацию", "Здравствуйте, Anna!"},
		{"ka", "თქვენი კონსულტაციის მოთხოვნა მიღებულია", "გამარჯობა, Anna!"},
		{"de", "We received your consultation request", "Hello, Anna!"}, // unknown falls back to en
	}
	for _, tc := range cases {
		t.Run(tc.locale, func(t *testing.T) {
			msg := mailer.BuildConsultationConfirmation(mailer.ConsultationData{
				SiteName: "VitaMove",
				Name:     "Anna",
				Email:    "anna@example.com",
				Locale:   tc.locale,
			})
			if msg.To != "anna@example.com" {
				t.Errorf("To: got %q", msg.To)
			}
			if msg.Subject != tc.wantSubject {
				t.Errorf("Subject: got %q, want %q", msg.Subject, tc.wantSubject)
			}
			if !strings.Contains(msg.TextBody, tc.wantInBody) {
				t.Errorf("TextBody missing %q:\n%s", tc.wantInBody, msg.TextBody)
			}
			if msg.HTMLBody == "" {
				t.Error("HTMLBody should not be empty")
			}
		})
	}
}

func TestBuildConsultationNotice(t *testing.T) {
	msg := mailer.BuildConsultationNotice("admin@vitamove.ge", mailer.ConsultationData{
		SiteName: "VitaMove",
		Name:     "Anna",
		Email:    "anna@example.com",
		Phone:    "+995599123456",
		Message:  "Knee pain after running",
		Locale:   "en",
	})
	if msg.To != "admin@vitamove.ge" {
		t.Errorf("To: got %q", msg.To)
	}
	if !strings.Contains(msg.Subject, "Anna") {
		t.Errorf("Subject should carry the requester name: %q", msg.Subject)
	}
	for _, want := range []string{"anna@example.com", "+995599123456", "Knee pain after running"} {
		if !strings.Contains(msg.TextBody, want) {
			t.Errorf("TextBody missing %q", want)
		}
	}
}

func TestBuildLoginCode(t *testing.T) {
	msg := mailer.BuildLoginCode("admin@vitamove.ge", mailer.LoginCodeData{
		SiteName:  "VitaMove",
		Code:      "482913",
		ExpiresIn: "10 minutes",
	})
	if msg.To != "admin@vitamove.ge" {
		t.Errorf("To: got %q", msg.To)
	}
	if !strings.Contains(msg.TextBody, "482913") {
		t.Error("TextBody should carry the code")
	}
	if !strings.Contains(msg.TextBody, "10 minutes") {
		t.Error("TextBody should carry the expiry")
	}
	if !strings.Contains(msg.HTMLBody, "482913") {
		t.Error("HTMLBody should carry the code")
	}
}
