package email

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"
)

type EmailService struct {
	apiKey    string
	from      string
	templates *template.Template
}

type EmailData struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Html    string `json:"html"`
}

type WelcomeEmailData struct {
	Name string
}

type PasswordResetData struct {
	Name     string
	ResetURL string
}

type LeadNotificationData struct {
	ListingTitle string
	LeadName     string
	LeadEmail    string
	LeadPhone    string
	LeadMessage  string
}

func NewEmailService(apiKey, from string) (*EmailService, error) {
	tmpl, err := template.New("emails").Parse(emailTemplates)
	if err != nil {
		return nil, fmt.Errorf("could not parse email templates: %v", err)
	}

	return &EmailService{
		apiKey:    apiKey,
		from:      from,
		templates: tmpl,
	}, nil
}

func (s *EmailService) render(name string, data interface{}) (string, error) {
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *EmailService) send(to, subject, html string) error {
	payload, err := json.Marshal(EmailData{
		From:    s.from,
		To:      to,
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, "https://api.resend.com/emails", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("email API returned %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

func (s *EmailService) SendWelcomeEmail(to string, data WelcomeEmailData) error {
	html, err := s.render("welcome", data)
	if err != nil {
		return err
	}
	return s.send(to, "Bem-vindo à Imovia", html)
}

func (s *EmailService) SendPasswordReset(to string, data PasswordResetData) error {
	html, err := s.render("password_reset", data)
	if err != nil {
		return err
	}
	return s.send(to, "Redefinição de senha", html)
}

func (s *EmailService) SendLeadNotification(to string, data LeadNotificationData) error {
	html, err := s.render("lead_notification", data)
	if err != nil {
		return err
	}
	return s.send(to, fmt.Sprintf("Novo contato: %s", data.ListingTitle), html)
}
