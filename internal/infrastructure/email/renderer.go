package email

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/Wetooa/mentara-sub026/internal/domain/notifications"
)

//go:embed templates/*.html templates/*.txt
var templateFS embed.FS

// subjects holds the subject line of every template. Subjects are text templates over the template data.
var subjects = map[string]string{
	notifications.TemplateTherapistApproved:   "Mentara Therapist Application Approved",
	notifications.TemplateTherapistRejected:   "Mentara Therapist Application Update",
	notifications.TemplateEmailVerification:   "Verify your Mentara email address",
	notifications.TemplatePasswordReset:       "Reset your Mentara password",
	notifications.TemplateMeetingConfirmation: "Session booked: {{.Title}}",
	notifications.TemplateMeetingCancelled:    "Session cancelled: {{.Title}}",
	notifications.TemplateMeetingReminder:     "Reminder: {{.Title}} starts soon",
}

// TemplateNames lists the templates the renderer knows, in a stable order
var TemplateNames = []string{
	notifications.TemplateTherapistApproved,
	notifications.TemplateTherapistRejected,
	notifications.TemplateEmailVerification,
	notifications.TemplatePasswordReset,
	notifications.TemplateMeetingConfirmation,
	notifications.TemplateMeetingCancelled,
	notifications.TemplateMeetingReminder,
}

// view is what the page templates execute against
type view struct {
	Subject    string
	SupportURL string
	Data       interface{}
}

type compiled struct {
	subject *texttemplate.Template
	html    *htmltemplate.Template
	text    *texttemplate.Template
}

// renderer renders the embedded HTML and plain text template pairs
type renderer struct {
	supportURL string
	templates  map[string]*compiled
}

// NewRenderer parses every embedded template. supportURL is linked from every footer.
func NewRenderer(supportURL string) (notifications.TemplateRenderer, error) {
	r := &renderer{
		supportURL: supportURL,
		templates:  make(map[string]*compiled, len(subjects)),
	}

	for _, name := range TemplateNames {
		subject, err := texttemplate.New(name + ".subject").Option("missingkey=zero").Parse(subjects[name])
		if err != nil {
			return nil, fmt.Errorf("failed to parse subject of %s: %w", name, err)
		}
		html, err := htmltemplate.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse html template %s: %w", name, err)
		}
		text, err := texttemplate.ParseFS(templateFS, "templates/"+name+".txt")
		if err != nil {
			return nil, fmt.Errorf("failed to parse text template %s: %w", name, err)
		}
		r.templates[name] = &compiled{subject: subject, html: html, text: text}
	}
	return r, nil
}

// Render executes the template pair name with data
func (r *renderer) Render(name string, data interface{}) (*notifications.Rendered, error) {
	tmpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("unknown email template: %s", name)
	}

	var subject bytes.Buffer
	if err := tmpl.subject.Execute(&subject, data); err != nil {
		return nil, fmt.Errorf("failed to render subject of %s: %w", name, err)
	}

	v := view{
		Subject:    strings.TrimSpace(subject.String()),
		SupportURL: r.supportURL,
		Data:       data,
	}

	var html bytes.Buffer
	if err := tmpl.html.ExecuteTemplate(&html, name+".html", v); err != nil {
		return nil, fmt.Errorf("failed to render html of %s: %w", name, err)
	}
	var text bytes.Buffer
	if err := tmpl.text.ExecuteTemplate(&text, name+".txt", v); err != nil {
		return nil, fmt.Errorf("failed to render text of %s: %w", name, err)
	}

	return &notifications.Rendered{
		Subject: v.Subject,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
