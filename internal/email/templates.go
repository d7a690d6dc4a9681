package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
	"time"
)

//go:embed templates/*
var templateFS embed.FS

const (
	TemplateVerify = "verify_email"
	TemplateReset  = "reset_password"
)

// LinkVars son las variables de los templates con link.
type LinkVars struct {
	Name string
	Link string
	TTL  string
}

type pair struct {
	html *htmltpl.Template
	text *texttpl.Template
}

// Templates renderiza los correos embebidos en el binario.
type Templates struct {
	byName map[string]pair
}

func LoadTemplates() (*Templates, error) {
	t := &Templates{byName: map[string]pair{}}
	for _, name := range []string{TemplateVerify, TemplateReset} {
		h, err := htmltpl.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("email: parse %s.html: %w", name, err)
		}
		x, err := texttpl.ParseFS(templateFS, "templates/"+name+".txt")
		if err != nil {
			return nil, fmt.Errorf("email: parse %s.txt: %w", name, err)
		}
		t.byName[name] = pair{html: h, text: x}
	}
	return t, nil
}

func (t *Templates) Render(name string, vars any) (html, text string, err error) {
	p, ok := t.byName[name]
	if !ok {
		return "", "", fmt.Errorf("email: unknown template %q", name)
	}
	var hb, tb bytes.Buffer
	if err := p.html.Execute(&hb, vars); err != nil {
		return "", "", err
	}
	if err := p.text.Execute(&tb, vars); err != nil {
		return "", "", err
	}
	return hb.String(), tb.String(), nil
}

// Mailer arma y envía los correos de los flows de auth.
type Mailer struct {
	Sender    Sender
	Templates *Templates
}

func NewMailer(s Sender) (*Mailer, error) {
	tpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	return &Mailer{Sender: s, Templates: tpl}, nil
}

func (m *Mailer) SendVerify(ctx context.Context, to, name, link string, ttl time.Duration) error {
	return m.send(ctx, to, "Verificá tu email", TemplateVerify, LinkVars{Name: name, Link: link, TTL: humanTTL(ttl)})
}

func (m *Mailer) SendReset(ctx context.Context, to, name, link string, ttl time.Duration) error {
	return m.send(ctx, to, "Restablecer contraseña", TemplateReset, LinkVars{Name: name, Link: link, TTL: humanTTL(ttl)})
}

func (m *Mailer) send(ctx context.Context, to, subject, tpl string, vars LinkVars) error {
	html, text, err := m.Templates.Render(tpl, vars)
	if err != nil {
		return err
	}
	return m.Sender.Send(ctx, Message{To: to, Subject: subject, HTML: html, Text: text})
}

func humanTTL(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return fmt.Sprintf("%d horas", int(d/time.Hour))
	case d >= time.Minute:
		return fmt.Sprintf("%d minutos", int(d/time.Minute))
	default:
		return d.String()
	}
}
