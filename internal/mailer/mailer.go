// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

/*
Package mailer sends templated transactional email.

Templates are registered per subject line and rendered with html/template.
Delivery uses SMTP when a host is configured; without one the package
degrades to a log-only mailer so development and tests never need a relay.
Email is always best-effort for the submission pipeline: a failed send is
logged and counted, never surfaced to the contributor.
*/
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

// Message is a pending email. Data feeds the template registered under
// Subject.
type Message struct {
	To      string
	ToName  string
	Subject string
	Data    map[string]any
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, message Message) error
}

// registry maps subject lines to their body templates.
var registry = map[string]*template.Template{}

func register(subject, body string) {
	registry[subject] = template.Must(template.New(subject).Parse(body))
}

// render produces the HTML body for a message, or an error when no template
// is registered for its subject.
func render(message Message) (string, error) {
	tmpl, ok := registry[message.Subject]
	if !ok {
		return "", fmt.Errorf("mailer: no template registered for subject %q", message.Subject)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, message.Data); err != nil {
		return "", fmt.Errorf("mailer: render %q: %w", message.Subject, err)
	}
	return buf.String(), nil
}
