// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

package mailer

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func confirmationData() map[string]any {
	return map[string]any{
		"app": map[string]any{
			"name": "مجلة",
			"url":  "https://majalla.net",
		},
		"author": map[string]any{
			"name":  "Sara Ahmed",
			"email": "sara@example.com",
		},
		"article": map[string]any{
			"title":       "نحو قيادة فعالة في المؤسسات",
			"description": "وصف تفصيلي للمقال",
			"word_count":  120,
		},
	}
}

/*
TestRender_SubmissionReceived renders the confirmation template and checks
the Arabic RTL body carries the contributor and article fields.
*/
func TestRender_SubmissionReceived(t *testing.T) {
	body, err := render(Message{
		To:      "sara@example.com",
		Subject: SubjectSubmissionReceived,
		Data:    confirmationData(),
	})

	require.NoError(t, err)
	assert.Contains(t, body, `dir="rtl"`)
	assert.Contains(t, body, "Sara Ahmed")
	assert.Contains(t, body, "sara@example.com")
	assert.Contains(t, body, "نحو قيادة فعالة في المؤسسات")
	assert.Contains(t, body, "120")
	assert.Contains(t, body, "https://majalla.net")
}

/*
TestRender_NotesSection shows the additional-notes line only when the
submission carried notes.
*/
func TestRender_NotesSection(t *testing.T) {
	tests := []struct {
		name  string
		notes string
		shown bool
	}{
		{"with_notes", "يرجى مراجعة الفقرة الأخيرة", true},
		{"empty_notes", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := confirmationData()
			data["submission"] = map[string]any{"additional_notes": tt.notes}

			body, err := render(Message{Subject: SubjectSubmissionReceived, Data: data})

			require.NoError(t, err)
			assert.Equal(t, tt.shown, strings.Contains(body, "ملاحظاتك المرفقة"))
		})
	}
}

/*
TestRender_WithoutSubmissionSection tolerates senders that never set the
submission map at all.
*/
func TestRender_WithoutSubmissionSection(t *testing.T) {
	body, err := render(Message{Subject: SubjectSubmissionReceived, Data: confirmationData()})

	require.NoError(t, err)
	assert.NotContains(t, body, "ملاحظاتك المرفقة")
}

/*
TestRender_EscapesHostileValues relies on html/template contextual escaping:
markup smuggled into a field must not survive as markup.
*/
func TestRender_EscapesHostileValues(t *testing.T) {
	data := confirmationData()
	data["article"].(map[string]any)["title"] = `<script>alert(1)</script>`

	body, err := render(Message{Subject: SubjectSubmissionReceived, Data: data})

	require.NoError(t, err)
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

/*
TestRender_UnknownSubject fails fast when no template is registered for the
message's subject.
*/
func TestRender_UnknownSubject(t *testing.T) {
	_, err := render(Message{Subject: "no such subject"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no template registered")
}

/*
TestLogMailer_Send renders without delivering; an unknown subject still
surfaces as an error so misconfigured senders are caught in development.
*/
func TestLogMailer_Send(t *testing.T) {
	logMailer := NewLogMailer(slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := logMailer.Send(context.Background(), Message{
		To:      "sara@example.com",
		Subject: SubjectSubmissionReceived,
		Data:    confirmationData(),
	})
	assert.NoError(t, err)

	err = logMailer.Send(context.Background(), Message{Subject: "no such subject"})
	assert.Error(t, err)
}
