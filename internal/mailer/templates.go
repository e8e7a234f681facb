// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

package mailer

// SubjectSubmissionReceived is the contributor confirmation sent after a
// submission produces a draft.
const SubjectSubmissionReceived = "تم استلام مقالك - مجلة"

func init() {
	register(SubjectSubmissionReceived, submissionReceivedBody)
}

const submissionReceivedBody = `<!DOCTYPE html>
<html dir="rtl" lang="ar">
<body style="font-family: 'Segoe UI', Tahoma, sans-serif; direction: rtl; text-align: right;">
  <h2>مرحباً {{.author.name}}،</h2>
  <p>شكراً لمساهمتك في {{.app.name}}. لقد استلمنا مقالك بنجاح:</p>
  <blockquote>
    <strong>{{.article.title}}</strong><br>
    {{.article.description}}
  </blockquote>
  <p>عدد الكلمات: {{.article.word_count}}</p>
  {{with .submission}}{{if .additional_notes}}<p>ملاحظاتك المرفقة: {{.additional_notes}}</p>{{end}}{{end}}
  <p>سيقوم فريق التحرير بمراجعة المقال والتواصل معك عبر هذا البريد
  ({{.author.email}}) خلال أيام العمل القادمة.</p>
  <p>مع خالص التحية،<br>فريق تحرير {{.app.name}}</p>
  <hr>
  <p style="font-size: 12px; color: #888;">
    هذه رسالة آلية من {{.app.url}}، يرجى عدم الرد عليها مباشرة.
  </p>
</body>
</html>`
