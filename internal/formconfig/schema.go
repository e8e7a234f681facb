// Copyright (c) 2026 Majalla. All rights reserved.
// Author: eng@majalla.net

/*
Package formconfig resolves the submission-form configuration.

The form's tunable limits (word count, upload size, allowed extensions) and
every Arabic-facing validation message live in one typed schema stored as a
JSONB payload under the key "submission-form". Resolution happens once per
consumer with a single built-in fallback table, so no caller carries its own
scattered fallback strings.
*/
package formconfig

// Schema is the complete submission-form configuration.
type Schema struct {
	MinWords          int      `json:"min_words"`
	MaxWords          int      `json:"max_words"`
	MaxFileSizeMB     int      `json:"max_file_size_mb"`
	AllowedExtensions []string `json:"allowed_extensions"`
	Messages          Messages `json:"messages"`
}

// Messages holds every localized validation string the form can emit.
// Strings with a %d verb are templates filled with the relevant limit.
type Messages struct {
	NameLength         string `json:"name_length"`
	EmailInvalid       string `json:"email_invalid"`
	TitleLength        string `json:"title_length"`
	OrganizationLength string `json:"organization_length"`
	PhoneInvalid       string `json:"phone_invalid"`
	LinkedInInvalid    string `json:"linkedin_invalid"`
	BioLength          string `json:"bio_length"`

	ArticleTitleLength string `json:"article_title_length"`
	DescriptionLength  string `json:"description_length"`
	CategoryRequired   string `json:"category_required"`
	ContentRequired    string `json:"content_required"`
	WordsTooFew        string `json:"words_too_few"`
	WordsTooMany       string `json:"words_too_many"`
	KeywordsLength     string `json:"keywords_length"`

	WebsiteInvalid           string `json:"website_invalid"`
	PreviousPublicationsLong string `json:"previous_publications_long"`
	SocialLinksLong          string `json:"social_links_long"`
	AdditionalNotesLong      string `json:"additional_notes_long"`

	CoverTooLarge   string `json:"cover_too_large"`
	CoverBadType    string `json:"cover_bad_type"`
	ContentUnsafe   string `json:"content_unsafe"`
	ConsentRequired string `json:"consent_required"`
}

// Fallback is the built-in schema used when the stored configuration is
// missing or unreadable. It is the single source of default Arabic strings.
func Fallback() Schema {
	return Schema{
		MinWords:          50,
		MaxWords:          5000,
		MaxFileSizeMB:     5,
		AllowedExtensions: []string{"jpg", "jpeg", "png", "webp"},
		Messages: Messages{
			NameLength:         "الاسم يجب أن يكون بين 2 و 100 حرف",
			EmailInvalid:       "البريد الإلكتروني غير صالح",
			TitleLength:        "المسمى الوظيفي يجب أن يكون بين 2 و 100 حرف",
			OrganizationLength: "جهة العمل يجب أن تكون بين 2 و 100 حرف",
			PhoneInvalid:       "رقم الهاتف غير صالح",
			LinkedInInvalid:    "رابط لينكدإن غير صالح",
			BioLength:          "النبذة التعريفية يجب ألا تتجاوز 1000 حرف",

			ArticleTitleLength: "عنوان المقال يجب أن يكون بين 5 و 200 حرف",
			DescriptionLength:  "وصف المقال يجب أن يكون بين 20 و 500 حرف",
			CategoryRequired:   "يرجى اختيار تصنيف واحد على الأقل",
			ContentRequired:    "محتوى المقال مطلوب",
			WordsTooFew:        "محتوى المقال يجب ألا يقل عن %d كلمة",
			WordsTooMany:       "محتوى المقال يجب ألا يتجاوز %d كلمة",
			KeywordsLength:     "الكلمات المفتاحية يجب ألا تتجاوز 200 حرف",

			WebsiteInvalid:           "رابط الموقع الإلكتروني غير صالح",
			PreviousPublicationsLong: "قائمة المنشورات السابقة يجب ألا تتجاوز 1000 حرف",
			SocialLinksLong:          "روابط التواصل الاجتماعي يجب ألا تتجاوز 500 حرف",
			AdditionalNotesLong:      "الملاحظات الإضافية يجب ألا تتجاوز 1000 حرف",

			CoverTooLarge:   "حجم الصورة يجب ألا يتجاوز %d ميجابايت",
			CoverBadType:    "نوع الصورة غير مدعوم، الأنواع المسموحة: jpg, jpeg, png, webp",
			ContentUnsafe:   "المحتوى يتضمن عناصر غير مسموح بها",
			ConsentRequired: "يرجى الموافقة على شروط النشر",
		},
	}
}

// merge fills zero-valued fields of the stored schema from the fallback, so
// a partial payload never blanks a message or a limit.
func merge(stored, fallback Schema) Schema {
	if stored.MinWords <= 0 {
		stored.MinWords = fallback.MinWords
	}
	if stored.MaxWords <= 0 {
		stored.MaxWords = fallback.MaxWords
	}
	if stored.MaxFileSizeMB <= 0 {
		stored.MaxFileSizeMB = fallback.MaxFileSizeMB
	}
	if len(stored.AllowedExtensions) == 0 {
		stored.AllowedExtensions = fallback.AllowedExtensions
	}
	stored.Messages = mergeMessages(stored.Messages, fallback.Messages)
	return stored
}

func mergeMessages(stored, fallback Messages) Messages {
	pick := func(s, f string) string {
		if s == "" {
			return f
		}
		return s
	}
	return Messages{
		NameLength:         pick(stored.NameLength, fallback.NameLength),
		EmailInvalid:       pick(stored.EmailInvalid, fallback.EmailInvalid),
		TitleLength:        pick(stored.TitleLength, fallback.TitleLength),
		OrganizationLength: pick(stored.OrganizationLength, fallback.OrganizationLength),
		PhoneInvalid:       pick(stored.PhoneInvalid, fallback.PhoneInvalid),
		LinkedInInvalid:    pick(stored.LinkedInInvalid, fallback.LinkedInInvalid),
		BioLength:          pick(stored.BioLength, fallback.BioLength),
		ArticleTitleLength: pick(stored.ArticleTitleLength, fallback.ArticleTitleLength),
		DescriptionLength:  pick(stored.DescriptionLength, fallback.DescriptionLength),
		CategoryRequired:   pick(stored.CategoryRequired, fallback.CategoryRequired),
		ContentRequired:    pick(stored.ContentRequired, fallback.ContentRequired),
		WordsTooFew:        pick(stored.WordsTooFew, fallback.WordsTooFew),
		WordsTooMany:       pick(stored.WordsTooMany, fallback.WordsTooMany),
		KeywordsLength:     pick(stored.KeywordsLength, fallback.KeywordsLength),

		WebsiteInvalid:           pick(stored.WebsiteInvalid, fallback.WebsiteInvalid),
		PreviousPublicationsLong: pick(stored.PreviousPublicationsLong, fallback.PreviousPublicationsLong),
		SocialLinksLong:          pick(stored.SocialLinksLong, fallback.SocialLinksLong),
		AdditionalNotesLong:      pick(stored.AdditionalNotesLong, fallback.AdditionalNotesLong),

		CoverTooLarge:   pick(stored.CoverTooLarge, fallback.CoverTooLarge),
		CoverBadType:    pick(stored.CoverBadType, fallback.CoverBadType),
		ContentUnsafe:   pick(stored.ContentUnsafe, fallback.ContentUnsafe),
		ConsentRequired: pick(stored.ConsentRequired, fallback.ConsentRequired),
	}
}
