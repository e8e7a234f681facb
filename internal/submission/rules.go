package submission

import (
	"errors"
	"fmt"

	"github.com/majallahq/majalla/internal/core/article"
	"github.com/majallahq/majalla/internal/core/author"
	"github.com/majallahq/majalla/internal/formconfig"
	"github.com/majallahq/majalla/internal/media"
	"github.com/majallahq/majalla/internal/platform/sanitize"
	"github.com/majallahq/majalla/internal/platform/validate"
	"github.com/majallahq/majalla/pkg/wordcount"
)

// Field names owned by the review step.
const (
	FieldConsent              = "consent"
	FieldPreviousPublications = "previous_publications"
	FieldSocialLinks          = "social_links"
	FieldAdditionalNotes      = "additional_notes"
)

// The wizard's step guards and the pipeline's validation gate run the exact
// same rule functions below, so the two layers cannot drift apart. Messages
// come from the resolved form schema; the validator accumulates every failure
// so callers can surface all of them at once.

// ValidateAuthor applies the author-info rules (wizard step 1).
func ValidateAuthor(v *validate.Validator, in AuthorInput, msgs formconfig.Messages) {
	v.Custom(author.FieldName, runeLenOutside(in.Name, 2, 100), msgs.NameLength)
	v.Custom(author.FieldEmail, !validate.IsEmail(in.Email), msgs.EmailInvalid)
	v.Custom(author.FieldTitle, runeLenOutside(in.Title, 2, 100), msgs.TitleLength)
	v.Custom(author.FieldOrganization, runeLenOutside(in.Organization, 2, 100), msgs.OrganizationLength)
	if in.Phone != "" {
		v.Custom(author.FieldPhone, !validate.IsPhone(in.Phone), msgs.PhoneInvalid)
	}
	if in.LinkedInURL != "" {
		v.Custom(author.FieldLinkedInURL, !validate.IsHTTPURL(in.LinkedInURL), msgs.LinkedInInvalid)
	}
	if in.Bio != "" {
		v.Custom(author.FieldBio, runeLen(in.Bio) > 1000, msgs.BioLength)
	}
}

// ValidateArticle applies the article-info rules (wizard step 2). The word
// count spans every rich-text and quote block; raw markdown content counts
// as a single rich-text body.
func ValidateArticle(v *validate.Validator, in ArticleInput, schema formconfig.Schema, knownCategories []string) {
	msgs := schema.Messages

	v.Custom(article.FieldTitle, runeLenOutside(in.Title, 5, 200), msgs.ArticleTitleLength)
	v.Custom(article.FieldDescription, runeLenOutside(in.Description, 20, 500), msgs.DescriptionLength)
	v.Custom(article.FieldCategories, !categoriesValid(in.Categories, knownCategories), msgs.CategoryRequired)

	text := contentText(in)
	if text == "" {
		v.Custom(article.FieldContent, true, msgs.ContentRequired)
	} else {
		words := wordcount.Count(text)
		v.Custom(article.FieldContent, words < schema.MinWords, fmt.Sprintf(msgs.WordsTooFew, schema.MinWords))
		v.Custom(article.FieldContent, words > schema.MaxWords, fmt.Sprintf(msgs.WordsTooMany, schema.MaxWords))
	}

	if in.Keywords != "" {
		v.Custom(article.FieldKeywords, runeLen(in.Keywords) > 200, msgs.KeywordsLength)
	}

	// Content-security scan runs on the raw values, before sanitization,
	// so a dangerous payload is rejected rather than quietly stripped.
	v.Custom(article.FieldBlocks, containsDangerousContent(in), msgs.ContentUnsafe)
}

// ValidateCover applies the cover-image rules when an upload is present.
func ValidateCover(v *validate.Validator, cover *FileUpload, schema formconfig.Schema) {
	if cover == nil {
		return
	}
	maxBytes := int64(schema.MaxFileSizeMB) << 20
	switch err := media.CheckFile(cover.Name, cover.ContentType, cover.Size, maxBytes, schema.AllowedExtensions); {
	case errors.Is(err, media.ErrFileTooLarge):
		v.Custom(article.FieldCoverImage, true, fmt.Sprintf(schema.Messages.CoverTooLarge, schema.MaxFileSizeMB))
	case errors.Is(err, media.ErrUnsupportedType):
		v.Custom(article.FieldCoverImage, true, schema.Messages.CoverBadType)
	}
}

// ValidateReview applies the review-step rules (wizard step 3).
func ValidateReview(v *validate.Validator, in ReviewInput, websiteURL string, msgs formconfig.Messages) {
	v.Custom(FieldConsent, !in.Consent, msgs.ConsentRequired)
	if websiteURL != "" {
		v.Custom(author.FieldWebsiteURL, !validate.IsHTTPURL(websiteURL), msgs.WebsiteInvalid)
	}
	if in.PreviousPublications != "" {
		v.Custom(FieldPreviousPublications, runeLen(in.PreviousPublications) > 1000, msgs.PreviousPublicationsLong)
	}
	if in.SocialLinks != "" {
		v.Custom(FieldSocialLinks, runeLen(in.SocialLinks) > 500, msgs.SocialLinksLong)
	}
	if in.AdditionalNotes != "" {
		v.Custom(FieldAdditionalNotes, runeLen(in.AdditionalNotes) > 1000, msgs.AdditionalNotesLong)
	}
}

// contentText flattens the submitted content into one string for counting.
func contentText(in ArticleInput) string {
	if len(in.Blocks) > 0 {
		return article.PlainText(in.Blocks)
	}
	return in.Content
}

// containsDangerousContent scans every textual part of the submission for
// script tags, URI-scheme tricks, event handlers and eval calls.
func containsDangerousContent(in ArticleInput) bool {
	if sanitize.Scan(in.Content) {
		return true
	}
	for _, b := range in.Blocks {
		if sanitize.Scan(b.Text) {
			return true
		}
	}
	return false
}

// categoriesValid requires at least one selection, each from the known list.
// An empty known list (category service fully degraded) accepts any
// non-empty selection rather than blocking all submissions.
func categoriesValid(selected, known []string) bool {
	if len(selected) == 0 {
		return false
	}
	if len(known) == 0 {
		return true
	}
	for _, s := range selected {
		found := false
		for _, k := range known {
			if s == k {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func runeLen(s string) int {
	return len([]rune(s))
}

func runeLenOutside(s string, min, max int) bool {
	n := runeLen(s)
	return n < min || n > max
}
