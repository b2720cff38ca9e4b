package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/philly/folio/internal/platform/textutil"
)

// Slug validation errors
var (
	ErrInvalidSlugFormat = errors.New("slug must be lowercase letters and numbers separated by single hyphens")
	ErrSlugEmpty         = errors.New("slug cannot be empty")
	ErrSlugTooLong       = errors.New("slug is too long")
)

// Compile regex patterns once at package level for performance
var (
	slugValidationRegex = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	slugStripRegex      = regexp.MustCompile(`[^\w` + textutil.SpaceClass + `-]`)
	slugSpaceRegex      = regexp.MustCompile(`[` + textutil.SpaceClass + `]+`)
	slugCollapseRegex   = regexp.MustCompile(`-+`)

	// Term slugs also keep hiragana, katakana and the CJK unified ideographs
	termSlugStripRegex = regexp.MustCompile(`[^\w` + textutil.SpaceClass +
		`\x{3041}-\x{3093}\x{30A1}-\x{30F3}\x{4E00}-\x{9FA5}-]`)
)

// NormalizeSlug converts a post title into its URL identifier.
//
// The steps run in a fixed order: lowercase, drop everything that is not an
// ASCII word character, whitespace or hyphen, trim whitespace, turn whitespace
// runs into one hyphen, then collapse hyphen runs. Hyphens left at either end
// by the strip step are kept ("日-本" becomes "-"); slugs already persisted
// were produced this way.
func NormalizeSlug(title string) string {
	slug := strings.ToLower(title)
	slug = slugStripRegex.ReplaceAllString(slug, "")
	slug = textutil.TrimSpace(slug)
	slug = slugSpaceRegex.ReplaceAllString(slug, "-")
	return slugCollapseRegex.ReplaceAllString(slug, "-")
}

// NormalizeTermSlug converts a tag or category name into its URL identifier.
// It runs the NormalizeSlug steps but also keeps Japanese kana and kanji, so
// "Go言語" becomes "go言語".
func NormalizeTermSlug(name string) string {
	slug := strings.ToLower(name)
	slug = termSlugStripRegex.ReplaceAllString(slug, "")
	slug = textutil.TrimSpace(slug)
	slug = slugSpaceRegex.ReplaceAllString(slug, "-")
	return slugCollapseRegex.ReplaceAllString(slug, "-")
}

// IsValidSlug reports whether slug is lowercase alphanumeric words joined by
// single hyphens.
func IsValidSlug(slug string) bool {
	return slugValidationRegex.MatchString(slug)
}

// ValidateSlugFormat checks if a slug has valid format
func ValidateSlugFormat(slug string, maxLength int) error {
	if slug == "" {
		return ErrSlugEmpty
	}

	if len(slug) > maxLength {
		return ErrSlugTooLong
	}

	if !IsValidSlug(slug) {
		return ErrInvalidSlugFormat
	}

	return nil
}

// MakeSlugUnique appends a numeric suffix to make a slug unique
func MakeSlugUnique(baseSlug string, suffix int) string {
	if suffix <= 0 {
		return baseSlug
	}

	return fmt.Sprintf("%s-%d", baseSlug, suffix)
}

// MakeSlugUniqueWithMaxLength appends a suffix and ensures the result doesn't exceed maxLength
func MakeSlugUniqueWithMaxLength(baseSlug string, suffix int, maxLength int) string {
	if suffix <= 0 {
		if len(baseSlug) > maxLength {
			return baseSlug[:maxLength]
		}
		return baseSlug
	}

	suffixStr := "-" + strconv.Itoa(suffix)

	// Truncate the base so base+suffix fits
	if len(baseSlug)+len(suffixStr) > maxLength {
		maxBaseLength := maxLength - len(suffixStr)
		if maxBaseLength > 0 {
			baseSlug = baseSlug[:maxBaseLength]
			baseSlug = strings.TrimRight(baseSlug, "-")
		}
	}

	return baseSlug + suffixStr
}
