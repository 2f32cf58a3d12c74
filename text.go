package docindex

import "strings"

// SectionNumbering holds the characters stripped from the front of titles
// and headings to remove auto-generated numbering such as "3.2 " or "- ".
// The set includes NO-BREAK SPACE and EN DASH.
const SectionNumbering = "-.0123456789 \u00a0\u2013"

// chapterPrefix is the literal label some generators put before chapter numbers.
const chapterPrefix = "Chapter"

// legalNoticesSuffix is the boilerplate footer stripped from body text.
const legalNoticesSuffix = " Legal notices"

// releaseParts is the number of dot-separated components in a standard release.
const releaseParts = 4

// NormalizeWhitespace collapses every run of whitespace, including
// non-breaking spaces, to a single ASCII space and trims both ends.
func NormalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TrimSectionNumbering removes leading section-numbering characters.
func TrimSectionNumbering(s string) string {
	return strings.TrimLeft(s, SectionNumbering)
}

// CleanTitle normalizes whitespace, removes a leading "Chapter" label and
// then any residual section numbering.
// "Chapter 3.2  Configuring Security" becomes "Configuring Security".
func CleanTitle(s string) string {
	s = NormalizeWhitespace(s)
	s = strings.TrimPrefix(s, chapterPrefix)
	return TrimSectionNumbering(s)
}

// TrimLegalNotices removes the trailing " Legal notices" footer, if present.
func TrimLegalNotices(s string) string {
	return strings.TrimSuffix(s, legalNoticesSuffix)
}

// StandardizeRelease pads a release number with "0" components until it has
// four of them: "1.2" becomes "1.2.0.0". Releases that already have four or
// more components are returned unchanged. An empty release stays empty.
func StandardizeRelease(release string) string {
	if release == "" {
		return ""
	}
	parts := strings.Split(release, ".")
	for len(parts) < releaseParts {
		parts = append(parts, "0")
	}
	return strings.Join(parts, ".")
}
