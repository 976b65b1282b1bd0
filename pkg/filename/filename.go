// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package filename turns user-supplied upload names into safe ASCII names.
//
// # Usage
//
// Browsers hand us whatever the artist's file system called the document
// ("Bankbrief Mär 2025 (final).PDF"). The registry stores the name verbatim, so
// it is normalized before being forwarded.
package filename

import (
	"path"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// fallbackStem is used when nothing usable survives normalization.
	fallbackStem = "document"
	// maxStemLength keeps names well inside common storage limits.
	maxStemLength = 80
)

var (
	// nonAllowed matches any sequence of characters outside the safe set.
	nonAllowed = regexp.MustCompile(`[^a-z0-9_-]+`)
	// multiHyphen collapses multiple consecutive hyphens into one.
	multiHyphen = regexp.MustCompile(`-{2,}`)
	// extPattern accepts short alphanumeric extensions only.
	extPattern = regexp.MustCompile(`^\.[a-z0-9]{1,8}$`)
)

// Sanitize converts an arbitrary file name into a safe ASCII file name.
//
// # Transformation Pipeline
//
// 1. Drops any directory component.
// 2. Normalizes to NFD and removes combining marks (Mär → Mar).
// 3. Lowercases and replaces unsafe runs with hyphens.
// 4. Keeps a short alphanumeric extension.
func Sanitize(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	if base == "." || base == "/" {
		base = ""
	}

	stem, ext := base, strings.ToLower(path.Ext(base))
	if extPattern.MatchString(ext) {
		stem = strings.TrimSuffix(base, path.Ext(base))
	} else {
		ext = ""
	}

	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, stem)

	// 2. Lowercase and replace anything unsafe
	result = strings.ToLower(result)
	result = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return '-'
		}
		return r
	}, result)
	result = nonAllowed.ReplaceAllString(result, "-")
	result = multiHyphen.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-_")

	if len(result) > maxStemLength {
		result = strings.Trim(result[:maxStemLength], "-_")
	}
	if result == "" {
		result = fallbackStem
	}

	return result + ext
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
