// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package profile

// # Document Categories

// Category identifies one of the four supporting-document slots of a profile.
type Category string

const (
	CategoryPassportPhoto          Category = "passportPhoto"
	CategoryIDDocument             Category = "idDocument"
	CategoryBankConfirmationLetter Category = "bankConfirmationLetter"
	CategoryProofOfPayment         Category = "proofOfPayment"
)

// CategoryInfo describes how a category is presented and what it accepts.
type CategoryInfo struct {
	Category Category `json:"category"`

	// Title is the default display title of a staged document.
	Title string `json:"title"`

	// Accept is the file-type hint handed to the browser's file picker.
	Accept string `json:"accept"`
}

// categories is the fixed, ordered table of document slots.
var categories = []CategoryInfo{
	{Category: CategoryPassportPhoto, Title: "Passport Photo", Accept: "image/*"},
	{Category: CategoryIDDocument, Title: "ID Document", Accept: "application/pdf"},
	{Category: CategoryBankConfirmationLetter, Title: "Bank Confirmation Letter", Accept: "application/pdf"},
	{Category: CategoryProofOfPayment, Title: "Proof of Payment", Accept: "application/pdf"},
}

// Categories returns the document slots in display order.
func Categories() []CategoryInfo {
	out := make([]CategoryInfo, len(categories))
	copy(out, categories)
	return out
}

// InfoOf returns the table entry of category.
func InfoOf(category Category) (CategoryInfo, bool) {
	for _, info := range categories {
		if info.Category == category {
			return info, true
		}
	}
	return CategoryInfo{}, false
}

// ParseCategory validates a category name coming from a URL or payload.
func ParseCategory(name string) (Category, bool) {
	info, ok := InfoOf(Category(name))
	return info.Category, ok
}

// # Uploaded Documents

// Document is a supporting document already held by the registry.
type Document struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Bundle is the registry's combined profile and documents payload.
//
// Profile is nil until the artist has created one. Documents holds only the
// categories that have been uploaded.
type Bundle struct {
	Profile   *Record               `json:"profile,omitempty"`
	Documents map[Category]Document `json:"documents"`
}

// Document returns the uploaded document of category, if any.
func (b *Bundle) Document(category Category) (Document, bool) {
	if b == nil || b.Documents == nil {
		return Document{}, false
	}
	document, ok := b.Documents[category]
	return document, ok
}

// HasDocuments reports whether at least one category has been uploaded.
func (b *Bundle) HasDocuments() bool {
	return b != nil && len(b.Documents) > 0
}

// # Staged Files

// File is a document the artist picked but has not uploaded yet.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Size returns the file length in bytes.
func (f *File) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Data))
}
