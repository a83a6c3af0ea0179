package domain

import "time"

// JournalAnnotation is a user-authored note attached to one trade. Unlike
// trade records these are mutable: the journal UI edits them in place.
type JournalAnnotation struct {
	TradeID       string
	Notes         string
	Tags          []string
	Rating        int // 1-5, 0 = unrated
	ScreenshotURL string
	UpdatedAt     time.Time
}

// AnnotationPatch carries partial updates for an annotation. Nil fields are
// left unchanged by Upsert.
type AnnotationPatch struct {
	Notes         *string
	Tags          []string
	Rating        *int
	ScreenshotURL *string
}
