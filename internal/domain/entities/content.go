// Package entities contains domain entities used across the application.
package entities

// ContentType distinguishes the two kinds of study content.
type ContentType string

const (
	ContentWord    ContentType = "word"
	ContentGrammar ContentType = "grammar"
)

// ContentRef is the tagged key identifying a single piece of content.
// Learning records, daily assignments and wrong-answer entries all refer
// to content through this pair.
type ContentRef struct {
	Type ContentType
	ID   int64
}
