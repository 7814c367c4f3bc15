package entities

import "time"

// Grammar represents a single grammar pattern. Grammar content is loaded
// once from the corpus file and never modified afterwards.
type Grammar struct {
	ID                 int64     `json:"-"`
	Pattern            string    `json:"pattern"` // required
	Meaning            string    `json:"meaning"` // required
	Explanation        string    `json:"explanation"`
	Level              string    `json:"level"`
	ConnectionRule     string    `json:"connection_rule"` // how the pattern attaches to words
	ExampleSentence    string    `json:"example_sentence"`
	ExampleTranslation string    `json:"example_korean"`
	CreatedAt          time.Time `json:"-"`
}

// Ref returns the content reference for this grammar pattern.
func (g *Grammar) Ref() ContentRef {
	return ContentRef{Type: ContentGrammar, ID: g.ID}
}
