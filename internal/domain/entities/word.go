package entities

import "time"

// Word represents a single vocabulary item.
// JSON tags follow the corpus file format; the same shape is used for
// bulk import and export.
type Word struct {
	ID                 int64     `json:"-"`
	Japanese           string    `json:"japanese"`         // display form, required
	Reading            string    `json:"hiragana"`         // kana reading
	KanjiForm          string    `json:"kanji"`            // kanji spelling, may be empty
	Korean             string    `json:"korean"`           // meaning, required
	Level              string    `json:"level"`            // JLPT level N5..N1
	Category           string    `json:"category"`         // free-text tag
	ExampleSentence    string    `json:"example_sentence"` // Japanese example
	ExampleTranslation string    `json:"example_korean"`   // Korean translation of the example
	MemoTip            string    `json:"memo_tip"`         // mnemonic hint
	IsUserAdded        bool      `json:"-"`
	CreatedAt          time.Time `json:"-"`
}

// Ref returns the content reference for this word.
func (w *Word) Ref() ContentRef {
	return ContentRef{Type: ContentWord, ID: w.ID}
}
