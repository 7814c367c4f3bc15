package entities

import "time"

// WrongAnswer is one entry of the wrong-answer ledger, keyed by
// (question type, content reference). Repeat misses increment the counter
// and un-resolve the entry.
type WrongAnswer struct {
	ID           int64
	QuestionType string // jp_to_kr / kr_to_jp / general
	Content      ContentRef
	WrongCount   int
	LastWrongAt  time.Time
	Resolved     bool
}

// WrongWord is a ledger entry joined with the current word fields,
// as shown in the review notebook.
type WrongWord struct {
	WrongAnswer
	Japanese string
	Reading  string
	Korean   string
	MemoTip  string
}

// WrongGrammar is a ledger entry joined with the current grammar fields.
type WrongGrammar struct {
	WrongAnswer
	Pattern     string
	Meaning     string
	Explanation string
}

// WrongAnswerSet groups unresolved entries by content kind, each list
// ordered worst-first (wrong count, then recency).
type WrongAnswerSet struct {
	Words    []WrongWord
	Grammars []WrongGrammar
}
