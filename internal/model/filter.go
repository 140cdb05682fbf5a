package model

// QuestionFilter narrows question retrieval. Zero values mean "no
// constraint"; Shuffle asks the store for an arbitrary-order subset.
type QuestionFilter struct {
	Genre      string
	Difficulty string
	Limit      int
	Shuffle    bool
}
