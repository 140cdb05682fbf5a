package quiz

import (
	"math/rand/v2"

	"github.com/quizlab/quizlab-backend/internal/model"
)

// ShuffleOptions returns a copy of q with its options uniformly permuted
// and the correct index remapped so it keeps pointing at the same option
// text. Per-option explanations undergo the identical permutation, so
// explanation[i] still describes option[i].
func ShuffleOptions(q model.Question) model.Question {
	return shuffleOptions(q, rand.Perm(model.OptionCount))
}

func shuffleOptions(q model.Question, perm []int) model.Question {
	shuffled := q
	shuffled.Options = make([]string, model.OptionCount)

	var explanations []string
	if len(q.OptionExplanations) == model.OptionCount {
		explanations = make([]string, model.OptionCount)
	}

	// perm[newIdx] is the original position of the option now at newIdx.
	for newIdx, origIdx := range perm {
		shuffled.Options[newIdx] = q.Options[origIdx]
		if explanations != nil {
			explanations[newIdx] = q.OptionExplanations[origIdx]
		}
		if origIdx == q.CorrectIndex {
			shuffled.CorrectIndex = newIdx
		}
	}
	shuffled.OptionExplanations = explanations
	return shuffled
}

// ShuffleAll applies ShuffleOptions to every question, each with its own
// independent permutation.
func ShuffleAll(questions []model.Question) []model.Question {
	out := make([]model.Question, len(questions))
	for i, q := range questions {
		out[i] = ShuffleOptions(q)
	}
	return out
}
