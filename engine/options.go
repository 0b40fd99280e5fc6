package engine

import (
	"github.com/girify/streetquiz/models"
)

const (
	// OptionsCount is the number of answer options shown per question.
	OptionsCount = 4

	questionSeedMultiplier = 100
	shuffleSeedOffset      = 50
)

// QuestionSeed derives the seed for one question from the day seed. Distractor
// selection uses it directly; option ordering adds shuffleSeedOffset on top so
// the two draws are not correlated.
func QuestionSeed(daySeed int64, questionIndex int) int64 {
	return daySeed + int64(questionIndex)*questionSeedMultiplier
}

// ShuffleOptions deterministically orders a target plus its distractors for
// presentation.
func ShuffleOptions(options []models.Street, seed int64) []models.Street {
	return SeededShuffle(options, seed)
}

// BuildQuestion generates the full question for a target: three distractors
// from the pool and the presentation order of all four options.
func BuildQuestion(pool []models.Street, target models.Street, questionIndex int, daySeed int64) models.QuizQuestion {
	questionSeed := QuestionSeed(daySeed, questionIndex)
	distractors := SelectDistractors(pool, target, questionSeed)

	options := make([]models.Street, 0, OptionsCount)
	options = append(options, target)
	options = append(options, distractors...)

	return models.QuizQuestion{
		Target:  target,
		Options: ShuffleOptions(options, questionSeed+shuffleSeedOffset),
	}
}
