// Command client is an offline simulator: it builds today's challenge from a
// street file and plays it through the quiz state machine with a scripted
// player, printing each question and the summary. Useful for eyeballing a
// day's selection and scoring without any stores running.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/girify/streetquiz/engine"
	"github.com/girify/streetquiz/logger"
	"github.com/girify/streetquiz/quiz"
	"github.com/girify/streetquiz/scoring"
	"github.com/girify/streetquiz/streets"
)

func main() {
	streetsFile := flag.String("streets", "streets.json", "path to the street dataset")
	date := flag.String("date", "", "challenge date as YYYY-MM-DD (default today)")
	answerAfter := flag.Float64("answer-after", 3.0, "seconds the scripted player takes per answer")
	wrongEvery := flag.Int("wrong-every", 0, "answer every Nth question wrong (0 = always correct)")
	flag.Parse()

	logger.InitDevelopment()

	pool, err := streets.LoadPool(*streetsFile)
	if err != nil {
		logger.Log.Fatalf("load streets: %v", err)
	}

	seed := engine.DailySeed(time.Now())
	if *date != "" {
		day, err := time.ParseInLocation(time.DateOnly, *date, time.Local)
		if err != nil {
			logger.Log.Fatalf("invalid date %q: %v", *date, err)
		}
		seed = engine.SeedForDate(day)
	}

	plan := engine.BuildDailyPlan(pool, seed)
	if len(plan.Questions) == 0 {
		logger.Log.Fatal("no challenge could be built from this pool")
	}
	fmt.Printf("challenge for %s (seed %d), %d questions\n\n", plan.Date, plan.Seed, len(plan.Questions))

	state := quiz.NewState()
	state = quiz.Reduce(state, quiz.SetUsername{Username: "simulator"})

	clock := time.Now()
	state = quiz.Reduce(state, quiz.StartGame{
		Streets:        plan.Targets(),
		InitialOptions: plan.Questions[0].Options,
		Planned:        plan.Questions,
		Now:            clock,
	})

	for i := 0; !state.Finished(); i++ {
		state = quiz.Reduce(state, quiz.UnlockInput{Now: clock})

		target, ok := state.CurrentTarget()
		if !ok {
			break
		}

		answer := target
		if *wrongEvery > 0 && (i+1)%*wrongEvery == 0 {
			for _, option := range state.Options {
				if option.ID != target.ID {
					answer = option
					break
				}
			}
		}

		clock = clock.Add(time.Duration(*answerAfter * float64(time.Second)))
		state = quiz.Reduce(state, quiz.SelectAnswer{Street: answer})
		submitted, ok := quiz.ProcessAnswer(state, answer, clock)
		if !ok {
			logger.Log.Fatalf("question %d rejected the answer", i+1)
		}
		state = quiz.Reduce(state, submitted)

		result := submitted.Result
		fmt.Printf("%2d. %-40s answered %-40s %-7s %4d pts (%s)\n",
			i+1, target.Name, answer.Name, result.Status, result.Points, scoring.Tier(result.Points))

		next := quiz.NextQuestion{}
		if i+1 < len(plan.Questions) {
			next.Options = plan.Questions[i+1].Options
		}
		state = quiz.Reduce(state, next)
	}

	accuracy := 0.0
	if len(state.Results) > 0 {
		accuracy = 100 * float64(state.Correct) / float64(len(state.Results))
	}
	fmt.Printf("\nscore %d/%d, %d/%d correct, %.0f%% accuracy, %d star(s)\n",
		state.Score, quiz.MaxScore, state.Correct, len(state.Results),
		accuracy, scoring.AccuracyStars(accuracy))

	os.Exit(0)
}
