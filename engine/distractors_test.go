package engine

import (
	"testing"

	"github.com/girify/streetquiz/models"
)

func TestNamePrefix(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Carrer de Mallorca", "Carrer de"},
		{"Avinguda Diagonal", "Avinguda"},
		// The article alternation tries "e" first, so "dels" and "del"
		// both truncate to "de".
		{"Plaça dels Àngels", "Plaça de"},
		{"Passeig de Gràcia", "Passeig de"},
		{"Rambla del Raval", "Rambla de"},
		{"Gran de Gràcia", ""},
		{"Travessera de Dalt", "Travessera de"},
	}
	for _, tt := range tests {
		if got := namePrefix(tt.name); got != tt.want {
			t.Errorf("namePrefix(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSelectDistractors_Deterministic(t *testing.T) {
	pool := testPool(40)
	target := pool[5]

	a := SelectDistractors(pool, target, 20250113)
	b := SelectDistractors(pool, target, 20250113)

	if len(a) != DistractorCount {
		t.Fatalf("expected %d distractors, got %d", DistractorCount, len(a))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("distractors not deterministic at index %d", i)
		}
	}
}

func TestSelectDistractors_ExcludesTarget(t *testing.T) {
	pool := testPool(40)
	target := pool[0]

	for seed := int64(0); seed < 50; seed++ {
		for _, d := range SelectDistractors(pool, target, seed) {
			if d.ID == target.ID {
				t.Fatalf("seed %d: target appeared among its own distractors", seed)
			}
		}
	}
}

func TestSelectDistractors_PrefersSharedPrefix(t *testing.T) {
	// Plenty of same-prefix candidates and no geographic neighbors: all
	// three distractors must share the target's street type.
	pool := testPool(40)
	target := pool[4] // "Carrer de Prova 4"

	for _, d := range SelectDistractors(pool, target, 20250113) {
		if namePrefix(d.Name) != "Carrer de" {
			t.Errorf("distractor %q does not share prefix %q", d.Name, "Carrer de")
		}
	}
}

func TestSelectDistractors_IncludesOneNeighbor(t *testing.T) {
	pool := testPool(40)
	target := pool[4]
	neighbor := models.Street{
		ID:   "near",
		Name: "Avinguda Veïna",
		Tier: 2,
		Lat:  target.Lat + 0.005,
		Lng:  target.Lng - 0.005,
	}
	pool = append(pool, neighbor)

	distractors := SelectDistractors(pool, target, 20250113)

	if len(distractors) != DistractorCount {
		t.Fatalf("expected %d distractors, got %d", DistractorCount, len(distractors))
	}
	if distractors[0].ID != neighbor.ID {
		t.Errorf("expected neighbor %s first, got %s", neighbor.ID, distractors[0].ID)
	}
	for _, d := range distractors[1:] {
		if d.ID == neighbor.ID {
			t.Error("neighbor included more than once")
		}
	}
}

func TestSelectDistractors_FallsBackToFullPool(t *testing.T) {
	// Only one other street shares the target's prefix, so the candidate
	// pool must widen to everything but the target.
	pool := []models.Street{
		{ID: "a", Name: "Carrer de Sants", Lat: 41.0, Lng: 2.0},
		{ID: "b", Name: "Carrer Gran", Lat: 42.0, Lng: 3.0},
		{ID: "c", Name: "Plaça Major", Lat: 43.0, Lng: 4.0},
		{ID: "d", Name: "Rambla Nova", Lat: 44.0, Lng: 5.0},
		{ID: "e", Name: "Gran Via", Lat: 45.0, Lng: 6.0},
	}
	target := pool[0]

	distractors := SelectDistractors(pool, target, 7)
	if len(distractors) != DistractorCount {
		t.Fatalf("expected %d distractors, got %d", DistractorCount, len(distractors))
	}
}

func TestSelectDistractors_TinyPool(t *testing.T) {
	pool := []models.Street{
		{ID: "a", Name: "Carrer A", Lat: 41.0, Lng: 2.0},
		{ID: "b", Name: "Carrer B", Lat: 42.0, Lng: 3.0},
	}

	distractors := SelectDistractors(pool, pool[0], 1)
	if len(distractors) != 1 || distractors[0].ID != "b" {
		t.Errorf("expected the single other street, got %v", distractors)
	}
}

func TestQuestionSeed(t *testing.T) {
	if got := QuestionSeed(20250113, 0); got != 20250113 {
		t.Errorf("question 0 seed = %d, want the day seed", got)
	}
	if got := QuestionSeed(20250113, 3); got != 20250413 {
		t.Errorf("question 3 seed = %d, want 20250413", got)
	}
}

func TestBuildQuestion_OptionIntegrity(t *testing.T) {
	pool := testPool(60)
	daySeed := int64(20250113)

	for idx, target := range SelectDaily(pool, daySeed) {
		q := BuildQuestion(pool, target, idx, daySeed)

		if len(q.Options) != OptionsCount {
			t.Fatalf("question %d: %d options, want %d", idx, len(q.Options), OptionsCount)
		}
		targetSeen := 0
		ids := make(map[string]bool)
		for _, o := range q.Options {
			if ids[o.ID] {
				t.Fatalf("question %d: option %s duplicated", idx, o.ID)
			}
			ids[o.ID] = true
			if o.ID == target.ID {
				targetSeen++
			}
		}
		if targetSeen != 1 {
			t.Fatalf("question %d: target appears %d times, want exactly once", idx, targetSeen)
		}
	}
}

func TestBuildQuestion_Deterministic(t *testing.T) {
	pool := testPool(60)
	target := pool[10]

	a := BuildQuestion(pool, target, 2, 20250113)
	b := BuildQuestion(pool, target, 2, 20250113)

	for i := range a.Options {
		if a.Options[i].ID != b.Options[i].ID {
			t.Fatalf("option order not deterministic at index %d", i)
		}
	}
}
