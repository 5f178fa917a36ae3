package odds

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/nao1215/threadodds/internal/keyword"
)

func counts(pairs ...any) []keyword.Count {
	var out []keyword.Count
	for i := 0; i < len(pairs); i += 2 {
		name := pairs[i].(string)
		out = append(out, keyword.Count{
			Group: keyword.Group{DisplayName: name, Synonyms: []string{name}},
			Posts: pairs[i+1].(int),
		})
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculate(t *testing.T) {
	t.Parallel()

	t.Run("team example", func(t *testing.T) {
		t.Parallel()

		entries := Calculate(counts("Aチーム", 5, "Bチーム", 2, "Cチーム", 1, "Dチーム", 0), 0.8)

		a, ok := entries[0].Odds.Value()
		if !ok || !almostEqual(a, 1.28) {
			t.Errorf("expected Aチーム odds 1.28, got %v (defined=%v)", a, ok)
		}
		if entries[0].OddsDisplay() != "1.28" {
			t.Errorf("expected display 1.28, got %q", entries[0].OddsDisplay())
		}
		if entries[0].ProbabilityDisplay() != "62.5%" {
			t.Errorf("expected 62.5%%, got %q", entries[0].ProbabilityDisplay())
		}
		if entries[1].OddsDisplay() != "3.20" || entries[2].OddsDisplay() != "6.40" {
			t.Errorf("unexpected odds: %q %q", entries[1].OddsDisplay(), entries[2].OddsDisplay())
		}

		d := entries[3]
		if d.Odds.IsDefined() {
			t.Error("expected Dチーム odds to be undefined")
		}
		if d.Probability != 0 {
			t.Errorf("expected probability 0, got %v", d.Probability)
		}
		if d.OddsDisplay() != Placeholder || d.ProbabilityDisplay() != "0.0%" {
			t.Errorf("unexpected display: %q %q", d.OddsDisplay(), d.ProbabilityDisplay())
		}
	})

	t.Run("odds never below one", func(t *testing.T) {
		t.Parallel()

		entries := Calculate(counts("fav", 9, "other", 1), 0.5)
		v, _ := entries[0].Odds.Value()
		if v != MinOdds {
			t.Errorf("expected floor %v, got %v", MinOdds, v)
		}
	})

	t.Run("probabilities sum to one", func(t *testing.T) {
		t.Parallel()

		entries := Calculate(counts("a", 3, "b", 7, "c", 0, "d", 11), 0.75)
		sum := 0.0
		for _, e := range entries {
			sum += e.Probability
		}
		if !almostEqual(sum, 1) {
			t.Errorf("expected probabilities to sum to 1, got %v", sum)
		}
	})

	t.Run("all zero", func(t *testing.T) {
		t.Parallel()

		for _, e := range Calculate(counts("a", 0, "b", 0), 0.8) {
			if e.Odds.IsDefined() || e.Probability != 0 {
				t.Errorf("expected undefined entry, got %+v", e)
			}
		}
	})
}

func TestRank(t *testing.T) {
	t.Parallel()

	t.Run("ascending with undefined last", func(t *testing.T) {
		t.Parallel()

		entries := Calculate(counts("none", 0, "long", 1, "fav", 5, "mid", 2), 0.8)
		Rank(entries)

		want := []string{"fav", "mid", "long", "none"}
		for i, e := range entries {
			if e.Group.DisplayName != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], e.Group.DisplayName)
			}
		}
	})

	t.Run("ties keep input order", func(t *testing.T) {
		t.Parallel()

		entries := Calculate(counts("z0", 0, "b", 2, "a", 2, "y0", 0, "c", 2), 0.8)
		Rank(entries)

		want := []string{"b", "a", "c", "z0", "y0"}
		for i, e := range entries {
			if e.Group.DisplayName != want[i] {
				t.Errorf("position %d: expected %s, got %s", i, want[i], e.Group.DisplayName)
			}
		}
	})
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	posts := []string{
		"Aチームは強いと思う",
		"Bチームが勝つでしょう",
		"やっぱりAだな",
		"Cチームも侮れない",
		"Aで間違いない",
		"Bの調子がいい",
		"チームAしかない",
		"A最強",
	}
	specs := []string{"Aチーム|A|チームA", "Bチーム|B", "Cチーム|C", "Dチーム"}

	first, err := Analyze(posts, specs, 0.8)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if first.TotalCount != 8 || first.PostCount != 8 {
		t.Errorf("expected totals 8/8, got %d/%d", first.TotalCount, first.PostCount)
	}
	if first.Entries[0].Group.DisplayName != "Aチーム" {
		t.Errorf("expected Aチーム first, got %s", first.Entries[0].Group.DisplayName)
	}
	if last := first.Entries[len(first.Entries)-1]; last.Group.DisplayName != "Dチーム" {
		t.Errorf("expected Dチーム last, got %s", last.Group.DisplayName)
	}

	second, err := Analyze(posts, specs, 0.8)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	for i := range first.Entries {
		if first.Entries[i].Group.DisplayName != second.Entries[i].Group.DisplayName ||
			first.Entries[i].OddsDisplay() != second.Entries[i].OddsDisplay() {
			t.Errorf("results differ at %d", i)
		}
	}
}

func TestOddsJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(struct {
		A Odds `json:"a"`
		B Odds `json:"b"`
	}{A: Defined(1.5), B: Undefined()})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"a":1.5,"b":null}` {
		t.Errorf("unexpected JSON: %s", data)
	}
}
