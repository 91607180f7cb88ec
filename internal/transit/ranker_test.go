package transit

import (
	"math"
	"testing"
	"time"

	"Astrale/internal/model"
)

func TestRank_EmptyNatalChart(t *testing.T) {
	positions := []model.BodyPosition{
		{Body: "Sole", Longitude: 100, Sign: model.Cancro},
	}
	if got := Rank(positions, nil); len(got) != 0 {
		t.Errorf("expected no signals for empty natal chart, got %d", len(got))
	}
	if got := Significant(time.Now(), nil); len(got) != 0 {
		t.Errorf("expected no signals for empty natal chart, got %d", len(got))
	}
}

func TestRank_SaturnoConjunctNatalLuna(t *testing.T) {
	// Natal Luna in Cancro sits at the sign midpoint, 105°. A transiting
	// Saturno at 103° is a conjunction with exactness 2.
	positions := []model.BodyPosition{
		{Body: "Saturno", Longitude: 103, Sign: model.Cancro},
	}
	natal := []model.NatalPlacement{
		{Body: "Luna", Sign: model.Cancro},
	}

	got := Rank(positions, natal)
	if len(got) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(got))
	}
	sig := got[0]
	if sig.Aspect != model.AspectConjunction {
		t.Errorf("aspect = %s, want conjunction", sig.Aspect)
	}
	if sig.TransitBody != "Saturno" || sig.NatalBody != "Luna" {
		t.Errorf("unexpected pair: %s / %s", sig.TransitBody, sig.NatalBody)
	}
	// weight(Saturno)=7 plus (10 - 2*2) = 13
	if math.Abs(sig.Significance-13) > 1e-9 {
		t.Errorf("significance = %f, want 13", sig.Significance)
	}
}

func TestRank_TopThreeSortedDescending(t *testing.T) {
	// Every position conjuncts the Cancro midpoint; five natal bodies
	// give more matches than survive the cut.
	positions := []model.BodyPosition{
		{Body: "Sole", Longitude: 105},
		{Body: "Marte", Longitude: 106},
		{Body: "Giove", Longitude: 104},
		{Body: "Saturno", Longitude: 107},
		{Body: "Plutone", Longitude: 103},
	}
	natal := []model.NatalPlacement{
		{Body: "Luna", Sign: model.Cancro},
		{Body: "Venere", Sign: model.Cancro},
	}

	got := Rank(positions, natal)
	if len(got) != 3 {
		t.Fatalf("expected exactly 3 signals, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Significance > got[i-1].Significance {
			t.Errorf("signals not sorted descending: %f before %f",
				got[i-1].Significance, got[i].Significance)
		}
	}
	// Plutone at 103° scores 9+(10-4)=15, the tightest heavy hit.
	if got[0].TransitBody != "Plutone" {
		t.Errorf("top signal = %s, want Plutone", got[0].TransitBody)
	}
}

func TestRank_SkipsSelfTransit(t *testing.T) {
	positions := []model.BodyPosition{
		{Body: "Luna", Longitude: 105},
	}
	natal := []model.NatalPlacement{
		{Body: "Luna", Sign: model.Cancro},
	}
	if got := Rank(positions, natal); len(got) != 0 {
		t.Errorf("a body must not transit its own natal self, got %d signals", len(got))
	}
}

func TestRank_SkipsUnknownSign(t *testing.T) {
	positions := []model.BodyPosition{
		{Body: "Saturno", Longitude: 103},
	}
	natal := []model.NatalPlacement{
		{Body: "Luna", Sign: "Ofiuco"},
		{Body: "Sole", Sign: model.Cancro},
	}
	got := Rank(positions, natal)
	if len(got) != 1 {
		t.Fatalf("expected the bad placement to be skipped, got %d signals", len(got))
	}
	if got[0].NatalBody != "Sole" {
		t.Errorf("surviving signal natal body = %s, want Sole", got[0].NatalBody)
	}
}
