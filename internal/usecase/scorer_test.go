package usecase

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/shopsense/backend/internal/domain"
)

func TestScoreOffers(t *testing.T) {
	t.Run("scores word overlap and exact phrase", func(t *testing.T) {
		offers := []domain.Offer{
			{Title: "Apple MacBook Pro 14"},
		}
		ScoreOffers(offers, "macbook pro")

		// "macbook" and "pro" overlap (200) plus the exact phrase bonus (1000)
		if offers[0].RelevanceScore != 1200 {
			t.Errorf("score = %v, want 1200", offers[0].RelevanceScore)
		}
	})

	t.Run("word overlap without phrase match", func(t *testing.T) {
		offers := []domain.Offer{
			{Title: "Pro stand for Apple MacBook"},
		}
		ScoreOffers(offers, "macbook pro")

		if offers[0].RelevanceScore != 200 {
			t.Errorf("score = %v, want 200 (two overlapping words, no phrase)", offers[0].RelevanceScore)
		}
	})

	t.Run("adds rating and review bonuses", func(t *testing.T) {
		offers := []domain.Offer{
			{Title: "iPad", Rating: 4.5, Reviews: 200},
		}
		ScoreOffers(offers, "ipad")

		// 100 overlap + 1000 phrase + 4.5*20 + 200/4
		want := 100.0 + 1000.0 + 90.0 + 50.0
		if offers[0].RelevanceScore != want {
			t.Errorf("score = %v, want %v", offers[0].RelevanceScore, want)
		}
	})

	t.Run("caps the review bonus", func(t *testing.T) {
		few := []domain.Offer{{Title: "iPad", Reviews: 400}}
		many := []domain.Offer{{Title: "iPad", Reviews: 400000}}
		ScoreOffers(few, "ipad")
		ScoreOffers(many, "ipad")

		// 400 reviews earns 100; anything past 600 is capped at 150
		if many[0].RelevanceScore-few[0].RelevanceScore != 50 {
			t.Errorf("capped bonus diff = %v, want 50",
				many[0].RelevanceScore-few[0].RelevanceScore)
		}
	})

	t.Run("penalizes overly long titles", func(t *testing.T) {
		long := "iPad " + strings.Repeat("with accessories bundle ", 5)
		if len(long) <= longTitleThreshold {
			t.Fatalf("test title too short: %d", len(long))
		}
		short := []domain.Offer{{Title: "iPad"}}
		padded := []domain.Offer{{Title: long}}
		ScoreOffers(short, "ipad")
		ScoreOffers(padded, "ipad")

		if padded[0].RelevanceScore != short[0].RelevanceScore-longTitlePenalty {
			t.Errorf("long title score = %v, want %v",
				padded[0].RelevanceScore, short[0].RelevanceScore-longTitlePenalty)
		}
	})

	t.Run("title length is counted in characters, not bytes", func(t *testing.T) {
		// 90 characters but 175 bytes; must not trip the 100-character penalty
		accented := "iPad " + strings.Repeat("é", 85)
		if utf8.RuneCountInString(accented) > longTitleThreshold || len(accented) <= longTitleThreshold {
			t.Fatalf("fixture not in the byte/character gap: %d runes, %d bytes",
				utf8.RuneCountInString(accented), len(accented))
		}
		plain := []domain.Offer{{Title: "iPad"}}
		multibyte := []domain.Offer{{Title: accented}}
		ScoreOffers(plain, "ipad")
		ScoreOffers(multibyte, "ipad")

		if multibyte[0].RelevanceScore != plain[0].RelevanceScore {
			t.Errorf("multibyte title score = %v, want %v (no length penalty)",
				multibyte[0].RelevanceScore, plain[0].RelevanceScore)
		}
	})

	t.Run("missing rating and reviews add nothing", func(t *testing.T) {
		offers := []domain.Offer{{Title: "iPad"}}
		ScoreOffers(offers, "ipad")
		if offers[0].RelevanceScore != 1100 {
			t.Errorf("score = %v, want 1100", offers[0].RelevanceScore)
		}
	})
}
