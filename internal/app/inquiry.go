package app

import (
	"strconv"
	"strings"
	"time"

	"resort_booking/internal/domain"
)

// InquiryIntent is what a free-text inquiry resolves to.
type InquiryIntent struct {
	Category *domain.Category
	CheckIn  domain.StayDate
	Nights   int
}

// InquiryResolver turns inquiry text into an intent. Implementations must be pure.
type InquiryResolver interface {
	Resolve(text string) InquiryIntent
}

// AprilCheckIn is the date any inquiry mentioning "april" resolves to.
var AprilCheckIn = domain.On(time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC))

type categoryKeyword struct {
	words    []string
	category domain.Category
}

// checked in order; first hit wins
var categoryKeywords = []categoryKeyword{
	{words: []string{"cabin"}, category: domain.CategoryCabin},
	{words: []string{"spa"}, category: domain.CategorySpa},
	{words: []string{"activity", "activities"}, category: domain.CategoryActivities},
}

// KeywordResolver is a fixed keyword lookup, a stand-in for a real parser.
type KeywordResolver struct{}

func NewKeywordResolver() KeywordResolver { return KeywordResolver{} }

func (KeywordResolver) Resolve(text string) InquiryIntent {
	lower := strings.ToLower(text)
	intent := InquiryIntent{CheckIn: domain.Unspecified, Nights: 1}

	for _, kw := range categoryKeywords {
		if containsAny(lower, kw.words) {
			c := kw.category
			intent.Category = &c
			break
		}
	}

	if strings.Contains(lower, "april") {
		intent.CheckIn = AprilCheckIn
	}

	words := strings.Fields(lower)
	for i := 0; i+1 < len(words); i++ {
		if !isDigits(words[i]) || !strings.Contains(words[i+1], "night") {
			continue
		}
		// zero or overflowing counts are not a usable stay length; keep looking
		if n, err := strconv.Atoi(words[i]); err == nil && n > 0 {
			intent.Nights = n
			break
		}
	}
	return intent
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
