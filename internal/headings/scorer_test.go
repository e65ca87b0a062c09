package headings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLevel(t *testing.T) {
	tests := []struct {
		name          string
		text          string
		titleKeywords []Keyword
		userKeyword   string
		want          int
	}{
		{
			name:        "user keyword wins",
			text:        "Come preparare il Forno a Legna",
			userKeyword: "forno a legna",
			want:        2,
		},
		{
			name:          "user keyword wins regardless of title keywords",
			text:          "Scopri il TIRAMISÙ della nonna",
			titleKeywords: []Keyword{"lasagne", "ragù"},
			userKeyword:   "tiramisù",
			want:          2,
		},
		{
			name:          "title keyword gives level 2",
			text:          "Le pizze più famose di Napoli",
			titleKeywords: []Keyword{"roma", "napoli"},
			want:          2,
		},
		{
			name:          "substring of a longer word matches",
			text:          "Pizzerie storiche",
			titleKeywords: []Keyword{"pizze"},
			want:          2,
		},
		{
			name:          "no match gives level 3",
			text:          "Orari di apertura",
			titleKeywords: []Keyword{"pizza"},
			userKeyword:   "forno",
			want:          3,
		},
		{
			name: "no keywords at all",
			text: "Orari di apertura",
			want: 3,
		},
		{
			name:          "blank user keyword is ignored",
			text:          "Orari di apertura",
			titleKeywords: []Keyword{""},
			userKeyword:   "  ",
			want:          3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyLevel(tt.text, tt.titleKeywords, tt.userKeyword))
		})
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		titleKeywords  []Keyword
		userKeyword    string
		wantConfidence int
		wantReasons    []string
	}{
		{
			name:           "base confidence for a short text",
			text:           "Contatti",
			wantConfidence: 50,
			wantReasons:    []string{"Heading length: 8 characters"},
		},
		{
			name:           "optimal length bonus",
			text:           "Orari di apertura",
			wantConfidence: 60,
			wantReasons:    []string{"Heading length: 17 characters"},
		},
		{
			name:           "user keyword",
			text:           "Il forno a legna",
			userKeyword:    "Forno",
			wantConfidence: 90,
			wantReasons: []string{
				"Contains focus keyword: 'Forno'",
				"Heading length: 16 characters",
			},
		},
		{
			name:           "each title keyword counts",
			text:           "Pizza napoletana",
			titleKeywords:  []Keyword{"pizza", "napoletana", "roma"},
			wantConfidence: 90,
			wantReasons: []string{
				"Contains title word: 'pizza'",
				"Contains title word: 'napoletana'",
				"Heading length: 16 characters",
			},
		},
		{
			name:           "duplicate keywords count twice",
			text:           "Pizza",
			titleKeywords:  []Keyword{"pizza", "pizza"},
			wantConfidence: 80,
			wantReasons: []string{
				"Contains title word: 'pizza'",
				"Contains title word: 'pizza'",
				"Heading length: 5 characters",
			},
		},
		{
			name:           "clamped at 100",
			text:           "Pizza margherita napoletana con bufala campana",
			titleKeywords:  []Keyword{"pizza", "margherita", "napoletana", "bufala"},
			userKeyword:    "campana",
			wantConfidence: 100,
		},
		{
			name:           "long text gets no length bonus",
			text:           "Una descrizione piuttosto lunga della nostra pizzeria storica",
			wantConfidence: 50,
			wantReasons:    []string{"Heading length: 61 characters"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			confidence, reasons := Score(tt.text, tt.titleKeywords, tt.userKeyword)
			assert.Equal(t, tt.wantConfidence, confidence)
			if tt.wantReasons != nil {
				assert.Equal(t, tt.wantReasons, reasons)
			}
			assert.Contains(t, reasons[len(reasons)-1], "Heading length:")
		})
	}
}

func TestScore_MonotonicInMatchingKeywords(t *testing.T) {
	text := "pizza margherita napoletana bufala"
	all := []Keyword{"pizza", "margherita", "napoletana", "bufala"}

	previous := -1
	for n := 0; n <= len(all); n++ {
		confidence, _ := Score(text, all[:n], "")
		assert.GreaterOrEqual(t, confidence, previous)
		assert.LessOrEqual(t, confidence, 100)
		previous = confidence
	}
}

func TestScore_MultiByteLength(t *testing.T) {
	// 15 code points, 30 bytes
	_, reasons := Score("ààààààààààààààà", nil, "")
	assert.Equal(t, []string{"Heading length: 15 characters"}, reasons)
}
