package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScore(t *testing.T) {
	cases := []struct {
		name string
		text string
		want int64
	}{
		{"plain", "score: 85\nStrong candidate.", 85},
		{"uppercase", "Score: 7", 7},
		{"leading prose", "After review, score: 42. Decent.", 42},
		{"zero", "score: 0", 0},
		{"hundred", "score: 100", 100},
		{"over range", "score: 250", 0},
		{"missing", "An excellent candidate overall.", 0},
		{"empty", "", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parseScore(tc.text))
		})
	}
}
