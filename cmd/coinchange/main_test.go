package main

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinCoins(t *testing.T) {
	tests := []struct {
		name   string
		coins  []int64
		amount int64
		want   int64
	}{
		{"classic", []int64{1, 2, 5}, 11, 3},
		{"unreachable", []int64{2}, 3, -1},
		{"zero amount", []int64{1}, 0, 0},
		{"zero amount no coins", nil, 0, 0},
		{"no coins", nil, 7, -1},
		{"negative amount", []int64{1}, -1, -1},
		{"greedy is wrong", []int64{1, 3, 4}, 6, 2},
		{"single coin exact", []int64{7}, 14, 2},
		{"non-positive coin", []int64{0, 1}, 3, -1},
		{"above table limit", []int64{1}, maxAmount + 1, -1},
		{"max int64", []int64{1}, math.MaxInt64, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, minCoins(tt.coins, tt.amount))
		})
	}
}

func TestSolve_Contract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"valid", `{"coins":[1,2,5],"amount":11}`, 3},
		{"key order irrelevant", `{"amount":3,"coins":[2]}`, -1},
		{"missing coins", `{"amount":3}`, -1},
		{"null coins", `{"coins":null,"amount":3}`, -1},
		{"coins not a list", `{"coins":"1,2","amount":3}`, -1},
		{"float amount", `{"coins":[1],"amount":2.0}`, -1},
		{"missing amount", `{"coins":[1]}`, -1},
		{"not json", `coins`, -1},
		{"empty input", ``, -1},
		{"huge amount", `{"coins":[1],"amount":9223372036854775807}`, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, solve(strings.NewReader(tt.input)))
		})
	}
}
