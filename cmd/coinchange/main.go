// Command coinchange is a sample program under test for casecheck.
//
// It reads {"coins":[...],"amount":n} on stdin and prints
// {"minCoins":k}, the fewest coins summing to amount, or -1 when amount
// cannot be reached or the input breaks that contract. It always exits 0 so
// the harness judges it by its output alone.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// maxAmount bounds the DP table. Larger amounts answer -1 instead of
// exhausting memory.
const maxAmount = 1 << 24

type response struct {
	MinCoins int64 `json:"minCoins"`
}

func main() {
	out, err := json.Marshal(response{MinCoins: solve(os.Stdin)})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

// solve decodes a request and returns its answer. Any contract violation
// yields -1.
func solve(r io.Reader) int64 {
	var req map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return -1
	}

	rawCoins, ok := req["coins"]
	if !ok || isNull(rawCoins) {
		return -1
	}
	var coins []int64
	if err := json.Unmarshal(rawCoins, &coins); err != nil {
		return -1
	}

	rawAmount, ok := req["amount"]
	if !ok || isNull(rawAmount) {
		return -1
	}
	var amount int64
	if err := json.Unmarshal(rawAmount, &amount); err != nil {
		return -1
	}

	return minCoins(coins, amount)
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// minCoins returns the fewest coins from coins summing to amount, or -1.
// Coin values must be positive and amount must not exceed maxAmount.
func minCoins(coins []int64, amount int64) int64 {
	if amount == 0 {
		return 0
	}
	if len(coins) == 0 || amount < 0 || amount > maxAmount {
		return -1
	}
	for _, c := range coins {
		if c <= 0 {
			return -1
		}
	}

	unreachable := amount + 1
	best := make([]int64, amount+1)
	for i := int64(1); i <= amount; i++ {
		best[i] = unreachable
		for _, c := range coins {
			if c <= i && best[i-c]+1 < best[i] {
				best[i] = best[i-c] + 1
			}
		}
	}

	if best[amount] == unreachable {
		return -1
	}
	return best[amount]
}
