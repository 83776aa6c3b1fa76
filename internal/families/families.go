// Package families classifies test-case input shapes into known algorithm
// families and computes the analytically correct answer for each. The
// simulated execution strategy dispatches here instead of running submitted
// code.
package families

import (
	"errors"
	"fmt"
	"sort"
)

// Kind tags one recognized problem family.
type Kind string

const (
	GridPaths   Kind = "grid-paths"
	CoinChange  Kind = "coin-change"
	LongestSub  Kind = "longest-increasing-subsequence"
	Knapsack    Kind = "knapsack"
	ClimbStairs Kind = "climb-stairs"
	SpellDigit  Kind = "spell-digit"
)

// ErrUnrecognized reports that an input mapping matches no known family.
var ErrUnrecognized = errors.New("unrecognized input shape")

// Classify inspects the parameter names and value types of an input mapping
// and picks the family it belongs to. Named multi-parameter shapes are
// checked before the generic single-array shape so that e.g. {coins, amount}
// is never mistaken for a subsequence problem.
func Classify(input map[string]any) (Kind, bool) {
	if hasInt(input, "m") && hasInt(input, "n") {
		return GridPaths, true
	}
	if hasIntSlice(input, "coins") && hasInt(input, "amount") {
		return CoinChange, true
	}
	if hasIntSlice(input, "weights") && hasIntSlice(input, "values") && hasInt(input, "capacity") {
		return Knapsack, true
	}
	if hasInt(input, "digit") && len(input) == 1 {
		return SpellDigit, true
	}
	if hasInt(input, "n") && len(input) == 1 {
		return ClimbStairs, true
	}
	if _, ok := soleArrayField(input); ok {
		return LongestSub, true
	}
	return "", false
}

// Solve classifies the input and computes the reference answer for its
// family. Returns ErrUnrecognized when no family matches.
func Solve(input map[string]any) (any, error) {
	kind, ok := Classify(input)
	if !ok {
		return nil, ErrUnrecognized
	}
	switch kind {
	case GridPaths:
		m, _ := intArg(input, "m")
		n, _ := intArg(input, "n")
		return uniquePaths(m, n), nil
	case CoinChange:
		coins, _ := intSliceArg(input, "coins")
		amount, _ := intArg(input, "amount")
		return coinChange(coins, amount), nil
	case Knapsack:
		weights, _ := intSliceArg(input, "weights")
		values, _ := intSliceArg(input, "values")
		capacity, _ := intArg(input, "capacity")
		if len(weights) != len(values) {
			return nil, fmt.Errorf("knapsack input has %d weights but %d values", len(weights), len(values))
		}
		return knapsack(weights, values, capacity), nil
	case SpellDigit:
		d, _ := intArg(input, "digit")
		return spellDigit(d), nil
	case ClimbStairs:
		n, _ := intArg(input, "n")
		return climbStairs(n), nil
	case LongestSub:
		name, _ := soleArrayField(input)
		nums, ok := toIntSlice(input[name])
		if !ok {
			return nil, fmt.Errorf("field %q is not a numeric array", name)
		}
		return longestIncreasing(nums), nil
	}
	return nil, ErrUnrecognized
}

func uniquePaths(m, n int) int {
	if m <= 0 || n <= 0 {
		return 0
	}
	row := make([]int, n)
	for j := range row {
		row[j] = 1
	}
	for i := 1; i < m; i++ {
		for j := 1; j < n; j++ {
			row[j] += row[j-1]
		}
	}
	return row[n-1]
}

func coinChange(coins []int, amount int) int {
	if amount < 0 {
		return -1
	}
	const unreached = 1 << 30
	dp := make([]int, amount+1)
	for i := 1; i <= amount; i++ {
		dp[i] = unreached
	}
	for i := 1; i <= amount; i++ {
		for _, c := range coins {
			if c > 0 && c <= i && dp[i-c]+1 < dp[i] {
				dp[i] = dp[i-c] + 1
			}
		}
	}
	if dp[amount] >= unreached {
		return -1
	}
	return dp[amount]
}

func longestIncreasing(nums []int) int {
	if len(nums) == 0 {
		return 0
	}
	dp := make([]int, len(nums))
	best := 1
	for i := range nums {
		dp[i] = 1
		for j := 0; j < i; j++ {
			if nums[j] < nums[i] && dp[j]+1 > dp[i] {
				dp[i] = dp[j] + 1
			}
		}
		if dp[i] > best {
			best = dp[i]
		}
	}
	return best
}

func knapsack(weights, values []int, capacity int) int {
	if capacity < 0 {
		return 0
	}
	dp := make([]int, capacity+1)
	for i := range weights {
		for w := capacity; w >= weights[i]; w-- {
			if v := dp[w-weights[i]] + values[i]; v > dp[w] {
				dp[w] = v
			}
		}
	}
	return dp[capacity]
}

func climbStairs(n int) int {
	if n <= 0 {
		return 0
	}
	a, b := 1, 1
	for i := 2; i <= n; i++ {
		a, b = b, a+b
	}
	return b
}

var digitWords = []string{
	"zero", "one", "two", "three", "four",
	"five", "six", "seven", "eight", "nine",
}

// spellDigit names the least significant digit of a number, with zero
// mapping to the empty string. Multi-digit numbers spell only their last
// digit.
func spellDigit(d int) string {
	if d == 0 {
		return ""
	}
	return digitWords[((d%10)+10)%10]
}

func hasInt(input map[string]any, key string) bool {
	_, ok := intArg(input, key)
	return ok
}

func hasIntSlice(input map[string]any, key string) bool {
	_, ok := intSliceArg(input, key)
	return ok
}

func intArg(input map[string]any, key string) (int, bool) {
	v, ok := input[key]
	if !ok {
		return 0, false
	}
	return toInt(v)
}

func intSliceArg(input map[string]any, key string) ([]int, bool) {
	v, ok := input[key]
	if !ok {
		return nil, false
	}
	return toIntSlice(v)
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
		return 0, false
	case float32:
		return toInt(float64(n))
	default:
		return 0, false
	}
}

func toIntSlice(v any) ([]int, bool) {
	switch s := v.(type) {
	case []int:
		return s, true
	case []int64:
		out := make([]int, len(s))
		for i, n := range s {
			out[i] = int(n)
		}
		return out, true
	case []float64:
		out := make([]int, len(s))
		for i, n := range s {
			m, ok := toInt(n)
			if !ok {
				return nil, false
			}
			out[i] = m
		}
		return out, true
	case []any:
		out := make([]int, len(s))
		for i, e := range s {
			n, ok := toInt(e)
			if !ok {
				return nil, false
			}
			out[i] = n
		}
		return out, true
	default:
		return nil, false
	}
}

// soleArrayField returns the name of the single array-valued field when the
// mapping has exactly one entry and it is an array.
func soleArrayField(input map[string]any) (string, bool) {
	if len(input) != 1 {
		return "", false
	}
	keys := make([]string, 0, 1)
	for k := range input {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	if _, ok := toIntSlice(input[keys[0]]); !ok {
		return "", false
	}
	return keys[0], true
}
