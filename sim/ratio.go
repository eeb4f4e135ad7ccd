package sim

import "fmt"

// Ratio is an exact fraction Num/Den in lowest terms with Den > 0.
// Metrics are kept as ratios so that identical runs print identical numbers.
type Ratio struct {
	Num int64 `json:"num" yaml:"num"`
	Den int64 `json:"den" yaml:"den"`
}

// NewRatio returns num/den reduced to lowest terms.
// A zero denominator yields 0/1.
func NewRatio(num, den int64) Ratio {
	if den == 0 {
		return Ratio{Num: 0, Den: 1}
	}
	if den < 0 {
		num, den = -num, -den
	}
	if g := gcd(abs64(num), den); g > 1 {
		num, den = num/g, den/g
	}
	return Ratio{Num: num, Den: den}
}

// Float64 returns the ratio as a float for display.
func (r Ratio) Float64() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

func (r Ratio) String() string {
	if r.Den == 0 || r.Den == 1 {
		return fmt.Sprintf("%d", r.Num)
	}
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs64(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}
