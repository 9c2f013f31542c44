// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stats

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

const confidence = 0.95

// Clopper–Pearson exact CI for binomial proportion (k successes out of n)
func proportionCICP(k int, n int, confidence float64) (pHat float64, ci CI) {
	if n == 0 {
		return 0, CI{0, 1}
	}
	alpha := 1 - confidence
	pHat = float64(k) / float64(n)

	// Beta PPF 映射，處理邊界
	if k == 0 {
		ci.Lo = 0
	} else {
		b := distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}
		ci.Lo = b.Quantile(alpha / 2)
	}
	if k == n {
		ci.Hi = 1
	} else {
		b := distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}
		ci.Hi = b.Quantile(1 - alpha/2)
	}
	return
}

// meanStdFromSums 由總和與平方和求平均與樣本標準差
func meanStdFromSums(sum, sqSum, n int) (mean, std float64) {
	if n == 0 {
		return 0, 0
	}
	nf := float64(n)
	mean = float64(sum) / nf
	if n < 2 {
		return mean, 0
	}
	sf := float64(sum)
	variance := (float64(sqSum) - sf*sf/nf) / (nf - 1)
	if variance < 0 {
		variance = 0
	}
	return mean, math.Sqrt(variance)
}

// meanCI 以 Student-t 分布求平均數的信賴區間，樣本數不足時退化為點。
func meanCI(mean, std float64, n int, confidence float64) CI {
	if n < 2 || std == 0 {
		return CI{Lo: mean, Hi: mean}
	}
	t := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: float64(n - 1)}
	half := t.Quantile(1-(1-confidence)/2) * std / math.Sqrt(float64(n))
	return CI{Lo: max(mean-half, 0), Hi: mean + half}
}

// describe 回傳樣本的平均、標準差與中位數
func describe(data []int) (mean, std, median float64) {
	n := len(data)
	if n == 0 {
		return 0, 0, 0
	}
	x := make([]float64, n)
	for i, v := range data {
		x[i] = float64(v)
	}
	slices.Sort(x)
	median = stat.Quantile(0.5, stat.Empirical, x, nil)
	if n < 2 {
		return x[0], 0, median
	}
	mean, std = stat.MeanStdDev(x, nil)
	return mean, std, median
}
