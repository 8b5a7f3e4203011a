package services

import (
	"fmt"
	"math"
)

// 本文件集中实现各引擎共用的描述统计与回归计算。

// mean 算术平均，空切片返回0
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// variance 总体方差
func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		sum += (v - m) * (v - m)
	}
	return sum / float64(len(values))
}

// stdDev 总体标准差
func stdDev(values []float64) float64 {
	return math.Sqrt(variance(values))
}

func minMax(values []float64) (min, max float64) {
	if len(values) == 0 {
		return 0, 0
	}
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// linearSlope 以序号0..n-1为自变量的最小二乘斜率
func linearSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumX2 float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumX2 += x * x
	}
	fn := float64(n)
	denom := fn*sumX2 - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}

// linearRegression 通用最小二乘回归，返回斜率、截距与决定系数R²
func linearRegression(xs, ys []float64) (slope, intercept, rSquared float64, err error) {
	if len(xs) != len(ys) || len(xs) < 2 {
		return 0, 0, 0, fmt.Errorf("回归需要至少2个等长数据点")
	}
	n := float64(len(xs))
	var sumX, sumY, sumXY, sumX2, sumY2 float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
		sumY2 += ys[i] * ys[i]
	}
	denom := n*sumX2 - sumX*sumX
	if denom == 0 {
		return 0, 0, 0, fmt.Errorf("自变量退化，无法回归")
	}
	slope = (n*sumXY - sumX*sumY) / denom
	intercept = (sumY - slope*sumX) / n

	// R² = 1 - SSE/SST
	meanY := sumY / n
	var sse, sst float64
	for i := range xs {
		pred := intercept + slope*xs[i]
		sse += (ys[i] - pred) * (ys[i] - pred)
		sst += (ys[i] - meanY) * (ys[i] - meanY)
	}
	if sst == 0 {
		rSquared = 0
	} else {
		rSquared = 1 - sse/sst
	}
	return slope, intercept, rSquared, nil
}

// pearsonCorrelation 皮尔逊相关系数。任一序列方差为0时返回错误，
// 由调用方按维度隔离处理。
func pearsonCorrelation(xs, ys []float64) (float64, error) {
	if len(xs) != len(ys) || len(xs) < 3 {
		return 0, fmt.Errorf("相关分析需要至少3个等长数据点")
	}
	mx, my := mean(xs), mean(ys)
	var cov, varX, varY float64
	for i := range xs {
		dx := xs[i] - mx
		dy := ys[i] - my
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0, fmt.Errorf("序列方差为0，相关系数未定义")
	}
	return cov / math.Sqrt(varX*varY), nil
}

// clamp 把v限制在[lo,hi]
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round1 保留1位小数
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round2 保留2位小数
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round3 保留3位小数
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
