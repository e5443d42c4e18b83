package batch

import (
	"math"

	"github.com/sarchlab/qtsim/quantum"
	"github.com/sarchlab/qtsim/teleport"
)

// ExpectedOutcomePercent is the share of each outcome under uniform sampling.
const ExpectedOutcomePercent = 25.0

// chiSquare3DF05 is the critical value of the chi-square distribution with
// three degrees of freedom at the 0.05 significance level.
const chiSquare3DF05 = 7.815

// OutcomeStat describes how often one measurement outcome occurred.
type OutcomeStat struct {
	Outcome   string  `json:"outcome"`
	Count     int     `json:"count"`
	Percent   float64 `json:"percent"`
	Deviation float64 `json:"deviation"`
}

// DelayStats describes the channel delays of a batch.
type DelayStats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  int64   `json:"min"`
	Max  int64   `json:"max"`
}

// Summary aggregates the items of a batch.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`

	Outcomes     []OutcomeStat `json:"outcomes"`
	MaxDeviation float64       `json:"max_deviation"`
	ChiSquare    float64       `json:"chi_square"`

	// ConsistentWithUniform reports whether the chi-square statistic is below
	// the 0.05 critical value for three degrees of freedom.
	ConsistentWithUniform bool `json:"consistent_with_uniform"`

	Corrections       map[string]int            `json:"corrections"`
	CorrectionPercent map[string]float64        `json:"correction_percent"`
	CorrectionsByBell map[string]map[string]int `json:"corrections_by_bell"`
	ByState           map[string]int            `json:"by_state"`
	ByBellType        map[string]int            `json:"by_bell_type"`

	Delay        DelayStats `json:"delay"`
	MeanFidelity float64    `json:"mean_fidelity"`
	SuccessRate  float64    `json:"success_rate"`
}

// Summarize computes the statistics of the successful items. Failed items are
// only counted.
func Summarize(items []Item) Summary {
	s := Summary{
		Total:             len(items),
		Corrections:       make(map[string]int),
		CorrectionPercent: make(map[string]float64),
		CorrectionsByBell: make(map[string]map[string]int),
		ByState:           make(map[string]int),
		ByBellType:        make(map[string]int),
	}

	results := Results(items)
	s.Succeeded = len(results)
	s.Failed = s.Total - s.Succeeded

	for _, c := range quantum.Corrections {
		s.Corrections[c.String()] = 0
	}

	for _, b := range quantum.BellTypes {
		perBell := make(map[string]int)
		for _, c := range quantum.Corrections {
			perBell[c.String()] = 0
		}

		s.CorrectionsByBell[b.String()] = perBell
	}

	outcomeCounts := make([]int, len(quantum.Outcomes))
	var fidelitySum, delaySum float64
	var reconstructed int

	for i, res := range results {
		outcomeCounts[res.Outcome.Index()]++
		s.Corrections[res.Correction.String()]++
		s.CorrectionsByBell[res.BellType.String()][res.Correction.String()]++
		s.ByState[res.InitialState.String()]++
		s.ByBellType[res.BellType.String()]++

		fidelitySum += res.Fidelity
		if res.Success() {
			reconstructed++
		}

		d := res.Config.ChannelDelay
		delaySum += float64(d)
		if i == 0 || d < s.Delay.Min {
			s.Delay.Min = d
		}

		if i == 0 || d > s.Delay.Max {
			s.Delay.Max = d
		}
	}

	s.Outcomes = outcomeStats(outcomeCounts, len(results))
	for _, o := range s.Outcomes {
		s.MaxDeviation = math.Max(s.MaxDeviation, o.Deviation)
	}

	if len(results) == 0 {
		return s
	}

	n := float64(len(results))
	s.ChiSquare = chiSquareUniform(outcomeCounts)
	s.ConsistentWithUniform = s.ChiSquare < chiSquare3DF05
	s.MeanFidelity = fidelitySum / n
	s.SuccessRate = float64(reconstructed) / n
	s.Delay.Mean = delaySum / n
	s.Delay.Std = delayStd(items, s.Delay.Mean, n)

	for c, count := range s.Corrections {
		s.CorrectionPercent[c] = 100 * float64(count) / n
	}

	return s
}

func outcomeStats(counts []int, total int) []OutcomeStat {
	stats := make([]OutcomeStat, len(quantum.Outcomes))

	for i, o := range quantum.Outcomes {
		text, _ := o.MarshalText()
		stats[i] = OutcomeStat{
			Outcome: string(text),
			Count:   counts[i],
		}

		if total > 0 {
			stats[i].Percent = 100 * float64(counts[i]) / float64(total)
		}

		stats[i].Deviation = math.Abs(stats[i].Percent - ExpectedOutcomePercent)
	}

	return stats
}

func chiSquareUniform(counts []int) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}

	expected := float64(total) / float64(len(counts))
	chi := 0.0

	for _, c := range counts {
		diff := float64(c) - expected
		chi += diff * diff / expected
	}

	return chi
}

func delayStd(items []Item, mean, n float64) float64 {
	sum := 0.0

	for _, item := range items {
		if item.Err != nil {
			continue
		}

		diff := float64(item.Result.Config.ChannelDelay) - mean
		sum += diff * diff
	}

	return math.Sqrt(sum / n)
}

// SummarizeResults computes the statistics of results that all succeeded.
func SummarizeResults(results []teleport.RunResult) Summary {
	items := make([]Item, len(results))
	for i, res := range results {
		items[i] = Item{Index: i, Config: res.Config, Result: res}
	}

	return Summarize(items)
}
