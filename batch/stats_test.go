package batch_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/qtsim/batch"
	"github.com/sarchlab/qtsim/quantum"
	"github.com/sarchlab/qtsim/teleport"
)

var _ = Describe("Sweep", func() {
	It("should build the cartesian grid", func() {
		configs := batch.Sweep(
			quantum.States, quantum.BellTypes, []int64{0, 100})

		Expect(configs).To(HaveLen(12))
		Expect(configs[0]).To(Equal(teleport.RunConfig{
			InitialState: quantum.Zero,
			BellType:     quantum.PhiPlus,
			ChannelDelay: 0,
		}))
		Expect(configs[11]).To(Equal(teleport.RunConfig{
			InitialState: quantum.Plus,
			BellType:     quantum.PsiMinus,
			ChannelDelay: 100,
		}))
	})

	It("should reseed random repeats", func() {
		configs := batch.Repeat(teleport.RunConfig{
			InitialState:   quantum.Zero,
			BellType:       quantum.PhiPlus,
			RandomOutcomes: true,
			Seed:           10,
		}, 3)

		Expect(configs[0].Seed).To(Equal(uint64(10)))
		Expect(configs[2].Seed).To(Equal(uint64(12)))
	})
})

var _ = Describe("Summarize", func() {
	It("should summarize a deterministic sweep", func() {
		configs := batch.Sweep(
			quantum.States, quantum.BellTypes, []int64{0, 100, 200})
		items := batch.NewRunner().Run(context.Background(), configs)
		items = append(items, batch.Item{Index: 18, Err: errors.New("boom")})

		s := batch.Summarize(items)

		Expect(s.Total).To(Equal(19))
		Expect(s.Succeeded).To(Equal(18))
		Expect(s.Failed).To(Equal(1))

		Expect(s.Outcomes).To(HaveLen(4))
		Expect(s.Outcomes[0].Outcome).To(Equal("00"))
		Expect(s.Outcomes[0].Count).To(Equal(6))
		Expect(s.Outcomes[3].Count).To(Equal(0))
		Expect(s.Outcomes[0].Percent).To(BeNumerically("~", 100.0/3, 1e-9))
		Expect(s.Outcomes[3].Deviation).To(BeNumerically("~", 25, 1e-9))
		Expect(s.MaxDeviation).To(BeNumerically("~", 25, 1e-9))
		Expect(s.ChiSquare).To(BeNumerically("~", 6.0, 1e-9))
		Expect(s.ConsistentWithUniform).To(BeTrue())

		Expect(s.Corrections).To(Equal(map[string]int{
			"NONE": 6, "X": 6, "Z": 3, "XZ": 3,
		}))
		Expect(s.CorrectionPercent["XZ"]).To(BeNumerically("~", 100.0/6, 1e-9))
		Expect(s.CorrectionsByBell["PHI_PLUS"]).To(Equal(map[string]int{
			"NONE": 3, "X": 3, "Z": 3, "XZ": 0,
		}))
		Expect(s.ByState).To(Equal(map[string]int{"ZERO": 6, "ONE": 6, "PLUS": 6}))
		Expect(s.ByBellType).To(Equal(map[string]int{"PHI_PLUS": 9, "PSI_MINUS": 9}))

		Expect(s.Delay.Mean).To(BeNumerically("~", 100, 1e-9))
		Expect(s.Delay.Std).To(BeNumerically("~", 81.6496580927726, 1e-9))
		Expect(s.Delay.Min).To(Equal(int64(0)))
		Expect(s.Delay.Max).To(Equal(int64(200)))
		Expect(s.MeanFidelity).To(BeNumerically("~", 1, 1e-9))
		Expect(s.SuccessRate).To(Equal(1.0))
	})

	It("should spread seeded outcomes evenly", func() {
		configs := batch.Repeat(teleport.RunConfig{
			InitialState:   quantum.Plus,
			BellType:       quantum.PsiMinus,
			ChannelDelay:   10,
			RandomOutcomes: true,
			Seed:           1,
		}, 4000)
		items := batch.NewRunner().Run(context.Background(), configs)

		s := batch.Summarize(items)

		Expect(s.Succeeded).To(Equal(4000))
		for _, o := range s.Outcomes {
			Expect(o.Percent).To(BeNumerically(">", 18))
			Expect(o.Percent).To(BeNumerically("<", 32))
		}
		Expect(s.SuccessRate).To(Equal(1.0))
	})

	It("should summarize an empty batch", func() {
		s := batch.Summarize(nil)

		Expect(s.Total).To(Equal(0))
		Expect(s.Outcomes).To(HaveLen(4))
		Expect(s.ChiSquare).To(Equal(0.0))
		Expect(s.Corrections["NONE"]).To(Equal(0))
	})
})
