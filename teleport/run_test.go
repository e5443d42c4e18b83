package teleport_test

import (
	"bytes"
	"errors"
	"log"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/qtsim/protocol"
	"github.com/sarchlab/qtsim/quantum"
	"github.com/sarchlab/qtsim/sim/hooking"
	"github.com/sarchlab/qtsim/sim/timing"
	"github.com/sarchlab/qtsim/teleport"
	"github.com/sarchlab/qtsim/tracing"
)

var _ = Describe("Run", func() {
	It("should teleport ZERO over PHI_PLUS", func() {
		res, err := teleport.Run(teleport.RunConfig{
			InitialState: quantum.Zero,
			BellType:     quantum.PhiPlus,
			ChannelDelay: 1000,
			StartTime:    0,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Outcome).To(Equal(quantum.Outcome{B0: 0, B1: 0}))
		Expect(res.Correction).To(Equal(quantum.None))
		Expect(res.SentAt).To(Equal(timing.VTimeInPS(0)))
		Expect(res.DeliveredAt).To(Equal(timing.VTimeInPS(1000)))
		Expect(res.ReconstructedState).To(Equal(quantum.Zero))
		Expect(res.Success()).To(BeTrue())
		Expect(res.EventsProcessed).To(Equal(2))
		Expect(res.Validate()).To(Succeed())
	})

	It("should teleport PLUS over PSI_MINUS", func() {
		res, err := teleport.Run(teleport.RunConfig{
			InitialState: quantum.Plus,
			BellType:     quantum.PsiMinus,
			ChannelDelay: 500,
			StartTime:    200,
		})

		Expect(err).NotTo(HaveOccurred())
		expected, err := quantum.CorrectionFor(quantum.PsiMinus, res.Outcome)
		Expect(err).NotTo(HaveOccurred())
		Expect(res.Correction).To(Equal(expected))
		Expect(res.Outcome).To(Equal(quantum.Outcome{B0: 1, B1: 0}))
		Expect(res.Correction).To(Equal(quantum.XZ))
		Expect(res.SentAt).To(Equal(timing.VTimeInPS(200)))
		Expect(res.DeliveredAt).To(Equal(timing.VTimeInPS(700)))
		Expect(res.ReconstructedState).To(Equal(quantum.Plus))
	})

	It("should deliver after the delay for every state and bell type", func() {
		for _, s := range quantum.States {
			for _, b := range quantum.BellTypes {
				for _, delay := range []int64{0, 1, 250, 1_000_000} {
					cfg := teleport.RunConfig{
						InitialState: s,
						BellType:     b,
						ChannelDelay: delay,
						StartTime:    17,
					}

					res, err := teleport.Run(cfg)

					Expect(err).NotTo(HaveOccurred())
					Expect(res.DeliveredAt).To(Equal(res.SentAt + timing.VTimeInPS(delay)))
					Expect(res.ReconstructedState).To(Equal(s))
					Expect(res.Fidelity).To(BeNumerically("~", 1.0, 1e-9))
					Expect(res.Validate()).To(Succeed())
				}
			}
		}
	})

	It("should give identical results for identical configs", func() {
		cfg := teleport.RunConfig{
			InitialState: quantum.One,
			BellType:     quantum.PsiMinus,
			ChannelDelay: 42,
		}

		first, err := teleport.Run(cfg)
		Expect(err).NotTo(HaveOccurred())
		second, err := teleport.Run(cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(second).To(Equal(first))
	})

	It("should reproduce seeded outcomes", func() {
		cfg := teleport.RunConfig{
			InitialState:   quantum.Plus,
			BellType:       quantum.PhiPlus,
			ChannelDelay:   10,
			RandomOutcomes: true,
			Seed:           7,
		}

		first, err := teleport.Run(cfg)
		Expect(err).NotTo(HaveOccurred())
		second, err := teleport.Run(cfg)
		Expect(err).NotTo(HaveOccurred())

		Expect(second.Outcome).To(Equal(first.Outcome))
		Expect(first.ReconstructedState).To(Equal(quantum.Plus))
		Expect(first.Validate()).To(Succeed())
	})

	It("should apply the correction delay", func() {
		res, err := teleport.Run(teleport.RunConfig{
			InitialState:    quantum.One,
			BellType:        quantum.PhiPlus,
			ChannelDelay:    100,
			CorrectionDelay: 25,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(res.DeliveredAt).To(Equal(timing.VTimeInPS(100)))
		Expect(res.CorrectedAt).To(Equal(timing.VTimeInPS(125)))
		Expect(res.EventsProcessed).To(Equal(3))
		Expect(res.Validate()).To(Succeed())
	})

	DescribeTable("should reject invalid configs",
		func(cfg teleport.RunConfig, cause error) {
			_, err := teleport.Run(cfg)

			Expect(err).To(MatchError(teleport.ErrInvalidConfig))
			if cause != nil {
				Expect(errors.Is(err, cause)).To(BeTrue())
			}
		},
		Entry("negative delay", teleport.RunConfig{
			InitialState: quantum.Zero, BellType: quantum.PhiPlus, ChannelDelay: -1,
		}, nil),
		Entry("negative start", teleport.RunConfig{
			InitialState: quantum.Zero, BellType: quantum.PhiPlus, StartTime: -5,
		}, nil),
		Entry("negative correction delay", teleport.RunConfig{
			InitialState: quantum.Zero, BellType: quantum.PhiPlus, CorrectionDelay: -5,
		}, nil),
		Entry("unknown state", teleport.RunConfig{
			InitialState: quantum.State(0), BellType: quantum.PhiPlus,
		}, quantum.ErrUnknownState),
		Entry("unknown bell type", teleport.RunConfig{
			InitialState: quantum.Zero, BellType: quantum.BellType(2),
		}, quantum.ErrUnknownBellType),
		Entry("stop before start", teleport.RunConfig{
			InitialState: quantum.Zero, BellType: quantum.PhiPlus,
			StartTime: 10, StopTime: 5,
		}, nil),
	)

	It("should not schedule anything for an invalid config", func() {
		var events int
		_, err := teleport.MakeBuilder().
			WithConfig(teleport.RunConfig{ChannelDelay: -1}).
			WithHook(hooking.HookFunc(func(hooking.HookCtx) { events++ })).
			Build()

		Expect(err).To(MatchError(teleport.ErrInvalidConfig))
		Expect(events).To(Equal(0))
	})

	It("should fail when the stop time cuts the run short", func() {
		_, err := teleport.Run(teleport.RunConfig{
			InitialState: quantum.Zero,
			BellType:     quantum.PhiPlus,
			ChannelDelay: 1000,
			StopTime:     999,
		})

		Expect(err).To(MatchError(teleport.ErrIncompleteRun))
	})

	It("should complete when the stop time is the delivery time", func() {
		res, err := teleport.Run(teleport.RunConfig{
			InitialState: quantum.Zero,
			BellType:     quantum.PhiPlus,
			ChannelDelay: 1000,
			StopTime:     1000,
		})

		Expect(err).NotTo(HaveOccurred())
		Expect(res.DeliveredAt).To(Equal(timing.VTimeInPS(1000)))
	})
})

var _ = Describe("Simulation", func() {
	var cfg teleport.RunConfig

	BeforeEach(func() {
		cfg = teleport.RunConfig{
			InitialState: quantum.Plus,
			BellType:     quantum.PsiMinus,
			ChannelDelay: 500,
			StartTime:    200,
		}
	})

	It("should expose its components", func() {
		s, err := teleport.MakeBuilder().WithConfig(cfg).Build()
		Expect(err).NotTo(HaveOccurred())

		Expect(s.Channel().Delay()).To(Equal(timing.VTimeInPS(500)))
		Expect(s.Sender().State()).To(Equal(protocol.SenderIdle))
		Expect(s.Receiver().State()).To(Equal(protocol.ReceiverIdle))

		_, err = s.Run()
		Expect(err).NotTo(HaveOccurred())

		Expect(s.Sender().State()).To(Equal(protocol.SenderDone))
		Expect(s.Receiver().State()).To(Equal(protocol.ReceiverCorrected))
		Expect(s.Engine().Pending()).To(Equal(0))
		Expect(s.Channel().Sent()).To(Equal(1))
		Expect(s.Channel().Delivered()).To(Equal(1))
	})

	It("should run only once", func() {
		s, err := teleport.MakeBuilder().WithConfig(cfg).Build()
		Expect(err).NotTo(HaveOccurred())

		_, err = s.Run()
		Expect(err).NotTo(HaveOccurred())
		_, err = s.Run()
		Expect(err).To(MatchError(teleport.ErrAlreadyRun))
	})

	It("should invoke engine hooks around every event", func() {
		var positions []string
		s, err := teleport.MakeBuilder().
			WithConfig(cfg).
			WithHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
				positions = append(positions, ctx.Pos.Name)
			})).
			Build()
		Expect(err).NotTo(HaveOccurred())

		_, err = s.Run()
		Expect(err).NotTo(HaveOccurred())

		Expect(positions).To(Equal([]string{
			"BeforeEvent", "AfterEvent", "BeforeEvent", "AfterEvent",
		}))
	})

	It("should trace the run under its run ID", func() {
		tracer := tracing.NewMemoryTracer(nil)
		s, err := teleport.MakeBuilder().
			WithConfig(cfg).
			WithRunID("r7").
			WithTracer(tracer).
			Build()
		Expect(err).NotTo(HaveOccurred())

		res, err := s.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(res.RunID).To(Equal("r7"))

		var kinds, ids []string
		for _, t := range tracer.Tasks() {
			kinds = append(kinds, t.Kind)
			ids = append(ids, t.ID)
		}
		Expect(kinds).To(Equal([]string{
			tracing.KindBellMeasurement,
			tracing.KindClassicalMsg,
			tracing.KindCorrection,
		}))
		Expect(ids).To(Equal([]string{"r7.1", "r7.2", "r7.3"}))
	})

	It("should log events and messages", func() {
		buf := new(bytes.Buffer)
		s, err := teleport.MakeBuilder().
			WithConfig(cfg).
			WithEventLogger(log.New(buf, "", 0)).
			Build()
		Expect(err).NotTo(HaveOccurred())

		_, err = s.Run()
		Expect(err).NotTo(HaveOccurred())

		Expect(buf.String()).To(ContainSubstring("200, #1, *protocol.MeasureEvent -> Sender"))
		Expect(buf.String()).To(ContainSubstring("msg 2 Sender -> Receiver sent @ 200, outcome (1,0), due @ 700"))
		Expect(buf.String()).To(ContainSubstring("700, #2, *comm.DeliverEvent -> Channel"))
	})
})
