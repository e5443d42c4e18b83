package protocol

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/qtsim/comm"
	"github.com/sarchlab/qtsim/quantum"
	"github.com/sarchlab/qtsim/sim/hooking"
	"github.com/sarchlab/qtsim/sim/timing"
	"go.uber.org/mock/gomock"
)

var _ = Describe("Sender", func() {
	var (
		mockCtrl *gomock.Controller
		engine   *MockEventScheduler
		channel  *MockChannel
		sender   *Sender
		pair     *quantum.EntangledPair
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		engine = NewMockEventScheduler(mockCtrl)
		channel = NewMockChannel(mockCtrl)
		engine.EXPECT().CurrentTime().Return(timing.VTimeInPS(200)).AnyTimes()

		sender = MakeSenderBuilder().
			WithEngine(engine).
			WithChannel(channel).
			Build("Sender")

		var err error
		pair, err = quantum.NewEntangledPair(quantum.PsiMinus)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should start idle", func() {
		Expect(sender.State()).To(Equal(SenderIdle))
		Expect(sender.Message()).To(BeNil())
	})

	It("should refuse to measure before being loaded", func() {
		Expect(sender.PerformBellMeasurement()).To(MatchError(ErrNotLoaded))
		Expect(sender.State()).To(Equal(SenderIdle))
	})

	It("should refuse invalid inputs", func() {
		Expect(sender.Load(quantum.State(9), pair.SenderHalf())).
			To(MatchError(quantum.ErrUnknownState))
		Expect(sender.Load(quantum.Plus, nil)).To(MatchError(ErrNotLoaded))
	})

	It("should measure, collapse the pair and send the outcome", func() {
		Expect(sender.Load(quantum.Plus, pair.SenderHalf())).To(Succeed())

		channel.EXPECT().
			Send(gomock.Any(), timing.VTimeInPS(200)).
			DoAndReturn(func(msg *comm.TeleportationMessage, _ timing.VTimeInPS) error {
				Expect(sender.State()).To(Equal(SenderMeasured))
				Expect(msg.Outcome).To(Equal(quantum.Outcome{B0: 1, B1: 0}))
				Expect(msg.SentAt).To(Equal(timing.VTimeInPS(200)))
				Expect(msg.Src).To(Equal("Sender"))
				Expect(msg.Dst).To(Equal("Receiver"))
				return nil
			})

		Expect(sender.Handle(&MeasureEvent{})).To(Succeed())

		Expect(sender.State()).To(Equal(SenderDone))
		Expect(sender.Outcome()).To(Equal(quantum.Outcome{B0: 1, B1: 0}))
		Expect(sender.SentAt()).To(Equal(timing.VTimeInPS(200)))
		Expect(sender.Message()).NotTo(BeNil())
		Expect(pair.SenderHalf().Consumed()).To(BeTrue())
	})

	It("should be single use", func() {
		Expect(sender.Load(quantum.Zero, pair.SenderHalf())).To(Succeed())
		channel.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)

		Expect(sender.PerformBellMeasurement()).To(Succeed())
		Expect(sender.PerformBellMeasurement()).To(MatchError(ErrProtocolReuse))
		Expect(sender.Load(quantum.Zero, pair.SenderHalf())).
			To(MatchError(ErrProtocolReuse))
	})

	It("should surface channel errors", func() {
		Expect(sender.Load(quantum.One, pair.SenderHalf())).To(Succeed())
		failure := errors.New("link down")
		channel.EXPECT().Send(gomock.Any(), gomock.Any()).Return(failure)

		Expect(sender.PerformBellMeasurement()).To(MatchError(failure))
		Expect(sender.State()).To(Equal(SenderMeasured))
	})

	It("should use the configured outcome source", func() {
		sender = MakeSenderBuilder().
			WithEngine(engine).
			WithChannel(channel).
			WithOutcomeSource(fixedOutcome{quantum.Outcome{B0: 1, B1: 1}}).
			WithPeer("Bob").
			Build("Alice")
		Expect(sender.Load(quantum.Zero, pair.SenderHalf())).To(Succeed())

		var measured []any
		sender.AcceptHook(hooking.HookFunc(func(ctx hooking.HookCtx) {
			if ctx.Pos == HookPosMeasured {
				measured = append(measured, ctx.Item)
			}
		}))

		channel.EXPECT().
			Send(gomock.Any(), gomock.Any()).
			DoAndReturn(func(msg *comm.TeleportationMessage, _ timing.VTimeInPS) error {
				Expect(msg.Dst).To(Equal("Bob"))
				Expect(msg.Outcome).To(Equal(quantum.Outcome{B0: 1, B1: 1}))
				return nil
			})

		Expect(sender.PerformBellMeasurement()).To(Succeed())
		Expect(measured).To(Equal([]any{quantum.Outcome{B0: 1, B1: 1}}))
	})

	It("should reject unknown events", func() {
		Expect(sender.Handle("tick")).NotTo(Succeed())
	})

	It("should panic when built without a channel", func() {
		Expect(func() {
			MakeSenderBuilder().WithEngine(engine).Build("Sender")
		}).To(Panic())
	})
})

type fixedOutcome struct {
	o quantum.Outcome
}

func (f fixedOutcome) Outcome(quantum.State) quantum.Outcome {
	return f.o
}
