package quantum

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("CorrectionFor", func() {
	DescribeTable("should match the protocol table",
		func(bell BellType, o Outcome, expected Correction) {
			c, err := CorrectionFor(bell, o)

			Expect(err).NotTo(HaveOccurred())
			Expect(c).To(Equal(expected))
		},
		Entry("Φ⁺ 00", PhiPlus, Outcome{0, 0}, None),
		Entry("Φ⁺ 01", PhiPlus, Outcome{0, 1}, X),
		Entry("Φ⁺ 10", PhiPlus, Outcome{1, 0}, Z),
		Entry("Φ⁺ 11", PhiPlus, Outcome{1, 1}, XZ),
		Entry("Ψ⁻ 00", PsiMinus, Outcome{0, 0}, X),
		Entry("Ψ⁻ 01", PsiMinus, Outcome{0, 1}, None),
		Entry("Ψ⁻ 10", PsiMinus, Outcome{1, 0}, XZ),
		Entry("Ψ⁻ 11", PsiMinus, Outcome{1, 1}, Z),
	)

	It("should cover every bell type and outcome", func() {
		for _, bell := range BellTypes {
			for _, o := range Outcomes {
				_, err := CorrectionFor(bell, o)
				Expect(err).NotTo(HaveOccurred())
			}
		}
	})

	It("should reject unknown inputs", func() {
		_, err := CorrectionFor(BellType(2), Outcome{0, 0})
		Expect(err).To(MatchError(ErrNoCorrectionRule))

		_, err = CorrectionFor(PhiPlus, Outcome{2, 0})
		Expect(err).To(MatchError(ErrNoCorrectionRule))
	})

	It("should list gates in application order", func() {
		Expect(None.Gates()).To(BeEmpty())
		Expect(XZ.Gates()).To(Equal([]string{"X", "Z"}))
	})

	It("should round-trip through text", func() {
		for _, c := range Corrections {
			text, err := c.MarshalText()
			Expect(err).NotTo(HaveOccurred())

			var back Correction
			Expect(back.UnmarshalText(text)).To(Succeed())
			Expect(back).To(Equal(c))
		}
	})
})
