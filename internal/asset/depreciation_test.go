package asset_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/assetdesk/asset-management/internal/asset"
)

var _ = Describe("ComputeDepreciation", func() {
	Context("with a straight-line schedule over five years", func() {
		It("should spread the depreciable base evenly over the useful life", func() {
			// Given
			totalAmount := decimal.NewFromInt(250000)
			rate := decimal.NewFromInt(5)

			// When
			schedule, err := asset.ComputeDepreciation(totalAmount, rate, 60, 12)

			// Then
			Expect(err).ToNot(HaveOccurred())
			Expect(schedule.MonthlyDepreciation.StringFixed(2)).To(Equal("208.33"))
			Expect(schedule.AccumulatedDepreciation.StringFixed(2)).To(Equal("2500.00"))
			Expect(schedule.RemainingMonths).To(Equal(48))
		})

		It("should keep accumulated depreciation exact when the base divides evenly", func() {
			// 12000 * 10% = 1200 over 12 months: 100 per month, no rounding residue
			schedule, err := asset.ComputeDepreciation(decimal.NewFromInt(12000), decimal.NewFromInt(10), 12, 6)

			Expect(err).ToNot(HaveOccurred())
			Expect(schedule.MonthlyDepreciation.StringFixed(2)).To(Equal("100.00"))
			Expect(schedule.AccumulatedDepreciation.StringFixed(2)).To(Equal("600.00"))
			Expect(schedule.RemainingMonths).To(Equal(6))
		})
	})

	Context("when the asset is brand new", func() {
		It("should have zero accumulated depreciation and full remaining life", func() {
			schedule, err := asset.ComputeDepreciation(decimal.NewFromInt(50000), decimal.NewFromInt(20), 36, 0)

			Expect(err).ToNot(HaveOccurred())
			Expect(schedule.AccumulatedDepreciation.IsZero()).To(BeTrue())
			Expect(schedule.RemainingMonths).To(Equal(36))
		})
	})

	Context("when the rate would depreciate past the cost basis", func() {
		It("should never accumulate more than the total amount", func() {
			// 100 * 150% = 150 base: 8 of 10 months gives 120 uncapped
			schedule, err := asset.ComputeDepreciation(decimal.NewFromInt(100), decimal.NewFromInt(150), 10, 8)

			Expect(err).ToNot(HaveOccurred())
			Expect(schedule.AccumulatedDepreciation.StringFixed(2)).To(Equal("100.00"))
			Expect(schedule.RemainingMonths).To(Equal(2))
		})
	})

	Context("with a zero depreciation rate", func() {
		It("should produce a zero schedule", func() {
			schedule, err := asset.ComputeDepreciation(decimal.NewFromInt(250000), decimal.Zero, 60, 12)

			Expect(err).ToNot(HaveOccurred())
			Expect(schedule.MonthlyDepreciation.IsZero()).To(BeTrue())
			Expect(schedule.AccumulatedDepreciation.IsZero()).To(BeTrue())
		})
	})

	Context("with invalid inputs", func() {
		It("should reject a useful life below one month", func() {
			_, err := asset.ComputeDepreciation(decimal.NewFromInt(1000), decimal.NewFromInt(10), 0, 0)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("useful life"))
		})

		It("should reject negative months in use", func() {
			_, err := asset.ComputeDepreciation(decimal.NewFromInt(1000), decimal.NewFromInt(10), 12, -1)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("months in use"))
		})

		It("should reject months in use beyond the useful life", func() {
			_, err := asset.ComputeDepreciation(decimal.NewFromInt(1000), decimal.NewFromInt(10), 12, 20)

			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("months in use"))
		})

		It("should reject a negative total amount", func() {
			_, err := asset.ComputeDepreciation(decimal.NewFromInt(-1), decimal.NewFromInt(10), 12, 0)

			Expect(err).To(HaveOccurred())
		})

		It("should reject a negative rate", func() {
			_, err := asset.ComputeDepreciation(decimal.NewFromInt(1000), decimal.NewFromInt(-5), 12, 0)

			Expect(err).To(HaveOccurred())
		})
	})
})
