package depreciation_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/assetdesk/asset-management/internal/asset"
	"github.com/assetdesk/asset-management/internal/core/events"
	"github.com/assetdesk/asset-management/internal/depreciation"
)

func TestDepreciation(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Depreciation Runner Suite")
}

// Mock repository safe for concurrent workers
type mockAssetRepository struct {
	mu       sync.Mutex
	assets   map[int64]*asset.Asset
	getError error
	nextID   int64
}

func newMockAssetRepository() *mockAssetRepository {
	return &mockAssetRepository{
		assets: make(map[int64]*asset.Asset),
		nextID: 1,
	}
}

func (m *mockAssetRepository) Create(a *asset.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a.ID = m.nextID
	m.nextID++
	copied := *a
	m.assets[a.ID] = &copied
	return nil
}

func (m *mockAssetRepository) GetByID(id int64) (*asset.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getError != nil {
		return nil, m.getError
	}
	a, exists := m.assets[id]
	if !exists {
		return nil, errors.New("asset not found")
	}
	copied := *a
	return &copied, nil
}

func (m *mockAssetRepository) GetByTagNumber(tagNumber string) (*asset.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.assets {
		if a.TagNumber == tagNumber {
			copied := *a
			return &copied, nil
		}
	}
	return nil, errors.New("asset not found")
}

func (m *mockAssetRepository) GetAll(limit, offset int) ([]*asset.Asset, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*asset.Asset, 0, len(m.assets))
	for id := int64(1); id < m.nextID; id++ {
		if a, exists := m.assets[id]; exists {
			copied := *a
			all = append(all, &copied)
		}
	}
	start := offset
	end := offset + limit
	if start >= len(all) {
		return []*asset.Asset{}, nil
	}
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (m *mockAssetRepository) Update(a *asset.Asset) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *a
	m.assets[a.ID] = &copied
	return nil
}

func (m *mockAssetRepository) Delete(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.assets, id)
	return nil
}

func (m *mockAssetRepository) monthsInUse(id int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.assets[id].NumberOfMonthsInUse
}

var _ = Describe("Runner", func() {
	var (
		runner   *depreciation.Runner
		mockRepo *mockAssetRepository
		logger   *slog.Logger
	)

	newAsset := func(tag string, monthsInUse int) *asset.Asset {
		a := &asset.Asset{
			TagNumber:           tag,
			ItemDescription:     "Workstation laptop",
			Department:          "engineering",
			Quantity:            5,
			CostPerItem:         decimal.NewFromInt(50000),
			TotalAmount:         decimal.NewFromInt(250000),
			DepreciationRate:    decimal.NewFromInt(5),
			UsefulLifeMonths:    60,
			NumberOfMonthsInUse: monthsInUse,
		}
		schedule, err := asset.ComputeDepreciation(a.TotalAmount, a.DepreciationRate, a.UsefulLifeMonths, monthsInUse)
		Expect(err).NotTo(HaveOccurred())
		a.ApplySchedule(schedule)
		return a
	}

	BeforeEach(func() {
		mockRepo = newMockAssetRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		eventBus := events.NewEventBus(logger)
		runner = depreciation.NewRunner(depreciation.Config{
			MaxWorkers:   2,
			JobQueueSize: 16,
			BatchSize:    2,
		}, mockRepo, eventBus, logger)
	})

	AfterEach(func() {
		runner.Shutdown()
	})

	Describe("RunOnce", func() {
		It("should queue one accrual job per asset with remaining life", func() {
			a1 := newAsset("AST-0001", 12)
			a2 := newAsset("AST-0002", 30)
			Expect(mockRepo.Create(a1)).To(Succeed())
			Expect(mockRepo.Create(a2)).To(Succeed())

			queued, err := runner.RunOnce(context.Background())

			Expect(err).NotTo(HaveOccurred())
			Expect(queued).To(Equal(2))
		})

		It("should skip fully depreciated assets", func() {
			exhausted := newAsset("AST-0001", 60)
			Expect(mockRepo.Create(exhausted)).To(Succeed())

			queued, err := runner.RunOnce(context.Background())

			Expect(err).NotTo(HaveOccurred())
			Expect(queued).To(Equal(0))
		})

		It("should advance months in use by one", func() {
			a := newAsset("AST-0001", 12)
			Expect(mockRepo.Create(a)).To(Succeed())

			_, err := runner.RunOnce(context.Background())
			Expect(err).NotTo(HaveOccurred())

			Eventually(func() int {
				return mockRepo.monthsInUse(a.ID)
			}, time.Second, 10*time.Millisecond).Should(Equal(13))
		})

		It("should recompute accumulated depreciation for the new month", func() {
			a := newAsset("AST-0001", 12)
			Expect(mockRepo.Create(a)).To(Succeed())

			_, err := runner.RunOnce(context.Background())
			Expect(err).NotTo(HaveOccurred())

			// 250000 * 5% = 12500 over 60 months: 13 months in use
			Eventually(func() string {
				updated, err := mockRepo.GetByID(a.ID)
				if err != nil {
					return ""
				}
				return updated.AccumulatedDepreciation.StringFixed(2)
			}, time.Second, 10*time.Millisecond).Should(Equal("2708.33"))
		})

		It("should walk the register across batch boundaries", func() {
			for i := 0; i < 5; i++ {
				a := newAsset("AST-000"+string(rune('1'+i)), 12)
				Expect(mockRepo.Create(a)).To(Succeed())
			}

			queued, err := runner.RunOnce(context.Background())

			Expect(err).NotTo(HaveOccurred())
			Expect(queued).To(Equal(5))
		})

		It("should stop when the context is cancelled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := runner.RunOnce(ctx)
			Expect(err).To(Equal(context.Canceled))
		})
	})
})
