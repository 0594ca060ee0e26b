package postgres_test

import (
	"testing"
	"time"

	"github.com/assetdesk/asset-management/internal/asset"
	assetPostgres "github.com/assetdesk/asset-management/internal/asset/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestAssetPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Asset Postgres Suite")
}

// SQLite-compatible models for testing
type SQLiteUser struct {
	ID        int64     `gorm:"primaryKey"`
	FirstName string    `gorm:"column:first_name;not null"`
	LastName  string    `gorm:"column:last_name;not null"`
	Email     string    `gorm:"column:email;uniqueIndex;not null"`
	Role      string    `gorm:"column:role"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SQLiteUser) TableName() string {
	return "users"
}

type SQLiteAsset struct {
	ID                      int64           `gorm:"primaryKey"`
	TagNumber               string          `gorm:"column:tag_number;uniqueIndex;not null"`
	DateOfRegister          time.Time       `gorm:"column:date_of_register"`
	ItemDescription         string          `gorm:"column:item_description"`
	Department              string          `gorm:"column:department"`
	PhysicalLocation        string          `gorm:"column:physical_location"`
	AssetCondition          string          `gorm:"column:asset_condition"`
	Quantity                int             `gorm:"column:quantity"`
	Category                string          `gorm:"column:category"`
	CostPerItem             decimal.Decimal `gorm:"column:cost_per_item;type:numeric"`
	TotalAmount             decimal.Decimal `gorm:"column:total_amount;type:numeric"`
	DepreciationRate        decimal.Decimal `gorm:"column:depreciation_rate;type:numeric"`
	UsefulLifeMonths        int             `gorm:"column:useful_life_months"`
	NumberOfMonthsInUse     int             `gorm:"column:months_in_use"`
	NumberOfRemainingMonths int             `gorm:"column:remaining_months"`
	MonthlyDepreciation     decimal.Decimal `gorm:"column:monthly_depreciation;type:numeric"`
	AccumulatedDepreciation decimal.Decimal `gorm:"column:accumulated_depreciation;type:numeric"`
	InvoiceNumber           int64           `gorm:"column:invoice_number"`
	UserID                  int64           `gorm:"column:user_id;index"`
	DepartmentManagerID     int64           `gorm:"column:department_manager_id"`
	CreatedAt               time.Time       `gorm:"column:created_at"`
	UpdatedAt               time.Time       `gorm:"column:updated_at"`
}

func (SQLiteAsset) TableName() string {
	return "assets"
}

var _ = Describe("Asset PostgreSQL Repository", func() {
	var (
		db   *gorm.DB
		repo asset.Repository
	)

	newAsset := func(tag string) *asset.Asset {
		a := &asset.Asset{
			TagNumber:           tag,
			DateOfRegister:      time.Now(),
			ItemDescription:     "Workstation laptop",
			Department:          "engineering",
			DepartmentManager:   asset.PersonRef{ID: 2},
			User:                asset.PersonRef{ID: 1},
			PhysicalLocation:    "HQ floor 2",
			AssetCondition:      "new",
			Quantity:            5,
			Category:            "laptop",
			CostPerItem:         decimal.NewFromInt(50000),
			TotalAmount:         decimal.NewFromInt(250000),
			DepreciationRate:    decimal.NewFromInt(5),
			UsefulLifeMonths:    60,
			NumberOfMonthsInUse: 12,
			InvoiceNumber:       1001,
			CreatedAt:           time.Now(),
			UpdatedAt:           time.Now(),
		}
		schedule, err := asset.ComputeDepreciation(a.TotalAmount, a.DepreciationRate, a.UsefulLifeMonths, a.NumberOfMonthsInUse)
		Expect(err).NotTo(HaveOccurred())
		a.ApplySchedule(schedule)
		return a
	}

	BeforeEach(func() {
		var err error
		// Use SQLite in-memory database for testing
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteUser{}, &SQLiteAsset{})
		Expect(err).NotTo(HaveOccurred())

		users := []*SQLiteUser{
			{ID: 1, FirstName: "Rina", LastName: "Lestari", Email: "rina.lestari@mail.com", Role: "user"},
			{ID: 2, FirstName: "Budi", LastName: "Santoso", Email: "budi.santoso@mail.com", Role: "admin"},
		}
		for _, u := range users {
			Expect(db.Create(u).Error).NotTo(HaveOccurred())
		}

		repo = assetPostgres.NewAssetRepository(db)
	})

	Describe("Create", func() {
		It("should create a new asset and assign an ID", func() {
			a := newAsset("AST-0001")

			err := repo.Create(a)
			Expect(err).NotTo(HaveOccurred())
			Expect(a.ID).To(BeNumerically(">", 0))
		})

		It("should fail on a duplicate tag number", func() {
			Expect(repo.Create(newAsset("AST-0001"))).NotTo(HaveOccurred())

			err := repo.Create(newAsset("AST-0001"))
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetByID", func() {
		var created *asset.Asset

		BeforeEach(func() {
			created = newAsset("AST-0001")
			Expect(repo.Create(created)).NotTo(HaveOccurred())
		})

		It("should resolve the assigned user and manager names", func() {
			result, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.TagNumber).To(Equal("AST-0001"))
			Expect(result.User.FirstName).To(Equal("Rina"))
			Expect(result.User.LastName).To(Equal("Lestari"))
			Expect(result.DepartmentManager.FirstName).To(Equal("Budi"))
		})

		It("should round-trip the depreciation bookkeeping", func() {
			result, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.MonthlyDepreciation.StringFixed(2)).To(Equal("208.33"))
			Expect(result.AccumulatedDepreciation.StringFixed(2)).To(Equal("2500.00"))
			Expect(result.NumberOfRemainingMonths).To(Equal(48))
		})

		It("should return record not found for a missing asset", func() {
			_, err := repo.GetByID(999)
			Expect(err).To(Equal(gorm.ErrRecordNotFound))
		})
	})

	Describe("GetByTagNumber", func() {
		BeforeEach(func() {
			Expect(repo.Create(newAsset("AST-0001"))).NotTo(HaveOccurred())
		})

		It("should retrieve the asset by tag number", func() {
			result, err := repo.GetByTagNumber("AST-0001")
			Expect(err).NotTo(HaveOccurred())
			Expect(result.TagNumber).To(Equal("AST-0001"))
		})

		It("should return an error for an unknown tag number", func() {
			_, err := repo.GetByTagNumber("AST-9999")
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("GetAll", func() {
		BeforeEach(func() {
			Expect(repo.Create(newAsset("AST-0001"))).NotTo(HaveOccurred())
			Expect(repo.Create(newAsset("AST-0002"))).NotTo(HaveOccurred())
			Expect(repo.Create(newAsset("AST-0003"))).NotTo(HaveOccurred())
		})

		It("should list assets with resolved names", func() {
			result, err := repo.GetAll(10, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(3))
			for _, a := range result {
				Expect(a.User.FirstName).To(Equal("Rina"))
			}
		})

		It("should honor limit and offset", func() {
			result, err := repo.GetAll(2, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(result).To(HaveLen(2))

			rest, err := repo.GetAll(2, 2)
			Expect(err).NotTo(HaveOccurred())
			Expect(rest).To(HaveLen(1))
		})
	})

	Describe("Update", func() {
		var created *asset.Asset

		BeforeEach(func() {
			created = newAsset("AST-0001")
			Expect(repo.Create(created)).NotTo(HaveOccurred())
		})

		It("should persist advanced depreciation bookkeeping", func() {
			created.NumberOfMonthsInUse = 13
			schedule, err := asset.ComputeDepreciation(created.TotalAmount, created.DepreciationRate, created.UsefulLifeMonths, 13)
			Expect(err).NotTo(HaveOccurred())
			created.ApplySchedule(schedule)

			Expect(repo.Update(created)).NotTo(HaveOccurred())

			result, err := repo.GetByID(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.NumberOfMonthsInUse).To(Equal(13))
			Expect(result.NumberOfRemainingMonths).To(Equal(47))
		})
	})

	Describe("Delete", func() {
		It("should remove the asset", func() {
			created := newAsset("AST-0001")
			Expect(repo.Create(created)).NotTo(HaveOccurred())

			Expect(repo.Delete(created.ID)).NotTo(HaveOccurred())

			_, err := repo.GetByID(created.ID)
			Expect(err).To(Equal(gorm.ErrRecordNotFound))
		})
	})
})
