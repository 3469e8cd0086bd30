package repository_test

import (
	"context"
	"errors"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/futig/app-builder/internal/entity"
	"github.com/futig/app-builder/internal/repository"
)

func validApp() entity.AppDescription {
	return entity.AppDescription{
		AppName:     "Course Manager",
		Entities:    []string{"Student", "Course", "Grade"},
		Roles:       []string{"Teacher"},
		Features:    []string{},
		Description: "I want an app to manage student courses and grades",
	}
}

var _ = Describe("AppPostgres without a database", func() {
	var repo *repository.AppPostgres

	BeforeEach(func() {
		repo = repository.NewAppPostgres(nil)
	})

	DescribeTable("Save rejects records with missing fields before touching the store",
		func(mutate func(*entity.AppDescription)) {
			app := validApp()
			mutate(&app)

			_, err := repo.Save(context.Background(), app)

			Expect(errors.Is(err, entity.ErrPersistence)).To(BeTrue())
			Expect(errors.Is(err, entity.ErrMissingField)).To(BeTrue())
		},
		Entry("appName", func(a *entity.AppDescription) { a.AppName = "" }),
		Entry("description", func(a *entity.AppDescription) { a.Description = " " }),
		Entry("entities", func(a *entity.AppDescription) { a.Entities = nil }),
		Entry("roles", func(a *entity.AppDescription) { a.Roles = nil }),
		Entry("features", func(a *entity.AppDescription) { a.Features = nil }),
	)

	It("Get treats a malformed id as not found", func() {
		_, err := repo.Get(context.Background(), "not-a-uuid")
		Expect(errors.Is(err, entity.ErrAppNotFound)).To(BeTrue())
	})
})

var _ = Describe("AppPostgres against PostgreSQL", Ordered, func() {
	var (
		ctx  context.Context
		pool *pgxpool.Pool
		repo *repository.AppPostgres
	)

	BeforeAll(func() {
		url := os.Getenv("TEST_DATABASE_URL")
		if url == "" {
			Skip("TEST_DATABASE_URL is not set")
		}

		ctx = context.Background()
		Expect(repository.RunMigrations(url)).To(Succeed())

		var err error
		pool, err = pgxpool.New(ctx, url)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(pool.Close)

		_, err = pool.Exec(ctx, "TRUNCATE apps")
		Expect(err).NotTo(HaveOccurred())

		repo = repository.NewAppPostgres(pool)
	})

	It("saves and reads back a record", func() {
		id, err := repo.Save(ctx, validApp())
		Expect(err).NotTo(HaveOccurred())

		record, err := repo.Get(ctx, id)
		Expect(err).NotTo(HaveOccurred())
		Expect(record.ID).To(Equal(id))
		Expect(record.AppDescription).To(Equal(validApp()))
		Expect(record.CreatedAt).NotTo(BeZero())
	})

	It("stores duplicates as separate records, newest first", func() {
		first, err := repo.Save(ctx, validApp())
		Expect(err).NotTo(HaveOccurred())
		second, err := repo.Save(ctx, validApp())
		Expect(err).NotTo(HaveOccurred())
		Expect(second).NotTo(Equal(first))

		records, err := repo.LoadAll(ctx)
		Expect(err).NotTo(HaveOccurred())
		Expect(len(records)).To(BeNumerically(">=", 3))
		Expect(records[0].CreatedAt).NotTo(BeTemporally("<", records[len(records)-1].CreatedAt))
	})

	It("reports an unknown id as not found", func() {
		_, err := repo.Get(ctx, "6f1c1f9e-8a52-4c4a-9d0e-5b3b3f0b2d11")
		Expect(errors.Is(err, entity.ErrAppNotFound)).To(BeTrue())
	})
})
