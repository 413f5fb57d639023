package accounts_test

import (
	"time"

	"github.com/kkpa/jbh/internal/accounts"
	accountsDatamodel "github.com/kkpa/jbh/internal/core/datamodel/accounts"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Accounts Mapper", func() {
	It("should keep every field through a round trip", func() {
		id := int64(3)
		dto := &accounts.Accounts{
			ID:          &id,
			Description: "Savings",
			CreatedAt:   datePtr("2020-02-29"),
			UpdatedAt:   datePtr("2021-03-01"),
		}

		Expect(accounts.FromDataModel(accounts.ToDataModel(dto))).To(Equal(dto))
	})

	It("should store dates as UTC midnight", func() {
		entity := accounts.ToDataModel(&accounts.Accounts{CreatedAt: datePtr("1970-01-01")})

		Expect(*entity.CreatedAt).To(Equal(time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)))
		Expect(entity.UpdatedAt).To(BeNil())
	})

	It("should build a reference from an id", func() {
		id := int64(9)
		Expect(accounts.FromID(&id)).To(Equal(&accountsDatamodel.Accounts{ID: 9}))
		Expect(accounts.FromID(nil)).To(BeNil())
	})
})
