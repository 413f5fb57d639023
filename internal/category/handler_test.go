package category_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi"
	"github.com/kkpa/jbh/internal/category"
	categoryPostgres "github.com/kkpa/jbh/internal/category/postgres"
	categoryDatamodel "github.com/kkpa/jbh/internal/core/datamodel/category"
	"github.com/kkpa/jbh/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Category Handler Integration", func() {
	var (
		db        *gorm.DB
		router    chi.Router
		publisher *recordingPublisher
	)

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		Expect(db.AutoMigrate(&categoryDatamodel.Category{})).To(Succeed())

		publisher = &recordingPublisher{}
		repo := categoryPostgres.NewCategoryRepository(db)
		service := category.NewService(repo, publisher, slogger)
		handler := category.NewHandler(transport.NewBaseHandler(slogger, "jbhApp"), service)

		router = chi.NewRouter()
		router.Route(category.BasePath, handler.Routes)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	do := func(method, path string, body interface{}) *httptest.ResponseRecorder {
		var reader *bytes.Reader
		if body != nil {
			raw, err := json.Marshal(body)
			Expect(err).NotTo(HaveOccurred())
			reader = bytes.NewReader(raw)
		} else {
			reader = bytes.NewReader(nil)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	count := func() int64 {
		var n int64
		Expect(db.Model(&categoryDatamodel.Category{}).Count(&n).Error).To(Succeed())
		return n
	}

	create := func(name, typ string) int64 {
		w := do(http.MethodPost, "/api/categories", map[string]string{"name": name, "type": typ})
		Expect(w.Code).To(Equal(http.StatusCreated))
		var created category.Category
		Expect(json.Unmarshal(w.Body.Bytes(), &created)).To(Succeed())
		return *created.ID
	}

	Describe("POST /api/categories", func() {
		It("should create the category and return its location", func() {
			w := do(http.MethodPost, "/api/categories", map[string]string{"name": "AAAAAAAAAA", "type": "A"})

			Expect(w.Code).To(Equal(http.StatusCreated))
			var created category.Category
			Expect(json.Unmarshal(w.Body.Bytes(), &created)).To(Succeed())
			Expect(created.ID).NotTo(BeNil())
			Expect(created.Name).To(Equal("AAAAAAAAAA"))
			Expect(created.Type).To(Equal("A"))

			id := fmt.Sprint(*created.ID)
			Expect(w.Header().Get("Location")).To(Equal("/api/categories/" + id))
			Expect(w.Header().Get("X-jbhApp-alert")).To(Equal("jbhApp.categories.created"))
			Expect(w.Header().Get("X-jbhApp-params")).To(Equal(id))
			Expect(count()).To(Equal(int64(1)))
			Expect(publisher.Types()).To(Equal([]string{"categories.created"}))
		})

		It("should reject a body that already has an id", func() {
			w := do(http.MethodPost, "/api/categories", map[string]interface{}{"id": 1, "name": "Food", "type": "E"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Header().Get("X-jbhApp-error")).To(Equal("error.idexists"))
			Expect(w.Header().Get("X-jbhApp-params")).To(Equal("categories"))
			Expect(count()).To(BeZero())
		})

		It("should reject a name longer than ten characters", func() {
			w := do(http.MethodPost, "/api/categories", map[string]string{"name": "Restaurants", "type": "E"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Header().Get("X-jbhApp-error")).To(Equal("error.validation"))
			Expect(count()).To(BeZero())
		})

		It("should reject malformed JSON", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewBufferString("{"))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Header().Get("X-jbhApp-error")).To(Equal("error.bodyinvalid"))
		})

		It("should report a duplicate name as a conflict", func() {
			create("Food", "E")
			w := do(http.MethodPost, "/api/categories", map[string]string{"name": "Food", "type": "I"})

			Expect(w.Code).To(Equal(http.StatusConflict))
			Expect(w.Header().Get("X-jbhApp-error")).To(Equal("error.nameexists"))
			Expect(count()).To(Equal(int64(1)))
		})
	})

	Describe("PUT /api/categories", func() {
		It("should reject a body without an id", func() {
			w := do(http.MethodPut, "/api/categories", map[string]string{"name": "Food", "type": "E"})

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Header().Get("X-jbhApp-error")).To(Equal("error.idnull"))
			Expect(count()).To(BeZero())
		})

		It("should replace the stored fields", func() {
			id := create("AAAAAAAAAA", "A")

			w := do(http.MethodPut, "/api/categories", map[string]interface{}{"id": id, "name": "BBBBBBBBBB", "type": "B"})

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("X-jbhApp-alert")).To(Equal("jbhApp.categories.updated"))
			Expect(w.Header().Get("X-jbhApp-params")).To(Equal(fmt.Sprint(id)))

			var stored categoryDatamodel.Category
			Expect(db.First(&stored, id).Error).To(Succeed())
			Expect(stored.Name).To(Equal("BBBBBBBBBB"))
			Expect(stored.Type).To(Equal("B"))
			Expect(count()).To(Equal(int64(1)))
		})

		It("should insert under a fresh id when the id is unknown", func() {
			w := do(http.MethodPut, "/api/categories", map[string]interface{}{"id": 77, "name": "Rent", "type": "E"})

			Expect(w.Code).To(Equal(http.StatusOK))
			var stored category.Category
			Expect(json.Unmarshal(w.Body.Bytes(), &stored)).To(Succeed())
			Expect(*stored.ID).NotTo(Equal(int64(77)))
			Expect(w.Header().Get("X-jbhApp-params")).To(Equal(fmt.Sprint(*stored.ID)))
			Expect(count()).To(Equal(int64(1)))

			next := create("Fuel", "E")
			Expect(next).To(Equal(*stored.ID + 1))
		})

		It("should report the stored id when the body id is zero", func() {
			w := do(http.MethodPut, "/api/categories", map[string]interface{}{"id": 0, "name": "Rent", "type": "E"})

			Expect(w.Code).To(Equal(http.StatusOK))
			var stored category.Category
			Expect(json.Unmarshal(w.Body.Bytes(), &stored)).To(Succeed())
			Expect(*stored.ID).NotTo(BeZero())
			Expect(w.Header().Get("X-jbhApp-params")).To(Equal(fmt.Sprint(*stored.ID)))
		})
	})

	Describe("GET /api/categories", func() {
		BeforeEach(func() {
			for _, name := range []string{"Food", "Rent", "Salary"} {
				create(name, "E")
			}
		})

		It("should return the page with total count and links", func() {
			w := do(http.MethodGet, "/api/categories?page=0&size=2", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("X-Total-Count")).To(Equal("3"))
			Expect(w.Header().Get("Link")).To(Equal(
				`</api/categories?page=1&size=2>; rel="next",` +
					`</api/categories?page=1&size=2>; rel="last",` +
					`</api/categories?page=0&size=2>; rel="first"`))

			var list []category.Category
			Expect(json.Unmarshal(w.Body.Bytes(), &list)).To(Succeed())
			Expect(list).To(HaveLen(2))
			Expect(list[0].Name).To(Equal("Food"))
			Expect(list[1].Name).To(Equal("Rent"))
		})

		It("should sort by id descending", func() {
			w := do(http.MethodGet, "/api/categories?sort=id,desc", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			var list []category.Category
			Expect(json.Unmarshal(w.Body.Bytes(), &list)).To(Succeed())
			Expect(list).To(HaveLen(3))
			Expect(list[0].Name).To(Equal("Salary"))
			Expect(list[2].Name).To(Equal("Food"))
		})

		It("should return an empty array past the last page", func() {
			w := do(http.MethodGet, "/api/categories?page=5", nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("X-Total-Count")).To(Equal("3"))
			Expect(w.Body.String()).To(MatchJSON("[]"))
		})

		It("should reject a page whose offset does not fit", func() {
			w := do(http.MethodGet, "/api/categories?page=4611686018427387904&size=2", nil)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Header().Get("X-jbhApp-error")).To(Equal("error.pageinvalid"))
		})

		It("should reject an unknown sort property", func() {
			w := do(http.MethodGet, "/api/categories?sort=secret", nil)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Header().Get("X-jbhApp-error")).To(Equal("error.sortinvalid"))
		})
	})

	Describe("GET /api/categories/{id}", func() {
		It("should return the category", func() {
			id := create("Food", "E")

			w := do(http.MethodGet, fmt.Sprintf("/api/categories/%d", id), nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Body.String()).To(MatchJSON(fmt.Sprintf(`{"id":%d,"name":"Food","type":"E"}`, id)))
		})

		It("should return 404 with an empty body when missing", func() {
			w := do(http.MethodGet, "/api/categories/9999", nil)

			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.Len()).To(BeZero())
		})

		It("should reject a non-numeric id", func() {
			w := do(http.MethodGet, "/api/categories/abc", nil)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Header().Get("X-jbhApp-error")).To(Equal("error.idinvalid"))
		})
	})

	Describe("DELETE /api/categories/{id}", func() {
		It("should delete the category", func() {
			id := create("Food", "E")

			w := do(http.MethodDelete, fmt.Sprintf("/api/categories/%d", id), nil)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("X-jbhApp-alert")).To(Equal("jbhApp.categories.deleted"))
			Expect(w.Header().Get("X-jbhApp-params")).To(Equal(fmt.Sprint(id)))
			Expect(count()).To(BeZero())

			w = do(http.MethodGet, fmt.Sprintf("/api/categories/%d", id), nil)
			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("should succeed for an unknown id", func() {
			w := do(http.MethodDelete, "/api/categories/4242", nil)
			Expect(w.Code).To(Equal(http.StatusOK))
		})
	})
})
