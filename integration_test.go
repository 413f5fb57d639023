//go:build integration

package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/kkpa/jbh/db"
	"github.com/kkpa/jbh/internal"
	"github.com/kkpa/jbh/internal/accounts"
	accountsPostgres "github.com/kkpa/jbh/internal/accounts/postgres"
	"github.com/kkpa/jbh/internal/category"
	categoryPostgres "github.com/kkpa/jbh/internal/category/postgres"
	categoryDatamodel "github.com/kkpa/jbh/internal/core/datamodel/category"
	"github.com/kkpa/jbh/internal/core/events"
	"github.com/kkpa/jbh/internal/transport"
	"github.com/kkpa/jbh/internal/transport/rest"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var _ = Describe("PostgreSQL integration", Ordered, func() {
	var (
		ctx       context.Context
		container *postgres.PostgresContainer
		sqlxDB    *sqlx.DB
		gormDB    *gorm.DB
		server    *httptest.Server
	)

	BeforeAll(func() {
		ctx = context.Background()

		var err error
		container, err = postgres.Run(ctx,
			"postgres:16-alpine",
			postgres.WithDatabase("jbh"),
			postgres.WithUsername("jbh"),
			postgres.WithPassword("jbh"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second)),
		)
		Expect(err).NotTo(HaveOccurred())

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		Expect(err).NotTo(HaveOccurred())

		sqlxDB, err = sqlx.Connect("pgx", dsn)
		Expect(err).NotTo(HaveOccurred())
		Expect(db.Up(ctx, sqlxDB.DB, "postgres")).To(Succeed())

		gormDB, err = gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlxDB.DB}), &gorm.Config{
			Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		lg := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
		bus := events.NewEventBus(lg)
		base := transport.NewBaseHandler(lg, "")
		router := chi.NewRouter()
		rest.RegisterAllRoutes(router, rest.Handlers{
			Base:   base,
			Health: rest.NewHealthHandler(base, sqlxDB),
			Categories: category.NewHandler(base,
				category.NewService(categoryPostgres.NewCategoryRepository(gormDB), bus, lg)),
			Accounts: accounts.NewHandler(base,
				accounts.NewService(accountsPostgres.NewAccountsRepository(gormDB), bus, lg)),
		})
		server = httptest.NewServer(router)
	})

	AfterAll(func() {
		if server != nil {
			server.Close()
		}
		if sqlxDB != nil {
			_ = sqlxDB.Close()
		}
		if container != nil {
			_ = container.Terminate(ctx)
		}
	})

	send := func(method, path, body string) *http.Response {
		req, err := http.NewRequest(method, server.URL+path, bytes.NewBufferString(body))
		Expect(err).NotTo(HaveOccurred())
		req.Header.Set("Content-Type", "application/json")
		resp, err := http.DefaultClient.Do(req)
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(resp.Body.Close)
		return resp
	}

	It("should report the database healthy", func() {
		Expect(send(http.MethodGet, "/api/health", "").StatusCode).To(Equal(http.StatusOK))
	})

	It("should draw category ids from the sequence", func() {
		repo := categoryPostgres.NewCategoryRepository(gormDB)
		first := &categoryDatamodel.Category{Name: "Seq1", Type: "E"}
		second := &categoryDatamodel.Category{Name: "Seq2", Type: "E"}
		Expect(repo.Save(ctx, first)).To(Succeed())
		Expect(repo.Save(ctx, second)).To(Succeed())
		Expect(second.ID).To(BeNumerically(">", first.ID))
	})

	It("should keep the sequence ahead of ids sent on replace", func() {
		resp := send(http.MethodPost, "/api/categories", `{"name":"SeqA","type":"E"}`)
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))
		var created category.Category
		Expect(json.NewDecoder(resp.Body).Decode(&created)).To(Succeed())
		next := *created.ID + 1

		resp = send(http.MethodPut, "/api/categories", fmt.Sprintf(`{"id":%d,"name":"SeqB","type":"E"}`, next))
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		var replaced category.Category
		Expect(json.NewDecoder(resp.Body).Decode(&replaced)).To(Succeed())
		Expect(resp.Header.Get("X-jbhApp-params")).To(Equal(fmt.Sprint(*replaced.ID)))

		resp = send(http.MethodPut, "/api/categories", fmt.Sprintf(`{"id":%d,"name":"SeqC","type":"E"}`, next+100))
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		var stray category.Category
		Expect(json.NewDecoder(resp.Body).Decode(&stray)).To(Succeed())
		Expect(*stray.ID).NotTo(Equal(next + 100))

		resp = send(http.MethodPost, "/api/categories", `{"name":"SeqD","type":"E"}`)
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))
	})

	It("should translate the unique constraint into a conflict", func() {
		repo := categoryPostgres.NewCategoryRepository(gormDB)
		Expect(repo.Save(ctx, &categoryDatamodel.Category{Name: "Dup", Type: "E"})).To(Succeed())

		err := repo.Save(ctx, &categoryDatamodel.Category{Name: "Dup", Type: "I"})
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(http.StatusConflict))

		resp := send(http.MethodPost, "/api/categories", `{"name":"Dup","type":"E"}`)
		Expect(resp.StatusCode).To(Equal(http.StatusConflict))
		Expect(resp.Header.Get("X-jbhApp-error")).To(Equal("error.nameexists"))
	})

	It("should create, update and read an account with dates", func() {
		resp := send(http.MethodPost, "/api/accounts",
			`{"description":"A","createdAt":"1970-01-01","updatedAt":"1970-01-01"}`)
		Expect(resp.StatusCode).To(Equal(http.StatusCreated))

		var created accounts.Accounts
		Expect(json.NewDecoder(resp.Body).Decode(&created)).To(Succeed())
		id := *created.ID

		resp = send(http.MethodPut, "/api/accounts",
			fmt.Sprintf(`{"id":%d,"description":"B","createdAt":"1970-01-01","updatedAt":"1970-01-01"}`, id))
		Expect(resp.StatusCode).To(Equal(http.StatusOK))

		resp = send(http.MethodGet, fmt.Sprintf("/api/accounts/%d", id), "")
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		var found map[string]interface{}
		Expect(json.NewDecoder(resp.Body).Decode(&found)).To(Succeed())
		Expect(found).To(HaveKeyWithValue("description", "B"))
		Expect(found).To(HaveKeyWithValue("createdAt", "1970-01-01"))
	})

	It("should page categories with headers", func() {
		resp := send(http.MethodGet, "/api/categories?size=1&sort=name,desc", "")
		Expect(resp.StatusCode).To(Equal(http.StatusOK))
		Expect(resp.Header.Get("X-Total-Count")).NotTo(BeEmpty())
		Expect(resp.Header.Get("Link")).To(ContainSubstring(`rel="next"`))
	})

	It("should roll the schema back", func() {
		version, err := db.Version(ctx, sqlxDB.DB, "postgres")
		Expect(err).NotTo(HaveOccurred())
		Expect(version).To(BeNumerically(">", 0))

		Expect(db.Down(ctx, sqlxDB.DB, "postgres")).To(Succeed())
		var exists bool
		Expect(sqlxDB.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'accounts')`)).To(Succeed())
		Expect(exists).To(BeFalse())
	})
})
