//go:build integration

package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blog-api/auth"
	"blog-api/config"
	"blog-api/handlers"
	"blog-api/helper"
	"blog-api/internal/testutil"
	"blog-api/models"
)

type IntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	server    *handlers.Server
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}

func (suite *IntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	gin.SetMode(gin.TestMode)

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("blog_test"),
		postgres.WithUsername("blog"),
		postgres.WithPassword("blog"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	suite.Require().NoError(err, "starting postgres container")
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	cfg := config.Default()
	cfg.Database = config.DatabaseConfig{Driver: config.DriverPostgres, DSN: dsn}
	cfg.SigninBurst = 100

	db, err := config.InitDB(cfg.Database, logger.Silent)
	suite.Require().NoError(err)
	suite.Require().NoError(config.Migrate(db))
	suite.db = db

	suite.server = handlers.NewServer(cfg, db, testutil.TestLogger())
}

func (suite *IntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		if err := suite.container.Terminate(context.Background()); err != nil {
			suite.T().Logf("terminating container: %v", err)
		}
	}
}

func (suite *IntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE comments, posts, users RESTART IDENTITY").Error)
}

func (suite *IntegrationTestSuite) request(method, path string, body interface{}, cookie *http.Cookie) (*httptest.ResponseRecorder, helper.Envelope) {
	payload, err := json.Marshal(body)
	suite.Require().NoError(err)
	if body == nil {
		payload = nil
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	suite.server.Router.ServeHTTP(w, req)

	var env helper.Envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func (suite *IntegrationTestSuite) cookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			return c
		}
	}
	suite.FailNow("no identity cookie")
	return nil
}

func (suite *IntegrationTestSuite) TestSignUpSignInUpdate() {
	w, _ := suite.request(http.MethodPost, "/auth/signup", gin.H{"username": "ana", "email": "ana@x.com", "password": "secret123"}, nil)
	suite.Equal(http.StatusOK, w.Code)

	w, env := suite.request(http.MethodPost, "/auth/signin", gin.H{"identifier": "ana", "password": "bad"}, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal("invalid credentials", env.Message)

	w, env = suite.request(http.MethodPost, "/auth/signin", gin.H{"identifier": "ana", "password": "secret123"}, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	session := suite.cookie(w)
	id := uint(env.Data.(map[string]interface{})["id"].(float64))

	w, _ = suite.request(http.MethodPut, fmt.Sprintf("/user/update/%d", id), gin.H{"email": "ana2@x.com"}, session)
	suite.Equal(http.StatusOK, w.Code)
	suite.NotContains(w.Body.String(), "password")
}

func (suite *IntegrationTestSuite) TestDuplicateKeysBecomeConflicts() {
	w, _ := suite.request(http.MethodPost, "/auth/signup", gin.H{"username": "ana", "email": "ana@x.com", "password": "secret123"}, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w, env := suite.request(http.MethodPost, "/auth/signup", gin.H{"username": "ANA", "email": "other@x.com", "password": "secret123"}, nil)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("username already exists", env.Message)

	w, env = suite.request(http.MethodPost, "/auth/signup", gin.H{"username": "ben", "email": "Ana@X.com", "password": "secret123"}, nil)
	suite.Equal(http.StatusConflict, w.Code)
	suite.Equal("email already exists", env.Message)
}

func (suite *IntegrationTestSuite) TestPostSearchAndSlugConflict() {
	ctx := context.Background()
	_, err := suite.server.UserService.EnsureAdmin(ctx, models.SignUpRequest{Username: "root", Email: "root@x.com", Password: "rootpass"})
	suite.Require().NoError(err)

	w, _ := suite.request(http.MethodPost, "/auth/signin", gin.H{"identifier": "root", "password": "rootpass"}, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	admin := suite.cookie(w)

	w, _ = suite.request(http.MethodPost, "/post/create", gin.H{"title": "Going Deep With Postgres", "content": "<p>100% coverage</p>"}, admin)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	w, _ = suite.request(http.MethodPost, "/post/create", gin.H{"title": "going deep with postgres!", "content": "dup"}, admin)
	suite.Equal(http.StatusConflict, w.Code)

	w, _ = suite.request(http.MethodGet, "/post/getposts?searchTerm=POSTGRES", nil, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Contains(w.Body.String(), `"totalPosts":1`)

	w, _ = suite.request(http.MethodGet, "/post/getposts?searchTerm=100%25", nil, nil)
	suite.Contains(w.Body.String(), `"totalPosts":1`)

	w, _ = suite.request(http.MethodGet, "/post/getposts?searchTerm=%25", nil, nil)
	suite.Contains(w.Body.String(), `"totalPosts":1`)
}
