package handler_test

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"todoapi/internal/adapter/cache/memory"
	"todoapi/internal/adapter/database/sqlite"
	"todoapi/internal/adapter/database/sqlite/repository"
	httpapi "todoapi/internal/adapter/http"
	"todoapi/internal/adapter/http/routes"
	"todoapi/internal/adapter/telemetry"
	"todoapi/pkg/config"
	. "todoapi/pkg/test"
)

type testEnv struct {
	Router *gin.Engine
	DB     *sqlite.DB
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	db := InitTestDB()

	logger, err := telemetry.NewLogger("todoapi-test")

	if err != nil {
		log.Fatal(err)
	}

	container := httpapi.NewContainer(
		repository.NewUserRepository(db),
		repository.NewTokenRepository(db),
		repository.NewTodoRepository(db),
		memory.New(),
		&config.AppConfig{
			Auth: config.AuthConfig{
				TokenSecret:   "test-secret",
				DecoyPassword: "decoy-password",
				TokenCacheTTL: time.Minute,
			},
		},
		logger,
		nil,
	)

	router := routes.SetupRouterForTests(routes.HandlersConfig{
		AuthHandler: container.AuthHandler,
		TodoHandler: container.TodoHandler,
		AuthService: container.AuthUseCase,
	})

	return &testEnv{Router: router, DB: db}
}

func (e *testEnv) request(method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader

	if body != "" {
		reader = strings.NewReader(body)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.Router.ServeHTTP(rr, req)

	return rr
}

// registerUser signs a user up and returns the issued token.
func (e *testEnv) registerUser(email string) string {
	body := `{"name": "Test User", "email": "` + email + `", "password": "password123", "password_confirmation": "password123"}`
	rr := e.request("POST", "/api/auth/register", body, "")

	data := decodeBody(rr)
	token, _ := data["data"].(map[string]any)["token"].(string)

	return token
}

func decodeBody(rr *httptest.ResponseRecorder) gin.H {
	data := gin.H{}
	json.Unmarshal(rr.Body.Bytes(), &data)
	return data
}
