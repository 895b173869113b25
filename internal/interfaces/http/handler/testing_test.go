package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	identityapp "github.com/usagetrack/backend/internal/application/identity"
	meteringapp "github.com/usagetrack/backend/internal/application/metering"
	"github.com/usagetrack/backend/internal/domain/identity"
	"github.com/usagetrack/backend/internal/domain/metering"
	"github.com/usagetrack/backend/internal/infrastructure/persistence"
	"github.com/usagetrack/backend/internal/infrastructure/persistence/models"
	"github.com/usagetrack/backend/internal/interfaces/http/middleware"
	"github.com/usagetrack/backend/internal/interfaces/http/router"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testUsageAt = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

// testEnv wires real services over an in-memory store so handler tests
// exercise the full request path.
type testEnv struct {
	db        *gorm.DB
	userRepo  *persistence.GormUserRepository
	typeRepo  *persistence.GormUsageTypeRepository
	usageRepo *persistence.GormUsageRepository
	engine    *gin.Engine
	principal *identity.Principal
}

// actAs sets the principal injected into subsequent requests,
// standing in for the JWT middleware.
func (env *testEnv) actAs(p identity.Principal) {
	*env.principal = p
}

func (env *testEnv) actAsUser(u *identity.User) {
	env.actAs(identity.Principal{UserID: u.ID, Name: u.Name, IsStaff: u.IsStaff, IsSuperuser: u.IsSuperuser})
}

func (env *testEnv) actAsAdmin(u *identity.User) {
	env.actAs(identity.Principal{UserID: u.ID, Name: u.Name, IsStaff: true})
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.UserModel{}, &models.UsageTypeModel{}, &models.UsageModel{}))

	env := &testEnv{
		db:        db,
		userRepo:  persistence.NewGormUserRepository(db),
		typeRepo:  persistence.NewGormUsageTypeRepository(db),
		usageRepo: persistence.NewGormUsageRepository(db),
		principal: &identity.Principal{},
	}

	log := zap.NewNop()
	userService := identityapp.NewUserService(env.userRepo, log)
	typeService := meteringapp.NewUsageTypeService(env.typeRepo, log)
	usageService := meteringapp.NewUsageService(env.usageRepo, env.typeRepo, env.userRepo, log)

	env.engine = gin.New()
	env.engine.Use(func(c *gin.Context) {
		c.Set(middleware.JWTPrincipalKey, *env.principal)
		c.Next()
	})

	router.NewRouter(env.engine).
		Register(NewUserHandler(userService)).
		Register(NewUsageTypeHandler(typeService)).
		Register(NewUsageHandler(usageService)).
		Setup()

	return env
}

func (env *testEnv) seedUser(t *testing.T, name string) *identity.User {
	t.Helper()
	user, err := identity.NewUser(name, "s3cret-pass")
	require.NoError(t, err)
	require.NoError(t, env.userRepo.Create(context.Background(), user))
	return user
}

func (env *testEnv) seedUsageType(t *testing.T, name, unit string, factor float64) *metering.UsageType {
	t.Helper()
	usageType, err := metering.NewUsageType(name, unit, factor)
	require.NoError(t, err)
	require.NoError(t, env.typeRepo.Create(context.Background(), usageType))
	return usageType
}

func (env *testEnv) seedUsage(t *testing.T, owner *identity.User, typeID int64, amount float64) *metering.Usage {
	t.Helper()
	usage, err := metering.NewUsage(owner.ID, typeID, testUsageAt, amount)
	require.NoError(t, err)
	require.NoError(t, env.usageRepo.Create(context.Background(), usage))
	return usage
}

func (env *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "response has no error object: %s", w.Body.String())
	code, _ := errObj["code"].(string)
	return code
}

func mustStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, "body: %s", w.Body.String())
}
