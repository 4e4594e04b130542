package echoapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusly/campusly/core"
	"github.com/campusly/campusly/core/rbac"
	"github.com/campusly/campusly/core/user"
	inmemdb "github.com/campusly/campusly/storage/database/inmem"
)

const testPassword = "Pa$$w0rd!"

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

// testLogger records the messages logged through it.
type testLogger struct {
	mu   sync.Mutex
	msgs map[string][]string
}

var _ core.Logger = (*testLogger)(nil)

func (l *testLogger) log(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.msgs == nil {
		l.msgs = make(map[string][]string)
	}
	l.msgs[level] = append(l.msgs[level], msg)
}

func (l *testLogger) logged(level string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.msgs[level]
}

func (l *testLogger) Debug(msg string, _ ...interface{}) { l.log("debug", msg) }
func (l *testLogger) Info(msg string, _ ...interface{})  { l.log("info", msg) }
func (l *testLogger) Warn(msg string, _ ...interface{})  { l.log("warn", msg) }
func (l *testLogger) Error(msg string, _ ...interface{}) { l.log("error", msg) }
func (l *testLogger) Fatal(msg string, _ ...interface{}) { l.log("fatal", msg) }

type testApp struct {
	Server
	auth   *authenticator
	svc    user.Service
	reg    *rbac.Registry
	logger *testLogger
}

func setup(t *testing.T) *testApp {
	t.Helper()
	return setupWithRegistry(t, rbac.Default())
}

func setupWithRegistry(t *testing.T, reg *rbac.Registry) *testApp {
	t.Helper()

	conf := core.NewTestConfig()
	logger := new(testLogger)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator, reg)

	svc := user.NewService(inmemdb.NewUserRepository(inmemdb.Open()))

	srv := NewServer(ServerDeps{
		Conf:       conf,
		Logger:     logger,
		UserSvc:    svc,
		Registry:   reg,
		Validate:   validate,
		Translator: translator,
	})
	return &testApp{
		Server: srv,
		auth:   newAuthenticator(conf),
		svc:    svc,
		reg:    reg,
		logger: logger,
	}
}

func (app *testApp) createUser(t *testing.T, name, uname string, active bool, roles ...rbac.Role) user.User {
	t.Helper()

	names := make([]string, 0, len(roles))
	for _, r := range roles {
		names = append(names, r.String())
	}
	usr, err := app.svc.Create(context.Background(), user.NewUser{
		Name:     name,
		Username: uname,
		Email:    uname + "@campusly.test",
		Password: testPassword,
		Roles:    names,
	})
	require.NoError(t, err)

	if !active {
		usr, err = app.svc.Update(context.Background(), usr, user.UpdateUser{
			Name:     usr.Name,
			Username: usr.Username,
			Email:    usr.Email,
			IsActive: bPtr(false),
		})
		require.NoError(t, err)
	}
	return usr
}

func (app *testApp) token(t *testing.T, usr user.User) string {
	t.Helper()
	token, err := app.auth.generateToken(app.auth.userClaims(usr))
	require.NoError(t, err)
	return token
}

func (app *testApp) do(method, path, token string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newAuthRequest(method, path, token, data...)
	app.ServeHTTP(rec, req)
	return rec
}

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func bPtr(b bool) *bool { return &b }

func marshallObj(t *testing.T, obj interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(obj)
	require.NoError(t, err)
	return data
}

func marshallList(t *testing.T, objs ...interface{}) []byte {
	t.Helper()
	if objs == nil {
		objs = []interface{}{}
	}
	return marshallObj(t, objs)
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	t.Helper()
	assert.Equal(t, tt.wantCode, rec.Code, "body: %s", rec.Body.String())
	if tt.wantData != nil {
		assert.JSONEq(t, string(tt.wantData), rec.Body.String())
	}
}
