package httptransport

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	authmodels "github.com/KoustavBera/Odoo25/internal/auth/models"
	"github.com/KoustavBera/Odoo25/internal/auth/store/revocation"
	"github.com/KoustavBera/Odoo25/internal/token"
	"github.com/KoustavBera/Odoo25/internal/transport/http/mocks"
	id "github.com/KoustavBera/Odoo25/pkg/domain"
	dErrors "github.com/KoustavBera/Odoo25/pkg/domain-errors"
	"github.com/KoustavBera/Odoo25/pkg/platform/middleware/session"
	"github.com/KoustavBera/Odoo25/pkg/testutil"
)

//go:generate mockgen -source=handlers_auth.go -destination=mocks/auth_mocks.go -package=mocks

const testSessionTTL = 4 * 24 * time.Hour

type routerFixture struct {
	auth      *mocks.MockAuthService
	questions *mocks.MockQuestionService
	tokens    *token.Service
	trl       *revocation.MemoryTRL
	router    http.Handler
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	auth := mocks.NewMockAuthService(ctrl)
	questions := mocks.NewMockQuestionService(ctrl)
	tokens := token.NewService("test-key", "stackit", testSessionTTL)
	trl := revocation.NewMemoryTRL()

	router := NewRouter(RouterConfig{
		Auth:         NewAuthHandler(auth, tokens, testSessionTTL),
		Questions:    NewQuestionHandler(questions),
		Validator:    tokens,
		Revocation:   trl,
		Logger:       slog.Default(),
		ClientOrigin: "http://localhost:3000",
	})
	return &routerFixture{auth: auth, questions: questions, tokens: tokens, trl: trl, router: router}
}

// sessionCookie mints a real signed token for an authenticated request.
func (f *routerFixture) sessionCookie(t *testing.T, userID id.UserID) *http.Cookie {
	t.Helper()
	signed, err := f.tokens.Generate(userID, "a@b.com", id.RoleUser)
	require.NoError(t, err)
	return &http.Cookie{Name: session.CookieName, Value: signed}
}

func findCookie(t *testing.T, rr *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func sampleSession() *authmodels.Session {
	return &authmodels.Session{
		User: authmodels.UserView{
			ID:    id.NewUserID().String(),
			Name:  "Ada",
			Email: "a@b.com",
			Role:  "user",
		},
		Token: "signed-token",
	}
}

func TestSignUpHandler(t *testing.T) {
	t.Run("success sets cookie and returns 201", func(t *testing.T) {
		f := newRouterFixture(t)
		f.auth.EXPECT().SignUp(gomock.Any(), gomock.Any()).Return(sampleSession(), nil)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/signup",
			map[string]string{"name": "Ada", "email": "a@b.com", "password": "hunter22"})
		rr := testutil.DoRequest(f.router, req)

		testutil.AssertStatus(t, rr, http.StatusCreated)
		testutil.AssertJSONHasKey(t, rr, "result")

		cookie := findCookie(t, rr, session.CookieName)
		require.NotNil(t, cookie, "session cookie must be set")
		assert.Equal(t, "signed-token", cookie.Value)
		assert.True(t, cookie.HttpOnly)
		assert.True(t, cookie.Secure)
		assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
		assert.Equal(t, int(testSessionTTL.Seconds()), cookie.MaxAge)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		f := newRouterFixture(t)
		f.auth.EXPECT().SignUp(gomock.Any(), gomock.Any()).Times(0)

		req := testutil.NewRequestWithBody(t, http.MethodPost, "/auth/signup", "{bad-json")
		rr := testutil.DoRequest(f.router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusBadRequest, string(dErrors.CodeInvalidInput))
	})

	t.Run("duplicate email is 409", func(t *testing.T) {
		f := newRouterFixture(t)
		f.auth.EXPECT().SignUp(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeConflict, "user already exists"))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/signup",
			map[string]string{"name": "Ada", "email": "a@b.com", "password": "hunter22"})
		rr := testutil.DoRequest(f.router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusConflict, string(dErrors.CodeConflict))
	})
}

func TestLoginHandler(t *testing.T) {
	t.Run("success sets cookie and returns 200", func(t *testing.T) {
		f := newRouterFixture(t)
		f.auth.EXPECT().Login(gomock.Any(), gomock.Any()).Return(sampleSession(), nil)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login",
			map[string]string{"email": "a@b.com", "password": "hunter22"})
		rr := testutil.DoRequest(f.router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		require.NotNil(t, findCookie(t, rr, session.CookieName))
	})

	t.Run("bad credentials are 401", func(t *testing.T) {
		f := newRouterFixture(t)
		f.auth.EXPECT().Login(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password"))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/login",
			map[string]string{"email": "a@b.com", "password": "wrong"})
		rr := testutil.DoRequest(f.router, req)

		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, string(dErrors.CodeUnauthorized))
		assert.Nil(t, findCookie(t, rr, session.CookieName), "no cookie on failed login")
	})
}

func TestLogoutHandler(t *testing.T) {
	t.Run("valid cookie revokes and clears", func(t *testing.T) {
		f := newRouterFixture(t)
		f.auth.EXPECT().Logout(gomock.Any(), gomock.Any()).Return(nil)

		req := testutil.NewRequest(t, http.MethodPost, "/auth/logout")
		req.AddCookie(f.sessionCookie(t, id.NewUserID()))
		rr := testutil.DoRequest(f.router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		cookie := findCookie(t, rr, session.CookieName)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge, "cookie must be expired")
	})

	t.Run("no cookie still succeeds", func(t *testing.T) {
		f := newRouterFixture(t)
		f.auth.EXPECT().Logout(gomock.Any(), gomock.Any()).Times(0)

		req := testutil.NewRequest(t, http.MethodPost, "/auth/logout")
		rr := testutil.DoRequest(f.router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	t.Run("garbage cookie clears without revoking", func(t *testing.T) {
		f := newRouterFixture(t)
		f.auth.EXPECT().Logout(gomock.Any(), gomock.Any()).Times(0)

		req := testutil.NewRequest(t, http.MethodPost, "/auth/logout")
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "not-a-jwt"})
		rr := testutil.DoRequest(f.router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
	})
}

func TestMeHandler(t *testing.T) {
	t.Run("missing cookie is 401", func(t *testing.T) {
		f := newRouterFixture(t)
		req := testutil.NewRequest(t, http.MethodGet, "/auth/me")
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})

	t.Run("invalid token is 403", func(t *testing.T) {
		f := newRouterFixture(t)
		req := testutil.NewRequest(t, http.MethodGet, "/auth/me")
		req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "not-a-jwt"})
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusForbidden)
	})

	t.Run("revoked token is 403", func(t *testing.T) {
		f := newRouterFixture(t)
		cookie := f.sessionCookie(t, id.NewUserID())

		claims, err := f.tokens.Validate(cookie.Value)
		require.NoError(t, err)
		require.NoError(t, f.trl.Revoke(t.Context(), claims.ID, time.Minute))

		req := testutil.NewRequest(t, http.MethodGet, "/auth/me")
		req.AddCookie(cookie)
		rr := testutil.DoRequest(f.router, req)
		testutil.AssertStatus(t, rr, http.StatusForbidden)
	})

	t.Run("valid session returns user", func(t *testing.T) {
		f := newRouterFixture(t)
		view := &authmodels.UserView{ID: id.NewUserID().String(), Name: "Ada", Email: "a@b.com", Role: "user"}
		f.auth.EXPECT().CurrentUser(gomock.Any()).Return(view, nil)

		req := testutil.NewRequest(t, http.MethodGet, "/auth/me")
		req.AddCookie(f.sessionCookie(t, id.NewUserID()))
		rr := testutil.DoRequest(f.router, req)

		testutil.AssertStatus(t, rr, http.StatusOK)
		testutil.AssertJSONHasKey(t, rr, "user")
	})
}
