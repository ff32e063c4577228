package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gotodo/webapp/internal/services"
	"github.com/gotodo/webapp/internal/session"
	"github.com/gotodo/webapp/internal/store"
	"github.com/gotodo/webapp/internal/web"
	"github.com/gotodo/webapp/types"
)

type fakeUserRepo struct {
	users  []types.User
	nextID int
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (r *fakeUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	user.ID = r.nextID
	r.nextID++
	r.users = append(r.users, user)
	return user, nil
}

type fakeTodoRepo struct {
	items  []types.TodoItem
	nextID int
}

func (r *fakeTodoRepo) List(_ context.Context) ([]types.TodoItem, error) {
	items := make([]types.TodoItem, len(r.items))
	copy(items, r.items)
	return items, nil
}

func (r *fakeTodoRepo) Create(_ context.Context, item types.TodoItem) (types.TodoItem, error) {
	item.ID = r.nextID
	r.nextID++
	r.items = append(r.items, item)
	return item, nil
}

func (r *fakeTodoRepo) Delete(_ context.Context, id, ownerID int) error {
	for i, item := range r.items {
		if item.ID == id && item.OwnerID == ownerID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// testEnv runs the full router over in-memory repositories.
type testEnv struct {
	server   *httptest.Server
	users    *fakeUserRepo
	todos    *fakeTodoRepo
	client   *http.Client // follows redirects
	noFollow *http.Client // reports redirects as-is
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := &fakeUserRepo{nextID: 1}
	todos := &fakeTodoRepo{nextID: 1}

	userService := services.NewUserService(users)
	todoService := services.NewTodoService(todos)
	sessions := session.NewManager("test-secret", userService)

	renderer, err := web.NewHTMLRenderer()
	require.NoError(t, err)

	router := NewRouter(userService, todoService, sessions, renderer)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		server: server,
		users:  users,
		todos:  todos,
		client: &http.Client{Jar: jar},
		noFollow: &http.Client{
			Jar: jar,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (e *testEnv) postForm(t *testing.T, client *http.Client, path string, values url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := client.PostForm(e.server.URL+path, values)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func (e *testEnv) get(t *testing.T, client *http.Client, path string) (*http.Response, string) {
	t.Helper()
	resp, err := client.Get(e.server.URL + path)
	require.NoError(t, err)
	return resp, readBody(t, resp)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func (e *testEnv) register(t *testing.T, name, email, password string) {
	t.Helper()
	resp, _ := e.postForm(t, e.client, "/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, env.client, "/healthz")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "ok")
}

func TestRegisterAddDeleteFlow(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.postForm(t, env.client, "/register", url.Values{
		"name":     {"Alice"},
		"email":    {"alice@x.com"},
		"password": {"pw123"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Signed in as Alice")

	resp, body = env.postForm(t, env.client, "/add_todo", url.Values{
		"name":     {"Buy milk"},
		"due_date": {"2025-01-01 10:00:00"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Buy milk")
	assert.Contains(t, body, "2025-01-01 10:00:00")

	require.Len(t, env.todos.items, 1)
	item := env.todos.items[0]
	assert.Equal(t, "Buy milk", item.Name)
	assert.Equal(t, 1, item.OwnerID)

	resp, body = env.get(t, env.client, fmt.Sprintf("/delete/%d", item.ID))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotContains(t, body, "Buy milk")
	assert.Contains(t, body, "Nothing to do yet.")
	assert.Empty(t, env.todos.items)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@x.com", "pw123")

	resp, body := env.postForm(t, env.client, "/register", url.Values{
		"name":     {"Alice Again"},
		"email":    {"alice@x.com"},
		"password": {"other"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	// Redirected to the login page carrying a flash message.
	assert.Contains(t, body, "Log In")
	assert.Contains(t, body, "log in instead!")
	assert.Len(t, env.users.users, 1)
}

func TestRegisterValidation(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.postForm(t, env.noFollow, "/register", url.Values{
		"name":  {"Alice"},
		"email": {"alice@x.com"},
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "required")
	assert.Empty(t, env.users.users)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@x.com", "pw123")
	_, _ = env.get(t, env.client, "/logout")

	resp, body := env.postForm(t, env.noFollow, "/login", url.Values{
		"email":    {"alice@x.com"},
		"password": {"wrong"},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Password incorrect. Please try again.")

	// No session was established.
	_, home := env.get(t, env.client, "/")
	assert.NotContains(t, home, "Signed in as")
}

func TestLoginUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.postForm(t, env.noFollow, "/login", url.Values{
		"email":    {"nobody@x.com"},
		"password": {"pw123"},
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "Please try again.")
}

func TestLoginThenLogout(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@x.com", "pw123")
	_, _ = env.get(t, env.client, "/logout")

	resp, body := env.postForm(t, env.client, "/login", url.Values{
		"email":    {"alice@x.com"},
		"password": {"pw123"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "Signed in as Alice")

	_, body = env.get(t, env.client, "/logout")
	assert.NotContains(t, body, "Signed in as")
}

func TestAddTodoRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.postForm(t, env.noFollow, "/add_todo", url.Values{
		"name": {"Buy milk"},
	})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Empty(t, env.todos.items)
}

func TestDeleteRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.get(t, env.noFollow, "/delete/1")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestDeleteMissingItem(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@x.com", "pw123")

	resp, body := env.get(t, env.client, "/delete/42")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "exist")
}

func TestDeleteOnlyRemovesOwnedItem(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@x.com", "pw123")

	resp, _ := env.postForm(t, env.client, "/add_todo", url.Values{
		"name": {"Alice's task"},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, env.todos.items, 1)
	aliceItem := env.todos.items[0]

	_, _ = env.get(t, env.client, "/logout")
	env.register(t, "Bob", "bob@x.com", "pw456")

	_, _ = env.get(t, env.client, fmt.Sprintf("/delete/%d", aliceItem.ID))
	// Bob cannot delete Alice's item.
	assert.Len(t, env.todos.items, 1)
}

func TestHomeListsAllUsersItems(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@x.com", "pw123")
	_, _ = env.postForm(t, env.client, "/add_todo", url.Values{"name": {"Alice task"}})
	_, _ = env.get(t, env.client, "/logout")

	env.register(t, "Bob", "bob@x.com", "pw456")
	_, _ = env.postForm(t, env.client, "/add_todo", url.Values{"name": {"Bob task"}})

	_, body := env.get(t, env.client, "/")
	assert.Contains(t, body, "Alice task")
	assert.Contains(t, body, "Bob task")
}

func TestStoredPasswordIsHashed(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "Alice", "alice@x.com", "pw123")

	require.Len(t, env.users.users, 1)
	hash := env.users.users[0].PasswordHash
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "pw123", hash)
	assert.NotContains(t, hash, "pw123")
}
