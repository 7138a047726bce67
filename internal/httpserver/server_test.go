package httpserver

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"todolist/internal/auth"
	"todolist/internal/testutil"
	"todolist/repository"
)

type testEnv struct {
	srv   *httptest.Server
	users *repository.UserRepository
	tasks *repository.TaskRepository
}

func newTestEnv(t *testing.T, name string) *testEnv {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)

	users := repository.NewUserRepository(d)
	sessions := repository.NewSessionRepository(d)
	tasks := repository.NewTaskRepository(d)

	log := logrus.New()
	log.SetOutput(io.Discard)

	e := New(
		auth.NewCredentialService(users),
		auth.NewSessionManager(sessions, users),
		tasks,
		log,
	)
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	return &testEnv{srv: srv, users: users, tasks: tasks}
}

// newClient returns an http client with a fresh cookie jar, acting as one
// browser session.
func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func postForm(t *testing.T, client *http.Client, u string, form url.Values) *http.Response {
	t.Helper()
	resp, err := client.PostForm(u, form)
	if err != nil {
		t.Fatalf("POST %s: %v", u, err)
	}
	return resp
}

func get(t *testing.T, client *http.Client, u string) *http.Response {
	t.Helper()
	resp, err := client.Get(u)
	if err != nil {
		t.Fatalf("GET %s: %v", u, err)
	}
	return resp
}

func register(t *testing.T, client *http.Client, base, username, password string) {
	t.Helper()
	resp := postForm(t, client, base+"/register", url.Values{
		"username":      {username},
		"password":      {password},
		"passwordCheck": {password},
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register %s: status %d", username, resp.StatusCode)
	}
	readBody(t, resp)
}

func TestEndToEndFlow(t *testing.T) {
	env := newTestEnv(t, "e2eflow")
	client := newClient(t)

	// Register issues a session cookie and lands on the login page.
	register(t, client, env.srv.URL, "alice", "pw1")

	// The cookie authenticates /home directly: dashboard, not a redirect.
	resp := get(t, client, env.srv.URL+"/home")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("home: status %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Welcome, alice") {
		t.Fatalf("home did not render dashboard: %q", body)
	}

	// Add a task.
	resp = postForm(t, client, env.srv.URL+"/add_task", url.Values{"task_desc": {"buy milk"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add_task: status %d", resp.StatusCode)
	}
	readBody(t, resp)

	// The tasks page lists it as incomplete.
	resp = get(t, client, env.srv.URL+"/tasks")
	if body := readBody(t, resp); !strings.Contains(body, "buy milk: incomplete") {
		t.Fatalf("tasks page missing new task: %q", body)
	}

	// Mark it complete.
	u, err := env.users.GetByUsername(context.Background(), "alice")
	if err != nil || u == nil {
		t.Fatalf("load alice: %v", err)
	}
	list, err := env.tasks.ListForUser(context.Background(), u.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("list tasks: %v len=%d", err, len(list))
	}
	taskID := strconv.FormatInt(list[0].ID, 10)

	resp = postForm(t, client, env.srv.URL+"/mark_complete", url.Values{"task_id": {taskID}})
	readBody(t, resp)

	resp = get(t, client, env.srv.URL+"/tasks")
	if body := readBody(t, resp); !strings.Contains(body, "buy milk: complete") {
		t.Fatalf("task not shown complete: %q", body)
	}

	// And back to incomplete.
	resp = postForm(t, client, env.srv.URL+"/mark_incomplete", url.Values{"task_id": {taskID}})
	readBody(t, resp)

	resp = get(t, client, env.srv.URL+"/tasks")
	if body := readBody(t, resp); !strings.Contains(body, "buy milk: incomplete") {
		t.Fatalf("task not shown incomplete again: %q", body)
	}
}

func TestUnauthenticatedRedirects(t *testing.T) {
	env := newTestEnv(t, "e2eredirect")
	client := &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	for _, path := range []string{"/", "/home", "/tasks"} {
		resp := get(t, client, env.srv.URL+path)
		readBody(t, resp)
		if resp.StatusCode != http.StatusSeeOther {
			t.Fatalf("%s: status %d, want redirect", path, resp.StatusCode)
		}
		if loc := resp.Header.Get("Location"); loc != "/login" {
			t.Fatalf("%s: redirected to %q, want /login", path, loc)
		}
	}
}

func TestLoginFailuresShareGenericMessage(t *testing.T) {
	env := newTestEnv(t, "e2elogin")
	client := newClient(t)

	register(t, client, env.srv.URL, "alice", "pw1")

	// Wrong password and unknown username produce the same message; the
	// response never hints which usernames exist.
	wrongPass := postForm(t, newClient(t), env.srv.URL+"/login", url.Values{
		"username": {"alice"}, "password": {"nope"},
	})
	unknownUser := postForm(t, newClient(t), env.srv.URL+"/login", url.Values{
		"username": {"mallory"}, "password": {"nope"},
	})
	b1 := readBody(t, wrongPass)
	b2 := readBody(t, unknownUser)
	if wrongPass.StatusCode != http.StatusUnauthorized || unknownUser.StatusCode != http.StatusUnauthorized {
		t.Fatalf("statuses: %d %d", wrongPass.StatusCode, unknownUser.StatusCode)
	}
	if !strings.Contains(b1, "username or password incorrect") || b1 != b2 {
		t.Fatalf("failure responses differ:\n%q\n%q", b1, b2)
	}

	// The right password still logs in.
	good := newClient(t)
	resp := postForm(t, good, env.srv.URL+"/login", url.Values{
		"username": {"alice"}, "password": {"pw1"},
	})
	if body := readBody(t, resp); !strings.Contains(body, "Welcome, alice") {
		t.Fatalf("login did not land on dashboard: %q", body)
	}
}

func TestRegisterRejections(t *testing.T) {
	env := newTestEnv(t, "e2eregister")

	resp := postForm(t, newClient(t), env.srv.URL+"/register", url.Values{
		"username": {"alice"}, "password": {"pw1"}, "passwordCheck": {"pw2"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("mismatch: status %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Passwords must match") {
		t.Fatalf("mismatch body: %q", body)
	}

	resp = postForm(t, newClient(t), env.srv.URL+"/register", url.Values{
		"username": {""}, "password": {"pw1"}, "passwordCheck": {"pw1"},
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("missing field: status %d", resp.StatusCode)
	}

	// Duplicate username: conflict with a message that does not confirm
	// the existing account.
	register(t, newClient(t), env.srv.URL, "bob", "pw1")
	resp = postForm(t, newClient(t), env.srv.URL+"/register", url.Values{
		"username": {"bob"}, "password": {"pw2"}, "passwordCheck": {"pw2"},
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate: status %d", resp.StatusCode)
	}
	if body := readBody(t, resp); strings.Contains(body, "exists") || strings.Contains(body, "taken") {
		t.Fatalf("duplicate response leaks existence: %q", body)
	}
}

func TestTaskOwnershipOverHTTP(t *testing.T) {
	env := newTestEnv(t, "e2eownership")

	alice := newClient(t)
	register(t, alice, env.srv.URL, "alice", "pw1")
	resp := postForm(t, alice, env.srv.URL+"/add_task", url.Values{"task_desc": {"alice's task"}})
	readBody(t, resp)

	u, err := env.users.GetByUsername(context.Background(), "alice")
	if err != nil || u == nil {
		t.Fatalf("load alice: %v", err)
	}
	list, err := env.tasks.ListForUser(context.Background(), u.ID)
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %v len=%d", err, len(list))
	}
	taskID := strconv.FormatInt(list[0].ID, 10)

	bob := newClient(t)
	register(t, bob, env.srv.URL, "bob", "pw2")

	// Bob cannot complete Alice's task and cannot tell it exists.
	resp = postForm(t, bob, env.srv.URL+"/mark_complete", url.Values{"task_id": {taskID}})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("cross-user mark: status %d", resp.StatusCode)
	}
	readBody(t, resp)

	// Bob's task list does not show it either.
	resp = get(t, bob, env.srv.URL+"/tasks")
	if body := readBody(t, resp); strings.Contains(body, "alice's task") {
		t.Fatalf("bob sees alice's task: %q", body)
	}

	// Alice's flag is unchanged.
	list, err = env.tasks.ListForUser(context.Background(), u.ID)
	if err != nil || len(list) != 1 || list[0].Complete {
		t.Fatalf("alice's task changed: %v %+v", err, list)
	}
}

func TestAddTaskRejectsEmptyDescription(t *testing.T) {
	env := newTestEnv(t, "e2eemptytask")
	client := newClient(t)
	register(t, client, env.srv.URL, "alice", "pw1")

	resp := postForm(t, client, env.srv.URL+"/add_task", url.Values{"task_desc": {""}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("empty task: status %d", resp.StatusCode)
	}
	if body := readBody(t, resp); !strings.Contains(body, "Cannot Enter Task") {
		t.Fatalf("empty task body: %q", body)
	}
}

func TestLogoutClearsCookie(t *testing.T) {
	env := newTestEnv(t, "e2elogout")
	client := newClient(t)
	register(t, client, env.srv.URL, "alice", "pw1")

	// Authenticated before logout.
	resp := get(t, client, env.srv.URL+"/home")
	if body := readBody(t, resp); !strings.Contains(body, "Welcome, alice") {
		t.Fatalf("expected dashboard before logout: %q", body)
	}

	resp = get(t, client, env.srv.URL+"/logout")
	readBody(t, resp)

	// The cleared cookie no longer authenticates; /home falls through to
	// the login form.
	resp = get(t, client, env.srv.URL+"/home")
	if body := readBody(t, resp); !strings.Contains(body, "Log In") {
		t.Fatalf("expected login form after logout: %q", body)
	}
}
