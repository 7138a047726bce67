package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"todolist/internal/auth"
	"todolist/models"
	"todolist/repository"
)

// currentUser pulls the session-resolved user out of the request context.
func currentUser(c echo.Context) (*models.User, bool) {
	return auth.UserFromContext(c.Request().Context())
}

// home renders the task dashboard, or redirects to the login form when
// the request carries no valid session.
func (s *Server) home(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	tasks, err := s.tasks.ListForUser(c.Request().Context(), u.ID)
	if err != nil {
		return s.internalError(c, "list tasks", err)
	}
	return c.Render(http.StatusOK, "home.html", dashboardData{User: u.Public(), Tasks: tasks})
}

func (s *Server) loginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login.html", formData{})
}

func (s *Server) registerForm(c echo.Context) error {
	return c.Render(http.StatusOK, "register.html", formData{})
}

// logout clears the client-held cookie. The token itself stays in the
// store; see DESIGN.md for the revocation decision.
func (s *Server) logout(c echo.Context) error {
	c.SetCookie(&http.Cookie{Name: authCookieName, Value: "", Path: "/", MaxAge: -1})
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) register(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	passwordCheck := c.FormValue("passwordCheck")

	u, err := s.creds.Register(c.Request().Context(), username, password, passwordCheck)
	switch {
	case errors.Is(err, auth.ErrMissingFields):
		return c.Render(http.StatusBadRequest, "register.html", formData{Error: "All fields are required"})
	case errors.Is(err, auth.ErrPasswordMismatch):
		return c.Render(http.StatusBadRequest, "register.html", formData{Error: "Passwords must match"})
	case errors.Is(err, repository.ErrUsernameTaken):
		// Same wording as any other rejected registration; never confirms
		// that a username exists.
		return c.Render(http.StatusConflict, "register.html", formData{Error: "Unable to register with those credentials"})
	case err != nil:
		return s.internalError(c, "register", err)
	}

	token, err := s.sessions.Issue(c.Request().Context(), u.ID)
	if err != nil {
		return s.internalError(c, "issue session", err)
	}
	c.SetCookie(&http.Cookie{Name: authCookieName, Value: token, Path: "/"})
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	if username == "" || password == "" {
		return c.Render(http.StatusBadRequest, "login.html", formData{Error: "All fields are required"})
	}

	u, err := s.creds.Verify(c.Request().Context(), username, password)
	if errors.Is(err, auth.ErrBadCredentials) {
		return c.Render(http.StatusUnauthorized, "login.html", formData{Error: "Error: username or password incorrect"})
	}
	if err != nil {
		return s.internalError(c, "verify credentials", err)
	}

	token, err := s.sessions.Issue(c.Request().Context(), u.ID)
	if err != nil {
		return s.internalError(c, "issue session", err)
	}
	c.SetCookie(&http.Cookie{Name: authCookieName, Value: token, Path: "/"})
	return c.Redirect(http.StatusSeeOther, "/home")
}

// tasksPage lists the session user's tasks. The user comes from the
// resolved session, never from a separate cookie field.
func (s *Server) tasksPage(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	tasks, err := s.tasks.ListForUser(c.Request().Context(), u.ID)
	if err != nil {
		return s.internalError(c, "list tasks", err)
	}
	return c.Render(http.StatusOK, "tasks.html", dashboardData{User: u.Public(), Tasks: tasks})
}

func (s *Server) addTask(c echo.Context) error {
	u, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	if _, err := s.tasks.Create(c.Request().Context(), u.ID, c.FormValue("task_desc")); err != nil {
		if errors.Is(err, repository.ErrEmptyDescription) {
			return c.String(http.StatusBadRequest, "Cannot Enter Task")
		}
		return s.internalError(c, "create task", err)
	}
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

func (s *Server) markComplete(c echo.Context) error {
	return s.setCompletion(c, true)
}

func (s *Server) markIncomplete(c echo.Context) error {
	return s.setCompletion(c, false)
}

func (s *Server) setCompletion(c echo.Context, complete bool) error {
	u, ok := currentUser(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/login")
	}
	taskID, err := strconv.ParseInt(c.FormValue("task_id"), 10, 64)
	if err != nil {
		return c.String(http.StatusNotFound, "Cannot Change Task")
	}
	if err := s.tasks.SetCompletion(c.Request().Context(), taskID, u.ID, complete); err != nil {
		if errors.Is(err, repository.ErrNoSuchTask) {
			return c.String(http.StatusNotFound, "Cannot Change Task")
		}
		return s.internalError(c, "set completion", err)
	}
	return c.Redirect(http.StatusSeeOther, "/tasks")
}

// internalError logs the underlying failure and sends a generic 500.
func (s *Server) internalError(c echo.Context, op string, err error) error {
	s.log.WithError(err).WithField("op", op).Error("internal error")
	return c.String(http.StatusInternalServerError, "Internal Server Error")
}
