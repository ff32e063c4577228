// Package forms validates and parses incoming form fields before they
// reach the stores.
package forms

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
)

// DueDateLayout is the accepted due date format, e.g. "2025-01-01 10:00:00".
const DueDateLayout = "2006-01-02 15:04:05"

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ErrValidation is returned when a form is malformed or incomplete.
var ErrValidation = errors.New("validation failed")

// RegisterForm holds the parsed fields of the registration form.
type RegisterForm struct {
	Name     string
	Email    string
	Password string
}

// LoginForm holds the parsed fields of the login form.
type LoginForm struct {
	Email    string
	Password string
}

// AddTodoForm holds the parsed fields of the add-todo form. DueDate is
// empty when absent or unparseable.
type AddTodoForm struct {
	Name    string
	DueDate string
}

// ParseRegister requires name, email and password, and checks the email
// shape.
func ParseRegister(values url.Values) (RegisterForm, error) {
	form := RegisterForm{
		Name:     strings.TrimSpace(values.Get("name")),
		Email:    strings.TrimSpace(values.Get("email")),
		Password: values.Get("password"),
	}
	if form.Name == "" || form.Email == "" || form.Password == "" {
		return RegisterForm{}, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}
	if !emailPattern.MatchString(form.Email) {
		return RegisterForm{}, fmt.Errorf("%w: invalid email address", ErrValidation)
	}
	return form, nil
}

// ParseLogin requires email and password.
func ParseLogin(values url.Values) (LoginForm, error) {
	form := LoginForm{
		Email:    strings.TrimSpace(values.Get("email")),
		Password: values.Get("password"),
	}
	if form.Email == "" || form.Password == "" {
		return LoginForm{}, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	return form, nil
}

// ParseAddTodo requires a name. A due date that does not match
// DueDateLayout is accepted as empty rather than rejected.
func ParseAddTodo(values url.Values) (AddTodoForm, error) {
	form := AddTodoForm{
		Name:    strings.TrimSpace(values.Get("name")),
		DueDate: strings.TrimSpace(values.Get("due_date")),
	}
	if form.Name == "" {
		return AddTodoForm{}, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if form.DueDate != "" {
		if _, err := time.Parse(DueDateLayout, form.DueDate); err != nil {
			form.DueDate = ""
		}
	}
	return form, nil
}
