package main

import (
	"errors"
	"net/http"
	"time"

	"github.com/protomem/task-tracker/internal/auth"
	"github.com/protomem/task-tracker/internal/model"
	"github.com/protomem/task-tracker/internal/request"
	"github.com/protomem/task-tracker/internal/response"
	"github.com/protomem/task-tracker/internal/validator"
)

func (app *application) handleStatus(w http.ResponseWriter, r *http.Request) {
	if err := response.JSON(w, http.StatusOK, response.JSONObject{"status": "OK"}); err != nil {
		app.serverError(w, r, err)
	}
}

type requestRegister struct {
	Email        string     `json:"email"`
	Password     string     `json:"password"`
	Nickname     string     `json:"nickname"`
	Gender       string     `json:"gender"`
	Birthday     *time.Time `json:"birthday"`
	Relationship string     `json:"relationship"`
}

type responseAuth struct {
	User      model.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

func (app *application) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input requestRegister
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	validateEmail(&v, input.Email)
	validatePassword(&v, input.Password)
	validateNickname(&v, input.Nickname)
	validateGender(&v, input.Gender)
	validateRelationship(&v, input.Relationship)

	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	user, err := app.creds.Register(ctx, auth.RegisterParams{
		Email:        input.Email,
		Password:     input.Password,
		Nickname:     input.Nickname,
		Gender:       input.Gender,
		Birthday:     input.Birthday,
		Relationship: input.Relationship,
	})
	if err != nil {
		if errors.Is(err, model.ErrExists) {
			app.errorMessage(w, r, http.StatusConflict, err.Error(), nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	sess, err := app.sessions.Create(ctx, user.ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	resp := responseAuth{User: user, Token: sess.Token, ExpiresAt: sess.ExpiresAt}
	if err := response.JSON(w, http.StatusCreated, resp); err != nil {
		app.serverError(w, r, err)
	}
}

type requestLogin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (app *application) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var input requestLogin
	if err := request.DecodeJSONStrict(w, r, &input); err != nil {
		app.badRequest(w, r, err)
		return
	}

	var v validator.Validator
	v.CheckField(validator.NotBlank(input.Email), "email", "cannot be blank")
	v.CheckField(validator.NotBlank(input.Password), "password", "cannot be blank")

	if v.HasErrors() {
		app.failedValidation(w, r, v)
		return
	}

	user, err := app.creds.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			app.errorMessage(w, r, http.StatusUnauthorized, "invalid email or password", nil)
			return
		}

		app.serverError(w, r, err)
		return
	}

	// A fresh login replaces any existing session for the user.
	sess, err := app.sessions.Create(ctx, user.ID)
	if err != nil {
		app.serverError(w, r, err)
		return
	}

	resp := responseAuth{User: user, Token: sess.Token, ExpiresAt: sess.ExpiresAt}
	if err := response.JSON(w, http.StatusOK, resp); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// The original client sends the token as a query parameter; the
	// Authorization header works too.
	token := r.URL.Query().Get("token")
	if token == "" {
		token = bearerToken(r)
	}

	userID, err := app.sessions.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidSession) {
			app.authenticationRequired(w, r)
			return
		}

		app.serverError(w, r, err)
		return
	}

	if _, err := app.sessions.Delete(ctx, userID); err != nil {
		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, response.JSONObject{"message": "logged out"}); err != nil {
		app.serverError(w, r, err)
	}
}

func (app *application) handleValidateSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	token := r.URL.Query().Get("token")
	if token == "" {
		token = bearerToken(r)
	}

	userID, err := app.sessions.Validate(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidSession) {
			// Invalid is a result, not an error.
			if err := response.JSON(w, http.StatusOK, response.JSONObject{"valid": false}); err != nil {
				app.serverError(w, r, err)
			}
			return
		}

		app.serverError(w, r, err)
		return
	}

	if err := response.JSON(w, http.StatusOK, response.JSONObject{"valid": true, "userId": userID}); err != nil {
		app.serverError(w, r, err)
	}
}
