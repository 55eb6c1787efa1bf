package storefront

import (
	"net/http"

	"github.com/Chrissankov/gymshark-ecommerce/core/response"
)

type authView struct {
	State    string `json:"state"`
	LoggedIn bool   `json:"logged_in"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signUpRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (a *App) authView() authView {
	return authView{State: a.flow.State().String(), LoggedIn: a.session.CurrentValue()}
}

func (a *App) authState(w http.ResponseWriter, r *http.Request) {
	_ = response.JSON(w, http.StatusOK, a.authView())
}

func (a *App) authOpen(w http.ResponseWriter, r *http.Request) {
	a.transition(w, r, a.flow.Open)
}

func (a *App) authToggle(w http.ResponseWriter, r *http.Request) {
	a.transition(w, r, a.flow.ToggleMode)
}

func (a *App) authCancel(w http.ResponseWriter, r *http.Request) {
	a.transition(w, r, a.flow.Cancel)
}

func (a *App) transition(w http.ResponseWriter, r *http.Request, fn func() error) {
	if err := fn(); err != nil {
		a.fail(w, r, err)
		return
	}
	_ = response.JSON(w, http.StatusOK, a.authView())
}

func (a *App) authLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.flow.SubmitLogin(r.Context(), req.Username, req.Password); err != nil {
		a.fail(w, r, err)
		return
	}
	_ = response.JSON(w, http.StatusOK, a.authView())
}

func (a *App) authSignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.flow.SubmitSignUp(r.Context(), req.Username, req.Password, req.ConfirmPassword); err != nil {
		a.fail(w, r, err)
		return
	}
	_ = response.JSON(w, http.StatusCreated, a.authView())
}
