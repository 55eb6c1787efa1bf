package storefront

import (
	"net/http"

	"github.com/Chrissankov/gymshark-ecommerce/core/cart"
	"github.com/Chrissankov/gymshark-ecommerce/core/catalog"
	"github.com/Chrissankov/gymshark-ecommerce/core/response"
)

type localeView struct {
	Lang      string   `json:"lang"`
	Dir       string   `json:"dir"`
	Supported []string `json:"supported"`
	Suggested string   `json:"suggested,omitempty"`
}

type homeView struct {
	View     string     `json:"view"`
	LoggedIn bool       `json:"logged_in"`
	Dialog   string     `json:"dialog"`
	Locale   localeView `json:"locale"`
}

type ecommerceView struct {
	View     string            `json:"view"`
	Products []catalog.Product `json:"products"`
	Cart     cartView          `json:"cart"`
	Locale   localeView        `json:"locale"`
}

type cartView struct {
	Items        []cart.Entry `json:"items"`
	Count        int          `json:"count"`
	Total        float64      `json:"total"`
	TotalDisplay string       `json:"total_display"`
}

func (a *App) localeView(r *http.Request) localeView {
	dir := "ltr"
	if a.locale.IsRTL() {
		dir = "rtl"
	}
	v := localeView{
		Lang:      a.locale.Code(),
		Dir:       dir,
		Supported: a.locale.Supported(),
	}
	if accept := r.Header.Get("Accept-Language"); accept != "" {
		v.Suggested = a.locale.Match(accept).String()
	}
	return v
}

func (a *App) cartView() cartView {
	s := a.cart.Summary()
	return cartView{
		Items:        s.Items,
		Count:        len(s.Items),
		Total:        s.Total,
		TotalDisplay: a.locale.FormatPrice(s.Total),
	}
}

// home is the unguarded landing view.
func (a *App) home(w http.ResponseWriter, r *http.Request) {
	_ = response.JSON(w, http.StatusOK, homeView{
		View:     "home",
		LoggedIn: a.session.CurrentValue(),
		Dialog:   a.flow.State().String(),
		Locale:   a.localeView(r),
	})
}

// ecommerce is the guarded shop view: catalog plus the current selection.
func (a *App) ecommerce(w http.ResponseWriter, r *http.Request) {
	products, err := a.catalog.Load(r.Context())
	if err != nil {
		a.fail(w, r, err)
		return
	}
	_ = response.JSON(w, http.StatusOK, ecommerceView{
		View:     "ecommerce",
		Products: products,
		Cart:     a.cartView(),
		Locale:   a.localeView(r),
	})
}

type sessionView struct {
	LoggedIn bool `json:"logged_in"`
}

func (a *App) getSession(w http.ResponseWriter, r *http.Request) {
	_ = response.JSON(w, http.StatusOK, sessionView{LoggedIn: a.session.CurrentValue()})
}

func (a *App) logout(w http.ResponseWriter, r *http.Request) {
	if err := a.session.Logout(r.Context()); err != nil {
		a.fail(w, r, err)
		return
	}
	_ = response.JSON(w, http.StatusOK, sessionView{LoggedIn: false})
}

type localeRequest struct {
	Lang string `json:"lang"`
}

func (a *App) getLocale(w http.ResponseWriter, r *http.Request) {
	_ = response.JSON(w, http.StatusOK, a.localeView(r))
}

func (a *App) setLocale(w http.ResponseWriter, r *http.Request) {
	var req localeRequest
	if err := response.DecodeJSON(r, &req); err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.locale.Set(r.Context(), req.Lang); err != nil {
		a.fail(w, r, err)
		return
	}
	_ = response.JSON(w, http.StatusOK, a.localeView(r))
}
