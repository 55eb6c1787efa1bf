package storefront

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Chrissankov/gymshark-ecommerce/core/catalog"
	"github.com/Chrissankov/gymshark-ecommerce/core/imageref"
	"github.com/Chrissankov/gymshark-ecommerce/core/response"
	"github.com/Chrissankov/gymshark-ecommerce/core/sanitizer"
)

// imageField is the multipart field carrying a product image.
const imageField = "image"

type imageView struct {
	Image   string `json:"image"`
	Pending bool   `json:"pending"`
}

type productInput struct {
	Name        string  `json:"name" sanitize:"no_control,strip_html,single_line"`
	Description string  `json:"description" sanitize:"no_control,strip_html,trim"`
	Color       string  `json:"color" sanitize:"no_control,single_line"`
	Price       float64 `json:"price"`
	Image       string  `json:"image" sanitize:"trim"`
}

// decodeFields reads a product body and normalizes its text fields.
func decodeFields(r *http.Request) (catalog.Fields, error) {
	var in productInput
	if err := response.DecodeJSON(r, &in); err != nil {
		return catalog.Fields{}, err
	}
	if err := sanitizer.SanitizeStruct(&in); err != nil {
		return catalog.Fields{}, err
	}
	return catalog.Fields(in), nil
}

func productID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, response.ErrBadRequest.WithMessage("invalid product id")
	}
	return id, nil
}

// product loads the product named by the {id} route parameter.
func (a *App) product(r *http.Request) (catalog.Product, error) {
	id, err := productID(r)
	if err != nil {
		return catalog.Product{}, err
	}
	return a.catalog.Get(r.Context(), id)
}

func (a *App) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := a.catalog.Filter(r.Context(), r.URL.Query().Get("filter"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	_ = response.JSON(w, http.StatusOK, products)
}

func (a *App) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := a.product(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	_ = response.JSON(w, http.StatusOK, p)
}

func (a *App) createProduct(w http.ResponseWriter, r *http.Request) {
	f, err := decodeFields(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	p, err := a.catalog.Create(r.Context(), f)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	_ = response.JSON(w, http.StatusCreated, p)
}

func (a *App) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	f, err := decodeFields(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	p, err := a.catalog.Update(r.Context(), id, f)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	_ = response.JSON(w, http.StatusOK, p)
}

// deleteProduct succeeds for unknown ids as well. Cart entries are kept until
// an explicit reconcile.
func (a *App) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := productID(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	if err := a.catalog.Delete(r.Context(), id); err != nil {
		a.fail(w, r, err)
		return
	}
	response.NoContent(w)
}

func (a *App) getImage(w http.ResponseWriter, r *http.Request) {
	p, err := a.product(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}
	view := imageView{Image: p.Image}
	if s, ok := a.lookupSlot(p.ID); ok {
		view.Pending = s.Pending()
	}
	_ = response.JSON(w, http.StatusOK, view)
}

// uploadImage starts encoding the uploaded file and answers 202 with the
// image still in place. With ?wait=true it blocks until the upload resolves.
// A newer upload for the same product always wins.
func (a *App) uploadImage(w http.ResponseWriter, r *http.Request) {
	p, err := a.product(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	upload, err := readUpload(r)
	if err != nil {
		a.fail(w, r, err)
		return
	}

	slot := a.slot(p)
	// The encode outlives the request unless the caller waits for it.
	future := slot.Select(context.WithoutCancel(r.Context()), upload)

	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); !wait {
		_ = response.JSON(w, http.StatusAccepted, imageView{Image: p.Image, Pending: true})
		return
	}

	ref, err := future.Await()
	if err != nil {
		a.fail(w, r, err)
		return
	}
	_ = response.JSON(w, http.StatusOK, imageView{Image: ref, Pending: slot.Pending()})
}

func readUpload(r *http.Request) (imageref.Upload, error) {
	file, header, err := r.FormFile(imageField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return imageref.Upload{}, err
		}
		return imageref.Upload{}, response.ErrBadRequest.WithMessage("multipart field \"image\" is required").WithError(err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return imageref.Upload{}, err
	}
	return imageref.Upload{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
