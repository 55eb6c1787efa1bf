package catalog

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Product is a sellable catalog item.
type Product struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
	Price       float64 `json:"price"`
	// Image is a URL or an inline data URI.
	Image string `json:"image"`
}

// Fields are the mutable attributes of a product.
type Fields struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Color       string  `json:"color"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// Fields returns the mutable attributes of p.
func (p Product) Fields() Fields {
	return Fields{
		Name:        p.Name,
		Description: p.Description,
		Color:       p.Color,
		Price:       p.Price,
		Image:       p.Image,
	}
}

func (p Product) with(f Fields) Product {
	p.Name = f.Name
	p.Description = f.Description
	p.Color = f.Color
	p.Price = f.Price
	p.Image = f.Image
	return p
}

// Validate checks field constraints.
func (f Fields) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&f.Description, validation.Length(0, 2000)),
		validation.Field(&f.Color, validation.Length(0, 100)),
		validation.Field(&f.Price, validation.Min(0.0)),
		validation.Field(&f.Image, validation.By(imageReference)),
	)
}

func imageReference(value any) error {
	s, _ := value.(string)
	switch {
	case s == "":
		return nil
	case strings.HasPrefix(s, "data:image/"):
		if !strings.Contains(s, ",") {
			return errors.New("must be a complete data URI")
		}
		return nil
	case strings.HasPrefix(s, "/"):
		// Site-relative asset path.
		return nil
	default:
		return is.URL.Validate(s)
	}
}
