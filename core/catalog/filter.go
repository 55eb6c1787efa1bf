package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Compile checks expression against the product environment.
// Available variables: id, name, description, color, price, image.
func Compile(expression string) (*vm.Program, error) {
	program, err := expr.Compile(expression, expr.Env(filterEnv(Product{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFilter, err)
	}
	return program, nil
}

// Filter returns the products for which expression evaluates to true.
// An empty expression returns the whole catalog.
func (s *Store) Filter(ctx context.Context, expression string) ([]Product, error) {
	products, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(expression) == "" {
		return products, nil
	}

	program, err := Compile(expression)
	if err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(products))
	for _, p := range products {
		res, err := expr.Run(program, filterEnv(p))
		if err != nil {
			return nil, errors.Join(ErrInvalidFilter, err)
		}
		if ok, _ := res.(bool); ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func filterEnv(p Product) map[string]any {
	return map[string]any{
		"id":          p.ID,
		"name":        p.Name,
		"description": p.Description,
		"color":       p.Color,
		"price":       p.Price,
		"image":       p.Image,
	}
}
