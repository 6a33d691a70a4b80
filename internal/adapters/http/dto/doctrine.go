package dto

import "github.com/jsamuelsen/xup/internal/domain"

// DoctrineURI binds the :name path parameter.
type DoctrineURI struct {
	Name string `uri:"name" json:"name" validate:"required,max=256"`
}

// NamesResponse lists doctrine names.
type NamesResponse struct {
	Names []string `json:"names"`
}

// CategoryResponse is one category of a doctrine.
type CategoryResponse struct {
	Ships []string `json:"ships"`
}

// DoctrineResponse is a doctrine with its categories in document order.
type DoctrineResponse struct {
	Name       string             `json:"name"`
	Categories []CategoryResponse `json:"categories"`
	Ships      []string           `json:"ships"`
}

// XUpResponse carries the x-up line of a doctrine.
type XUpResponse struct {
	Name string `json:"name"`
	XUp  string `json:"xup"`
}

// NewDoctrineResponse converts a domain doctrine. Empty lists encode as []
// rather than null.
func NewDoctrineResponse(d domain.Doctrine) DoctrineResponse {
	categories := make([]CategoryResponse, 0, len(d.Categories))
	for _, c := range d.Categories {
		ships := make([]string, 0, len(c.Ships))
		ships = append(ships, c.Ships...)
		categories = append(categories, CategoryResponse{Ships: ships})
	}

	return DoctrineResponse{
		Name:       d.Name,
		Categories: categories,
		Ships:      d.Ships(),
	}
}
