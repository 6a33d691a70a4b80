package yamldoc

import (
	"fmt"

	"github.com/jsamuelsen/xup/internal/domain"
)

// Document keys.
const (
	keyName       = "name"
	keyCategories = "categories"
	keyCategory   = "category"
)

// Default paths used in errors when a Parse function is called on a subtree.
const (
	pathDoctrines  = "doctrines"
	pathDoctrine   = "doctrine"
	pathCategories = "categories"
	pathCategory   = "category"
)

// ParseManyDoctrines parses a sequence of doctrine mappings. The first
// malformed entry fails the whole call; no partial result is returned.
func ParseManyDoctrines(node *Node) ([]domain.Doctrine, error) {
	return parseManyDoctrines(node, pathDoctrines)
}

// ParseOneDoctrine parses a single doctrine mapping. The name and
// categories keys are consumed from the mapping; other keys are ignored.
func ParseOneDoctrine(node *Node) (domain.Doctrine, error) {
	return parseOneDoctrine(node, pathDoctrine)
}

// ParseManyCategories parses a sequence of category mappings.
func ParseManyCategories(node *Node) ([]domain.Category, error) {
	return parseManyCategories(node, pathCategories)
}

// ParseOneCategory parses a single category mapping.
func ParseOneCategory(node *Node) (domain.Category, error) {
	return parseOneCategory(node, pathCategory)
}

// ParseShipList reads the ship names of a category. A missing or
// non-sequence value yields no ships; a non-text element is an error.
func ParseShipList(node *Node) ([]string, error) {
	return parseShipList(node, pathCategory)
}

func parseManyDoctrines(node *Node, path string) ([]domain.Doctrine, error) {
	items, ok := node.AsSequence()
	if !ok {
		return nil, domain.NewNotASequenceError(path, node.Line())
	}

	doctrines := make([]domain.Doctrine, 0, len(items))
	for i, item := range items {
		d, err := parseOneDoctrine(item, index(path, i))
		if err != nil {
			return nil, err
		}
		doctrines = append(doctrines, d)
	}

	return doctrines, nil
}

func parseOneDoctrine(node *Node, path string) (domain.Doctrine, error) {
	m, ok := node.AsMapping()
	if !ok {
		return domain.Doctrine{}, domain.NewNotAMappingError(path, node.Line())
	}

	nameNode, ok := m.Take(keyName)
	if !ok {
		return domain.Doctrine{}, domain.NewMissingFieldError(path, node.Line(), keyName)
	}

	name, ok := nameNode.AsText()
	if !ok || name == "" {
		return domain.Doctrine{}, domain.NewWrongTypeError(field(path, keyName), lineOr(nameNode, node), keyName, "non-empty string")
	}

	categoriesNode, ok := m.Take(keyCategories)
	if !ok {
		return domain.Doctrine{}, domain.NewMissingFieldError(path, node.Line(), keyCategories)
	}

	categories, err := parseManyCategories(categoriesNode, field(path, keyCategories))
	if err != nil {
		return domain.Doctrine{}, err
	}

	return domain.Doctrine{Name: name, Categories: categories}, nil
}

func parseManyCategories(node *Node, path string) ([]domain.Category, error) {
	items, ok := node.AsSequence()
	if !ok {
		return nil, domain.NewNotASequenceError(path, node.Line())
	}

	categories := make([]domain.Category, 0, len(items))
	for i, item := range items {
		c, err := parseOneCategory(item, index(path, i))
		if err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, nil
}

func parseOneCategory(node *Node, path string) (domain.Category, error) {
	m, ok := node.AsMapping()
	if !ok {
		return domain.Category{}, domain.NewNotAMappingError(path, node.Line())
	}

	shipsNode, ok := m.Take(keyCategory)
	if !ok {
		return domain.Category{}, domain.NewMissingFieldError(path, node.Line(), keyCategory)
	}

	ships, err := parseShipList(shipsNode, field(path, keyCategory))
	if err != nil {
		return domain.Category{}, err
	}

	return domain.Category{Ships: ships}, nil
}

func parseShipList(node *Node, path string) ([]string, error) {
	items, ok := node.AsSequence()
	if !ok {
		return []string{}, nil
	}

	ships := make([]string, 0, len(items))
	for i, item := range items {
		ship, ok := item.AsText()
		if !ok {
			return nil, domain.NewWrongTypeError(index(path, i), item.Line(), keyCategory, "string")
		}
		ships = append(ships, ship)
	}

	return ships, nil
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func field(path, key string) string {
	return path + "." + key
}

// lineOr returns the line of n, falling back to the line of parent.
func lineOr(n, parent *Node) int {
	if l := n.Line(); l > 0 {
		return l
	}
	return parent.Line()
}
