package yamldoc

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/xup/internal/domain"
)

// mustDecode parses src and returns the root of its first document.
func mustDecode(t *testing.T, src string) *Node {
	t.Helper()

	node, _, err := DecodeBytes([]byte(src))
	require.NoError(t, err)

	return node
}

func requireParseError(t *testing.T, err error, kind error, path string) *domain.ParseError {
	t.Helper()

	require.Error(t, err)
	require.ErrorIs(t, err, kind)
	require.ErrorIs(t, err, domain.ErrInvalidDocument)

	var parseErr *domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, path, parseErr.Path)

	return parseErr
}

func TestParseManyCategories(t *testing.T) {
	node := mustDecode(t, `
- category:
    [
    Blackbird,
    Celestis,
    Maller
    ]
`)

	categories, err := ParseManyCategories(node)

	require.NoError(t, err)
	assert.Equal(t, []domain.Category{
		{Ships: []string{"Blackbird", "Celestis", "Maller"}},
	}, categories)
}

func TestParseManyCategories_EmptyCategory(t *testing.T) {
	node := mustDecode(t, `
- category:
    [
    # empty
    ]
- category:
    [Blackbird]
`)

	categories, err := ParseManyCategories(node)

	require.NoError(t, err)
	assert.Equal(t, []domain.Category{
		{Ships: []string{}},
		{Ships: []string{"Blackbird"}},
	}, categories)
}

func TestParseManyDoctrines(t *testing.T) {
	node := mustDecode(t, `
- name: Armor Battleships
  categories:
  - category:
      [
      Blackbird,
      Celestis,
      Maller
      ]
`)

	doctrines, err := ParseManyDoctrines(node)

	require.NoError(t, err)
	assert.Equal(t, []domain.Doctrine{
		{
			Name: "Armor Battleships",
			Categories: []domain.Category{
				{Ships: []string{"Blackbird", "Celestis", "Maller"}},
			},
		},
	}, doctrines)
}

func TestParseManyDoctrines_WithAnchors(t *testing.T) {
	node := mustDecode(t, `
- name: Armor Battleships
  categories:
  - category: &ewar
      [
      Blackbird,
      Celestis,
      Maller
      ]
- name: Armor Confessors
  categories:
  - category: *ewar
`)

	doctrines, err := ParseManyDoctrines(node)

	require.NoError(t, err)
	ewar := []string{"Blackbird", "Celestis", "Maller"}
	assert.Equal(t, []domain.Doctrine{
		{Name: "Armor Battleships", Categories: []domain.Category{{Ships: ewar}}},
		{Name: "Armor Confessors", Categories: []domain.Category{{Ships: ewar}}},
	}, doctrines)

	// Each alias use is an independent copy.
	doctrines[0].Categories[0].Ships[0] = "Arazu"
	assert.Equal(t, "Blackbird", doctrines[1].Categories[0].Ships[0])
}

func TestParseManyDoctrines_PreservesLengthAndOrder(t *testing.T) {
	for _, n := range []int{0, 1, 7, 25} {
		t.Run(fmt.Sprintf("%d doctrines", n), func(t *testing.T) {
			var b strings.Builder
			b.WriteString("[]\n")
			if n > 0 {
				b.Reset()
				for i := range n {
					fmt.Fprintf(&b, "- name: Doctrine %02d\n  categories:\n  - category: [Ship %d]\n", i, i)
				}
			}

			doctrines, err := ParseManyDoctrines(mustDecode(t, b.String()))

			require.NoError(t, err)
			require.Len(t, doctrines, n)
			for i, d := range doctrines {
				assert.Equal(t, fmt.Sprintf("Doctrine %02d", i), d.Name)
				assert.Equal(t, []string{fmt.Sprintf("Ship %d", i)}, d.Ships())
			}
		})
	}
}

func TestParseManyDoctrines_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  error
		path  string
		field string
	}{
		{
			name:  "empty document",
			input: "",
			kind:  domain.ErrNotASequence,
			path:  "doctrines",
		},
		{
			name:  "root is a mapping",
			input: "name: Armor Battleships\ncategories: []\n",
			kind:  domain.ErrNotASequence,
			path:  "doctrines",
		},
		{
			name:  "root is a scalar",
			input: "doctrines\n",
			kind:  domain.ErrNotASequence,
			path:  "doctrines",
		},
		{
			name:  "entry is not a mapping",
			input: "- Armor Battleships\n",
			kind:  domain.ErrNotAMapping,
			path:  "doctrines[0]",
		},
		{
			name:  "missing name",
			input: "- categories:\n  - category: [Rifter]\n",
			kind:  domain.ErrMissingField,
			path:  "doctrines[0]",
			field: "name",
		},
		{
			name:  "missing name in a later entry",
			input: "- name: Fine\n  categories: []\n- categories: []\n",
			kind:  domain.ErrMissingField,
			path:  "doctrines[1]",
			field: "name",
		},
		{
			name:  "name is a sequence",
			input: "- name: [Armor]\n  categories: []\n",
			kind:  domain.ErrWrongType,
			path:  "doctrines[0].name",
			field: "name",
		},
		{
			name:  "name is a number",
			input: "- name: 42\n  categories: []\n",
			kind:  domain.ErrWrongType,
			path:  "doctrines[0].name",
			field: "name",
		},
		{
			name:  "name is null",
			input: "- name:\n  categories: []\n",
			kind:  domain.ErrWrongType,
			path:  "doctrines[0].name",
			field: "name",
		},
		{
			name:  "name is empty",
			input: "- name: \"\"\n  categories: []\n",
			kind:  domain.ErrWrongType,
			path:  "doctrines[0].name",
			field: "name",
		},
		{
			name:  "missing categories",
			input: "- name: Armor Battleships\n",
			kind:  domain.ErrMissingField,
			path:  "doctrines[0]",
			field: "categories",
		},
		{
			name:  "categories is a scalar",
			input: "- name: Armor Battleships\n  categories: Blackbird\n",
			kind:  domain.ErrNotASequence,
			path:  "doctrines[0].categories",
		},
		{
			name:  "categories is null",
			input: "- name: Armor Battleships\n  categories:\n",
			kind:  domain.ErrNotASequence,
			path:  "doctrines[0].categories",
		},
		{
			name:  "category entry is not a mapping",
			input: "- name: Armor Battleships\n  categories:\n  - [Blackbird]\n",
			kind:  domain.ErrNotAMapping,
			path:  "doctrines[0].categories[0]",
		},
		{
			name:  "missing category",
			input: "- name: Armor Battleships\n  categories:\n  - category: [Rifter]\n  - ships: [Blackbird]\n",
			kind:  domain.ErrMissingField,
			path:  "doctrines[0].categories[1]",
			field: "category",
		},
		{
			name:  "ship is a sequence",
			input: "- name: Armor Battleships\n  categories:\n  - category: [Rifter, [Blackbird]]\n",
			kind:  domain.ErrWrongType,
			path:  "doctrines[0].categories[0].category[1]",
			field: "category",
		},
		{
			name:  "ship is a number",
			input: "- name: Armor Battleships\n  categories:\n  - category: [1337]\n",
			kind:  domain.ErrWrongType,
			path:  "doctrines[0].categories[0].category[0]",
			field: "category",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doctrines, err := ParseManyDoctrines(mustDecode(t, tt.input))

			assert.Nil(t, doctrines)
			parseErr := requireParseError(t, err, tt.kind, tt.path)
			assert.Equal(t, tt.field, parseErr.Field)
		})
	}
}

func TestParseManyDoctrines_ErrorLine(t *testing.T) {
	node := mustDecode(t, "- name: Armor Battleships\n  categories:\n  - ships: [Rifter]\n")

	_, err := ParseManyDoctrines(node)

	parseErr := requireParseError(t, err, domain.ErrMissingField, "doctrines[0].categories[0]")
	assert.Equal(t, 3, parseErr.Line)
	assert.Equal(t, `doctrines[0].categories[0] (line 3): missing field "category"`, err.Error())
}

func TestParseOneDoctrine_QuotedNumberIsText(t *testing.T) {
	node := mustDecode(t, "name: \"1337\"\ncategories:\n- category: [\"42\"]\n")

	d, err := ParseOneDoctrine(node)

	require.NoError(t, err)
	assert.Equal(t, "1337", d.Name)
	assert.Equal(t, []string{"42"}, d.Ships())
}

func TestParseOneDoctrine_ConsumesKnownKeys(t *testing.T) {
	node := mustDecode(t, "name: Armor Battleships\nfc: Someone\ncategories: []\ntier: 2\n")

	d, err := ParseOneDoctrine(node)

	require.NoError(t, err)
	assert.Equal(t, domain.Doctrine{Name: "Armor Battleships", Categories: []domain.Category{}}, d)

	m, ok := node.AsMapping()
	require.True(t, ok)
	assert.Equal(t, []string{"fc", "tier"}, m.Keys())
}

func TestParseOneDoctrine_NotAMapping(t *testing.T) {
	_, err := ParseOneDoctrine(mustDecode(t, "[a, b]\n"))

	requireParseError(t, err, domain.ErrNotAMapping, "doctrine")
}

func TestParseOneCategory(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected domain.Category
	}{
		{
			name:     "flow list",
			input:    "category: [Blackbird, Celestis]\n",
			expected: domain.Category{Ships: []string{"Blackbird", "Celestis"}},
		},
		{
			name:     "block list",
			input:    "category:\n- Blackbird\n- Celestis\n",
			expected: domain.Category{Ships: []string{"Blackbird", "Celestis"}},
		},
		{
			name:     "null value",
			input:    "category:\n",
			expected: domain.Category{Ships: []string{}},
		},
		{
			name:     "scalar value",
			input:    "category: Blackbird\n",
			expected: domain.Category{Ships: []string{}},
		},
		{
			name:     "extra keys ignored",
			input:    "label: ewar\ncategory: [Blackbird]\n",
			expected: domain.Category{Ships: []string{"Blackbird"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseOneCategory(mustDecode(t, tt.input))

			require.NoError(t, err)
			assert.Equal(t, tt.expected, c)
		})
	}
}

func TestParseOneCategory_Missing(t *testing.T) {
	_, err := ParseOneCategory(mustDecode(t, "ships: [Blackbird]\n"))

	parseErr := requireParseError(t, err, domain.ErrMissingField, "category")
	assert.Equal(t, "category", parseErr.Field)
}

func TestParseShipList(t *testing.T) {
	ships, err := ParseShipList(mustDecode(t, "[Blackbird, 'Celestis', \"Maller\"]\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Blackbird", "Celestis", "Maller"}, ships)

	ships, err = ParseShipList(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, ships)

	_, err = ParseShipList(mustDecode(t, "[Blackbird, true]\n"))
	requireParseError(t, err, domain.ErrWrongType, "category[1]")
}
