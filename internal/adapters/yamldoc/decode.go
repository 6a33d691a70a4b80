package yamldoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jsamuelsen/xup/internal/domain"
)

// DecodeInfo describes the YAML stream a root node was taken from.
type DecodeInfo struct {
	// Documents is the number of documents in the stream.
	Documents int
}

// Decode reads a YAML stream and returns the root node of its first
// document. Further documents are counted but otherwise ignored. An empty
// stream yields a null root.
func Decode(r io.Reader) (*Node, DecodeInfo, error) {
	var (
		info DecodeInfo
		root *Node
	)

	dec := yaml.NewDecoder(r)
	for {
		var doc yaml.Node

		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, info, fmt.Errorf("%w: %w", domain.ErrInvalidDocument, err)
		}

		info.Documents++
		if root == nil {
			if root, err = FromYAML(&doc); err != nil {
				return nil, info, err
			}
		}
	}

	if root == nil {
		root = &Node{kind: KindNull}
	}

	return root, info, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(b []byte) (*Node, DecodeInfo, error) {
	return Decode(bytes.NewReader(b))
}
