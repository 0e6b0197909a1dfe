package typeid

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

const PrefixBoard = "board"

func New(prefix string) string {
	id := typeid.MustGenerate(prefix)
	return id.String()
}

func NewBoardID() string { return New(PrefixBoard) }

func Validate(id, expectedPrefix string) error {
	parsed, err := typeid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid typeid %q: %w", id, err)
	}
	if parsed.Prefix() != expectedPrefix {
		return fmt.Errorf("expected prefix %q but got %q in id %q", expectedPrefix, parsed.Prefix(), id)
	}
	return nil
}

// ValidateBoardID checks that id is a well-formed board id.
func ValidateBoardID(id string) error { return Validate(id, PrefixBoard) }
