package catalog

import (
	"errors"
	"fmt"

	"github.com/speps/go-hashids/v2"
)

var ErrInvalidID = errors.New("invalid product id")

// IDCodec translates between the serial database key and the opaque
// product id exposed on the wire.
type IDCodec struct {
	h *hashids.HashID
}

func NewIDCodec(salt string) (*IDCodec, error) {
	data := hashids.NewData()
	data.Salt = salt
	data.MinLength = 8

	h, err := hashids.NewWithData(data)
	if err != nil {
		return nil, fmt.Errorf("init hashids: %w", err)
	}
	return &IDCodec{h: h}, nil
}

func (c *IDCodec) Encode(id int64) (string, error) {
	encoded, err := c.h.EncodeInt64([]int64{id})
	if err != nil {
		return "", fmt.Errorf("encode product id: %w", err)
	}
	return encoded, nil
}

// Decode rejects anything that does not round-trip to exactly one key,
// so guessed or truncated ids surface as ErrInvalidID rather than
// resolving to an arbitrary row.
func (c *IDCodec) Decode(public string) (int64, error) {
	ids, err := c.h.DecodeInt64WithError(public)
	if err != nil || len(ids) != 1 {
		return 0, ErrInvalidID
	}
	return ids[0], nil
}
