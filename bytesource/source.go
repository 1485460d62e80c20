// Package bytesource adapts byte-bearing external resources ([]byte,
// io.ReaderAt, and, in the domain stack, a traced process's virtual
// memory) into the cursor-scoped callback contract the rest of this
// module's core is built on.
package bytesource

import "github.com/pattyshack/bparse/cursor"

// Source produces a Cursor over its whole backing region for the duration
// of body's call. The cursor must not be retained past body's return.
type Source interface {
	WithCursor(body func(*cursor.Cursor) error) error
}

// RangedSource is a Source that can additionally start positioned at a
// sub-range and report back where the cursor ended up.
type RangedSource interface {
	Source
	WithCursorRange(r *cursor.Range, body func(*cursor.Cursor) error) error
}

// FromBytes returns a Source backed directly by content. content must not
// be mutated for as long as the Source is used.
func FromBytes(content []byte) Source {
	return bytesSource{content: content}
}

type bytesSource struct {
	content []byte
}

func (s bytesSource) WithCursor(body func(*cursor.Cursor) error) error {
	c := cursor.NewCursor(s.content)
	return body(c)
}

func (s bytesSource) WithCursorRange(r *cursor.Range, body func(*cursor.Cursor) error) error {
	c := cursor.NewCursor(s.content)
	if err := c.SeekToRange(*r); err != nil {
		return err
	}

	if err := body(c); err != nil {
		return err
	}

	*r = c.CurrentRange()
	return nil
}

// ParseFromBytes below is the generic decode-and-return helper; Parseable
// documents the contract it implements.
type Parseable[T any] func(src Source, decode func(*cursor.Cursor) (T, error)) (T, error)

// ParseFromBytes runs decode over src's cursor and returns its result.
func ParseFromBytes[T any](src Source, decode func(*cursor.Cursor) (T, error)) (T, error) {
	var result T
	err := src.WithCursor(func(c *cursor.Cursor) error {
		v, err := decode(c)
		if err != nil {
			return err
		}
		result = v
		return nil
	})
	return result, err
}
