package arena

import (
	"encoding/json"
	"strings"

	"golang.org/x/exp/slices"
)

// Array is a variable-length list whose length is always the length of its storage.
// The zero value is the null array.
type Array[T any] struct {
	items []T
}

// ArrayOf returns an Array holding a copy of items. Passing no items returns the null array.
// The result is not accounted to any Allocator; use the Copy functions for owned copies.
func ArrayOf[T any](items ...T) Array[T] {
	if items == nil {
		return Array[T]{}
	}
	return Array[T]{items: slices.Clone(items)}
}

// Len returns the number of elements.
func (a Array[T]) Len() int {
	return len(a.items)
}

// IsNull returns true if the array has no storage at all.
func (a Array[T]) IsNull() bool {
	return a.items == nil
}

// At returns element i. It panics if i is out of range.
func (a Array[T]) At(i int) T {
	return a.items[i]
}

// Items returns a copy of the elements.
func (a Array[T]) Items() []T {
	if a.items == nil {
		return nil
	}
	return slices.Clone(a.items)
}

// Each calls f on every element in order until f returns false.
func (a Array[T]) Each(f func(i int, v T) bool) {
	for i, v := range a.items {
		if !f(i, v) {
			return
		}
	}
}

func (a Array[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.items)
}

// UnmarshalJSON always decodes into fresh storage, so a decoded Array never shares memory with a previous value.
func (a *Array[T]) UnmarshalJSON(data []byte) error {
	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}
	a.items = items
	return nil
}

// CopyString returns an owned copy of s, accounting one block if s is not empty.
func CopyString(alloc Allocator, s string) (string, error) {
	if s == "" {
		return "", nil
	}
	if err := alloc.Alloc(1); err != nil {
		return "", err
	}
	return strings.Clone(s), nil
}

// ReleaseString frees the block held by *s, if any, and nulls it.
func ReleaseString(alloc Allocator, s *string) {
	if *s == "" {
		return
	}
	alloc.Free(1)
	*s = ""
}

// CopyArray returns an owned copy of an array of scalars, accounting one block for the storage.
func CopyArray[T any](alloc Allocator, src Array[T]) (Array[T], error) {
	if src.items == nil {
		return Array[T]{}, nil
	}
	if err := alloc.Alloc(1); err != nil {
		return Array[T]{}, err
	}
	return Array[T]{items: slices.Clone(src.items)}, nil
}

// ReleaseArray frees an array of scalars obtained from CopyArray and nulls it.
func ReleaseArray[T any](alloc Allocator, a *Array[T]) {
	if a.items == nil {
		return
	}
	alloc.Free(1)
	a.items = nil
}

// CopyArrayFunc returns an owned copy of an array whose elements themselves own storage.
// copyElem must account for what it allocates and releaseElem must free exactly that.
// If any element fails to copy, every element already copied and the storage block are released.
func CopyArrayFunc[T any](alloc Allocator, src Array[T], copyElem func(Allocator, T) (T, error), releaseElem func(Allocator, *T)) (Array[T], error) {
	if src.items == nil {
		return Array[T]{}, nil
	}
	if err := alloc.Alloc(1); err != nil {
		return Array[T]{}, err
	}
	items := make([]T, len(src.items))
	for i, v := range src.items {
		c, err := copyElem(alloc, v)
		if err != nil {
			for j := 0; j < i; j++ {
				releaseElem(alloc, &items[j])
			}
			alloc.Free(1)
			return Array[T]{}, err
		}
		items[i] = c
	}
	return Array[T]{items: items}, nil
}

// ReleaseArrayFunc frees an array obtained from CopyArrayFunc and nulls it.
func ReleaseArrayFunc[T any](alloc Allocator, a *Array[T], releaseElem func(Allocator, *T)) {
	if a.items == nil {
		return
	}
	for i := range a.items {
		releaseElem(alloc, &a.items[i])
	}
	alloc.Free(1)
	a.items = nil
}

// CopyStrings returns an owned copy of an array of strings.
func CopyStrings(alloc Allocator, src Array[string]) (Array[string], error) {
	return CopyArrayFunc(alloc, src, CopyString, ReleaseString)
}

// ReleaseStrings frees an array obtained from CopyStrings and nulls it.
func ReleaseStrings(alloc Allocator, a *Array[string]) {
	ReleaseArrayFunc(alloc, a, ReleaseString)
}

// Copier accumulates the first error of a sequence of copies so that a record copy reads as a flat list of fields.
// Once an error has occurred all further copies are skipped and return zero values.
type Copier struct {
	Alloc Allocator
	Err   error
}

func (c *Copier) String(s string) string {
	if c.Err != nil {
		return ""
	}
	out, err := CopyString(c.Alloc, s)
	c.Err = err
	return out
}

func (c *Copier) Strings(a Array[string]) Array[string] {
	if c.Err != nil {
		return Array[string]{}
	}
	out, err := CopyStrings(c.Alloc, a)
	c.Err = err
	return out
}

// CopierArray copies an array of scalars through c.
func CopierArray[T any](c *Copier, a Array[T]) Array[T] {
	if c.Err != nil {
		return Array[T]{}
	}
	out, err := CopyArray(c.Alloc, a)
	c.Err = err
	return out
}

// CopierArrayFunc copies an array of owning elements through c.
func CopierArrayFunc[T any](c *Copier, a Array[T], copyElem func(Allocator, T) (T, error), releaseElem func(Allocator, *T)) Array[T] {
	if c.Err != nil {
		return Array[T]{}
	}
	out, err := CopyArrayFunc(c.Alloc, a, copyElem, releaseElem)
	c.Err = err
	return out
}
