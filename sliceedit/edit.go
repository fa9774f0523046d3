// Copyright 2023 Jesus Ruiz. All rights reserved.
// Use of this source code is governed by an Apache-2.0
// license that can be found in the LICENSE file.

// Package sliceedit queues edits over a byte slice with rsc.io/edit and
// applies them in a single pass. Offsets always refer to the original data,
// so callers can compute every edit before applying any.
package sliceedit

import (
	"bytes"

	"rsc.io/edit"
)

// A Buffer is a queue of edits to apply to a given byte slice.
type Buffer struct {
	ed  *edit.Buffer
	buf []byte
}

// NewBuffer returns a buffer of edits over data. The data must not be
// modified while the buffer is in use.
func NewBuffer(data []byte) *Buffer {
	return &Buffer{ed: edit.NewBuffer(data), buf: data}
}

// Len returns the length of the original data.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// FindAll returns the offsets of all non-overlapping instances of item in buf.
func FindAll(buf []byte, item string) []int {
	found := []int{}
	if len(item) == 0 {
		return found
	}

	offset := 0
	for {
		i := bytes.Index(buf[offset:], []byte(item))
		if i < 0 {
			return found
		}
		found = append(found, offset+i)
		offset += i + len(item)
	}
}

// Delete removes the bytes in [start, end) of the original data.
func (b *Buffer) Delete(start, end int) {
	b.ed.Delete(start, end)
}

// Replace substitutes s for the bytes in [start, end) of the original data.
func (b *Buffer) Replace(start, end int, s string) {
	b.ed.Replace(start, end, s)
}

// ReplaceAllString replaces every instance of old with new and returns the
// number of replacements queued.
func (b *Buffer) ReplaceAllString(old, new string) int {
	hits := FindAll(b.buf, old)
	for _, hit := range hits {
		b.ed.Replace(hit, hit+len(old), new)
	}
	return len(hits)
}

// Bytes returns a new slice with the queued edits applied.
func (b *Buffer) Bytes() []byte {
	return b.ed.Bytes()
}

// String returns the data with the queued edits applied.
func (b *Buffer) String() string {
	return b.ed.String()
}
