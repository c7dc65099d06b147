package fp

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/tools/container/intsets"
)

// IntList is a list of integers.
type IntList []int

// String returns a comma-separated string of list elements in lowercase
// hex.
func (a IntList) String() string {
	var buf bytes.Buffer
	for idx, elem := range a {
		if idx != 0 {
			buf.WriteString(",")
		}
		fmt.Fprintf(&buf, "%x", elem)
	}
	return buf.String()
}

// Set returns a set representation of the list.
func (a IntList) Set() *IntSet {
	var set IntSet
	for _, elem := range a {
		set.Insert(elem)
	}
	return &set
}

// IntSet is a set of integers. It is not safe for concurrent use; the
// signature database is immutable once loaded, so readers never race a
// writer.
type IntSet struct {
	intsets.Sparse
}

// List returns a list representation of the set in sorted order.
func (a *IntSet) List() IntList {
	list := IntList(a.AppendTo([]int{}))
	sort.Ints(list)
	return list
}

// Inter returns the set intersection (a & b).
func (a *IntSet) Inter(b *IntSet) *IntSet {
	var inter IntSet
	inter.Intersection(&a.Sparse, &b.Sparse)
	return &inter
}

// StringList is a list of strings.
type StringList []string

// NewStringList returns a string list parsed from a string.
func NewStringList(s string) (StringList, error) {
	var a StringList
	err := a.Parse(s)
	return a, err
}

// Parse a comma-separated string list.
func (a *StringList) Parse(s string) error {
	*a = nil
	if len(s) > 0 {
		*a = strings.Split(s, ",")
	}
	return nil
}

// String returns a comma-separated string of list elements.
func (a StringList) String() string {
	return strings.Join(a, ",")
}
