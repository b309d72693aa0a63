package store

import (
	"bytes"

	"github.com/google/btree"
)

// ascendItems collects a snapshot of the cached operations within
// [start, end) in ascending order. A snapshot sidesteps the btree
// restriction that the tree must not change during iteration.
func ascendItems(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	insert := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}

	if start == nil && end == nil {
		bt.Ascend(insert)
	} else if start == nil { // end != nil
		bt.AscendLessThan(bkey{end}, insert)
	} else if end == nil { // start != nil
		bt.AscendGreaterOrEqual(bkey{start}, insert)
	} else { // both != nil
		bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return items
}

// descendItems collects a snapshot of the cached operations within
// [start, end) in descending order.
func descendItems(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	insert := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}

	if start == nil && end == nil {
		bt.Descend(insert)
	} else if start == nil { // end != nil
		bt.DescendLessOrEqual(bkeyLess{end}, insert)
	} else if end == nil { // start != nil
		bt.DescendGreaterThan(bkeyLess{start}, insert)
	} else { // both != nil
		bt.DescendRange(bkeyLess{end}, bkeyLess{start}, insert)
	}
	return items
}

// itemIter joins the cached operations with the results of the
// backing store iterator, taking into consideration overwrites and
// deletes. Both inputs must be ordered the same direction.
type itemIter struct {
	items   []btree.Item
	parent  Iterator
	reverse bool

	key   []byte
	value []byte
	valid bool
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(items []btree.Item, parent Iterator, reverse bool) *itemIter {
	iter := &itemIter{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
	iter.advance()
	return iter
}

// Valid implements Iterator and returns true iff it can be read
func (i *itemIter) Valid() bool {
	return i.valid
}

// Next moves the iterator to the next sequential key.
//
// If Valid returns false, this method will panic.
func (i *itemIter) Next() {
	i.assertValid()
	i.advance()
}

// Key returns the key of the cursor.
func (i *itemIter) Key() []byte {
	i.assertValid()
	return i.key
}

// Value returns the value of the cursor.
func (i *itemIter) Value() []byte {
	i.assertValid()
	return i.value
}

// Close releases the Iterator.
func (i *itemIter) Close() {
	i.items = nil
	i.valid = false
	i.parent.Close()
}

func (i *itemIter) assertValid() {
	if !i.valid {
		panic("read after end of iterator")
	}
}

// advance moves the cursor to the next visible entry. A cached set
// shadows the backing entry under the same key, a cached delete hides
// it entirely.
func (i *itemIter) advance() {
	i.valid = false

	for {
		var cached btree.Item
		if len(i.items) > 0 {
			cached = i.items[0]
		}
		parentValid := i.parent.Valid()

		if cached == nil && !parentValid {
			return
		}

		if cached != nil {
			useCached := true
			if parentValid {
				cmp := bytes.Compare(cached.(keyer).Key(), i.parent.Key())
				if i.reverse {
					cmp = -cmp
				}
				switch {
				case cmp > 0:
					useCached = false
				case cmp == 0:
					// cached operation shadows the backing entry
					i.parent.Next()
				}
			}
			if useCached {
				i.items = i.items[1:]
				if set, ok := cached.(setItem); ok {
					i.key = set.Key()
					i.value = set.value
					i.valid = true
					return
				}
				// a delete: hide the entry and keep looking
				continue
			}
		}

		i.key = i.parent.Key()
		i.value = i.parent.Value()
		i.parent.Next()
		i.valid = true
		return
	}
}
