// Package pqueue provides an indexed min-priority queue whose elements are
// also linked in insertion order.
//
// Elements live in an arena of slots addressed by ID; removed slots are
// recycled through a free list. Priority changes are applied by pushing a
// fresh heap entry and lazily discarding the stale one, and the heap is
// rebuilt once stale entries greatly outnumber live ones. Equal priorities
// pop oldest first.
package pqueue
