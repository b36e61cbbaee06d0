package catalog

import (
	"strings"
)

// Direction orders a sort strategy.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// SortStrategy binds a sort key to a comparator. A nil Compare keeps source order.
type SortStrategy[T any] struct {
	Key     string
	Label   string
	Compare func(a, b T) int
}

// Preserve declares a strategy that keeps records in source order.
func Preserve[T any](key, label string) SortStrategy[T] {
	return SortStrategy[T]{Key: key, Label: label}
}

// ByNumber orders records by a numeric-like string field run through norm.
func ByNumber[T any](key, label string, field func(T) string, norm Normalizer, dir Direction) SortStrategy[T] {
	if norm == nil {
		norm = NumericLike
	}
	return ByScore(key, label, func(rec T) float64 { return norm(field(rec)) }, dir)
}

// ByScore orders records by a numeric field.
func ByScore[T any](key, label string, score func(T) float64, dir Direction) SortStrategy[T] {
	return SortStrategy[T]{
		Key:   key,
		Label: label,
		Compare: func(a, b T) int {
			return directed(compareFloat(score(a), score(b)), dir)
		},
	}
}

// ByText orders records lexically by a string field, ignoring case.
func ByText[T any](key, label string, field func(T) string, dir Direction) SortStrategy[T] {
	return SortStrategy[T]{
		Key:   key,
		Label: label,
		Compare: func(a, b T) int {
			return directed(strings.Compare(strings.ToLower(field(a)), strings.ToLower(field(b))), dir)
		},
	}
}

// ByFlag puts records where flag is true first.
func ByFlag[T any](key, label string, flag func(T) bool) SortStrategy[T] {
	return ByScore(key, label, func(rec T) float64 {
		if flag(rec) {
			return 1
		}
		return 0
	}, Descending)
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func directed(c int, dir Direction) int {
	if dir == Descending {
		return -c
	}
	return c
}
