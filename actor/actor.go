package actor

import (
	"fmt"
	"moviecatalog/errs"
	"sort"
	"strconv"
	"strings"
)

var ErrInvalidActorIDs = errs.Errorf(errs.EINVALID, "invalid actor ids")

type Actor struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
}

// MissingError lists every referenced actor id that does not exist.
// It unwraps to ErrInvalidActorIDs.
type MissingError struct {
	IDs []int
}

func NewMissingError(ids []int) *MissingError {
	sorted := append([]int(nil), ids...)
	sort.Ints(sorted)
	return &MissingError{IDs: sorted}
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidActorIDs.Message, JoinIDs(e.IDs))
}

func (e *MissingError) Unwrap() error {
	return ErrInvalidActorIDs
}

// IDs returns the ids of actors in their original order.
func IDs(actors []Actor) []int {
	ids := make([]int, 0, len(actors))
	for _, a := range actors {
		ids = append(ids, a.ID)
	}
	return ids
}

// UniqueIDs drops duplicate ids, keeping the first occurrence.
func UniqueIDs(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := make([]int, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func JoinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
