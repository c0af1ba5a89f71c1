// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ordering implements the move-up/move-down logic for rows ordered
// by a display_order column (categories within a type, images within an
// album). A move is a pairwise swap of display_order values with the
// adjacent neighbor; the sequence is never renumbered, so gaps and
// duplicate values are allowed to accumulate.
package ordering

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// Direction of a move operation.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ValidDirection reports whether d is a known direction.
func ValidDirection(d Direction) bool {
	return d == Up || d == Down
}

// Sibling is one row of a sibling set, as much of it as ordering needs.
// CreatedAt breaks display_order ties so that ranking is deterministic.
type Sibling struct {
	ID        uuid.UUID
	Order     int
	CreatedAt time.Time
}

// Swap describes the two writes that realize a move: each row takes the
// other's display_order value.
type Swap struct {
	RowID         uuid.UUID
	NewOrder      int
	NeighborID    uuid.UUID
	NeighborOrder int
}

// Rank sorts siblings by (display_order, created_at) ascending, in place,
// and returns the slice for convenience.
func Rank(siblings []Sibling) []Sibling {
	sort.SliceStable(siblings, func(i, j int) bool {
		if siblings[i].Order != siblings[j].Order {
			return siblings[i].Order < siblings[j].Order
		}
		return siblings[i].CreatedAt.Before(siblings[j].CreatedAt)
	})
	return siblings
}

// Plan locates id within the ranked sibling set and returns the swap that
// moves it one step in the given direction. ok is false when the row is
// already at the edge or not present at all — a no-op, not an error.
func Plan(siblings []Sibling, id uuid.UUID, dir Direction) (Swap, bool) {
	ranked := Rank(siblings)

	idx := -1
	for i, s := range ranked {
		if s.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Swap{}, false
	}

	var neighbor int
	switch dir {
	case Up:
		neighbor = idx - 1
	case Down:
		neighbor = idx + 1
	default:
		return Swap{}, false
	}
	if neighbor < 0 || neighbor >= len(ranked) {
		return Swap{}, false
	}

	return Swap{
		RowID:         ranked[idx].ID,
		NewOrder:      ranked[neighbor].Order,
		NeighborID:    ranked[neighbor].ID,
		NeighborOrder: ranked[idx].Order,
	}, true
}
