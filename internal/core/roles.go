package core

import (
	"math/rand"
	"sort"

	"github.com/google/uuid"
)

// mafiaCountFor follows the player-count rule: two mafia from nine players up,
// one below that.
func mafiaCountFor(n int) int {
	if n >= 9 {
		return 2
	}
	return 1
}

// assignRoles maps every player id to a role: the mafia slice first, then one
// detective, one nurse, and the remainder as citizens. Ids are sorted before
// shuffling so a seeded source yields a reproducible assignment regardless of
// map iteration order.
func assignRoles(ids []uuid.UUID, rng *rand.Rand) map[uuid.UUID]Role {
	sorted := make([]uuid.UUID, len(ids))
	copy(sorted, ids)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].String() < sorted[j].String() })
	rng.Shuffle(len(sorted), func(i, j int) { sorted[i], sorted[j] = sorted[j], sorted[i] })

	mafia := mafiaCountFor(len(sorted))
	roles := make(map[uuid.UUID]Role, len(sorted))
	for i, id := range sorted {
		switch {
		case i < mafia:
			roles[id] = RoleMafia
		case i == mafia:
			roles[id] = RoleDetective
		case i == mafia+1:
			roles[id] = RoleNurse
		default:
			roles[id] = RoleCitizen
		}
	}
	return roles
}
