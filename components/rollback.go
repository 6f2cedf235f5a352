package components

import "github.com/yohamta/donburi"

// RollbackID is a stable entity identity. It is allocated in spawn order, which
// is identical on both peers, and survives snapshot restore. All iteration
// that can influence simulation results is ordered by it.
type RollbackID uint32

var Rollback = donburi.NewComponentType[RollbackID]()

// Checksum is recomputed every frame from the entity's rollback-relevant fields.
var Checksum = donburi.NewComponentType[uint16]()
