// Package hakoniwa implements an archetype-based Entity Component System
// for game and simulation loops.
//
// Features:
// - Archetype storage keyed by ordered component signatures.
// - Growable bitmasks for fast query matching, no fixed component ceiling.
// - Name-keyed component registry with factory-based default construction.
// - Memoized archetype edges for component add/remove migration.
// - Query cache invalidated on structural change only.
// - Component lifecycle state machine (awake/start/enable/disable/destroy).
// - Type-indexed event bus and world resource store.
package hakoniwa
