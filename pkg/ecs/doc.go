// Package ecs implements an entity-component-system world.
//
// Entities are generational handles issued by a World. Components of any Go
// type attach to entities and are stored in one column per component type,
// so iterating a component type touches contiguous slots rather than chasing
// per-entity maps. Typed access goes through package-level generic functions
// (Add, Get, Each, ...) because Go methods cannot carry their own type
// parameters.
//
// Systems are plain functions run by a Schedule, which orders them by
// declared dependencies and rejects dependency cycles. Singleton values
// shared between systems live in the world's resource map.
package ecs
