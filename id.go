package bumpgo

import "github.com/google/uuid"

// ID is an opaque, comparable item handle backed by a random UUID. The
// engine never mints item identities itself — every item is supplied by
// the caller — so ID is optional sugar for callers with no natural key of
// their own; World[ID] is one valid instantiation among many, never the
// only one.
type ID uuid.UUID

// NewID mints a fresh random ID suitable for use as a World's Item type.
func NewID() ID {
	return ID(uuid.New())
}

func (id ID) String() string {
	return uuid.UUID(id).String()
}
