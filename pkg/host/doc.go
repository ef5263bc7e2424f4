// Package host defines the live-document capability surface the reconciler
// drives.
//
// The reconciler never creates or moves host nodes on its own. It asks a
// Document for new elements and text nodes, sets attributes and listeners on
// them, and places them through Range values. Any document model that can
// honour the Range contract below can be rendered into, such as a browser
// DOM behind syscall/js or the memhost package used in tests.
//
// # Range contract
//
// A Range is a pair of boundary points (container, offset), where offset is
// a child index inside container. Ranges are live: when a child is inserted
// into or removed from a container, every range on that document with a
// boundary after the mutation point shifts so it keeps delimiting the same
// content. DeleteContents and InsertNode take effect immediately and are
// visible through the boundary accessors on return.
package host
