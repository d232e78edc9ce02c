// Package nocopy provides an embeddable marker that makes go vet's
// copylocks check flag accidental copies of a container handle.
//
// Every container in this module is a handle: duplicating it by bitwise
// copy and operating on both copies is undefined, per the library's
// single-owner-handle model. Embedding Guard turns that rule into
// something the toolchain can catch instead of only documenting it,
// the same role the teacher's nocopy.NoCopy embed played in
// cache.Instance and store.Store.
package nocopy

// Guard is zero-size but implements sync.Locker, which is what go vet
// looks for when flagging a struct as non-copyable.
type Guard struct{}

func (*Guard) Lock()   {}
func (*Guard) Unlock() {}
