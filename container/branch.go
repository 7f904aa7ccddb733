package container

// BranchDB maps keys to nested containers. The nested container of a key
// is identified by the branch identifier and the key.
type BranchDB[K, D any] struct {
	db   db
	leaf func(Storage, string) D
}

// NewBranchDB creates a branch whose leaves are created by leaf, e.g.
//
//	NewBranchDB[common.Address](s, "allowance", NewDictDB[common.Address, *big.Int])
func NewBranchDB[K, D any](storage Storage, id string, leaf func(Storage, string) D) *BranchDB[K, D] {
	return &BranchDB[K, D]{db: db{storage: storage, id: id}, leaf: leaf}
}

// At returns the nested container of key.
func (b *BranchDB[K, D]) At(key K) (D, error) {
	id, err := b.db.subID(key)
	if err != nil {
		var zero D
		return zero, err
	}
	return b.leaf(b.db.storage, id), nil
}
