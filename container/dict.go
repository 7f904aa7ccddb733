package container

// DictDB maps keys to values. Keys are identified by their storage byte
// form, so keys of different types with equal byte forms are the same key.
type DictDB[K, V any] struct {
	db db
}

func NewDictDB[K, V any](storage Storage, id string) *DictDB[K, V] {
	return &DictDB[K, V]{db: db{storage: storage, id: id}}
}

// Get returns the value of key or the zero value of V if it is not set.
func (d *DictDB[K, V]) Get(key K) (V, error) {
	res, _, err := d.get(key)
	return res, err
}

// GetOrDefault returns the value of key or def if it is not set.
func (d *DictDB[K, V]) GetOrDefault(key K, def V) (V, error) {
	res, found, err := d.get(key)
	if err != nil || !found {
		return def, err
	}
	return res, nil
}

func (d *DictDB[K, V]) get(key K) (V, bool, error) {
	var zero V
	storageKey, err := d.db.keyOf(dictKind, key)
	if err != nil {
		return zero, false, err
	}
	return load[V](d.db, storageKey)
}

func (d *DictDB[K, V]) Set(key K, value V) error {
	storageKey, err := d.db.keyOf(dictKind, key)
	if err != nil {
		return err
	}
	return d.db.put(storageKey, value)
}

func (d *DictDB[K, V]) Remove(key K) error {
	storageKey, err := d.db.keyOf(dictKind, key)
	if err != nil {
		return err
	}
	return d.db.storage.SetValue(storageKey, nil)
}
