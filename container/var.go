package container

// VarDB holds a single value.
type VarDB[T any] struct {
	db db
}

func NewVarDB[T any](storage Storage, id string) *VarDB[T] {
	return &VarDB[T]{db: db{storage: storage, id: id}}
}

// Get returns the value or the zero value of T if it is not set.
func (v *VarDB[T]) Get() (T, error) {
	res, _, err := load[T](v.db, v.db.key(varKind))
	return res, err
}

// GetOrDefault returns the value or def if it is not set.
func (v *VarDB[T]) GetOrDefault(def T) (T, error) {
	res, found, err := load[T](v.db, v.db.key(varKind))
	if err != nil || !found {
		return def, err
	}
	return res, nil
}

func (v *VarDB[T]) Set(value T) error {
	return v.db.put(v.db.key(varKind), value)
}

// Remove clears the value.
func (v *VarDB[T]) Remove() error {
	return v.db.storage.SetValue(v.db.key(varKind), nil)
}
