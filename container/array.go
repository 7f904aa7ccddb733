package container

import "fmt"

// ArrayDB is a list of values. Its size is kept under the key of the
// array itself and the elements under the keys of their indices.
type ArrayDB[T any] struct {
	db db
}

func NewArrayDB[T any](storage Storage, id string) *ArrayDB[T] {
	return &ArrayDB[T]{db: db{storage: storage, id: id}}
}

func (a *ArrayDB[T]) Size() (int, error) {
	res, _, err := load[int](a.db, a.db.key(arrayKind))
	return res, err
}

func (a *ArrayDB[T]) setSize(size int) error {
	return a.db.put(a.db.key(arrayKind), size)
}

func (a *ArrayDB[T]) element(index int) (string, error) {
	return a.db.keyOf(arrayKind, index)
}

// checkIndex fails unless index is within the array.
func (a *ArrayDB[T]) checkIndex(index int) error {
	size, err := a.Size()
	if err != nil {
		return err
	}
	if index < 0 || index >= size {
		return fmt.Errorf("%w: %d of %d", ErrIndexOutOfRange, index, size)
	}
	return nil
}

// Add appends a value.
func (a *ArrayDB[T]) Add(value T) error {
	size, err := a.Size()
	if err != nil {
		return err
	}
	key, err := a.element(size)
	if err != nil {
		return err
	}
	if err := a.db.put(key, value); err != nil {
		return err
	}
	return a.setSize(size + 1)
}

// Set replaces the value at index, which has to be within the array.
func (a *ArrayDB[T]) Set(index int, value T) error {
	if err := a.checkIndex(index); err != nil {
		return err
	}
	key, err := a.element(index)
	if err != nil {
		return err
	}
	return a.db.put(key, value)
}

func (a *ArrayDB[T]) Get(index int) (T, error) {
	var zero T
	if err := a.checkIndex(index); err != nil {
		return zero, err
	}
	key, err := a.element(index)
	if err != nil {
		return zero, err
	}
	res, _, err := load[T](a.db, key)
	return res, err
}

// Pop removes the last value and returns it.
func (a *ArrayDB[T]) Pop() (T, error) {
	var zero T
	size, err := a.Size()
	if err != nil {
		return zero, err
	}
	if size <= 0 {
		return zero, ErrEmpty
	}
	key, err := a.element(size - 1)
	if err != nil {
		return zero, err
	}
	res, _, err := load[T](a.db, key)
	if err != nil {
		return zero, err
	}
	if err := a.db.storage.SetValue(key, nil); err != nil {
		return zero, err
	}
	return res, a.setSize(size - 1)
}

func (a *ArrayDB[T]) RemoveLast() error {
	_, err := a.Pop()
	return err
}
