package container

import (
	"encoding/hex"
	"fmt"

	"github.com/0xsoniclabs/contractsim/codec"
	"github.com/0xsoniclabs/contractsim/common"
	"github.com/0xsoniclabs/contractsim/value"
)

//go:generate mockgen -source storage.go -destination storage_mock.go -package container

// Storage is the raw key/value storage of a single contract. It is
// implemented by the call context offered to contract code.
type Storage interface {
	// GetValue returns the value of key or nil if it is not set.
	GetValue(key string) []byte
	// SetValue updates the value of key; an empty value removes it.
	SetValue(key string, value []byte) error
	// Converter returns the converter used for stored values.
	Converter() *value.Converter
}

const (
	ErrNullKey         = common.ConstError("null key")
	ErrIndexOutOfRange = common.ConstError("index out of range")
	ErrEmpty           = common.ConstError("array is empty")
)

type kind string

const (
	arrayKind kind = "ArrayDB"
	dictKind  kind = "DictDB"
	varKind   kind = "VarDB"
)

// db is the common base of all containers: a storage and the identifier
// prefixing all keys of the container.
type db struct {
	storage Storage
	id      string
}

func (d db) key(k kind) string {
	return string(k) + d.id
}

func (d db) keyOf(k kind, key any) (string, error) {
	sub, err := d.subID(key)
	if err != nil {
		return "", err
	}
	return string(k) + sub, nil
}

// subID derives the identifier of the element of key. Nested containers
// use it as their identifier.
func (d db) subID(key any) (string, error) {
	norm, err := d.storage.Converter().Normalize(key)
	if err != nil {
		return "", err
	}
	if norm == nil {
		return "", ErrNullKey
	}
	data, err := codec.ToBytes(d.storage.Converter(), norm)
	if err != nil {
		return "", err
	}
	return d.id + "|" + hex.EncodeToString(data), nil
}

func (d db) put(key string, v any) error {
	norm, err := d.storage.Converter().Normalize(v)
	if err != nil {
		return err
	}
	if norm == nil {
		return d.storage.SetValue(key, nil)
	}
	data, err := codec.ToBytes(d.storage.Converter(), norm)
	if err != nil {
		return err
	}
	return d.storage.SetValue(key, data)
}

// load returns the value of key and whether it is present.
func load[T any](d db, key string) (T, bool, error) {
	var zero T
	data := d.storage.GetValue(key)
	if data == nil {
		return zero, false, nil
	}
	res, err := codec.Decode[T](d.storage.Converter(), data)
	if err != nil {
		return zero, true, fmt.Errorf("invalid value of %q: %w", key, err)
	}
	return res, true, nil
}
