package types

import (
	"encoding/json"
	"fmt"

	"cosmossdk.io/collections/codec"
	"cosmossdk.io/math"
)

var (
	// AddressKey encodes Address keys as their raw fixed-size bytes.
	AddressKey codec.KeyCodec[Address] = addressKey{}

	// IntValue encodes math.Int values.
	IntValue codec.ValueCodec[math.Int] = intValue{}
)

type addressKey struct{}

func (addressKey) Encode(buffer []byte, key Address) (int, error) {
	return copy(buffer, key[:]), nil
}

func (addressKey) Decode(buffer []byte) (int, Address, error) {
	if len(buffer) < AddressLength {
		return 0, Address{}, fmt.Errorf("%w: address key needs %d bytes, got %d", codec.ErrEncoding, AddressLength, len(buffer))
	}
	var a Address
	copy(a[:], buffer[:AddressLength])
	return AddressLength, a, nil
}

func (addressKey) Size(Address) int { return AddressLength }

func (addressKey) EncodeJSON(value Address) ([]byte, error) { return value.MarshalJSON() }

func (addressKey) DecodeJSON(b []byte) (Address, error) {
	var a Address
	err := a.UnmarshalJSON(b)
	return a, err
}

func (addressKey) Stringify(key Address) string { return key.String() }

func (addressKey) KeyType() string { return "address" }

// Addresses have a fixed size, so the non terminal form equals the terminal one.
func (k addressKey) EncodeNonTerminal(buffer []byte, key Address) (int, error) {
	return k.Encode(buffer, key)
}

func (k addressKey) DecodeNonTerminal(buffer []byte) (int, Address, error) {
	return k.Decode(buffer)
}

func (k addressKey) SizeNonTerminal(key Address) int { return k.Size(key) }

type intValue struct{}

func (intValue) Encode(value math.Int) ([]byte, error) { return value.Marshal() }

func (intValue) Decode(b []byte) (math.Int, error) {
	v := new(math.Int)
	if err := v.Unmarshal(b); err != nil {
		return math.Int{}, err
	}
	return *v, nil
}

func (intValue) EncodeJSON(value math.Int) ([]byte, error) { return value.MarshalJSON() }

func (intValue) DecodeJSON(b []byte) (math.Int, error) {
	v := new(math.Int)
	if err := v.UnmarshalJSON(b); err != nil {
		return math.Int{}, err
	}
	return *v, nil
}

func (intValue) Stringify(value math.Int) string { return value.String() }

func (intValue) ValueType() string { return "math.Int" }

// JSONValue returns a value codec storing T as JSON.
func JSONValue[T any]() codec.ValueCodec[T] { return jsonValue[T]{} }

type jsonValue[T any] struct{}

func (jsonValue[T]) Encode(value T) ([]byte, error) { return json.Marshal(value) }

func (jsonValue[T]) Decode(b []byte) (T, error) {
	var v T
	err := json.Unmarshal(b, &v)
	return v, err
}

func (c jsonValue[T]) EncodeJSON(value T) ([]byte, error) { return c.Encode(value) }

func (c jsonValue[T]) DecodeJSON(b []byte) (T, error) { return c.Decode(b) }

func (jsonValue[T]) Stringify(value T) string { return fmt.Sprintf("%+v", value) }

func (jsonValue[T]) ValueType() string { return fmt.Sprintf("json/%T", *new(T)) }
