package types

import (
	"encoding/json"
	"testing"

	"cosmossdk.io/collections"
	"cosmossdk.io/math"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	a, err := ParseAddress("0x00000000000000000000000000000000000000aa")
	require.NoError(t, err)
	require.Equal(t, byte(0xaa), a[19])
	require.Equal(t, "0x00000000000000000000000000000000000000aa", a.String())

	b, err := ParseAddress("00000000000000000000000000000000000000AA")
	require.NoError(t, err)
	require.Equal(t, a, b)

	_, err = ParseAddress("0x1234")
	require.Error(t, err)
	_, err = ParseAddress("0xzz000000000000000000000000000000000000aa")
	require.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	a := NewModuleAddress("lottery")
	bz, err := json.Marshal(a)
	require.NoError(t, err)

	var back Address
	require.NoError(t, json.Unmarshal(bz, &back))
	require.Equal(t, a, back)
	require.NotEqual(t, a, NewModuleAddress("tltoken"))
}

func TestAddressKeyOrdering(t *testing.T) {
	kc := collections.PairKeyCodec(AddressKey, collections.Uint64Key)
	key := collections.Join(MustParseAddress("0x0000000000000000000000000000000000000001"), uint64(42))

	buf := make([]byte, kc.Size(key))
	n, err := kc.Encode(buf, key)
	require.NoError(t, err)
	require.Equal(t, len(buf), n)

	read, back, err := kc.Decode(buf)
	require.NoError(t, err)
	require.Equal(t, n, read)
	require.Equal(t, key, back)
}

func TestIntValue(t *testing.T) {
	bz, err := IntValue.Encode(math.NewInt(12345))
	require.NoError(t, err)
	v, err := IntValue.Decode(bz)
	require.NoError(t, err)
	require.Equal(t, "12345", v.String())
}
