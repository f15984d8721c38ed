package signing

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Klaudioz/PolyAnalyzer/clob/types"
)

// Well-known throwaway key (hardhat account #0), never used on mainnet.
const testKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestBuildClobAuthSignature(t *testing.T) {
	key, err := PrivateKeyFromHex(testKey)
	require.NoError(t, err)

	sig, err := BuildClobAuthSignature(key, types.ChainPolygon, 1700000000, 0)
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(sig, "0x"))
	require.Len(t, sig, 132) // 0x + 65 bytes hex

	// Same inputs, same signature.
	again, err := BuildClobAuthSignature(key, types.ChainPolygon, 1700000000, 0)
	require.NoError(t, err)
	require.Equal(t, sig, again)

	// A different timestamp signs a different message.
	other, err := BuildClobAuthSignature(key, types.ChainPolygon, 1700000001, 0)
	require.NoError(t, err)
	require.NotEqual(t, sig, other)
}

func TestBuildPolyHmacSignature(t *testing.T) {
	// base64 of an arbitrary 30-byte secret.
	secret := "MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTIzNDU2Nzg5"

	body := `{"orderID":"abc"}`
	sig, err := BuildPolyHmacSignature(secret, 1700000000, "POST", "/order", &body)
	require.NoError(t, err)
	require.NotEmpty(t, sig)

	// Output is base64url: no '+' or '/'.
	require.NotContains(t, sig, "+")
	require.NotContains(t, sig, "/")

	again, err := BuildPolyHmacSignature(secret, 1700000000, "POST", "/order", &body)
	require.NoError(t, err)
	require.Equal(t, sig, again)

	// The body is part of the signed message.
	otherBody := `{"orderID":"xyz"}`
	other, err := BuildPolyHmacSignature(secret, 1700000000, "POST", "/order", &otherBody)
	require.NoError(t, err)
	require.NotEqual(t, sig, other)

	// A nil body signs timestamp+method+path only.
	noBody, err := BuildPolyHmacSignature(secret, 1700000000, "GET", "/order", nil)
	require.NoError(t, err)
	require.NotEqual(t, sig, noBody)
}

func TestBuildPolyHmacSignature_BadSecret(t *testing.T) {
	_, err := BuildPolyHmacSignature("not base64!!!", 1700000000, "GET", "/", nil)
	require.Error(t, err)
}

func TestCreateL1Headers(t *testing.T) {
	key, err := PrivateKeyFromHex(testKey)
	require.NoError(t, err)

	ts := int64(1700000000)
	headers, err := CreateL1Headers(key, types.ChainPolygon, nil, &ts)
	require.NoError(t, err)

	require.Equal(t, GetAddressFromPrivateKey(key).Hex(), headers.PolyAddress)
	require.Equal(t, "1700000000", headers.PolyTimestamp)
	require.Equal(t, "0", headers.PolyNonce)
	require.Len(t, headers.PolySignature, 132)
}

func TestCreateL2Headers(t *testing.T) {
	key, err := PrivateKeyFromHex(testKey)
	require.NoError(t, err)

	creds := &types.ApiKeyCreds{
		Key:        "key-1",
		Secret:     "MDEyMzQ1Njc4OTAxMjM0NTY3ODkwMTIzNDU2Nzg5",
		Passphrase: "pass-1",
	}
	ts := int64(1700000000)
	headers, err := CreateL2Headers(key, creds, &types.L2HeaderArgs{
		Method:      "GET",
		RequestPath: "/book",
	}, &ts)
	require.NoError(t, err)

	require.Equal(t, GetAddressFromPrivateKey(key).Hex(), headers.PolyAddress)
	require.Equal(t, "key-1", headers.PolyAPIKey)
	require.Equal(t, "pass-1", headers.PolyPassphrase)
	require.Equal(t, "1700000000", headers.PolyTimestamp)

	want, err := BuildPolyHmacSignature(creds.Secret, ts, "GET", "/book", nil)
	require.NoError(t, err)
	require.Equal(t, want, headers.PolySignature)
}
