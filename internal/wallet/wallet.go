package wallet

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"
)

// DefaultDerivationPath is the path Phantom and the Solana CLI use for the first account.
const DefaultDerivationPath = "m/44'/501'/0'/0'"

const hardenedOffset uint32 = 0x80000000

var (
	ErrNoKey           = errors.New("no wallet key configured")
	ErrInvalidKey      = errors.New("invalid private key")
	ErrInvalidMnemonic = errors.New("invalid mnemonic")
	ErrInvalidPath     = errors.New("invalid derivation path")
)

// Wallet is a single signing keypair.
type Wallet struct {
	key solana.PrivateKey
}

func (w *Wallet) PublicKey() solana.PublicKey {
	return w.key.PublicKey()
}

func (w *Wallet) PrivateKey() solana.PrivateKey {
	return w.key
}

// Signer returns a getter for Transaction.Sign that only knows this wallet.
func (w *Wallet) Signer() func(key solana.PublicKey) *solana.PrivateKey {
	pub := w.key.PublicKey()
	return func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(pub) {
			return &w.key
		}
		return nil
	}
}

// FromBase58 parses the 64-byte base58 secret exported by Phantom and solana-keygen.
func FromBase58(s string) (*Wallet, error) {
	raw, err := base58.Decode(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return fromBytes(raw)
}

// FromJSON parses a keypair file body such as "[12,34,...]".
func FromJSON(data []byte) (*Wallet, error) {
	var raw []byte
	var ints []int
	if err := json.Unmarshal(data, &ints); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	for _, v := range ints {
		if v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: byte out of range", ErrInvalidKey)
		}
		raw = append(raw, byte(v))
	}
	return fromBytes(raw)
}

func fromBytes(raw []byte) (*Wallet, error) {
	if len(raw) != ed25519.PrivateKeySize {
		return nil, fmt.Errorf("%w: want %d bytes, got %d", ErrInvalidKey, ed25519.PrivateKeySize, len(raw))
	}
	key := ed25519.NewKeyFromSeed(raw[:32])
	if !hmac.Equal(key[32:], raw[32:]) {
		return nil, fmt.Errorf("%w: public half does not match secret", ErrInvalidKey)
	}
	return &Wallet{key: solana.PrivateKey(key)}, nil
}

// FromMnemonic derives the key at path from a BIP-39 mnemonic using SLIP-10.
// An empty path means DefaultDerivationPath.
func FromMnemonic(mnemonic, passphrase, path string) (*Wallet, error) {
	mnemonic = strings.Join(strings.Fields(mnemonic), " ")
	if !bip39.IsMnemonicValid(mnemonic) {
		return nil, ErrInvalidMnemonic
	}
	if path == "" {
		path = DefaultDerivationPath
	}
	indexes, err := ParseDerivationPath(path)
	if err != nil {
		return nil, err
	}
	seed := bip39.NewSeed(mnemonic, passphrase)
	key, chain := masterKey(seed)
	for _, i := range indexes {
		key, chain = deriveChild(key, chain, i)
	}
	return &Wallet{key: solana.PrivateKey(ed25519.NewKeyFromSeed(key))}, nil
}

// Load picks the first configured source: a base58 or JSON private key, then a mnemonic.
func Load(privateKey, mnemonic, passphrase, path string) (*Wallet, error) {
	privateKey = strings.TrimSpace(privateKey)
	switch {
	case strings.HasPrefix(privateKey, "["):
		return FromJSON([]byte(privateKey))
	case privateKey != "":
		return FromBase58(privateKey)
	case strings.TrimSpace(mnemonic) != "":
		return FromMnemonic(mnemonic, passphrase, path)
	}
	return nil, ErrNoKey
}

// ParseDerivationPath parses "m/44'/501'/0'/0'" into hardened child indexes.
// ed25519 has no public derivation so every segment must be hardened.
func ParseDerivationPath(path string) ([]uint32, error) {
	parts := strings.Split(strings.TrimSpace(path), "/")
	if len(parts) == 0 || parts[0] != "m" {
		return nil, fmt.Errorf("%w: %q must start with m", ErrInvalidPath, path)
	}
	out := make([]uint32, 0, len(parts)-1)
	for _, p := range parts[1:] {
		if !strings.HasSuffix(p, "'") && !strings.HasSuffix(p, "h") {
			return nil, fmt.Errorf("%w: segment %q is not hardened", ErrInvalidPath, p)
		}
		n, err := strconv.ParseUint(p[:len(p)-1], 10, 31)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %q: %v", ErrInvalidPath, p, err)
		}
		out = append(out, uint32(n)+hardenedOffset)
	}
	return out, nil
}

func masterKey(seed []byte) (key, chain []byte) {
	sum := hmacSHA512([]byte("ed25519 seed"), seed)
	return sum[:32], sum[32:]
}

func deriveChild(key, chain []byte, index uint32) ([]byte, []byte) {
	data := make([]byte, 0, 37)
	data = append(data, 0)
	data = append(data, key...)
	data = binary.BigEndian.AppendUint32(data, index)
	sum := hmacSHA512(chain, data)
	return sum[:32], sum[32:]
}

func hmacSHA512(key, data []byte) []byte {
	mac := hmac.New(sha512.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}
