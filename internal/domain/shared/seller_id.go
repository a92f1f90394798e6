package shared

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// SellerIDLength is the fixed length of a seller code
const SellerIDLength = 7

const sellerIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ErrInvalidSellerID is returned when a seller code is malformed
var ErrInvalidSellerID = NewDomainError("INVALID_SELLER_ID", "Seller id must be 7 uppercase letters or digits")

// SellerID identifies a tenant. It can only be obtained through ParseSellerID
// or NewSellerID, so a non-zero value is always a well-formed code.
type SellerID struct {
	code string
}

// ParseSellerID validates and wraps a seller code
func ParseSellerID(s string) (SellerID, error) {
	if len(s) != SellerIDLength {
		return SellerID{}, ErrInvalidSellerID
	}
	for _, r := range s {
		if !strings.ContainsRune(sellerIDAlphabet, r) {
			return SellerID{}, ErrInvalidSellerID
		}
	}
	return SellerID{code: s}, nil
}

// MustParseSellerID is like ParseSellerID but panics on error
func MustParseSellerID(s string) SellerID {
	id, err := ParseSellerID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// NewSellerID generates a random seller code. Uniqueness is not checked here.
func NewSellerID() SellerID {
	buf := make([]byte, SellerIDLength)
	max := big.NewInt(int64(len(sellerIDAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic(err)
		}
		buf[i] = sellerIDAlphabet[n.Int64()]
	}
	return SellerID{code: string(buf)}
}

// String returns the seller code
func (id SellerID) String() string {
	return id.code
}

// IsZero reports whether the id was never set
func (id SellerID) IsZero() bool {
	return id.code == ""
}

// MarshalText implements encoding.TextMarshaler
func (id SellerID) MarshalText() ([]byte, error) {
	return []byte(id.code), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (id *SellerID) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*id = SellerID{}
		return nil
	}
	parsed, err := ParseSellerID(string(b))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// RequireSeller returns ErrTenantRequired for a zero id
func RequireSeller(id SellerID) error {
	if id.IsZero() {
		return ErrTenantRequired
	}
	return nil
}
