package role

import (
	"context"
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	adminID     = [32]byte{}
	registrarID = crypto.Keccak256Hash([]byte("REGISTRAR_ROLE"))
	courtID     = crypto.Keccak256Hash([]byte("COURT_ROLE"))
	taxID       = crypto.Keccak256Hash([]byte("TAX_AUTHORITY_ROLE"))
)

// stubContract grants the role identifiers in granted to every account.
type stubContract struct {
	granted map[[32]byte]bool
	err     error
	calls   []string
	opts    []*bind.CallOpts
}

func (s *stubContract) DEFAULTADMINROLE(*bind.CallOpts) ([32]byte, error) {
	s.calls = append(s.calls, "DEFAULT_ADMIN_ROLE")
	return adminID, s.err
}

func (s *stubContract) REGISTRARROLE(*bind.CallOpts) ([32]byte, error) {
	s.calls = append(s.calls, "REGISTRAR_ROLE")
	return registrarID, s.err
}

func (s *stubContract) COURTROLE(*bind.CallOpts) ([32]byte, error) {
	s.calls = append(s.calls, "COURT_ROLE")
	return courtID, s.err
}

func (s *stubContract) TAXAUTHORITYROLE(*bind.CallOpts) ([32]byte, error) {
	s.calls = append(s.calls, "TAX_AUTHORITY_ROLE")
	return taxID, s.err
}

func (s *stubContract) HasRole(opts *bind.CallOpts, role [32]byte, _ common.Address) (bool, error) {
	s.calls = append(s.calls, "hasRole")
	s.opts = append(s.opts, opts)
	if s.err != nil {
		return false, s.err
	}
	return s.granted[role], nil
}

var account = common.HexToAddress("0xabc0000000000000000000000000000000000001")

func TestResolver_AdminDominatesRegistrar(t *testing.T) {
	contract := &stubContract{granted: map[[32]byte]bool{adminID: true, registrarID: true}}

	got, err := NewResolver(zap.NewNop()).Resolve(&bind.CallOpts{Context: context.Background()}, contract, account)

	require.NoError(t, err)
	assert.Equal(t, Admin, got)
	assert.Equal(t, []string{"DEFAULT_ADMIN_ROLE", "hasRole"}, contract.calls)
}

func TestResolver_OrderedPrecedence(t *testing.T) {
	tests := []struct {
		name    string
		granted map[[32]byte]bool
		want    Role
	}{
		{"registrar only", map[[32]byte]bool{registrarID: true}, Registrar},
		{"court and tax", map[[32]byte]bool{courtID: true, taxID: true}, Court},
		{"tax only", map[[32]byte]bool{taxID: true}, TaxAuthority},
		{"nothing", nil, Citizen},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewResolver(zap.NewNop()).Resolve(&bind.CallOpts{Context: context.Background()}, &stubContract{granted: tt.granted}, account)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolver_RevertYieldsNone(t *testing.T) {
	contract := &stubContract{err: errors.New("execution reverted")}
	resolver := NewResolver(zap.NewNop())

	got, err := resolver.Resolve(&bind.CallOpts{Context: context.Background()}, contract, account)
	require.ErrorIs(t, err, ErrContractUnreachable)
	assert.Equal(t, None, got)
}

func TestResolver_CallsWithCallerOptions(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "session")
	contract := &stubContract{}

	got, err := NewResolver(zap.NewNop()).Resolve(&bind.CallOpts{Context: ctx, Pending: true}, contract, account)
	require.NoError(t, err)
	assert.Equal(t, Citizen, got)

	require.Len(t, contract.opts, 4)
	for _, opts := range contract.opts {
		assert.Equal(t, account, opts.From)
		assert.True(t, opts.Pending)
		assert.Equal(t, "session", opts.Context.Value(key{}))
	}

	_, err = NewResolver(zap.NewNop()).Resolve(nil, &stubContract{}, account)
	require.NoError(t, err)
}

func TestResolver_NilContractOrAccount(t *testing.T) {
	resolver := NewResolver(zap.NewNop())

	_, err := resolver.Resolve(&bind.CallOpts{Context: context.Background()}, nil, account)
	require.ErrorIs(t, err, ErrContractUnreachable)

	_, err = resolver.Resolve(&bind.CallOpts{Context: context.Background()}, &stubContract{}, common.Address{})
	require.ErrorIs(t, err, ErrContractUnreachable)
}

func TestParse_Normalizes(t *testing.T) {
	tests := map[string]Role{
		"ADMIN":         Admin,
		"admin":         Admin,
		" Registrar ":   Registrar,
		"tax-authority": TaxAuthority,
		"TaxAuthority":  TaxAuthority,
		"tax_authority": TaxAuthority,
		"court":         Court,
		"citizen":       Citizen,
	}
	for in, want := range tests {
		got, err := Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	got, err := Parse("superuser")
	require.Error(t, err)
	assert.Equal(t, None, got)
}

func TestRole_TextRoundTrip(t *testing.T) {
	text, err := TaxAuthority.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "TAX_AUTHORITY", string(text))

	var r Role
	require.NoError(t, r.UnmarshalText([]byte("unknown-tier")))
	assert.Equal(t, None, r)
}
