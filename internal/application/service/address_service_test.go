package service

import (
	"context"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/lnprasad/invoice-api/internal/domain/entity"
	"github.com/lnprasad/invoice-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// stubAddressRepo is an in-memory AddressRepository for testing.
type stubAddressRepo struct {
	addresses   []*entity.Address
	createCalls int
}

func (r *stubAddressRepo) Create(_ context.Context, address *entity.Address) error {
	r.createCalls++
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	r.addresses = append(r.addresses, address)
	return nil
}

func (r *stubAddressRepo) List(_ context.Context) ([]entity.Address, error) {
	out := make([]entity.Address, 0, len(r.addresses))
	for _, a := range r.addresses {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out, nil
}

func (r *stubAddressRepo) Delete(_ context.Context, id uuid.UUID) error {
	for i, a := range r.addresses {
		if a.ID == id {
			r.addresses = append(r.addresses[:i], r.addresses[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func TestSaveAddress(t *testing.T) {
	repo := &stubAddressRepo{}
	svc := NewAddressService(repo, zap.NewNop())

	address, err := svc.SaveAddress(context.Background(), &entity.Address{
		Label:   "  Ranchi Depot  ",
		Address: " NH-33, Ranchi ",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ranchi Depot", address.Label)
	assert.Equal(t, "NH-33, Ranchi", address.Address)
	assert.NotEqual(t, uuid.Nil, address.ID)
}

func TestSaveAddressRejectsBlankFields(t *testing.T) {
	repo := &stubAddressRepo{}
	svc := NewAddressService(repo, zap.NewNop())

	cases := map[string]*entity.Address{
		"blank address":      {Label: "Depot", Address: "   "},
		"blank label":        {Label: " ", Address: "NH-33"},
		"everything missing": {},
	}

	for name, address := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := svc.SaveAddress(context.Background(), address)
			require.Error(t, err)
			assert.Equal(t, 422, apperror.GetAppError(err).Code)
		})
	}
	assert.Zero(t, repo.createCalls)
}

func TestListAddressesSortedByLabel(t *testing.T) {
	repo := &stubAddressRepo{}
	svc := NewAddressService(repo, zap.NewNop())

	for _, label := range []string{"Zebra Crossing", "Asansol Yard", "Main Gate"} {
		_, err := svc.SaveAddress(context.Background(), &entity.Address{Label: label, Address: "somewhere"})
		require.NoError(t, err)
	}

	addresses, err := svc.ListAddresses(context.Background())
	require.NoError(t, err)
	require.Len(t, addresses, 3)
	assert.Equal(t, "Asansol Yard", addresses[0].Label)
	assert.Equal(t, "Main Gate", addresses[1].Label)
	assert.Equal(t, "Zebra Crossing", addresses[2].Label)
}

func TestDeleteAddressUnknownID(t *testing.T) {
	svc := NewAddressService(&stubAddressRepo{}, zap.NewNop())

	err := svc.DeleteAddress(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
}
