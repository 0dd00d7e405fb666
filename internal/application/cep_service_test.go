package application

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cadastrolabs/cadastro-api/internal/infrastructure/viacep"
)

func newCepFixture(handler http.HandlerFunc) (*CepService, *httptest.Server) {
	srv := httptest.NewServer(handler)
	client := viacep.NewClient()
	client.BaseURL = srv.URL
	return NewCepService(client, nil, nil), srv
}

func TestCepLookup(t *testing.T) {
	var hits int32
	svc, srv := newCepFixture(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/ws/01001000/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"cep":"01001-000","logradouro":"Praça da Sé","complemento":"lado ímpar","bairro":"Sé","localidade":"São Paulo","uf":"SP"}`))
	})
	defer srv.Close()

	addr, err := svc.Lookup(context.Background(), "01001000")
	require.NoError(t, err)
	assert.Equal(t, "01001-000", addr.ZipCode)
	assert.Equal(t, "Praça da Sé", addr.Address)
	assert.Equal(t, "Sé", addr.Neighborhood)
	assert.Equal(t, "São Paulo", addr.City)
	assert.Equal(t, "SP", addr.State)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestCepLookupRejectsMalformedCode(t *testing.T) {
	svc, srv := newCepFixture(func(w http.ResponseWriter, r *http.Request) {
		t.Error("upstream must not be called for malformed input")
	})
	defer srv.Close()

	for _, cep := range []string{"", "1234567", "123456789", "0100100a", "01001-00"} {
		_, err := svc.Lookup(context.Background(), cep)
		assert.ErrorIs(t, err, ErrInvalidCEP, "cep %q", cep)
	}
}

func TestCepLookupUnknownCode(t *testing.T) {
	svc, srv := newCepFixture(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"erro": true}`))
	})
	defer srv.Close()

	_, err := svc.Lookup(context.Background(), "99999999")
	assert.ErrorIs(t, err, ErrCEPNotFound)
}

func TestCepLookupUpstreamFailure(t *testing.T) {
	svc, srv := newCepFixture(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	_, err := svc.Lookup(context.Background(), "01001000")
	assert.ErrorIs(t, err, ErrCEPUnavailable)
}
