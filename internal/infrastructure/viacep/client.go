// Package viacep is a thin client for the viacep.com.br postal-code API.
package viacep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotFound means ViaCEP answered but does not know the code.
var ErrNotFound = errors.New("cep not found")

// Address is the lookup result with normalized field names.
type Address struct {
	ZipCode      string `json:"zip_code"`
	Address      string `json:"address"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
}

// viaCepResponse mirrors the upstream JSON. ViaCEP signals an unknown code
// with {"erro": true} and HTTP 200.
type viaCepResponse struct {
	Cep         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	Erro        bool   `json:"erro"`
}

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient() *Client {
	return &Client{
		BaseURL: "https://viacep.com.br",
		HTTP:    &http.Client{Timeout: 5 * time.Second},
	}
}

// Lookup fetches the address for an 8-digit CEP. The caller validates the
// format; this only talks to the wire.
func (c *Client) Lookup(ctx context.Context, cep string) (*Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.BaseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("viacep request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("viacep returned status %d", res.StatusCode)
	}

	var body viaCepResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("viacep response decode failed: %w", err)
	}
	if body.Erro || body.Cep == "" {
		return nil, ErrNotFound
	}

	return &Address{
		ZipCode:      body.Cep,
		Address:      body.Logradouro,
		Complement:   body.Complemento,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
	}, nil
}
