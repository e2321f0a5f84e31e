package config

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	renderAPIURL       = "https://api.render.com/v1"
	renderPageSize     = 100
	renderLookupBudget = 10 * time.Second
)

// SecretStorage é a origem alternativa das credenciais do banco
type SecretStorage interface {
	ListSecrets(ctx context.Context, serviceID string) (map[string]string, error)
}

type RenderClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewRenderClient(config *Config) *RenderClient {
	return &RenderClient{
		APIKey:     config.Render.APIKey,
		BaseURL:    renderAPIURL,
		HTTPClient: &http.Client{Timeout: renderLookupBudget},
	}
}

type secretFilePage []struct {
	SecretFile struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	} `json:"secretFile"`
	Cursor string `json:"cursor"`
}

// ListSecrets percorre todas as páginas de secret files do serviço e devolve o conteúdo indexado pelo nome
func (c *RenderClient) ListSecrets(ctx context.Context, serviceID string) (map[string]string, error) {
	secrets := make(map[string]string)
	cursor := ""

	for {
		page, err := c.secretFilePage(ctx, serviceID, cursor)
		if err != nil {
			return nil, err
		}

		for _, item := range page {
			secrets[item.SecretFile.Name] = item.SecretFile.Content
		}

		if len(page) < renderPageSize {
			return secrets, nil
		}
		cursor = page[len(page)-1].Cursor
	}
}

func (c *RenderClient) secretFilePage(ctx context.Context, serviceID, cursor string) (secretFilePage, error) {
	query := url.Values{"limit": {fmt.Sprint(renderPageSize)}}
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	endpoint := fmt.Sprintf("%s/services/%s/secret-files?%s", c.BaseURL, url.PathEscape(serviceID), query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("config: erro ao consultar o Render: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("config: Render respondeu %d: %s", resp.StatusCode, body)
	}

	var page secretFilePage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("config: resposta inválida do Render: %w", err)
	}

	return page, nil
}
