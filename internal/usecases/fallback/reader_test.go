package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/competitor-intel-api/infrastructure/store"
	"github.com/vfg2006/competitor-intel-api/infrastructure/store/mocks"
	"github.com/vfg2006/competitor-intel-api/internal/domain"
	"go.uber.org/mock/gomock"
)

type item struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

func mapItem(row store.Row) (item, error) {
	var it item
	if err := DecodeRow(row, &it); err != nil {
		return item{}, err
	}
	return it, nil
}

func substitute() item { return item{Name: "fallback", Value: 1} }

var testQuery = store.Query{Table: "items", Order: store.Order{Column: "value", Desc: true}, Limit: 5}

func TestReader_Many(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(gateway *mocks.MockGateway)
		validate func(t *testing.T, items []item, status domain.ReadStatus)
	}{
		{
			name: "banco indisponível não consulta e serve fallback",
			setup: func(gateway *mocks.MockGateway) {
				gateway.EXPECT().IsAvailable().Return(false).AnyTimes()
				gateway.EXPECT().Query(gomock.Any(), gomock.Any()).Times(0)
			},
			validate: func(t *testing.T, items []item, status domain.ReadStatus) {
				assert.Equal(t, []item{substitute()}, items)
				assert.False(t, status.Available)
				assert.True(t, status.Degraded())
				assert.Equal(t, DetailNotConfigured, status.Detail)
			},
		},
		{
			name: "erro na consulta serve fallback com a mensagem",
			setup: func(gateway *mocks.MockGateway) {
				gateway.EXPECT().IsAvailable().Return(true)
				gateway.EXPECT().Query(gomock.Any(), testQuery).Return(nil, errors.New("connection refused"))
			},
			validate: func(t *testing.T, items []item, status domain.ReadStatus) {
				assert.Equal(t, []item{substitute()}, items)
				assert.False(t, status.Available)
				assert.Equal(t, domain.SourceFallback, status.Source)
				assert.Equal(t, "connection refused", status.Detail)
			},
		},
		{
			name: "sem linhas usa o valor de vazio",
			setup: func(gateway *mocks.MockGateway) {
				gateway.EXPECT().IsAvailable().Return(true)
				gateway.EXPECT().Query(gomock.Any(), testQuery).Return([]store.Row{}, nil)
			},
			validate: func(t *testing.T, items []item, status domain.ReadStatus) {
				assert.Empty(t, items)
				assert.True(t, status.Available)
				assert.Equal(t, domain.SourceStore, status.Source)
				assert.Equal(t, DetailNoRows, status.Detail)
			},
		},
		{
			name: "linhas indecifráveis são ignoradas",
			setup: func(gateway *mocks.MockGateway) {
				gateway.EXPECT().IsAvailable().Return(true)
				gateway.EXPECT().Query(gomock.Any(), testQuery).Return([]store.Row{
					{"name": "a", "value": 3.0},
					{"name": "b", "value": map[string]any{"invalid": true}},
					{"name": "c", "value": "2.5"},
				}, nil)
			},
			validate: func(t *testing.T, items []item, status domain.ReadStatus) {
				assert.Equal(t, []item{{Name: "a", Value: 3}, {Name: "c", Value: 2.5}}, items)
				assert.Equal(t, domain.ReadStatus{Available: true, Source: domain.SourceStore}, status)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			gateway := mocks.NewMockGateway(ctrl)
			tt.setup(gateway)

			reader := NewReader(gateway, "item", mapItem)
			items, status := reader.Many(context.Background(), "list_items", testQuery,
				func() []item { return []item{substitute()} },
				func() []item { return []item{} },
			)

			tt.validate(t, items, status)
		})
	}
}

func TestReader_One(t *testing.T) {
	t.Run("sem linhas serve o substituto", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mocks.NewMockGateway(ctrl)
		gateway.EXPECT().IsAvailable().Return(true)
		gateway.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, nil)

		got, status := NewReader(gateway, "item", mapItem).One(context.Background(), "latest_item", testQuery, substitute)

		assert.Equal(t, substitute(), got)
		assert.True(t, status.Available)
		assert.True(t, status.Degraded())
	})

	t.Run("retorna a primeira linha", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mocks.NewMockGateway(ctrl)
		gateway.EXPECT().IsAvailable().Return(true)
		gateway.EXPECT().Query(gomock.Any(), gomock.Any()).Return([]store.Row{
			{"name": "first", "value": 10},
			{"name": "second", "value": 5},
		}, nil)

		got, status := NewReader(gateway, "item", mapItem).One(context.Background(), "latest_item", testQuery, substitute)

		assert.Equal(t, item{Name: "first", Value: 10}, got)
		assert.False(t, status.Degraded())
	})

	t.Run("leituras repetidas com banco indisponível são idênticas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mocks.NewMockGateway(ctrl)
		gateway.EXPECT().IsAvailable().Return(false).AnyTimes()

		reader := NewReader(gateway, "item", mapItem)
		first, firstStatus := reader.One(context.Background(), "latest_item", testQuery, substitute)
		second, secondStatus := reader.One(context.Background(), "latest_item", testQuery, substitute)

		assert.Equal(t, first, second)
		assert.Equal(t, firstStatus, secondStatus)
	})
}

func TestReader_Find(t *testing.T) {
	t.Run("sem linhas retorna nil", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mocks.NewMockGateway(ctrl)
		gateway.EXPECT().IsAvailable().Return(true)
		gateway.EXPECT().Query(gomock.Any(), gomock.Any()).Return([]store.Row{}, nil)

		got, status := NewReader(gateway, "item", mapItem).Find(context.Background(), "find_item", testQuery, func() *item {
			t.Fatal("degraded não deveria ser chamado")
			return nil
		})

		assert.Nil(t, got)
		assert.True(t, status.Available)
		assert.Equal(t, DetailNoRows, status.Detail)
	})

	t.Run("erro usa o degradado", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		gateway := mocks.NewMockGateway(ctrl)
		gateway.EXPECT().IsAvailable().Return(true)
		gateway.EXPECT().Query(gomock.Any(), gomock.Any()).Return(nil, errors.New("timeout"))

		got, status := NewReader(gateway, "item", mapItem).Find(context.Background(), "find_item", testQuery, func() *item {
			it := substitute()
			return &it
		})

		require.NotNil(t, got)
		assert.Equal(t, "fallback", got.Name)
		assert.True(t, status.Degraded())
	})
}

func TestDecodeRow(t *testing.T) {
	type nested struct {
		Count  int                `json:"count"`
		Shares map[string]float64 `json:"shares"`
		Tags   []string           `json:"tags"`
	}

	t.Run("documentos JSON em texto e números em texto", func(t *testing.T) {
		var out nested
		err := DecodeRow(store.Row{
			"count":  "7",
			"shares": `{"a": 0.5, "b": 0.5}`,
			"tags":   `["x", "y"]`,
		}, &out)

		require.NoError(t, err)
		assert.Equal(t, nested{Count: 7, Shares: map[string]float64{"a": 0.5, "b": 0.5}, Tags: []string{"x", "y"}}, out)
	})

	t.Run("campos ausentes e nulos ficam zerados", func(t *testing.T) {
		var out nested
		err := DecodeRow(store.Row{"count": nil, "tags": ""}, &out)

		require.NoError(t, err)
		assert.Equal(t, 0, out.Count)
		assert.Nil(t, out.Shares)
		assert.Empty(t, out.Tags)
	})
}
