package store

import (
	"context"
	"errors"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSelect(t *testing.T) {
	tests := []struct {
		name     string
		query    Query
		wantSQL  string
		wantArgs []any
	}{
		{
			name: "última linha por data de criação",
			query: Query{
				Table:   "summary_metrics",
				Columns: []string{"id", "total_spend", "created_at"},
				Order:   Order{Column: "created_at", Desc: true},
				Limit:   1,
			},
			wantSQL: "SELECT to_jsonb(r) FROM (SELECT id, total_spend, created_at FROM summary_metrics " +
				"ORDER BY created_at DESC LIMIT 1) AS r ORDER BY r.created_at DESC",
			wantArgs: nil,
		},
		{
			name: "join com filtro por data",
			query: Query{
				Table:   "daily_metrics d",
				Columns: []string{"d.id", "c.name AS competitor_name", "d.daily_spend"},
				Joins:   []string{"competitors c ON c.id = d.competitor_id"},
				Filter:  squirrel.Eq{"d.date": "2025-01-15"},
				Order:   Order{Column: "d.daily_spend", Desc: true},
				Limit:   10,
			},
			wantSQL: "SELECT to_jsonb(r) FROM (SELECT d.id, c.name AS competitor_name, d.daily_spend FROM daily_metrics d " +
				"LEFT JOIN competitors c ON c.id = d.competitor_id WHERE d.date = $1 " +
				"ORDER BY d.daily_spend DESC LIMIT 10) AS r ORDER BY r.daily_spend DESC",
			wantArgs: []any{"2025-01-15"},
		},
		{
			name: "busca por nome sem limite de colunas",
			query: Query{
				Table:  "targeting_intel",
				Filter: squirrel.ILike{"competitor_name": "%nike%"},
			},
			wantSQL:  "SELECT to_jsonb(r) FROM (SELECT * FROM targeting_intel WHERE competitor_name ILIKE $1) AS r",
			wantArgs: []any{"%nike%"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := BuildSelect(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, sql)
			if tt.wantArgs == nil {
				assert.Empty(t, args)
			} else {
				assert.Equal(t, tt.wantArgs, args)
			}
		})
	}
}

func TestBuildSelect_WithoutTable(t *testing.T) {
	_, _, err := BuildSelect(Query{})
	assert.Error(t, err)
}

func TestBuildCount(t *testing.T) {
	sql, args, err := BuildCount("daily_metrics")
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(*) FROM daily_metrics", sql)
	assert.Empty(t, args)
}

func TestBuildInsert(t *testing.T) {
	row := Row{
		"id":               "abc",
		"competitor_id":    "cmp-1",
		"confidence_score": 0.82,
		"age_distribution": map[string]float64{"18-24": 0.4, "25-34": 0.6},
	}

	sql, args, err := BuildInsert("targeting_intel", row)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO targeting_intel (age_distribution,competitor_id,confidence_score,id) VALUES ($1,$2,$3,$4) "+
			"RETURNING to_jsonb(targeting_intel.*)",
		sql,
	)
	require.Len(t, args, 4)
	assert.JSONEq(t, `{"18-24": 0.4, "25-34": 0.6}`, args[0].(string))
	assert.Equal(t, "cmp-1", args[1])
	assert.Equal(t, 0.82, args[2])
	assert.Equal(t, "abc", args[3])
}

func TestBuildInsert_Invalid(t *testing.T) {
	_, _, err := BuildInsert("", Row{"id": "1"})
	assert.Error(t, err)

	_, _, err = BuildInsert("targeting_intel", Row{})
	assert.Error(t, err)
}

func TestDecodeRow(t *testing.T) {
	row, err := DecodeRow([]byte(`{"id": "1", "daily_spend": 120.5, "geo": {"US": {"spend": 10}}}`))
	require.NoError(t, err)

	assert.Equal(t, "1", row["id"])
	assert.Equal(t, 120.5, row["daily_spend"])
	assert.Equal(t, map[string]any{"US": map[string]any{"spend": float64(10)}}, row["geo"])

	_, err = DecodeRow(nil)
	assert.Error(t, err)

	_, err = DecodeRow([]byte(`not json`))
	assert.Error(t, err)
}

func TestGateway_NotConnected(t *testing.T) {
	gateway := NewGateway(nil)
	ctx := context.Background()

	assert.False(t, gateway.IsAvailable())

	_, err := gateway.Query(ctx, Query{Table: "summary_metrics"})
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = gateway.Count(ctx, "summary_metrics")
	assert.ErrorIs(t, err, ErrNotConnected)

	_, err = gateway.Insert(ctx, "targeting_intel", Row{"id": "1"})
	assert.ErrorIs(t, err, ErrNotConnected)
}

func TestOutputColumn(t *testing.T) {
	assert.Equal(t, "daily_spend", outputColumn("d.daily_spend"))
	assert.Equal(t, "created_at", outputColumn("created_at"))
}

func TestWrapDBError(t *testing.T) {
	pqErr := &pq.Error{Code: "42P01", Message: `relation "targeting_intel" does not exist`}

	err := wrapDBError("erro ao executar a query", pqErr)
	assert.Contains(t, err.Error(), "42P01")

	var target *pq.Error
	require.True(t, errors.As(err, &target))
	assert.Equal(t, pq.ErrorCode("42P01"), target.Code)

	plain := wrapDBError("erro ao executar a query", errors.New("connection refused"))
	assert.Equal(t, "erro ao executar a query: connection refused", plain.Error())
}
