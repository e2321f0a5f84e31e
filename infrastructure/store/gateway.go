// Package store expõe o banco hospedado como um gateway genérico de linhas.
// Os leitores de domínio dependem apenas da interface Gateway, o que permite
// trocar a implementação (ou usar mocks) sem tocar nas regras de fallback.
package store

//go:generate mockgen -source=gateway.go -destination=mocks/mock_gateway.go -package=mocks

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
)

// ErrNotConnected é retornado quando uma operação é chamada sem conexão configurada
var ErrNotConnected = errors.New("store: gateway not connected")

// Row é uma linha sem tipo vinda do banco. Colunas JSONB chegam como mapas e listas aninhados.
type Row map[string]any

// Order define a ordenação de uma consulta. Column pode ser qualificada pelo alias da tabela (ex: "d.daily_spend").
type Order struct {
	Column string
	Desc   bool
}

// Query descreve o formato fixo de uma leitura: tabela, colunas, joins, filtro, ordenação e limite
type Query struct {
	Table   string
	Columns []string
	Joins   []string
	Filter  squirrel.Sqlizer
	Order   Order
	Limit   uint64 // 0 = sem limite
}

type Gateway interface {
	// IsAvailable informa se existe um cliente do banco. Não faz I/O.
	IsAvailable() bool
	// Query executa uma única consulta filtrada, ordenada e limitada
	Query(ctx context.Context, q Query) ([]Row, error)
	// Count retorna a quantidade de linhas de uma tabela sem trafegar o conteúdo
	Count(ctx context.Context, table string) (int64, error)
	// Insert grava uma linha e retorna a linha persistida. Não é idempotente.
	Insert(ctx context.Context, table string, row Row) (Row, error)
}
