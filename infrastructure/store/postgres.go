package store

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"github.com/vfg2006/competitor-intel-api/infrastructure/database/postgres"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const rowAlias = "r"

type postgresGateway struct {
	db postgres.Queryer
}

// NewGateway cria o gateway sobre uma conexão Postgres. Com conn nil o gateway
// fica indisponível e todos os leitores passam a servir os dados de fallback.
func NewGateway(conn *postgres.Connection) Gateway {
	if conn == nil {
		return &postgresGateway{}
	}

	return &postgresGateway{db: conn}
}

func (g *postgresGateway) IsAvailable() bool {
	return g.db != nil
}

func (g *postgresGateway) Query(ctx context.Context, q Query) ([]Row, error) {
	if !g.IsAvailable() {
		return nil, ErrNotConnected
	}

	sqlQuery, args, err := BuildSelect(q)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := g.db.QueryContext(ctx, sqlQuery, args...)
	if err != nil {
		return nil, wrapDBError("erro ao executar a query", err)
	}
	defer rows.Close()

	result := make([]Row, 0)
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("erro ao escanear linha de %s: %w", q.Table, err)
		}

		row, err := DecodeRow(payload)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapDBError("erro durante a iteração de linhas", err)
	}

	return result, nil
}

func (g *postgresGateway) Count(ctx context.Context, table string) (int64, error) {
	if !g.IsAvailable() {
		return 0, ErrNotConnected
	}

	sqlQuery, args, err := BuildCount(table)
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	var count int64
	if err := g.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&count); err != nil {
		return 0, wrapDBError("erro ao contar linhas de "+table, err)
	}

	return count, nil
}

func (g *postgresGateway) Insert(ctx context.Context, table string, row Row) (Row, error) {
	if !g.IsAvailable() {
		return nil, ErrNotConnected
	}

	sqlQuery, args, err := BuildInsert(table, row)
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query de inserção: %w", err)
	}

	var payload []byte
	if err := g.db.QueryRowContext(ctx, sqlQuery, args...).Scan(&payload); err != nil {
		return nil, wrapDBError("erro ao executar a query de inserção", err)
	}

	return DecodeRow(payload)
}

// BuildSelect monta a consulta envolvendo o resultado em to_jsonb, de modo que
// cada linha volte como um único documento JSON com as colunas como chaves.
func BuildSelect(q Query) (string, []any, error) {
	if q.Table == "" {
		return "", nil, errors.New("store: query without table")
	}

	columns := q.Columns
	if len(columns) == 0 {
		columns = []string{"*"}
	}

	inner := squirrel.Select(columns...).From(q.Table)
	for _, join := range q.Joins {
		inner = inner.LeftJoin(join)
	}

	if q.Filter != nil {
		inner = inner.Where(q.Filter)
	}

	direction := "ASC"
	if q.Order.Desc {
		direction = "DESC"
	}

	if q.Order.Column != "" {
		inner = inner.OrderBy(q.Order.Column + " " + direction)
	}

	if q.Limit > 0 {
		inner = inner.Limit(q.Limit)
	}

	outer := squirrel.Select("to_jsonb("+rowAlias+")").FromSelect(inner, rowAlias)

	// A ordenação da subquery não é garantida no resultado externo
	if q.Order.Column != "" {
		outer = outer.OrderBy(rowAlias + "." + outputColumn(q.Order.Column) + " " + direction)
	}

	return outer.PlaceholderFormat(squirrel.Dollar).ToSql()
}

// BuildCount monta uma consulta que retorna apenas a contagem de linhas
func BuildCount(table string) (string, []any, error) {
	if table == "" {
		return "", nil, errors.New("store: count without table")
	}

	return squirrel.
		Select("COUNT(*)").
		From(table).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// BuildInsert monta o INSERT retornando a linha gravada como JSON.
// Valores compostos (mapas, listas, structs) são serializados para colunas JSONB.
func BuildInsert(table string, row Row) (string, []any, error) {
	if table == "" {
		return "", nil, errors.New("store: insert without table")
	}

	if len(row) == 0 {
		return "", nil, errors.New("store: insert without values")
	}

	values := make(map[string]any, len(row))
	for column, value := range row {
		normalized, err := normalizeValue(value)
		if err != nil {
			return "", nil, fmt.Errorf("erro ao serializar coluna %s: %w", column, err)
		}
		values[column] = normalized
	}

	return squirrel.StatementBuilder.
		Insert(table).
		SetMap(values).
		Suffix(fmt.Sprintf("RETURNING to_jsonb(%s.*)", table)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// DecodeRow converte o documento JSON de uma linha em Row
func DecodeRow(payload []byte) (Row, error) {
	if len(payload) == 0 {
		return nil, errors.New("store: empty row payload")
	}

	row := Row{}
	if err := json.Unmarshal(payload, &row); err != nil {
		return nil, fmt.Errorf("erro ao deserializar linha: %w", err)
	}

	return row, nil
}

func normalizeValue(value any) (any, error) {
	switch v := value.(type) {
	case nil, string, bool, int, int32, int64, float32, float64, time.Time:
		return v, nil
	}

	switch reflect.Indirect(reflect.ValueOf(value)).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		// lib/pq envia []byte como bytea; JSONB precisa de texto
		payload, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		return string(payload), nil
	}

	return value, nil
}

func outputColumn(column string) string {
	if i := strings.LastIndex(column, "."); i >= 0 {
		return column[i+1:]
	}
	return column
}

func wrapDBError(message string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("%s: %w (código: %s)", message, err, pqErr.Code)
	}
	return fmt.Errorf("%s: %w", message, err)
}
