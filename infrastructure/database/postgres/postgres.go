package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/lib/pq"
	"github.com/vfg2006/competitor-intel-api/internal/config"
)

// ErrNotConfigured indica que a URL ou a chave de acesso do banco não foram informadas
var ErrNotConfigured = errors.New("postgres: store URL or access key not configured")

type Connection struct {
	*sql.DB
}

// NewConnection cria o handle do banco sem abrir conexões de rede.
// sql.Open é preguiçoso: a primeira conexão só acontece na primeira consulta ou no Ping.
func NewConnection(cfg config.Store) (*Connection, error) {
	if !cfg.IsConfigured() {
		return nil, ErrNotConfigured
	}

	dsn := cfg.DSN
	if dsn == "" {
		dsn = config.BuildDSN(cfg)
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)

	return &Connection{DB: db}, nil
}

func (c *Connection) Ping(ctx context.Context) error {
	return c.DB.PingContext(ctx)
}
