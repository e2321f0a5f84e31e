package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"time"

	_ "github.com/lib/pq"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/competitor-intel-api/internal/config"
)

const (
	idLength   = 21
	characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

type Competitor struct {
	Name     string
	Industry string
}

// As tabelas são criadas com IF NOT EXISTS para que o script possa rodar a cada deploy
var schema = []struct {
	name string
	ddl  string
}{
	{
		name: "competitors",
		ddl: `CREATE TABLE IF NOT EXISTS competitors (
			id VARCHAR(21) PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			industry TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "summary_metrics",
		ddl: `CREATE TABLE IF NOT EXISTS summary_metrics (
			id VARCHAR(64) PRIMARY KEY,
			total_spend NUMERIC(14,2) NOT NULL DEFAULT 0,
			active_campaigns INTEGER NOT NULL DEFAULT 0,
			total_impressions BIGINT NOT NULL DEFAULT 0,
			avg_ctr NUMERIC(6,3) NOT NULL DEFAULT 0,
			platform_distribution JSONB NOT NULL DEFAULT '{}'::jsonb,
			top_performers JSONB NOT NULL DEFAULT '[]'::jsonb,
			industry_spend JSONB NOT NULL DEFAULT '{}'::jsonb,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "daily_metrics",
		ddl: `CREATE TABLE IF NOT EXISTS daily_metrics (
			id VARCHAR(64) PRIMARY KEY,
			competitor_id VARCHAR(21) REFERENCES competitors(id) ON DELETE SET NULL,
			date DATE NOT NULL,
			platform TEXT NOT NULL,
			status TEXT NOT NULL DEFAULT 'active',
			daily_spend NUMERIC(14,2) NOT NULL DEFAULT 0,
			daily_impressions BIGINT NOT NULL DEFAULT 0,
			daily_ctr NUMERIC(6,3) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "daily_metrics_date_idx",
		ddl:  `CREATE INDEX IF NOT EXISTS daily_metrics_date_idx ON daily_metrics (date, daily_spend DESC)`,
	},
	{
		name: "targeting_intel",
		ddl: `CREATE TABLE IF NOT EXISTS targeting_intel (
			id VARCHAR(64) PRIMARY KEY,
			competitor_id TEXT NOT NULL,
			competitor_name TEXT NOT NULL,
			age_distribution JSONB NOT NULL DEFAULT '{}'::jsonb,
			gender_distribution JSONB NOT NULL DEFAULT '{}'::jsonb,
			geographic_spend JSONB NOT NULL DEFAULT '{}'::jsonb,
			interest_clusters JSONB NOT NULL DEFAULT '[]'::jsonb,
			funnel_stages JSONB NOT NULL DEFAULT '{}'::jsonb,
			bidding_strategy JSONB NOT NULL DEFAULT '{}'::jsonb,
			advanced_targeting JSONB NOT NULL DEFAULT '{}'::jsonb,
			data_source TEXT,
			confidence_score NUMERIC(4,3) NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
	},
	{
		name: "targeting_intel_competitor_idx",
		ddl:  `CREATE INDEX IF NOT EXISTS targeting_intel_competitor_idx ON targeting_intel (competitor_id, created_at DESC)`,
	},
}

func setupLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logrus.SetOutput(os.Stdout)
	logrus.Info("Iniciando script de migração...")
}

func generateID() string {
	id, _ := gonanoid.Generate(characters, idLength)
	return id
}

func createSchema(ctx context.Context, db *sql.DB) error {
	for _, step := range schema {
		if _, err := db.ExecContext(ctx, step.ddl); err != nil {
			logrus.WithError(err).Errorf("ERRO ao criar %s", step.name)
			return err
		}
		logrus.Infof("%s pronto", step.name)
	}

	return nil
}

func insertCompetitors(ctx context.Context, tx *sql.Tx, competitors []Competitor) {
	logrus.Infof("Iniciando inserção de %d concorrentes...", len(competitors))
	startTime := time.Now()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO competitors (id, name, industry) VALUES ($1, $2, $3) ON CONFLICT (name) DO NOTHING`)
	if err != nil {
		logrus.Fatalf("ERRO ao preparar statement para competitors: %v", err)
	}
	defer stmt.Close()

	successCount := 0
	skippedCount := 0
	errorCount := 0

	for i, c := range competitors {
		result, err := stmt.ExecContext(ctx, generateID(), c.Name, c.Industry)
		if err != nil {
			logrus.Errorf("ERRO ao inserir concorrente [%d/%d] %s: %v", i+1, len(competitors), c.Name, err)
			errorCount++
			continue
		}

		if affected, _ := result.RowsAffected(); affected == 0 {
			skippedCount++
			continue
		}
		successCount++
	}

	logrus.Infof("Inserção de concorrentes concluída em %v. Sucesso: %d, Já existentes: %d, Erros: %d",
		time.Since(startTime), successCount, skippedCount, errorCount)
}

func main() {
	seed := flag.Bool("seed", false, "insere a lista inicial de concorrentes")
	dsn := flag.String("dsn", "", "string de conexão; quando vazia usa STORE_URL e STORE_ACCESS_KEY")
	flag.Parse()

	setupLogger()

	if *dsn == "" {
		cfg, err := config.NewConfig()
		if err != nil {
			logrus.Fatalf("ERRO ao carregar configuração: %v", err)
		}
		if !cfg.Store.IsConfigured() {
			logrus.Fatal("STORE_URL e STORE_ACCESS_KEY são obrigatórios para a migração")
		}
		*dsn = cfg.Store.DSN
		if *dsn == "" {
			*dsn = config.BuildDSN(cfg.Store)
		}
	}

	logrus.Info("Conectando ao banco de dados...")
	db, err := sql.Open("postgres", *dsn)
	if err != nil {
		logrus.Fatalf("ERRO ao conectar ao banco de dados: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		logrus.Fatalf("ERRO ao verificar conexão com o banco: %v", err)
	}
	logrus.Info("Conexão com o banco de dados estabelecida com sucesso")

	startTime := time.Now()

	if err := createSchema(ctx, db); err != nil {
		os.Exit(1)
	}

	if !*seed {
		logrus.Infof("Migração concluída em %v", time.Since(startTime))
		return
	}

	competitors := []Competitor{
		{"Nike", "Sportswear"},
		{"Adidas", "Sportswear"},
		{"Puma", "Sportswear"},
		{"Under Armour", "Sportswear"},
		{"Reebok", "Sportswear"},
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		logrus.Fatalf("ERRO ao iniciar transação: %v", err)
	}

	insertCompetitors(ctx, tx, competitors)

	if err := tx.Commit(); err != nil {
		logrus.Errorf("ERRO ao confirmar transação: %v", err)
		if err := tx.Rollback(); err != nil {
			logrus.Fatalf("ERRO ao reverter transação: %v", err)
		}
		logrus.Info("Transação revertida")
		os.Exit(1)
	}

	logrus.Infof("Migração e carga inicial concluídas em %v!", time.Since(startTime))
}
