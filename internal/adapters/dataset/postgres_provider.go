package dataset

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/zatekoja/costestimator/internal/domain/entities"
	"github.com/zatekoja/costestimator/internal/domain/providers"
	"github.com/zatekoja/costestimator/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/costestimator/pkg/errors"
)

const (
	servicesTable      = "services"
	regionFactorsTable = "region_factors"
	serviceTipsTable   = "service_tips"
)

// Schema creates the dataset tables when they do not exist
const Schema = `
CREATE TABLE IF NOT EXISTS services (
	code      TEXT PRIMARY KEY,
	name      TEXT NOT NULL,
	base_low  DOUBLE PRECISION NOT NULL CHECK (base_low >= 0),
	base_high DOUBLE PRECISION NOT NULL CHECK (base_high >= base_low),
	tip_key   TEXT,
	position  INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS region_factors (
	region TEXT PRIMARY KEY,
	factor DOUBLE PRECISION NOT NULL CHECK (factor > 0)
);
CREATE TABLE IF NOT EXISTS service_tips (
	tip_key  TEXT NOT NULL,
	position INTEGER NOT NULL,
	tip      TEXT NOT NULL,
	PRIMARY KEY (tip_key, position)
);
`

// PostgresProvider reads the dataset from the seeded services, region_factors and service_tips tables
type PostgresProvider struct {
	client *postgres.Client
	db     *goqu.Database
}

var _ providers.DatasetProvider = (*PostgresProvider)(nil)

// NewPostgresProvider creates a new Postgres dataset provider
func NewPostgresProvider(client *postgres.Client) *PostgresProvider {
	return &PostgresProvider{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Describe identifies the source
func (p *PostgresProvider) Describe() string {
	return "postgres"
}

// Load reads all three tables
func (p *PostgresProvider) Load(ctx context.Context) (*entities.Dataset, error) {
	services, err := p.loadServices(ctx)
	if err != nil {
		return nil, err
	}
	factors, err := p.loadRegionFactors(ctx)
	if err != nil {
		return nil, err
	}
	tips, err := p.loadTips(ctx)
	if err != nil {
		return nil, err
	}

	return &entities.Dataset{
		Services:      services,
		RegionFactors: factors,
		Tips:          tips,
	}, nil
}

func (p *PostgresProvider) loadServices(ctx context.Context) ([]entities.ServiceRecord, error) {
	query, args, err := p.db.Select("code", "name", "base_low", "base_high", "tip_key").
		From(servicesTable).
		Order(goqu.C("position").Asc(), goqu.C("code").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewDataLoadError("failed to build services query", err)
	}

	rows, err := p.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewDataLoadError("failed to query services", err)
	}
	defer rows.Close()

	services := []entities.ServiceRecord{}
	for rows.Next() {
		var svc entities.ServiceRecord
		var tipKey sql.NullString
		if err := rows.Scan(&svc.Code, &svc.Name, &svc.Base.Low, &svc.Base.High, &tipKey); err != nil {
			return nil, apperrors.NewDataLoadError("failed to scan service", err)
		}
		svc.TipKey = tipKey.String
		services = append(services, svc)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDataLoadError("failed to read services", err)
	}
	return services, nil
}

func (p *PostgresProvider) loadRegionFactors(ctx context.Context) (map[string]float64, error) {
	query, args, err := p.db.Select("region", "factor").From(regionFactorsTable).ToSQL()
	if err != nil {
		return nil, apperrors.NewDataLoadError("failed to build region factors query", err)
	}

	rows, err := p.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewDataLoadError("failed to query region factors", err)
	}
	defer rows.Close()

	factors := map[string]float64{}
	for rows.Next() {
		var region string
		var factor float64
		if err := rows.Scan(&region, &factor); err != nil {
			return nil, apperrors.NewDataLoadError("failed to scan region factor", err)
		}
		factors[region] = factor
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDataLoadError("failed to read region factors", err)
	}
	return factors, nil
}

func (p *PostgresProvider) loadTips(ctx context.Context) (map[string][]string, error) {
	query, args, err := p.db.Select("tip_key", "tip").
		From(serviceTipsTable).
		Order(goqu.C("tip_key").Asc(), goqu.C("position").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewDataLoadError("failed to build tips query", err)
	}

	rows, err := p.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewDataLoadError("failed to query tips", err)
	}
	defer rows.Close()

	tips := map[string][]string{}
	for rows.Next() {
		var key, tip string
		if err := rows.Scan(&key, &tip); err != nil {
			return nil, apperrors.NewDataLoadError("failed to scan tip", err)
		}
		tips[key] = append(tips[key], tip)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewDataLoadError("failed to read tips", err)
	}
	return tips, nil
}

// EnsureSchema creates the dataset tables
func (p *PostgresProvider) EnsureSchema(ctx context.Context) error {
	if _, err := p.client.DB().ExecContext(ctx, Schema); err != nil {
		return apperrors.NewInternalError("failed to create dataset schema", err)
	}
	return nil
}

// Store replaces the contents of the dataset tables with ds in a single transaction
func (p *PostgresProvider) Store(ctx context.Context, ds *entities.Dataset) error {
	tx, err := p.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{serviceTipsTable, regionFactorsTable, servicesTable} {
		query, args, err := p.db.Delete(table).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build delete query", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError(fmt.Sprintf("failed to clear %s", table), err)
		}
	}

	if err := insertRows(ctx, tx, p.db, servicesTable, serviceRows(ds.Services)); err != nil {
		return err
	}
	if err := insertRows(ctx, tx, p.db, regionFactorsTable, regionFactorRows(ds.RegionFactors)); err != nil {
		return err
	}
	if err := insertRows(ctx, tx, p.db, serviceTipsTable, tipRows(ds.Tips)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit dataset", err)
	}
	return nil
}

func insertRows(ctx context.Context, tx *sql.Tx, db *goqu.Database, table string, rows []interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	query, args, err := db.Insert(table).Rows(rows...).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to insert into %s", table), err)
	}
	return nil
}

func serviceRows(services []entities.ServiceRecord) []interface{} {
	rows := make([]interface{}, 0, len(services))
	for i, svc := range services {
		rows = append(rows, goqu.Record{
			"code":      svc.Code,
			"name":      svc.Name,
			"base_low":  svc.Base.Low,
			"base_high": svc.Base.High,
			"tip_key":   sql.NullString{String: svc.TipKey, Valid: svc.TipKey != ""},
			"position":  i,
		})
	}
	return rows
}

func regionFactorRows(factors map[string]float64) []interface{} {
	rows := make([]interface{}, 0, len(factors))
	for region, factor := range factors {
		rows = append(rows, goqu.Record{"region": region, "factor": factor})
	}
	return rows
}

func tipRows(tips map[string][]string) []interface{} {
	rows := []interface{}{}
	for key, list := range tips {
		for i, tip := range list {
			rows = append(rows, goqu.Record{"tip_key": key, "position": i, "tip": tip})
		}
	}
	return rows
}
