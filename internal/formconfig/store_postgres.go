package formconfig

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/majallahq/majalla/internal/platform/database/schema"
	"github.com/majallahq/majalla/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Get(context context.Context, key string) ([]byte, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM %s WHERE %s = $1
	`,
		schema.ContentFormConfig.Payload,
		schema.ContentFormConfig.Table,
		schema.ContentFormConfig.Key,
	)

	var payload []byte
	if err := repository.db.QueryRow(context, query, key).Scan(&payload); err != nil {
		return nil, dberr.Wrap(err, "get_form_config")
	}

	return payload, nil
}
