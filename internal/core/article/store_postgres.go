package article

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/majallahq/majalla/internal/platform/database/schema"
	"github.com/majallahq/majalla/internal/platform/dberr"
	"github.com/majallahq/majalla/pkg/pagination"
	"github.com/majallahq/majalla/pkg/uuidv7"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) Create(context context.Context, a *Article) error {
	if a.ID == "" {
		a.ID = uuidv7.New()
	}

	blocks, err := json.Marshal(a.Blocks)
	if err != nil {
		return dberr.Wrap(err, "marshal_article_blocks")
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9::text, '')::uuid, $10, $11, $12, $13, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.ContentArticle.Table,
		strings.Join(schema.ContentArticle.Columns(), ", "),
		schema.ContentArticle.CreatedAt, schema.ContentArticle.UpdatedAt,
	)

	err = repository.db.QueryRow(context, query,
		a.ID, a.Title, a.Slug, a.Description, blocks, a.Categories, a.Keywords,
		a.AuthorID, a.CoverMediaID, a.Status, a.IsFeatured, a.WordCount, a.PublishAt,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create_article")
	}

	return nil
}

func (repository *PostgresRepository) SlugExists(context context.Context, slug string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)
	`, schema.ContentArticle.Table, schema.ContentArticle.Slug)

	var exists bool
	if err := repository.db.QueryRow(context, query, slug).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "article_slug_exists")
	}

	return exists, nil
}

func (repository *PostgresRepository) ListByStatus(context context.Context, status Status, params pagination.Params) ([]Article, int, error) {
	countQuery := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s WHERE %s = $1
	`, schema.ContentArticle.Table, schema.ContentArticle.Status)

	var total int
	if err := repository.db.QueryRow(context, countQuery, status).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_articles_by_status")
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC
		LIMIT $2 OFFSET $3
	`,
		strings.Join(schema.ContentArticle.Columns(), ", "),
		schema.ContentArticle.Table,
		schema.ContentArticle.Status,
		schema.ContentArticle.CreatedAt,
	)

	rows, err := repository.db.Query(context, query, status, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_articles_by_status")
	}
	defer rows.Close()

	articles := make([]Article, 0, params.Limit)
	for rows.Next() {
		var a Article
		var blocks []byte
		var coverMediaID *string

		err := rows.Scan(
			&a.ID, &a.Title, &a.Slug, &a.Description, &blocks, &a.Categories, &a.Keywords,
			&a.AuthorID, &coverMediaID, &a.Status, &a.IsFeatured, &a.WordCount, &a.PublishAt,
			&a.CreatedAt, &a.UpdatedAt,
		)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "scan_article")
		}

		if err := json.Unmarshal(blocks, &a.Blocks); err != nil {
			return nil, 0, dberr.Wrap(err, "unmarshal_article_blocks")
		}
		if coverMediaID != nil {
			a.CoverMediaID = *coverMediaID
		}

		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "list_articles_by_status")
	}

	return articles, total, nil
}
