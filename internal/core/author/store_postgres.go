package author

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/majallahq/majalla/internal/platform/database/schema"
	"github.com/majallahq/majalla/internal/platform/dberr"
	"github.com/majallahq/majalla/pkg/uuidv7"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (repository *PostgresRepository) FindByEmail(context context.Context, email string) (*Author, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.ContentAuthor.ID, schema.ContentAuthor.Name, schema.ContentAuthor.Email,
		schema.ContentAuthor.Phone, schema.ContentAuthor.Title, schema.ContentAuthor.Organization,
		schema.ContentAuthor.LinkedInURL, schema.ContentAuthor.Bio, schema.ContentAuthor.WebsiteURL,
		schema.ContentAuthor.CreatedAt, schema.ContentAuthor.UpdatedAt,
		schema.ContentAuthor.Table, schema.ContentAuthor.Email,
	)
	a := &Author{}

	err := repository.db.QueryRow(context, query, email).Scan(
		&a.ID, &a.Name, &a.Email, &a.Phone, &a.Title, &a.Organization,
		&a.LinkedInURL, &a.Bio, &a.WebsiteURL, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find_author_by_email")
	}

	return a, nil
}

func (repository *PostgresRepository) Create(context context.Context, a *Author) error {
	if a.ID == "" {
		a.ID = uuidv7.New()
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.ContentAuthor.Table,
		schema.ContentAuthor.ID, schema.ContentAuthor.Name, schema.ContentAuthor.Email,
		schema.ContentAuthor.Phone, schema.ContentAuthor.Title, schema.ContentAuthor.Organization,
		schema.ContentAuthor.LinkedInURL, schema.ContentAuthor.Bio, schema.ContentAuthor.WebsiteURL,
		schema.ContentAuthor.CreatedAt, schema.ContentAuthor.UpdatedAt,
		schema.ContentAuthor.CreatedAt, schema.ContentAuthor.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		a.ID, a.Name, a.Email, a.Phone, a.Title, a.Organization,
		a.LinkedInURL, a.Bio, a.WebsiteURL,
	).Scan(&a.CreatedAt, &a.UpdatedAt)

	// Not wrapped through dberr.Wrap: the service needs to see raw 23505
	// via dberr.IsUniqueViolation to resolve the create race.
	return err
}

func (repository *PostgresRepository) Update(context context.Context, a *Author) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = NOW()
		WHERE %s = $1
		RETURNING %s
	`,
		schema.ContentAuthor.Table,
		schema.ContentAuthor.Name, schema.ContentAuthor.Phone, schema.ContentAuthor.Title,
		schema.ContentAuthor.Organization, schema.ContentAuthor.LinkedInURL, schema.ContentAuthor.Bio,
		schema.ContentAuthor.WebsiteURL, schema.ContentAuthor.UpdatedAt,
		schema.ContentAuthor.ID,
		schema.ContentAuthor.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		a.ID, a.Name, a.Phone, a.Title, a.Organization, a.LinkedInURL, a.Bio, a.WebsiteURL,
	).Scan(&a.UpdatedAt)
	return dberr.Wrap(err, "update_author")
}
