package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-expense-ledger/internal/logger"
	"github.com/MKhiriev/go-expense-ledger/models"
)

type categoryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewCategoryRepository constructs a [CategoryRepository].
func NewCategoryRepository(db *DB, logger *logger.Logger) CategoryRepository {
	logger.Debug().Msg("creating category repository")
	return &categoryRepository{
		db:     db,
		logger: logger,
	}
}

func (r *categoryRepository) CreateCategory(ctx context.Context, category models.Category) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildCreateCategoryQuery(r.db.builder(), category)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.CreateCategory").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if r.db.isUniqueViolation(err) {
			return 0, ErrCategoryAlreadyExists
		}
		log.Err(err).Str("func", "*categoryRepository.CreateCategory").Int64("user_id", category.UserID).Msg("error inserting category")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return id, nil
}

func (r *categoryRepository) FindCategory(ctx context.Context, userID, categoryID int64) (models.Category, error) {
	return r.findCategory(ctx, sq.Eq{"id": categoryID, "user_id": userID}, "*categoryRepository.FindCategory")
}

func (r *categoryRepository) FindCategoryByName(ctx context.Context, userID int64, name string) (models.Category, error) {
	return r.findCategory(ctx, sq.Eq{"name": name, "user_id": userID}, "*categoryRepository.FindCategoryByName")
}

func (r *categoryRepository) findCategory(ctx context.Context, where sq.Eq, funcName string) (models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindCategoryQuery(r.db.builder(), where)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to build query")
		return models.Category{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var category models.Category
	err = r.db.retry(ctx, func() error {
		return scanCategory(r.db.QueryRowContext(ctx, query, args...), &category)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.Category{}, ErrCategoryNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error finding category")
		return models.Category{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return category, nil
}

func (r *categoryRepository) ListCategories(ctx context.Context, userID int64) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListCategoriesQuery(r.db.builder(), userID)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.ListCategories").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.ListCategories").Int64("user_id", userID).Msg("error listing categories")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0)
	for rows.Next() {
		var category models.Category
		if err = scanCategory(rows, &category); err != nil {
			log.Err(err).Str("func", "*categoryRepository.ListCategories").Msg("error scanning category")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		categories = append(categories, category)
	}
	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", "*categoryRepository.ListCategories").Msg("error iterating categories")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return categories, nil
}

// RenameCategory sets the name (and the colour, when given) of an owned
// category.
func (r *categoryRepository) RenameCategory(ctx context.Context, category models.Category) error {
	log := logger.FromContext(ctx)

	query, args, err := buildRenameCategoryQuery(r.db.builder(), category)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.RenameCategory").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if r.db.isUniqueViolation(err) {
			return ErrCategoryAlreadyExists
		}
		log.Err(err).Str("func", "*categoryRepository.RenameCategory").Int64("category_id", category.CategoryID).Msg("error renaming category")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrCategoryNotFound)
}

// DeleteCategory removes an owned category. Expenses referencing it keep
// existing with a NULL category through the foreign key policy.
func (r *categoryRepository) DeleteCategory(ctx context.Context, userID, categoryID int64) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteCategoryQuery(r.db.builder(), userID, categoryID)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.DeleteCategory").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*categoryRepository.DeleteCategory").Int64("category_id", categoryID).Msg("error deleting category")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return expectAffected(res, ErrCategoryNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner, category *models.Category) error {
	var color sql.NullString
	if err := row.Scan(&category.CategoryID, &category.UserID, &category.Name, &color, &category.IsDefault, &category.CreatedAt); err != nil {
		return err
	}
	if color.Valid {
		category.Color = &color.String
	}
	return nil
}
