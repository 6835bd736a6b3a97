package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-expense-ledger/models"
)

// Column lists shared by the SELECT builders and the row scanners.
var (
	userColumns     = []string{"id", "name", "email", "password_hash", "created_at"}
	categoryColumns = []string{"id", "user_id", "name", "color", "is_default", "created_at"}
	expenseColumns  = []string{
		"e.id",
		"e.user_id",
		"e.category_id",
		"COALESCE(c.name, '')",
		"e.description",
		"e.amount",
		"e.currency",
		"e.spent_at",
		"e.created_at",
	}
	sessionColumns = []string{"id", "user_id", "created_at", "expires_at"}
)

// wireTime formats t in UTC using the storage timestamp layout.
func wireTime(t time.Time) string {
	return t.UTC().Format(models.SpentAtLayout)
}

// users

func buildCreateUserQuery(b sq.StatementBuilderType, user models.User) (string, []any, error) {
	return b.Insert("users").
		Columns("name", "email", "password_hash").
		Values(user.Name, user.Email, user.PasswordHash).
		Suffix("RETURNING id, created_at").
		ToSql()
}

func buildFindUserQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
}

func buildUpdatePasswordHashQuery(b sq.StatementBuilderType, userID int64, passwordHash string) (string, []any, error) {
	return b.Update("users").
		Set("password_hash", passwordHash).
		Where(sq.Eq{"id": userID}).
		ToSql()
}

// categories

func buildCreateCategoryQuery(b sq.StatementBuilderType, category models.Category) (string, []any, error) {
	return b.Insert("categories").
		Columns("user_id", "name", "color", "is_default").
		Values(category.UserID, category.Name, category.Color, category.IsDefault).
		Suffix("RETURNING id").
		ToSql()
}

func buildFindCategoryQuery(b sq.StatementBuilderType, where sq.Eq) (string, []any, error) {
	return b.Select(categoryColumns...).
		From("categories").
		Where(where).
		ToSql()
}

func buildListCategoriesQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select(categoryColumns...).
		From("categories").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("name ASC").
		ToSql()
}

func buildRenameCategoryQuery(b sq.StatementBuilderType, category models.Category) (string, []any, error) {
	update := b.Update("categories").
		Set("name", category.Name).
		Where(sq.Eq{"id": category.CategoryID, "user_id": category.UserID})

	// colour is only replaced when supplied
	if category.Color != nil {
		update = update.Set("color", *category.Color)
	}

	return update.ToSql()
}

func buildDeleteCategoryQuery(b sq.StatementBuilderType, userID, categoryID int64) (string, []any, error) {
	return b.Delete("categories").
		Where(sq.Eq{"id": categoryID, "user_id": userID}).
		ToSql()
}

// expenses

func buildCreateExpenseQuery(b sq.StatementBuilderType, userID int64, expense models.CanonicalExpense) (string, []any, error) {
	return b.Insert("expenses").
		Columns("user_id", "category_id", "description", "amount", "currency", "spent_at").
		Values(userID, expense.CategoryID, expense.Description, expense.Amount, expense.Currency, expense.SpentAt).
		Suffix("RETURNING id").
		ToSql()
}

func selectExpenses(b sq.StatementBuilderType) sq.SelectBuilder {
	return b.Select(expenseColumns...).
		From("expenses e").
		LeftJoin("categories c ON c.id = e.category_id")
}

func buildGetExpenseQuery(b sq.StatementBuilderType, userID, expenseID int64) (string, []any, error) {
	return selectExpenses(b).
		Where(sq.Eq{"e.id": expenseID, "e.user_id": userID}).
		ToSql()
}

func buildListExpensesQuery(b sq.StatementBuilderType, userID int64, limit uint64) (string, []any, error) {
	return selectExpenses(b).
		Where(sq.Eq{"e.user_id": userID}).
		OrderBy("e.spent_at DESC", "e.id DESC").
		Limit(limit).
		ToSql()
}

func buildUpdateExpenseQuery(b sq.StatementBuilderType, userID, expenseID int64, expense models.CanonicalExpense) (string, []any, error) {
	return b.Update("expenses").
		Set("category_id", expense.CategoryID).
		Set("description", expense.Description).
		Set("amount", expense.Amount).
		Set("currency", expense.Currency).
		Set("spent_at", expense.SpentAt).
		Where(sq.Eq{"id": expenseID, "user_id": userID}).
		ToSql()
}

func buildDeleteExpenseQuery(b sq.StatementBuilderType, userID, expenseID int64) (string, []any, error) {
	return b.Delete("expenses").
		Where(sq.Eq{"id": expenseID, "user_id": userID}).
		ToSql()
}

// sessions

func buildCreateSessionQuery(b sq.StatementBuilderType, session models.Session) (string, []any, error) {
	return b.Insert("sessions").
		Columns(sessionColumns...).
		Values(session.ID, session.UserID, wireTime(session.CreatedAt), wireTime(session.ExpiresAt)).
		ToSql()
}

func buildFindSessionQuery(b sq.StatementBuilderType, sessionID string) (string, []any, error) {
	return b.Select(sessionColumns...).
		From("sessions").
		Where(sq.Eq{"id": sessionID}).
		ToSql()
}

func buildTouchSessionQuery(b sq.StatementBuilderType, sessionID string, expiresAt time.Time) (string, []any, error) {
	return b.Update("sessions").
		Set("expires_at", wireTime(expiresAt)).
		Where(sq.Eq{"id": sessionID}).
		ToSql()
}

func buildDeleteSessionQuery(b sq.StatementBuilderType, sessionID string) (string, []any, error) {
	return b.Delete("sessions").
		Where(sq.Eq{"id": sessionID}).
		ToSql()
}

// buildDeleteExpiredSessionsQuery matches sessions past their idle deadline
// or, when maxLifetime is positive, past their absolute lifetime.
func buildDeleteExpiredSessionsQuery(b sq.StatementBuilderType, now time.Time, maxLifetime time.Duration) (string, []any, error) {
	expired := sq.Or{sq.LtOrEq{"expires_at": wireTime(now)}}
	if maxLifetime > 0 {
		expired = append(expired, sq.LtOrEq{"created_at": wireTime(now.Add(-maxLifetime))})
	}

	return b.Delete("sessions").
		Where(expired).
		ToSql()
}

func buildAddFlashQuery(b sq.StatementBuilderType, sessionID string, flash models.Flash) (string, []any, error) {
	return b.Insert("session_flashes").
		Columns("session_id", "kind", "message").
		Values(sessionID, string(flash.Kind), flash.Message).
		ToSql()
}

func buildPopFlashesQuery(b sq.StatementBuilderType, sessionID string) (string, []any, error) {
	return b.Delete("session_flashes").
		Where(sq.Eq{"session_id": sessionID}).
		Suffix("RETURNING id, kind, message").
		ToSql()
}

// dashboard

func buildSumExpensesQuery(b sq.StatementBuilderType, userID int64, period *models.MonthRange) (string, []any, error) {
	query := b.Select("COALESCE(SUM(amount), 0)").
		From("expenses").
		Where(sq.Eq{"user_id": userID})

	if period != nil {
		query = query.Where(sq.And{
			sq.GtOrEq{"spent_at": period.Start},
			sq.Lt{"spent_at": period.End},
		})
	}

	return query.ToSql()
}

func buildCountCategoriesQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select("COUNT(*)").
		From("categories").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
}

func buildCategoryTotalsQuery(b sq.StatementBuilderType, userID int64) (string, []any, error) {
	return b.Select("c.id", "c.name", "c.color", "COALESCE(SUM(e.amount), 0) AS total").
		From("categories c").
		LeftJoin("expenses e ON e.category_id = c.id AND e.user_id = c.user_id").
		Where(sq.Eq{"c.user_id": userID}).
		GroupBy("c.id", "c.name", "c.color").
		OrderBy("total DESC", "c.name ASC").
		ToSql()
}
