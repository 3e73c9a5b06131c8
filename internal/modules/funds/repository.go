package funds

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/fundadvisor/internal/database"
	"github.com/aristath/fundadvisor/internal/domain"
)

const fundColumns = `id, name, category, nav, aum, expense_ratio, returns_1y, returns_3y,
	returns_5y, sharpe_ratio, alpha, beta, sortino, esg_score, min_investment`

// Repository persists fund snapshots in the funds SQLite database.
type Repository struct {
	db  *sql.DB
	log zerolog.Logger
}

// NewRepository creates a new fund repository
func NewRepository(db *sql.DB, log zerolog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With().Str("repo", "funds").Logger(),
	}
}

// ReplaceAll swaps the stored snapshot for records in a single transaction.
func (r *Repository) ReplaceAll(records []domain.FundRecord) error {
	err := database.WithTransaction(r.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec("DELETE FROM funds"); err != nil {
			return fmt.Errorf("failed to clear funds: %w", err)
		}

		stmt, err := tx.Prepare(`INSERT INTO funds (position, ` + fundColumns + `)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("failed to prepare fund insert: %w", err)
		}
		defer stmt.Close()

		for i, f := range records {
			_, err := stmt.Exec(i, f.ID, f.Name, f.Category,
				nullable(f.NAV), nullable(f.AUM), nullable(f.ExpenseRatio),
				nullable(f.Returns1Y), nullable(f.Returns3Y), nullable(f.Returns5Y),
				nullable(f.SharpeRatio), nullable(f.Alpha), nullable(f.Beta),
				nullable(f.Sortino), nullable(f.ESGScore), nullable(f.MinInvestment))
			if err != nil {
				return fmt.Errorf("failed to insert fund %s: %w", f.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.log.Info().Int("count", len(records)).Msg("Fund snapshot stored")
	return nil
}

// GetAll returns every stored fund in its original dataset order.
func (r *Repository) GetAll(ctx context.Context) ([]domain.FundRecord, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+fundColumns+" FROM funds ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to query funds: %w", err)
	}
	defer rows.Close()

	var records []domain.FundRecord
	for rows.Next() {
		var f domain.FundRecord
		var nav, aum, expense, r1, r3, r5, sharpe, alpha, beta, sortino, esg, minInv sql.NullFloat64

		if err := rows.Scan(&f.ID, &f.Name, &f.Category, &nav, &aum, &expense, &r1, &r3, &r5,
			&sharpe, &alpha, &beta, &sortino, &esg, &minInv); err != nil {
			return nil, fmt.Errorf("failed to scan fund: %w", err)
		}

		f.NAV, f.AUM, f.ExpenseRatio = fromNull(nav), fromNull(aum), fromNull(expense)
		f.Returns1Y, f.Returns3Y, f.Returns5Y = fromNull(r1), fromNull(r3), fromNull(r5)
		f.SharpeRatio, f.Alpha, f.Beta = fromNull(sharpe), fromNull(alpha), fromNull(beta)
		f.Sortino, f.ESGScore, f.MinInvestment = fromNull(sortino), fromNull(esg), fromNull(minInv)

		records = append(records, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating funds: %w", err)
	}

	return records, nil
}

// Count returns the number of stored funds
func (r *Repository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM funds").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count funds: %w", err)
	}
	return n, nil
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func fromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return domain.Float(v.Float64)
}
