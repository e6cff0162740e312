package repository

import (
	"context"
	"facilitybooking/internal/db"
	"fmt"
	"strconv"
)

type CheckoutFilter struct {
	Date       string
	FacilityID string
	Status     string
	Limit      int
	Offset     int
}

// ListCheckouts returns checkouts newest first, narrowed by the non-empty filter fields.
func (r *CheckoutRepository) ListCheckouts(ctx context.Context, f CheckoutFilter) ([]db.Checkout, int64, error) {
	where := ` WHERE 1=1`
	args := []any{}
	idx := 1

	if f.Date != "" {
		where += " AND DATE(start_time) = $" + strconv.Itoa(idx)
		args = append(args, f.Date)
		idx++
	}
	if f.FacilityID != "" {
		where += " AND facility_id = $" + strconv.Itoa(idx)
		args = append(args, f.FacilityID)
		idx++
	}
	if f.Status != "" {
		where += " AND status = $" + strconv.Itoa(idx)
		args = append(args, f.Status)
		idx++
	}

	var total int64
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM checkouts`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting checkouts: %w", err)
	}

	query := `SELECT ` + checkoutColumns + ` FROM checkouts` + where + ` ORDER BY start_time DESC`
	if f.Limit > 0 {
		query += " LIMIT $" + strconv.Itoa(idx)
		args = append(args, f.Limit)
		idx++
	}
	if f.Offset > 0 {
		query += " OFFSET $" + strconv.Itoa(idx)
		args = append(args, f.Offset)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing checkouts: %w", err)
	}
	defer rows.Close()

	var checkouts []db.Checkout
	for rows.Next() {
		c, err := scanCheckout(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning checkout: %w", err)
		}
		checkouts = append(checkouts, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error after iterating checkouts: %w", err)
	}
	return checkouts, total, nil
}
