package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
)

type JobRepository struct {
	DB *sql.DB
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{DB: db}
}

// GetActiveCheckoutIDsPastEndTime returns active checkouts whose booked range has ended.
func (r *JobRepository) GetActiveCheckoutIDsPastEndTime(ctx context.Context) ([]int, error) {
	query := `SELECT id FROM checkouts WHERE status = 'active' AND end_time < NOW()`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying active checkouts past end time: %w", err)
	}
	defer rows.Close()

	var ids []int
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning checkout ID: %w", err)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating rows: %w", err)
	}
	return ids, nil
}

// UpdateCheckoutStatuses sets status and updated_at on every listed checkout.
func (r *JobRepository) UpdateCheckoutStatuses(ctx context.Context, ids []int, newStatus string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE checkouts SET status = $1, updated_at = NOW() WHERE id = ANY($2)`
	result, err := r.DB.ExecContext(ctx, query, newStatus, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("error updating checkout statuses: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Printf("Could not get rows affected: %v", err)
	} else {
		log.Printf("Updated status for %d checkouts to '%s'", rowsAffected, newStatus)
	}
	return nil
}

// DeletePendingCheckoutsOlderThan removes unpaid checkouts created before the cutoff and
// returns the backend booking ids they held.
func (r *JobRepository) DeletePendingCheckoutsOlderThan(ctx context.Context, before time.Time) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx,
		`DELETE FROM checkouts WHERE status = 'pending' AND created_at < $1 RETURNING booking_id`, before)
	if err != nil {
		return nil, fmt.Errorf("error deleting pending checkouts: %w", err)
	}
	defer rows.Close()

	var bookingIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning deleted booking id: %w", err)
		}
		bookingIDs = append(bookingIDs, id)
	}
	return bookingIDs, rows.Err()
}
