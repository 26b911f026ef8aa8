// ABOUTME: Sandbox dashboard aggregate
// ABOUTME: Counts customers by type, deals by status, products, and sales for one user
package db

import (
	"database/sql"

	"github.com/harperreed/riwora/models"
)

func GetDashboard(db *sql.DB, userID string) (models.Dashboard, error) {
	d := models.EmptyDashboard()

	counts := []struct {
		dest  *int
		query string
	}{
		{&d.NewCustomers, `SELECT COUNT(*) FROM customers WHERE user_id = ? AND type = 'new'`},
		{&d.PendingCustomers, `SELECT COUNT(*) FROM customers WHERE user_id = ? AND type = 'pending'`},
		{&d.BeBackCustomers, `SELECT COUNT(*) FROM customers WHERE user_id = ? AND type = 'be_back'`},
		{&d.OpenDeals, `SELECT COUNT(*) FROM deals WHERE user_id = ? AND status = 'open'`},
		{&d.ClosedDeals, `SELECT COUNT(*) FROM deals WHERE user_id = ? AND status = 'closed'`},
		{&d.ActiveListings, `SELECT COUNT(*) FROM products WHERE user_id = ?`},
	}
	for _, c := range counts {
		if err := db.QueryRow(c.query, userID).Scan(c.dest); err != nil {
			return models.EmptyDashboard(), err
		}
	}

	err := db.QueryRow(`
		SELECT COALESCE(SUM(pr.price), 0)
		FROM purchases pu
		JOIN products pr ON pr.id = pu.product_id
		JOIN customers c ON c.id = pu.customer_id
		WHERE c.user_id = ?
	`, userID).Scan(&d.Sales)
	if err != nil {
		return models.EmptyDashboard(), err
	}

	tasks, err := ListTasks(db, userID)
	if err != nil {
		return models.EmptyDashboard(), err
	}
	d.Tasks = tasks
	return d, nil
}
