// ABOUTME: Sandbox product catalog and purchase history
package db

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/riwora/models"
)

func CreateProduct(db *sql.DB, userID string, p *models.Product, image string) error {
	p.ID = uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO products (id, user_id, name, sku, price, image)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, userID, p.Name, p.SKU, p.Price, image)
	return err
}

// RecordPurchase links a product to a customer and returns the purchase id.
func RecordPurchase(db *sql.DB, customerID, productID string) (string, error) {
	id := uuid.New().String()
	_, err := db.Exec(`
		INSERT INTO purchases (id, customer_id, product_id, created_at)
		VALUES (?, ?, ?, ?)
	`, id, customerID, productID, time.Now())
	return id, err
}

func ListPurchases(db *sql.DB, customerID string) ([]models.Purchase, error) {
	rows, err := db.Query(`
		SELECT pu.id, pr.name, pr.sku, pr.image
		FROM purchases pu JOIN products pr ON pr.id = pu.product_id
		WHERE pu.customer_id = ?
		ORDER BY pu.created_at DESC
	`, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	purchases := []models.Purchase{}
	for rows.Next() {
		var p models.Purchase
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Image); err != nil {
			return nil, err
		}
		purchases = append(purchases, p)
	}
	return purchases, rows.Err()
}

func SearchProducts(db *sql.DB, query string, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.ToLower(query) + "%"
	rows, err := db.Query(`
		SELECT id, name, sku, price FROM products
		WHERE LOWER(name) LIKE ? OR LOWER(sku) LIKE ?
		ORDER BY name
		LIMIT ?
	`, pattern, pattern, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.SKU, &p.Price); err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}
