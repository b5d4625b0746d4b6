package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_BasicSelect(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name", "category").
		Build()

	assert.Equal(t, "SELECT product_id, name, category FROM products", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SelectAllColumns(t *testing.T) {
	stmt := From("orders").Build()

	assert.Equal(t, "SELECT * FROM orders", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_SingleWhereCondition(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name").
		Where(Eq("category", "Colliers")).
		Build()

	assert.Equal(t, "SELECT product_id, name FROM products WHERE category = @p0", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "Colliers",
	}, stmt.Params)
}

func TestBuilder_MultipleWhereConditions(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name").
		Where(Eq("category", "Bagues")).
		Where(Eq("status", "active")).
		Build()

	assert.Equal(t, "SELECT product_id, name FROM products WHERE category = @p0 AND status = @p1", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "Bagues",
		"p1": "active",
	}, stmt.Params)
}

func TestBuilder_InCondition(t *testing.T) {
	stmt := From("orders").
		Select("order_id").
		Where(In("status", "paid", "shipped", "completed")).
		Build()

	assert.Equal(t, "SELECT order_id FROM orders WHERE status IN UNNEST(@p0)", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": []string{"paid", "shipped", "completed"},
	}, stmt.Params)
}

func TestBuilder_OrderByDesc(t *testing.T) {
	stmt := From("orders").
		Select("order_id").
		OrderBy("created_at", Desc).
		Build()

	assert.Equal(t, "SELECT order_id FROM orders ORDER BY created_at DESC", stmt.SQL)
	assert.Empty(t, stmt.Params)
}

func TestBuilder_LimitAndOffset(t *testing.T) {
	stmt := From("products").
		Select("product_id").
		Limit(50).
		Offset(100).
		Build()

	assert.Equal(t, "SELECT product_id FROM products LIMIT @limit OFFSET @offset", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"limit":  int64(50),
		"offset": int64(100),
	}, stmt.Params)
}

func TestBuilder_Count(t *testing.T) {
	stmt := From("products").
		Select("product_id", "name").
		Where(Eq("status", "active")).
		OrderBy("created_at", Desc).
		Limit(10).
		Count().
		Build()

	assert.Equal(t, "SELECT COUNT(*) FROM products WHERE status = @p0", stmt.SQL)
	assert.Equal(t, map[string]interface{}{
		"p0": "active",
	}, stmt.Params)
}

func TestBuilder_Immutability(t *testing.T) {
	base := From("products").Select("product_id")

	withCategory := base.Where(Eq("category", "Bracelets"))
	withStatus := base.Where(Eq("status", "active"))

	assert.Equal(t, "SELECT product_id FROM products WHERE category = @p0", withCategory.Build().SQL)
	assert.Equal(t, "SELECT product_id FROM products WHERE status = @p0", withStatus.Build().SQL)
	assert.Equal(t, "SELECT product_id FROM products", base.Build().SQL)
}
