package gen

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/schemagen/database"
	"github.com/syssam/schemagen/database/sqldb"
)

const shop = `
products:
  table: products
  fields:
    productID: { type: id, isID: true }
    categoryID: { type: id, isParent: true }
    name: {}
  joins:
    category:
      key: categoryID
      table: categories
      prefix: category
      fields:
        name: {}
      merges:
        categoryLabel: { fields: [code, name], glue: " - " }
      defaults:
        label: [categories.label, products.name]
  counts:
    totalOrders: { table: orders, key: productID, noDeleted: true, where: [status, "=", "1"] }
    revenue: { type: price, table: orders, key: productID, isSum: true, value: amount, mult: 100, noDeleted: true }
`

func TestStructureSQL(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	drv := sqldb.OpenDB("sqlite", db)
	t.Cleanup(func() { drv.Close() })
	ctx := context.Background()

	for _, stmt := range []string{
		"CREATE TABLE products (productID INTEGER PRIMARY KEY, categoryID INTEGER, name TEXT)",
		"CREATE TABLE categories (categoryID INTEGER PRIMARY KEY, code TEXT, name TEXT, label TEXT)",
		"CREATE TABLE orders (orderID INTEGER PRIMARY KEY, productID INTEGER, status INTEGER, amount INTEGER, isDeleted INTEGER DEFAULT 0)",
		"INSERT INTO categories VALUES (1, 'SH', 'Shoes', NULL), (2, 'HT', 'Hats', 'Headwear')",
		"INSERT INTO products VALUES (1, 1, 'Sneaker'), (2, 2, 'Cap'), (3, 3, 'Orphan')",
		"INSERT INTO orders (productID, status, amount, isDeleted) VALUES (1, 1, 5, 0), (1, 1, 7, 0), (1, 0, 100, 0), (1, 1, 1000, 1), (2, 1, 3, 0)",
	} {
		_, err := drv.ExecContext(ctx, stmt)
		require.NoError(t, err, stmt)
	}

	s := newStructure(t, shop)
	opt := database.SelectOption{Table: s.Table, From: s.From(), Columns: s.Selects()}
	rows, err := drv.Select(ctx, opt, database.NewQuery().OrderBy("products.productID", true))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	totals, revenue := s.Counts[0], s.Counts[1]

	sneaker := rows[0]
	assert.Equal(t, "Sneaker", sneaker.String("name"))
	assert.Equal(t, "Shoes", sneaker.String("categoryName"))
	assert.Equal(t, "SH - Shoes", sneaker.String("categoryLabel"))
	assert.Equal(t, "Sneaker", sneaker.String("label"))
	assert.Equal(t, 2, totals.ValueOf(sneaker))
	assert.Equal(t, 112.0, revenue.ValueOf(sneaker))

	hat := rows[1]
	assert.Equal(t, "Headwear", hat.String("label"))
	assert.Equal(t, 1, totals.ValueOf(hat))
	assert.Equal(t, 3.0, revenue.ValueOf(hat))

	orphan := rows[2]
	assert.Nil(t, orphan.Any("categoryName"))
	assert.Equal(t, 0, totals.ValueOf(orphan))

	total, err := drv.Count(ctx, opt, database.NewQuery().Equal("products.categoryID", 1))
	require.NoError(t, err)
	assert.Equal(t, 1, total)
}
