package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const products = `
products:
  table: products
  nameKey: name
  hasStatus: true
  fields:
    productID: { type: id, isID: true }
    categoryID: { type: id, isParent: true }
    name: { type: text, isUnique: true }
    image: { type: file }
  joins:
    category:
      key: categoryID
      table: categories
      prefix: category
      fields:
        name: { type: text }
      merges:
        categoryLabel: { fields: [code, name], glue: " - " }
      defaults:
        label: [categories.label, products.name]
  counts:
    totalOrders: { table: orders, key: productID, noDeleted: true, where: [status, "=", "1"] }
  subRequests:
    images: { type: ProductImage }
categories:
  table: categories
  fromFramework: true
  fields:
    categoryID: { type: id, isID: true }
`

func keys[V any](o Ordered[V]) []string {
	var keys []string
	for _, p := range o {
		keys = append(keys, p.Key)
	}
	return keys
}

func value[V any](t *testing.T, o Ordered[V], key string) V {
	t.Helper()
	for _, p := range o {
		if p.Key == key {
			return p.Value
		}
	}
	require.Failf(t, "missing key", "%q", key)
	var zero V
	return zero
}

func TestParseDefinitions(t *testing.T) {
	entries, err := ParseDefinitions("schemas.yaml", []byte(products), false)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "products", entries[0].Key)
	assert.False(t, entries[0].FromFramework)
	assert.Equal(t, "categories", entries[1].Key)
	assert.True(t, entries[1].FromFramework)

	def, err := entries[0].Definition()
	require.NoError(t, err)
	assert.Equal(t, "products", def.Table)
	assert.True(t, def.HasStatus)
	assert.Nil(t, def.CanCreate)
	assert.Equal(t, []string{"productID", "categoryID", "name", "image"}, keys(def.Fields))

	name := value(t, def.Fields, "name")
	assert.True(t, name.IsUnique)

	join := value(t, def.Joins, "category")
	assert.Equal(t, "categories", join.Table)
	assert.Equal(t, []string{"categoryLabel"}, keys(join.Merges))
	assert.Equal(t, " - ", join.Merges[0].Value.Glue)
	assert.Equal(t, []string{"categories.label", "products.name"}, join.Defaults[0].Value)

	count := value(t, def.Counts, "totalOrders")
	assert.Equal(t, []string{"status", "=", "1"}, count.Where)
	assert.True(t, count.NoDeleted)

	sub := value(t, def.SubRequests, "images")
	assert.Equal(t, "ProductImage", sub.Type)
}

func TestParseDefinitionsJSON(t *testing.T) {
	data := `{"users": {"table": "users", "fields": {"b": {"type": "text"}, "a": {"type": "number"}}}}`
	entries, err := ParseDefinitions("schemas.json", []byte(data), true)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].FromFramework)

	def, err := entries[0].Definition()
	require.NoError(t, err)
	assert.True(t, def.FromFramework)
	assert.Equal(t, []string{"b", "a"}, keys(def.Fields))
}

func TestParseDefinitionsErrors(t *testing.T) {
	t.Run("not a mapping", func(t *testing.T) {
		_, err := ParseDefinitions("bad.yaml", []byte("- a\n- b\n"), false)
		require.Error(t, err)
	})

	t.Run("redeclared key", func(t *testing.T) {
		_, err := ParseDefinitions("bad.yaml", []byte("a: {table: a}\na: {table: b}\n"), false)
		require.Error(t, err)
	})

	t.Run("malformed flag only fails its definition", func(t *testing.T) {
		entries, err := ParseDefinitions("bad.yaml", []byte("a: {table: a, hasStatus: maybe}\nb: {table: b}\n"), false)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		_, err = entries[0].Definition()
		require.Error(t, err)
		_, err = entries[1].Definition()
		require.NoError(t, err)
	})

	t.Run("empty document", func(t *testing.T) {
		entries, err := ParseDefinitions("empty.yaml", nil, false)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}

func TestRegistry(t *testing.T) {
	dir := t.TempDir()
	app := filepath.Join(dir, "app")
	require.NoError(t, os.MkdirAll(app, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(app, "b.yaml"), []byte("orders: {table: orders}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(app, "a.json"), []byte(`{"users": {"table": "users"}}`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(app, "notes.txt"), []byte("ignored"), 0o644))
	frame := filepath.Join(dir, "framework.yaml")
	require.NoError(t, os.WriteFile(frame, []byte("settings: {table: settings}\n"), 0o644))

	t.Run("loads sources in order", func(t *testing.T) {
		reg := NewRegistry(Source{Path: app}, Source{Path: frame, Framework: true})
		entries, err := reg.Entries()
		require.NoError(t, err)
		require.Len(t, entries, 3)
		assert.Equal(t, "users", entries[0].Key)
		assert.Equal(t, "orders", entries[1].Key)
		assert.Equal(t, "settings", entries[2].Key)
		assert.True(t, entries[2].FromFramework)

		files, err := reg.Files()
		require.NoError(t, err)
		assert.Len(t, files, 3)
	})

	t.Run("loads once", func(t *testing.T) {
		reg := NewRegistry(Source{Path: app})
		first, err := reg.Entries()
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(app, "c.yaml"), []byte("items: {table: items}\n"), 0o644))
		t.Cleanup(func() { _ = os.Remove(filepath.Join(app, "c.yaml")) })
		second, err := reg.Entries()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("duplicate key across files", func(t *testing.T) {
		dup := filepath.Join(dir, "dup.yaml")
		require.NoError(t, os.WriteFile(dup, []byte("users: {table: users}\n"), 0o644))
		_, err := NewRegistry(Source{Path: app}, Source{Path: dup}).Entries()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already declared")
	})

	t.Run("missing source", func(t *testing.T) {
		_, err := NewRegistry(Source{Path: filepath.Join(dir, "nope")}).Entries()
		require.Error(t, err)
	})

	t.Run("static", func(t *testing.T) {
		e, err := NewEntry("users", &Definition{Table: "users", FromFramework: true})
		require.NoError(t, err)
		entries, err := StaticRegistry(e).Entries()
		require.NoError(t, err)
		require.Len(t, entries, 1)
		def, err := entries[0].Definition()
		require.NoError(t, err)
		assert.Equal(t, "users", def.Table)
		assert.True(t, def.FromFramework)
	})
}
