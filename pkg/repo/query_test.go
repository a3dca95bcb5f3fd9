package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	assert.Equal(t, "SELECT 1 FROM t WHERE x = $1", Join("SELECT 1 FROM t", "", "WHERE x = $1"))
	assert.Equal(t, "", Join())
}

func TestJoinWhere(t *testing.T) {
	assert.Equal(t, "", JoinWhere())
	assert.Equal(t, "WHERE a = $1", JoinWhere("a = $1"))
	assert.Equal(t, "WHERE a = $1 AND b = $2", JoinWhere("a = $1", "b = $2"))
}

func TestFormatLimitOffset(t *testing.T) {
	assert.Equal(t, "", FormatLimitOffset(0, 0))
	assert.Equal(t, "LIMIT 10", FormatLimitOffset(10, 0))
	assert.Equal(t, "OFFSET 5", FormatLimitOffset(0, 5))
	assert.Equal(t, "LIMIT 10 OFFSET 5", FormatLimitOffset(10, 5))
}

func TestInsert(t *testing.T) {
	q := Insert("assets", []string{"id", "tenant_id"}, "id")
	assert.Equal(t, "INSERT INTO assets (id, tenant_id) VALUES ($1, $2) RETURNING id", q)

	q = Insert("assets", []string{"id"})
	assert.Equal(t, "INSERT INTO assets (id) VALUES ($1)", q)
}

func TestUpdate(t *testing.T) {
	q := Update("assets", []string{"parent_id", "promoted"}, "id = $3")
	assert.Equal(t, "UPDATE assets SET parent_id = $1, promoted = $2 WHERE id = $3", q)
}

func TestExists(t *testing.T) {
	assert.Equal(t, "SELECT EXISTS (SELECT 1 FROM t)", Exists("SELECT 1 FROM t"))
}

func TestBatchInsertQueryN(t *testing.T) {
	q, args := BatchInsertQueryN("INSERT INTO t (a, b) VALUES", [][]interface{}{
		{1, 2},
		{3, 4},
	})
	assert.Equal(t, "INSERT INTO t (a, b) VALUES ($1, $2), ($3, $4)", q)
	assert.Equal(t, []interface{}{1, 2, 3, 4}, args)

	q, args = BatchInsertQueryN("INSERT INTO t (a) VALUES", nil)
	assert.Equal(t, "INSERT INTO t (a) VALUES", q)
	assert.Nil(t, args)
}
