package sqlitemigrate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpSection(t *testing.T) {
	content := "-- +migrate Up\nCREATE TABLE a (id TEXT);\n-- +migrate Down\nDROP TABLE a;\n"
	assert.Equal(t, "\nCREATE TABLE a (id TEXT);\n", UpSection(content))

	assert.Equal(t, "CREATE TABLE b (id TEXT);", UpSection("CREATE TABLE b (id TEXT);"))
	assert.Equal(t, "\nCREATE TABLE c (id TEXT);", UpSection("-- +migrate Up\nCREATE TABLE c (id TEXT);"))
}
