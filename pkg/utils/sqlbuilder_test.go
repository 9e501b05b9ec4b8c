package utils_test

import (
	"testing"

	"github.com/pseudomuto/viewkeeper/pkg/utils"
	"github.com/stretchr/testify/require"
)

func TestSQLBuilder_CREATE(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() *utils.SQLBuilder
		expected string
	}{
		{
			name: "CREATE VIEW",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Create("VIEW").Ident(`"v1"`).As("SELECT t.id FROM t")
			},
			expected: `CREATE VIEW "v1" AS SELECT t.id FROM t`,
		},
		{
			name: "CREATE OR REPLACE VIEW",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().CreateOrReplace("VIEW").Ident(`"v1"`).As("SELECT 1")
			},
			expected: `CREATE OR REPLACE VIEW "v1" AS SELECT 1`,
		},
		{
			name: "CREATE MATERIALIZED VIEW IF NOT EXISTS",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Create("MATERIALIZED VIEW").IfNotExists().Ident(`"v1"`).As("SELECT 1")
			},
			expected: `CREATE MATERIALIZED VIEW IF NOT EXISTS "v1" AS SELECT 1`,
		},
		{
			name: "ClickHouse materialized view clauses",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().
					Create("MATERIALIZED VIEW").
					Ident("`mv`").
					OnCluster("prod").
					To("analytics.daily").
					Engine("MergeTree() ORDER BY id").
					Raw("POPULATE").
					As("SELECT 1")
			},
			expected: "CREATE MATERIALIZED VIEW `mv` ON CLUSTER `prod` TO `analytics`.`daily` ENGINE = MergeTree() ORDER BY id POPULATE AS SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.builder().String())
		})
	}
}

func TestSQLBuilder_DROP(t *testing.T) {
	tests := []struct {
		name     string
		builder  func() *utils.SQLBuilder
		expected string
	}{
		{
			name:     "DROP VIEW IF EXISTS",
			builder:  func() *utils.SQLBuilder { return utils.NewSQLBuilder().Drop("VIEW").IfExists().Ident(`"v1"`) },
			expected: `DROP VIEW IF EXISTS "v1"`,
		},
		{
			name: "with cascade",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Drop("MATERIALIZED VIEW").IfExists().Ident(`"v1"`).RawIf(true, "CASCADE")
			},
			expected: `DROP MATERIALIZED VIEW IF EXISTS "v1" CASCADE`,
		},
		{
			name: "cascade disabled leaves no trailing space",
			builder: func() *utils.SQLBuilder {
				return utils.NewSQLBuilder().Drop("MATERIALIZED VIEW").IfExists().Ident(`"v1"`).RawIf(false, "CASCADE")
			},
			expected: `DROP MATERIALIZED VIEW IF EXISTS "v1"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.builder().String())
		})
	}
}

func TestSQLBuilder_With(t *testing.T) {
	tests := []struct {
		name     string
		params   map[string]string
		expected string
	}{
		{
			name:     "single parameter",
			params:   map[string]string{"fillfactor": "70"},
			expected: `CREATE MATERIALIZED VIEW "v1" WITH (fillfactor = 70) AS SELECT 1`,
		},
		{
			name:     "sorted by key",
			params:   map[string]string{"fillfactor": "70", "autovacuum_enabled": "off"},
			expected: `CREATE MATERIALIZED VIEW "v1" WITH (autovacuum_enabled = off, fillfactor = 70) AS SELECT 1`,
		},
		{
			name:     "empty",
			params:   map[string]string{},
			expected: `CREATE MATERIALIZED VIEW "v1" AS SELECT 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := utils.NewSQLBuilder().Create("MATERIALIZED VIEW").Ident(`"v1"`).With(tt.params).As("SELECT 1").String()
			require.Equal(t, tt.expected, result)
		})
	}
}

func TestSQLBuilder_EmptyPartsSkipped(t *testing.T) {
	result := utils.NewSQLBuilder().
		Drop("TABLE").
		Ident("").
		OnCluster("").
		To("").
		Engine("").
		Raw("").
		As("").
		String()
	require.Equal(t, "DROP TABLE", result)
}
