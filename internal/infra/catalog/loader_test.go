//go:build unit

package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"stamp-rally/internal/domain/reward"
	"stamp-rally/internal/infra/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoTiers = `
rewards:
  - id: 10
    name: Book cafe voucher
    type: coupon
    required_stamps: 3
    expiry_days: 14
  - id: 11
    name: Festival entry
    type: entry
    required_stamps: 8
    expiry_days: 0
`

func TestLoad(t *testing.T) {
	t.Run("empty path gives the built-in table", func(t *testing.T) {
		c, err := catalog.Load("")
		require.NoError(t, err)
		assert.Equal(t, reward.DefaultCatalog().All(), c.All())
	})

	t.Run("reads a yaml file in declaration order", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rewards.yaml")
		require.NoError(t, os.WriteFile(path, []byte(twoTiers), 0o600))

		c, err := catalog.Load(path)
		require.NoError(t, err)
		defs := c.All()
		require.Len(t, defs, 2)
		assert.Equal(t, reward.Definition{ID: 10, Name: "Book cafe voucher", Type: reward.TypeCoupon, RequiredStamps: 3, ExpiryDays: 14}, defs[0])
		assert.Equal(t, 11, defs[1].ID)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := catalog.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestParseRejectsBadTables(t *testing.T) {
	cases := map[string]string{
		"unknown field":  "rewards:\n  - id: 1\n    name: x\n    stamps: 3\n",
		"duplicate ids":  "rewards:\n  - {id: 1, name: a}\n  - {id: 1, name: b}\n",
		"no rewards":     "rewards: []\n",
		"negative count": "rewards:\n  - {id: 1, name: a, required_stamps: -2}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := catalog.Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}
