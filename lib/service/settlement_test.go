package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitPrice(t *testing.T) {
	tests := []struct {
		name            string
		price           int64
		feeRate         int64
		royaltyRate     int64
		sellerIsCreator bool
		fee             int64
		royalty         int64
		proceeds        int64
	}{
		{
			name:        "default fee with royalty",
			price:       1000,
			feeRate:     25,
			royaltyRate: 50,
			fee:         25,
			royalty:     50,
			proceeds:    925,
		},
		{
			name:            "creator sale pays no royalty",
			price:           1000,
			feeRate:         25,
			royaltyRate:     50,
			sellerIsCreator: true,
			fee:             25,
			royalty:         0,
			proceeds:        975,
		},
		{
			name:        "truncating division keeps the remainder with the seller",
			price:       999,
			feeRate:     25,
			royaltyRate: 50,
			fee:         24,
			royalty:     49,
			proceeds:    926,
		},
		{
			name:        "small price truncates both shares to zero",
			price:       10,
			feeRate:     25,
			royaltyRate: 50,
			fee:         0,
			royalty:     0,
			proceeds:    10,
		},
		{
			name:        "offer scenario",
			price:       800,
			feeRate:     25,
			royaltyRate: 50,
			fee:         20,
			royalty:     40,
			proceeds:    740,
		},
		{
			name:        "royalty and fee consume the whole price",
			price:       1000,
			feeRate:     25,
			royaltyRate: 975,
			fee:         25,
			royalty:     975,
			proceeds:    0,
		},
		{
			name:        "royalty and fee overdraw the price",
			price:       1000,
			feeRate:     25,
			royaltyRate: 1000,
			fee:         25,
			royalty:     1000,
			proceeds:    -25,
		},
		{
			name:        "maximum royalty",
			price:       1000,
			feeRate:     0,
			royaltyRate: 1000,
			fee:         0,
			royalty:     1000,
			proceeds:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			split := splitPrice(tt.price, tt.feeRate, tt.royaltyRate, tt.sellerIsCreator)
			assert.Equal(t, tt.fee, split.Fee)
			assert.Equal(t, tt.royalty, split.Royalty)
			assert.Equal(t, tt.proceeds, split.Proceeds)
			// nothing is lost or created by the split
			assert.Equal(t, tt.price, split.Fee+split.Royalty+split.Proceeds)
		})
	}
}
