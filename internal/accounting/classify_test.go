package accounting

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/Item-Trade-Tracker-Backend/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		category int
		want     Direction
	}{
		{CategoryItemMarketBuy, DirectionBuy},
		{CategoryBazaarBuy, DirectionBuy},
		{CategoryItemMarketSell, DirectionSell},
		{CategoryBazaarSell, DirectionSell},
		{0, DirectionUnknown},
		{1114, DirectionUnknown},
		{-1225, DirectionUnknown},
	}

	for _, tt := range tests {
		if got := Classify(tt.category); got != tt.want {
			t.Errorf("Classify(%d) = %v, want %v", tt.category, got, tt.want)
		}
	}
}

func TestDirectionString(t *testing.T) {
	if DirectionBuy.String() != "buy" || DirectionSell.String() != "sell" || DirectionUnknown.String() != "unknown" {
		t.Errorf("unexpected direction names: %s %s %s", DirectionBuy, DirectionSell, DirectionUnknown)
	}
}

func TestValid(t *testing.T) {
	good := buy("1", 1, 0, refNow)

	t.Run("accepts zero price", func(t *testing.T) {
		if !Valid(good) {
			t.Error("expected transaction with zero price to be valid")
		}
	})

	t.Run("rejects missing fields", func(t *testing.T) {
		noItem := good
		noItem.ItemID = ""

		noQty := good
		noQty.Quantity = 0

		noPrice := good
		noPrice.UnitPrice = decimal.NullDecimal{}

		negative := good
		negative.UnitPrice = decimal.NewNullDecimal(decimal.NewFromInt(-1))

		for name, tx := range map[string]model.Transaction{
			"item":     noItem,
			"quantity": noQty,
			"price":    noPrice,
			"negative": negative,
		} {
			if Valid(tx) {
				t.Errorf("%s: expected transaction to be invalid", name)
			}
		}
	})
}
